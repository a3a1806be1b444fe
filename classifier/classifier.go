// Package classifier suggests a report category from its free-text
// description: TF-IDF features over the training vocabulary, multinomial
// naive Bayes over a closed label set. The prediction is advisory; callers
// are free to override it with anything.
package classifier

import (
	"errors"
	"math"
	"regexp"
	"sort"
	"strings"
)

// Example is one labeled training sentence.
type Example struct {
	Text  string
	Label string
}

// Model is a fitted classifier. Fit once at startup; to retrain, call Train
// again with substitute data and swap the model.
type Model struct {
	labels   []string
	vocab    map[string]int
	idf      []float64
	logPrior []float64
	logProb  [][]float64 // per label, per term
}

// Tokens are runs of two or more word characters, lowercased. Single
// characters (the Italian "è" among them) carry no signal and are dropped.
var tokenRe = regexp.MustCompile(`[\pL\pN_][\pL\pN_]+`)

func tokenize(text string) []string {
	return tokenRe.FindAllString(strings.ToLower(text), -1)
}

// Train fits the model on the given examples.
func Train(examples []Example) (*Model, error) {
	if len(examples) == 0 {
		return nil, errors.New("classifier: empty training set")
	}

	docs := make([][]string, len(examples))
	labelSet := make(map[string]bool)
	termSet := make(map[string]bool)
	for i, ex := range examples {
		docs[i] = tokenize(ex.Text)
		labelSet[ex.Label] = true
		for _, tok := range docs[i] {
			termSet[tok] = true
		}
	}
	if len(termSet) == 0 {
		return nil, errors.New("classifier: training set has no usable tokens")
	}

	labels := make([]string, 0, len(labelSet))
	for l := range labelSet {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	labelIdx := make(map[string]int, len(labels))
	for i, l := range labels {
		labelIdx[l] = i
	}

	terms := make([]string, 0, len(termSet))
	for t := range termSet {
		terms = append(terms, t)
	}
	sort.Strings(terms)
	vocab := make(map[string]int, len(terms))
	for i, t := range terms {
		vocab[t] = i
	}

	// Smoothed idf over document frequencies.
	df := make([]int, len(terms))
	for _, doc := range docs {
		seen := make(map[int]bool)
		for _, tok := range doc {
			seen[vocab[tok]] = true
		}
		for i := range seen {
			df[i]++
		}
	}
	n := float64(len(docs))
	idf := make([]float64, len(terms))
	for i, d := range df {
		idf[i] = math.Log((1+n)/float64(1+d)) + 1
	}

	// Per-label sums of L2-normalized tf-idf vectors.
	sums := make([][]float64, len(labels))
	for i := range sums {
		sums[i] = make([]float64, len(terms))
	}
	docCount := make([]float64, len(labels))
	for i, doc := range docs {
		c := labelIdx[examples[i].Label]
		docCount[c]++
		vec := tfidf(doc, vocab, idf)
		for t, v := range vec {
			sums[c][t] += v
		}
	}

	logPrior := make([]float64, len(labels))
	logProb := make([][]float64, len(labels))
	vocabSize := float64(len(terms))
	for c := range labels {
		logPrior[c] = math.Log(docCount[c] / n)
		total := 0.0
		for _, v := range sums[c] {
			total += v
		}
		logProb[c] = make([]float64, len(terms))
		for t, v := range sums[c] {
			// Laplace smoothing, alpha=1.
			logProb[c][t] = math.Log((v + 1) / (total + vocabSize))
		}
	}

	return &Model{
		labels:   labels,
		vocab:    vocab,
		idf:      idf,
		logPrior: logPrior,
		logProb:  logProb,
	}, nil
}

func tfidf(doc []string, vocab map[string]int, idf []float64) map[int]float64 {
	vec := make(map[int]float64)
	for _, tok := range doc {
		if i, ok := vocab[tok]; ok {
			vec[i] += idf[i]
		}
	}
	var norm float64
	for _, v := range vec {
		norm += v * v
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}

// Predict returns the most likely label for the text. It never abstains:
// input with only unknown tokens scores every label on its prior alone and
// the best prior wins.
func (m *Model) Predict(text string) string {
	vec := tfidf(tokenize(text), m.vocab, m.idf)
	best := 0
	bestScore := math.Inf(-1)
	for c := range m.labels {
		score := m.logPrior[c]
		for t, v := range vec {
			score += v * m.logProb[c][t]
		}
		if score > bestScore {
			best = c
			bestScore = score
		}
	}
	return m.labels[best]
}

// Labels returns the closed label set, sorted.
func (m *Model) Labels() []string {
	return append([]string(nil), m.labels...)
}
