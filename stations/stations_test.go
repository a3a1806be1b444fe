package stations

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/jknair0/beforeeach"

	"segnalapp/csvstore"
	"segnalapp/models"
)

const stationsCSV = `nome_stazione,indirizzo,comune,provincia,regione,latitudine,longitudine
Firenze S.M.N.,Piazza della Stazione,Firenze,FI,Toscana,43.7765,11.2479
Pisa Centrale,Piazza della Stazione 1,Pisa,PI,Toscana,43.7085,10.3989
`

var (
	dir   string
	index *Index
)

func setUp() {
	dir, _ = os.MkdirTemp("", "stations")
	os.WriteFile(filepath.Join(dir, "stations.csv"), []byte(stationsCSV), 0o644)
	index, _ = NewIndex(csvstore.NewFileStore(dir, models.Schemas()))
}

func tearDown() {
	os.RemoveAll(dir)
}

var it = beforeeach.Create(setUp, tearDown)

func TestFind(t *testing.T) {
	it(func() {
		st := index.Find("Firenze S.M.N.")
		if st == nil {
			t.Fatal("Find returned absent for a known station")
		}
		if st.Municipality != "Firenze" || st.Region != "Toscana" {
			t.Errorf("unexpected station data: %+v", st)
		}
		if st.Latitude.String() != "43.7765" || st.Longitude.String() != "11.2479" {
			t.Errorf("coordinates = %s, %s, want source values verbatim", st.Latitude, st.Longitude)
		}
	})
}

func TestFindIsExactMatchOnly(t *testing.T) {
	it(func() {
		// Case and whitespace must match the file; near misses resolve to
		// absent, which callers treat as "no geotag".
		for _, name := range []string{"firenze s.m.n.", " Firenze S.M.N.", "Firenze", ""} {
			if st := index.Find(name); st != nil {
				t.Errorf("Find(%q) = %+v, want absent", name, st)
			}
		}
	})
}

func TestNamesKeepFileOrder(t *testing.T) {
	it(func() {
		got := index.Names()
		want := []string{"Firenze S.M.N.", "Pisa Centrale"}
		if len(got) != len(want) {
			t.Fatalf("Names = %v, want %v", got, want)
		}
		for i := range want {
			if got[i] != want[i] {
				t.Fatalf("Names = %v, want %v", got, want)
			}
		}
	})
}

func TestEmptyIndex(t *testing.T) {
	it(func() {
		empty, err := NewIndex(csvstore.NewFileStore(filepath.Join(dir, "missing"), models.Schemas()))
		if err != nil {
			t.Fatalf("NewIndex on empty dir: %v", err)
		}
		if st := empty.Find("Firenze S.M.N."); st != nil {
			t.Errorf("Find on empty index = %+v, want absent", st)
		}
		if names := empty.Names(); len(names) != 0 {
			t.Errorf("Names on empty index = %v", names)
		}
	})
}
