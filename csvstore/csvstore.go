// Package csvstore implements a flat-file tabular store: one CSV file per
// named table, loaded into memory and written back whole on persist.
package csvstore

import (
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"

	"github.com/apex/log"
)

// ErrUnavailable marks a backing table that could not be read or written.
var ErrUnavailable = errors.New("storage unavailable")

// Row is a single record keyed by column name. A missing key and an empty
// value are equivalent: both encode as an empty CSV cell.
type Row map[string]string

// Table is an in-memory table with an ordered header.
type Table struct {
	Name    string
	Columns []string
	Rows    []Row
}

// NextID returns max(col)+1 over all rows, treating non-numeric cells as
// absent. Safe only under the table's write lock (see Store.Mutate); two
// concurrent callers outside it can be handed the same identity.
func (t *Table) NextID(col string) int64 {
	var max int64
	for _, r := range t.Rows {
		n, err := strconv.ParseInt(r[col], 10, 64)
		if err == nil && n > max {
			max = n
		}
	}
	return max + 1
}

// Clone returns a deep copy of the table.
func (t *Table) Clone() *Table {
	c := &Table{
		Name:    t.Name,
		Columns: append([]string(nil), t.Columns...),
		Rows:    make([]Row, 0, len(t.Rows)),
	}
	for _, r := range t.Rows {
		fresh := make(Row, len(r))
		for k, v := range r {
			fresh[k] = v
		}
		c.Rows = append(c.Rows, fresh)
	}
	return c
}

// Store is the persistence abstraction over named row collections. It is
// created once at process start and injected into each component.
type Store interface {
	// Load returns a copy of the named table. An absent backing file yields
	// an empty table with the declared schema; a file missing declared
	// columns has them added null-filled.
	Load(name string) (*Table, error)
	// Append adds a row to the in-memory table and returns the result. It
	// assigns no identity and does not persist.
	Append(name string, row Row) (*Table, error)
	// Update applies fn to every row matched and persists when at least one
	// row changed. Returns the number of rows touched.
	Update(name string, match func(Row) bool, apply func(Row)) (int, error)
	// Persist writes the in-memory table back to its file, whole.
	Persist(name string) error
	// Mutate runs fn on the live table under the table's exclusive lock and
	// persists on success. All read-modify-write cycles (identity
	// assignment included) must go through it.
	Mutate(name string, fn func(*Table) error) error
}

// FileStore is the CSV-backed Store. One mutex per table serializes
// writers; readers get copies and never observe a half-applied mutation.
type FileStore struct {
	dir     string
	schemas map[string][]string

	mu     sync.Mutex
	tables map[string]*Table
	locks  map[string]*sync.Mutex
}

// NewFileStore creates a store rooted at dir with the declared table
// schemas. Files are created lazily on first load.
func NewFileStore(dir string, schemas map[string][]string) *FileStore {
	return &FileStore{
		dir:     dir,
		schemas: schemas,
		tables:  make(map[string]*Table),
		locks:   make(map[string]*sync.Mutex),
	}
}

func (s *FileStore) lock(name string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[name]
	if !ok {
		l = &sync.Mutex{}
		s.locks[name] = l
	}
	return l
}

func (s *FileStore) path(name string) string {
	return filepath.Join(s.dir, name+".csv")
}

// load returns the live table; the caller must hold the table lock.
func (s *FileStore) load(name string) (*Table, error) {
	schema, ok := s.schemas[name]
	if !ok {
		return nil, fmt.Errorf("table %q not declared", name)
	}

	s.mu.Lock()
	cached := s.tables[name]
	s.mu.Unlock()
	if cached != nil {
		return cached, nil
	}

	t, err := readTable(s.path(name), name, schema)
	if err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.tables[name] = t
	s.mu.Unlock()
	return t, nil
}

func readTable(path, name string, schema []string) (*Table, error) {
	f, err := os.Open(path)
	if os.IsNotExist(err) {
		log.Infof("Table %s has no backing file yet, starting empty", name)
		return &Table{Name: name, Columns: append([]string(nil), schema...)}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("%w: open %s: %v", ErrUnavailable, path, err)
	}
	defer f.Close()

	rd := csv.NewReader(f)
	rd.FieldsPerRecord = -1
	records, err := rd.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: read %s: %v", ErrUnavailable, path, err)
	}
	if len(records) == 0 {
		return &Table{Name: name, Columns: append([]string(nil), schema...)}, nil
	}

	header := records[0]
	present := make(map[string]bool, len(header))
	for _, col := range header {
		present[col] = true
	}

	// Declared columns first, in schema order; older files get the missing
	// ones null-filled. Unknown extra columns survive after them so a
	// reload/persist cycle is lossless.
	columns := make([]string, 0, len(schema))
	for _, col := range schema {
		columns = append(columns, col)
		if !present[col] {
			log.Infof("Table %s: adding missing column %s", name, col)
		}
	}
	declared := make(map[string]bool, len(schema))
	for _, col := range schema {
		declared[col] = true
	}
	for _, col := range header {
		if !declared[col] {
			columns = append(columns, col)
		}
	}

	rows := make([]Row, 0, len(records)-1)
	for _, rec := range records[1:] {
		row := make(Row, len(columns))
		for _, col := range columns {
			row[col] = ""
		}
		for i, col := range header {
			if i < len(rec) {
				row[col] = rec[i]
			}
		}
		rows = append(rows, row)
	}
	return &Table{Name: name, Columns: columns, Rows: rows}, nil
}

func (s *FileStore) Load(name string) (*Table, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	t, err := s.load(name)
	if err != nil {
		return nil, err
	}
	return t.Clone(), nil
}

func (s *FileStore) Append(name string, row Row) (*Table, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	t, err := s.load(name)
	if err != nil {
		return nil, err
	}
	t.Rows = append(t.Rows, row)
	return t.Clone(), nil
}

func (s *FileStore) Update(name string, match func(Row) bool, apply func(Row)) (int, error) {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	t, err := s.load(name)
	if err != nil {
		return 0, err
	}
	touched := 0
	for _, r := range t.Rows {
		if match(r) {
			apply(r)
			touched++
		}
	}
	if touched == 0 {
		return 0, nil
	}
	return touched, s.persist(t)
}

func (s *FileStore) Persist(name string) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	t, err := s.load(name)
	if err != nil {
		return err
	}
	return s.persist(t)
}

func (s *FileStore) Mutate(name string, fn func(*Table) error) error {
	l := s.lock(name)
	l.Lock()
	defer l.Unlock()
	t, err := s.load(name)
	if err != nil {
		return err
	}
	// fn works on a clone; a failed mutation leaves both the file and the
	// in-memory table exactly as they were.
	work := t.Clone()
	if err := fn(work); err != nil {
		return err
	}
	if err := s.persist(work); err != nil {
		return err
	}
	s.mu.Lock()
	s.tables[name] = work
	s.mu.Unlock()
	return nil
}

// persist rewrites the table file whole. The write goes to a temp file
// renamed over the target, so a failed write leaves the previous rows
// intact. The caller must hold the table lock.
func (s *FileStore) persist(t *Table) error {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("%w: mkdir %s: %v", ErrUnavailable, s.dir, err)
	}
	tmp, err := os.CreateTemp(s.dir, t.Name+"-*.tmp")
	if err != nil {
		return fmt.Errorf("%w: temp file for %s: %v", ErrUnavailable, t.Name, err)
	}
	defer os.Remove(tmp.Name())

	w := csv.NewWriter(tmp)
	if err := w.Write(t.Columns); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: write %s: %v", ErrUnavailable, t.Name, err)
	}
	rec := make([]string, len(t.Columns))
	for _, row := range t.Rows {
		for i, col := range t.Columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			tmp.Close()
			return fmt.Errorf("%w: write %s: %v", ErrUnavailable, t.Name, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		tmp.Close()
		return fmt.Errorf("%w: flush %s: %v", ErrUnavailable, t.Name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("%w: close %s: %v", ErrUnavailable, t.Name, err)
	}
	if err := os.Rename(tmp.Name(), s.path(t.Name)); err != nil {
		return fmt.Errorf("%w: rename %s: %v", ErrUnavailable, t.Name, err)
	}
	return nil
}
