// Package stations resolves a station name to its reference record, used
// to geotag reports.
package stations

import (
	"github.com/apex/log"

	"segnalapp/csvstore"
	"segnalapp/models"
)

// Index is the in-memory view of the read-only stations table, built once
// at startup.
type Index struct {
	byName map[string]models.Station
	names  []string
}

// NewIndex loads the stations table. A missing file yields an empty index,
// not an error: every lookup then resolves to absent.
func NewIndex(store csvstore.Store) (*Index, error) {
	t, err := store.Load(models.TableStations)
	if err != nil {
		return nil, err
	}
	ix := &Index{byName: make(map[string]models.Station, len(t.Rows))}
	for _, r := range t.Rows {
		st := models.StationFromRow(r)
		if st.Name == "" {
			continue
		}
		if _, dup := ix.byName[st.Name]; dup {
			continue
		}
		ix.byName[st.Name] = st
		ix.names = append(ix.names, st.Name)
	}
	if len(ix.names) == 0 {
		log.Warn("Station table is empty, reports will carry no coordinates")
	}
	return ix, nil
}

// Find resolves a station by exact name match; case and whitespace must
// match the file. Absent is a normal outcome (nil), never an error: the
// caller records the report without a geotag.
func (ix *Index) Find(name string) *models.Station {
	st, ok := ix.byName[name]
	if !ok {
		return nil
	}
	return &st
}

// Names lists the station names in file order, for pickers.
func (ix *Index) Names() []string {
	return append([]string(nil), ix.names...)
}
