package reports

import (
	"bytes"
	"encoding/csv"
	"strconv"

	geojson "github.com/paulmach/go.geojson"

	"segnalapp/models"
)

// ExportCSV renders a listing as a downloadable CSV, same columns as the
// reports table.
func ExportCSV(reports []models.Report) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	columns := models.Schemas()[models.TableReports]
	if err := w.Write(columns); err != nil {
		return nil, err
	}
	for _, rep := range reports {
		row := rep.Row()
		rec := make([]string, len(columns))
		for i, col := range columns {
			rec[i] = row[col]
		}
		if err := w.Write(rec); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ToGeoJSON renders the geotagged subset of a listing as a
// FeatureCollection for the map layer. Reports without coordinates are
// skipped.
func ToGeoJSON(reports []models.Report) ([]byte, error) {
	fc := geojson.NewFeatureCollection()
	for _, rep := range reports {
		if rep.Latitude == nil || rep.Longitude == nil {
			continue
		}
		f := geojson.NewPointFeature([]float64{
			rep.Longitude.InexactFloat64(),
			rep.Latitude.InexactFloat64(),
		})
		f.ID = strconv.FormatInt(rep.ID, 10)
		f.SetProperty("title", rep.Title)
		f.SetProperty("description", rep.Description)
		f.SetProperty("category", rep.Category)
		f.SetProperty("status", string(rep.Status))
		f.SetProperty("assigned_to", rep.AssignedTo)
		f.SetProperty("station", rep.Station)
		if rep.PhotoPath != "" {
			f.SetProperty("photo_path", rep.PhotoPath)
		}
		fc.AddFeature(f)
	}
	return fc.MarshalJSON()
}
