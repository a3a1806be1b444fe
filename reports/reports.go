// Package reports manages the report lifecycle: creation with geotagging
// and category suggestion, listing and filtering, triage updates.
package reports

import (
	"strconv"

	"github.com/apex/log"

	"segnalapp/blobstore"
	"segnalapp/classifier"
	"segnalapp/csvstore"
	"segnalapp/models"
	"segnalapp/notify"
	"segnalapp/stations"
)

// The operator UI sends these sentinels for an unfiltered dimension; the
// empty string means the same thing.
const (
	FilterAllCategories = "Tutte"
	FilterAllValues     = "Tutti"
)

type Service struct {
	store      csvstore.Store
	stations   *stations.Index
	model      *classifier.Model
	dispatcher *notify.Dispatcher
	blobs      *blobstore.BlobStore
}

func NewService(store csvstore.Store, ix *stations.Index, model *classifier.Model, dispatcher *notify.Dispatcher, blobs *blobstore.BlobStore) *Service {
	return &Service{
		store:      store,
		stations:   ix,
		model:      model,
		dispatcher: dispatcher,
		blobs:      blobs,
	}
}

// Photo is an optional attachment handed to Create.
type Photo struct {
	Filename string
	Data     []byte
}

// Create records a new report and fans out operator notifications. Title,
// description and category are accepted as provided, empty strings
// included. An unresolvable station name is not an error: the report is
// simply stored without coordinates.
func (s *Service) Create(userID int64, title, description, category, stationName string, photo *Photo) (*models.Report, error) {
	rep := models.Report{
		UserID:      userID,
		Title:       title,
		Description: description,
		Category:    category,
		Status:      models.StatusSubmitted,
		Station:     stationName,
	}
	if st := s.stations.Find(stationName); st != nil {
		lat, lon := st.Latitude, st.Longitude
		rep.Latitude, rep.Longitude = &lat, &lon
	}
	if photo != nil && len(photo.Data) > 0 {
		path, err := s.blobs.Save(photo.Filename, photo.Data)
		if err != nil {
			return nil, err
		}
		rep.PhotoPath = path
	}

	err := s.store.Mutate(models.TableReports, func(t *csvstore.Table) error {
		rep.ID = t.NextID("report_id")
		t.Rows = append(t.Rows, rep.Row())
		return nil
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Created report %d for user %d", rep.ID, userID)

	// Fan-out failure loses the notifications but never the report.
	if err := s.dispatcher.NotifyOnCreate(rep.ID, title); err != nil {
		log.WithError(err).Warnf("Notification fan-out failed for report %d", rep.ID)
	}
	return &rep, nil
}

// SuggestCategory runs the classifier over a description. Advisory only.
func (s *Service) SuggestCategory(description string) string {
	return s.model.Predict(description)
}

// ListByUser returns the user's reports in insertion order.
func (s *Service) ListByUser(userID int64) ([]models.Report, error) {
	want := strconv.FormatInt(userID, 10)
	return s.list(func(r csvstore.Row) bool {
		return r["user_id"] == want
	})
}

// ListFiltered restricts by exact equality on each provided dimension;
// filters compose by conjunction. Empty or "Tutte"/"Tutti" means
// unfiltered on that dimension.
func (s *Service) ListFiltered(category, status, assignee string) ([]models.Report, error) {
	return s.list(func(r csvstore.Row) bool {
		if !filterAll(category) && r["category"] != category {
			return false
		}
		if !filterAll(status) && r["status"] != status {
			return false
		}
		if !filterAll(assignee) && r["assigned_to"] != assignee {
			return false
		}
		return true
	})
}

func filterAll(v string) bool {
	return v == "" || v == FilterAllCategories || v == FilterAllValues
}

func (s *Service) list(keep func(csvstore.Row) bool) ([]models.Report, error) {
	t, err := s.store.Load(models.TableReports)
	if err != nil {
		return nil, err
	}
	out := make([]models.Report, 0, len(t.Rows))
	for _, r := range t.Rows {
		if keep(r) {
			out = append(out, models.ReportFromRow(r))
		}
	}
	return out, nil
}

// Update overwrites assignee and status of an existing report. The
// overwrite is unconditional: any status may move to any other, including
// back from risolta. A missing id fails with ErrNotFound and the table
// stays untouched.
func (s *Service) Update(reportID int64, assignee string, status models.Status) (*models.Report, error) {
	want := strconv.FormatInt(reportID, 10)
	var rep *models.Report
	err := s.store.Mutate(models.TableReports, func(t *csvstore.Table) error {
		for _, r := range t.Rows {
			if r["report_id"] == want {
				r["assigned_to"] = assignee
				r["status"] = string(status)
				got := models.ReportFromRow(r)
				rep = &got
				return nil
			}
		}
		return models.ErrNotFound
	})
	if err != nil {
		return nil, err
	}
	log.Infof("Updated report %d: assignee=%q status=%q", reportID, assignee, status)
	return rep, nil
}
