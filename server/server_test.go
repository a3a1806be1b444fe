package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"

	"segnalapp/auth"
	"segnalapp/blobstore"
	"segnalapp/classifier"
	"segnalapp/csvstore"
	"segnalapp/models"
	"segnalapp/notify"
	"segnalapp/reports"
	"segnalapp/server/api"
	"segnalapp/server/handlers"
	"segnalapp/stations"
)

const stationsCSV = `nome_stazione,indirizzo,comune,provincia,regione,latitudine,longitudine
Firenze S.M.N.,Piazza della Stazione,Firenze,FI,Toscana,43.7765,11.2479
`

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, "stations.csv"), []byte(stationsCSV), 0o644); err != nil {
		t.Fatal(err)
	}
	store := csvstore.NewFileStore(dir, models.Schemas())
	index, err := stations.NewIndex(store)
	if err != nil {
		t.Fatal(err)
	}
	model, err := classifier.Train(classifier.TrainingSet())
	if err != nil {
		t.Fatal(err)
	}
	dispatcher := notify.NewDispatcher(store, nil)
	reportService := reports.NewService(store, index, model, dispatcher, blobstore.New(filepath.Join(dir, "uploads")))
	h := handlers.New(auth.NewService(store), reportService, dispatcher, index)
	return NewRouter(h)
}

func postJSON(router *gin.Engine, path string, body interface{}) *httptest.ResponseRecorder {
	data, _ := json.Marshal(body)
	req := httptest.NewRequest("POST", path, bytes.NewBuffer(data))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func getPath(router *gin.Engine, path string) *httptest.ResponseRecorder {
	req := httptest.NewRequest("GET", path, nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestRegisterAndLogin(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, api.EndPointRegister, api.RegisterArgs{
		Version: "2.0", Email: "a@x.com", Password: "p", Role: "cittadino",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var reg api.RegisterResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &reg))
	assert.Equal(t, int64(1), reg.UserID)

	w = postJSON(router, api.EndPointLogin, api.LoginArgs{
		Version: "2.0", Email: "a@x.com", Password: "p",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var login api.LoginResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &login))
	assert.Equal(t, int64(1), login.UserID)
	assert.Equal(t, "cittadino", login.Role)
}

func TestLoginFailure(t *testing.T) {
	router := newTestRouter(t)
	postJSON(router, api.EndPointRegister, api.RegisterArgs{
		Version: "2.0", Email: "a@x.com", Password: "p", Role: "cittadino",
	})

	w := postJSON(router, api.EndPointLogin, api.LoginArgs{
		Version: "2.0", Email: "a@x.com", Password: "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestBadAPIVersion(t *testing.T) {
	router := newTestRouter(t)
	w := postJSON(router, api.EndPointReport, api.ReportArgs{
		Version: "1.0", UserID: 1, Title: "T",
	})
	assert.Equal(t, http.StatusNotAcceptable, w.Code)
}

func TestCreateAndListReports(t *testing.T) {
	router := newTestRouter(t)

	w := postJSON(router, api.EndPointReport, api.ReportArgs{
		Version: "2.0", UserID: 1, Title: "Lampione rotto",
		Description: "Il lampione è spento", Category: "Illuminazione",
		Station: "Firenze S.M.N.",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var rep api.ReportResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &rep))
	assert.Equal(t, int64(1), rep.ReportID)
	assert.Equal(t, "inviata", rep.Status)
	if assert.NotNil(t, rep.Latitude) {
		assert.InDelta(t, 43.7765, *rep.Latitude, 0.0001)
	}

	w = getPath(router, api.EndPointMyReports+"?user_id=1")
	assert.Equal(t, http.StatusOK, w.Code)
	var list []models.Report
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 1)
}

func TestUpdateReportNotFound(t *testing.T) {
	router := newTestRouter(t)
	w := postJSON(router, api.EndPointUpdateReport, api.UpdateReportArgs{
		Version: "2.0", ReportID: 99, AssignedTo: "team-a", Status: "risolta",
	})
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestSuggestCategory(t *testing.T) {
	router := newTestRouter(t)
	w := postJSON(router, api.EndPointSuggestCategory, api.SuggestArgs{
		Version: "2.0", Description: "Buca enorme in strada",
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var resp api.SuggestResp
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "Strade", resp.Category)
}

func TestStationsEndpoint(t *testing.T) {
	router := newTestRouter(t)
	w := getPath(router, api.EndPointStations)
	assert.Equal(t, http.StatusOK, w.Code)
	var names []string
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &names))
	assert.Equal(t, []string{"Firenze S.M.N."}, names)
}

func TestExportCSV(t *testing.T) {
	router := newTestRouter(t)
	postJSON(router, api.EndPointReport, api.ReportArgs{
		Version: "2.0", UserID: 1, Title: "T", Category: "Rifiuti",
	})

	w := getPath(router, api.EndPointExportCSV+"?category=Rifiuti")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "segnalazioni_filtrate.csv")
	assert.Contains(t, w.Body.String(), "report_id,user_id,title")
	assert.Contains(t, w.Body.String(), "Rifiuti")
}

func TestGetMap(t *testing.T) {
	router := newTestRouter(t)
	postJSON(router, api.EndPointReport, api.ReportArgs{
		Version: "2.0", UserID: 1, Title: "T", Station: "Firenze S.M.N.",
	})

	w := postJSON(router, api.EndPointGetMap, api.MapArgs{
		Version: "2.0",
		VPort:   api.ViewPort{LatMin: 42.5, LonMin: 9.8, LatMax: 44.5, LonMax: 12.5},
	})
	assert.Equal(t, http.StatusOK, w.Code)
	var points []api.MapResult
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &points))
	assert.Len(t, points, 1)
	assert.Equal(t, int64(1), points[0].Count)
}
