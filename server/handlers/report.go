package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"segnalapp/models"
	"segnalapp/reports"
	"segnalapp/server/api"
)

func (h *Handler) CreateReport(c *gin.Context) {
	var args api.ReportArgs
	if err := c.BindJSON(&args); err != nil {
		log.WithError(err).Warnf("Failed to read the argument in %s call", api.EndPointReport)
		c.String(http.StatusBadRequest, "Could not read JSON input.") // 400
		return
	}
	if !checkVersion(c, api.EndPointReport, args.Version) {
		return
	}

	var photo *reports.Photo
	if len(args.Photo) > 0 {
		photo = &reports.Photo{Filename: args.PhotoName, Data: args.Photo}
	}
	rep, err := h.Reports.Create(args.UserID, args.Title, args.Description, args.Category, args.Station, photo)
	if err != nil {
		log.WithError(err).Errorf("Failed to create report for user %d", args.UserID)
		c.String(http.StatusInternalServerError, "Failed to save the report.") // 500
		return
	}

	resp := api.ReportResp{ReportID: rep.ID, Status: string(rep.Status), PhotoPath: rep.PhotoPath}
	if rep.Latitude != nil && rep.Longitude != nil {
		lat := rep.Latitude.InexactFloat64()
		lon := rep.Longitude.InexactFloat64()
		resp.Latitude, resp.Longitude = &lat, &lon
	}
	c.IndentedJSON(http.StatusOK, resp) // 200
}

func (h *Handler) MyReports(c *gin.Context) {
	userID, err := strconv.ParseInt(c.Query("user_id"), 10, 64)
	if err != nil {
		c.String(http.StatusBadRequest, "Bad or missing user_id.") // 400
		return
	}
	list, err := h.Reports.ListByUser(userID)
	if err != nil {
		log.WithError(err).Errorf("Failed to list reports for user %d", userID)
		c.String(http.StatusInternalServerError, "Failed to read reports.") // 500
		return
	}
	c.IndentedJSON(http.StatusOK, list) // 200
}

func (h *Handler) ListReports(c *gin.Context) {
	list, err := h.Reports.ListFiltered(c.Query("category"), c.Query("status"), c.Query("assigned_to"))
	if err != nil {
		log.WithError(err).Error("Failed to list reports")
		c.String(http.StatusInternalServerError, "Failed to read reports.") // 500
		return
	}
	c.IndentedJSON(http.StatusOK, list) // 200
}

func (h *Handler) UpdateReport(c *gin.Context) {
	var args api.UpdateReportArgs
	if err := c.BindJSON(&args); err != nil {
		log.WithError(err).Warnf("Failed to read the argument in %s call", api.EndPointUpdateReport)
		c.String(http.StatusBadRequest, "Could not read JSON input.") // 400
		return
	}
	if !checkVersion(c, api.EndPointUpdateReport, args.Version) {
		return
	}
	if !models.ValidStatus(models.Status(args.Status)) {
		c.String(http.StatusBadRequest, "Unknown status.") // 400
		return
	}

	rep, err := h.Reports.Update(args.ReportID, args.AssignedTo, models.Status(args.Status))
	if errors.Is(err, models.ErrNotFound) {
		c.String(http.StatusNotFound, "No such report.") // 404
		return
	}
	if err != nil {
		log.WithError(err).Errorf("Failed to update report %d", args.ReportID)
		c.String(http.StatusInternalServerError, "Failed to update the report.") // 500
		return
	}
	c.IndentedJSON(http.StatusOK, rep) // 200
}

func (h *Handler) SuggestCategory(c *gin.Context) {
	var args api.SuggestArgs
	if err := c.BindJSON(&args); err != nil {
		log.WithError(err).Warnf("Failed to read the argument in %s call", api.EndPointSuggestCategory)
		c.String(http.StatusBadRequest, "Could not read JSON input.") // 400
		return
	}
	if !checkVersion(c, api.EndPointSuggestCategory, args.Version) {
		return
	}
	c.IndentedJSON(http.StatusOK, api.SuggestResp{Category: h.Reports.SuggestCategory(args.Description)}) // 200
}

func (h *Handler) ExportCSV(c *gin.Context) {
	list, err := h.Reports.ListFiltered(c.Query("category"), c.Query("status"), c.Query("assigned_to"))
	if err != nil {
		log.WithError(err).Error("Failed to list reports for export")
		c.String(http.StatusInternalServerError, "Failed to read reports.") // 500
		return
	}
	data, err := reports.ExportCSV(list)
	if err != nil {
		log.WithError(err).Error("Failed to render CSV export")
		c.String(http.StatusInternalServerError, "Failed to render the export.") // 500
		return
	}
	c.Header("Content-Disposition", `attachment; filename="segnalazioni_filtrate.csv"`)
	c.Data(http.StatusOK, "text/csv", data) // 200
}
