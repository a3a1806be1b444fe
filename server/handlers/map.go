package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"segnalapp/mapaggr"
	"segnalapp/reports"
	"segnalapp/server/api"
)

// GetMap returns the filtered, geotagged reports aggregated into map
// markers for the requested viewport.
func (h *Handler) GetMap(c *gin.Context) {
	var args api.MapArgs
	if err := c.BindJSON(&args); err != nil {
		log.WithError(err).Warnf("Failed to read the argument in %s call", api.EndPointGetMap)
		c.String(http.StatusBadRequest, "Could not read JSON input.") // 400
		return
	}
	if !checkVersion(c, api.EndPointGetMap, args.Version) {
		return
	}

	list, err := h.Reports.ListFiltered(args.Category, args.Status, args.Assignee)
	if err != nil {
		log.WithError(err).Error("Failed to list reports for map")
		c.String(http.StatusInternalServerError, "Failed to read reports.") // 500
		return
	}
	points := make([]api.MapResult, 0, len(list))
	for _, rep := range list {
		if rep.Latitude == nil || rep.Longitude == nil {
			continue
		}
		points = append(points, api.MapResult{
			Latitude:  rep.Latitude.InexactFloat64(),
			Longitude: rep.Longitude.InexactFloat64(),
			Count:     1,
		})
	}
	c.IndentedJSON(http.StatusOK, mapaggr.Aggregate(args.VPort, points)) // 200
}

// ReportsGeoJSON exposes the filtered listing as a FeatureCollection.
func (h *Handler) ReportsGeoJSON(c *gin.Context) {
	list, err := h.Reports.ListFiltered(c.Query("category"), c.Query("status"), c.Query("assigned_to"))
	if err != nil {
		log.WithError(err).Error("Failed to list reports for geojson")
		c.String(http.StatusInternalServerError, "Failed to read reports.") // 500
		return
	}
	data, err := reports.ToGeoJSON(list)
	if err != nil {
		log.WithError(err).Error("Failed to render geojson")
		c.String(http.StatusInternalServerError, "Failed to render geojson.") // 500
		return
	}
	c.Data(http.StatusOK, "application/geo+json", data) // 200
}
