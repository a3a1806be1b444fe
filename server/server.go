// Package server wires the HTTP facade. The services underneath stay plain
// library code; this layer only translates requests.
package server

import (
	"net/http"
	"time"

	"github.com/apex/log"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"segnalapp/config"
	"segnalapp/server/api"
	"segnalapp/server/handlers"
)

func Help(c *gin.Context) {
	c.String(http.StatusOK, `
	Segnalapp API:
	citizen incident reporting server, version 2.0.
	`)
}

// NewRouter builds the routing table; StartService runs it.
func NewRouter(h *handlers.Handler) *gin.Engine {
	router := gin.Default()
	router.Use(cors.New(cors.Config{
		AllowMethods:     []string{"GET", "POST", "OPTIONS"},
		AllowHeaders:     []string{"Content-Type"},
		AllowOrigins:     []string{"*"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET(api.EndPointHelp, Help)
	router.GET(api.EndPointMyReports, h.MyReports)
	router.GET(api.EndPointReports, h.ListReports)
	router.GET(api.EndPointNotifications, h.Notifications)
	router.GET(api.EndPointStations, h.StationNames)
	router.GET(api.EndPointReportsGeoJSON, h.ReportsGeoJSON)
	router.GET(api.EndPointExportCSV, h.ExportCSV)
	router.POST(api.EndPointRegister, h.Register)
	router.POST(api.EndPointLogin, h.Login)
	router.POST(api.EndPointReport, h.CreateReport)
	router.POST(api.EndPointUpdateReport, h.UpdateReport)
	router.POST(api.EndPointSuggestCategory, h.SuggestCategory)
	router.POST(api.EndPointGetMap, h.GetMap)
	return router
}

func StartService(cfg *config.Config, h *handlers.Handler) error {
	log.Info("Starting the service...")
	return NewRouter(h).Run(":" + cfg.Port)
}
