// Package handlers adapts the service layer to the HTTP surface.
package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"segnalapp/auth"
	"segnalapp/notify"
	"segnalapp/reports"
	"segnalapp/server/api"
	"segnalapp/stations"
)

type Handler struct {
	Auth     *auth.Service
	Reports  *reports.Service
	Notifier *notify.Dispatcher
	Stations *stations.Index
}

func New(a *auth.Service, r *reports.Service, n *notify.Dispatcher, s *stations.Index) *Handler {
	return &Handler{Auth: a, Reports: r, Notifier: n, Stations: s}
}

// checkVersion rejects POST bodies that do not carry the expected API
// version, mirroring what every caller already sends.
func checkVersion(c *gin.Context, endpoint, version string) bool {
	if version != api.APIVersion {
		log.Warnf("Bad version in %s, expected: %s, got: %s", endpoint, api.APIVersion, version)
		c.String(http.StatusNotAcceptable, "Bad API version, expecting 2.0.") // 406
		return false
	}
	return true
}
