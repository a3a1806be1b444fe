package handlers

import (
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"
)

// Notifications returns the inbox of one operator, oldest first.
func (h *Handler) Notifications(c *gin.Context) {
	email := c.Query("operator_email")
	if email == "" {
		c.String(http.StatusBadRequest, "Missing operator_email.") // 400
		return
	}
	list, err := h.Notifier.ListForOperator(email)
	if err != nil {
		log.WithError(err).Errorf("Failed to list notifications for %s", email)
		c.String(http.StatusInternalServerError, "Failed to read notifications.") // 500
		return
	}
	c.IndentedJSON(http.StatusOK, list) // 200
}

// StationNames feeds the station picker of the report form.
func (h *Handler) StationNames(c *gin.Context) {
	c.IndentedJSON(http.StatusOK, h.Stations.Names()) // 200
}
