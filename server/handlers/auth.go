package handlers

import (
	"errors"
	"net/http"

	"github.com/apex/log"
	"github.com/gin-gonic/gin"

	"segnalapp/models"
	"segnalapp/server/api"
)

func (h *Handler) Register(c *gin.Context) {
	var args api.RegisterArgs
	if err := c.BindJSON(&args); err != nil {
		log.WithError(err).Warnf("Failed to read the argument in %s call", api.EndPointRegister)
		c.String(http.StatusBadRequest, "Could not read JSON input.") // 400
		return
	}
	if !checkVersion(c, api.EndPointRegister, args.Version) {
		return
	}

	id, err := h.Auth.Register(args.Email, args.Password, models.Role(args.Role))
	if err != nil {
		log.WithError(err).Errorf("Failed to register %s", args.Email)
		c.String(http.StatusInternalServerError, "Failed to create the user.") // 500
		return
	}
	c.IndentedJSON(http.StatusOK, api.RegisterResp{UserID: id}) // 200
}

func (h *Handler) Login(c *gin.Context) {
	var args api.LoginArgs
	if err := c.BindJSON(&args); err != nil {
		log.WithError(err).Warnf("Failed to read the argument in %s call", api.EndPointLogin)
		c.String(http.StatusBadRequest, "Could not read JSON input.") // 400
		return
	}
	if !checkVersion(c, api.EndPointLogin, args.Version) {
		return
	}

	user, err := h.Auth.Login(args.Email, args.Password)
	if errors.Is(err, models.ErrInvalidCredentials) {
		c.String(http.StatusUnauthorized, "Login failed.") // 401
		return
	}
	if err != nil {
		log.WithError(err).Errorf("Login lookup failed for %s", args.Email)
		c.String(http.StatusInternalServerError, "Failed to check credentials.") // 500
		return
	}
	c.IndentedJSON(http.StatusOK, api.LoginResp{UserID: user.ID, Role: string(user.Role)}) // 200
}
