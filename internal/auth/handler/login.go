package handler

import (
	"net/http"

	"otraveznose/internal/logger"

	"github.com/gin-gonic/gin"
)

// InvalidCredentialsMessage is the single answer to every failed login, so
// an unknown user, a wrong password and a missing field look the same.
const InvalidCredentialsMessage = "Usuario o contraseña incorrectos"

// Login checks the form credentials. Success starts a session and
// redirects home; failure answers 200 with an inline message.
func (h *Handler) Login(c *gin.Context) {
	username, hasUser := c.GetPostForm("username")
	password, hasPass := c.GetPostForm("password")

	// a missing or empty field is just another wrong guess
	if !hasUser || !hasPass || username == "" || password == "" ||
		!h.credentials.Validate(username, password) {
		logger.Info("login rejected", map[string]any{
			"ip": c.ClientIP(),
		})
		c.String(http.StatusOK, InvalidCredentialsMessage)
		return
	}

	if _, err := h.sessions.Start(c.Request.Context(), c.Writer, c.Request, username); err != nil {
		logger.Error("session start failed", map[string]any{
			"error": err.Error(),
		})
		c.String(http.StatusInternalServerError, "internal error")
		return
	}

	logger.Info("login succeeded", map[string]any{
		"username": username,
		"ip":       c.ClientIP(),
	})

	c.Redirect(http.StatusFound, HomePath)
}
