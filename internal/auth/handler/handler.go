package handler

import (
	"net/http"

	"otraveznose/internal/logger"
	"otraveznose/internal/middleware"
	"otraveznose/internal/profiles"
	"otraveznose/internal/session"

	"github.com/gin-gonic/gin"
)

const (
	HomePath  = "/home"
	LoginPath = middleware.LoginPath
)

// CredentialValidator checks a username/password pair.
type CredentialValidator interface {
	Validate(username, password string) bool
}

type Handler struct {
	credentials CredentialValidator
	sessions    *session.Manager
	auth        *middleware.AuthMiddleware
}

func NewHandler(
	credentials CredentialValidator,
	sessions *session.Manager,
) *Handler {
	return &Handler{
		credentials: credentials,
		sessions:    sessions,
		auth:        middleware.NewAuthMiddleware(sessions),
	}
}

// RegisterRoutes mounts the login gate and the protected pages. The engine
// must have the page templates loaded.
func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/", h.LoginPage)
	r.POST("/login", h.Login)
	r.GET("/logout", h.Logout)

	protected := r.Group("/")
	protected.Use(middleware.GinRequireAuth(h.auth))

	protected.GET("/home", h.Home)
	protected.GET("/swipe", h.Swipe)
	protected.GET("/profile", h.Profile)
}

func (h *Handler) LoginPage(c *gin.Context) {
	c.HTML(http.StatusOK, "login.html", nil)
}

func (h *Handler) Home(c *gin.Context) {
	c.HTML(http.StatusOK, "home.html", gin.H{
		"User": middleware.Username(c),
	})
}

func (h *Handler) Swipe(c *gin.Context) {
	c.HTML(http.StatusOK, "swipe.html", gin.H{
		"User":     middleware.Username(c),
		"Profiles": profiles.All(),
	})
}

func (h *Handler) Profile(c *gin.Context) {
	c.HTML(http.StatusOK, "profile.html", gin.H{
		"User": middleware.Username(c),
	})
}

// Logout always ends on the login page, with or without a session.
func (h *Handler) Logout(c *gin.Context) {
	if err := h.sessions.End(c.Request.Context(), c.Writer, c.Request); err != nil {
		// cookie is already cleared; the record expires on its own
		logger.Warn("session delete failed on logout", map[string]any{
			"error": err.Error(),
			"ip":    c.ClientIP(),
		})
	}

	c.Redirect(http.StatusFound, LoginPath)
}
