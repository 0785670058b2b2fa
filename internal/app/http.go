package app

import (
	"context"
	"fmt"
	"net/http"

	"otraveznose/internal/auth/handler"
	"otraveznose/internal/config"
	"otraveznose/internal/logger"
	"otraveznose/internal/middleware"
	"otraveznose/internal/session"
	"otraveznose/internal/web"

	"github.com/gin-gonic/gin"
)

func setupHTTP(ctx context.Context, cfg config.Config) (*gin.Engine, func() error, error) {

	infra, err := setupInfra(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}

	// ----------------------------
	// Dependencies
	// ----------------------------

	sessions, err := session.NewManager(infra.Sessions, session.ManagerConfig{
		Secret: []byte(cfg.SessionSecret),
		TTL:    cfg.SessionTTL,
		Cookie: session.CookieOptions{
			Secure:   cfg.CookieSecure,
			SameSite: http.SameSiteLaxMode,
		},
	})
	if err != nil {
		_ = infra.Close()
		return nil, nil, err
	}

	authHandler := handler.NewHandler(infra.Credentials, sessions)

	tmpl, err := web.Templates()
	if err != nil {
		_ = infra.Close()
		return nil, nil, fmt.Errorf("app: templates: %w", err)
	}

	// ----------------------------
	// Router
	// ----------------------------

	if cfg.GinMode != "" {
		gin.SetMode(cfg.GinMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger())
	router.SetHTMLTemplate(tmpl)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	if cfg.StaticDir != "" {
		router.Static("/static", cfg.StaticDir)
	}

	// ----------------------------
	// Login gate and protected pages
	// ----------------------------

	authHandler.RegisterRoutes(router)

	for _, route := range router.Routes() {
		logger.Info("route registered", map[string]any{
			"method": route.Method,
			"path":   route.Path,
		})
	}

	return router, infra.Close, nil
}
