// Package http wires the portal's controllers into a Gin router.
package http

import (
	"github.com/gin-gonic/gin"

	"github.com/nasugbu/geoportal/internal/auth"
)

// NewRouter creates and configures the HTTP router with all endpoints.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	// Apply security headers to all responses
	router.Use(auth.SecurityHeadersMiddleware())

	// CSRF must run before session so that session context is preserved
	if len(cfg.CSRFSecret) > 0 {
		router.Use(auth.CSRFMiddleware(cfg.CSRFSecret, cfg.SecureCookies))
	}

	// Session runs after CSRF so session context isn't overwritten by
	// CSRF's request replacement
	router.Use(cfg.SessionManager.SessionLoadSave())

	// Resolve the request principal once; handlers pass it on explicitly
	router.Use(cfg.AuthMiddleware.Handler())

	authController := auth.NewController(cfg.AuthService, cfg.SessionManager)
	authController.RegisterRoutes(router)

	geojson := NewGeoJSONController(cfg.GeoJSONPath)
	router.GET("/api/geojson/", geojson.Data)

	health := NewHealthController(cfg.Database, cfg.Version)
	router.GET("/health", health.Status)

	return router
}
