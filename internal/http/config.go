package http

import (
	"github.com/nasugbu/geoportal/internal/auth"
	"github.com/nasugbu/geoportal/internal/database"
)

// RouterConfig contains all dependencies and configuration needed to create
// the HTTP router.
type RouterConfig struct {
	Database *database.Database

	// Authentication
	AuthService    *auth.Service
	AuthMiddleware *auth.Middleware
	SessionManager *auth.SessionManager
	CSRFSecret     []byte
	SecureCookies  bool

	// Map data
	GeoJSONPath string

	// Application info
	Version string
}
