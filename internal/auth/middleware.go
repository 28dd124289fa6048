package auth

import (
	"github.com/gin-gonic/gin"

	"github.com/nasugbu/geoportal/internal/entities"
)

// ContextKeyUser is the Gin context key holding the request principal.
const ContextKeyUser = "auth_user"

// Middleware resolves the request principal from the session.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new principal-loading middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// Handler loads the account bound to the session, if any, into the Gin
// context. It never aborts: whether a principal is required is decided per
// endpoint, and the principal is always passed on explicitly rather than
// re-read from session state downstream.
func (m *Middleware) Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		if m.sessionManager.IsAuthenticated(c.Request) {
			userID := m.sessionManager.GetUserID(c.Request)
			if user, err := m.service.GetUserByID(userID); err == nil {
				c.Set(ContextKeyUser, user)
			}
		}
		c.Next()
	}
}

// CurrentUser retrieves the request principal from the Gin context.
// Returns nil for unauthenticated requests.
func CurrentUser(c *gin.Context) *entities.User {
	if v, exists := c.Get(ContextKeyUser); exists {
		if user, ok := v.(*entities.User); ok {
			return user
		}
	}
	return nil
}
