package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Context keys for principal data
const (
	ContextKeyUserID   = "auth_user_id"
	ContextKeyUsername = "auth_username"
)

// AnonymousUserID is the principal ID when no user is logged in.
const AnonymousUserID = uint(0)

// Middleware resolves the current principal and guards protected routes.
type Middleware struct {
	service        *Service
	sessionManager *SessionManager
}

// NewMiddleware creates a new authentication middleware.
func NewMiddleware(service *Service, sessionManager *SessionManager) *Middleware {
	return &Middleware{
		service:        service,
		sessionManager: sessionManager,
	}
}

// Principal returns a middleware that resolves the current user from the
// session cookie on every request and stores it in the Gin context. Requests
// without a valid session proceed as anonymous; rejection is RequireAuth's
// job.
func (m *Middleware) Principal() gin.HandlerFunc {
	return func(c *gin.Context) {
		if user := m.resolveSessionUser(c); user != nil {
			c.Set(ContextKeyUserID, user.ID)
			c.Set(ContextKeyUsername, user.Username)
		}
		c.Next()
	}
}

// RequireAuth returns a middleware that rejects anonymous principals by
// redirecting to the login page, carrying the originally requested path in
// the next parameter so login can resume the navigation.
func (m *Middleware) RequireAuth() gin.HandlerFunc {
	return func(c *gin.Context) {
		if GetUserID(c) == AnonymousUserID {
			c.Redirect(http.StatusFound, "/login?next="+c.Request.URL.Path)
			c.Abort()
			return
		}
		c.Next()
	}
}

// resolveSessionUser loads the user referenced by the session, if any.
// A session pointing at a user that no longer loads yields anonymous.
func (m *Middleware) resolveSessionUser(c *gin.Context) *User {
	if m.sessionManager == nil {
		return nil
	}

	userID := m.sessionManager.GetUserID(c.Request)
	if userID == 0 {
		return nil
	}

	user, err := m.service.GetUserByID(userID)
	if err != nil {
		return nil
	}

	return &User{ID: user.ID, Username: user.Username}
}

// User is the resolved principal attached to the request context.
type User struct {
	ID       uint
	Username string
}

// Helper functions to extract principal data from the Gin context

// GetUserID retrieves the authenticated user's ID from the context.
// Returns AnonymousUserID (0) when no user is logged in.
func GetUserID(c *gin.Context) uint {
	if id, exists := c.Get(ContextKeyUserID); exists {
		if userID, ok := id.(uint); ok {
			return userID
		}
	}
	return AnonymousUserID
}

// GetUsername retrieves the authenticated user's username from the context.
func GetUsername(c *gin.Context) string {
	if name, exists := c.Get(ContextKeyUsername); exists {
		if username, ok := name.(string); ok {
			return username
		}
	}
	return ""
}

// IsAuthenticated returns true if a logged-in principal is attached to the
// request.
func IsAuthenticated(c *gin.Context) bool {
	return GetUserID(c) != AnonymousUserID
}
