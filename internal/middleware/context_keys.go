package middleware

import (
	"context"

	"github.com/famled/family_finance_app/internal/rbac"
	"github.com/gin-gonic/gin"
)

// contextKey is a private type for context keys to prevent collisions.
type contextKey string

const (
	loggerCtxKey contextKey = "logger"
	userIDKey    contextKey = "userID"
	userRoleKey  contextKey = "userRole"
)

// GetUserIDFromContext retrieves the authenticated user ID set by the auth
// middleware. It returns the user ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, ok := c.Request.Context().Value(userIDKey).(string)
	return userID, ok && userID != ""
}

// GetUserRoleFromContext retrieves the authenticated user's global role set
// by the auth middleware.
func GetUserRoleFromContext(c *gin.Context) (rbac.Role, bool) {
	role, ok := c.Request.Context().Value(userRoleKey).(rbac.Role)
	return role, ok && role.IsValid()
}

// WithUserContext stores user identity in a standard context; used by the
// auth middleware and by tests that exercise handlers directly.
func WithUserContext(ctx context.Context, userID string, role rbac.Role) context.Context {
	ctx = context.WithValue(ctx, userIDKey, userID)
	return context.WithValue(ctx, userRoleKey, role)
}
