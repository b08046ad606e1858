package middleware

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/freelance-desk/internal/auth"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
)

const (
	ContextUserID      = "userID"
	ContextWorkspaceID = "workspaceID"
	ContextAccess      = "workspaceAccess"
)

// AuthMiddleware accepts the bearer header or the token cookie.
func AuthMiddleware(tokens *auth.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenString := auth.ExtractToken(c.Request)
		if tokenString == "" {
			httperr.Unauthorized(c, "missing_token", "Authentication required")
			return
		}

		claims := tokens.Verify(tokenString)
		if claims == nil {
			httperr.Unauthorized(c, "invalid_token", "Invalid or expired token")
			return
		}

		c.Set(ContextUserID, claims.UserID)
		c.Set(ContextWorkspaceID, claims.WorkspaceID)

		c.Next()
	}
}

func UserID(c *gin.Context) uint {
	return c.MustGet(ContextUserID).(uint)
}

// TokenWorkspaceID is nil for tokens issued without a workspace.
func TokenWorkspaceID(c *gin.Context) *uint {
	v, ok := c.Get(ContextWorkspaceID)
	if !ok {
		return nil
	}
	id, _ := v.(*uint)
	return id
}
