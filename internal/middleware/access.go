package middleware

import (
	"context"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/usecase/workspace"
)

type AccessResolver interface {
	Execute(ctx context.Context, userID uint, workspaceID *uint) (*workspace.Access, error)
}

// WorkspaceAccess loads the caller's role in the active workspace. It must
// run after AuthMiddleware.
func WorkspaceAccess(resolver AccessResolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		acc, err := resolver.Execute(c.Request.Context(), UserID(c), TokenWorkspaceID(c))
		if err != nil {
			httperr.Respond(c, err, "Failed to load workspace")
			return
		}

		c.Set(ContextAccess, acc)
		c.Next()
	}
}

// RequireMenu lets owners through and checks everyone else against the
// workspace permission list for key.
func RequireMenu(key string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if !Access(c).Can(key) {
			httperr.Forbidden(c, "menu_forbidden", "You do not have access to "+key)
			return
		}
		c.Next()
	}
}

func Access(c *gin.Context) *workspace.Access {
	return c.MustGet(ContextAccess).(*workspace.Access)
}
