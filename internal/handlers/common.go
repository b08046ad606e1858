package handlers

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"gorm.io/gorm"

	invoicedomain "github.com/BruksfildServices01/freelance-desk/internal/domain/invoice"
	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/identifier"
	"github.com/BruksfildServices01/freelance-desk/internal/middleware"
)

// External id widths, e.g. CL-48213.
const externalIDDigits = 5

// bindJSON writes the 400 itself and reports whether the handler may go on.
func bindJSON(c *gin.Context, dst any) bool {
	err := c.ShouldBindJSON(dst)
	if err == nil {
		return true
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		httperr.BadRequest(c, "validation_error", httperr.ValidationMessage(verrs))
		return false
	}
	httperr.BadRequest(c, "invalid_request", "Invalid request body")
	return false
}

func workspaceID(c *gin.Context) uint {
	return middleware.Access(c).Workspace.ID
}

// externalIDExists checks column for candidate inside one workspace.
func externalIDExists(db *gorm.DB, model any, wsID uint, column string) identifier.ExistsFunc {
	return func(ctx context.Context, candidate string) (bool, error) {
		var n int64
		err := db.WithContext(ctx).
			Model(model).
			Where("workspace_id = ? AND "+column+" = ?", wsID, candidate).
			Count(&n).Error
		return n > 0, err
	}
}

func likePattern(search string) string {
	return "%" + strings.ToLower(strings.TrimSpace(search)) + "%"
}

// parseOptionalDate maps nil/"" to nil and rejects anything that is not
// YYYY-MM-DD or RFC3339.
func parseOptionalDate(raw *string, loc *time.Location) (*time.Time, bool) {
	if raw == nil {
		return nil, true
	}
	return invoicedomain.ParseDate(*raw, loc)
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	v := strings.TrimSpace(*s)
	return &v
}

func pageParams(c *gin.Context, defaultLimit, maxLimit int) (page, limit int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", strconv.Itoa(defaultLimit)))
	if limit <= 0 || limit > maxLimit {
		limit = defaultLimit
	}
	return page, limit
}
