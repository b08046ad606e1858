package handlers

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/freelance-desk/internal/httperr"
	"github.com/BruksfildServices01/freelance-desk/internal/httpresp"
	"github.com/BruksfildServices01/freelance-desk/internal/models"
	"github.com/BruksfildServices01/freelance-desk/internal/timezone"
)

const (
	activityDefaultLimit = 50
	activityMaxLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type ActivityHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewActivityHandler(db *gorm.DB, loc *time.Location) *ActivityHandler {
	if loc == nil {
		loc = time.UTC
	}
	return &ActivityHandler{db: db, loc: loc}
}

type ActivityPage struct {
	Page  int                  `json:"page"`
	Limit int                  `json:"limit"`
	Total int64                `json:"total"`
	Logs  []models.ActivityLog `json:"logs"`
}

func (h *ActivityHandler) List(c *gin.Context) {
	page, limit := pageParams(c, activityDefaultLimit, activityMaxLimit)

	// --------------------------------------------------
	// Always scoped to the active workspace
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.ActivityLog{}).
		Where("workspace_id = ?", workspaceID(c))

	if action := strings.TrimSpace(c.Query("action")); action != "" {
		q = q.Where("action = ?", action)
	}
	if entity := strings.TrimSpace(c.Query("entity")); entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if from := c.Query("from"); from != "" {
		start, _, err := timezone.DayRange(from, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "from must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at >= ?", start)
	}
	if to := c.Query("to"); to != "" {
		_, end, err := timezone.DayRange(to, h.loc)
		if err != nil {
			httperr.BadRequest(c, "invalid_date", "to must be YYYY-MM-DD")
			return
		}
		q = q.Where("created_at < ?", end)
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Respond(c, err, "Failed to count activity")
		return
	}

	logs := []models.ActivityLog{}
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset((page - 1) * limit).
		Find(&logs).Error; err != nil {
		httperr.Respond(c, err, "Failed to list activity")
		return
	}

	httpresp.OK(c, "Activity loaded", ActivityPage{
		Page:  page,
		Limit: limit,
		Total: total,
		Logs:  logs,
	})
}
