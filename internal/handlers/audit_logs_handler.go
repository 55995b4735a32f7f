package handlers

import (
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/coachtrack/internal/httperr"
	"github.com/BruksfildServices01/coachtrack/internal/httpresp"
	"github.com/BruksfildServices01/coachtrack/internal/models"
	"github.com/BruksfildServices01/coachtrack/internal/timezone"
)

const (
	defaultAuditLimit = 50
	maxAuditLimit     = 200
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location) *AuditLogsHandler {
	if loc == nil {
		loc = timezone.Location("")
	}
	return &AuditLogsHandler{db: db, loc: loc}
}

// List returns the events the caller performed, newest first.
func (h *AuditLogsHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		return
	}

	action := c.Query("action")
	entity := c.Query("entity")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, limit, offset := httpresp.PageParams(c, defaultAuditLimit, maxAuditLimit)

	// --------------------------------------------------
	// Base query, always scoped to the caller
	// --------------------------------------------------

	q := h.db.WithContext(c.Request.Context()).
		Model(&models.AuditLog{}).
		Where("actor_id = ?", userID)

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if fromStr != "" {
		if from, err := time.ParseInLocation(timezone.DateLayout, fromStr, h.loc); err == nil {
			q = q.Where("created_at >= ?", from)
		}
	}

	if toStr != "" {
		if to, err := time.ParseInLocation(timezone.DateLayout, toStr, h.loc); err == nil {
			q = q.Where("created_at < ?", to.AddDate(0, 0, 1))
		}
	}

	var total int64
	if err := q.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		httperr.Internal(c, "audit_count_failed", "Could not count audit logs.")
		return
	}

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Internal(c, "audit_list_failed", "Could not list audit logs.")
		return
	}

	httpresp.Page(c, page, limit, total, "logs", logs)
}
