package handlers

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
	"github.com/pranamithra/scheduler/internal/timezone"
)

// ======================================================
// HANDLER
// ======================================================

type AuditLogsHandler struct {
	db  *gorm.DB
	loc *time.Location
	log zerolog.Logger
}

func NewAuditLogsHandler(db *gorm.DB, loc *time.Location, log zerolog.Logger) *AuditLogsHandler {
	return &AuditLogsHandler{db: db, loc: loc, log: log}
}

func (h *AuditLogsHandler) List(c *gin.Context) {
	action := c.Query("action")
	entity := c.Query("entity")
	doctorStr := c.Query("doctor_id")
	fromStr := c.Query("from")
	toStr := c.Query("to")

	page, limit, offset := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.AuditLog{})

	// --------------------------------------------------
	// Optional filters
	// --------------------------------------------------

	if action != "" {
		q = q.Where("action = ?", action)
	}

	if entity != "" {
		q = q.Where("entity = ?", entity)
	}

	if doctorStr != "" {
		if doctorID, err := strconv.ParseUint(doctorStr, 10, 64); err == nil {
			q = q.Where("doctor_id = ?", doctorID)
		}
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

	// --------------------------------------------------
	// Total
	// --------------------------------------------------

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, httperr.Store("count audit logs", err))
		return
	}

	// --------------------------------------------------
	// Page
	// --------------------------------------------------

	var logs []models.AuditLog
	if err := q.
		Order("created_at DESC").
		Limit(limit).
		Offset(offset).
		Find(&logs).Error; err != nil {

		httperr.Respond(c, h.log, httperr.Store("list audit logs", err))
		return
	}

	c.JSON(200, gin.H{
		"page":  page,
		"limit": limit,
		"total": total,
		"logs":  logs,
	})
}
