package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/pranamithra/scheduler/internal/audit"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
)

// AdminHandler runs the doctor verification workflow and the doctor and
// customer directories. Each route is gated by one AdminPermission.
type AdminHandler struct {
	db    *gorm.DB
	audit *audit.Dispatcher
	log   zerolog.Logger
}

func NewAdminHandler(db *gorm.DB, audit *audit.Dispatcher, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{db: db, audit: audit, log: log}
}

// Allow rejects admins whose row does not grant perm. The row is read on every
// request so revoked permissions apply before the token expires.
func (h *AdminHandler) Allow(perm models.AdminPermission) gin.HandlerFunc {
	return func(c *gin.Context) {
		caller, ok := viewer(c)
		if !ok {
			c.Abort()
			return
		}

		var admin models.Admin
		err := h.db.WithContext(c.Request.Context()).First(&admin, caller.UserID).Error
		switch {
		case errors.Is(err, gorm.ErrRecordNotFound):
			httperr.Forbidden(c, "forbidden", "You do not have permission for this action.")
			c.Abort()
			return
		case err != nil:
			httperr.Respond(c, h.log, httperr.Store("get admin", err))
			c.Abort()
			return
		}

		if !admin.Allows(perm) {
			h.log.Warn().
				Uint("admin_id", admin.ID).
				Str("permission", string(perm)).
				Msg("admin permission denied")
			httperr.Forbidden(c, "forbidden", "You do not have permission for this action.")
			c.Abort()
			return
		}
		c.Next()
	}
}

type DoctorStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *AdminHandler) SetDoctorStatus(c *gin.Context) {
	admin, ok := viewer(c)
	if !ok {
		return
	}
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req DoctorStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	status := models.DoctorStatus(req.Status)
	if !status.Valid() {
		httperr.Respond(c, h.log, httperr.ErrValidation("invalid_status", "status"))
		return
	}

	ctx := c.Request.Context()

	var doctor models.Doctor
	if err := h.db.WithContext(ctx).First(&doctor, doctorID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			httperr.Respond(c, h.log, httperr.ErrNotFound("doctor_not_found"))
			return
		}
		httperr.Respond(c, h.log, httperr.Store("get doctor", err))
		return
	}

	previous := doctor.Status
	if err := h.db.WithContext(ctx).
		Model(&doctor).
		Update("status", status).Error; err != nil {
		httperr.Respond(c, h.log, httperr.Store("update doctor status", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:   &admin.UserID,
		ActorRole: string(admin.Role),
		DoctorID:  &doctor.ID,
		Action:    "doctor_status_changed",
		Entity:    "doctor",
		EntityID:  &doctor.ID,
		Metadata: map[string]any{
			"from": previous,
			"to":   status,
		},
	})

	c.JSON(http.StatusOK, gin.H{
		"id":     doctor.ID,
		"status": status,
	})
}

// ListDoctors pages through every doctor regardless of status, optionally
// filtered by ?status=.
func (h *AdminHandler) ListDoctors(c *gin.Context) {
	status := models.DoctorStatus(strings.ToUpper(strings.TrimSpace(c.Query("status"))))
	if status != "" && !status.Valid() {
		httperr.Respond(c, h.log, httperr.ErrValidation("invalid_status", "status"))
		return
	}

	page, limit, offset := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Doctor{})
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, httperr.Store("count doctors", err))
		return
	}

	var doctors []models.Doctor
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&doctors).Error; err != nil {

		httperr.Respond(c, h.log, httperr.Store("list doctors", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":    page,
		"limit":   limit,
		"total":   total,
		"doctors": doctors,
	})
}

func (h *AdminHandler) ListCustomers(c *gin.Context) {
	page, limit, offset := pageParams(c)

	q := h.db.WithContext(c.Request.Context()).Model(&models.Customer{})

	var total int64
	if err := q.Count(&total).Error; err != nil {
		httperr.Respond(c, h.log, httperr.Store("count customers", err))
		return
	}

	var customers []models.Customer
	if err := q.
		Order("created_at DESC").
		Order("id DESC").
		Limit(limit).
		Offset(offset).
		Find(&customers).Error; err != nil {

		httperr.Respond(c, h.log, httperr.Store("list customers", err))
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"page":      page,
		"limit":     limit,
		"total":     total,
		"customers": customers,
	})
}

// DeleteDoctor removes a doctor together with their schedules and pricing.
// Appointments are never deleted, so a doctor with any appointment history
// is refused with doctor_has_appointments; REJECTED is the way to retire them.
func (h *AdminHandler) DeleteDoctor(c *gin.Context) {
	admin, ok := viewer(c)
	if !ok {
		return
	}
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var doctor models.Doctor
	err := h.db.WithContext(c.Request.Context()).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			First(&doctor, doctorID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return httperr.ErrNotFound("doctor_not_found")
			}
			return err
		}

		var booked int64
		if err := tx.
			Model(&models.Appointment{}).
			Where("doctor_id = ?", doctorID).
			Count(&booked).Error; err != nil {
			return err
		}
		if booked > 0 {
			return httperr.ErrConflict("doctor_has_appointments")
		}

		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.Schedule{}).Error; err != nil {
			return err
		}
		if err := tx.Where("doctor_id = ?", doctorID).Delete(&models.AppointmentCost{}).Error; err != nil {
			return err
		}
		return tx.Delete(&doctor).Error
	})

	switch {
	case err == nil:
	case httperr.IsForeignKeyViolation(err):
		httperr.Respond(c, h.log, httperr.ErrConflict("doctor_has_appointments"))
		return
	default:
		httperr.Respond(c, h.log, httperr.Store("delete doctor", err))
		return
	}

	h.audit.Dispatch(audit.Event{
		ActorID:   &admin.UserID,
		ActorRole: string(admin.Role),
		DoctorID:  &doctor.ID,
		Action:    "doctor_deleted",
		Entity:    "doctor",
		EntityID:  &doctor.ID,
		Metadata: map[string]any{
			"email":  doctor.Email,
			"status": doctor.Status,
		},
	})

	c.Status(http.StatusNoContent)
}
