package handlers

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/httpresp"
	"github.com/pranamithra/scheduler/internal/models"
	ucAppointment "github.com/pranamithra/scheduler/internal/usecase/appointment"
)

////////////////////////////////////////////////////////
// HANDLER
////////////////////////////////////////////////////////

// PublicHandler serves what a customer needs before logging in: the doctor
// directory and per-day availability.
type PublicHandler struct {
	db           *gorm.DB
	availability *ucAppointment.GetAvailability
	log          zerolog.Logger
}

func NewPublicHandler(
	db *gorm.DB,
	availability *ucAppointment.GetAvailability,
	log zerolog.Logger,
) *PublicHandler {
	return &PublicHandler{
		db:           db,
		availability: availability,
		log:          log,
	}
}

////////////////////////////////////////////////////////
// DTOs
////////////////////////////////////////////////////////

type PublicDoctorDTO struct {
	ID             uint   `json:"id"`
	FullName       string `json:"full_name"`
	HospitalName   string `json:"hospital_name"`
	Specialization string `json:"specialization"`
	ProfileImage   string `json:"profile_image"`
}

////////////////////////////////////////////////////////
// DOCTORS
////////////////////////////////////////////////////////

// ListDoctors returns verified doctors, optionally filtered by
// ?specialization= (case-insensitive).
func (h *PublicHandler) ListDoctors(c *gin.Context) {
	q := h.db.WithContext(c.Request.Context()).
		Model(&models.Doctor{}).
		Where("status = ?", models.DoctorVerified)

	if spec := strings.TrimSpace(c.Query("specialization")); spec != "" {
		q = q.Where("LOWER(specialization) = ?", strings.ToLower(spec))
	}

	var doctors []models.Doctor
	if err := q.Order("full_name ASC").Find(&doctors).Error; err != nil {
		httperr.Respond(c, h.log, httperr.Store("list doctors", err))
		return
	}

	out := make([]PublicDoctorDTO, 0, len(doctors))
	for _, d := range doctors {
		out = append(out, PublicDoctorDTO{
			ID:             d.ID,
			FullName:       d.FullName,
			HospitalName:   d.HospitalName,
			Specialization: d.Specialization,
			ProfileImage:   d.ProfileImage,
		})
	}

	httpresp.List(c, out)
}

////////////////////////////////////////////////////////
// AVAILABILITY
////////////////////////////////////////////////////////

func (h *PublicHandler) Availability(c *gin.Context) {
	doctorID, ok := idParam(c, "id")
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(400, httperr.HTTPError{
			Code:    "missing_field",
			Message: "A required field is missing.",
			Field:   "date",
		})
		return
	}

	slots, err := h.availability.Execute(c.Request.Context(), doctorID, date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, slots)
}
