package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/pranamithra/scheduler/internal/confirmation"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/httpresp"
	"github.com/pranamithra/scheduler/internal/infra/blob"
	ucAppointment "github.com/pranamithra/scheduler/internal/usecase/appointment"
)

// ======================================================
// HANDLER
// ======================================================

type AppointmentHandler struct {
	book        *ucAppointment.Book
	cancel      *ucAppointment.CancelAppointment
	complete    *ucAppointment.CompleteAppointment
	listMine    *ucAppointment.ListForCustomer
	detail      *ucAppointment.Detail
	findByToken *ucAppointment.FindByToken
	dashboard   *ucAppointment.Dashboard

	archive blob.Archive
	log     zerolog.Logger
}

func NewAppointmentHandler(
	book *ucAppointment.Book,
	cancel *ucAppointment.CancelAppointment,
	complete *ucAppointment.CompleteAppointment,
	listMine *ucAppointment.ListForCustomer,
	detail *ucAppointment.Detail,
	findByToken *ucAppointment.FindByToken,
	dashboard *ucAppointment.Dashboard,
	archive blob.Archive,
	log zerolog.Logger,
) *AppointmentHandler {
	return &AppointmentHandler{
		book:        book,
		cancel:      cancel,
		complete:    complete,
		listMine:    listMine,
		detail:      detail,
		findByToken: findByToken,
		dashboard:   dashboard,
		archive:     archive,
		log:         log,
	}
}

// ======================================================
// REQUESTS
// ======================================================

// BookRequest fields are checked by the use case so that a missing one is
// reported by name.
type BookRequest struct {
	DoctorID        uint    `json:"doctor_id"`
	Date            string  `json:"date"`
	SlotLabel       string  `json:"slot_label"`
	DurationMinutes int     `json:"duration_minutes"`
	Amount          float64 `json:"amount"`
}

type CompleteRequest struct {
	VerificationCode string `json:"verification_code" binding:"required"`
}

// ======================================================
// CUSTOMER
// ======================================================

func (h *AppointmentHandler) Book(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	var req BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	res, err := h.book.Execute(c.Request.Context(), ucAppointment.BookInput{
		DoctorID:        req.DoctorID,
		CustomerID:      id.UserID,
		Date:            req.Date,
		SlotLabel:       req.SlotLabel,
		DurationMinutes: req.DurationMinutes,
		Amount:          req.Amount,
	})
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusCreated, res)
}

func (h *AppointmentHandler) ListMine(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	apps, err := h.listMine.Execute(c.Request.Context(), id.UserID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.List(c, apps)
}

// Detail serves customers, doctors and admins; the use case decides what the
// caller may see.
func (h *AppointmentHandler) Detail(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}
	appointmentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.detail.Execute(c.Request.Context(), id, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, detail)
}

// Confirmation renders the printable PDF and archives a copy. A failed
// upload is logged; the customer still gets the document.
func (h *AppointmentHandler) Confirmation(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}
	appointmentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	detail, err := h.detail.Execute(c.Request.Context(), id, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	pdf, err := confirmation.Render(detail)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	if err := h.archive.Put(
		c.Request.Context(),
		blob.ConfirmationKey(detail.QRToken),
		pdf,
		confirmation.ContentType,
	); err != nil {
		h.log.Warn().Err(err).Uint("appointment_id", detail.ID).Msg("confirmation archive failed")
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="appointment-%d.pdf"`, detail.ID))
	c.Data(http.StatusOK, confirmation.ContentType, pdf)
}

// Cancel is shared by customers and doctors.
func (h *AppointmentHandler) Cancel(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}
	appointmentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	ap, err := h.cancel.Execute(c.Request.Context(), id, appointmentID)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           ap.ID,
		"status":       ap.Status,
		"cancelled_at": ap.CancelledAt,
	})
}

// ======================================================
// DOCTOR
// ======================================================

func (h *AppointmentHandler) Complete(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}
	appointmentID, ok := idParam(c, "id")
	if !ok {
		return
	}

	var req CompleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.Binding(c, err)
		return
	}

	ap, err := h.complete.Execute(c.Request.Context(), id.UserID, appointmentID, req.VerificationCode)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":           ap.ID,
		"status":       ap.Status,
		"completed_at": ap.CompletedAt,
	})
}

func (h *AppointmentHandler) FindByToken(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	detail, err := h.findByToken.Execute(c.Request.Context(), id.UserID, c.Param("token"))
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, detail)
}

func (h *AppointmentHandler) Dashboard(c *gin.Context) {
	id, ok := viewer(c)
	if !ok {
		return
	}

	date := c.Query("date")
	if date == "" {
		c.JSON(http.StatusBadRequest, httperr.HTTPError{
			Code:    "missing_field",
			Message: "A required field is missing.",
			Field:   "date",
		})
		return
	}

	dash, err := h.dashboard.Execute(c.Request.Context(), id.UserID, date)
	if err != nil {
		httperr.Respond(c, h.log, err)
		return
	}

	httpresp.OK(c, dash)
}
