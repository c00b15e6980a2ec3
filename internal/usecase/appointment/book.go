package appointment

import (
	"context"
	"time"

	"github.com/pranamithra/scheduler/internal/audit"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
	"github.com/pranamithra/scheduler/internal/timezone"
)

// ======================================================
// INPUT / OUTPUT
// ======================================================

// BookInput.Amount is what the client displayed; it is never stored. The
// charged amount comes from the doctor's price for the duration tier.
type BookInput struct {
	DoctorID        uint
	CustomerID      uint
	Date            string
	SlotLabel       string
	DurationMinutes int
	Amount          float64
}

type BookingResult struct {
	BookingID        uint    `json:"booking_id"`
	VerificationCode string  `json:"verification_code"`
	QRToken          string  `json:"qr_token"`
	Status           string  `json:"status"`
	Amount           float64 `json:"amount"`
}

// ======================================================
// USE CASE
// ======================================================

type Book struct {
	repo  domain.Repository
	cache domain.AvailabilityCache
	audit *audit.Dispatcher
	loc   *time.Location
	now   func() time.Time
}

func NewBook(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	loc *time.Location,
) *Book {
	return &Book{
		repo:  repo,
		cache: cache,
		audit: audit,
		loc:   loc,
		now:   time.Now,
	}
}

// WithClock replaces the time source used for the past-date check.
func (uc *Book) WithClock(now func() time.Time) *Book {
	uc.now = now
	return uc
}

// ======================================================
// EXECUTE
// ======================================================

func (uc *Book) Execute(
	ctx context.Context,
	in BookInput,
) (*BookingResult, error) {

	// --------------------------------------------------
	// Required fields
	// --------------------------------------------------
	switch {
	case in.DoctorID == 0:
		return nil, httperr.ErrValidation("missing_field", "doctor_id")
	case in.CustomerID == 0:
		return nil, httperr.ErrValidation("missing_field", "customer_id")
	case in.Date == "":
		return nil, httperr.ErrValidation("missing_field", "date")
	case in.SlotLabel == "":
		return nil, httperr.ErrValidation("missing_field", "slot_label")
	case in.DurationMinutes == 0:
		return nil, httperr.ErrValidation("missing_field", "duration_minutes")
	}

	if !slot.ValidDuration(in.DurationMinutes) {
		return nil, httperr.ErrValidation("invalid_duration", "duration_minutes")
	}

	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date")
	}
	if date < timezone.Today(uc.now().In(uc.loc)) {
		return nil, httperr.ErrValidation("date_in_past", "date")
	}

	// --------------------------------------------------
	// Schedule
	// --------------------------------------------------
	sched, err := uc.repo.GetSchedule(ctx, in.DoctorID, date)
	if err != nil {
		return nil, err
	}
	if !sched.Slots.Contains(in.SlotLabel) {
		return nil, httperr.ErrValidation("invalid_slot", "slot_label")
	}
	if sched.SlotDurationMinutes != in.DurationMinutes {
		return nil, httperr.ErrValidation("duration_mismatch", "duration_minutes")
	}

	// --------------------------------------------------
	// Parties
	// --------------------------------------------------
	doctor, err := uc.repo.GetDoctor(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	if doctor.Status != models.DoctorVerified {
		return nil, httperr.ErrBusiness("doctor_not_verified")
	}

	if _, err := uc.repo.GetCustomer(ctx, in.CustomerID); err != nil {
		return nil, err
	}

	// --------------------------------------------------
	// Price
	// --------------------------------------------------
	cost, err := uc.repo.GetCost(ctx, in.DoctorID)
	if err != nil {
		return nil, err
	}
	amount, ok := cost.For(in.DurationMinutes)
	if !ok {
		return nil, httperr.ErrNotFound("pricing_not_found")
	}

	// --------------------------------------------------
	// Codes + atomic insert
	// --------------------------------------------------

	// BookSlot repeats the schedule checks under the row lock.
	code, err := domain.NewVerificationCode()
	if err != nil {
		return nil, httperr.Store("generate verification code", err)
	}

	ap := &models.Appointment{
		DoctorID:         in.DoctorID,
		CustomerID:       in.CustomerID,
		Date:             date,
		SlotLabel:        in.SlotLabel,
		DurationMinutes:  in.DurationMinutes,
		Amount:           amount,
		VerificationCode: code,
		QRToken:          domain.NewQRToken(),
		Status:           string(domain.InitialStatus()),
	}

	if err := uc.repo.BookSlot(ctx, ap); err != nil {
		if httperr.IsBusiness(err, "slot_already_booked") {
			uc.audit.Dispatch(audit.Event{
				ActorID:   &in.CustomerID,
				ActorRole: string(identity.RoleCustomer),
				DoctorID:  &in.DoctorID,
				Action:    "appointment_conflict",
				Entity:    "appointment",
				Metadata: map[string]any{
					"date": date,
					"slot": in.SlotLabel,
				},
			})
		}
		return nil, err
	}

	uc.cache.Invalidate(ctx, in.DoctorID, date)

	uc.audit.Dispatch(audit.Event{
		ActorID:   &in.CustomerID,
		ActorRole: string(identity.RoleCustomer),
		DoctorID:  &in.DoctorID,
		Action:    "appointment_booked",
		Entity:    "appointment",
		EntityID:  &ap.ID,
		Metadata: map[string]any{
			"date":   date,
			"slot":   in.SlotLabel,
			"amount": amount,
		},
	})

	return &BookingResult{
		BookingID:        ap.ID,
		VerificationCode: ap.VerificationCode,
		QRToken:          ap.QRToken,
		Status:           ap.Status,
		Amount:           ap.Amount,
	}, nil
}
