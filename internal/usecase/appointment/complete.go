package appointment

import (
	"context"
	"time"

	"github.com/pranamithra/scheduler/internal/audit"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
	"github.com/pranamithra/scheduler/internal/timezone"
)

type CompleteAppointment struct {
	repo  domain.Repository
	cache domain.AvailabilityCache
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCompleteAppointment(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CompleteAppointment {
	return &CompleteAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
		loc:   loc,
	}
}

func (uc *CompleteAppointment) Execute(
	ctx context.Context,
	doctorID uint,
	appointmentID uint,
	code string,
) (*models.Appointment, error) {

	if code == "" {
		return nil, httperr.ErrValidation("missing_field", "verification_code")
	}

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if ap.DoctorID != doctorID {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := domain.Complete(ap, code, timezone.NowIn(uc.loc)); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, domain.StatusBooked); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.DoctorID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		ActorID:   &doctorID,
		ActorRole: string(identity.RoleDoctor),
		DoctorID:  &doctorID,
		Action:    "appointment_completed",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}
