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

type CancelAppointment struct {
	repo  domain.Repository
	cache domain.AvailabilityCache
	audit *audit.Dispatcher
	loc   *time.Location
}

func NewCancelAppointment(
	repo domain.Repository,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
	loc *time.Location,
) *CancelAppointment {
	return &CancelAppointment{
		repo:  repo,
		cache: cache,
		audit: audit,
		loc:   loc,
	}
}

// Execute cancels a BOOKED appointment on behalf of its customer or its
// doctor. The slot becomes bookable again.
func (uc *CancelAppointment) Execute(
	ctx context.Context,
	viewer identity.Identity,
	appointmentID uint,
) (*models.Appointment, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !ownedBy(ap, viewer) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	if err := domain.Cancel(ap, timezone.NowIn(uc.loc)); err != nil {
		return nil, err
	}
	if err := uc.repo.UpdateAppointmentStatus(ctx, ap, domain.StatusBooked); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, ap.DoctorID, ap.Date)

	uc.audit.Dispatch(audit.Event{
		ActorID:   &viewer.UserID,
		ActorRole: string(viewer.Role),
		DoctorID:  &ap.DoctorID,
		Action:    "appointment_cancelled",
		Entity:    "appointment",
		EntityID:  &ap.ID,
	})

	return ap, nil
}

// ownedBy reports whether viewer is the customer or doctor on ap.
func ownedBy(ap *models.Appointment, viewer identity.Identity) bool {
	switch viewer.Role {
	case identity.RoleCustomer:
		return ap.CustomerID == viewer.UserID
	case identity.RoleDoctor:
		return ap.DoctorID == viewer.UserID
	}
	return false
}
