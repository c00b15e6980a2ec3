package schedule

import (
	"context"

	"github.com/pranamithra/scheduler/internal/audit"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
	"github.com/pranamithra/scheduler/internal/timezone"
)

type SaveInput struct {
	Date            string
	LoginTime       string
	LogoutTime      string
	DurationMinutes int
	SelectedSlots   []string
}

type SaveSchedule struct {
	repo  domain.ScheduleRepository
	cache domain.AvailabilityCache
	audit *audit.Dispatcher
}

func NewSaveSchedule(
	repo domain.ScheduleRepository,
	cache domain.AvailabilityCache,
	audit *audit.Dispatcher,
) *SaveSchedule {
	return &SaveSchedule{
		repo:  repo,
		cache: cache,
		audit: audit,
	}
}

// Execute replaces the doctor's schedule for in.Date. Every selected slot
// must come out of the generator for the submitted hours; the stored list
// follows generator order no matter how the caller ordered it.
func (uc *SaveSchedule) Execute(
	ctx context.Context,
	doctorID uint,
	in SaveInput,
) (*models.Schedule, error) {

	if in.Date == "" {
		return nil, httperr.ErrValidation("missing_field", "date")
	}
	date, err := timezone.ParseDate(in.Date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date")
	}

	w, err := parseWindow(in.LoginTime, in.LogoutTime, in.DurationMinutes)
	if err != nil {
		return nil, err
	}

	if len(in.SelectedSlots) == 0 {
		return nil, httperr.ErrValidation("empty_slots", "selected_slots")
	}

	selected, err := selectSlots(w.slots(), in.SelectedSlots)
	if err != nil {
		return nil, err
	}

	s := &models.Schedule{
		DoctorID:            doctorID,
		Date:                date,
		LoginTime:           w.login.String(),
		LogoutTime:          w.logout.String(),
		SlotDurationMinutes: w.duration,
		Slots:               selected,
	}

	if err := uc.repo.SaveSchedule(ctx, s); err != nil {
		return nil, err
	}

	uc.cache.Invalidate(ctx, doctorID, date)

	uc.audit.Dispatch(audit.Event{
		ActorID:   &doctorID,
		ActorRole: string(identity.RoleDoctor),
		DoctorID:  &doctorID,
		Action:    "schedule_saved",
		Entity:    "schedule",
		EntityID:  &s.ID,
		Metadata: map[string]any{
			"date":  date,
			"slots": len(selected),
		},
	})

	return s, nil
}

// selectSlots checks picked against the generated candidates and returns the
// picked labels in candidate order.
func selectSlots(candidates slot.Labels, picked []string) (slot.Labels, error) {
	seen := make(map[string]struct{}, len(picked))
	for _, label := range picked {
		if _, dup := seen[label]; dup {
			return nil, httperr.ErrValidation("duplicate_slot", "selected_slots")
		}
		if !candidates.Contains(label) {
			return nil, httperr.ErrValidation("slot_outside_hours", "selected_slots")
		}
		seen[label] = struct{}{}
	}

	out := make(slot.Labels, 0, len(picked))
	for _, label := range candidates {
		if _, ok := seen[label]; ok {
			out = append(out, label)
		}
	}
	return out, nil
}
