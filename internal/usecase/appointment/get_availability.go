package appointment

import (
	"context"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/timezone"
)

type GetAvailability struct {
	repo  domain.Repository
	cache domain.AvailabilityCache
}

func NewGetAvailability(
	repo domain.Repository,
	cache domain.AvailabilityCache,
) *GetAvailability {
	return &GetAvailability{
		repo:  repo,
		cache: cache,
	}
}

// Execute returns the schedule's slots minus those held by BOOKED
// appointments, in schedule order. The answer is advisory; Book re-checks.
// A date without a schedule yields an empty list.
func (uc *GetAvailability) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
) (slot.Labels, error) {

	if doctorID == 0 {
		return nil, httperr.ErrValidation("missing_field", "doctor_id")
	}
	d, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date")
	}

	if labels, ok := uc.cache.Get(ctx, doctorID, d); ok {
		return labels, nil
	}
	version := uc.cache.Version(ctx, doctorID, d)

	sched, err := uc.repo.GetSchedule(ctx, doctorID, d)
	if err != nil {
		if httperr.IsBusiness(err, "schedule_not_found") {
			return slot.Labels{}, nil
		}
		return nil, err
	}

	booked, err := uc.repo.ListBookedSlotLabels(ctx, doctorID, d)
	if err != nil {
		return nil, err
	}

	available := sched.Slots.Without(booked)
	uc.cache.Set(ctx, doctorID, d, version, available)

	return available, nil
}
