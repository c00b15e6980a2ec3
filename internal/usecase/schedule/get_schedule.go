package schedule

import (
	"context"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
	"github.com/pranamithra/scheduler/internal/timezone"
)

type GetSchedule struct {
	repo domain.ScheduleRepository
}

func NewGetSchedule(repo domain.ScheduleRepository) *GetSchedule {
	return &GetSchedule{repo: repo}
}

func (uc *GetSchedule) Execute(
	ctx context.Context,
	doctorID uint,
	date string,
) (*models.Schedule, error) {

	d, err := timezone.ParseDate(date)
	if err != nil {
		return nil, httperr.ErrValidation("invalid_date", "date")
	}
	return uc.repo.GetSchedule(ctx, doctorID, d)
}

type ListSchedules struct {
	repo domain.ScheduleRepository
}

func NewListSchedules(repo domain.ScheduleRepository) *ListSchedules {
	return &ListSchedules{repo: repo}
}

// Execute returns past and future schedules, oldest date first.
func (uc *ListSchedules) Execute(
	ctx context.Context,
	doctorID uint,
) ([]models.Schedule, error) {
	return uc.repo.ListSchedules(ctx, doctorID)
}
