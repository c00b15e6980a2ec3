package schedule

import (
	"context"

	"github.com/pranamithra/scheduler/internal/audit"
	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
)

type CostsInput struct {
	Cost10 float64
	Cost20 float64
	Cost30 float64
}

type SaveCosts struct {
	repo  domain.ScheduleRepository
	audit *audit.Dispatcher
}

func NewSaveCosts(repo domain.ScheduleRepository, audit *audit.Dispatcher) *SaveCosts {
	return &SaveCosts{repo: repo, audit: audit}
}

func (uc *SaveCosts) Execute(
	ctx context.Context,
	doctorID uint,
	in CostsInput,
) (*models.AppointmentCost, error) {

	// Every tier must be priced; a zero would make that duration free.
	switch {
	case in.Cost10 <= 0:
		return nil, httperr.ErrValidation("invalid_cost", "cost_10")
	case in.Cost20 <= 0:
		return nil, httperr.ErrValidation("invalid_cost", "cost_20")
	case in.Cost30 <= 0:
		return nil, httperr.ErrValidation("invalid_cost", "cost_30")
	}

	cost := &models.AppointmentCost{
		DoctorID: doctorID,
		Cost10:   in.Cost10,
		Cost20:   in.Cost20,
		Cost30:   in.Cost30,
	}
	if err := uc.repo.SaveCost(ctx, cost); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		ActorID:   &doctorID,
		ActorRole: string(identity.RoleDoctor),
		DoctorID:  &doctorID,
		Action:    "costs_saved",
		Entity:    "appointment_cost",
		EntityID:  &cost.ID,
		Metadata:  in,
	})

	return cost, nil
}

type GetCosts struct {
	repo domain.ScheduleRepository
}

func NewGetCosts(repo domain.ScheduleRepository) *GetCosts {
	return &GetCosts{repo: repo}
}

func (uc *GetCosts) Execute(ctx context.Context, doctorID uint) (*models.AppointmentCost, error) {
	return uc.repo.GetCost(ctx, doctorID)
}
