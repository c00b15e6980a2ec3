package appointment

import (
	"context"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/dto"
)

type ListForCustomer struct {
	repo domain.Repository
}

func NewListForCustomer(repo domain.Repository) *ListForCustomer {
	return &ListForCustomer{repo: repo}
}

func (uc *ListForCustomer) Execute(
	ctx context.Context,
	customerID uint,
) ([]dto.CustomerAppointmentDTO, error) {

	apps, err := uc.repo.ListAppointmentsForCustomer(ctx, customerID)
	if err != nil {
		return nil, err
	}

	out := make([]dto.CustomerAppointmentDTO, 0, len(apps))
	for _, ap := range apps {
		out = append(out, dto.CustomerAppointmentDTO{
			ID:              ap.ID,
			DoctorID:        ap.DoctorID,
			DoctorName:      ap.Doctor.FullName,
			Specialization:  ap.Doctor.Specialization,
			Date:            ap.Date,
			SlotLabel:       ap.SlotLabel,
			DurationMinutes: ap.DurationMinutes,
			Amount:          ap.Amount,
			Status:          ap.Status,
			QRToken:         ap.QRToken,
		})
	}
	return out, nil
}
