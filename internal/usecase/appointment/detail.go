package appointment

import (
	"context"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/dto"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
)

type Detail struct {
	repo domain.Repository
}

func NewDetail(repo domain.Repository) *Detail {
	return &Detail{repo: repo}
}

// Execute returns the full record for its customer, its doctor or an admin.
// Anyone else gets appointment_not_found.
func (uc *Detail) Execute(
	ctx context.Context,
	viewer identity.Identity,
	appointmentID uint,
) (*dto.AppointmentDetailDTO, error) {

	ap, err := uc.repo.GetAppointment(ctx, appointmentID)
	if err != nil {
		return nil, err
	}
	if !viewer.Is(identity.RoleAdmin) && !ownedBy(ap, viewer) {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}

	return toDetail(ap, viewer), nil
}

// FindByToken resolves a scanned QR token for the doctor at check-in.
type FindByToken struct {
	repo domain.Repository
}

func NewFindByToken(repo domain.Repository) *FindByToken {
	return &FindByToken{repo: repo}
}

func (uc *FindByToken) Execute(
	ctx context.Context,
	doctorID uint,
	token string,
) (*dto.AppointmentDetailDTO, error) {

	if token == "" {
		return nil, httperr.ErrValidation("missing_field", "token")
	}

	ap, err := uc.repo.GetAppointmentByToken(ctx, doctorID, token)
	if err != nil {
		return nil, err
	}

	viewer := identity.Identity{UserID: doctorID, Role: identity.RoleDoctor}
	return toDetail(ap, viewer), nil
}

// toDetail maps ap for viewer. The verification code proves the customer's
// identity at check-in, so only the customer ever sees it.
func toDetail(ap *models.Appointment, viewer identity.Identity) *dto.AppointmentDetailDTO {
	out := &dto.AppointmentDetailDTO{
		ID:              ap.ID,
		Date:            ap.Date,
		SlotLabel:       ap.SlotLabel,
		DurationMinutes: ap.DurationMinutes,
		Amount:          ap.Amount,
		Status:          ap.Status,
		QRToken:         ap.QRToken,
		Doctor: dto.DoctorDTO{
			PersonDTO: dto.PersonDTO{
				ID:       ap.Doctor.ID,
				FullName: ap.Doctor.FullName,
				Email:    ap.Doctor.Email,
				Phone:    ap.Doctor.Phone,
			},
			HospitalName:   ap.Doctor.HospitalName,
			Specialization: ap.Doctor.Specialization,
		},
		Customer: dto.CustomerDTO{
			PersonDTO: dto.PersonDTO{
				ID:       ap.Customer.ID,
				FullName: ap.Customer.FullName,
				Email:    ap.Customer.Email,
				Phone:    ap.Customer.Phone,
			},
			Age:     ap.Customer.Age,
			Gender:  ap.Customer.Gender,
			Address: ap.Customer.Address,
		},
		CreatedAt:   ap.CreatedAt,
		CancelledAt: ap.CancelledAt,
		CompletedAt: ap.CompletedAt,
	}

	if viewer.Is(identity.RoleCustomer) && ap.CustomerID == viewer.UserID {
		out.VerificationCode = ap.VerificationCode
	}
	return out
}
