package appointment

import (
	"context"

	"github.com/pranamithra/scheduler/internal/models"
)

// Lookups that find nothing return an httperr not-found BusinessError
// (doctor_not_found, schedule_not_found, ...). Persistence failures come back
// wrapped in *httperr.StoreError.

type ScheduleRepository interface {
	GetSchedule(
		ctx context.Context,
		doctorID uint,
		date string,
	) (*models.Schedule, error)

	ListSchedules(
		ctx context.Context,
		doctorID uint,
	) ([]models.Schedule, error)

	// SaveSchedule upserts by (doctor, date). It fails with slot_in_use when
	// the new slot list drops a slot that is currently BOOKED.
	SaveSchedule(
		ctx context.Context,
		s *models.Schedule,
	) error

	GetCost(
		ctx context.Context,
		doctorID uint,
	) (*models.AppointmentCost, error)

	SaveCost(
		ctx context.Context,
		c *models.AppointmentCost,
	) error
}

type Repository interface {
	ScheduleRepository

	// -------- Identity (read only) --------
	GetDoctor(
		ctx context.Context,
		id uint,
	) (*models.Doctor, error)

	GetCustomer(
		ctx context.Context,
		id uint,
	) (*models.Customer, error)

	// -------- Availability --------
	ListBookedSlotLabels(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]string, error)

	// ListBookedForDay preloads Customer.
	ListBookedForDay(
		ctx context.Context,
		doctorID uint,
		date string,
	) ([]models.Appointment, error)

	// -------- Booking --------

	// BookSlot atomically checks that the slot belongs to the schedule and
	// has no BOOKED appointment, then inserts ap. Failures: schedule_not_found,
	// invalid_slot, duration_mismatch, slot_already_booked.
	BookSlot(
		ctx context.Context,
		ap *models.Appointment,
	) error

	// -------- Appointment (read / state change) --------

	// GetAppointment preloads Doctor and Customer.
	GetAppointment(
		ctx context.Context,
		id uint,
	) (*models.Appointment, error)

	GetAppointmentByToken(
		ctx context.Context,
		doctorID uint,
		token string,
	) (*models.Appointment, error)

	// ListAppointmentsForCustomer preloads Doctor, newest date first.
	ListAppointmentsForCustomer(
		ctx context.Context,
		customerID uint,
	) ([]models.Appointment, error)

	// UpdateAppointmentStatus persists ap only if its stored status is still
	// from; otherwise it fails with invalid_state.
	UpdateAppointmentStatus(
		ctx context.Context,
		ap *models.Appointment,
		from Status,
	) error
}
