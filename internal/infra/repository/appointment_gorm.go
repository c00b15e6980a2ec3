package repository

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
)

// BookedSlotIndex is the partial unique index that keeps a slot from being
// BOOKED twice. It is created by db.Migrate.
const BookedSlotIndex = "uniq_booked_slot"

type AppointmentGormRepository struct {
	db *gorm.DB
}

func NewAppointmentGormRepository(db *gorm.DB) *AppointmentGormRepository {
	return &AppointmentGormRepository{db: db}
}

// --------------------------------------------------
// Identity
// --------------------------------------------------

func (r *AppointmentGormRepository) GetDoctor(
	ctx context.Context,
	id uint,
) (*models.Doctor, error) {

	var doctor models.Doctor
	if err := r.db.WithContext(ctx).First(&doctor, id).Error; err != nil {
		return nil, notFoundOr(err, "doctor_not_found", "get doctor")
	}
	return &doctor, nil
}

func (r *AppointmentGormRepository) GetCustomer(
	ctx context.Context,
	id uint,
) (*models.Customer, error) {

	var customer models.Customer
	if err := r.db.WithContext(ctx).First(&customer, id).Error; err != nil {
		return nil, notFoundOr(err, "customer_not_found", "get customer")
	}
	return &customer, nil
}

// --------------------------------------------------
// Availability
// --------------------------------------------------

func (r *AppointmentGormRepository) ListBookedSlotLabels(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]string, error) {

	var labels []string
	if err := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where(
			"doctor_id = ? AND date = ? AND status = ?",
			doctorID, date, string(domain.StatusBooked),
		).
		Pluck("slot_label", &labels).Error; err != nil {
		return nil, httperr.Store("list booked slots", err)
	}
	return labels, nil
}

func (r *AppointmentGormRepository) ListBookedForDay(
	ctx context.Context,
	doctorID uint,
	date string,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Customer").
		Where(
			"doctor_id = ? AND date = ? AND status = ?",
			doctorID, date, string(domain.StatusBooked),
		).
		Find(&apps).Error; err != nil {
		return nil, httperr.Store("list booked appointments", err)
	}
	return apps, nil
}

// --------------------------------------------------
// Booking
// --------------------------------------------------

// BookSlot serialises bookings per (doctor, date) by locking the schedule row
// for the length of the transaction. Under READ COMMITTED the conflict count
// runs after the lock is granted, so it sees any booking committed by the
// previous holder. uniq_booked_slot backs this up at the storage level.
func (r *AppointmentGormRepository) BookSlot(
	ctx context.Context,
	ap *models.Appointment,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var sched models.Schedule
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND date = ?", ap.DoctorID, ap.Date).
			First(&sched).Error; err != nil {
			return notFoundOr(err, "schedule_not_found", "lock schedule")
		}

		if !sched.Slots.Contains(ap.SlotLabel) {
			return httperr.ErrValidation("invalid_slot", "slot_label")
		}
		if sched.SlotDurationMinutes != ap.DurationMinutes {
			return httperr.ErrValidation("duration_mismatch", "duration_minutes")
		}

		var count int64
		if err := tx.
			Model(&models.Appointment{}).
			Where(
				"doctor_id = ? AND date = ? AND slot_label = ? AND status = ?",
				ap.DoctorID, ap.Date, ap.SlotLabel, string(domain.StatusBooked),
			).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			return httperr.ErrConflict("slot_already_booked")
		}

		return tx.Create(ap).Error
	})

	return bookingError(err)
}

// bookingError maps a failed booking insert onto the caller-facing error.
// A uniq_booked_slot violation means another transaction won the slot.
func bookingError(err error) error {
	switch {
	case err == nil:
		return nil
	case httperr.KindOf(err) != "":
		return err
	case httperr.IsUniqueViolation(err, BookedSlotIndex):
		return httperr.ErrConflict("slot_already_booked")
	default:
		return httperr.Store("book slot", err)
	}
}

// --------------------------------------------------
// Appointment (read / state change)
// --------------------------------------------------

func (r *AppointmentGormRepository) GetAppointment(
	ctx context.Context,
	id uint,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Customer").
		First(&ap, id).Error; err != nil {
		return nil, notFoundOr(err, "appointment_not_found", "get appointment")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) GetAppointmentByToken(
	ctx context.Context,
	doctorID uint,
	token string,
) (*models.Appointment, error) {

	var ap models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Preload("Customer").
		Where("qr_token = ? AND doctor_id = ?", token, doctorID).
		First(&ap).Error; err != nil {
		return nil, notFoundOr(err, "appointment_not_found", "get appointment by token")
	}
	return &ap, nil
}

func (r *AppointmentGormRepository) ListAppointmentsForCustomer(
	ctx context.Context,
	customerID uint,
) ([]models.Appointment, error) {

	var apps []models.Appointment
	if err := r.db.WithContext(ctx).
		Preload("Doctor").
		Where("customer_id = ?", customerID).
		Order("date DESC").
		Order("id DESC").
		Find(&apps).Error; err != nil {
		return nil, httperr.Store("list customer appointments", err)
	}
	return apps, nil
}

func (r *AppointmentGormRepository) UpdateAppointmentStatus(
	ctx context.Context,
	ap *models.Appointment,
	from domain.Status,
) error {

	res := r.db.WithContext(ctx).
		Model(&models.Appointment{}).
		Where("id = ? AND status = ?", ap.ID, string(from)).
		Updates(map[string]any{
			"status":       ap.Status,
			"cancelled_at": ap.CancelledAt,
			"completed_at": ap.CompletedAt,
		})
	if res.Error != nil {
		return httperr.Store("update appointment status", res.Error)
	}
	if res.RowsAffected == 0 {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

func notFoundOr(err error, code, op string) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return httperr.ErrNotFound(code)
	}
	return httperr.Store(op, err)
}

// Compile-time check
var _ domain.Repository = (*AppointmentGormRepository)(nil)
