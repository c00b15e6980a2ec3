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

// --------------------------------------------------
// Schedule
// --------------------------------------------------

func (r *AppointmentGormRepository) GetSchedule(
	ctx context.Context,
	doctorID uint,
	date string,
) (*models.Schedule, error) {

	var sched models.Schedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ? AND date = ?", doctorID, date).
		First(&sched).Error; err != nil {
		return nil, notFoundOr(err, "schedule_not_found", "get schedule")
	}
	return &sched, nil
}

func (r *AppointmentGormRepository) ListSchedules(
	ctx context.Context,
	doctorID uint,
) ([]models.Schedule, error) {

	var out []models.Schedule
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		Order("date ASC").
		Find(&out).Error; err != nil {
		return nil, httperr.Store("list schedules", err)
	}
	return out, nil
}

// SaveSchedule takes the same row lock as BookSlot, so a booking can never
// land on a slot that a concurrent save is removing.
func (r *AppointmentGormRepository) SaveSchedule(
	ctx context.Context,
	s *models.Schedule,
) error {

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {

		var existing models.Schedule
		err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("doctor_id = ? AND date = ?", s.DoctorID, s.Date).
			First(&existing).Error
		if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		if err == nil {
			var booked []string
			if err := tx.
				Model(&models.Appointment{}).
				Where(
					"doctor_id = ? AND date = ? AND status = ?",
					s.DoctorID, s.Date, string(domain.StatusBooked),
				).
				Pluck("slot_label", &booked).Error; err != nil {
				return err
			}
			for _, label := range booked {
				if !s.Slots.Contains(label) {
					return httperr.ErrConflict("slot_in_use")
				}
			}
		}

		return tx.
			Clauses(clause.OnConflict{
				Columns: []clause.Column{{Name: "doctor_id"}, {Name: "date"}},
				DoUpdates: clause.AssignmentColumns([]string{
					"login_time",
					"logout_time",
					"slot_duration_minutes",
					"slots",
					"updated_at",
				}),
			}).
			Create(s).Error
	})

	if err != nil {
		return httperr.Store("save schedule", err)
	}

	// ON CONFLICT does not hand back the existing id on every driver.
	if s.ID == 0 {
		saved, err := r.GetSchedule(ctx, s.DoctorID, s.Date)
		if err != nil {
			return err
		}
		*s = *saved
	}
	return nil
}

// --------------------------------------------------
// Pricing
// --------------------------------------------------

func (r *AppointmentGormRepository) GetCost(
	ctx context.Context,
	doctorID uint,
) (*models.AppointmentCost, error) {

	var cost models.AppointmentCost
	if err := r.db.WithContext(ctx).
		Where("doctor_id = ?", doctorID).
		First(&cost).Error; err != nil {
		return nil, notFoundOr(err, "pricing_not_found", "get cost")
	}
	return &cost, nil
}

func (r *AppointmentGormRepository) SaveCost(
	ctx context.Context,
	c *models.AppointmentCost,
) error {

	if err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "doctor_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"cost_10", "cost_20", "cost_30", "updated_at"}),
		}).
		Create(c).Error; err != nil {
		return httperr.Store("save cost", err)
	}
	return nil
}
