package models

import (
	"time"

	"github.com/pranamithra/scheduler/internal/domain/slot"
)

// Schedule is a doctor's working window and chosen slots for one date.
// (DoctorID, Date) is unique; saving again replaces the row.
type Schedule struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"not null;uniqueIndex:idx_schedule_doctor_date" json:"doctor_id"`
	Date     string `gorm:"size:10;not null;uniqueIndex:idx_schedule_doctor_date" json:"date"`

	LoginTime           string      `gorm:"size:5;not null" json:"login_time"`
	LogoutTime          string      `gorm:"size:5;not null" json:"logout_time"`
	SlotDurationMinutes int         `gorm:"not null" json:"slot_duration_minutes"`
	Slots               slot.Labels `gorm:"type:text;not null" json:"slots"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
