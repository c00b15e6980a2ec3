package models

import "time"

// Appointment rows are never deleted. At most one row per
// (DoctorID, Date, SlotLabel) may have status BOOKED; the database enforces
// this with the uniq_booked_slot partial index.
type Appointment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	DoctorID uint   `gorm:"not null;index:idx_appointment_doctor_date" json:"doctor_id"`
	Doctor   Doctor `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	CustomerID uint     `gorm:"not null;index" json:"customer_id"`
	Customer   Customer `gorm:"constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Date            string  `gorm:"size:10;not null;index:idx_appointment_doctor_date" json:"date"`
	SlotLabel       string  `gorm:"size:32;not null" json:"slot_label"`
	DurationMinutes int     `gorm:"not null" json:"duration_minutes"`
	Amount          float64 `gorm:"type:numeric(10,2);not null" json:"amount"`

	VerificationCode string `gorm:"size:6;not null" json:"verification_code"`
	QRToken          string `gorm:"column:qr_token;size:64;not null;uniqueIndex" json:"qr_token"`

	Status string `gorm:"size:20;not null;default:'BOOKED';index" json:"status"`

	CancelledAt *time.Time `json:"cancelled_at"`
	CompletedAt *time.Time `json:"completed_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
