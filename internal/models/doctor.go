package models

import "time"

type DoctorStatus string

const (
	DoctorPending  DoctorStatus = "PENDING"
	DoctorVerified DoctorStatus = "VERIFIED"
	DoctorRejected DoctorStatus = "REJECTED"
)

func (s DoctorStatus) Valid() bool {
	switch s {
	case DoctorPending, DoctorVerified, DoctorRejected:
		return true
	}
	return false
}

// Doctor is owned by the onboarding workflow; the booking core only reads it.
type Doctor struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName       string `gorm:"size:100;not null" json:"full_name"`
	Email          string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash   string `gorm:"size:255;not null" json:"-"`
	Phone          string `gorm:"size:20" json:"phone"`
	HospitalName   string `gorm:"size:150" json:"hospital_name"`
	Specialization string `gorm:"size:100" json:"specialization"`
	ProfileImage   string `gorm:"size:255" json:"profile_image"`

	Status DoctorStatus `gorm:"size:20;default:'PENDING'" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
