package models

import "time"

type AdminPermission string

const (
	PermVerifyDoctor  AdminPermission = "verify_doctor"
	PermManageDoctors AdminPermission = "manage_doctors"
	PermViewCustomers AdminPermission = "view_customers"
)

// Admin accounts are created from the CLI. A main admin holds every
// permission; the others only hold the ones flagged on their row.
type Admin struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`

	Main             bool `gorm:"not null;default:false" json:"main"`
	CanVerifyDoctor  bool `gorm:"not null;default:false" json:"can_verify_doctor"`
	CanManageDoctors bool `gorm:"not null;default:false" json:"can_manage_doctors"`
	CanViewCustomers bool `gorm:"not null;default:false" json:"can_view_customers"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (a Admin) Allows(p AdminPermission) bool {
	if a.Main {
		return true
	}
	switch p {
	case PermVerifyDoctor:
		return a.CanVerifyDoctor
	case PermManageDoctors:
		return a.CanManageDoctors
	case PermViewCustomers:
		return a.CanViewCustomers
	}
	return false
}
