package models

import "time"

type Customer struct {
	ID uint `gorm:"primaryKey" json:"id"`

	FullName     string `gorm:"size:100;not null" json:"full_name"`
	Email        string `gorm:"size:100;uniqueIndex;not null" json:"email"`
	PasswordHash string `gorm:"size:255;not null" json:"-"`
	Phone        string `gorm:"size:20" json:"phone"`
	DateOfBirth  string `gorm:"size:10" json:"dob"`
	Age          int    `json:"age"`
	Address      string `gorm:"size:255" json:"address"`
	Gender       string `gorm:"size:20" json:"gender"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
