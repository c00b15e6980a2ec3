package dto

import "time"

// CustomerAppointmentDTO is one row of a customer's "my appointments" list.
type CustomerAppointmentDTO struct {
	ID              uint    `json:"id"`
	DoctorID        uint    `json:"doctor_id"`
	DoctorName      string  `json:"doctor_name"`
	Specialization  string  `json:"specialization"`
	Date            string  `json:"date"`
	SlotLabel       string  `json:"slot_label"`
	DurationMinutes int     `json:"duration_minutes"`
	Amount          float64 `json:"amount"`
	Status          string  `json:"status"`
	QRToken         string  `json:"qr_token"`
}

type PersonDTO struct {
	ID       uint   `json:"id"`
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
}

type DoctorDTO struct {
	PersonDTO
	HospitalName   string `json:"hospital_name"`
	Specialization string `json:"specialization"`
}

type CustomerDTO struct {
	PersonDTO
	Age     int    `json:"age"`
	Gender  string `json:"gender"`
	Address string `json:"address"`
}

// AppointmentDetailDTO carries everything printed on a confirmation.
// VerificationCode is only filled for the customer who owns the booking.
type AppointmentDetailDTO struct {
	ID               uint        `json:"id"`
	Date             string      `json:"date"`
	SlotLabel        string      `json:"slot_label"`
	DurationMinutes  int         `json:"duration_minutes"`
	Amount           float64     `json:"amount"`
	Status           string      `json:"status"`
	VerificationCode string      `json:"verification_code,omitempty"`
	QRToken          string      `json:"qr_token"`
	Doctor           DoctorDTO   `json:"doctor"`
	Customer         CustomerDTO `json:"customer"`
	CreatedAt        time.Time   `json:"created_at"`
	CancelledAt      *time.Time  `json:"cancelled_at,omitempty"`
	CompletedAt      *time.Time  `json:"completed_at,omitempty"`
}
