package models

import "time"

type AppointmentCost struct {
	ID       uint `gorm:"primaryKey" json:"id"`
	DoctorID uint `gorm:"not null;uniqueIndex" json:"doctor_id"`

	Cost10 float64 `gorm:"column:cost_10;type:numeric(10,2);not null;default:0" json:"cost_10"`
	Cost20 float64 `gorm:"column:cost_20;type:numeric(10,2);not null;default:0" json:"cost_20"`
	Cost30 float64 `gorm:"column:cost_30;type:numeric(10,2);not null;default:0" json:"cost_30"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// For returns the price of a duration tier. A tier priced at zero counts as
// unpriced.
func (c *AppointmentCost) For(minutes int) (float64, bool) {
	var price float64
	switch minutes {
	case 10:
		price = c.Cost10
	case 20:
		price = c.Cost20
	case 30:
		price = c.Cost30
	}
	return price, price > 0
}
