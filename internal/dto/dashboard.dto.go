package dto

type BookedSlotDTO struct {
	AppointmentID uint   `json:"appointment_id"`
	SlotLabel     string `json:"slot_label"`
	Status        string `json:"status"`
	CustomerID    uint   `json:"customer_id"`
	CustomerName  string `json:"customer_name"`
	CustomerPhone string `json:"customer_phone"`
	CustomerEmail string `json:"customer_email"`
}

type DashboardDTO struct {
	Date      string          `json:"date"`
	Booked    []BookedSlotDTO `json:"booked"`
	Available []string        `json:"available"`
	Remaining int             `json:"remaining"`
}
