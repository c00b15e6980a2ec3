package confirmation

import (
	"bytes"
	"fmt"
	"strconv"

	"github.com/jung-kurt/gofpdf"

	"github.com/pranamithra/scheduler/internal/dto"
)

const ContentType = "application/pdf"

// Render draws a one-page appointment confirmation.
func Render(d *dto.AppointmentDetailDTO) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(10, 10, 10)
	pdf.AddPage()

	pdf.SetFont("Arial", "B", 14)
	pdf.SetTextColor(0, 70, 140)
	pdf.CellFormat(0, 10, "Appointment Confirmation", "", 1, "C", false, 0, "")

	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(0, 7, "Booking #"+strconv.FormatUint(uint64(d.ID), 10), "", 1, "C", false, 0, "")
	pdf.SetTextColor(0, 0, 0)

	section(pdf, "Appointment")
	row(pdf, "Date", d.Date)
	row(pdf, "Slot", d.SlotLabel)
	row(pdf, "Duration", fmt.Sprintf("%d minutes", d.DurationMinutes))
	row(pdf, "Amount", fmt.Sprintf("INR %.2f", d.Amount))
	row(pdf, "Status", d.Status)
	if d.VerificationCode != "" {
		row(pdf, "Verification code", d.VerificationCode)
	}
	row(pdf, "Reference", d.QRToken)

	section(pdf, "Doctor")
	row(pdf, "Name", d.Doctor.FullName)
	row(pdf, "Specialization", d.Doctor.Specialization)
	row(pdf, "Hospital", d.Doctor.HospitalName)
	row(pdf, "Phone", d.Doctor.Phone)

	section(pdf, "Patient")
	row(pdf, "Name", d.Customer.FullName)
	row(pdf, "Email", d.Customer.Email)
	row(pdf, "Phone", d.Customer.Phone)
	if d.Customer.Age > 0 {
		row(pdf, "Age", strconv.Itoa(d.Customer.Age))
	}
	row(pdf, "Gender", d.Customer.Gender)

	pdf.SetY(pdf.GetY() + 8)
	pdf.SetFont("Arial", "", 9)
	pdf.MultiCell(0, 5, "Show the verification code or the reference at the reception desk.", "", "L", false)
	pdf.CellFormat(0, 10, "This is a computer generated document", "", 1, "R", false, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render confirmation: %w", err)
	}
	return buf.Bytes(), nil
}

func section(pdf *gofpdf.Fpdf, title string) {
	pdf.SetFont("Arial", "B", 12)
	pdf.CellFormat(0, 10, title, "1", 1, "C", false, 0, "")
}

func row(pdf *gofpdf.Fpdf, label, value string) {
	pdf.SetFont("Arial", "", 10)
	pdf.CellFormat(45, 8, label, "1", 0, "", false, 0, "")
	pdf.CellFormat(0, 8, value, "1", 1, "", false, 0, "")
}
