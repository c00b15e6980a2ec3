// Package appointmenttest provides in-memory doubles for the appointment
// ports. The repository honours the same atomicity and error contract as
// the gorm implementation.
package appointmenttest

import (
	"context"
	"sort"
	"sync"
	"time"

	domain "github.com/pranamithra/scheduler/internal/domain/appointment"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
)

type scheduleKey struct {
	doctorID uint
	date     string
}

type Repository struct {
	mu     sync.Mutex
	nextID uint

	doctors      map[uint]models.Doctor
	customers    map[uint]models.Customer
	schedules    map[scheduleKey]models.Schedule
	costs        map[uint]models.AppointmentCost
	appointments map[uint]models.Appointment

	// Fail, when set, is returned wrapped in a StoreError by every call.
	Fail error
}

func NewRepository() *Repository {
	return &Repository{
		doctors:      map[uint]models.Doctor{},
		customers:    map[uint]models.Customer{},
		schedules:    map[scheduleKey]models.Schedule{},
		costs:        map[uint]models.AppointmentCost{},
		appointments: map[uint]models.Appointment{},
	}
}

// --------------------------------------------------
// Seeding
// --------------------------------------------------

func (r *Repository) AddDoctor(d models.Doctor) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.doctors[d.ID] = d
}

func (r *Repository) AddCustomer(c models.Customer) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.customers[c.ID] = c
}

// Appointments returns every stored appointment ordered by id.
func (r *Repository) Appointments() []models.Appointment {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]models.Appointment, 0, len(r.appointments))
	for _, ap := range r.appointments {
		out = append(out, ap)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *Repository) id() uint {
	r.nextID++
	return r.nextID
}

func (r *Repository) failed(op string) error {
	if r.Fail != nil {
		return httperr.Store(op, r.Fail)
	}
	return nil
}

func (r *Repository) bookedLabels(doctorID uint, date string) []string {
	var out []string
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && ap.Date == date && ap.Status == string(domain.StatusBooked) {
			out = append(out, ap.SlotLabel)
		}
	}
	return out
}

func (r *Repository) withParties(ap models.Appointment) *models.Appointment {
	ap.Doctor = r.doctors[ap.DoctorID]
	ap.Customer = r.customers[ap.CustomerID]
	return &ap
}

// --------------------------------------------------
// ScheduleRepository
// --------------------------------------------------

func (r *Repository) GetSchedule(_ context.Context, doctorID uint, date string) (*models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("get schedule"); err != nil {
		return nil, err
	}

	s, ok := r.schedules[scheduleKey{doctorID, date}]
	if !ok {
		return nil, httperr.ErrNotFound("schedule_not_found")
	}
	s.Slots = append(slot.Labels{}, s.Slots...)
	return &s, nil
}

func (r *Repository) ListSchedules(_ context.Context, doctorID uint) ([]models.Schedule, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("list schedules"); err != nil {
		return nil, err
	}

	out := []models.Schedule{}
	for k, s := range r.schedules {
		if k.doctorID == doctorID {
			out = append(out, s)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date < out[j].Date })
	return out, nil
}

func (r *Repository) SaveSchedule(_ context.Context, s *models.Schedule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("save schedule"); err != nil {
		return err
	}

	for _, label := range r.bookedLabels(s.DoctorID, s.Date) {
		if !s.Slots.Contains(label) {
			return httperr.ErrConflict("slot_in_use")
		}
	}

	key := scheduleKey{s.DoctorID, s.Date}
	now := time.Now()
	if existing, ok := r.schedules[key]; ok {
		s.ID = existing.ID
		s.CreatedAt = existing.CreatedAt
	} else {
		s.ID = r.id()
		s.CreatedAt = now
	}
	s.UpdatedAt = now

	stored := *s
	stored.Slots = append(slot.Labels{}, s.Slots...)
	r.schedules[key] = stored
	return nil
}

func (r *Repository) GetCost(_ context.Context, doctorID uint) (*models.AppointmentCost, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("get cost"); err != nil {
		return nil, err
	}

	c, ok := r.costs[doctorID]
	if !ok {
		return nil, httperr.ErrNotFound("pricing_not_found")
	}
	return &c, nil
}

func (r *Repository) SaveCost(_ context.Context, c *models.AppointmentCost) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("save cost"); err != nil {
		return err
	}

	if existing, ok := r.costs[c.DoctorID]; ok {
		c.ID = existing.ID
		c.CreatedAt = existing.CreatedAt
	} else {
		c.ID = r.id()
		c.CreatedAt = time.Now()
	}
	c.UpdatedAt = time.Now()
	r.costs[c.DoctorID] = *c
	return nil
}

// --------------------------------------------------
// Repository
// --------------------------------------------------

func (r *Repository) GetDoctor(_ context.Context, id uint) (*models.Doctor, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("get doctor"); err != nil {
		return nil, err
	}

	d, ok := r.doctors[id]
	if !ok {
		return nil, httperr.ErrNotFound("doctor_not_found")
	}
	return &d, nil
}

func (r *Repository) GetCustomer(_ context.Context, id uint) (*models.Customer, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("get customer"); err != nil {
		return nil, err
	}

	c, ok := r.customers[id]
	if !ok {
		return nil, httperr.ErrNotFound("customer_not_found")
	}
	return &c, nil
}

func (r *Repository) ListBookedSlotLabels(_ context.Context, doctorID uint, date string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("list booked slots"); err != nil {
		return nil, err
	}
	return r.bookedLabels(doctorID, date), nil
}

func (r *Repository) ListBookedForDay(_ context.Context, doctorID uint, date string) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("list booked appointments"); err != nil {
		return nil, err
	}

	var out []models.Appointment
	for _, ap := range r.appointments {
		if ap.DoctorID == doctorID && ap.Date == date && ap.Status == string(domain.StatusBooked) {
			out = append(out, *r.withParties(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// BookSlot runs the membership and conflict checks and the insert under one
// lock.
func (r *Repository) BookSlot(_ context.Context, ap *models.Appointment) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("book slot"); err != nil {
		return err
	}

	s, ok := r.schedules[scheduleKey{ap.DoctorID, ap.Date}]
	if !ok {
		return httperr.ErrNotFound("schedule_not_found")
	}
	if !s.Slots.Contains(ap.SlotLabel) {
		return httperr.ErrValidation("invalid_slot", "slot_label")
	}
	if s.SlotDurationMinutes != ap.DurationMinutes {
		return httperr.ErrValidation("duration_mismatch", "duration_minutes")
	}
	for _, label := range r.bookedLabels(ap.DoctorID, ap.Date) {
		if label == ap.SlotLabel {
			return httperr.ErrConflict("slot_already_booked")
		}
	}
	for _, other := range r.appointments {
		if other.QRToken == ap.QRToken {
			return httperr.Store("insert appointment", errDuplicateToken)
		}
	}

	ap.ID = r.id()
	ap.CreatedAt = time.Now()
	ap.UpdatedAt = ap.CreatedAt
	r.appointments[ap.ID] = *ap
	return nil
}

func (r *Repository) GetAppointment(_ context.Context, id uint) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("get appointment"); err != nil {
		return nil, err
	}

	ap, ok := r.appointments[id]
	if !ok {
		return nil, httperr.ErrNotFound("appointment_not_found")
	}
	return r.withParties(ap), nil
}

func (r *Repository) GetAppointmentByToken(_ context.Context, doctorID uint, token string) (*models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("get appointment by token"); err != nil {
		return nil, err
	}

	for _, ap := range r.appointments {
		if ap.QRToken == token && ap.DoctorID == doctorID {
			return r.withParties(ap), nil
		}
	}
	return nil, httperr.ErrNotFound("appointment_not_found")
}

func (r *Repository) ListAppointmentsForCustomer(_ context.Context, customerID uint) ([]models.Appointment, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("list customer appointments"); err != nil {
		return nil, err
	}

	out := []models.Appointment{}
	for _, ap := range r.appointments {
		if ap.CustomerID == customerID {
			out = append(out, *r.withParties(ap))
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (r *Repository) UpdateAppointmentStatus(_ context.Context, ap *models.Appointment, from domain.Status) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.failed("update appointment status"); err != nil {
		return err
	}

	stored, ok := r.appointments[ap.ID]
	if !ok || stored.Status != string(from) {
		return httperr.ErrBusiness("invalid_state")
	}

	stored.Status = ap.Status
	stored.CancelledAt = ap.CancelledAt
	stored.CompletedAt = ap.CompletedAt
	stored.UpdatedAt = time.Now()
	r.appointments[ap.ID] = stored
	return nil
}

var _ domain.Repository = (*Repository)(nil)
