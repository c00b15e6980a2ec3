package appointment

import (
	"context"
	"testing"
	"time"

	"github.com/pranamithra/scheduler/internal/domain/appointment/appointmenttest"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/identity"
	"github.com/pranamithra/scheduler/internal/models"
)

const (
	doctorID   uint = 5
	customerID uint = 7
	day             = "2024-06-01"
	first           = "09:00 am - 09:10 am"
	second          = "09:15 am - 09:25 am"
)

var (
	customer = identity.Identity{UserID: customerID, Role: identity.RoleCustomer}
	doctor   = identity.Identity{UserID: doctorID, Role: identity.RoleDoctor}
)

type fixture struct {
	repo  *appointmenttest.Repository
	cache *appointmenttest.Cache

	availability *GetAvailability
	book         *Book
	cancel       *CancelAppointment
	complete     *CompleteAppointment
	detail       *Detail
	dashboard    *Dashboard
}

// newFixture seeds a verified doctor with a two-slot schedule on day and a
// customer. "Now" is two days before day.
func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()

	repo := appointmenttest.NewRepository()
	repo.AddDoctor(models.Doctor{
		ID:             doctorID,
		FullName:       "Dr. Meera Iyer",
		Specialization: "Cardiology",
		HospitalName:   "City Care",
		Status:         models.DoctorVerified,
	})
	repo.AddCustomer(models.Customer{
		ID:       customerID,
		FullName: "Ravi Kumar",
		Email:    "ravi@example.com",
		Phone:    "9876543210",
	})

	scheduleDay(t, repo, doctorID)
	if err := repo.SaveCost(ctx, &models.AppointmentCost{
		DoctorID: doctorID,
		Cost10:   300,
		Cost20:   500,
		Cost30:   700,
	}); err != nil {
		t.Fatalf("seed cost: %v", err)
	}

	cache := appointmenttest.NewCache()
	now := func() time.Time { return time.Date(2024, 5, 30, 10, 0, 0, 0, time.UTC) }

	return &fixture{
		repo:         repo,
		cache:        cache,
		availability: NewGetAvailability(repo, cache),
		book:         NewBook(repo, cache, nil, time.UTC).WithClock(now),
		cancel:       NewCancelAppointment(repo, cache, nil, time.UTC),
		complete:     NewCompleteAppointment(repo, cache, nil, time.UTC),
		detail:       NewDetail(repo),
		dashboard:    NewDashboard(repo),
	}
}

// scheduleDay gives doctorID the same two-slot schedule on day as the
// fixture doctor.
func scheduleDay(t *testing.T, repo *appointmenttest.Repository, doctorID uint) {
	t.Helper()
	if err := repo.SaveSchedule(context.Background(), &models.Schedule{
		DoctorID:            doctorID,
		Date:                day,
		LoginTime:           "09:00",
		LogoutTime:          "09:35",
		SlotDurationMinutes: 10,
		Slots:               slot.Generate(540, 575, 10),
	}); err != nil {
		t.Fatalf("seed schedule: %v", err)
	}
}

func validBooking(label string) BookInput {
	return BookInput{
		DoctorID:        doctorID,
		CustomerID:      customerID,
		Date:            day,
		SlotLabel:       label,
		DurationMinutes: 10,
	}
}

func (f *fixture) mustBook(t *testing.T, label string) *BookingResult {
	t.Helper()
	res, err := f.book.Execute(context.Background(), validBooking(label))
	if err != nil {
		t.Fatalf("book %q: %v", label, err)
	}
	return res
}

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	if err == nil {
		t.Fatalf("expected %s, got nil", code)
	}
	if !httperr.IsBusiness(err, code) {
		t.Fatalf("expected %s, got %v", code, err)
	}
}
