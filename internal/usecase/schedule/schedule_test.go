package schedule

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/pranamithra/scheduler/internal/domain/appointment/appointmenttest"
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
)

const doctorID uint = 5

func assertCode(t *testing.T, err error, code, field string) {
	t.Helper()
	var be httperr.BusinessError
	if !errors.As(err, &be) {
		t.Fatalf("expected %s, got %v", code, err)
	}
	if be.Code != code || be.Field != field {
		t.Fatalf("expected %s/%s, got %s/%s", code, field, be.Code, be.Field)
	}
}

func validSave() SaveInput {
	return SaveInput{
		Date:            "2024-06-01",
		LoginTime:       "09:00",
		LogoutTime:      "09:35",
		DurationMinutes: 10,
		SelectedSlots:   []string{"09:00 am - 09:10 am", "09:15 am - 09:25 am"},
	}
}

// --------------------------------------------------
// Preview
// --------------------------------------------------

func TestPreviewSlots(t *testing.T) {
	got, err := NewPreviewSlots().Execute(PreviewInput{
		LoginTime:       "09:00",
		LogoutTime:      "09:35",
		DurationMinutes: 10,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	want := slot.Labels{"09:00 am - 09:10 am", "09:15 am - 09:25 am"}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestPreviewSlots_Rejections(t *testing.T) {
	tests := []struct {
		name  string
		in    PreviewInput
		code  string
		field string
	}{
		{"bad tier", PreviewInput{"09:00", "10:00", 15}, "invalid_duration", "duration_minutes"},
		{"zero duration", PreviewInput{"09:00", "10:00", 0}, "invalid_duration", "duration_minutes"},
		{"bad login", PreviewInput{"9 o'clock", "10:00", 10}, "invalid_time", "login_time"},
		{"bad logout", PreviewInput{"09:00", "25:00", 10}, "invalid_time", "logout_time"},
		{"missing login", PreviewInput{"", "10:00", 10}, "missing_field", "login_time"},
		{"missing logout", PreviewInput{"09:00", "", 10}, "missing_field", "logout_time"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewPreviewSlots().Execute(tt.in)
			assertCode(t, err, tt.code, tt.field)
		})
	}
}

func TestPreviewSlots_InvertedWindowIsEmpty(t *testing.T) {
	got, err := NewPreviewSlots().Execute(PreviewInput{"17:00", "09:00", 20})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(got) != 0 {
		t.Errorf("expected no slots, got %v", got)
	}
}

// --------------------------------------------------
// Save / Get / List
// --------------------------------------------------

func TestSaveSchedule_PersistsInGeneratorOrder(t *testing.T) {
	repo := appointmenttest.NewRepository()
	cache := appointmenttest.NewCache()
	uc := NewSaveSchedule(repo, cache, nil)

	in := validSave()
	in.LogoutTime = "10:00"
	in.SelectedSlots = []string{"09:45 am - 09:55 am", "09:00 am - 09:10 am"}

	s, err := uc.Execute(context.Background(), doctorID, in)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := slot.Labels{"09:00 am - 09:10 am", "09:45 am - 09:55 am"}
	if !slices.Equal(s.Slots, want) {
		t.Errorf("expected %v, got %v", want, s.Slots)
	}
	if s.LoginTime != "09:00" || s.LogoutTime != "10:00" || s.SlotDurationMinutes != 10 {
		t.Errorf("unexpected hours %+v", s)
	}
	if cache.Invalidated != 1 {
		t.Errorf("expected one cache invalidation, got %d", cache.Invalidated)
	}
}

func TestSaveSchedule_Rejections(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*SaveInput)
		code   string
		field  string
	}{
		{"missing date", func(in *SaveInput) { in.Date = "" }, "missing_field", "date"},
		{"bad date", func(in *SaveInput) { in.Date = "2024/06/01" }, "invalid_date", "date"},
		{"bad duration", func(in *SaveInput) { in.DurationMinutes = 45 }, "invalid_duration", "duration_minutes"},
		{"bad login", func(in *SaveInput) { in.LoginTime = "nine" }, "invalid_time", "login_time"},
		{"no slots", func(in *SaveInput) { in.SelectedSlots = nil }, "empty_slots", "selected_slots"},
		{
			"slot outside hours",
			func(in *SaveInput) { in.SelectedSlots = []string{"09:30 am - 09:40 am"} },
			"slot_outside_hours", "selected_slots",
		},
		{
			"slot from another duration",
			func(in *SaveInput) { in.SelectedSlots = []string{"09:00 am - 09:20 am"} },
			"slot_outside_hours", "selected_slots",
		},
		{
			"duplicate slot",
			func(in *SaveInput) {
				in.SelectedSlots = []string{"09:00 am - 09:10 am", "09:00 am - 09:10 am"}
			},
			"duplicate_slot", "selected_slots",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := appointmenttest.NewRepository()
			in := validSave()
			tt.mutate(&in)

			_, err := NewSaveSchedule(repo, appointmenttest.NewCache(), nil).
				Execute(context.Background(), doctorID, in)
			assertCode(t, err, tt.code, tt.field)

			list, _ := repo.ListSchedules(context.Background(), doctorID)
			if len(list) != 0 {
				t.Errorf("expected nothing stored, got %v", list)
			}
		})
	}
}

func TestSaveSchedule_ReplacesSameDate(t *testing.T) {
	repo := appointmenttest.NewRepository()
	uc := NewSaveSchedule(repo, appointmenttest.NewCache(), nil)
	ctx := context.Background()

	first, err := uc.Execute(ctx, doctorID, validSave())
	if err != nil {
		t.Fatalf("first save: %v", err)
	}

	in := validSave()
	in.LoginTime = "14:00"
	in.LogoutTime = "15:00"
	in.DurationMinutes = 30
	in.SelectedSlots = []string{"02:00 pm - 02:30 pm"}
	second, err := uc.Execute(ctx, doctorID, in)
	if err != nil {
		t.Fatalf("second save: %v", err)
	}

	if second.ID != first.ID {
		t.Errorf("expected upsert to keep id %d, got %d", first.ID, second.ID)
	}

	got, err := NewGetSchedule(repo).Execute(ctx, doctorID, "2024-06-01")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.SlotDurationMinutes != 30 || !slices.Equal(got.Slots, slot.Labels{"02:00 pm - 02:30 pm"}) {
		t.Errorf("expected replaced schedule, got %+v", got)
	}
}

func TestSaveSchedule_CannotDropBookedSlot(t *testing.T) {
	repo := appointmenttest.NewRepository()
	uc := NewSaveSchedule(repo, appointmenttest.NewCache(), nil)
	ctx := context.Background()

	if _, err := uc.Execute(ctx, doctorID, validSave()); err != nil {
		t.Fatalf("save: %v", err)
	}
	if err := repo.BookSlot(ctx, &models.Appointment{
		DoctorID:        doctorID,
		CustomerID:      7,
		Date:            "2024-06-01",
		SlotLabel:       "09:00 am - 09:10 am",
		DurationMinutes: 10,
		QRToken:         "tok-1",
		Status:          "BOOKED",
	}); err != nil {
		t.Fatalf("book: %v", err)
	}

	in := validSave()
	in.SelectedSlots = []string{"09:15 am - 09:25 am"}
	_, err := uc.Execute(ctx, doctorID, in)
	if !httperr.IsBusiness(err, "slot_in_use") {
		t.Fatalf("expected slot_in_use, got %v", err)
	}
}

func TestGetSchedule_NotFound(t *testing.T) {
	_, err := NewGetSchedule(appointmenttest.NewRepository()).
		Execute(context.Background(), doctorID, "2024-06-01")
	if !httperr.IsBusiness(err, "schedule_not_found") {
		t.Fatalf("expected schedule_not_found, got %v", err)
	}
}

func TestListSchedules_OrderedByDate(t *testing.T) {
	repo := appointmenttest.NewRepository()
	uc := NewSaveSchedule(repo, appointmenttest.NewCache(), nil)
	ctx := context.Background()

	for _, date := range []string{"2024-06-10", "2024-05-01", "2024-06-02"} {
		in := validSave()
		in.Date = date
		if _, err := uc.Execute(ctx, doctorID, in); err != nil {
			t.Fatalf("save %s: %v", date, err)
		}
	}

	list, err := NewListSchedules(repo).Execute(ctx, doctorID)
	if err != nil {
		t.Fatalf("list: %v", err)
	}

	var dates []string
	for _, s := range list {
		dates = append(dates, s.Date)
	}
	want := []string{"2024-05-01", "2024-06-02", "2024-06-10"}
	if !slices.Equal(dates, want) {
		t.Errorf("expected %v, got %v", want, dates)
	}
}

// --------------------------------------------------
// Costs
// --------------------------------------------------

func TestSaveCosts_UpsertAndGet(t *testing.T) {
	repo := appointmenttest.NewRepository()
	ctx := context.Background()

	if _, err := NewGetCosts(repo).Execute(ctx, doctorID); !httperr.IsBusiness(err, "pricing_not_found") {
		t.Fatalf("expected pricing_not_found, got %v", err)
	}

	save := NewSaveCosts(repo, nil)
	if _, err := save.Execute(ctx, doctorID, CostsInput{Cost10: 100, Cost20: 180, Cost30: 250}); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := save.Execute(ctx, doctorID, CostsInput{Cost10: 120, Cost20: 200, Cost30: 300}); err != nil {
		t.Fatalf("resave: %v", err)
	}

	got, err := NewGetCosts(repo).Execute(ctx, doctorID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Cost10 != 120 || got.Cost20 != 200 || got.Cost30 != 300 {
		t.Errorf("expected latest prices, got %+v", got)
	}
}

func TestSaveCosts_EveryTierPriced(t *testing.T) {
	tests := []struct {
		name  string
		in    CostsInput
		field string
	}{
		{"negative", CostsInput{Cost10: 10, Cost20: -1, Cost30: 30}, "cost_20"},
		{"only short visits priced", CostsInput{Cost10: 100}, "cost_20"},
		{"zero long visit", CostsInput{Cost10: 100, Cost20: 200}, "cost_30"},
		{"zero short visit", CostsInput{Cost20: 200, Cost30: 300}, "cost_10"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := appointmenttest.NewRepository()
			_, err := NewSaveCosts(repo, nil).Execute(context.Background(), doctorID, tt.in)
			assertCode(t, err, "invalid_cost", tt.field)

			if _, err := repo.GetCost(context.Background(), doctorID); !httperr.IsBusiness(err, "pricing_not_found") {
				t.Errorf("expected nothing stored, got %v", err)
			}
		})
	}
}
