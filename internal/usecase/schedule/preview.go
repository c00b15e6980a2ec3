package schedule

import (
	"github.com/pranamithra/scheduler/internal/domain/slot"
	"github.com/pranamithra/scheduler/internal/httperr"
)

type PreviewInput struct {
	LoginTime       string
	LogoutTime      string
	DurationMinutes int
}

// window is the validated form of the hours a doctor submits.
type window struct {
	login    slot.Clock
	logout   slot.Clock
	duration int
}

func parseWindow(login, logout string, duration int) (window, error) {
	if login == "" {
		return window{}, httperr.ErrValidation("missing_field", "login_time")
	}
	if logout == "" {
		return window{}, httperr.ErrValidation("missing_field", "logout_time")
	}
	if !slot.ValidDuration(duration) {
		return window{}, httperr.ErrValidation("invalid_duration", "duration_minutes")
	}

	in, err := slot.ParseClock(login)
	if err != nil {
		return window{}, httperr.ErrValidation("invalid_time", "login_time")
	}
	out, err := slot.ParseClock(logout)
	if err != nil {
		return window{}, httperr.ErrValidation("invalid_time", "logout_time")
	}

	return window{login: in, logout: out, duration: duration}, nil
}

func (w window) slots() slot.Labels {
	return slot.Generate(w.login, w.logout, w.duration)
}

// PreviewSlots proposes candidate slots without touching the store.
type PreviewSlots struct{}

func NewPreviewSlots() *PreviewSlots {
	return &PreviewSlots{}
}

func (uc *PreviewSlots) Execute(in PreviewInput) (slot.Labels, error) {
	w, err := parseWindow(in.LoginTime, in.LogoutTime, in.DurationMinutes)
	if err != nil {
		return nil, err
	}
	return w.slots(), nil
}
