package appointment

import (
	"crypto/subtle"
	"time"

	"github.com/pranamithra/scheduler/internal/httperr"
	"github.com/pranamithra/scheduler/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Cancel(ap *models.Appointment, now time.Time) error {
	if err := CanCancel(Status(ap.Status)); err != nil {
		return err
	}

	ap.Status = string(StatusCancelled)
	ap.CancelledAt = &now
	return nil
}

// Complete closes a visit once the customer has shown the code they got at
// booking time.
func Complete(ap *models.Appointment, code string, now time.Time) error {
	if err := CanComplete(Status(ap.Status)); err != nil {
		return err
	}
	if subtle.ConstantTimeCompare([]byte(ap.VerificationCode), []byte(code)) != 1 {
		return httperr.ErrValidation("invalid_verification_code", "verification_code")
	}

	ap.Status = string(StatusCompleted)
	ap.CompletedAt = &now
	return nil
}
