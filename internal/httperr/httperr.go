package httperr

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
)

type HTTPError struct {
	Code    string `json:"error_code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

func Write(c *gin.Context, status int, code, message string) {
	c.JSON(status, HTTPError{
		Code:    code,
		Message: message,
	})
}

func BadRequest(c *gin.Context, code, message string) {
	Write(c, http.StatusBadRequest, code, message)
}

func NotFound(c *gin.Context, code, message string) {
	Write(c, http.StatusNotFound, code, message)
}

func Internal(c *gin.Context, code, message string) {
	Write(c, http.StatusInternalServerError, code, message)
}

func Unauthorized(c *gin.Context, code, message string) {
	Write(c, http.StatusUnauthorized, code, message)
}

func Forbidden(c *gin.Context, code, message string) {
	Write(c, http.StatusForbidden, code, message)
}

// Respond maps a use case error onto an HTTP response. Anything that is not a
// BusinessError is logged and reported as an opaque failure.
func Respond(c *gin.Context, log zerolog.Logger, err error) {
	var be BusinessError
	if errors.As(err, &be) {
		c.JSON(statusFor(be.Kind), HTTPError{
			Code:    be.Code,
			Message: messages[be.Code],
			Field:   be.Field,
		})
		return
	}

	log.Error().
		Err(err).
		Str("method", c.Request.Method).
		Str("path", c.FullPath()).
		Bool("store", IsStore(err)).
		Msg("request failed")

	Internal(c, "internal_error", "Something went wrong, please try again.")
}

// Binding reports a request body or query that failed gin binding, naming
// the first offending field when the validator provides one.
func Binding(c *gin.Context, err error) {
	field := FieldOf(err)
	code := "invalid_request"
	if field != "" {
		code = "missing_field"
	}
	c.JSON(http.StatusBadRequest, HTTPError{
		Code:    code,
		Message: "Invalid or missing request data.",
		Field:   field,
	})
}

// UseWireFieldNames makes gin's validator report fields by their json (or
// form) name so FieldOf matches what the client sent.
func UseWireFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(wireName)
}

func wireName(f reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(f.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return f.Name
}

func FieldOf(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return verrs[0].Field()
	}
	return ""
}

func statusFor(k Kind) int {
	switch k {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	case KindState:
		return http.StatusUnprocessableEntity
	}
	return http.StatusInternalServerError
}

var messages = map[string]string{
	"missing_field":             "A required field is missing.",
	"invalid_duration":          "Slot duration must be 10, 20 or 30 minutes.",
	"invalid_date":              "Date must use the YYYY-MM-DD format.",
	"invalid_time":              "Time must use the HH:MM format.",
	"invalid_cost":              "Every duration tier needs a price greater than zero.",
	"empty_slots":               "Select at least one slot.",
	"slot_outside_hours":        "A selected slot is not part of the working hours.",
	"duplicate_slot":            "A slot was selected more than once.",
	"slot_in_use":               "A booked slot cannot be removed from the schedule.",
	"schedule_not_found":        "The doctor is not scheduled that day.",
	"invalid_slot":              "The slot is not part of the doctor's schedule.",
	"duration_mismatch":         "The duration does not match the doctor's schedule.",
	"slot_already_booked":       "This slot was just taken, please choose another.",
	"doctor_not_found":          "Doctor not found.",
	"doctor_not_verified":       "The doctor is not accepting bookings yet.",
	"customer_not_found":        "Customer not found.",
	"pricing_not_found":         "The doctor has not configured pricing for this duration.",
	"appointment_not_found":     "Appointment not found.",
	"invalid_state":             "The appointment can no longer be changed.",
	"invalid_verification_code": "The verification code does not match.",
	"date_in_past":              "The date has already passed.",
	"invalid_status":            "Unknown doctor status.",
	"doctor_has_appointments":   "Doctors with appointment history cannot be deleted.",
}
