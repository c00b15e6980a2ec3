package httperr

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/rs/zerolog"
)

func init() {
	gin.SetMode(gin.TestMode)
	UseWireFieldNames()
}

func respond(err error) (*httptest.ResponseRecorder, HTTPError) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	Respond(c, zerolog.Nop(), err)

	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	return w, body
}

func TestRespond_StatusByKind(t *testing.T) {
	tests := []struct {
		err    error
		status int
		code   string
	}{
		{ErrValidation("invalid_date", "date"), http.StatusBadRequest, "invalid_date"},
		{ErrNotFound("schedule_not_found"), http.StatusNotFound, "schedule_not_found"},
		{ErrConflict("slot_already_booked"), http.StatusConflict, "slot_already_booked"},
		{ErrBusiness("invalid_state"), http.StatusUnprocessableEntity, "invalid_state"},
		{fmt.Errorf("wrapped: %w", ErrConflict("slot_in_use")), http.StatusConflict, "slot_in_use"},
		{Store("insert", errors.New("connection reset")), http.StatusInternalServerError, "internal_error"},
	}

	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			w, body := respond(tt.err)
			if w.Code != tt.status {
				t.Errorf("expected %d, got %d", tt.status, w.Code)
			}
			if body.Code != tt.code {
				t.Errorf("expected %s, got %s", tt.code, body.Code)
			}
			if body.Message == "" {
				t.Error("expected a message")
			}
		})
	}
}

func TestRespond_HidesStoreDetails(t *testing.T) {
	w, _ := respond(Store("insert", errors.New("password authentication failed")))
	if strings.Contains(w.Body.String(), "password") {
		t.Errorf("store error leaked: %s", w.Body)
	}
}

func TestRespond_ReportsField(t *testing.T) {
	_, body := respond(ErrValidation("missing_field", "slot_label"))
	if body.Field != "slot_label" {
		t.Errorf("expected field slot_label, got %q", body.Field)
	}
}

type bookRequest struct {
	DoctorID  uint   `json:"doctor_id" binding:"required"`
	SlotLabel string `json:"slot_label" binding:"required"`
}

func TestBinding_NamesWireField(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"doctor_id":5}`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req bookRequest
	err := c.ShouldBindJSON(&req)
	if err == nil {
		t.Fatal("expected binding error")
	}
	Binding(c, err)

	var body HTTPError
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if w.Code != http.StatusBadRequest || body.Code != "missing_field" || body.Field != "slot_label" {
		t.Errorf("unexpected response %d %+v", w.Code, body)
	}
}

func TestBinding_MalformedBody(t *testing.T) {
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{`))
	c.Request.Header.Set("Content-Type", "application/json")

	var req bookRequest
	Binding(c, c.ShouldBindJSON(&req))

	var body HTTPError
	_ = json.Unmarshal(w.Body.Bytes(), &body)
	if body.Code != "invalid_request" || body.Field != "" {
		t.Errorf("unexpected response %+v", body)
	}
}

func TestIsUniqueViolation(t *testing.T) {
	pgErr := &pgconn.PgError{Code: "23505", ConstraintName: "uniq_booked_slot"}
	wrapped := Store("insert appointment", pgErr)

	if !IsUniqueViolation(wrapped, "uniq_booked_slot") {
		t.Error("expected match on named constraint")
	}
	if !IsUniqueViolation(wrapped, "") {
		t.Error("expected match with any constraint")
	}
	if IsUniqueViolation(wrapped, "idx_customer_email") {
		t.Error("unexpected match on other constraint")
	}
	if IsUniqueViolation(&pgconn.PgError{Code: "23503"}, "") {
		t.Error("foreign key violation is not a unique violation")
	}
	if IsUniqueViolation(errors.New("boom"), "") {
		t.Error("plain error is not a unique violation")
	}
}

func TestIsForeignKeyViolation(t *testing.T) {
	if !IsForeignKeyViolation(Store("delete doctor", &pgconn.PgError{Code: "23503"})) {
		t.Error("expected match on wrapped 23503")
	}
	if IsForeignKeyViolation(&pgconn.PgError{Code: "23505"}) {
		t.Error("unique violation is not a foreign key violation")
	}
	if IsForeignKeyViolation(errors.New("boom")) {
		t.Error("plain error is not a foreign key violation")
	}
}

func TestStore(t *testing.T) {
	if Store("op", nil) != nil {
		t.Error("nil must stay nil")
	}

	biz := ErrNotFound("doctor_not_found")
	if got := Store("op", biz); !IsBusiness(got, "doctor_not_found") || IsStore(got) {
		t.Errorf("business error must pass through, got %v", got)
	}

	raw := errors.New("timeout")
	got := Store("get schedule", raw)
	if !IsStore(got) || !errors.Is(got, raw) || KindOf(got) != "" {
		t.Errorf("expected wrapped store error, got %v", got)
	}
}

func TestMessagesCoverCodes(t *testing.T) {
	for code, msg := range messages {
		if msg == "" {
			t.Errorf("%s has an empty message", code)
		}
	}
}
