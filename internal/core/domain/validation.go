package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DateLayout is the wire format for calendar dates.
const DateLayout = "2006-01-02"

// FieldError is a single client-side validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError is a form validation failure caught before any network
// call. It is surfaced per field and never routed to the notification center.
type ValidationError struct {
	Fields []FieldError
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return fmt.Sprintf("[%s] %s: %s", ErrFormValidation.Code, ErrFormValidation.Message, strings.Join(parts, "; "))
}

// Unwrap lets errors.Is match ErrFormValidation.
func (e *ValidationError) Unwrap() error {
	return ErrFormValidation
}

// Field returns the message recorded for a field, if any.
func (e *ValidationError) Field(name string) (string, bool) {
	for _, f := range e.Fields {
		if f.Field == name {
			return f.Message, true
		}
	}
	return "", false
}

// Validator accumulates field errors. The first failure per field wins.
type Validator struct {
	fields []FieldError
	seen   map[string]bool
}

// NewValidator creates an empty validator.
func NewValidator() *Validator {
	return &Validator{seen: make(map[string]bool)}
}

// Fail records a failure for field unless one is already recorded.
func (v *Validator) Fail(field, message string) {
	if v.seen[field] {
		return
	}
	v.seen[field] = true
	v.fields = append(v.fields, FieldError{Field: field, Message: message})
}

// Required fails when value is blank.
func (v *Validator) Required(field, value string) {
	if strings.TrimSpace(value) == "" {
		v.Fail(field, "is required")
	}
}

// MinLen fails when value is shorter than n characters.
func (v *Validator) MinLen(field, value string, n int) {
	if len([]rune(value)) < n {
		v.Fail(field, fmt.Sprintf("must be at least %d characters", n))
	}
}

// Email fails when value is not a bare e-mail address.
func (v *Validator) Email(field, value string) {
	if !validEmail(value) {
		v.Fail(field, "must be a valid e-mail")
	}
}

// UUID fails when value is not a UUID.
func (v *Validator) UUID(field, value string) {
	if value == "" {
		v.Fail(field, "is required")
		return
	}
	if _, err := uuid.Parse(value); err != nil {
		v.Fail(field, "must be a valid uuid")
	}
}

// Positive fails when d is zero or negative.
func (v *Validator) Positive(field string, d decimal.Decimal) {
	if !d.IsPositive() {
		v.Fail(field, "must be a positive number")
	}
}

// NotNegative fails when d is negative.
func (v *Validator) NotNegative(field string, d decimal.Decimal) {
	if d.IsNegative() {
		v.Fail(field, "must not be negative")
	}
}

// Date fails when value is not a DateLayout date, and returns the parsed time.
func (v *Validator) Date(field, value string) time.Time {
	if strings.TrimSpace(value) == "" {
		v.Fail(field, "is required")
		return time.Time{}
	}
	t, err := time.Parse(DateLayout, value)
	if err != nil {
		v.Fail(field, "must be a date (YYYY-MM-DD)")
		return time.Time{}
	}
	return t
}

// Range fails when n is outside [lo, hi].
func (v *Validator) Range(field string, n, lo, hi int) {
	if n < lo || n > hi {
		v.Fail(field, fmt.Sprintf("must be between %d and %d", lo, hi))
	}
}

// Err returns a *ValidationError when any field failed, nil otherwise.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	out := make([]FieldError, len(v.fields))
	copy(out, v.fields)
	return &ValidationError{Fields: out}
}
