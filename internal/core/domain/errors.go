package domain

import (
	"errors"
	"fmt"
)

// DomainError is an error with a stable code of the form LD-<AREA>-<NNNN>;
// the last four digits mirror the closest HTTP status. Two DomainErrors
// match under errors.Is when their codes are equal, whatever their details.
type DomainError struct {
	Code    string
	Message string
	Details string
	Cause   error
}

// NewDomainError creates a DomainError.
func NewDomainError(code, message string) *DomainError {
	return &DomainError{Code: code, Message: message}
}

func (e *DomainError) Error() string {
	if e.Details == "" {
		return "[" + e.Code + "] " + e.Message
	}
	return fmt.Sprintf("[%s] %s: %s", e.Code, e.Message, e.Details)
}

func (e *DomainError) Unwrap() error { return e.Cause }

func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	return ok && t.Code == e.Code
}

// WithDetails returns a copy carrying details.
func (e *DomainError) WithDetails(details string) *DomainError {
	c := *e
	c.Details = details
	return &c
}

// WithCause returns a copy wrapping cause.
func (e *DomainError) WithCause(cause error) *DomainError {
	c := *e
	c.Cause = cause
	return &c
}

// CodeOf returns the code of the first DomainError in err's chain, or "".
func CodeOf(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ""
}

// Authentication errors.
var (
	// ErrAuthExpired is reported when the backend answers 401 to a protected call.
	ErrAuthExpired = NewDomainError("LD-AUTH-4010", "session expired")

	// ErrInvalidCredentials is reported when the sign-in exchange is refused.
	ErrInvalidCredentials = NewDomainError("LD-AUTH-4011", "invalid credentials")

	// ErrNotSignedIn is reported when a protected route is entered anonymously.
	ErrNotSignedIn = NewDomainError("LD-AUTH-4012", "not signed in")
)

// Request errors.
var (
	// ErrRejected covers every non-2xx, non-401 answer.
	ErrRejected = NewDomainError("LD-REQ-4000", "request rejected")

	// ErrNetwork covers transport failures where no response was received.
	ErrNetwork = NewDomainError("LD-NET-5030", "network failure")

	// ErrFormValidation is the sentinel wrapped by ValidationError.
	ErrFormValidation = NewDomainError("LD-FORM-4220", "form validation failed")
)

// Storage and configuration errors.
var (
	ErrStorage       = NewDomainError("LD-STOR-5000", "storage failure")
	ErrNotFound      = NewDomainError("LD-STOR-4040", "not found")
	ErrInvalidConfig = NewDomainError("LD-CONF-4000", "invalid configuration")
)
