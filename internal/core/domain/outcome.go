package domain

import "fmt"

// OutcomeKind tags the result of a backend call.
type OutcomeKind int

const (
	// OutcomeOK is any 2xx answer.
	OutcomeOK OutcomeKind = iota
	// OutcomeAuthExpired is a 401 answer.
	OutcomeAuthExpired
	// OutcomeRejected is any other non-2xx answer.
	OutcomeRejected
	// OutcomeNetworkError means no response was received.
	OutcomeNetworkError
)

// String returns a short label, also used as a metric label.
func (k OutcomeKind) String() string {
	switch k {
	case OutcomeOK:
		return "ok"
	case OutcomeAuthExpired:
		return "auth_expired"
	case OutcomeRejected:
		return "rejected"
	case OutcomeNetworkError:
		return "network_error"
	default:
		return "unknown"
	}
}

// Outcome is the tagged result of a backend call. Callers switch on Kind
// instead of inspecting status codes.
type Outcome struct {
	Kind   OutcomeKind
	Status int    // HTTP status, 0 for network errors
	Reason string // server message or transport error text
	Err    error  // underlying error, nil for OutcomeOK
}

// OK returns a successful outcome.
func OK(status int) Outcome {
	return Outcome{Kind: OutcomeOK, Status: status}
}

// AuthExpired returns the 401 outcome.
func AuthExpired(reason string) Outcome {
	return Outcome{Kind: OutcomeAuthExpired, Status: 401, Reason: reason, Err: ErrAuthExpired.WithDetails(reason)}
}

// Rejected returns the outcome for a non-2xx, non-401 status.
func Rejected(status int, reason string) Outcome {
	return Outcome{
		Kind:   OutcomeRejected,
		Status: status,
		Reason: reason,
		Err:    ErrRejected.WithDetails(fmt.Sprintf("status %d: %s", status, reason)),
	}
}

// NetworkError returns the outcome for a transport failure.
func NetworkError(cause error) Outcome {
	reason := ""
	if cause != nil {
		reason = cause.Error()
	}
	return Outcome{Kind: OutcomeNetworkError, Reason: reason, Err: ErrNetwork.WithCause(cause)}
}

// IsOK reports whether the call succeeded.
func (o Outcome) IsOK() bool {
	return o.Kind == OutcomeOK
}

// AsError returns the outcome as an error, nil on success.
func (o Outcome) AsError() error {
	if o.Kind == OutcomeOK {
		return nil
	}
	if o.Err != nil {
		return o.Err
	}
	return ErrRejected
}
