package domain

import "fmt"

// Severity is the tone of a notification.
type Severity string

const (
	SeveritySuccess Severity = "success"
	SeverityInfo    Severity = "info"
	SeverityError   Severity = "error"
)

// ParseSeverity converts a string into a Severity.
func ParseSeverity(s string) (Severity, error) {
	switch Severity(s) {
	case SeveritySuccess, SeverityInfo, SeverityError:
		return Severity(s), nil
	default:
		return "", fmt.Errorf("unknown severity %q", s)
	}
}

// Notification is the single transient message slot.
type Notification struct {
	Message  string   `json:"message"`
	Severity Severity `json:"severity"`
	IsOpen   bool     `json:"is_open"`
}

// DismissReason tells why a dismissal was requested.
type DismissReason string

const (
	// DismissNone is an explicit dismissal without a reason.
	DismissNone DismissReason = ""
	// DismissClose is the close action on the notification itself.
	DismissClose DismissReason = "close"
	// DismissTimeout is the auto-hide timer firing.
	DismissTimeout DismissReason = "timeout"
	// DismissClickaway is a click outside the notification's anchor. It is ignored.
	DismissClickaway DismissReason = "clickaway"
)

// User-facing messages of the request recovery policy.
const (
	MsgSessionExpired = "session expired, please sign in again"
	MsgCheckData      = "check the submitted data and try again"
)
