package command

import (
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

// feedback prints the notification slot to stderr. Only openings are
// printed; the terminal has nothing to hide when the slot closes.
type feedback struct {
	mu  sync.Mutex
	out io.Writer
}

func newFeedback(out io.Writer) *feedback {
	return &feedback{out: out}
}

func (f *feedback) render(n domain.Notification) {
	if !n.IsOpen {
		return
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	fmt.Fprintf(f.out, "%s %s\n", severityMark(n.Severity), n.Message)
}

func severityMark(s domain.Severity) string {
	switch s {
	case domain.SeveritySuccess:
		return "[ok]"
	case domain.SeverityInfo:
		return "[info]"
	default:
		return "[error]"
	}
}

// reportedError marks a failure the user has already been told about
// through the notification slot or a field listing.
type reportedError struct {
	err error
}

func (e *reportedError) Error() string { return e.err.Error() }
func (e *reportedError) Unwrap() error { return e.err }

// IsReported reports whether err was already shown to the user, so the
// caller only needs to set the exit status.
func IsReported(err error) bool {
	var r *reportedError
	return errors.As(err, &r)
}

// MsgInvalidInput heads the field listing of a form error.
const MsgInvalidInput = "invalid input"

// fail turns a resource error into the command result. Backend outcomes
// were already turned into notifications by the recovery policy. Form
// errors never reach the notification slot: they are listed field by
// field on stderr under heading, or MsgInvalidInput when it is empty.
func (rt *Runtime) fail(err error, heading string) error {
	if err == nil {
		return nil
	}

	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		if heading == "" {
			heading = MsgInvalidInput
		}
		fmt.Fprintln(rt.Stderr, heading)
		for _, f := range ve.Fields {
			fmt.Fprintf(rt.Stderr, "  %s: %s\n", f.Field, f.Message)
		}
		return &reportedError{err: err}

	case errors.Is(err, domain.ErrAuthExpired),
		errors.Is(err, domain.ErrRejected),
		errors.Is(err, domain.ErrNetwork):
		rt.Logger.Debug("command failed", "code", domain.CodeOf(err), "error", err)
		return &reportedError{err: err}
	}
	return err
}
