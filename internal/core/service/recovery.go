package service

import (
	"context"
	"sync/atomic"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// View marks the lifetime of whatever started a request: a command run or
// a shell line. Results arriving after Close are discarded.
type View struct {
	name   string
	closed atomic.Bool
}

// NewView opens a view.
func NewView(name string) *View {
	return &View{name: name}
}

// Name returns the view name.
func (v *View) Name() string { return v.name }

// Close marks the view gone.
func (v *View) Close() { v.closed.Store(true) }

// Closed reports whether Close was called. A nil view is never closed.
func (v *View) Closed() bool {
	return v != nil && v.closed.Load()
}

// Recovery applies the two-branch failure policy to backend outcomes:
// a 401 signs the session out and reports an expired session; any other
// failure reports a generic error and leaves the session alone.
type Recovery struct {
	sessions *SessionManager
	notices  *NotificationCenter
	logger   logger.Logger
}

// NewRecovery creates the policy over the given state holders.
func NewRecovery(sessions *SessionManager, notices *NotificationCenter, l logger.Logger) *Recovery {
	if l == nil {
		l = logger.Nop()
	}
	return &Recovery{sessions: sessions, notices: notices, logger: l}
}

// Apply runs the policy with the default failure message.
func (r *Recovery) Apply(ctx context.Context, view *View, o domain.Outcome) domain.Outcome {
	return r.ApplyWith(ctx, view, o, domain.MsgCheckData)
}

// ApplyWith runs the policy, using message for non-401 failures. The 401
// message is fixed. When view is closed the notification is dropped, but a
// 401 still signs the session out. The outcome is returned unchanged.
func (r *Recovery) ApplyWith(ctx context.Context, view *View, o domain.Outcome, message string) domain.Outcome {
	switch o.Kind {
	case domain.OutcomeOK:
		return o

	case domain.OutcomeAuthExpired:
		if err := r.sessions.signOut(ctx, ReasonAuthExpired); err != nil {
			r.logger.Error("sign out after 401", "error", err)
		}
		r.show(view, domain.MsgSessionExpired)

	default:
		r.logger.Debug("request failed", "kind", o.Kind.String(), "status", o.Status, "reason", o.Reason)
		r.show(view, message)
	}
	return o
}

func (r *Recovery) show(view *View, message string) {
	if view.Closed() {
		r.logger.Debug("dropping notification for closed view", "view", view.Name(), "message", message)
		return
	}
	r.notices.Show(message, domain.SeverityError)
}
