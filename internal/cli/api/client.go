package api

import (
	"context"
	"errors"

	"github.com/yndnr/leasedesk-go/internal/cli/connection"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// ErrViewClosed is returned when the view that issued a call was closed
// before the answer arrived. The result must be dropped.
var ErrViewClosed = errors.New("view closed before the response arrived")

// Doer sends one backend call.
type Doer interface {
	Do(ctx context.Context, req connection.Request, out any) domain.Outcome
}

// Client groups the backend resources.
type Client struct {
	http     Doer
	recovery *service.Recovery
}

// New creates a client. recovery may be nil, in which case outcomes are
// only converted to errors.
func New(http Doer, recovery *service.Recovery) *Client {
	return &Client{http: http, recovery: recovery}
}

// call sends req, applies the recovery policy with message for non-401
// failures, and converts the outcome to an error.
func (c *Client) call(ctx context.Context, view *service.View, req connection.Request, out any, message string) error {
	o := c.http.Do(ctx, req, out)
	if c.recovery != nil {
		if message == "" {
			message = domain.MsgCheckData
		}
		o = c.recovery.ApplyWith(ctx, view, o, message)
	}
	if err := o.AsError(); err != nil {
		return err
	}
	if view.Closed() {
		return ErrViewClosed
	}
	return nil
}

type idResponse struct {
	ID string `json:"id"`
}
