package command

import (
	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// MsgSignInFirst is shown when a protected command runs without a session.
const MsgSignInFirst = "sign in to continue: leasedesk-cli login"

// guarded runs action only when the route guard lets route through. A
// refused route is remembered so the shell can resume it after login.
func guarded(route string, action func(c *cli.Context, rt *Runtime, view *service.View) error) cli.ActionFunc {
	return func(c *cli.Context) error {
		rt, err := runtimeFrom(c)
		if err != nil {
			return err
		}

		d := rt.Guard.CanEnter(route)
		if !d.Allowed {
			rt.setPending(d.From)
			rt.Notices.Show(MsgSignInFirst, domain.SeverityInfo)
			return &reportedError{err: domain.ErrNotSignedIn.WithDetails(d.From)}
		}

		c.Context = logger.WithView(c.Context, route)
		view := service.NewView(route)
		defer view.Close()
		return action(c, rt, view)
	}
}
