package command

import (
	"bufio"
	"errors"
	"fmt"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

// MsgSignInFailed is shown when the backend refuses the credentials.
const MsgSignInFailed = "sign in failed, check your credentials"

// LoginCommand returns the login command.
func LoginCommand() *cli.Command {
	return &cli.Command{
		Name:  "login",
		Usage: "Sign in to the backend",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "email",
				Aliases: []string{"e"},
				Usage:   "Account e-mail",
				EnvVars: []string{"LEASEDESK_EMAIL"},
			},
			&cli.StringFlag{
				Name:    "password",
				Aliases: []string{"p"},
				Usage:   "Account password (prompted when omitted)",
				EnvVars: []string{"LEASEDESK_PASSWORD"},
			},
		},
		Action: login,
	}
}

func login(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}

	creds := domain.Credentials{
		Email:    strings.TrimSpace(c.String("email")),
		Password: c.String("password"),
	}
	if creds.Password == "" && !rt.interactive {
		creds.Password = rt.prompt("Password: ")
	}

	ctx, cancel := rt.requestContext(c.Context)
	defer cancel()

	err = rt.Sessions.SignIn(ctx, creds)
	var ve *domain.ValidationError
	switch {
	case err == nil:
	case errors.As(err, &ve):
		return rt.fail(err, "")
	case errors.Is(err, domain.ErrInvalidCredentials), errors.Is(err, domain.ErrRejected):
		rt.Notices.Show(MsgSignInFailed, domain.SeverityError)
		return &reportedError{err: err}
	case errors.Is(err, domain.ErrNetwork):
		rt.Notices.Show(domain.MsgCheckData, domain.SeverityError)
		return &reportedError{err: err}
	default:
		return err
	}

	user, _ := rt.Sessions.CurrentUser()
	rt.Notices.Show("signed in as "+user.Name, domain.SeveritySuccess)
	return nil
}

// prompt reads one line from stdin after writing label to stderr.
func (rt *Runtime) prompt(label string) string {
	fmt.Fprint(rt.Stderr, label)
	line, _ := bufio.NewReader(rt.Stdin).ReadString('\n')
	return strings.TrimRight(line, "\r\n")
}

// LogoutCommand returns the logout command.
func LogoutCommand() *cli.Command {
	return &cli.Command{
		Name:  "logout",
		Usage: "Sign out and forget the stored session",
		Action: func(c *cli.Context) error {
			rt, err := runtimeFrom(c)
			if err != nil {
				return err
			}
			if rt.Sessions.State() == domain.StateAnonymous {
				rt.Notices.Show("not signed in", domain.SeverityInfo)
				return nil
			}
			if err := rt.Sessions.SignOut(c.Context); err != nil {
				return err
			}
			rt.Notices.Show("signed out", domain.SeveritySuccess)
			return nil
		},
	}
}

// WhoamiCommand returns the whoami command.
func WhoamiCommand() *cli.Command {
	return &cli.Command{
		Name:  "whoami",
		Usage: "Show the signed-in user",
		Action: guarded("whoami", func(c *cli.Context, rt *Runtime, _ *service.View) error {
			user, _ := rt.Sessions.CurrentUser()
			kv := &output.KeyValue{}
			kv.Add("name", user.Name)
			kv.Add("email", user.Email)
			kv.Add("server", rt.Config.Server)
			kv.Value = user
			return render(c, rt, kv)
		}),
	}
}
