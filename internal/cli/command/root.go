package command

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/cli/config"
	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/infra/buildinfo"
)

const (
	runtimeKey = "runtime"
	ownedKey   = "runtime-owned"
)

// AppOption configures App.
type AppOption func(*cli.App)

// WithRuntime runs the app on an existing runtime. The app neither builds
// nor closes it; the shell and tests use this.
func WithRuntime(rt *Runtime) AppOption {
	return func(app *cli.App) {
		app.Metadata[runtimeKey] = rt
		app.Writer = rt.Stdout
		app.ErrWriter = rt.Stderr
	}
}

// WithWriters sets the help and usage writers.
func WithWriters(out, errOut io.Writer) AppOption {
	return func(app *cli.App) {
		app.Writer = out
		app.ErrWriter = errOut
	}
}

// App creates the CLI application. Without WithRuntime, the runtime is
// built from the configuration in Before and closed in After.
func App(opts ...AppOption) *cli.App {
	app := &cli.App{
		Name:     "leasedesk-cli",
		Usage:    "Manage rental contracts, people, properties and payments",
		Version:  buildinfo.Get().Version,
		Flags:    globalFlags(),
		Metadata: map[string]any{},
		Commands: []*cli.Command{
			LoginCommand(),
			LogoutCommand(),
			WhoamiCommand(),
			PeopleCommand(),
			PropertyCommand(),
			ContractCommand(),
			PaymentCommand(),
			OrderCommand(),
			ReportCommand(),
			ConfigCommand(),
			ShellCommand(),
			VersionCommand(),
		},
		Before:                 before,
		After:                  after,
		UseShortOptionHandling: true,
		// Exit codes are decided by main; the shell must survive any line.
		ExitErrHandler: func(*cli.Context, error) {},
	}
	app.HideVersion = true
	for _, opt := range opts {
		opt(app)
	}
	return app
}

func globalFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "config",
			Aliases: []string{"c"},
			Usage:   "Config file (default ~/.leasedesk/cli.yaml)",
			EnvVars: []string{"LEASEDESK_CONFIG"},
		},
		&cli.StringFlag{
			Name:    "server",
			Aliases: []string{"s"},
			Usage:   "Backend base URL, e.g. http://localhost:3333",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Output format: table, json, yaml",
		},
		&cli.BoolFlag{
			Name:  "no-headers",
			Usage: "Omit table headers",
		},
		&cli.StringFlag{
			Name:  "store",
			Usage: "Token store backend: badger, redis, memory",
		},
		&cli.DurationFlag{
			Name:  "timeout",
			Usage: "Per-command request timeout, 0 for none",
		},
		&cli.BoolFlag{
			Name:    "verbose",
			Aliases: []string{"V"},
			Usage:   "Enable debug logging",
		},
	}
}

// flagOverrides returns the config keys set on the command line.
func flagOverrides(c *cli.Context) map[string]any {
	m := make(map[string]any)
	if c.IsSet("server") {
		m["server"] = c.String("server")
	}
	if c.IsSet("output") {
		m["output"] = c.String("output")
	}
	if c.IsSet("store") {
		m["store.backend"] = c.String("store")
	}
	if c.IsSet("timeout") {
		m["request_timeout"] = c.Duration("timeout").String()
	}
	return m
}

func before(c *cli.Context) error {
	if _, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return nil
	}
	if skipsRuntime(c) {
		return nil
	}

	path := c.String("config")
	cfg, err := config.Load(path, flagOverrides(c))
	if err != nil {
		return err
	}
	if path == "" {
		path = config.DefaultConfigPath()
	}
	rt, err := NewRuntime(c.Context, cfg, path, WithVerbose(c.Bool("verbose")),
		WithStreams(os.Stdin, c.App.Writer, c.App.ErrWriter))
	if err != nil {
		return err
	}
	c.App.Metadata[runtimeKey] = rt
	c.App.Metadata[ownedKey] = true
	return nil
}

func after(c *cli.Context) error {
	if owned, _ := c.App.Metadata[ownedKey].(bool); !owned {
		return nil
	}
	rt, ok := c.App.Metadata[runtimeKey].(*Runtime)
	if !ok {
		return nil
	}
	return rt.Close()
}

// skipsRuntime reports whether the invoked command works without a token
// store: version, help and the config file commands.
func skipsRuntime(c *cli.Context) bool {
	switch c.Args().First() {
	case "", "version", "help", "h", "config":
		return true
	}
	return false
}

func runtimeFrom(c *cli.Context) (*Runtime, error) {
	if rt, ok := c.App.Metadata[runtimeKey].(*Runtime); ok {
		return rt, nil
	}
	return nil, errors.New("runtime not initialized")
}

// render writes data in the current output format. An --output flag on
// the invocation wins over the configured format.
func render(c *cli.Context, rt *Runtime, data any) error {
	return renderAs(c, rt.Stdout, rt.Output(), data)
}

func renderAs(c *cli.Context, w io.Writer, format output.Format, data any) error {
	if c.IsSet("output") {
		f, err := output.ParseFormat(c.String("output"))
		if err != nil {
			return err
		}
		format = f
	}
	if err := output.NewFormatter(format, c.Bool("no-headers")).Format(w, data); err != nil {
		return fmt.Errorf("render output: %w", err)
	}
	return nil
}
