package command

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/urfave/cli/v2"

	"github.com/yndnr/leasedesk-go/internal/cli/config"
	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/cli/repl"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/infra/confloader"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// historyFile is kept next to the config file.
const historyFile = "history"

// ShellCommand returns the interactive shell command.
func ShellCommand() *cli.Command {
	return &cli.Command{
		Name:   "shell",
		Usage:  "Run commands interactively",
		Action: runShell,
	}
}

// shell runs each line through the same command tree as single-command
// mode, sharing one Runtime across lines.
type shell struct {
	rt *Runtime

	// resume holds the line the guard refused, replayed after login.
	resume []string
}

func newShell(rt *Runtime) *shell {
	return &shell{rt: rt}
}

func runShell(c *cli.Context) error {
	rt, err := runtimeFrom(c)
	if err != nil {
		return err
	}
	if rt.interactive {
		return errors.New("already in a shell")
	}
	rt.interactive = true
	defer func() { rt.interactive = false }()

	s := newShell(rt)

	history := repl.NewHistory(s.historyPath(), repl.DefaultHistorySize)
	if err := history.Load(); err != nil {
		rt.Logger.Debug("history not loaded", "error", err)
	}
	rt.Shutdown().OnShutdown("history", func(context.Context) error { return history.Save() })

	if w := s.watchConfig(); w != nil {
		defer w.Stop()
	}

	ctx, stop := signal.NotifyContext(c.Context, os.Interrupt, syscall.SIGTERM)
	defer stop()

	fmt.Fprintln(rt.Stdout, "leasedesk shell, type 'help' for commands and 'exit' to leave")
	r := repl.New(s.exec,
		repl.WithIO(rt.Stdin, rt.Stdout),
		repl.WithPrompt(s.prompt),
		repl.WithHistory(history),
		repl.WithCompleter(repl.NewCompleter(commandPaths(App().Commands))),
	)
	if err := r.Run(ctx); err != nil {
		return err
	}
	if ctx.Err() != nil && c.Context.Err() == nil {
		// Interrupted: release the store and timers before the process exits.
		return rt.Close()
	}
	return nil
}

func (s *shell) prompt() string {
	if user, ok := s.rt.Sessions.CurrentUser(); ok {
		return "leasedesk (" + user.Email + ")> "
	}
	return "leasedesk> "
}

// exec runs one line. When a line signs the user in and an earlier line
// was refused by the guard, the refused line runs next.
func (s *shell) exec(ctx context.Context, args []string) error {
	wasAnonymous := s.rt.Sessions.State() == domain.StateAnonymous

	// A fresh app per line: urfave flag state does not survive reuse.
	app := App(WithRuntime(s.rt))
	err := app.RunContext(ctx, append([]string{app.Name}, args...))

	switch {
	case errors.Is(err, domain.ErrNotSignedIn):
		if route := s.rt.TakePending(); route != "" {
			s.resume = args
		}
	case err == nil && wasAnonymous && s.rt.Sessions.State() == domain.StateAuthenticated && s.resume != nil:
		resume := s.resume
		s.resume = nil
		fmt.Fprintf(s.rt.Stderr, "resuming: %s\n", strings.Join(resume, " "))
		return s.exec(ctx, resume)
	}

	if IsReported(err) {
		return nil
	}
	return err
}

func (s *shell) historyPath() string {
	dir := filepath.Dir(config.DefaultConfigPath())
	if s.rt.ConfigPath != "" {
		dir = filepath.Dir(s.rt.ConfigPath)
	}
	return filepath.Join(dir, historyFile)
}

// watchConfig reloads the output format and log level when the config file
// changes. It returns nil when the file cannot be watched.
func (s *shell) watchConfig() *confloader.Watcher {
	if s.rt.ConfigPath == "" {
		return nil
	}
	w, err := confloader.NewWatcher(confloader.WithWatcherLogger(s.rt.Logger))
	if err != nil {
		s.rt.Logger.Debug("config watcher unavailable", "error", err)
		return nil
	}
	if err := w.Watch(s.rt.ConfigPath); err != nil {
		s.rt.Logger.Debug("config not watched", "path", s.rt.ConfigPath, "error", err)
		_ = w.Stop()
		return nil
	}
	w.OnChange(s.reloadConfig)
	w.StartAsync()
	return w
}

func (s *shell) reloadConfig(path string) {
	cfg, err := config.Load(path, nil)
	if err != nil {
		s.rt.Logger.Warn("config reload failed", "path", path, "error", err)
		return
	}
	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		s.rt.Logger.Warn("config reload failed", "path", path, "error", err)
		return
	}
	s.rt.SetOutput(format)
	logger.SetLevel(cfg.Log.Level)
	s.rt.Logger.Info("config reloaded", "path", path, "output", cfg.Output, "log_level", cfg.Log.Level)
}

// commandPaths lists "cmd" and "cmd sub" for the completer.
func commandPaths(cmds []*cli.Command) []string {
	paths := []string{"help"}
	for _, cmd := range cmds {
		paths = append(paths, cmd.Name)
		for _, sub := range cmd.Subcommands {
			paths = append(paths, cmd.Name+" "+sub.Name)
		}
	}
	return paths
}
