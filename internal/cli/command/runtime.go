package command

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/shopspring/decimal"

	"github.com/yndnr/leasedesk-go/internal/cli/api"
	"github.com/yndnr/leasedesk-go/internal/cli/config"
	"github.com/yndnr/leasedesk-go/internal/cli/connection"
	"github.com/yndnr/leasedesk-go/internal/cli/output"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
	"github.com/yndnr/leasedesk-go/internal/infra/buildinfo"
	"github.com/yndnr/leasedesk-go/internal/infra/shutdown"
	"github.com/yndnr/leasedesk-go/internal/infra/tlsroots"
	"github.com/yndnr/leasedesk-go/internal/storage"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
	"github.com/yndnr/leasedesk-go/internal/telemetry/metric"
)

// shutdownTimeout bounds the close hooks.
const shutdownTimeout = 5 * time.Second

var jsonNumbers sync.Once

// useJSONNumbers makes money encode as JSON numbers, which the backend
// expects instead of quoted strings.
func useJSONNumbers() {
	jsonNumbers.Do(func() { decimal.MarshalJSONWithoutQuotes = true })
}

// Runtime is what every command works with: the session and notification
// state holders, the backend client and the terminal streams. One Runtime
// lives for the whole process, including every line of a shell.
type Runtime struct {
	Config     *config.CLIConfig
	ConfigPath string

	Logger   logger.Logger
	Metrics  *metric.Registry
	Sessions *service.SessionManager
	Notices  *service.NotificationCenter
	Guard    *service.RouteGuard
	API      *api.Client

	Stdin  io.Reader
	Stdout io.Writer
	Stderr io.Writer

	// Now is the clock used for renewal checks and default dates.
	Now func() time.Time

	shutdown *shutdown.Handler

	// interactive is set inside the shell, where stdin belongs to the
	// line reader and commands must not prompt.
	interactive bool

	mu      sync.Mutex
	output  output.Format
	pending string
}

// RuntimeOption configures NewRuntime.
type RuntimeOption func(*runtimeOptions)

type runtimeOptions struct {
	engine  storage.KVEngine
	stdin   io.Reader
	stdout  io.Writer
	stderr  io.Writer
	now     func() time.Time
	verbose bool
	log     logger.Logger
	notices []service.NotificationOption
}

// WithEngine uses engine instead of opening the configured store.
func WithEngine(engine storage.KVEngine) RuntimeOption {
	return func(o *runtimeOptions) { o.engine = engine }
}

// WithStreams sets stdin, stdout and stderr.
func WithStreams(in io.Reader, out, errOut io.Writer) RuntimeOption {
	return func(o *runtimeOptions) {
		o.stdin, o.stdout, o.stderr = in, out, errOut
	}
}

// WithNow sets the clock.
func WithNow(now func() time.Time) RuntimeOption {
	return func(o *runtimeOptions) { o.now = now }
}

// WithVerbose forces debug logging.
func WithVerbose(v bool) RuntimeOption {
	return func(o *runtimeOptions) { o.verbose = v }
}

// WithRuntimeLogger replaces the logger built from the config.
func WithRuntimeLogger(l logger.Logger) RuntimeOption {
	return func(o *runtimeOptions) { o.log = l }
}

// WithNotificationOptions passes options to the notification center.
func WithNotificationOptions(opts ...service.NotificationOption) RuntimeOption {
	return func(o *runtimeOptions) { o.notices = append(o.notices, opts...) }
}

// NewRuntime wires the token store, session manager, notification slot,
// recovery policy and backend client from cfg, then restores any stored
// session. Close must be called when done.
func NewRuntime(ctx context.Context, cfg *config.CLIConfig, configPath string, opts ...RuntimeOption) (*Runtime, error) {
	useJSONNumbers()
	o := runtimeOptions{stdin: os.Stdin, stdout: os.Stdout, stderr: os.Stderr, now: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	format, err := output.ParseFormat(cfg.Output)
	if err != nil {
		return nil, domain.ErrInvalidConfig.WithCause(err)
	}

	log := o.log
	if log == nil {
		lc := logger.Config{Level: cfg.Log.Level, Format: cfg.Log.Format, Output: o.stderr}
		if o.verbose {
			lc.Level = "debug"
		}
		if log, err = logger.New(lc); err != nil {
			return nil, fmt.Errorf("create logger: %w", err)
		}
	}

	rt := &Runtime{
		Config:     cfg,
		ConfigPath: configPath,
		Logger:     log,
		Metrics:    metric.NewRegistry(),
		Stdin:      o.stdin,
		Stdout:     o.stdout,
		Stderr:     o.stderr,
		Now:        o.now,
		shutdown:   shutdown.NewHandler(shutdownTimeout),
		output:     format,
	}

	engine := o.engine
	if engine == nil {
		engine, err = storage.Open(ctx, storage.KVConfig{
			Backend:  cfg.Store.Backend,
			Dir:      cfg.Store.Dir,
			RedisURL: cfg.Store.RedisURL,
			Encrypt:  cfg.Store.Encrypt,
			Badger:   storage.DefaultBadgerConfig(),
		}, log.With("component", "storage"))
		if err != nil {
			return nil, domain.ErrStorage.WithDetails("open token store").WithCause(err)
		}
	}
	rt.shutdown.OnShutdown("token store", func(context.Context) error { return engine.Close() })
	if c, ok := engine.(interface{ Collector() prometheus.Collector }); ok {
		_ = rt.Metrics.Register(c.Collector())
	}

	tlsConfig, err := tlsroots.ClientConfig(cfg.TLS.CAFile, cfg.TLS.InsecureSkipVerify)
	if err != nil {
		_ = rt.Close()
		return nil, domain.ErrInvalidConfig.WithDetails("tls").WithCause(err)
	}

	// The client reads the token from the session manager, which itself
	// needs the client to authenticate.
	var sessions *service.SessionManager
	hc := connection.NewHTTPClient(cfg.Server,
		connection.WithTokenSource(connection.TokenSourceFunc(func() string { return sessions.Token() })),
		connection.WithRateLimit(cfg.RateLimit, 1),
		connection.WithTLSConfig(tlsConfig),
		connection.WithLogger(log.With("component", "http")),
		connection.WithMetrics(rt.Metrics),
		connection.WithUserAgent(connection.DefaultUserAgent+"/"+buildinfo.Get().Version),
	)
	sessions = service.NewSessionManager(storage.NewTokenStore(engine, storage.WithTokenStoreLogger(log.With("component", "store"))), api.NewAuth(hc),
		service.WithSessionLogger(log.With("component", "session")),
		service.WithTransitionRecorder(rt.Metrics),
	)
	rt.Sessions = sessions

	noticeOpts := append([]service.NotificationOption{service.WithNotificationRecorder(rt.Metrics)}, o.notices...)
	rt.Notices = service.NewNotificationCenter(noticeOpts...)
	rt.shutdown.OnShutdown("notifications", func(context.Context) error { return rt.Notices.Close() })
	rt.Notices.Subscribe(newFeedback(rt.Stderr).render)

	rt.Guard = service.NewRouteGuard(sessions)
	rt.API = api.New(hc, service.NewRecovery(sessions, rt.Notices, log.With("component", "recovery")))

	_ = rt.Metrics.Register(metric.NewSessionCollector(func() bool {
		return sessions.State() == domain.StateAuthenticated
	}))
	if path := cfg.Metrics.Textfile; path != "" {
		rt.shutdown.OnShutdown("metrics", func(context.Context) error { return rt.Metrics.WriteTextfile(path) })
	}

	if err := sessions.Initialize(ctx); err != nil {
		_ = rt.Close()
		return nil, err
	}
	return rt, nil
}

// Close runs the shutdown hooks once: metrics flush, notification timers,
// then the token store.
func (rt *Runtime) Close() error {
	return rt.shutdown.Run()
}

// Shutdown exposes the hook registry, e.g. for the shell's history.
func (rt *Runtime) Shutdown() *shutdown.Handler {
	return rt.shutdown
}

// Output returns the current output format.
func (rt *Runtime) Output() output.Format {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	return rt.output
}

// SetOutput changes the output format.
func (rt *Runtime) SetOutput(f output.Format) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.output = f
}

func (rt *Runtime) setPending(route string) {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	rt.pending = route
}

// TakePending returns and clears the route the guard last redirected from.
func (rt *Runtime) TakePending() string {
	rt.mu.Lock()
	defer rt.mu.Unlock()
	p := rt.pending
	rt.pending = ""
	return p
}

// requestContext bounds a command's backend calls by request_timeout.
func (rt *Runtime) requestContext(parent context.Context) (context.Context, context.CancelFunc) {
	if rt.Config.RequestTimeout > 0 {
		return context.WithTimeout(parent, rt.Config.RequestTimeout)
	}
	return context.WithCancel(parent)
}
