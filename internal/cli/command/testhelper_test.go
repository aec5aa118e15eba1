package command

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/yndnr/leasedesk-go/internal/cli/config"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
	"github.com/yndnr/leasedesk-go/internal/storage"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// testNow is the clock of every test runtime.
var testNow = time.Date(2026, 10, 15, 10, 0, 0, 0, time.UTC)

// mockServer is a scripted backend. Handlers are keyed by "METHOD /path".
type mockServer struct {
	*httptest.Server
	mu       sync.Mutex
	handlers map[string]http.HandlerFunc
	hits     []string
	bodies   []string
}

func newMockServer(t *testing.T) *mockServer {
	m := &mockServer{handlers: make(map[string]http.HandlerFunc)}
	m.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		hit := r.Method + " " + r.URL.Path
		if r.URL.RawQuery != "" {
			hit += "?" + r.URL.RawQuery
		}

		m.mu.Lock()
		m.hits = append(m.hits, hit)
		m.bodies = append(m.bodies, string(body))
		handler, ok := m.handlers[r.Method+" "+r.URL.Path]
		m.mu.Unlock()

		if !ok {
			errorResponse(w, http.StatusNotFound, "no route")
			return
		}
		handler(w, r)
	}))
	t.Cleanup(m.Close)
	return m
}

// handle registers a handler for "METHOD /path".
func (m *mockServer) handle(route string, handler http.HandlerFunc) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.handlers[route] = handler
}

// reply registers a fixed JSON answer.
func (m *mockServer) reply(route string, status int, data any) {
	m.handle(route, func(w http.ResponseWriter, _ *http.Request) {
		jsonResponse(w, status, data)
	})
}

func (m *mockServer) requests() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.hits...)
}

func (m *mockServer) lastBody() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.bodies) == 0 {
		return ""
	}
	return m.bodies[len(m.bodies)-1]
}

// jsonResponse writes a JSON response.
func jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		_ = json.NewEncoder(w).Encode(data)
	}
}

// errorResponse writes an error response.
func errorResponse(w http.ResponseWriter, status int, message string) {
	jsonResponse(w, status, map[string]string{"message": message})
}

// testEnv is a runtime over a memory store and a mock backend with
// captured output.
type testEnv struct {
	rt     *Runtime
	server *mockServer
	engine *storage.MemoryEngine
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

type envOption func(*envConfig)

type envConfig struct {
	signedIn bool
	sealed   bool
	stdin    string
}

func signedIn() envOption {
	return func(c *envConfig) { c.signedIn = true }
}

// sealed wraps the store in encryption after any signedIn seeding, so a
// seeded session is plaintext the runtime cannot read.
func sealed() envOption {
	return func(c *envConfig) { c.sealed = true }
}

func withStdin(s string) envOption {
	return func(c *envConfig) { c.stdin = s }
}

func newTestEnv(t *testing.T, opts ...envOption) *testEnv {
	t.Helper()
	var ec envConfig
	for _, opt := range opts {
		opt(&ec)
	}

	server := newMockServer(t)
	engine := storage.NewMemoryEngine()
	if ec.signedIn {
		user, err := domain.EncodeUser(domain.User{Name: "Ana", Email: "ana@example.com"})
		if err != nil {
			t.Fatal(err)
		}
		if err := storage.NewTokenStore(engine).Save(context.Background(), "tok-1", user); err != nil {
			t.Fatal(err)
		}
	}

	var kv storage.KVEngine = engine
	if ec.sealed {
		s, err := storage.NewSealedEngine(engine, bytes.Repeat([]byte{7}, 32))
		if err != nil {
			t.Fatal(err)
		}
		kv = s
	}

	dir := t.TempDir()
	cfg := config.Default(dir)
	cfg.Server = server.URL
	cfg.Store.Backend = "memory"

	env := &testEnv{
		server: server,
		engine: engine,
		stdout: &bytes.Buffer{},
		stderr: &bytes.Buffer{},
	}
	rt, err := NewRuntime(context.Background(), cfg, filepath.Join(dir, config.FileName),
		WithEngine(kv),
		WithStreams(strings.NewReader(ec.stdin), env.stdout, env.stderr),
		WithNow(func() time.Time { return testNow }),
		WithRuntimeLogger(logger.Nop()),
		WithNotificationOptions(service.WithAutoHide(0)),
	)
	if err != nil {
		t.Fatalf("NewRuntime() error = %v", err)
	}
	t.Cleanup(func() { _ = rt.Close() })
	env.rt = rt
	return env
}

// run executes one command line against the runtime.
func (e *testEnv) run(args ...string) error {
	app := App(WithRuntime(e.rt))
	return app.RunContext(context.Background(), append([]string{app.Name}, args...))
}

func (e *testEnv) acceptSignIn(t *testing.T) {
	t.Helper()
	e.server.reply("POST /api/v1/sessions", http.StatusOK, map[string]any{
		"token": "tok-1",
		"user":  map[string]string{"name": "Ana", "email": "ana@example.com"},
	})
}

func contains(t *testing.T, what, got, want string) {
	t.Helper()
	if !strings.Contains(got, want) {
		t.Errorf("%s does not contain %q:\n%s", what, want, got)
	}
}
