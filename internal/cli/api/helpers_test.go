package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/yndnr/leasedesk-go/internal/cli/connection"
	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
	"github.com/yndnr/leasedesk-go/internal/storage"
)

type hit struct {
	Method string
	Path   string
	Query  string
	Body   map[string]any
}

// backend is a scripted REST server recording every request.
type backend struct {
	t      *testing.T
	mu     sync.Mutex
	hits   []hit
	routes map[string]func(w http.ResponseWriter, r *http.Request)
}

func newBackend(t *testing.T) (*backend, *httptest.Server) {
	b := &backend{t: t, routes: make(map[string]func(http.ResponseWriter, *http.Request))}
	srv := httptest.NewServer(http.HandlerFunc(b.serve))
	t.Cleanup(srv.Close)
	return b, srv
}

func (b *backend) handle(method, path string, status int, body any) {
	b.routes[method+" "+path] = func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		if body != nil {
			_ = json.NewEncoder(w).Encode(body)
		}
	}
}

func (b *backend) serve(w http.ResponseWriter, r *http.Request) {
	var body map[string]any
	_ = json.NewDecoder(r.Body).Decode(&body)

	b.mu.Lock()
	b.hits = append(b.hits, hit{Method: r.Method, Path: r.URL.Path, Query: r.URL.RawQuery, Body: body})
	route, ok := b.routes[r.Method+" "+r.URL.Path]
	b.mu.Unlock()

	if !ok {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"message":"no route"}`))
		return
	}
	route(w, r)
}

func (b *backend) requests() []hit {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]hit(nil), b.hits...)
}

// harness wires a signed-in session, the notification slot and recovery
// over the scripted backend.
type harness struct {
	client   *Client
	sessions *service.SessionManager
	notices  *service.NotificationCenter
	store    *storage.TokenStore
}

func newHarness(t *testing.T, serverURL string) *harness {
	t.Helper()
	store := storage.NewTokenStore(storage.NewMemoryEngine())
	user, err := domain.EncodeUser(domain.User{Name: "Ana", Email: "ana@example.com"})
	require.NoError(t, err)
	require.NoError(t, store.Save(context.Background(), "tok-1", user))

	sessions := service.NewSessionManager(store, nil)
	require.NoError(t, sessions.Initialize(context.Background()))

	notices := service.NewNotificationCenter(service.WithAutoHide(0))
	t.Cleanup(func() { _ = notices.Close() })

	hc := connection.NewHTTPClient(serverURL, connection.WithTokenSource(sessions))
	return &harness{
		client:   New(hc, service.NewRecovery(sessions, notices, nil)),
		sessions: sessions,
		notices:  notices,
		store:    store,
	}
}
