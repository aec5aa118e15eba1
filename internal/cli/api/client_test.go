package api

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/core/service"
)

func TestClient_AuthExpiredSignsOut(t *testing.T) {
	b, srv := newBackend(t)
	b.handle(http.MethodGet, "/api/v1/people", http.StatusUnauthorized, map[string]string{"message": "Invalid JWT token"})
	h := newHarness(t, srv.URL)

	_, err := h.client.ListPeople(context.Background(), service.NewView("people list"))
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, domain.StateAnonymous, h.sessions.State())

	token, user, err := h.store.Load(context.Background())
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Empty(t, user)

	n := h.notices.Current()
	assert.True(t, n.IsOpen)
	assert.Equal(t, domain.MsgSessionExpired, n.Message)
	assert.Equal(t, domain.SeverityError, n.Severity)
}

func TestClient_RejectedKeepsSession(t *testing.T) {
	b, srv := newBackend(t)
	b.handle(http.MethodGet, "/api/v1/contracts", http.StatusInternalServerError, map[string]string{"message": "boom"})
	h := newHarness(t, srv.URL)

	_, err := h.client.ListContracts(context.Background(), service.NewView("contract list"))
	assert.ErrorIs(t, err, domain.ErrRejected)
	assert.Equal(t, domain.StateAuthenticated, h.sessions.State())
	assert.Equal(t, domain.MsgCheckData, h.notices.Current().Message)
}

func TestClient_ClosedViewDropsResult(t *testing.T) {
	b, srv := newBackend(t)
	b.handle(http.MethodGet, "/api/v1/people", http.StatusOK, []map[string]string{{"id": "1", "name": "Ana"}})
	b.handle(http.MethodGet, "/api/v1/contracts", http.StatusUnauthorized, nil)
	h := newHarness(t, srv.URL)

	view := service.NewView("people list")
	view.Close()

	_, err := h.client.ListPeople(context.Background(), view)
	assert.ErrorIs(t, err, ErrViewClosed)

	_, err = h.client.ListContracts(context.Background(), view)
	assert.ErrorIs(t, err, domain.ErrAuthExpired)
	assert.Equal(t, domain.StateAnonymous, h.sessions.State(), "401 signs out even for a closed view")
	assert.False(t, h.notices.Current().IsOpen, "closed view gets no notification")
}

func TestClient_BearerFollowsSession(t *testing.T) {
	var seen []string
	b, srv := newBackend(t)
	b.routes["GET /api/v1/people"] = func(w http.ResponseWriter, r *http.Request) {
		seen = append(seen, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	}
	h := newHarness(t, srv.URL)

	_, err := h.client.ListPeople(context.Background(), nil)
	require.NoError(t, err)
	require.NoError(t, h.sessions.SignOut(context.Background()))
	_, err = h.client.ListPeople(context.Background(), nil)
	require.NoError(t, err)

	assert.Equal(t, []string{"Bearer tok-1", ""}, seen)
}
