package service

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

type recoveryFixture struct {
	store    *memStore
	sessions *SessionManager
	notices  *NotificationCenter
	recovery *Recovery
	shown    []domain.Notification
}

func newRecoveryFixture(t *testing.T) *recoveryFixture {
	t.Helper()
	f := &recoveryFixture{store: &memStore{}}
	f.sessions = NewSessionManager(f.store, okAuth())
	f.notices, _ = newTestCenter()
	f.recovery = NewRecovery(f.sessions, f.notices, nil)

	var mu sync.Mutex
	f.notices.Subscribe(func(n domain.Notification) {
		mu.Lock()
		defer mu.Unlock()
		if n.IsOpen {
			f.shown = append(f.shown, n)
		}
	})

	require.NoError(t, f.sessions.SignIn(context.Background(), credsA))
	return f
}

func TestRecovery_AuthExpired(t *testing.T) {
	f := newRecoveryFixture(t)

	out := f.recovery.Apply(context.Background(), NewView("contract list"), domain.AuthExpired("jwt expired"))

	assert.Equal(t, domain.OutcomeAuthExpired, out.Kind)
	assert.True(t, f.store.empty())
	_, ok := f.sessions.CurrentUser()
	assert.False(t, ok)
	require.Len(t, f.shown, 1)
	assert.Equal(t, domain.MsgSessionExpired, f.shown[0].Message)
	assert.Equal(t, domain.SeverityError, f.shown[0].Severity)
}

func TestRecovery_NonAuthFailuresKeepSession(t *testing.T) {
	outcomes := []domain.Outcome{
		domain.Rejected(422, "invalid payload"),
		domain.Rejected(500, "boom"),
		domain.NetworkError(errors.New("connection refused")),
	}

	for _, o := range outcomes {
		t.Run(o.Kind.String(), func(t *testing.T) {
			f := newRecoveryFixture(t)

			f.recovery.Apply(context.Background(), NewView("people create"), o)

			user, ok := f.sessions.CurrentUser()
			assert.True(t, ok)
			assert.Equal(t, userA, user)
			require.Len(t, f.shown, 1)
			assert.Equal(t, domain.MsgCheckData, f.shown[0].Message)
			assert.Equal(t, domain.SeverityError, f.shown[0].Severity)
		})
	}
}

func TestRecovery_CustomMessage(t *testing.T) {
	f := newRecoveryFixture(t)
	const msg = "check the payment date - it must not be a future date"

	f.recovery.ApplyWith(context.Background(), NewView("payment pay"), domain.Rejected(400, "future"), msg)
	f.recovery.ApplyWith(context.Background(), NewView("payment pay"), domain.AuthExpired(""), msg)

	require.Len(t, f.shown, 2)
	assert.Equal(t, msg, f.shown[0].Message)
	assert.Equal(t, domain.MsgSessionExpired, f.shown[1].Message, "401 wording is fixed")
}

func TestRecovery_OKHasNoSideEffects(t *testing.T) {
	f := newRecoveryFixture(t)

	f.recovery.Apply(context.Background(), NewView("people list"), domain.OK(200))

	assert.Empty(t, f.shown)
	assert.Equal(t, domain.StateAuthenticated, f.sessions.State())
}

func TestRecovery_ClosedView(t *testing.T) {
	f := newRecoveryFixture(t)
	view := NewView("report payments")
	view.Close()

	f.recovery.Apply(context.Background(), view, domain.Rejected(400, "bad"))
	assert.Empty(t, f.shown, "notification discarded for a closed view")

	f.recovery.Apply(context.Background(), view, domain.AuthExpired(""))
	assert.Empty(t, f.shown)
	assert.Equal(t, domain.StateAnonymous, f.sessions.State(), "401 signs out regardless")
}

func TestRecovery_ConcurrentAuthExpired(t *testing.T) {
	f := newRecoveryFixture(t)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.recovery.Apply(context.Background(), NewView("contract list"), domain.AuthExpired(""))
		}()
	}
	wg.Wait()

	assert.Equal(t, domain.StateAnonymous, f.sessions.State())
	assert.True(t, f.store.empty())
	n := f.notices.Current()
	assert.True(t, n.IsOpen)
	assert.Equal(t, domain.MsgSessionExpired, n.Message)
	assert.Equal(t, domain.SeverityError, n.Severity)
}

func TestView(t *testing.T) {
	var nilView *View
	assert.False(t, nilView.Closed())

	v := NewView("x")
	assert.Equal(t, "x", v.Name())
	assert.False(t, v.Closed())
	v.Close()
	assert.True(t, v.Closed())
}
