// Package service holds the client-side state holders of leasedesk: the
// session manager, the notification center, the recovery policy applied to
// every backend call, and the route guard.
package service

import (
	"context"
	"errors"
	"sync"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
	"github.com/yndnr/leasedesk-go/internal/telemetry/logger"
)

// TokenStore is the durable mirror of the session. Absent entries load as
// the zero value; err is reserved for storage failures.
type TokenStore interface {
	Load(ctx context.Context) (token string, user []byte, err error)
	Save(ctx context.Context, token string, user []byte) error
	Clear(ctx context.Context) error
}

// Authenticator exchanges credentials for a session with the backend.
type Authenticator interface {
	Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error)
}

// TransitionRecorder receives session state changes, typically metrics.
type TransitionRecorder interface {
	RecordTransition(to, reason string)
}

// Transition reasons.
const (
	ReasonInitialize  = "initialize"
	ReasonSignIn      = "sign_in"
	ReasonSignOut     = "sign_out"
	ReasonAuthExpired = "auth_expired"
	// ReasonStoreFailure drops the session when a sign-in cannot be persisted.
	ReasonStoreFailure = "store_failure"
)

// SessionObserver is called after every session transition.
type SessionObserver func(state domain.State, user domain.User)

// SessionManager is the single source of truth for who is signed in and the
// only writer of the TokenStore.
type SessionManager struct {
	store   TokenStore
	auth    Authenticator
	logger  logger.Logger
	metrics TransitionRecorder

	mu        sync.RWMutex
	session   domain.Session
	observers map[uint64]SessionObserver
	nextID    uint64
}

// SessionOption configures a SessionManager.
type SessionOption func(*SessionManager)

// WithSessionLogger sets the logger.
func WithSessionLogger(l logger.Logger) SessionOption {
	return func(m *SessionManager) { m.logger = l }
}

// WithTransitionRecorder sets the transition recorder.
func WithTransitionRecorder(r TransitionRecorder) SessionOption {
	return func(m *SessionManager) { m.metrics = r }
}

// NewSessionManager creates an Anonymous manager. Call Initialize to
// rehydrate from the store.
func NewSessionManager(store TokenStore, auth Authenticator, opts ...SessionOption) *SessionManager {
	m := &SessionManager{
		store:     store,
		auth:      auth,
		logger:    logger.Nop(),
		observers: make(map[uint64]SessionObserver),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Initialize reads the store once. Both entries present and a decodable
// user make the session live; anything else leaves it Anonymous. The store
// is not modified and no network call is made.
func (m *SessionManager) Initialize(ctx context.Context) error {
	token, userData, err := m.store.Load(ctx)
	if err != nil {
		return domain.ErrStorage.WithDetails("load session").WithCause(err)
	}
	if token == "" || len(userData) == 0 {
		if token != "" || len(userData) != 0 {
			m.logger.Warn("ignoring partial stored session", "has_token", token != "", "has_user", len(userData) != 0)
		}
		return nil
	}
	user, err := domain.DecodeUser(userData)
	if err != nil {
		m.logger.Warn("ignoring undecodable stored user", "error", err)
		return nil
	}

	m.transition(domain.Session{Token: token, User: user}, ReasonInitialize)
	return nil
}

// SignIn validates creds locally, exchanges them with the backend and, only
// on success, persists and publishes the new session. Validation and
// backend errors leave the session unchanged.
func (m *SessionManager) SignIn(ctx context.Context, creds domain.Credentials) error {
	if err := creds.Validate(); err != nil {
		return err
	}

	sess, err := m.auth.Authenticate(ctx, creds)
	if err != nil {
		return err
	}
	if !sess.IsLive() {
		return domain.ErrRejected.WithDetails("sign-in response without token or user")
	}

	userData, err := domain.EncodeUser(sess.User)
	if err != nil {
		return domain.ErrStorage.WithDetails("encode user").WithCause(err)
	}
	if err := m.store.Save(ctx, sess.Token, userData); err != nil {
		// No half-written pair may survive a failed save.
		if clearErr := m.store.Clear(ctx); clearErr != nil {
			m.logger.Error("clear store after failed save", "error", clearErr)
		}
		m.transition(domain.Session{}, ReasonStoreFailure)
		return domain.ErrStorage.WithDetails("save session").WithCause(err)
	}

	m.logger.Debug("signed in", "email", sess.User.Email, "token", logger.MaskToken(sess.Token))
	m.transition(sess, ReasonSignIn)
	return nil
}

// SignOut clears the store and empties the session. It is idempotent.
// The in-memory session is emptied even when the store fails.
func (m *SessionManager) SignOut(ctx context.Context) error {
	return m.signOut(ctx, ReasonSignOut)
}

func (m *SessionManager) signOut(ctx context.Context, reason string) error {
	err := m.store.Clear(ctx)
	m.transition(domain.Session{}, reason)
	if err != nil {
		return domain.ErrStorage.WithDetails("clear session").WithCause(err)
	}
	return nil
}

// CurrentUser returns the live user, or false when Anonymous.
func (m *SessionManager) CurrentUser() (domain.User, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if !m.session.IsLive() {
		return domain.User{}, false
	}
	return m.session.User, true
}

// Token returns the bearer token, empty when Anonymous.
func (m *SessionManager) Token() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.session.Token
}

// State returns the current authentication state.
func (m *SessionManager) State() domain.State {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.session.IsLive() {
		return domain.StateAuthenticated
	}
	return domain.StateAnonymous
}

// Subscribe registers fn for session transitions and returns a function
// that removes it.
func (m *SessionManager) Subscribe(fn SessionObserver) func() {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.observers[id] = fn
	m.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			m.mu.Lock()
			delete(m.observers, id)
			m.mu.Unlock()
		})
	}
}

// transition swaps the session and notifies observers when it changed.
func (m *SessionManager) transition(next domain.Session, reason string) {
	m.mu.Lock()
	prev := m.session
	m.session = next
	changed := prev != next
	var observers []SessionObserver
	if changed {
		observers = make([]SessionObserver, 0, len(m.observers))
		for _, fn := range m.observers {
			observers = append(observers, fn)
		}
	}
	m.mu.Unlock()

	if !changed {
		return
	}

	state := domain.StateAnonymous
	if next.IsLive() {
		state = domain.StateAuthenticated
	}
	m.logger.Debug("session transition", "to", state.String(), "reason", reason)
	if m.metrics != nil {
		m.metrics.RecordTransition(state.String(), reason)
	}
	for _, fn := range observers {
		fn(state, next.User)
	}
}

// IsAuthExpired reports whether err came from a 401 answer.
func IsAuthExpired(err error) bool {
	return errors.Is(err, domain.ErrAuthExpired)
}
