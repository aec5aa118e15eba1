package service

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

type memStore struct {
	mu      sync.Mutex
	token   string
	user    []byte
	saveErr error
	saves   int
	clears  int
}

func (s *memStore) Load(ctx context.Context) (string, []byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token, s.user, nil
}

func (s *memStore) Save(ctx context.Context, token string, user []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.saves++
	if s.saveErr != nil {
		// Simulate a store that wrote the first entry before failing.
		s.token = token
		return s.saveErr
	}
	s.token, s.user = token, user
	return nil
}

func (s *memStore) Clear(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clears++
	s.token, s.user = "", nil
	return nil
}

func (s *memStore) empty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.token == "" && len(s.user) == 0
}

type stubAuth struct {
	session domain.Session
	err     error
	calls   int
}

func (a *stubAuth) Authenticate(ctx context.Context, creds domain.Credentials) (domain.Session, error) {
	a.calls++
	if a.err != nil {
		return domain.Session{}, a.err
	}
	return a.session, nil
}

var (
	userA   = domain.User{Name: "A", Email: "a@b.com"}
	credsA  = domain.Credentials{Email: "a@b.com", Password: "secret"}
	errDown = errors.New("backend down")
)

func okAuth() *stubAuth {
	return &stubAuth{session: domain.Session{Token: "abc", User: userA}}
}

// fakeClock collects scheduled callbacks so tests decide when they fire.
type fakeClock struct {
	mu     sync.Mutex
	timers []*fakeTimer
}

type fakeTimer struct {
	d       time.Duration
	f       func()
	stopped bool
}

func (c *fakeClock) AfterFunc(d time.Duration, f func()) func() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := &fakeTimer{d: d, f: f}
	c.timers = append(c.timers, t)
	return func() bool {
		c.mu.Lock()
		defer c.mu.Unlock()
		was := !t.stopped
		t.stopped = true
		return was
	}
}

// fire runs timer i regardless of whether it was stopped, the way a
// time.AfterFunc callback can already be running when Stop is called.
func (c *fakeClock) fire(i int) {
	c.mu.Lock()
	t := c.timers[i]
	c.mu.Unlock()
	t.f()
}

func (c *fakeClock) count() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.timers)
}

type countingRecorder struct {
	mu     sync.Mutex
	events []string
}

func (r *countingRecorder) RecordTransition(to, reason string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, to+"/"+reason)
}

func (r *countingRecorder) RecordNotification(severity string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "notify/"+severity)
}
