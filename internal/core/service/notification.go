package service

import (
	"sync"
	"time"

	"github.com/yndnr/leasedesk-go/internal/core/domain"
)

// DefaultAutoHide is how long a notification stays open on its own.
const DefaultAutoHide = 3500 * time.Millisecond

// AfterFunc schedules f after d and returns a function that cancels it.
type AfterFunc func(d time.Duration, f func()) (stop func() bool)

func realAfterFunc(d time.Duration, f func()) func() bool {
	return time.AfterFunc(d, f).Stop
}

// NotificationRecorder receives shown notifications, typically metrics.
type NotificationRecorder interface {
	RecordNotification(severity string)
}

// NotificationObserver is called whenever the slot changes.
type NotificationObserver func(n domain.Notification)

// NotificationCenter owns the single notification slot. A new Show replaces
// whatever is open; nothing is queued.
type NotificationCenter struct {
	autoHide  time.Duration
	afterFunc AfterFunc
	metrics   NotificationRecorder

	mu        sync.Mutex
	current   domain.Notification
	gen       uint64 // bumped on every Show and close; stale timers compare against it
	stopTimer func() bool
	observers map[uint64]NotificationObserver
	nextID    uint64
}

// NotificationOption configures a NotificationCenter.
type NotificationOption func(*NotificationCenter)

// WithAutoHide overrides the auto-hide delay. Zero or less disables it.
func WithAutoHide(d time.Duration) NotificationOption {
	return func(c *NotificationCenter) { c.autoHide = d }
}

// WithClock replaces time.AfterFunc.
func WithClock(fn AfterFunc) NotificationOption {
	return func(c *NotificationCenter) { c.afterFunc = fn }
}

// WithNotificationRecorder sets the notification recorder.
func WithNotificationRecorder(r NotificationRecorder) NotificationOption {
	return func(c *NotificationCenter) { c.metrics = r }
}

// NewNotificationCenter creates an empty, closed slot.
func NewNotificationCenter(opts ...NotificationOption) *NotificationCenter {
	c := &NotificationCenter{
		autoHide:  DefaultAutoHide,
		afterFunc: realAfterFunc,
		observers: make(map[uint64]NotificationObserver),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Show opens the slot with message and severity and restarts the
// auto-hide timer.
func (c *NotificationCenter) Show(message string, severity domain.Severity) {
	c.mu.Lock()
	c.cancelTimerLocked()
	c.gen++
	c.current = domain.Notification{Message: message, Severity: severity, IsOpen: true}
	if c.autoHide > 0 {
		gen := c.gen
		c.stopTimer = c.afterFunc(c.autoHide, func() { c.expire(gen) })
	}
	n, observers := c.snapshotLocked()
	c.mu.Unlock()

	if c.metrics != nil {
		c.metrics.RecordNotification(string(severity))
	}
	publish(observers, n)
}

// Dismiss closes the slot. A clickaway is ignored and leaves it open.
func (c *NotificationCenter) Dismiss(reason domain.DismissReason) {
	if reason == domain.DismissClickaway {
		return
	}
	c.closeIf(func() bool { return true })
}

// Current returns a copy of the slot.
func (c *NotificationCenter) Current() domain.Notification {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.current
}

// Subscribe registers fn for slot changes and returns a function that
// removes it.
func (c *NotificationCenter) Subscribe(fn NotificationObserver) func() {
	c.mu.Lock()
	id := c.nextID
	c.nextID++
	c.observers[id] = fn
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			delete(c.observers, id)
			c.mu.Unlock()
		})
	}
}

// Close stops the pending auto-hide timer. The slot keeps its content.
func (c *NotificationCenter) Close() error {
	c.mu.Lock()
	c.cancelTimerLocked()
	c.gen++
	c.mu.Unlock()
	return nil
}

func (c *NotificationCenter) expire(gen uint64) {
	c.closeIf(func() bool { return c.gen == gen })
}

// closeIf closes an open slot when cond holds; cond runs under the lock.
func (c *NotificationCenter) closeIf(cond func() bool) {
	c.mu.Lock()
	if !c.current.IsOpen || !cond() {
		c.mu.Unlock()
		return
	}
	c.cancelTimerLocked()
	c.gen++
	c.current.IsOpen = false
	n, observers := c.snapshotLocked()
	c.mu.Unlock()

	publish(observers, n)
}

func (c *NotificationCenter) cancelTimerLocked() {
	if c.stopTimer != nil {
		c.stopTimer()
		c.stopTimer = nil
	}
}

func (c *NotificationCenter) snapshotLocked() (domain.Notification, []NotificationObserver) {
	observers := make([]NotificationObserver, 0, len(c.observers))
	for _, fn := range c.observers {
		observers = append(observers, fn)
	}
	return c.current, observers
}

func publish(observers []NotificationObserver, n domain.Notification) {
	for _, fn := range observers {
		fn(n)
	}
}
