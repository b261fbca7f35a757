// Package recovery implements the single-slot soft-delete buffer behind the
// "Component deleted, Undo" notice. Only the most recent deletion can be
// recovered, and only until its grace period elapses. The buffer is separate
// from the undo history.
package recovery

import (
	"sync"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
)

// DefaultGracePeriod is how long a deletion stays recoverable.
const DefaultGracePeriod = 10 * time.Second

// Timer is a scheduled task that can be cancelled.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d. The default implementation wraps
// time.AfterFunc; tests substitute a manual clock.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

// SystemScheduler schedules on the runtime timer heap.
type SystemScheduler struct{}

// AfterFunc implements Scheduler.
func (SystemScheduler) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Deleted is the recoverable record of the last removal.
type Deleted struct {
	Component model.Component
	Index     int
	DeletedAt time.Time
}

// Option configures a Buffer.
type Option func(*Buffer)

// WithGracePeriod overrides DefaultGracePeriod. Non-positive values are
// ignored.
func WithGracePeriod(d time.Duration) Option {
	return func(b *Buffer) {
		if d > 0 {
			b.grace = d
		}
	}
}

// WithScheduler injects the scheduler used for expiry.
func WithScheduler(s Scheduler) Option {
	return func(b *Buffer) {
		if s != nil {
			b.scheduler = s
		}
	}
}

// WithClock overrides the clock used to stamp deletions.
func WithClock(now func() time.Time) Option {
	return func(b *Buffer) {
		if now != nil {
			b.now = now
		}
	}
}

// WithExpiryHook registers fn to run after a deletion expires unrecovered.
// It runs on the scheduler's goroutine without the buffer lock held.
func WithExpiryHook(fn func(Deleted)) Option {
	return func(b *Buffer) {
		b.onExpire = fn
	}
}

// Buffer holds at most one pending deletion. It is safe for concurrent use
// since expiry fires from the scheduler.
type Buffer struct {
	mu         sync.Mutex
	grace      time.Duration
	scheduler  Scheduler
	now        func() time.Time
	onExpire   func(Deleted)
	pending    *Deleted
	timer      Timer
	generation uint64
}

// New constructs an empty buffer.
func New(options ...Option) *Buffer {
	b := &Buffer{
		grace:     DefaultGracePeriod,
		scheduler: SystemScheduler{},
		now:       time.Now,
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(b)
	}
	return b
}

// GracePeriod returns the configured recovery window.
func (b *Buffer) GracePeriod() time.Duration {
	return b.grace
}

// Record stores an owned copy of c removed from index, superseding any older
// pending deletion, and schedules its expiry.
func (b *Buffer) Record(c model.Component, index int) Deleted {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.stopLocked()
	b.generation++
	entry := Deleted{
		Component: model.CloneComponent(c),
		Index:     index,
		DeletedAt: b.now(),
	}
	b.pending = &entry

	gen := b.generation
	b.timer = b.scheduler.AfterFunc(b.grace, func() { b.expire(gen) })
	return entry
}

// Take returns the pending deletion and clears the slot.
func (b *Buffer) Take() (Deleted, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return Deleted{}, false
	}
	entry := *b.pending
	b.clearLocked()
	return entry, true
}

// Pending reports the current deletion without clearing it.
func (b *Buffer) Pending() (Deleted, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.pending == nil {
		return Deleted{}, false
	}
	entry := *b.pending
	entry.Component = model.CloneComponent(entry.Component)
	return entry, true
}

// Clear drops the pending deletion, if any, and cancels its timer.
func (b *Buffer) Clear() {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.clearLocked()
}

func (b *Buffer) clearLocked() {
	b.stopLocked()
	if b.pending != nil {
		b.generation++
	}
	b.pending = nil
}

func (b *Buffer) stopLocked() {
	if b.timer != nil {
		b.timer.Stop()
		b.timer = nil
	}
}

func (b *Buffer) expire(gen uint64) {
	b.mu.Lock()
	if b.pending == nil || gen != b.generation {
		b.mu.Unlock()
		return
	}
	entry := *b.pending
	b.pending = nil
	b.timer = nil
	hook := b.onExpire
	b.mu.Unlock()

	if hook != nil {
		hook(entry)
	}
}
