package builder

import (
	"log/slog"
	"time"

	"github.com/goliatone/go-formbuilder/pkg/model"
	"github.com/goliatone/go-formbuilder/pkg/recovery"
)

// Option customises a Builder.
type Option func(*Builder)

// WithHistoryLimit caps the undo history. Zero keeps the default.
func WithHistoryLimit(limit int) Option {
	return func(b *Builder) {
		b.historyLimit = limit
	}
}

// WithGracePeriod sets how long a removed component stays recoverable.
func WithGracePeriod(d time.Duration) Option {
	return func(b *Builder) {
		b.grace = d
	}
}

// WithScheduler injects the scheduler driving soft-delete expiry.
func WithScheduler(s recovery.Scheduler) Option {
	return func(b *Builder) {
		b.scheduler = s
	}
}

// WithClock overrides the clock used for ids, deletion stamps and export
// timestamps.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) {
		if now != nil {
			b.now = now
		}
	}
}

// WithIDGenerator replaces the component id suffix generator used by AddNew.
func WithIDGenerator(gen func() string) Option {
	return func(b *Builder) {
		if gen != nil {
			b.newID = gen
		}
	}
}

// WithLogger attaches a structured logger. The default discards output.
func WithLogger(logger *slog.Logger) Option {
	return func(b *Builder) {
		if logger != nil {
			b.logger = logger
		}
	}
}

// WithInitialSettings sets the form settings used for new and reset forms.
func WithInitialSettings(settings model.FormSettings) Option {
	return func(b *Builder) {
		b.initialSettings = settings
	}
}

// WithExpiryHook registers fn to run when a removed component can no longer be
// recovered. fn runs on the scheduler's goroutine and must not block on the
// builder.
func WithExpiryHook(fn func(recovery.Deleted)) Option {
	return func(b *Builder) {
		b.onExpire = fn
	}
}
