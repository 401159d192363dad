package lifecycle

import (
	"context"
	"log/slog"
	"time"
)

// Option configures the lifecycle middleware.
type Option func(*middleware)

// WithLogger attaches a structured logger. Requests log at debug level on
// start and settlement, error level on failure. Nil loggers are ignored.
func WithLogger(log *slog.Logger) Option {
	return func(m *middleware) {
		if log != nil {
			m.log = log
		}
	}
}

// WithMetrics attaches a Prometheus collector. Nil disables collection (the
// default).
func WithMetrics(metrics *Metrics) Option {
	return func(m *middleware) {
		m.metrics = metrics
	}
}

// WithRequestTimeout bounds every request function's context. Zero (the
// default) means no timeout.
func WithRequestTimeout(timeout time.Duration) Option {
	return func(m *middleware) {
		if timeout > 0 {
			m.timeout = timeout
		}
	}
}

// WithBaseContext sets the parent context request contexts derive from.
// Cancelling it cancels every request started afterwards. Defaults to
// context.Background().
func WithBaseContext(ctx context.Context) Option {
	return func(m *middleware) {
		if ctx != nil {
			m.baseCtx = ctx
		}
	}
}

// WithIDGenerator overrides the request identifier generator. Intended for
// tests that need deterministic identifiers. Defaults to uuid.NewString.
func WithIDGenerator(fn func() string) Option {
	return func(m *middleware) {
		if fn != nil {
			m.newID = fn
		}
	}
}

// WithClock overrides the time source used for start timestamps and duration
// measurement. Intended for tests. Defaults to time.Now.
func WithClock(now func() time.Time) Option {
	return func(m *middleware) {
		if now != nil {
			m.now = now
		}
	}
}
