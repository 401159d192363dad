package lifecycle

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"github.com/fluxkit/fluxkit"
	"github.com/fluxkit/fluxkit/pkg/asyncact"
)

// Metadata keys attached to the dispatched lifecycle actions.
const (
	// MetaRequestID holds the unique identifier assigned to the request,
	// shared by its start and settlement actions.
	MetaRequestID = "request_id"

	// MetaStartedAt holds the time.Time the request was started.
	MetaStartedAt = "started_at"

	// MetaDuration holds the time.Duration from start to settlement. Present
	// only on success and fail actions.
	MetaDuration = "duration"
)

type middleware struct {
	log     *slog.Logger
	metrics *Metrics
	newID   func() string
	now     func() time.Time
	baseCtx context.Context
	timeout time.Duration
	group   singleflight.Group
}

// New builds the lifecycle middleware. Actions without the asyncact reserved
// namespace pass through untouched; tagged actions are consumed and replaced
// by the derived start/success/fail actions, with the dispatch call returning
// a *Result future for the settlement.
func New(opts ...Option) fluxkit.Middleware {
	m := &middleware{
		log:     slog.Default(),
		newID:   uuid.NewString,
		now:     time.Now,
		baseCtx: context.Background(),
	}
	for _, opt := range opts {
		if opt != nil {
			opt(m)
		}
	}

	return func(s *fluxkit.Store) func(next fluxkit.Dispatcher) fluxkit.Dispatcher {
		return func(next fluxkit.Dispatcher) fluxkit.Dispatcher {
			return func(a fluxkit.Action) any {
				env, ok := asyncact.EnvelopeFrom(a)
				if !ok {
					return next(a)
				}
				return m.handle(s, env)
			}
		}
	}
}

// handle drives one request: predicate check, start dispatch, async
// settlement. The start action is dispatched synchronously, so it is always
// reduced before the success or fail action.
func (m *middleware) handle(s *fluxkit.Store, env *asyncact.Envelope) *Result {
	name := env.Types.Name

	if env.ShouldRequest != nil && !env.ShouldRequest(s.State()) {
		m.metrics.observeSkipped(name)
		m.log.Debug("async request suppressed by predicate", slog.String("type", name))
		return skippedResult(env.Types)
	}

	requestID := m.newID()
	startedAt := m.now()

	meta := requestMeta(env, requestID, startedAt)
	s.Dispatch(fluxkit.Action{Type: env.Types.Start, Payload: env.Payload, Meta: meta})

	m.metrics.observeStart(name)
	m.log.Debug("async request started",
		slog.String("type", name),
		slog.String("request_id", requestID),
	)

	res := newResult(env.Types, requestID)
	go m.settle(s, env, res, requestID, startedAt)
	return res
}

// settle awaits the request function and dispatches the settlement action.
func (m *middleware) settle(s *fluxkit.Store, env *asyncact.Envelope, res *Result, requestID string, startedAt time.Time) {
	value, shared, err := m.call(env)
	duration := m.now().Sub(startedAt)
	name := env.Types.Name

	if shared {
		m.metrics.observeDeduplicated(name)
	}

	meta := requestMeta(env, requestID, startedAt)
	meta[MetaDuration] = duration

	var final fluxkit.Action
	if err != nil {
		final = fluxkit.Action{Type: env.Types.Fail, Payload: err, Err: true, Meta: meta}
		m.metrics.observeSettled(name, outcomeFail, duration)
		m.log.Error("async request failed",
			slog.String("type", name),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
			slog.Any("error", err),
		)
	} else {
		final = fluxkit.Action{Type: env.Types.Success, Payload: value, Meta: meta}
		m.metrics.observeSettled(name, outcomeSuccess, duration)
		m.log.Debug("async request succeeded",
			slog.String("type", name),
			slog.String("request_id", requestID),
			slog.Duration("duration", duration),
		)
	}

	s.Dispatch(final)
	res.complete(final, err)
}

// call invokes the request function under the configured timeout, coalescing
// concurrent calls that share a DedupKey onto one invocation.
func (m *middleware) call(env *asyncact.Envelope) (any, bool, error) {
	ctx := m.baseCtx
	if m.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, m.timeout)
		defer cancel()
	}

	if env.DedupKey == "" {
		value, err := invoke(ctx, env.Request)
		return value, false, err
	}

	value, err, shared := m.group.Do(env.DedupKey, func() (any, error) {
		return invoke(ctx, env.Request)
	})
	return value, shared, err
}

// invoke runs the request function with panic recovery: a panicking request
// settles as a failure instead of crashing the goroutine.
func invoke(ctx context.Context, fn asyncact.RequestFunc) (value any, err error) {
	defer func() {
		if r := recover(); r != nil {
			value = nil
			err = fmt.Errorf("request panic: %v", r)
		}
	}()
	return fn(ctx)
}

// requestMeta merges the descriptor's user meta with request identity fields.
func requestMeta(env *asyncact.Envelope, requestID string, startedAt time.Time) map[string]any {
	meta := make(map[string]any, len(env.Meta)+3)
	maps.Copy(meta, env.Meta)
	meta[MetaRequestID] = requestID
	meta[MetaStartedAt] = startedAt
	return meta
}
