package lifecycle_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fluxkit/fluxkit"
	"github.com/fluxkit/fluxkit/pkg/asyncact"
	"github.com/fluxkit/fluxkit/pkg/lifecycle"
)

// recorder keeps every action the reducer saw, in dispatch order.
type recorder struct {
	mu      sync.Mutex
	actions []fluxkit.Action
}

func (r *recorder) reducer(state any, a fluxkit.Action) any {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.actions = append(r.actions, a)
	return state
}

func (r *recorder) types() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]string, len(r.actions))
	for i, a := range r.actions {
		out[i] = a.Type
	}
	return out
}

func (r *recorder) byType(actionType string) (fluxkit.Action, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, a := range r.actions {
		if a.Type == actionType {
			return a, true
		}
	}
	return fluxkit.Action{}, false
}

func newTestStore(opts ...lifecycle.Option) (*fluxkit.Store, *recorder) {
	rec := &recorder{}
	store := fluxkit.New(rec.reducer, nil, lifecycle.New(opts...))
	return store, rec
}

func dispatchAsync(t *testing.T, store *fluxkit.Store, a fluxkit.Action) *lifecycle.Result {
	t.Helper()
	res, ok := store.Dispatch(a).(*lifecycle.Result)
	require.True(t, ok, "lifecycle dispatch must return a *Result")
	return res
}

func TestMiddlewareSuccess(t *testing.T) {
	t.Parallel()

	store, rec := newTestStore()
	defer store.Close()

	fetch := asyncact.NewCreator("FETCH_GREETING", func(name string) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) {
				return "hello " + name, nil
			},
			Payload: name,
		}
	})
	types := fetch.Types()

	res := dispatchAsync(t, store, fetch.New("world"))
	final, err := res.Await()
	require.NoError(t, err)

	assert.Equal(t, []string{types.Start, types.Success}, rec.types())
	assert.Equal(t, types.Success, final.Type)
	assert.Equal(t, "hello world", final.Payload)
	assert.False(t, final.Err)

	start, ok := rec.byType(types.Start)
	require.True(t, ok)
	assert.Equal(t, "world", start.Payload)

	// Start and settlement share the request identity.
	assert.NotEmpty(t, res.RequestID())
	assert.Equal(t, res.RequestID(), start.MetaValue(lifecycle.MetaRequestID))
	assert.Equal(t, res.RequestID(), final.MetaValue(lifecycle.MetaRequestID))
	assert.IsType(t, time.Time{}, start.MetaValue(lifecycle.MetaStartedAt))
	assert.IsType(t, time.Duration(0), final.MetaValue(lifecycle.MetaDuration))
	assert.Nil(t, start.MetaValue(lifecycle.MetaDuration))
}

func TestMiddlewareFailure(t *testing.T) {
	t.Parallel()

	store, rec := newTestStore()
	defer store.Close()

	boom := errors.New("upstream unavailable")
	fetch := asyncact.NewCreator("FETCH_FLAKY", func(struct{}) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) {
				return nil, boom
			},
		}
	})
	types := fetch.Types()

	res := dispatchAsync(t, store, fetch.New(struct{}{}))
	final, err := res.Await()
	require.ErrorIs(t, err, boom)

	assert.Equal(t, []string{types.Start, types.Fail}, rec.types())
	assert.Equal(t, types.Fail, final.Type)
	assert.True(t, final.Err)
	assert.Equal(t, boom, final.Payload)
}

func TestMiddlewarePredicate(t *testing.T) {
	t.Parallel()

	t.Run("false predicate suppresses the whole lifecycle", func(t *testing.T) {
		t.Parallel()
		store, rec := newTestStore()
		defer store.Close()

		fetch := asyncact.NewCreator("FETCH_CACHED", func(struct{}) asyncact.Descriptor {
			return asyncact.Descriptor{
				Request: func(ctx context.Context) (any, error) {
					t.Error("request function must not run when predicate is false")
					return nil, nil
				},
				ShouldRequest: func(state any) bool { return false },
			}
		})

		res := dispatchAsync(t, store, fetch.New(struct{}{}))
		_, err := res.Await()
		assert.ErrorIs(t, err, lifecycle.ErrSkipped)
		assert.True(t, res.Skipped())
		assert.Empty(t, res.RequestID())
		assert.Empty(t, rec.types())
	})

	t.Run("predicate sees current store state", func(t *testing.T) {
		t.Parallel()
		reducer := func(state any, a fluxkit.Action) any {
			if a.Type == "PRIME" {
				return "primed"
			}
			return state
		}
		store := fluxkit.New(reducer, nil, lifecycle.New())
		defer store.Close()

		fetch := asyncact.NewCreator("FETCH_ONCE", func(struct{}) asyncact.Descriptor {
			return asyncact.Descriptor{
				Request:       func(ctx context.Context) (any, error) { return "value", nil },
				ShouldRequest: func(state any) bool { return state != "primed" },
			}
		})

		first := dispatchAsync(t, store, fetch.New(struct{}{}))
		_, err := first.Await()
		require.NoError(t, err)

		store.Dispatch(fluxkit.Action{Type: "PRIME"})

		second := dispatchAsync(t, store, fetch.New(struct{}{}))
		assert.True(t, second.Skipped())
	})
}

func TestMiddlewarePassthrough(t *testing.T) {
	t.Parallel()

	store, rec := newTestStore()
	defer store.Close()

	got := store.Dispatch(fluxkit.Action{Type: "PLAIN", Payload: 1})
	a, ok := got.(fluxkit.Action)
	require.True(t, ok)
	assert.Equal(t, "PLAIN", a.Type)
	assert.Equal(t, []string{"PLAIN"}, rec.types())
}

func TestMiddlewarePanicRecovery(t *testing.T) {
	t.Parallel()

	store, rec := newTestStore()
	defer store.Close()

	fetch := asyncact.NewCreator("FETCH_PANICKY", func(struct{}) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) {
				panic("kaboom")
			},
		}
	})
	types := fetch.Types()

	res := dispatchAsync(t, store, fetch.New(struct{}{}))
	final, err := res.Await()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "kaboom")
	assert.Equal(t, []string{types.Start, types.Fail}, rec.types())
	assert.True(t, final.Err)
}

func TestMiddlewareDeduplication(t *testing.T) {
	t.Parallel()

	store, rec := newTestStore()
	defer store.Close()

	var calls atomic.Int64
	release := make(chan struct{})
	fetch := asyncact.NewCreator("FETCH_SHARED", func(struct{}) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) {
				calls.Add(1)
				<-release
				return "shared value", nil
			},
			DedupKey: "shared",
		}
	})
	types := fetch.Types()

	first := dispatchAsync(t, store, fetch.New(struct{}{}))
	second := dispatchAsync(t, store, fetch.New(struct{}{}))

	// Both starts are dispatched before the shared call settles.
	require.Eventually(t, func() bool {
		count := 0
		for _, typ := range rec.types() {
			if typ == types.Start {
				count++
			}
		}
		return count == 2
	}, time.Second, 5*time.Millisecond)

	// Let the owning call through once both waiters are queued on the key.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(50 * time.Millisecond)
	close(release)

	a1, err := first.Await()
	require.NoError(t, err)
	a2, err := second.Await()
	require.NoError(t, err)

	assert.Equal(t, int64(1), calls.Load())
	assert.Equal(t, "shared value", a1.Payload)
	assert.Equal(t, "shared value", a2.Payload)
	assert.NotEqual(t, first.RequestID(), second.RequestID())
}

func TestMiddlewareRequestTimeout(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore(lifecycle.WithRequestTimeout(20 * time.Millisecond))
	defer store.Close()

	fetch := asyncact.NewCreator("FETCH_SLOW", func(struct{}) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) {
				<-ctx.Done()
				return nil, ctx.Err()
			},
		}
	})

	res := dispatchAsync(t, store, fetch.New(struct{}{}))
	_, err := res.Await()
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestMiddlewareDeterministicIdentity(t *testing.T) {
	t.Parallel()

	now := time.Date(2025, 3, 14, 9, 26, 53, 0, time.UTC)
	store, rec := newTestStore(
		lifecycle.WithIDGenerator(func() string { return "req-fixed" }),
		lifecycle.WithClock(func() time.Time { return now }),
	)
	defer store.Close()

	fetch := asyncact.NewCreator("FETCH_FIXED", func(struct{}) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) { return "ok", nil },
			Meta:    map[string]any{"origin": "unit"},
		}
	})
	types := fetch.Types()

	res := dispatchAsync(t, store, fetch.New(struct{}{}))
	final, err := res.Await()
	require.NoError(t, err)

	assert.Equal(t, "req-fixed", res.RequestID())
	assert.Equal(t, time.Duration(0), final.MetaValue(lifecycle.MetaDuration))
	assert.Equal(t, now, final.MetaValue(lifecycle.MetaStartedAt))
	assert.Equal(t, "unit", final.MetaValue("origin"))

	start, ok := rec.byType(types.Start)
	require.True(t, ok)
	assert.Equal(t, "unit", start.MetaValue("origin"))
}

func TestResultAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	store, _ := newTestStore()
	defer store.Close()

	release := make(chan struct{})
	fetch := asyncact.NewCreator("FETCH_BLOCKED", func(struct{}) asyncact.Descriptor {
		return asyncact.Descriptor{
			Request: func(ctx context.Context) (any, error) {
				<-release
				return "done", nil
			},
		}
	})

	res := dispatchAsync(t, store, fetch.New(struct{}{}))
	assert.False(t, res.IsComplete())

	_, err := res.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, lifecycle.ErrAwaitTimeout)

	close(release)
	final, err := res.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.Equal(t, "done", final.Payload)
	assert.True(t, res.IsComplete())
}
