package fluxkit

import (
	"context"
	"sync"
)

// Store holds the application state and drives the dispatch cycle: each
// dispatched action passes through the middleware chain, is folded into state
// by the root reducer, and is then published to subscribers together with the
// resulting state. All methods are safe for concurrent use.
type Store struct {
	mu       sync.RWMutex
	state    any
	root     Reducer
	dispatch Dispatcher
	changes  *changeFanout
	closed   bool
}

// Change pairs a dispatched action with the state produced by it.
type Change struct {
	Action Action
	State  any
}

// Option configures store creation.
type Option func(*storeConfig)

type storeConfig struct {
	subscriberBuffer int
}

// WithSubscriberBuffer sets the per-subscriber channel buffer for Subscribe.
// Values below 1 are ignored.
func WithSubscriberBuffer(n int) Option {
	return func(c *storeConfig) {
		if n > 0 {
			c.subscriberBuffer = n
		}
	}
}

// New creates a store with the given root reducer, initial state, and
// middleware chain. The first middleware is the outermost wrapper around the
// base dispatcher. Panics with ErrNilReducer on a nil root reducer.
func New(root Reducer, initial any, mws ...Middleware) *Store {
	return NewWithOptions(root, initial, mws, nil)
}

// NewWithOptions is New with store tuning options.
func NewWithOptions(root Reducer, initial any, mws []Middleware, opts []Option) *Store {
	if root == nil {
		panic(ErrNilReducer)
	}

	cfg := storeConfig{subscriberBuffer: defaultSubscriberBuffer}
	for _, opt := range opts {
		if opt != nil {
			opt(&cfg)
		}
	}

	s := &Store{
		state:   initial,
		root:    root,
		changes: newChangeFanout(cfg.subscriberBuffer),
	}
	s.dispatch = chain(s, s.apply, mws)
	return s
}

// State returns the current state. The returned value is shared with the
// reducers; treat it as read-only.
func (s *Store) State() any {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.state
}

// Dispatch sends an action through the middleware chain and into the root
// reducer. The return value is whatever the outermost middleware returns; the
// base dispatcher returns the action itself.
//
// Panics with ErrEmptyActionType when the action carries no type: an untyped
// action is a programming error, not a runtime condition.
func (s *Store) Dispatch(a Action) any {
	if a.Type == "" {
		panic(ErrEmptyActionType)
	}
	return s.dispatch(a)
}

// apply is the base dispatcher: fold the action into state under the write
// lock, then publish the change. Reducers run inside the lock, so they must
// not dispatch; middleware dispatching new actions (the lifecycle middleware
// does, from its own goroutine) goes through Dispatch and is serialized here.
func (s *Store) apply(a Action) any {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return a
	}
	s.state = s.root(s.state, a)
	state := s.state
	s.mu.Unlock()

	s.changes.publish(Change{Action: a, State: state})
	return a
}

// Subscribe returns a channel receiving every state change from this point
// on. The subscription lives until ctx is cancelled or the store is closed,
// after which the channel is closed. Slow subscribers drop changes rather
// than blocking dispatch.
func (s *Store) Subscribe(ctx context.Context) <-chan Change {
	return s.changes.subscribe(ctx)
}

// Close shuts the store down: subscriptions are closed and further dispatches
// leave state untouched. Close is idempotent.
func (s *Store) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()

	s.changes.close()
}
