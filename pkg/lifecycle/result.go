package lifecycle

import (
	"time"

	"github.com/fluxkit/fluxkit"
	"github.com/fluxkit/fluxkit/pkg/asyncact"
)

// Result represents the eventual settlement of one dispatched async request.
// It is resolved with the final lifecycle action: the success action on a
// fulfilled request, the fail action on a rejected one. A request suppressed
// by its predicate yields an already-resolved Result with ErrSkipped.
type Result struct {
	types     *asyncact.TypeSet
	requestID string
	action    fluxkit.Action
	err       error
	done      chan struct{}
}

func newResult(types *asyncact.TypeSet, requestID string) *Result {
	return &Result{types: types, requestID: requestID, done: make(chan struct{})}
}

func skippedResult(types *asyncact.TypeSet) *Result {
	r := &Result{types: types, err: ErrSkipped, done: make(chan struct{})}
	close(r.done)
	return r
}

// complete resolves the result. Must be called exactly once.
func (r *Result) complete(final fluxkit.Action, err error) {
	r.action = final
	r.err = err
	close(r.done)
}

// Await blocks until the request settles and returns the final lifecycle
// action. The error is the request's rejection value (also carried as the
// fail action's payload), or ErrSkipped when no request was made.
func (r *Result) Await() (fluxkit.Action, error) {
	<-r.done
	return r.action, r.err
}

// AwaitWithTimeout is Await with an upper bound on the wait. On timeout it
// returns ErrAwaitTimeout; the request itself is not cancelled.
func (r *Result) AwaitWithTimeout(timeout time.Duration) (fluxkit.Action, error) {
	select {
	case <-r.done:
		return r.action, r.err
	case <-time.After(timeout):
		return fluxkit.Action{}, ErrAwaitTimeout
	}
}

// IsComplete reports whether the request has settled, without blocking.
func (r *Result) IsComplete() bool {
	select {
	case <-r.done:
		return true
	default:
		return false
	}
}

// Skipped reports whether the request was suppressed by its predicate.
func (r *Result) Skipped() bool {
	return r.err == ErrSkipped && r.IsComplete()
}

// RequestID returns the unique identifier assigned to this request. Empty for
// skipped requests, which never received one.
func (r *Result) RequestID() string {
	return r.requestID
}

// Types returns the action type triple this request settles with.
func (r *Result) Types() *asyncact.TypeSet {
	return r.types
}
