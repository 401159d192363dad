package asyncact

import (
	"context"
	"strings"
	"sync"

	"github.com/fluxkit/fluxkit"
)

// MetaKey is the reserved metadata namespace the lifecycle middleware
// intercepts. Actions carrying an *Envelope under this key never reach the
// reducers directly; the middleware consumes them and dispatches the derived
// start/success/fail actions instead.
const MetaKey = "@@fluxkit/request"

// TypeSet is the triple of action types derived from one base type, plus the
// display name. Immutable once created; obtain instances through Types.
type TypeSet struct {
	Start   string
	Success string
	Fail    string
	Name    string
}

// typeSets memoizes TypeSet instances by base type so repeated calls return
// referentially stable results.
var typeSets sync.Map // string -> *TypeSet

// Types derives the start/success/fail action types for a base type.
// Calling Types twice with the same base returns the identical pointer.
// Panics with ErrEmptyType on an empty or blank base.
func Types(base string) *TypeSet {
	if strings.TrimSpace(base) == "" {
		panic(ErrEmptyType)
	}
	if ts, ok := typeSets.Load(base); ok {
		return ts.(*TypeSet)
	}
	ts, _ := typeSets.LoadOrStore(base, &TypeSet{
		Start:   base + "_START",
		Success: base + "_SUCCESS",
		Fail:    base + "_FAIL",
		Name:    base,
	})
	return ts.(*TypeSet)
}

// RequestFunc performs the async operation. The context carries the
// middleware's request timeout when one is configured. The returned value
// becomes the success action's payload; the returned error becomes the fail
// action's payload.
type RequestFunc func(ctx context.Context) (any, error)

// Predicate inspects current store state and reports whether the request
// should be made. Returning false suppresses the whole lifecycle: no start
// action is dispatched.
type Predicate func(state any) bool

// Envelope is the request descriptor attached under MetaKey. It packages the
// derived type triple with everything the lifecycle middleware needs to drive
// one request.
type Envelope struct {
	Types         *TypeSet
	Request       RequestFunc
	ShouldRequest Predicate
	Payload       any
	Meta          map[string]any

	// DedupKey, when non-empty, coalesces concurrent dispatches with the same
	// key onto one underlying request call.
	DedupKey string
}

// EnvelopeFrom extracts the request envelope from an action, reporting
// whether the action is tagged with the reserved namespace.
func EnvelopeFrom(a fluxkit.Action) (*Envelope, bool) {
	env, ok := a.MetaValue(MetaKey).(*Envelope)
	return env, ok && env != nil
}
