package asyncact

import (
	"github.com/fluxkit/fluxkit"
)

// Descriptor is what the user's descriptor function returns: the request
// function plus optional bookkeeping. Request is mandatory; everything else
// defaults to the zero value.
type Descriptor struct {
	Request       RequestFunc
	ShouldRequest Predicate
	Payload       any
	Meta          map[string]any
	DedupKey      string
}

// Creator builds tagged async actions for one base type. The type parameter
// is the argument the descriptor function takes, so call sites stay typed.
type Creator[T any] struct {
	types *TypeSet
	fn    func(T) Descriptor
}

// NewCreator derives the type triple for base and wraps fn into a typed
// creator. Panics with ErrEmptyType on a blank base and ErrNilDescriptor on a
// nil fn; both are initialization-time programming errors.
func NewCreator[T any](base string, fn func(T) Descriptor) *Creator[T] {
	if fn == nil {
		panic(ErrNilDescriptor)
	}
	return &Creator[T]{types: Types(base), fn: fn}
}

// Types returns the derived start/success/fail triple, for wiring reducers.
func (c *Creator[T]) Types() *TypeSet {
	return c.types
}

// New invokes the descriptor function and packages the result into an action
// tagged with the reserved namespace. The action's own type is the base type;
// the lifecycle middleware consumes it and dispatches the derived triple.
//
// Panics with ErrMissingRequest when the descriptor carries no request
// function.
func (c *Creator[T]) New(arg T) fluxkit.Action {
	desc := c.fn(arg)
	if desc.Request == nil {
		panic(ErrMissingRequest)
	}
	env := &Envelope{
		Types:         c.types,
		Request:       desc.Request,
		ShouldRequest: desc.ShouldRequest,
		Payload:       desc.Payload,
		Meta:          desc.Meta,
		DedupKey:      desc.DedupKey,
	}
	return fluxkit.Action{
		Type:    c.types.Name,
		Payload: desc.Payload,
		Meta:    map[string]any{MetaKey: env},
	}
}
