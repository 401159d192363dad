package fluxkit

import "maps"

// Action is a plain data object describing a state-change intent. Actions are
// transient: created per dispatch and consumed synchronously by the middleware
// chain and reducers.
//
// Err marks failure actions; by convention their Payload carries the error
// value. Meta holds attached metadata keyed by string and is never inspected
// by the store itself.
type Action struct {
	Type    string
	Payload any
	Err     bool
	Meta    map[string]any
}

// MetaValue returns the metadata value stored under key, or nil.
func (a Action) MetaValue(key string) any {
	if a.Meta == nil {
		return nil
	}
	return a.Meta[key]
}

// WithMeta returns a copy of the action with the given key set in its
// metadata. The original action is not modified.
func (a Action) WithMeta(key string, value any) Action {
	meta := make(map[string]any, len(a.Meta)+1)
	maps.Copy(meta, a.Meta)
	meta[key] = value
	a.Meta = meta
	return a
}

// ActionCreator builds actions of a fixed type. The optional meta maps are
// merged left to right into the action's metadata.
type ActionCreator func(payload any, meta ...map[string]any) Action

// NewActionCreator wraps an action type string into a creator function.
// Panics with ErrEmptyActionType when actionType is empty; creators are
// constructed at initialization time and misconfiguration should fail fast.
func NewActionCreator(actionType string) ActionCreator {
	if actionType == "" {
		panic(ErrEmptyActionType)
	}
	return func(payload any, meta ...map[string]any) Action {
		a := Action{Type: actionType, Payload: payload}
		if len(meta) > 0 {
			a.Meta = make(map[string]any)
			for _, m := range meta {
				maps.Copy(a.Meta, m)
			}
		}
		return a
	}
}
