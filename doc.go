// Package fluxkit provides a minimal, type-safe unidirectional state store for Go.
//
// FluxKit is built around three plain pieces: actions (data describing a
// state-change intent), reducers (pure functions folding actions into state),
// and middleware (functions interposed in the dispatch pipeline that may
// inspect, transform, or multiply actions before they reach the reducers).
//
// Key Features:
//
//   - Plain action objects with attached metadata
//   - Composable reducers via CombineReducers
//   - Middleware chain with full store access (state reads and re-dispatch)
//   - Context-bound state-change subscriptions
//   - Async request bookkeeping via the pkg/asyncact and pkg/lifecycle helpers
//
// Basic Usage:
//
//	counter := func(state any, a fluxkit.Action) any {
//		n, _ := state.(int)
//		switch a.Type {
//		case "INCREMENT":
//			return n + 1
//		case "DECREMENT":
//			return n - 1
//		}
//		return n
//	}
//
//	store := fluxkit.New(counter, 0)
//	defer store.Close()
//
//	increment := fluxkit.NewActionCreator("INCREMENT")
//	store.Dispatch(increment(nil))
//	store.State() // 1
//
// Middleware receives the store and the next dispatcher in the chain, and may
// return a value to the original Dispatch caller. The lifecycle middleware in
// pkg/lifecycle uses this to hand back a future for the in-flight request:
//
//	store := fluxkit.New(rootReducer, nil, lifecycle.New())
//
// Subscriptions deliver every dispatched action together with the state that
// resulted from it. Slow subscribers drop changes rather than blocking the
// dispatch path:
//
//	ch := store.Subscribe(ctx)
//	for change := range ch {
//		log.Printf("%s -> %+v", change.Action.Type, change.State)
//	}
package fluxkit
