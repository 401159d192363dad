package fluxkit

// Reducer is a pure function mapping (state, action) to new state. Reducers
// must not mutate the state they receive; they return the previous state
// unchanged for actions they do not handle.
type Reducer func(state any, a Action) any

// CombineReducers builds a root reducer from a map of state key to reducer.
// The combined state is a map[string]any where each reducer owns one key and
// only ever sees its own slice of state. A nil or non-map previous state is
// treated as empty, so the first dispatch initializes every key.
//
// The returned reducer produces a fresh map on every invocation; callers must
// not rely on map identity across dispatches.
func CombineReducers(reducers map[string]Reducer) Reducer {
	if len(reducers) == 0 {
		panic(ErrNilReducer)
	}
	for _, r := range reducers {
		if r == nil {
			panic(ErrNilReducer)
		}
	}
	return func(state any, a Action) any {
		prev, _ := state.(map[string]any)
		next := make(map[string]any, len(reducers))
		for key, r := range reducers {
			var slice any
			if prev != nil {
				slice = prev[key]
			}
			next[key] = r(slice, a)
		}
		return next
	}
}

// ChainReducers folds the same state slice through each reducer in order.
// Useful for splitting handling of one state slice across several focused
// reducers.
func ChainReducers(reducers ...Reducer) Reducer {
	for _, r := range reducers {
		if r == nil {
			panic(ErrNilReducer)
		}
	}
	return func(state any, a Action) any {
		for _, r := range reducers {
			state = r(state, a)
		}
		return state
	}
}
