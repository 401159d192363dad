package asyncact

import (
	"github.com/fluxkit/fluxkit"
)

// Stages maps each lifecycle stage to its state handler. Nil handlers pass
// state through unchanged, so a reducer interested only in success can leave
// the other stages unset.
type Stages struct {
	Start   fluxkit.Reducer
	Success fluxkit.Reducer
	Fail    fluxkit.Reducer
}

// StageReducer builds a reducer that switches on the derived action types of
// one async operation, so application code never re-derives the triple by
// hand. Actions outside the triple return state unchanged.
func StageReducer(types *TypeSet, stages Stages) fluxkit.Reducer {
	if types == nil {
		panic(ErrEmptyType)
	}
	return func(state any, a fluxkit.Action) any {
		switch a.Type {
		case types.Start:
			if stages.Start != nil {
				return stages.Start(state, a)
			}
		case types.Success:
			if stages.Success != nil {
				return stages.Success(state, a)
			}
		case types.Fail:
			if stages.Fail != nil {
				return stages.Fail(state, a)
			}
		}
		return state
	}
}

// Merge folds the same state slice through several stage reducers in order,
// letting one state slice track multiple async operations.
func Merge(reducers ...fluxkit.Reducer) fluxkit.Reducer {
	return fluxkit.ChainReducers(reducers...)
}
