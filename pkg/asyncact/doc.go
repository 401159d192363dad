// Package asyncact generates paired start/success/fail action identifiers for
// a single logical async operation, builds action creators that attach the
// request descriptor as reserved metadata, and provides reducer helpers for
// responding to each lifecycle stage.
//
// The package is centred around TypeSet, the triple of action types derived
// from one base type. Types memoizes per base string, so every caller asking
// for the same base receives the identical *TypeSet and reducers, creators and
// middleware can compare types without re-deriving them.
//
// # Usage
//
//	fetchUser := asyncact.NewCreator("FETCH_USER", func(id string) asyncact.Descriptor {
//		return asyncact.Descriptor{
//			Request: func(ctx context.Context) (any, error) {
//				return api.User(ctx, id)
//			},
//			ShouldRequest: func(state any) bool {
//				return !state.(AppState).Users.Has(id)
//			},
//			DedupKey: "user:" + id,
//		}
//	})
//
//	userReducer := asyncact.StageReducer(fetchUser.Types(), asyncact.Stages{
//		Start:   markLoading,
//		Success: storeUser,
//		Fail:    storeError,
//	})
//
//	store.Dispatch(fetchUser.New("42"))
//
// Dispatching the created action does nothing by itself; the lifecycle
// middleware (pkg/lifecycle) intercepts the reserved metadata and drives the
// request, dispatching the start/success/fail actions this package's reducers
// respond to.
//
// # Error Handling
//
// Malformed configuration is a programming error and fails fast: Types panics
// with ErrEmptyType on a blank base, NewCreator panics with ErrNilDescriptor
// on a nil descriptor function, and a creator panics with ErrMissingRequest
// when the descriptor it produced carries no request function.
package asyncact
