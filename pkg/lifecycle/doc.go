// Package lifecycle provides the middleware that drives async request
// bookkeeping for a fluxkit store.
//
// The middleware intercepts actions tagged with the asyncact reserved
// namespace and orchestrates the request lifecycle: it evaluates the
// descriptor's ShouldRequest predicate against current store state (a false
// result suppresses the request entirely, including the start action),
// assigns a unique request identifier and start timestamp, dispatches the
// derived start action, invokes the request function in its own goroutine,
// and on settlement dispatches the success action (payload = response) or the
// fail action (payload = error) with the request identifier and duration
// attached as metadata.
//
// Dispatching a tagged action returns a *Result, a future resolved with the
// final lifecycle action:
//
//	store := fluxkit.New(rootReducer, nil, lifecycle.New())
//
//	res := store.Dispatch(fetchUser.New("42")).(*lifecycle.Result)
//	final, err := res.Await()
//
// Concurrent dispatches whose descriptors carry the same DedupKey share one
// underlying request call; each dispatch still emits its own start and
// settlement actions, so reducers observe every logical request.
//
// Asynchronous request failures are never thrown: they are captured —
// recovered panics included — and re-dispatched as fail actions carrying the
// error as payload. No distinction is made between a transport error and an
// application-level error response.
//
// Observability is opt-in: WithLogger attaches a *slog.Logger, WithMetrics a
// Prometheus collector. NewFromEnv builds the middleware from environment
// variables for the common wiring.
package lifecycle
