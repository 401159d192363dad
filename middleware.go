package fluxkit

// Dispatcher sends an action through the remainder of the dispatch pipeline.
// The return value is handed back to the original Dispatch caller, which lets
// middleware return handles for work they started (the lifecycle middleware
// returns a future for the in-flight request). The base dispatcher returns
// the action itself.
type Dispatcher func(a Action) any

// Middleware wraps the dispatch pipeline to add cross-cutting functionality.
// A middleware receives the store (for state reads and re-dispatching through
// the full chain) and the next dispatcher, and returns its replacement
// dispatcher. Middleware are applied in order, with the first middleware
// passed to New being the outermost wrapper.
//
// Example logging middleware:
//
//	func Logger(log *slog.Logger) fluxkit.Middleware {
//		return func(s *fluxkit.Store) func(next fluxkit.Dispatcher) fluxkit.Dispatcher {
//			return func(next fluxkit.Dispatcher) fluxkit.Dispatcher {
//				return func(a fluxkit.Action) any {
//					log.Debug("dispatch", "type", a.Type)
//					return next(a)
//				}
//			}
//		}
//	}
type Middleware func(s *Store) func(next Dispatcher) Dispatcher

// chain composes middleware around the base dispatcher, last middleware
// innermost.
func chain(s *Store, base Dispatcher, mws []Middleware) Dispatcher {
	d := base
	for i := len(mws) - 1; i >= 0; i-- {
		if mws[i] == nil {
			continue
		}
		d = mws[i](s)(d)
	}
	return d
}
