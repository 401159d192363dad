package lifecycle

import "errors"

var (
	// ErrSkipped resolves results whose request was suppressed by the
	// descriptor's ShouldRequest predicate.
	ErrSkipped = errors.New("lifecycle: request suppressed by predicate")

	// ErrAwaitTimeout is returned by Result.AwaitWithTimeout when the request
	// does not settle in time. The request itself keeps running.
	ErrAwaitTimeout = errors.New("lifecycle: timed out waiting for request settlement")

	// ErrParsingConfig wraps env parsing failures in LoadConfig.
	ErrParsingConfig = errors.New("lifecycle: failed to parse environment variables into config")
)
