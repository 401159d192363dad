package asyncact

import "errors"

var (
	ErrEmptyType      = errors.New("asyncact: base action type cannot be empty")
	ErrNilDescriptor  = errors.New("asyncact: descriptor function cannot be nil")
	ErrMissingRequest = errors.New("asyncact: descriptor must carry a request function")
)
