package fluxkit

import "errors"

var (
	ErrEmptyActionType = errors.New("fluxkit: action type cannot be empty")
	ErrNilReducer      = errors.New("fluxkit: reducer cannot be nil")
	ErrStoreClosed     = errors.New("fluxkit: store is closed")
)
