package engine

import "errors"

// Operation outcomes callers branch on with errors.Is. InsufficientAllocation
// and NotActive are expected, recoverable outcomes; the rest indicate a
// request that must be corrected, not retried.
var (
	ErrInvalidParameters      = errors.New("invalid pool parameters")
	ErrAlreadyExists          = errors.New("pool already exists for asset")
	ErrUnauthorized           = errors.New("caller is not the pool authority")
	ErrNotActive              = errors.New("pool is not active")
	ErrInvalidAmount          = errors.New("amount outside allocation bounds")
	ErrInsufficientAllocation = errors.New("amount exceeds remaining allocation")
	ErrAlreadyFinalized       = errors.New("pool is finalized")
	ErrNotFound               = errors.New("pool not found")
)
