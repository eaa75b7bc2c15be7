package physics

import "errors"

var (
	ErrSealed          = errors.New("physics: system is sealed, constraints can only be added during setup")
	ErrNotSealed       = errors.New("physics: setup not finished, seal before stepping")
	ErrNonFinite       = errors.New("physics: non-finite position")
	ErrInvalidMass     = errors.New("physics: mass must be positive")
	ErrPointOwned      = errors.New("physics: point already belongs to a system")
	ErrUnknownList     = errors.New("physics: unknown constraint list")
	ErrSamePoint       = errors.New("physics: constraint endpoints must differ")
	ErrInvalidBody     = errors.New("physics: invalid body spec")
	ErrBodyNotFound    = errors.New("physics: body not found")
	ErrInvalidTimestep = errors.New("physics: timestep must be positive")
	ErrDetachedPoint   = errors.New("physics: point does not belong to a system")
)
