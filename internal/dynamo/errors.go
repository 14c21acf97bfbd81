package dynamo

import "errors"

// Domain errors for simulation operations.
var (
	// ErrUnknownHandle indicates a collision handle the world never issued or already removed.
	ErrUnknownHandle = errors.New("rebound: unknown collision handle")

	// ErrInvalidConfig indicates tuning or session parameters outside their valid range.
	ErrInvalidConfig = errors.New("rebound: invalid configuration")

	// ErrUnknownPreset indicates a level preset name with no definition.
	ErrUnknownPreset = errors.New("rebound: unknown preset")

	// ErrNoPlayer indicates an operation that needs a live controlled entity.
	ErrNoPlayer = errors.New("rebound: no live player entity")

	// ErrNoData indicates an empty trace or run.
	ErrNoData = errors.New("rebound: no data")
)
