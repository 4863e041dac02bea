package navigation

import "errors"

var (
	// ErrInvalidEndpoint is reported when the start or goal cell is not walkable
	ErrInvalidEndpoint = errors.New("navigation: start or goal cell is not walkable")

	// ErrUnreachable is reported when the open set empties before the goal is reached
	ErrUnreachable = errors.New("navigation: goal is unreachable from start")

	// ErrEmptyGrid is returned when grid dimensions resolve to zero cells on an axis
	ErrEmptyGrid = errors.New("navigation: grid has no cells")

	// ErrConfiguration wraps every rejected construction or configuration parameter
	ErrConfiguration = errors.New("navigation: invalid configuration")

	// ErrHeapUnderflow is the panic value of RemoveBest on an empty heap
	ErrHeapUnderflow = errors.New("navigation: remove from empty heap")
)
