package board

import "errors"

// Configuration errors returned by Validate.
var (
	// ErrInvalidWidth indicates a non-positive board width.
	ErrInvalidWidth = errors.New("board: width must be positive")

	// ErrInvalidHeight indicates a non-positive board height.
	ErrInvalidHeight = errors.New("board: height must be positive")

	// ErrInvalidBalls indicates a negative ball count.
	ErrInvalidBalls = errors.New("board: ball count must not be negative")

	// ErrInvalidRows indicates a non-positive row count.
	ErrInvalidRows = errors.New("board: rows must be positive")

	// ErrUnknownWalk indicates an unrecognised walk mode.
	ErrUnknownWalk = errors.New("board: unknown walk mode")
)
