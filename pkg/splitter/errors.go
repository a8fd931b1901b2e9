package splitter

import (
	"errors"
	"fmt"
)

// Sentinel errors for parameter validation. Every error in this
// package is unrecoverable for the current invocation: nothing is
// retried and nothing is downgraded to a partial result.
var (
	// ErrInvalidChunkSize reports a maximum chunk size ≤ 0.
	ErrInvalidChunkSize = errors.New("chunk size must be positive")

	// ErrInvalidSplitCount reports a negative explicit division count.
	ErrInvalidSplitCount = errors.New("split count must not be negative")
)

// IntersectionError reports a failure while intersecting one grid cell
// against the solid. It aborts the whole split; fragments already
// produced are discarded.
type IntersectionError struct {
	Row, Col int // X and Y cell indices, 0-based
	Err      error
}

func (e *IntersectionError) Error() string {
	return fmt.Sprintf("cell (%d,%d): intersection failed: %v", e.Row, e.Col, e.Err)
}

func (e *IntersectionError) Unwrap() error {
	return e.Err
}
