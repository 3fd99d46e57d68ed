package quine

import (
	"errors"
	"fmt"
)

var (
	// ErrNoQuineFound is returned when no value of register A reproduces the target output.
	ErrNoQuineFound = errors.New("no quine found")
	// ErrFrontierLimit is returned when more candidates survive a chunk than allowed.
	ErrFrontierLimit = errors.New("frontier limit exceeded")
)

// NoQuineError describes at which target value the search ran out of candidates.
type NoQuineError struct {
	Index     int  // index of the target value that no candidate could produce
	Value     byte // the target value at Index
	Processed int  // number of target values matched before the search failed
}

func (e *NoQuineError) Error() string {
	return fmt.Sprintf("%s: no candidate outputs value %d at index %d after matching %d values",
		ErrNoQuineFound, e.Value, e.Index, e.Processed)
}

// Is makes errors.Is match ErrNoQuineFound.
func (e *NoQuineError) Is(target error) bool {
	return target == ErrNoQuineFound
}
