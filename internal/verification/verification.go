// Package verification verifies that a register value found by the search
// recreates the expected output when the program is run.
package verification

import (
	"errors"
	"fmt"

	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/quinevm/internal/vm"
	"github.com/retroenv/retrogolib/log"
)

// maxLoggedMismatches limits the number of logged value mismatches.
const maxLoggedMismatches = 10

// ErrMismatch is returned when a run does not recreate the expected output.
var ErrMismatch = errors.New("output mismatch")

// MismatchError describes how the output of a run differs from the expected output.
type MismatchError struct {
	Expected   []byte
	Got        []byte
	Mismatches int // number of differing values in the common prefix
}

func (e *MismatchError) Error() string {
	if len(e.Expected) != len(e.Got) {
		return fmt.Sprintf("%s: mismatched lengths, %d != %d", ErrMismatch, len(e.Expected), len(e.Got))
	}
	return fmt.Sprintf("%s: %d value mismatches", ErrMismatch, e.Mismatches)
}

// Is makes errors.Is match ErrMismatch.
func (e *MismatchError) Is(target error) bool {
	return target == ErrMismatch
}

// Quine verifies that running the program with register A set to a and B and
// C cleared outputs the program itself.
func Quine(logger *log.Logger, prog []byte, a uint64, maxSteps uint64) error {
	return Output(logger, program.New(a, prog), prog, maxSteps)
}

// Output verifies that running the image outputs exactly the expected values.
func Output(logger *log.Logger, img program.Image, expected []byte, maxSteps uint64) error {
	result, err := vm.Run(img, vm.WithMaxSteps(maxSteps))
	if err != nil {
		return fmt.Errorf("running program: %w", err)
	}
	return checkBufferEqual(logger, expected, result.Output)
}

func checkBufferEqual(logger *log.Logger, expected, got []byte) error {
	mismatches := 0
	for i := range min(len(expected), len(got)) {
		if expected[i] == got[i] {
			continue
		}

		mismatches++
		if mismatches <= maxLoggedMismatches {
			logger.Error("Output mismatch",
				log.Int("index", i),
				log.Uint8("expected", expected[i]),
				log.Uint8("got", got[i]))
		}
	}

	if mismatches == 0 && len(expected) == len(got) {
		return nil
	}
	return &MismatchError{
		Expected:   expected,
		Got:        got,
		Mismatches: mismatches,
	}
}
