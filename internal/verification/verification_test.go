package verification

import (
	"errors"
	"io"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/quinevm/internal/vm"
	"github.com/retroenv/retrogolib/assert"
	"github.com/retroenv/retrogolib/log"
)

func TestQuine(t *testing.T) {
	prog := []byte{0, 3, 5, 4, 3, 0}

	assert.NoError(t, Quine(log.NewTestLogger(t), prog, 117440, 10000))

	// mismatches are logged at error level, which fails a test logger
	err := Quine(discardLogger(), prog, 117448, 10000)
	assert.True(t, errors.Is(err, ErrMismatch))

	var mismatch *MismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 1, mismatch.Mismatches)
	if diff := cmp.Diff([]byte{1, 3, 5, 4, 3, 0}, mismatch.Got); diff != "" {
		t.Errorf("output mismatch (-want +got):\n%s", diff)
	}
}

func TestCheckBufferEqualCountsMismatches(t *testing.T) {
	err := checkBufferEqual(discardLogger(), []byte{0, 1, 2, 3}, []byte{7, 1, 7, 3})

	var mismatch *MismatchError
	assert.True(t, errors.As(err, &mismatch))
	assert.Equal(t, 2, mismatch.Mismatches)
	assert.ErrorContains(t, err, "2 value mismatches")
}

func discardLogger() *log.Logger {
	cfg := log.DefaultConfig()
	cfg.Output = io.Discard
	return log.NewWithConfig(cfg)
}

func TestOutputLengthMismatch(t *testing.T) {
	logger := log.NewTestLogger(t)
	img := program.New(729, []byte{0, 1, 5, 4, 3, 0})

	err := Output(logger, img, []byte{4, 6, 3}, 10000)
	assert.True(t, errors.Is(err, ErrMismatch))
	assert.ErrorContains(t, err, "mismatched lengths, 3 != 10")
}

func TestOutputRunError(t *testing.T) {
	logger := log.NewTestLogger(t)
	img := program.New(1, []byte{5, 7})

	err := Output(logger, img, nil, 10000)
	assert.True(t, errors.Is(err, vm.ErrInvalidOperand))
	assert.False(t, errors.Is(err, ErrMismatch))
}
