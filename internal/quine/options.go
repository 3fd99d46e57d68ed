package quine

import (
	"errors"
	"fmt"
	"runtime"
)

// ErrInvalidOptions is returned for search options that can not be used.
var ErrInvalidOptions = errors.New("invalid search options")

// Options defines options to control the search.
type Options struct {
	ChunkBits   uint   // bits of register A reconstructed per output value
	Workers     int    // number of candidates evaluated in parallel
	MaxFrontier int    // maximum number of surviving candidates per chunk, 0 disables the limit
	MaxSteps    uint64 // step limit of a single oracle run, 0 disables the limit
}

// DefaultOptions returns the default search options.
func DefaultOptions() Options {
	return Options{
		ChunkBits:   3,
		Workers:     runtime.NumCPU(),
		MaxFrontier: 1 << 16,
		MaxSteps:    1 << 20,
	}
}

func (o Options) validate() error {
	if o.ChunkBits == 0 || o.ChunkBits > 16 {
		return fmt.Errorf("%w: chunk bits %d not in range 1-16", ErrInvalidOptions, o.ChunkBits)
	}
	if o.Workers < 1 {
		return fmt.Errorf("%w: workers %d", ErrInvalidOptions, o.Workers)
	}
	if o.MaxFrontier < 0 {
		return fmt.Errorf("%w: max frontier %d", ErrInvalidOptions, o.MaxFrontier)
	}
	return nil
}
