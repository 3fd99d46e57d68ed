// Package quine reconstructs initial values of register A from a required
// output trace by using the machine as an oracle.
package quine

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/quinevm/internal/vm"
	"github.com/retroenv/retrogolib/log"
	"github.com/retroenv/retrogolib/set"
	"golang.org/x/sync/errgroup"
)

// Solver searches for initial register values chunk by chunk.
type Solver struct {
	logger  *log.Logger
	options Options

	oracleRuns atomic.Uint64
}

// New returns a new solver.
func New(logger *log.Logger, options Options) (*Solver, error) {
	if err := options.validate(); err != nil {
		return nil, err
	}
	return &Solver{
		logger:  logger,
		options: options,
	}, nil
}

// FindMinimalQuine returns the minimal value of register A that makes the
// program output itself, using the default options.
func FindMinimalQuine(ctx context.Context, prog []byte) (uint64, error) {
	cfg := log.DefaultConfig()
	cfg.Level = log.ErrorLevel

	solver, err := New(log.NewWithConfig(cfg), DefaultOptions())
	if err != nil {
		return 0, err
	}
	return solver.FindMinimal(ctx, prog)
}

// FindMinimal returns the minimal value of register A that makes the program
// output its own bytes when started with B and C cleared.
func (s *Solver) FindMinimal(ctx context.Context, prog []byte) (uint64, error) {
	return s.Search(ctx, prog, prog)
}

// Search returns the minimal value of register A that makes the program
// output exactly the target values.
func (s *Solver) Search(ctx context.Context, prog, target []byte) (uint64, error) {
	solutions, err := s.SearchAll(ctx, prog, target)
	if err != nil {
		return 0, err
	}
	return solutions[0], nil
}

// SearchAll returns all values of register A in the final frontier, sorted
// ascending. Every returned value was confirmed by a full run of the program.
func (s *Solver) SearchAll(ctx context.Context, prog, target []byte) ([]uint64, error) {
	s.oracleRuns.Store(0)

	if len(target) == 0 {
		if !s.matches(prog, 0, target) {
			return nil, &NoQuineError{}
		}
		return []uint64{0}, nil
	}

	frontier := set.New[uint64]()
	frontier[0] = struct{}{}

	// extend from the most significant chunk, which produces the last output value
	for index := len(target) - 1; index >= 0; index-- {
		next, err := s.extend(ctx, prog, frontier, target[index:])
		if err != nil {
			return nil, err
		}

		s.logger.Debug("Processed chunk",
			log.Int("index", index),
			log.Uint8("target", target[index]),
			log.Int("candidates", len(frontier)),
			log.Int("survivors", len(next)))

		if len(next) == 0 {
			return nil, &NoQuineError{
				Index:     index,
				Value:     target[index],
				Processed: len(target) - 1 - index,
			}
		}
		if s.options.MaxFrontier > 0 && len(next) > s.options.MaxFrontier {
			return nil, fmt.Errorf("%w: %d candidates at index %d, limit %d",
				ErrFrontierLimit, len(next), index, s.options.MaxFrontier)
		}
		frontier = next
	}

	solutions := slices.Sorted(maps.Keys(frontier))
	s.logger.Debug("Search finished",
		log.String("minimum", strconv.FormatUint(solutions[0], 10)),
		log.Int("solutions", len(solutions)),
		log.String("oracle_runs", strconv.FormatUint(s.oracleRuns.Load(), 10)))
	return solutions, nil
}

// OracleRuns returns the number of program runs of the last search.
func (s *Solver) OracleRuns() uint64 {
	return s.oracleRuns.Load()
}

// extend evaluates all chunk extensions of the frontier candidates and returns
// the candidates whose full run outputs exactly the expected suffix.
func (s *Solver) extend(ctx context.Context, prog []byte, frontier set.Set[uint64],
	suffix []byte) (set.Set[uint64], error) {

	next := set.New[uint64]()
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.options.Workers)

	for candidate := range frontier {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}

			survivors := s.survivors(prog, candidate, suffix)
			if len(survivors) == 0 {
				return nil
			}

			mu.Lock()
			for _, value := range survivors {
				next[value] = struct{}{}
			}
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("extending frontier: %w", err)
	}
	return next, nil
}

// survivors returns the extensions of a single candidate that pass the oracle.
func (s *Solver) survivors(prog []byte, candidate uint64, suffix []byte) []uint64 {
	bits := s.options.ChunkBits
	if candidate > ^uint64(0)>>bits {
		// shifting would drop the most significant bits
		return nil
	}

	var survivors []uint64
	extensions := uint64(1) << bits
	for ext := range extensions {
		value := candidate<<bits | ext
		if s.matches(prog, value, suffix) {
			survivors = append(survivors, value)
		}
	}
	return survivors
}

// matches runs the program with register A set to a and compares the output
// with the expected values. A run that aborts with an execution error does
// not match.
func (s *Solver) matches(prog []byte, a uint64, expected []byte) bool {
	s.oracleRuns.Add(1)

	result, err := vm.Run(program.New(a, prog), vm.WithMaxSteps(s.options.MaxSteps))
	if err != nil {
		return false
	}
	return bytes.Equal(result.Output, expected)
}
