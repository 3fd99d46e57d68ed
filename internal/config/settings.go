package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/quinevm/internal/quine"
	"gitlab.com/efronlicht/enve"
)

// Environment variables that override settings file values.
const (
	EnvMaxSteps    = "QUINEVM_MAX_STEPS"
	EnvWorkers     = "QUINEVM_WORKERS"
	EnvChunkBits   = "QUINEVM_CHUNK_BITS"
	EnvMaxFrontier = "QUINEVM_MAX_FRONTIER"
)

// Settings contains the tunables of the engine and the quine search.
type Settings struct {
	Engine Engine `toml:"engine"`
	Search Search `toml:"search"`
}

// Engine configures direct program runs.
type Engine struct {
	MaxSteps uint64 `toml:"max_steps"`
}

// Search configures the quine search.
type Search struct {
	Workers     int  `toml:"workers"`
	ChunkBits   uint `toml:"chunk_bits"`
	MaxFrontier int  `toml:"max_frontier"`
}

// Default returns the default settings.
func Default() Settings {
	opts := quine.DefaultOptions()
	return Settings{
		Engine: Engine{
			MaxSteps: opts.MaxSteps,
		},
		Search: Search{
			Workers:     opts.Workers,
			ChunkBits:   opts.ChunkBits,
			MaxFrontier: opts.MaxFrontier,
		},
	}
}

// Resolve builds the effective settings for the given program options.
// Values are applied in the order defaults, settings file, environment
// and command line flags, later sources overriding earlier ones.
func Resolve(opts options.Program) (Settings, error) {
	settings, err := Load(opts.Config)
	if err != nil {
		return Settings{}, err
	}
	settings.ApplyEnv()
	settings.ApplyOptions(opts)
	return settings, nil
}

// Load reads a TOML settings file on top of the default settings.
// An empty path returns the defaults.
func Load(path string) (Settings, error) {
	settings := Default()
	if path == "" {
		return settings, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Settings{}, fmt.Errorf("reading settings file: %w", err)
	}

	md, err := toml.Decode(string(data), &settings)
	if err != nil {
		return Settings{}, fmt.Errorf("parsing settings file %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, 0, len(undecoded))
		for _, key := range undecoded {
			keys = append(keys, key.String())
		}
		return Settings{}, fmt.Errorf("unknown settings in %s: %s", path, strings.Join(keys, ", "))
	}
	return settings, nil
}

// ApplyEnv overrides settings with values of the environment variables that are set.
// Unparsable values keep the current setting.
func (s *Settings) ApplyEnv() {
	s.Engine.MaxSteps = enve.Uint64Or(EnvMaxSteps, s.Engine.MaxSteps)
	s.Search.Workers = enve.IntOr(EnvWorkers, s.Search.Workers)
	s.Search.ChunkBits = uint(enve.Uint64Or(EnvChunkBits, uint64(s.Search.ChunkBits)))
	s.Search.MaxFrontier = enve.IntOr(EnvMaxFrontier, s.Search.MaxFrontier)
}

// ApplyOptions overrides settings with explicitly passed command line flags.
func (s *Settings) ApplyOptions(opts options.Program) {
	if opts.MaxSteps != 0 {
		s.Engine.MaxSteps = opts.MaxSteps
	}
	if opts.Workers != 0 {
		s.Search.Workers = opts.Workers
	}
}

// SolverOptions returns the quine search options for the settings.
// Oracle runs share the step limit of direct runs.
func (s Settings) SolverOptions() quine.Options {
	return quine.Options{
		ChunkBits:   s.Search.ChunkBits,
		Workers:     s.Search.Workers,
		MaxFrontier: s.Search.MaxFrontier,
		MaxSteps:    s.Engine.MaxSteps,
	}
}
