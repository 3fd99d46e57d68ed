package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/quinevm/internal/quine"
	"github.com/retroenv/retrogolib/assert"
)

func TestLoad(t *testing.T) {
	t.Run("empty path returns defaults", func(t *testing.T) {
		settings, err := Load("")
		assert.NoError(t, err)
		assert.Equal(t, Default(), settings)
	})

	t.Run("partial file keeps defaults", func(t *testing.T) {
		path := writeSettings(t, `
[engine]
max_steps = 5000

[search]
chunk_bits = 4
`)
		settings, err := Load(path)
		assert.NoError(t, err)
		assert.Equal(t, uint64(5000), settings.Engine.MaxSteps)
		assert.Equal(t, uint(4), settings.Search.ChunkBits)
		assert.Equal(t, Default().Search.Workers, settings.Search.Workers)
		assert.Equal(t, Default().Search.MaxFrontier, settings.Search.MaxFrontier)
	})

	t.Run("unknown key", func(t *testing.T) {
		path := writeSettings(t, "[search]\nthreads = 4\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "unknown settings")
		assert.ErrorContains(t, err, "search.threads")
	})

	t.Run("invalid toml", func(t *testing.T) {
		path := writeSettings(t, "[engine\nmax_steps = 1\n")
		_, err := Load(path)
		assert.ErrorContains(t, err, "parsing settings file")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
		assert.ErrorContains(t, err, "reading settings file")
	})
}

func TestResolvePrecedence(t *testing.T) {
	path := writeSettings(t, `
[engine]
max_steps = 100

[search]
workers = 2
max_frontier = 64
chunk_bits = 3
`)
	t.Setenv(EnvWorkers, "6")
	t.Setenv(EnvMaxFrontier, "128")
	t.Setenv(EnvChunkBits, "not a number")

	settings, err := Resolve(options.Program{
		Config:   path,
		MaxSteps: 42,
	})
	assert.NoError(t, err)

	assert.Equal(t, uint64(42), settings.Engine.MaxSteps) // flag beats file
	assert.Equal(t, 6, settings.Search.Workers)           // env beats file
	assert.Equal(t, 128, settings.Search.MaxFrontier)     // env beats file
	assert.Equal(t, uint(3), settings.Search.ChunkBits)   // invalid env keeps file

	settings.ApplyOptions(options.Program{Workers: 1})
	assert.Equal(t, 1, settings.Search.Workers)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv(EnvMaxSteps, "2500")
	t.Setenv(EnvChunkBits, "4")

	settings := Default()
	settings.ApplyEnv()
	assert.Equal(t, uint64(2500), settings.Engine.MaxSteps)
	assert.Equal(t, uint(4), settings.Search.ChunkBits)
	assert.Equal(t, Default().Search.Workers, settings.Search.Workers)
}

func TestSolverOptions(t *testing.T) {
	settings := Settings{
		Engine: Engine{MaxSteps: 99},
		Search: Search{Workers: 3, ChunkBits: 5, MaxFrontier: 7},
	}

	assert.Equal(t, quine.Options{
		ChunkBits:   5,
		Workers:     3,
		MaxFrontier: 7,
		MaxSteps:    99,
	}, settings.SolverOptions())
}

func writeSettings(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "quinevm.toml")
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("Failed to write settings file: %v", err)
	}
	return path
}
