package cli

import (
	"errors"
	"os"
	"testing"

	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/retrogolib/assert"
)

//nolint:funlen
func TestParseFlags(t *testing.T) {
	tests := []struct {
		name    string
		args    []string
		want    options.Program
		wantErr string
	}{
		{
			name: "default flags",
			args: []string{"prog", "input.txt"},
			want: options.Program{Input: "input.txt", Mode: options.ModeAll, HexComments: true, OffsetComments: true},
		},
		{
			name: "listing flags",
			args: []string{"prog", "-listing", "-nohexcomments", "input.txt"},
			want: options.Program{Input: "input.txt", Mode: options.ModeAll, Listing: true, OffsetComments: true},
		},
		{
			name: "all flags",
			args: []string{"prog", "-o", "report.out", "-c", "quinevm.toml", "-f", "IMAGE", "-m", "Quine",
				"-emit", "prog.cbor", "-steps", "1000", "-workers", "4", "-verify", "-debug", "input.qvm"},
			want: options.Program{
				Input:    "input.qvm",
				Output:   "report.out",
				Config:   "quinevm.toml",
				Format:   options.FormatImage,
				Mode:     options.ModeQuine,
				Emit:     "prog.cbor",
				MaxSteps: 1000,
				Workers:  4,
				Verify:   true,
				Debug:    true,

				HexComments:    true,
				OffsetComments: true,
			},
		},
		{
			name: "batch without input",
			args: []string{"prog", "-batch", "*.txt", "-q"},
			want: options.Program{Batch: "*.txt", Mode: options.ModeAll, Quiet: true, HexComments: true, OffsetComments: true},
		},
		{
			name:    "unsupported mode",
			args:    []string{"prog", "-m", "trace", "input.txt"},
			wantErr: "unsupported mode: trace",
		},
		{
			name:    "unsupported format",
			args:    []string{"prog", "-f", "elf", "input.txt"},
			wantErr: "unsupported input format: elf",
		},
		{
			name:    "negative workers",
			args:    []string{"prog", "-workers", "-2", "input.txt"},
			wantErr: "invalid worker count -2",
		},
		{
			name:    "verify without quine search",
			args:    []string{"prog", "-m", "run", "-verify", "input.txt"},
			wantErr: "verify option requires the quine search",
		},
		{
			name:    "emit with batch",
			args:    []string{"prog", "-batch", "*.txt", "-emit", "out.cbor"},
			wantErr: "emit option can not be combined with batch processing",
		},
		{
			name:    "flag after input file",
			args:    []string{"prog", "input.txt", "-debug"},
			wantErr: "Potential argument -debug found after program file",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			oldArgs := os.Args
			t.Cleanup(func() { os.Args = oldArgs })

			os.Args = tt.args

			got, err := ParseFlags()
			if tt.wantErr != "" {
				assert.ErrorContains(t, err, tt.wantErr)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseFlagsMissingInput(t *testing.T) {
	oldArgs := os.Args
	t.Cleanup(func() { os.Args = oldArgs })
	os.Args = []string{"prog", "-debug"}

	_, err := ParseFlags()
	var usageErr *UsageError
	assert.True(t, errors.As(err, &usageErr))
}

func TestValidateOptionCombinations(t *testing.T) {
	tests := []struct {
		name        string
		opts        options.Program
		expectError bool
	}{
		{
			name: "no conflict",
			opts: options.Program{},
		},
		{
			name: "verify with all mode",
			opts: options.Program{Verify: true, Mode: options.ModeAll},
		},
		{
			name:        "verify with run mode",
			opts:        options.Program{Verify: true, Mode: options.ModeRun},
			expectError: true,
		},
		{
			name: "emit single file",
			opts: options.Program{Emit: "out.cbor"},
		},
		{
			name:        "emit batch",
			opts:        options.Program{Emit: "out.cbor", Batch: "*.txt"},
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateOptionCombinations(tt.opts)
			if tt.expectError {
				assert.True(t, err != nil)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
