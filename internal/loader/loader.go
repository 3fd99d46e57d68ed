// Package loader handles program file loading operations.
package loader

import (
	"bytes"
	"fmt"
	"os"

	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/quinevm/internal/wire"
)

// Loader handles loading program files from disk.
type Loader struct{}

// New creates a new program loader.
func New() *Loader {
	return &Loader{}
}

// Load loads and parses a program file based on the input format.
// Text files contain register and program lines, image files contain a
// CBOR encoded program image.
func (l *Loader) Load(opts options.Program, format string) (program.Image, error) {
	data, err := os.ReadFile(opts.Input)
	if err != nil {
		return program.Image{}, fmt.Errorf("opening file %s: %w", opts.Input, err)
	}
	return l.LoadFromBytes(data, format)
}

// LoadFromBytes parses a program from in memory data based on the input format.
func (l *Loader) LoadFromBytes(data []byte, format string) (program.Image, error) {
	var (
		img program.Image
		err error
	)

	switch format {
	case options.FormatImage:
		img, err = wire.Unmarshal(data)
	case options.FormatText:
		img, err = ParseText(bytes.NewReader(data))
	default:
		return program.Image{}, fmt.Errorf("unsupported input format '%s'", format)
	}
	if err != nil {
		return program.Image{}, fmt.Errorf("parsing %s input: %w", format, err)
	}
	return img, nil
}
