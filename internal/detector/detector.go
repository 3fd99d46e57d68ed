// Package detector handles input format detection.
package detector

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/retrogolib/log"
)

// Detector handles input format detection from file extensions and options.
type Detector struct {
	logger *log.Logger
}

// New creates a new format detector.
func New(logger *log.Logger) *Detector {
	return &Detector{
		logger: logger,
	}
}

// Detect determines the input format from options or file auto-detection.
// It first checks if a format is explicitly specified in options, otherwise
// attempts to detect the format from the input filename extension.
func (d *Detector) Detect(opts options.Program) (string, error) {
	if opts.Format != "" {
		format := strings.ToLower(opts.Format)
		switch format {
		case options.FormatText, options.FormatImage:
			return format, nil
		default:
			return "", fmt.Errorf("unsupported input format: %s. Valid options: %s, %s",
				opts.Format, options.FormatText, options.FormatImage)
		}
	}

	format := d.detectFromFile(opts.Input)
	d.logger.Debug("Auto-detected input format",
		log.String("format", format),
		log.String("file", opts.Input))
	return format, nil
}

// detectFromFile determines the input format based on file extension.
func (d *Detector) detectFromFile(filename string) string {
	ext := strings.ToLower(filepath.Ext(filename))
	switch ext {
	case ".cbor", ".qvm":
		return options.FormatImage
	default:
		// puzzle inputs are plain text files with arbitrary extensions
		return options.FormatText
	}
}
