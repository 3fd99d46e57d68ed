// Package fileprocessor handles file loading and processing operations
package fileprocessor

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/retroenv/quinevm/internal/config"
	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/quinevm/internal/pipeline"
	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/quinevm/internal/wire"
	"github.com/retroenv/retrogolib/buildinfo"
	"github.com/retroenv/retrogolib/log"
)

// ErrOutputIsInput is returned when the report would overwrite the input file.
var ErrOutputIsInput = errors.New("output file is the input file")

// ProcessFile handles the complete file processing workflow
func ProcessFile(ctx context.Context, logger *log.Logger, opts options.Program, settings config.Settings) error {
	if opts.Output != "" && filepath.Clean(opts.Output) == filepath.Clean(opts.Input) {
		return fmt.Errorf("%w: %s", ErrOutputIsInput, opts.Input)
	}

	writer, err := createWriter(opts)
	if err != nil {
		return fmt.Errorf("creating writer: %w", err)
	}
	defer func() {
		if closer, ok := writer.(io.Closer); ok && writer != os.Stdout {
			_ = closer.Close()
		}
	}()

	pipe := pipeline.New(logger)
	report, err := pipe.Execute(ctx, opts, settings, writer)
	if err != nil {
		return err
	}

	if opts.Emit != "" {
		if err := EmitImage(report.Image, opts.Emit); err != nil {
			return err
		}
		logger.Info("Program image written", log.String("file", opts.Emit))
	}
	return nil
}

// EmitImage writes the program image in its binary CBOR encoding to a file.
func EmitImage(img program.Image, path string) error {
	data, err := wire.Marshal(img)
	if err != nil {
		return fmt.Errorf("encoding program image: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("writing program image %s: %w", path, err)
	}
	return nil
}

// GetFilesToProcess returns list of files to process based on options.
// Batch matches that are report files of other matches are skipped.
func GetFilesToProcess(opts *options.Program) ([]string, error) {
	if opts.Batch != "" {
		matches, err := filepath.Glob(opts.Batch)
		if err != nil {
			return nil, fmt.Errorf("globbing batch pattern: %w", err)
		}

		files := matches[:0]
		for _, match := range matches {
			if GenerateOutputFilename(match) == match {
				continue
			}
			files = append(files, match)
		}
		return files, nil
	}
	return []string{opts.Input}, nil
}

// GenerateOutputFilename generates output filename for a given input file
func GenerateOutputFilename(inputFile string) string {
	ext := filepath.Ext(inputFile)
	return inputFile[:len(inputFile)-len(ext)] + ".out"
}

func createWriter(opts options.Program) (io.Writer, error) {
	if opts.Output == "" {
		return os.Stdout, nil
	}

	file, err := os.Create(opts.Output)
	if err != nil {
		return nil, fmt.Errorf("creating output file %s: %w", opts.Output, err)
	}
	return file, nil
}

// PrintBanner prints application version information
func PrintBanner(logger *log.Logger, opts options.Program, version, commit, date string) {
	if opts.Quiet {
		return
	}

	logger.Info("quinevm", log.String("version", buildinfo.Version(version, commit, date)))
}
