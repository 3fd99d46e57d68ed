// Package main implements the main entry point for a three register machine
// runner and quine solver
package main

import (
	"context"
	"errors"
	"os"

	"github.com/retroenv/quinevm/internal/cli"
	"github.com/retroenv/quinevm/internal/config"
	"github.com/retroenv/quinevm/internal/fileprocessor"
	"github.com/retroenv/quinevm/internal/quine"
	"github.com/retroenv/quinevm/internal/verification"
	"github.com/retroenv/quinevm/internal/vm"
	"github.com/retroenv/retrogolib/app"
	"github.com/retroenv/retrogolib/log"
)

var (
	version = "dev"
	commit  = ""
	date    = ""
)

func main() {
	ctx := app.Context()

	opts, err := cli.ParseFlags()
	if err != nil {
		logger := config.CreateLogger(opts.Debug, opts.Quiet)
		var usageErr *cli.UsageError
		if errors.As(err, &usageErr) {
			fileprocessor.PrintBanner(logger, opts, version, commit, date)
			usageErr.ShowUsage()
		} else {
			logger.Fatal(err.Error())
		}
		os.Exit(1)
	}

	logger := config.CreateLogger(opts.Debug, opts.Quiet)
	fileprocessor.PrintBanner(logger, opts, version, commit, date)

	settings, err := config.Resolve(opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	files, err := fileprocessor.GetFilesToProcess(&opts)
	if err != nil {
		logger.Fatal(err.Error())
	}

	failed := false
	for _, file := range files {
		opts.Input = file
		if opts.Batch != "" {
			opts.Output = fileprocessor.GenerateOutputFilename(file)
		}

		if err := fileprocessor.ProcessFile(ctx, logger, opts, settings); err != nil {
			// Handle context cancellation (Ctrl+C) gracefully
			if errors.Is(err, context.Canceled) {
				logger.Info("Operation cancelled")
				return
			}
			logFailure(logger, file, err)
			failed = true
		}
	}

	if failed {
		os.Exit(1)
	}
}

// logFailure logs a processing error with a message matching its failure class.
func logFailure(logger *log.Logger, file string, err error) {
	var execErr *vm.ExecutionError

	switch {
	case errors.As(err, &execErr):
		logger.Error("Program execution failed",
			log.String("file", file),
			log.Int("ip", execErr.IP),
			log.Err(err))
	case errors.Is(err, quine.ErrFrontierLimit):
		logger.Error("Quine search exceeded the frontier limit", log.String("file", file), log.Err(err))
	case errors.Is(err, verification.ErrMismatch):
		logger.Error("Quine verification failed", log.String("file", file), log.Err(err))
	default:
		logger.Error("Processing failed", log.String("file", file), log.Err(err))
	}
}
