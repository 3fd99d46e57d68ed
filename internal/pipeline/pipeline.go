// Package pipeline orchestrates the processing stages of a single program.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/google/uuid"
	"github.com/retroenv/quinevm/internal/config"
	"github.com/retroenv/quinevm/internal/detector"
	"github.com/retroenv/quinevm/internal/disasm"
	"github.com/retroenv/quinevm/internal/loader"
	"github.com/retroenv/quinevm/internal/options"
	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/quinevm/internal/quine"
	"github.com/retroenv/quinevm/internal/verification"
	"github.com/retroenv/quinevm/internal/vm"
	"github.com/retroenv/quinevm/internal/writer"
	"github.com/retroenv/retrogolib/log"
)

// Pipeline orchestrates the complete workflow of loading, running and
// searching the quine value of a program.
type Pipeline struct {
	logger   *log.Logger
	detector *detector.Detector
	loader   *loader.Loader
}

// New creates a new pipeline.
func New(logger *log.Logger) *Pipeline {
	return &Pipeline{
		logger:   logger,
		detector: detector.New(logger),
		loader:   loader.New(),
	}
}

// Execute runs the complete pipeline for the input file of the options and
// writes the report to the writer.
func (p *Pipeline) Execute(ctx context.Context, opts options.Program, settings config.Settings,
	out io.Writer) (*writer.Report, error) {

	format, err := p.detector.Detect(opts)
	if err != nil {
		return nil, fmt.Errorf("detecting input format: %w", err)
	}

	img, err := p.loader.Load(opts, format)
	if err != nil {
		return nil, fmt.Errorf("loading program: %w", err)
	}

	return p.ExecuteWithImage(ctx, img, opts, settings, out)
}

// ExecuteWithImage runs the pipeline with a pre-loaded program image.
// This is useful for testing and programmatic usage where the image is already in memory.
func (p *Pipeline) ExecuteWithImage(ctx context.Context, img program.Image, opts options.Program,
	settings config.Settings, out io.Writer) (*writer.Report, error) {

	if err := img.Validate(); err != nil {
		return nil, fmt.Errorf("invalid program: %w", err)
	}

	runID := uuid.New()
	p.printInfo(opts, img, runID)

	report := &writer.Report{
		Image: img,
	}

	if opts.Listing {
		listing, err := p.listing(img, opts)
		if err != nil {
			return nil, err
		}
		report.Listing = listing
	}

	if opts.RunsProgram() {
		if err := p.runProgram(img, opts, settings, report); err != nil {
			return nil, fmt.Errorf("running program: %w", err)
		}
	}

	if opts.SearchesQuine() {
		if err := p.searchQuine(ctx, img, opts, settings, report); err != nil {
			return nil, err
		}
	}

	w := writer.New(out)
	if err := w.Write(report); err != nil {
		return nil, fmt.Errorf("writing report: %w", err)
	}

	p.logger.Debug("Finished processing", log.String("run", runID.String()))
	return report, nil
}

// listing renders the disassembly listing of the program.
func (p *Pipeline) listing(img program.Image, opts options.Program) (string, error) {
	listingOptions := disasm.NewOptions()
	listingOptions.HexComments = opts.HexComments
	listingOptions.OffsetComments = opts.OffsetComments

	var buf strings.Builder
	if err := disasm.Write(&buf, img.Program, listingOptions); err != nil {
		return "", fmt.Errorf("writing listing: %w", err)
	}
	return buf.String(), nil
}

// runProgram runs the program with its initial registers.
func (p *Pipeline) runProgram(img program.Image, opts options.Program, settings config.Settings,
	report *writer.Report) error {

	vmOptions := []vm.Option{vm.WithMaxSteps(settings.Engine.MaxSteps)}
	if opts.Debug {
		vmOptions = append(vmOptions, vm.WithLogger(p.logger))
	}

	result, err := vm.Run(img, vmOptions...)
	if err != nil {
		return err
	}

	report.Ran = true
	report.Output = result.Output
	report.Registers = result.Registers
	report.Steps = result.Steps
	return nil
}

// searchQuine searches the minimal quine value of register A. A program
// without any quine value is a regular result and not returned as error.
func (p *Pipeline) searchQuine(ctx context.Context, img program.Image, opts options.Program,
	settings config.Settings, report *writer.Report) error {

	solver, err := quine.New(p.logger, settings.SolverOptions())
	if err != nil {
		return fmt.Errorf("creating solver: %w", err)
	}

	value, err := solver.FindMinimal(ctx, img.Program)
	report.Searched = true
	report.OracleRuns = solver.OracleRuns()

	switch {
	case errors.Is(err, quine.ErrNoQuineFound):
		report.QuineErr = err
		p.logger.Warn("No quine value found", log.Err(err))
		return nil
	case err != nil:
		return fmt.Errorf("searching quine: %w", err)
	}

	report.Quine = value
	if !opts.Verify {
		return nil
	}

	if err := verification.Quine(p.logger, img.Program, value, settings.Engine.MaxSteps); err != nil {
		return fmt.Errorf("verification failed: %w", err)
	}
	report.Verified = true
	p.logger.Info("Verification successful")
	return nil
}

// printInfo prints information about the program being processed.
func (p *Pipeline) printInfo(opts options.Program, img program.Image, runID uuid.UUID) {
	if opts.Quiet {
		return
	}

	p.logger.Info("Processing program",
		log.String("file", opts.Input),
		log.String("run", runID.String()),
		log.Int("instructions", img.Instructions()),
		log.String("mode", opts.Mode),
	)
}
