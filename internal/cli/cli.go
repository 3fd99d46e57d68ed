// Package cli handles command line interface logic
package cli

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/retroenv/quinevm/internal/options"
)

// ParseFlags parses command line flags and returns the program options
func ParseFlags() (options.Program, error) {
	flags := flag.NewFlagSet(os.Args[0], flag.ExitOnError)
	var opts options.Program
	readOptionFlags(flags, &opts)
	var listingFlags listingFlags
	readListingFlags(flags, &listingFlags)

	err := flags.Parse(os.Args[1:])
	args := flags.Args()
	if err != nil || (len(args) == 0 && opts.Batch == "") {
		return opts, &UsageError{flags: flags}
	}

	if err := validateArgs(args); err != nil {
		return opts, err
	}

	if err := normalizeOptions(&opts); err != nil {
		return opts, err
	}

	if err := validateOptionCombinations(opts); err != nil {
		return opts, err
	}

	if opts.Batch == "" {
		opts.Input = args[0]
	}

	// Apply inverse logic for hex comments and offsets
	opts.HexComments = !listingFlags.noHexComments
	opts.OffsetComments = !listingFlags.noOffsets

	return opts, nil
}

// UsageError represents an error that should show usage information
type UsageError struct {
	flags *flag.FlagSet
	msg   string
}

func (e *UsageError) Error() string {
	return e.msg
}

func (e *UsageError) ShowUsage() {
	fmt.Printf("usage: quinevm [options] <program file>\n\n")
	if e.flags != nil {
		e.flags.PrintDefaults()
	}
	fmt.Println()
}

// validateArgs checks if arguments are in correct order
func validateArgs(args []string) error {
	for i, arg := range args {
		if i > 0 && arg != "" && arg[0] == '-' {
			return &UsageError{
				msg: fmt.Sprintf("Potential argument %s found after program file, please pass the program file as last argument", arg),
			}
		}
	}
	return nil
}

// normalizeOptions normalizes and validates option values
func normalizeOptions(opts *options.Program) error {
	opts.Mode = strings.ToLower(opts.Mode)
	if opts.Mode == "" {
		opts.Mode = options.ModeAll
	}
	validModes := []string{options.ModeRun, options.ModeQuine, options.ModeAll}
	if !slices.Contains(validModes, opts.Mode) {
		return fmt.Errorf("unsupported mode: %s. Valid options: %s",
			opts.Mode, strings.Join(validModes, ", "))
	}

	opts.Format = strings.ToLower(opts.Format)
	validFormats := []string{options.FormatText, options.FormatImage}
	if opts.Format != "" && !slices.Contains(validFormats, opts.Format) {
		return fmt.Errorf("unsupported input format: %s. Valid options: %s",
			opts.Format, strings.Join(validFormats, ", "))
	}

	if opts.Workers < 0 {
		return fmt.Errorf("invalid worker count %d", opts.Workers)
	}
	return nil
}

// validateOptionCombinations checks for flags that can not be used together
func validateOptionCombinations(opts options.Program) error {
	if opts.Verify && !opts.SearchesQuine() {
		return errors.New("verify option requires the quine search, use mode quine or all")
	}
	if opts.Emit != "" && opts.Batch != "" {
		return errors.New("emit option can not be combined with batch processing")
	}
	return nil
}

func readOptionFlags(flags *flag.FlagSet, opts *options.Program) {
	flags.StringVar(&opts.Output, "o", "", "name of the output report file, printed on console if no name given")
	flags.StringVar(&opts.Batch, "batch", "", "process a batch of given path and file mask and automatically .out file naming, for example *.txt")
	flags.StringVar(&opts.Config, "c", "", "TOML settings file with engine and search settings")
	flags.StringVar(&opts.Format, "f", "", "input format (text, image) - if not auto-detected from file extension")
	flags.StringVar(&opts.Mode, "m", options.ModeAll, "mode of operation (run, quine, all)")
	flags.StringVar(&opts.Emit, "emit", "", "write the loaded program as CBOR image to the given file")
	flags.Uint64Var(&opts.MaxSteps, "steps", 0, "maximum number of executed instructions per run, overrides the settings file")
	flags.IntVar(&opts.Workers, "workers", 0, "number of candidates evaluated in parallel by the quine search, overrides the settings file")
	flags.BoolVar(&opts.Debug, "debug", false, "enable debugging options for extended logging")
	flags.BoolVar(&opts.Quiet, "q", false, "perform operations quietly")
	flags.BoolVar(&opts.Verify, "verify", false, "verify the found quine value by running the program with it")
	flags.BoolVar(&opts.Listing, "listing", false, "include a disassembly listing of the program in the report")
}

type listingFlags struct {
	noHexComments bool
	noOffsets     bool
}

func readListingFlags(flags *flag.FlagSet, opts *listingFlags) {
	flags.BoolVar(&opts.noHexComments, "nohexcomments", false, "do not output program bytes as hex values in listing comments")
	flags.BoolVar(&opts.noOffsets, "nooffsets", false, "do not output offsets in listing comments")
}
