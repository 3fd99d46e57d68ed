// Package options contains the program options.
package options

import (
	"strings"
)

// Run modes.
const (
	ModeRun   = "run"   // run the program and report its output
	ModeQuine = "quine" // search the minimal quine value of register A
	ModeAll   = "all"   // both of the above
)

// Input formats.
const (
	FormatText  = "text"  // register and program lines
	FormatImage = "image" // CBOR encoded program image
)

// Program options of the application.
type Program struct {
	Input  string
	Output string
	Config string
	Batch  string
	Emit   string // file to write the loaded program as CBOR image to

	Format string
	Mode   string

	MaxSteps uint64
	Workers  int

	Debug  bool
	Quiet  bool
	Verify bool

	Listing        bool // include a disassembly listing of the program in the report
	HexComments    bool // listing comments contain the program bytes
	OffsetComments bool // listing comments contain the program offsets
}

// RunsProgram returns whether the program should be executed directly.
func (p Program) RunsProgram() bool {
	mode := strings.ToLower(p.Mode)
	return mode == "" || mode == ModeAll || mode == ModeRun
}

// SearchesQuine returns whether the quine search should be run.
func (p Program) SearchesQuine() bool {
	mode := strings.ToLower(p.Mode)
	return mode == "" || mode == ModeAll || mode == ModeQuine
}
