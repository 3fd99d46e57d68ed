// Package writer renders the results of processing a program as text report.
package writer

import (
	"fmt"
	"io"

	"github.com/retroenv/quinevm/internal/program"
)

// Report contains the results of processing a single program.
type Report struct {
	Image   program.Image // the processed program
	Listing string        // disassembly listing of the program, if requested

	Ran       bool // whether the program was run with its initial registers
	Output    []byte
	Registers program.Registers // final register values of the run
	Steps     uint64

	Searched   bool   // whether the quine search was run
	Quine      uint64 // minimal quine value, valid if QuineErr is nil
	QuineErr   error  // reason why no quine value exists
	OracleRuns uint64

	Verified bool // whether the quine value was verified by a run
}

// Writer writes reports to an output stream.
type Writer struct {
	writer io.Writer
}

// New creates a new report writer.
func New(writer io.Writer) *Writer {
	return &Writer{
		writer: writer,
	}
}

// Write writes the report. Sections of steps that were not run are omitted.
func (w *Writer) Write(report *Report) error {
	if report.Listing != "" {
		if _, err := io.WriteString(w.writer, report.Listing+"\n"); err != nil {
			return fmt.Errorf("writing listing: %w", err)
		}
	}

	if report.Ran {
		if err := w.writeLine("Output: %s", program.FormatOutput(report.Output)); err != nil {
			return err
		}
		if err := w.writeLine("Registers: %s", report.Registers); err != nil {
			return err
		}
		if err := w.writeLine("Steps: %d", report.Steps); err != nil {
			return err
		}
	}

	if !report.Searched {
		return nil
	}
	if report.QuineErr != nil {
		return w.writeLine("Quine: none (%s)", report.QuineErr)
	}
	if err := w.writeLine("Quine: %d", report.Quine); err != nil {
		return err
	}
	if report.Verified {
		return w.writeLine("Verified: ok")
	}
	return nil
}

func (w *Writer) writeLine(format string, args ...any) error {
	if _, err := fmt.Fprintf(w.writer, format+"\n", args...); err != nil {
		return fmt.Errorf("writing line: %w", err)
	}
	return nil
}
