package loader

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/retroenv/quinevm/internal/program"
)

const (
	registerPrefix = "Register "
	programPrefix  = "Program:"
)

var (
	// ErrMissingProgram is returned for text input without a program line.
	ErrMissingProgram = errors.New("missing program line")
	// ErrMissingRegister is returned for text input that does not set all registers.
	ErrMissingRegister = errors.New("missing register line")
)

// ParseText parses the text format of a program:
//
//	Register A: 729
//	Register B: 0
//	Register C: 0
//
//	Program: 0,1,5,4,3,0
func ParseText(reader io.Reader) (program.Image, error) {
	var (
		img        program.Image
		seen       [3]bool
		hasProgram bool
	)

	scanner := bufio.NewScanner(reader)
	for lineNumber := 1; scanner.Scan(); lineNumber++ {
		line := strings.TrimSpace(scanner.Text())

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, registerPrefix):
			index, value, err := parseRegister(line)
			if err != nil {
				return program.Image{}, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			setRegister(&img.Registers, index, value)
			seen[index] = true

		case strings.HasPrefix(line, programPrefix):
			values, err := program.ParseValues(strings.TrimPrefix(line, programPrefix))
			if err != nil {
				return program.Image{}, fmt.Errorf("line %d: %w", lineNumber, err)
			}
			img.Program = values
			hasProgram = true

		default:
			return program.Image{}, fmt.Errorf("line %d: unexpected content '%s'", lineNumber, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return program.Image{}, fmt.Errorf("reading input: %w", err)
	}

	for i, ok := range seen {
		if !ok {
			return program.Image{}, fmt.Errorf("%w: register %c", ErrMissingRegister, 'A'+i)
		}
	}
	if !hasProgram {
		return program.Image{}, ErrMissingProgram
	}
	if err := img.Validate(); err != nil {
		return program.Image{}, fmt.Errorf("invalid program: %w", err)
	}
	return img, nil
}

// parseRegister parses a line like "Register A: 729" and returns the
// register index and value.
func parseRegister(line string) (int, uint64, error) {
	name, value, ok := strings.Cut(strings.TrimPrefix(line, registerPrefix), ":")
	if !ok {
		return 0, 0, fmt.Errorf("malformed register line '%s'", line)
	}

	name = strings.TrimSpace(name)
	if len(name) != 1 || name[0] < 'A' || name[0] > 'C' {
		return 0, 0, fmt.Errorf("unknown register '%s'", name)
	}

	v, err := strconv.ParseUint(strings.TrimSpace(value), 10, 64)
	if err != nil {
		return 0, 0, fmt.Errorf("parsing register %s value: %w", name, err)
	}
	return int(name[0] - 'A'), v, nil
}

func setRegister(regs *program.Registers, index int, value uint64) {
	switch index {
	case 0:
		regs.A = value
	case 1:
		regs.B = value
	case 2:
		regs.C = value
	}
}
