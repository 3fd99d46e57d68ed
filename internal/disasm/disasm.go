// Package disasm renders programs of the three register machine as an
// assembly style listing.
package disasm

import (
	"fmt"
	"io"
	"strings"

	"github.com/retroenv/quinevm/internal/vm"
	"github.com/retroenv/retrogolib/set"
)

const (
	labelNaming   = "_label_%04x"
	commentColumn = 33
)

// register names of the combo operands 4-6.
var comboRegisters = [...]string{"A", "B", "C"}

// Options defines options to control the listing output.
type Options struct {
	HexComments    bool
	OffsetComments bool
}

// NewOptions returns a new options instance with default options.
func NewOptions() Options {
	return Options{
		HexComments:    true,
		OffsetComments: true,
	}
}

// Line is a single line of the listing, either a decoded instruction or
// program bytes that could not be decoded.
type Line struct {
	Offset  int
	Label   string // label of a jump target at this offset
	Code    string
	Data    []byte // program bytes of the line
	Comment string // reason why the bytes were not decoded
}

// Disassemble decodes the program into listing lines. Invalid opcodes,
// reserved combo operands and a trailing single byte are emitted as data.
func Disassemble(prog []byte) []Line {
	targets := jumpTargets(prog)

	var lines []Line
	for offset := 0; offset < len(prog); offset += 2 {
		line := Line{Offset: offset}
		if _, ok := targets[offset]; ok {
			line.Label = fmt.Sprintf(labelNaming, offset)
		}

		if offset+1 >= len(prog) {
			line.Data = prog[offset:]
			line.Code = dataDirective(line.Data)
			line.Comment = "missing operand"
			lines = append(lines, line)
			break
		}

		line.Data = prog[offset : offset+2]
		code, err := decode(prog[offset], prog[offset+1], targets)
		if err != nil {
			line.Code = dataDirective(line.Data)
			line.Comment = err.Error()
		} else {
			line.Code = code
		}
		lines = append(lines, line)
	}
	return lines
}

// Write writes the listing of the program.
func Write(w io.Writer, prog []byte, options Options) error {
	for i, line := range Disassemble(prog) {
		if line.Label != "" {
			if i > 0 {
				if _, err := fmt.Fprintln(w); err != nil {
					return fmt.Errorf("writing line: %w", err)
				}
			}
			if _, err := fmt.Fprintf(w, "%s:\n", line.Label); err != nil {
				return fmt.Errorf("writing label: %w", err)
			}
		}

		if _, err := fmt.Fprintln(w, formatLine(line, options)); err != nil {
			return fmt.Errorf("writing line: %w", err)
		}
	}
	return nil
}

// formatLine renders the code of a line together with its comment.
func formatLine(line Line, options Options) string {
	code := line.Code
	if line.Comment == "" {
		code = "  " + code
	}

	var comment []string
	if options.OffsetComments {
		comment = append(comment, fmt.Sprintf("$%04X", line.Offset))
	}
	if line.Comment != "" {
		comment = append(comment, line.Comment)
	}
	if options.HexComments {
		for _, b := range line.Data {
			comment = append(comment, fmt.Sprintf("%02X", b))
		}
	}
	if len(comment) == 0 {
		return code
	}
	return fmt.Sprintf("%-*s; %s", commentColumn, code, strings.Join(comment, " "))
}

// decode renders a single instruction.
func decode(opcode, operand byte, targets set.Set[int]) (string, error) {
	ins, ok := vm.Decode(opcode)
	if !ok {
		return "", fmt.Errorf("invalid opcode %d", opcode)
	}

	switch ins.Operand {
	case vm.IgnoredOperand:
		return ins.Name, nil

	case vm.ComboOperand:
		param, err := comboParam(operand)
		if err != nil {
			return "", fmt.Errorf("%s: %s %d", err, ins.Name, operand)
		}
		return fmt.Sprintf("%s %s", ins.Name, param), nil

	default:
		if ins.Opcode == vm.Jnz && targets.Contains(int(operand)) {
			return fmt.Sprintf("%s "+labelNaming, ins.Name, operand), nil
		}
		return fmt.Sprintf("%s %d", ins.Name, operand), nil
	}
}

func comboParam(operand byte) (string, error) {
	switch {
	case operand < 4:
		return fmt.Sprintf("%d", operand), nil
	case operand < 7:
		return comboRegisters[operand-4], nil
	default:
		return "", vm.ErrInvalidOperand
	}
}

// jumpTargets returns all aligned in program offsets that jnz instructions jump to.
func jumpTargets(prog []byte) set.Set[int] {
	targets := set.New[int]()
	for offset := 0; offset+1 < len(prog); offset += 2 {
		if vm.Opcode(prog[offset]) != vm.Jnz {
			continue
		}
		target := int(prog[offset+1])
		if target%2 == 0 && target < len(prog) {
			targets[target] = struct{}{}
		}
	}
	return targets
}

func dataDirective(data []byte) string {
	values := make([]string, len(data))
	for i, b := range data {
		values[i] = fmt.Sprintf("$%02x", b)
	}
	return ".byte " + strings.Join(values, ", ")
}
