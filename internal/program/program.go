// Package program represents a loaded program image of the three register machine.
package program

import (
	"errors"
	"fmt"
)

// MaxValue is the highest value a program byte or an output value can have.
// Opcodes, operands and output values are all 3 bit wide.
const MaxValue = 7

var (
	// ErrOddLength is returned for programs that do not consist of opcode/operand pairs.
	ErrOddLength = errors.New("program length is odd")
	// ErrValueRange is returned for program bytes that do not fit into 3 bits.
	ErrValueRange = errors.New("program value out of range")
)

// Registers contains the three registers of the machine.
// A is the primary register, B and C are scratch registers.
type Registers struct {
	A uint64
	B uint64
	C uint64
}

// String returns the registers formatted as A=<a> B=<b> C=<c>.
func (r Registers) String() string {
	return fmt.Sprintf("A=%d B=%d C=%d", r.A, r.B, r.C)
}

// Image defines a program together with the initial register values it is started with.
type Image struct {
	Registers Registers
	Program   []byte // opcode/operand pairs
}

// New returns a new image for the given program, started with register A set to a
// and B and C cleared.
func New(a uint64, prog []byte) Image {
	return Image{
		Registers: Registers{A: a},
		Program:   prog,
	}
}

// Validate checks that the program consists of complete opcode/operand pairs
// that all fit into 3 bits.
func (img Image) Validate() error {
	if len(img.Program)%2 != 0 {
		return fmt.Errorf("%w: %d bytes", ErrOddLength, len(img.Program))
	}
	for i, b := range img.Program {
		if b > MaxValue {
			return fmt.Errorf("%w: value %d at index %d", ErrValueRange, b, i)
		}
	}
	return nil
}

// Instructions returns the number of instructions of the program.
func (img Image) Instructions() int {
	return len(img.Program) / 2
}
