package vm

import (
	"fmt"

	"github.com/retroenv/quinevm/internal/program"
)

// combo operand values that read a register.
const (
	comboRegisterA = 4
	comboRegisterB = 5
	comboRegisterC = 6
	comboReserved  = 7
)

// ResolveCombo resolves a combo operand byte against the given registers.
// Values 0-3 are literals, 4-6 read register A, B and C.
// The reserved value 7 results in ErrInvalidOperand.
func ResolveCombo(operand byte, regs program.Registers) (uint64, error) {
	switch {
	case operand < comboRegisterA:
		return uint64(operand), nil
	case operand == comboRegisterA:
		return regs.A, nil
	case operand == comboRegisterB:
		return regs.B, nil
	case operand == comboRegisterC:
		return regs.C, nil
	case operand == comboReserved:
		return 0, fmt.Errorf("%w: reserved operand %d", ErrInvalidOperand, operand)
	default:
		return 0, fmt.Errorf("%w: operand %d out of range", ErrInvalidOperand, operand)
	}
}

// shiftDivide returns value / 2^exponent. Exponents of 64 or more
// shift every bit out of a 64 bit register.
func shiftDivide(value, exponent uint64) uint64 {
	if exponent >= 64 {
		return 0
	}
	return value >> exponent
}
