package vm

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidOpcode is returned when a fetched opcode byte is outside of 0-7.
	ErrInvalidOpcode = errors.New("invalid opcode")
	// ErrInvalidOperand is returned when the reserved combo operand 7 is resolved.
	ErrInvalidOperand = errors.New("invalid combo operand")
	// ErrMisaligned is returned when an instruction is fetched from an odd address.
	ErrMisaligned = errors.New("misaligned instruction pointer")
	// ErrTruncated is returned when the last instruction of a program is missing its operand.
	ErrTruncated = errors.New("truncated instruction")
	// ErrStepLimit is returned when a run exceeds its configured step limit.
	ErrStepLimit = errors.New("step limit exceeded")
)

// ExecutionError wraps an error that aborted a run together with the
// machine position it occurred at.
type ExecutionError struct {
	IP      int
	Opcode  byte
	Operand byte
	Err     error
}

func (e *ExecutionError) Error() string {
	return fmt.Sprintf("ip %d (%s, opcode %d, operand %d): %v",
		e.IP, Opcode(e.Opcode), e.Opcode, e.Operand, e.Err)
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
