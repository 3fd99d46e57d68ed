package vm

import (
	"fmt"

	"github.com/retroenv/quinevm/internal/program"
	"github.com/retroenv/retrogolib/log"
)

// instructionSize is the size of an instruction in bytes, opcode followed by operand.
const instructionSize = 2

// Result contains the observable state of a finished run.
type Result struct {
	Output    []byte
	Registers program.Registers
	Steps     uint64
}

// Option configures an engine.
type Option func(*Engine)

// WithMaxSteps limits the number of instructions a run may execute.
// A limit of 0 disables the check.
func WithMaxSteps(maxSteps uint64) Option {
	return func(e *Engine) {
		e.maxSteps = maxSteps
	}
}

// WithLogger enables a debug trace of every executed instruction.
func WithLogger(logger *log.Logger) Option {
	return func(e *Engine) {
		e.logger = logger
	}
}

// Engine executes a program on its own set of registers.
// An engine is not safe for concurrent use and runs a single program once.
type Engine struct {
	logger *log.Logger

	registers program.Registers
	program   []byte // shared with other engines, never written
	ip        int
	output    []byte

	steps    uint64
	maxSteps uint64
	halted   bool
	err      error
}

// New returns a new engine for the given image. The registers are copied,
// the program is shared read-only.
func New(img program.Image, options ...Option) *Engine {
	e := &Engine{
		registers: img.Registers,
		program:   img.Program,
	}
	for _, option := range options {
		option(e)
	}
	return e
}

// Run executes the image until it halts and returns the result.
func Run(img program.Image, options ...Option) (Result, error) {
	return New(img, options...).Run()
}

// Run steps the engine until it halts. If the run is aborted by an error
// the partial output is not returned.
func (e *Engine) Run() (Result, error) {
	for !e.halted {
		if err := e.Step(); err != nil {
			return Result{Registers: e.registers, Steps: e.steps}, err
		}
	}
	if e.err != nil {
		return Result{Registers: e.registers, Steps: e.steps}, e.err
	}

	return Result{
		Output:    e.output,
		Registers: e.registers,
		Steps:     e.steps,
	}, nil
}

// Step executes a single instruction. Fetching from an instruction pointer
// outside of the program halts the engine without error. Once halted, Step
// does nothing and returns the error that aborted the run, if any.
func (e *Engine) Step() error {
	if e.halted {
		return e.err
	}

	if e.ip < 0 || e.ip >= len(e.program) {
		e.halted = true
		return nil
	}

	opcode, operand, err := e.fetch()
	if err != nil {
		return e.abort(opcode, operand, err)
	}

	if e.maxSteps > 0 && e.steps >= e.maxSteps {
		return e.abort(opcode, operand, fmt.Errorf("%w: %d", ErrStepLimit, e.maxSteps))
	}

	ins, ok := Decode(opcode)
	if !ok {
		return e.abort(opcode, operand, ErrInvalidOpcode)
	}

	if e.logger != nil {
		e.logger.Debug("Executing instruction",
			log.Int("ip", e.ip),
			log.String("instruction", ins.Name),
			log.Uint8("operand", operand),
			log.Stringer("registers", e.registers))
	}

	if err := e.execute(ins, operand); err != nil {
		return e.abort(opcode, operand, err)
	}
	e.steps++
	return nil
}

// fetch reads the opcode and operand at the instruction pointer.
func (e *Engine) fetch() (byte, byte, error) {
	opcode := e.program[e.ip]
	if e.ip%instructionSize != 0 {
		return opcode, 0, ErrMisaligned
	}
	if e.ip+1 >= len(e.program) {
		return opcode, 0, ErrTruncated
	}
	return opcode, e.program[e.ip+1], nil
}

// execute runs the decoded instruction and advances the instruction pointer.
func (e *Engine) execute(ins *Instruction, operand byte) error {
	var value uint64
	if ins.Operand == ComboOperand {
		var err error
		value, err = ResolveCombo(operand, e.registers)
		if err != nil {
			return err
		}
	}

	switch ins.Opcode {
	case Adv:
		e.registers.A = shiftDivide(e.registers.A, value)
	case Bxl:
		e.registers.B ^= uint64(operand)
	case Bst:
		e.registers.B = value % 8
	case Jnz:
		if e.registers.A != 0 {
			e.ip = int(operand)
			return nil
		}
	case Bxc:
		e.registers.B ^= e.registers.C
	case Out:
		e.output = append(e.output, byte(value%8))
	case Bdv:
		e.registers.B = shiftDivide(e.registers.A, value)
	case Cdv:
		e.registers.C = shiftDivide(e.registers.A, value)
	}

	e.ip += instructionSize
	return nil
}

// abort halts the engine abnormally.
func (e *Engine) abort(opcode, operand byte, err error) error {
	e.halted = true
	e.err = &ExecutionError{
		IP:      e.ip,
		Opcode:  opcode,
		Operand: operand,
		Err:     err,
	}
	return e.err
}

// Halted returns whether the engine has stopped executing.
func (e *Engine) Halted() bool {
	return e.halted
}

// Err returns the error that aborted the run, if any.
func (e *Engine) Err() error {
	return e.err
}

// IP returns the current instruction pointer.
func (e *Engine) IP() int {
	return e.ip
}

// Steps returns the number of executed instructions.
func (e *Engine) Steps() uint64 {
	return e.steps
}

// Registers returns a copy of the current registers.
func (e *Engine) Registers() program.Registers {
	return e.registers
}

// Output returns the values output so far.
func (e *Engine) Output() []byte {
	return e.output
}
