// Package vm implements the three register machine.
//
// # Machine Overview
//
// The machine has three 64 bit registers A, B and C, an instruction pointer
// and an append only output of 3 bit values. A program is an immutable
// sequence of 3 bit values that are read in pairs of opcode and operand.
//
// # Instruction Set
//
// The instruction set has 8 instructions:
//   - adv, bdv, cdv: divide A by 2^combo and store the result in A, B or C
//   - bxl: xor B with the literal operand
//   - bst: store combo mod 8 in B
//   - jnz: jump to the literal operand if A is not zero
//   - bxc: xor B with C, the operand is ignored
//   - out: output combo mod 8
//
// # Combo Operands
//
// Combo operands 0-3 are literal values, 4-6 read the registers A, B and C.
// The operand 7 is reserved and aborts the run with ErrInvalidOperand.
//
// # Halting
//
// The engine halts when the instruction pointer leaves the program. Fetching
// from an odd instruction pointer or fetching an instruction that is missing
// its operand aborts the run, the engine never resynchronizes on its own.
//
// # Usage Example
//
//	img := program.New(729, []byte{0, 1, 5, 4, 3, 0})
//	result, err := vm.Run(img, vm.WithMaxSteps(10000))
//	if err != nil {
//		return fmt.Errorf("running program: %w", err)
//	}
//	fmt.Println(program.FormatOutput(result.Output)) // 4,6,3,5,6,3,5,2,1,0
package vm
