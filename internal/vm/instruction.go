package vm

// Opcode is the numeric encoding of an instruction in the program.
type Opcode byte

// Opcodes of the instruction set.
const (
	Adv Opcode = iota // A = A / 2^combo
	Bxl               // B = B xor literal
	Bst               // B = combo mod 8
	Jnz               // jump to literal if A != 0
	Bxc               // B = B xor C
	Out               // output combo mod 8
	Bdv               // B = A / 2^combo
	Cdv               // C = A / 2^combo
)

// OperandKind defines how an instruction interprets its operand byte.
type OperandKind uint8

// operand kinds.
const (
	LiteralOperand OperandKind = iota
	ComboOperand
	IgnoredOperand
)

// Instruction describes a single instruction of the instruction set.
type Instruction struct {
	Name    string
	Opcode  Opcode
	Operand OperandKind
}

// instructions is indexed by opcode.
var instructions = [...]*Instruction{
	Adv: {Name: "adv", Opcode: Adv, Operand: ComboOperand},
	Bxl: {Name: "bxl", Opcode: Bxl, Operand: LiteralOperand},
	Bst: {Name: "bst", Opcode: Bst, Operand: ComboOperand},
	Jnz: {Name: "jnz", Opcode: Jnz, Operand: LiteralOperand},
	Bxc: {Name: "bxc", Opcode: Bxc, Operand: IgnoredOperand},
	Out: {Name: "out", Opcode: Out, Operand: ComboOperand},
	Bdv: {Name: "bdv", Opcode: Bdv, Operand: ComboOperand},
	Cdv: {Name: "cdv", Opcode: Cdv, Operand: ComboOperand},
}

// Decode returns the instruction for the given opcode byte.
// The second return value is false if the byte is not a valid opcode.
func Decode(b byte) (*Instruction, bool) {
	if int(b) >= len(instructions) {
		return nil, false
	}
	return instructions[b], true
}

// String returns the mnemonic of the opcode.
func (o Opcode) String() string {
	ins, ok := Decode(byte(o))
	if !ok {
		return "invalid"
	}
	return ins.Name
}
