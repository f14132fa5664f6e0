package cpu

import (
	"strings"
)

// Opcode is a decoded instruction mnemonic.
type Opcode int

//go:generate go tool stringer -linecomment -type=Opcode
const (
	OP_UNKNOWN = Opcode(0) // unknown
	OP_SKIP    = Opcode(1) // skip
	OP_ADD     = Opcode(2) // add
	OP_SUB     = Opcode(3) // sub
	OP_LOAD    = Opcode(4) // load
	OP_STORE   = Opcode(5) // store
	OP_END     = Opcode(6) // end
)

// opcodeMap maps lower case mnemonics to opcodes.
var opcodeMap = map[string]Opcode{
	"add":   OP_ADD,
	"sub":   OP_SUB,
	"load":  OP_LOAD,
	"store": OP_STORE,
	"end":   OP_END,
}

// Operands returns the number of operands the opcode requires, or -1 if the
// opcode takes no fixed operand list.
func (op Opcode) Operands() int {
	switch op {
	case OP_ADD, OP_SUB:
		return 3
	case OP_LOAD, OP_STORE:
		return 2
	case OP_END:
		return 0
	}

	return -1
}

// Instruction is a single decoded program line.
type Instruction struct {
	Opcode   Opcode
	Name     string   // Case-normalized opcode text, as written.
	Operands []string // Raw operand tokens.
}

// String returns the canonical assembly text of the instruction.
func (ins Instruction) String() string {
	switch ins.Opcode {
	case OP_SKIP:
		return ""
	case OP_END:
		if len(ins.Operands) == 0 {
			return "END"
		}
	}

	if len(ins.Operands) == 0 {
		return ins.Name
	}

	return ins.Name + " " + strings.Join(ins.Operands, ", ")
}
