package cpu

import (
	"strings"
)

// Decode splits a line of program text into an Instruction.
//
// Commas are treated as whitespace, and the opcode is case-normalized.
// Operands are not validated; that is done by Cpu.Execute.
func Decode(line string) (ins Instruction) {
	words := strings.Fields(strings.ReplaceAll(line, ",", " "))
	if len(words) == 0 {
		ins.Opcode = OP_SKIP
		return
	}

	ins.Name = strings.ToLower(words[0])
	if len(words) > 1 {
		ins.Operands = words[1:]
	}

	op, ok := opcodeMap[ins.Name]
	if !ok {
		op = OP_UNKNOWN
	}
	ins.Opcode = op

	return
}
