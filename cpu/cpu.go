package cpu

import (
	"fmt"
	"iter"
	"log"
	"maps"
)

const (
	REGISTER_COUNT = 6  // Size of the register file.
	MEMORY_SIZE    = 6  // Size of the memory.
	MEMORY_SEED    = 10 // Value of every memory cell after reset.
)

var _cpu_defines = map[string]int{
	"REGISTER_COUNT": REGISTER_COUNT,
	"MEMORY_SIZE":    MEMORY_SIZE,
	"MEMORY_SEED":    MEMORY_SEED,
}

// Result describes the outcome of a successfully executed instruction.
type Result struct {
	Skip   bool   // Blank line, nothing executed.
	Halt   bool   // END reached.
	Effect string // Description of the state change, if any.
}

// Cpu is the simulation context for the register file and memory.
type Cpu struct {
	Verbose bool // Set to enable verbose logging.

	Register [REGISTER_COUNT]int // Register bank.
	Memory   [MEMORY_SIZE]int    // Data memory.

	Ticks int // Executed instruction counter.
}

// NewCpu creates a new CPU in its reset state.
func NewCpu() (cpu *Cpu) {
	cpu = &Cpu{}
	cpu.Reset()

	return
}

// Defines for the cpu
func (cpu *Cpu) Defines() iter.Seq2[string, int] {
	return maps.All(_cpu_defines)
}

// Reset the CPU state.
// - Clears the registers.
// - Seeds all memory cells with MEMORY_SEED.
// - Zeros the tick counter.
func (cpu *Cpu) Reset() {
	if cpu.Verbose {
		log.Printf("cpu: reset")
	}

	clear(cpu.Register[:])
	for n := range cpu.Memory {
		cpu.Memory[n] = MEMORY_SEED
	}
	cpu.Ticks = 0
}

// String returns the current CPU state as a string.
func (cpu *Cpu) String() (text string) {
	for n, val := range cpu.Register {
		text += fmt.Sprintf("    $%d: %d\n", n, val)
	}
	for n, val := range cpu.Memory {
		text += fmt.Sprintf("mem[%d]: %d\n", n, val)
	}

	return
}

// Execute applies a single decoded instruction to the CPU state.
//
// On error the state is left unmodified.
func (cpu *Cpu) Execute(ins Instruction) (res Result, err error) {
	if cpu.Verbose {
		log.Printf("cpu: %v %v", ins.Opcode, ins.Operands)
	}

	switch ins.Opcode {
	case OP_SKIP:
		res.Skip = true
		return
	case OP_UNKNOWN:
		err = ErrOpcodeUnknown(ins.Name)
		return
	}

	want := ins.Opcode.Operands()
	if len(ins.Operands) != want {
		err = &ErrOperandCountMismatch{Opcode: ins.Opcode, Want: want, Got: len(ins.Operands)}
		return
	}

	switch ins.Opcode {
	case OP_END:
		res.Halt = true
		return
	case OP_ADD, OP_SUB:
		var regs [3]int
		for n, token := range ins.Operands {
			regs[n], err = ValidateRegister(token)
			if err != nil {
				return
			}
		}
		d, s1, s2 := regs[0], regs[1], regs[2]
		sign := "+"
		value := cpu.Register[s1] + cpu.Register[s2]
		if ins.Opcode == OP_SUB {
			sign = "-"
			value = cpu.Register[s1] - cpu.Register[s2]
		}
		cpu.Register[d] = value
		res.Effect = f("$%d = $%d %v $%d = %d", d, s1, sign, s2, value)
	case OP_LOAD, OP_STORE:
		var reg, addr int
		reg, err = ValidateRegister(ins.Operands[0])
		if err != nil {
			return
		}
		addr, err = ValidateAddress(ins.Operands[1])
		if err != nil {
			return
		}
		if ins.Opcode == OP_LOAD {
			cpu.Register[reg] = cpu.Memory[addr]
			res.Effect = f("loaded memory[%d] into $%d (%d)", addr, reg, cpu.Register[reg])
		} else {
			cpu.Memory[addr] = cpu.Register[reg]
			res.Effect = f("stored $%d into memory[%d] (%d)", reg, addr, cpu.Memory[addr])
		}
	default:
		panic("unknown opcode")
	}

	cpu.Ticks += 1

	if cpu.Verbose {
		log.Printf("cpu: %v", res.Effect)
	}

	return
}
