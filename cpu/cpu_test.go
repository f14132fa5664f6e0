package cpu

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCpu(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	assert.False(cpu.Verbose)
	assert.Equal([6]int{0, 0, 0, 0, 0, 0}, cpu.Register)
	assert.Equal([6]int{10, 10, 10, 10, 10, 10}, cpu.Memory)
	assert.Equal(0, cpu.Ticks)

	defines := map[string]int{}
	for key, val := range cpu.Defines() {
		defines[key] = val
	}
	assert.Equal(map[string]int{"REGISTER_COUNT": 6, "MEMORY_SIZE": 6, "MEMORY_SEED": 10}, defines)
}

func TestCpuReset(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[3] = 42
	cpu.Memory[1] = -7
	cpu.Ticks = 9

	cpu.Reset()
	first := *cpu
	cpu.Reset()
	assert.Equal(first, *cpu)
	assert.Equal([6]int{}, cpu.Register)
	assert.Equal([6]int{10, 10, 10, 10, 10, 10}, cpu.Memory)
	assert.Equal(0, cpu.Ticks)
}

func TestCpuExecute(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	program := []struct {
		line     string
		effect   string
		register [6]int
		memory   [6]int
	}{
		{"load $0 , 0", "loaded memory[0] into $0 (10)", [6]int{10, 0, 0, 0, 0, 0}, [6]int{10, 10, 10, 10, 10, 10}},
		{"load $1 , 1", "loaded memory[1] into $1 (10)", [6]int{10, 10, 0, 0, 0, 0}, [6]int{10, 10, 10, 10, 10, 10}},
		{"add $2 , $0 , $1", "$2 = $0 + $1 = 20", [6]int{10, 10, 20, 0, 0, 0}, [6]int{10, 10, 10, 10, 10, 10}},
		{"sub $3 , $2 , $0", "$3 = $2 - $0 = 10", [6]int{10, 10, 20, 10, 0, 0}, [6]int{10, 10, 10, 10, 10, 10}},
		{"store $2 , 5", "stored $2 into memory[5] (20)", [6]int{10, 10, 20, 10, 0, 0}, [6]int{10, 10, 10, 10, 10, 20}},
		{"STORE $4,0", "stored $4 into memory[0] (0)", [6]int{10, 10, 20, 10, 0, 0}, [6]int{0, 10, 10, 10, 10, 20}},
	}

	for n, entry := range program {
		res, err := cpu.Execute(Decode(entry.line))
		assert.NoError(err, entry.line)
		assert.False(res.Skip, entry.line)
		assert.False(res.Halt, entry.line)
		assert.Equal(entry.effect, res.Effect, entry.line)
		assert.Equal(entry.register, cpu.Register, entry.line)
		assert.Equal(entry.memory, cpu.Memory, entry.line)
		assert.Equal(n+1, cpu.Ticks, entry.line)
	}
}

func TestCpuExecuteSkipEnd(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()

	res, err := cpu.Execute(Decode(""))
	assert.NoError(err)
	assert.Equal(Result{Skip: true}, res)

	res, err = cpu.Execute(Decode("end"))
	assert.NoError(err)
	assert.Equal(Result{Halt: true}, res)

	assert.Equal(0, cpu.Ticks)
	assert.Equal(*NewCpu(), *cpu)
}

func TestCpuExecuteErrors(t *testing.T) {
	assert := assert.New(t)

	table := []struct {
		line    string
		err     error
		message string
	}{
		{"mul $1 , $2 , $3", ErrUnknownInstruction, "unknown instruction: mul"},
		{"JUMP 3", ErrUnknownInstruction, "unknown instruction: jump"},
		{"add $1 , $2", ErrOperandCount, "ADD requires 3 operands, got 2"},
		{"sub $1 , $2 , $3 , $4", ErrOperandCount, "SUB requires 3 operands, got 4"},
		{"load $1", ErrOperandCount, "LOAD requires 2 operands, got 1"},
		{"store", ErrOperandCount, "STORE requires 2 operands, got 0"},
		{"END now", ErrOperandCount, "END requires 0 operands, got 1"},
		{"add $7 , $0 , $1", ErrOperandRange, "register '$7' out of range 0-5"},
		{"add $1 , $0 , $6", ErrOperandRange, "register '$6' out of range 0-5"},
		{"sub r1 , $0 , $1", ErrInvalidOperand, "invalid register operand 'r1'"},
		{"load $0 , 6", ErrOperandRange, "address '6' out of range 0-5"},
		{"load $0 , $1", ErrInvalidOperand, "invalid address operand '$1'"},
		{"store 0 , 1", ErrInvalidOperand, "invalid register operand '0'"},
		{"store $0 , -1", ErrInvalidOperand, "invalid address operand '-1'"},
	}

	for _, entry := range table {
		cpu := NewCpu()
		cpu.Register = [6]int{1, 2, 3, 4, 5, 6}

		_, err := cpu.Execute(Decode(entry.line))
		assert.ErrorIs(err, entry.err, entry.line)
		assert.EqualError(err, entry.message, entry.line)

		// Failed instructions do not modify state.
		assert.Equal([6]int{1, 2, 3, 4, 5, 6}, cpu.Register, entry.line)
		assert.Equal([6]int{10, 10, 10, 10, 10, 10}, cpu.Memory, entry.line)
		assert.Equal(0, cpu.Ticks, entry.line)
	}

	var unknown ErrOpcodeUnknown
	_, err := NewCpu().Execute(Decode("nop"))
	assert.True(errors.As(err, &unknown))
	assert.Equal(ErrOpcodeUnknown("nop"), unknown)
}

// TestCpuArithmetic runs random valid programs and compares against a direct
// simulation of the same operations.
func TestCpuArithmetic(t *testing.T) {
	assert := assert.New(t)

	rng := rand.New(rand.NewSource(0x5eed))

	for round := range 100 {
		cpu := NewCpu()

		var register [6]int
		memory := [6]int{10, 10, 10, 10, 10, 10}

		var lines []string
		for range 32 {
			a, b, c := rng.Intn(6), rng.Intn(6), rng.Intn(6)
			switch rng.Intn(4) {
			case 0:
				lines = append(lines, fmt.Sprintf("add $%d , $%d , $%d", a, b, c))
				register[a] = register[b] + register[c]
			case 1:
				lines = append(lines, fmt.Sprintf("sub $%d,$%d,$%d", a, b, c))
				register[a] = register[b] - register[c]
			case 2:
				lines = append(lines, fmt.Sprintf("LOAD $%d %d", a, b))
				register[a] = memory[b]
			case 3:
				lines = append(lines, fmt.Sprintf("store $%d , %d", a, b))
				memory[b] = register[a]
			}
		}

		for _, line := range lines {
			_, err := cpu.Execute(Decode(line))
			assert.NoError(err, line)
		}

		program := strings.Join(lines, "\n")
		assert.Equal(register, cpu.Register, "round %d\n%v", round, program)
		assert.Equal(memory, cpu.Memory, "round %d\n%v", round, program)
		assert.Equal(len(lines), cpu.Ticks)
	}
}

func TestCpuString(t *testing.T) {
	assert := assert.New(t)

	cpu := NewCpu()
	cpu.Register[2] = 20

	text := cpu.String()
	assert.Contains(text, "    $2: 20\n")
	assert.Contains(text, "mem[5]: 10\n")
	assert.Equal(12, strings.Count(text, "\n"))
}
