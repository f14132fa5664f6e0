// Package emulator drives the cpu over a loaded program, either one line per
// step or as a whole-program run.
package emulator

import (
	"errors"
	"fmt"
	"iter"
	"log"
	"maps"
	"slices"

	"github.com/ezrec/cpusim/cpu"
	"github.com/ezrec/cpusim/internal"
)

var _emulator_defines = map[string]int{
	"POLICY_ABORT":    int(POLICY_ABORT),
	"POLICY_CONTINUE": int(POLICY_CONTINUE),
}

// Session state. CPU + loaded program + program counter.
//
// A Session is owned by a single caller and is not safe for concurrent use.
type Session struct {
	Verbose  bool     // If set, enables verbose logging.
	*cpu.Cpu          // Reference to the CPU simulation.
	Program  []string // Currently loaded program lines.
	Policy   Policy   // Failure policy used by Run.

	pc int
}

// NewSession creates a new session with an empty program.
func NewSession() (emu *Session) {
	emu = &Session{
		Cpu: cpu.NewCpu(),
	}

	return
}

// Defines returns an iterator over all of the defines
func (emu *Session) Defines() iter.Seq2[string, int] {
	return internal.IterSeq2Concat(maps.All(_emulator_defines),
		emu.Cpu.Defines(),
	)
}

// Load replaces the program, and resets the program counter and CPU state.
func (emu *Session) Load(program []string) {
	if emu.Verbose {
		log.Printf("emulator: load %d lines", len(program))
	}

	emu.Program = slices.Clone(program)
	emu.pc = 0
	emu.Cpu.Verbose = emu.Verbose
	emu.Cpu.Reset()
}

// Reset clears the program, and resets the program counter and CPU state.
func (emu *Session) Reset() {
	emu.Load(nil)
}

// Registers returns a snapshot of the register file.
func (emu *Session) Registers() [cpu.REGISTER_COUNT]int {
	return emu.Cpu.Register
}

// Memory returns a snapshot of the memory.
func (emu *Session) Memory() [cpu.MEMORY_SIZE]int {
	return emu.Cpu.Memory
}

// Ticks returns the total executed instructions since a reset.
func (emu *Session) Ticks() int {
	return emu.Cpu.Ticks
}

// Pc returns the index of the next program line.
func (emu *Session) Pc() int {
	return emu.pc
}

// Done is true when every program line has been consumed.
func (emu *Session) Done() bool {
	return emu.pc >= len(emu.Program)
}

// LineNo returns the 1-based line number of the next program line, or 0
// when the program is complete.
func (emu *Session) LineNo() int {
	if emu.Done() {
		return 0
	}

	return emu.pc + 1
}

// String returns the program counter and CPU state as a string.
func (emu *Session) String() string {
	return fmt.Sprintf("   pc: %d/%d\n", emu.pc, len(emu.Program)) + emu.Cpu.String()
}

// tick decodes and executes the next program line, advancing the program
// counter whether or not it succeeds.
func (emu *Session) tick() (res cpu.Result, err error) {
	emu.Cpu.Verbose = emu.Verbose

	ins := cpu.Decode(emu.Program[emu.pc])
	emu.pc++

	return emu.Cpu.Execute(ins)
}

// Step executes a single program line.
//
// Execution errors are reported in message and do not stop the session;
// continues is false only at END or once the program is complete.
func (emu *Session) Step() (continues bool, message string) {
	if emu.Done() {
		return false, f("program complete")
	}

	lineno := emu.pc + 1

	res, err := emu.tick()
	switch {
	case err != nil:
		continues = true
		message = err.Error()
	case res.Skip:
		continues = true
		message = f("skipped")
	case res.Halt:
		message = f("end reached")
	default:
		continues = true
		message = res.Effect
	}

	if emu.Verbose {
		log.Printf("emulator: %d: %v", lineno, message)
	}

	return
}

// Run executes the remaining program lines. END lines are ignored.
//
// Under POLICY_ABORT the first failing line stops the run and is returned as
// an *ErrExecution. Under POLICY_CONTINUE every line is executed, and all
// failures are returned joined.
func (emu *Session) Run() (err error) {
	if emu.Policy != POLICY_ABORT && emu.Policy != POLICY_CONTINUE {
		err = ErrPolicyInvalid
		return
	}

	var errs []error
	for !emu.Done() {
		lineno := emu.pc + 1
		line := emu.Program[emu.pc]

		_, xerr := emu.tick()
		if xerr == nil {
			continue
		}

		xerr = &ErrExecution{LineNo: lineno, Line: line, Err: xerr}
		if emu.Policy == POLICY_ABORT {
			err = xerr
			return
		}

		if emu.Verbose {
			log.Printf("emulator: %v", xerr)
		}
		errs = append(errs, xerr)
	}

	err = errors.Join(errs...)

	return
}

// RunAll executes a whole program from the reset state, stopping at the
// first failing line. The snapshots are only valid if err is nil.
func RunAll(program []string) (registers [cpu.REGISTER_COUNT]int, memory [cpu.MEMORY_SIZE]int, err error) {
	emu := NewSession()
	emu.Load(program)

	err = emu.Run()
	if err != nil {
		return
	}

	registers = emu.Registers()
	memory = emu.Memory()

	return
}
