// Package script drives a simulator session from a Starlark program.
//
// The predeclared builtins are:
//
//	program(lines)      load program lines, resetting the session
//	step()              execute one line, returns (continues, message)
//	run()               run the remaining lines with the session policy
//	run_all(lines)      run a program in a fresh session, returns (registers, memory)
//	reset()             clear the program and reset the session
//	set_policy(policy)  select POLICY_ABORT or POLICY_CONTINUE for run()
//	registers()         list of register values
//	memory()            list of memory values
//	pc()                index of the next program line
//
// lines may be a string, split on newlines, or a list of strings. The
// session defines (REGISTER_COUNT, MEMORY_SIZE, MEMORY_SEED, POLICY_ABORT,
// POLICY_CONTINUE) are predeclared as integers.
package script

import (
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"

	"github.com/ezrec/cpusim/emulator"
	"github.com/ezrec/cpusim/internal"
	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	ErrLines = errors.New(f("lines must be a string or a list of strings"))
)

// Script is a Starlark execution context bound to a session.
type Script struct {
	Verbose bool              // If set, logs each builtin call.
	Output  io.Writer         // Destination of print(); os.Stdout if nil.
	Session *emulator.Session // Session driven by the script.
}

// NewScript creates a script context with a fresh session.
func NewScript() (sc *Script) {
	sc = &Script{
		Session: emulator.NewSession(),
	}

	return
}

// Exec runs a Starlark program. src may be nil (read filename), a string,
// a []byte, or an io.Reader. The global variables of the program are returned.
func (sc *Script) Exec(filename string, src any) (globals starlark.StringDict, err error) {
	if sc.Session == nil {
		sc.Session = emulator.NewSession()
	}
	sc.Session.Verbose = sc.Verbose

	out := sc.Output
	if out == nil {
		out = os.Stdout
	}

	thread := &starlark.Thread{
		Name: filename,
		Print: func(_ *starlark.Thread, msg string) {
			fmt.Fprintln(out, msg)
		},
	}

	// Driver scripts loop and branch at top level.
	opts := syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
		GlobalReassign:  true,
	}

	globals, err = starlark.ExecFileOptions(&opts, thread, filename, src, sc.predeclared())

	return
}

// predeclared returns the builtins and defines of the script environment.
func (sc *Script) predeclared() starlark.StringDict {
	pred := starlark.StringDict{}
	for key, value := range sc.Session.Defines() {
		pred[key] = starlark.MakeInt(value)
	}

	builtins := map[string]func(*starlark.Thread, *starlark.Builtin, starlark.Tuple, []starlark.Tuple) (starlark.Value, error){
		"program":    sc.builtinProgram,
		"step":       sc.builtinStep,
		"run":        sc.builtinRun,
		"run_all":    sc.builtinRunAll,
		"reset":      sc.builtinReset,
		"set_policy": sc.builtinSetPolicy,
		"registers":  sc.builtinRegisters,
		"memory":     sc.builtinMemory,
		"pc":         sc.builtinPc,
	}
	for name, fn := range builtins {
		pred[name] = starlark.NewBuiltin(name, fn)
	}

	return pred
}

// toLines converts a Starlark string or sequence of strings to program lines.
func toLines(value starlark.Value) (lines []string, err error) {
	if str, ok := starlark.AsString(value); ok {
		lines = internal.SplitLines(str)
		return
	}

	seq, ok := value.(starlark.Indexable)
	if !ok {
		err = ErrLines
		return
	}

	lines = make([]string, seq.Len())
	for n := range seq.Len() {
		str, ok := starlark.AsString(seq.Index(n))
		if !ok {
			err = ErrLines
			return
		}
		lines[n] = str
	}

	return
}

// toList converts a snapshot to a Starlark list.
func toList(values []int) *starlark.List {
	elems := make([]starlark.Value, len(values))
	for n, value := range values {
		elems[n] = starlark.MakeInt(value)
	}

	return starlark.NewList(elems)
}

func (sc *Script) trace(b *starlark.Builtin, args starlark.Tuple) {
	if sc.Verbose {
		log.Printf("script: %v%v", b.Name(), args)
	}
}

func (sc *Script) builtinProgram(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
		return nil, err
	}
	sc.trace(b, args)

	lines, err := toLines(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	sc.Session.Load(lines)

	return starlark.None, nil
}

func (sc *Script) builtinStep(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	sc.trace(b, args)

	continues, message := sc.Session.Step()

	return starlark.Tuple{starlark.Bool(continues), starlark.String(message)}, nil
}

func (sc *Script) builtinRun(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	sc.trace(b, args)

	if err := sc.Session.Run(); err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	return starlark.None, nil
}

func (sc *Script) builtinRunAll(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var value starlark.Value
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &value); err != nil {
		return nil, err
	}
	sc.trace(b, args)

	lines, err := toLines(value)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	registers, memory, err := emulator.RunAll(lines)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", b.Name(), err)
	}

	return starlark.Tuple{toList(registers[:]), toList(memory[:])}, nil
}

func (sc *Script) builtinReset(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}
	sc.trace(b, args)

	sc.Session.Reset()

	return starlark.None, nil
}

func (sc *Script) builtinSetPolicy(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	var policy int
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 1, &policy); err != nil {
		return nil, err
	}
	sc.trace(b, args)

	switch emulator.Policy(policy) {
	case emulator.POLICY_ABORT, emulator.POLICY_CONTINUE:
		sc.Session.Policy = emulator.Policy(policy)
	default:
		return nil, fmt.Errorf("%s: %w", b.Name(), emulator.ErrPolicyInvalid)
	}

	return starlark.None, nil
}

func (sc *Script) builtinRegisters(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	registers := sc.Session.Registers()

	return toList(registers[:]), nil
}

func (sc *Script) builtinMemory(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	memory := sc.Session.Memory()

	return toList(memory[:]), nil
}

func (sc *Script) builtinPc(_ *starlark.Thread, b *starlark.Builtin, args starlark.Tuple, kwargs []starlark.Tuple) (starlark.Value, error) {
	if err := starlark.UnpackPositionalArgs(b.Name(), args, kwargs, 0); err != nil {
		return nil, err
	}

	return starlark.MakeInt(sc.Session.Pc()), nil
}
