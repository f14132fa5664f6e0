package emulator

import (
	"errors"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	// Session errors
	ErrPolicyInvalid = errors.New(f("policy invalid"))
)

// ErrExecution indicates the program line that failed to execute.
type ErrExecution struct {
	LineNo int    // 1-based program line number.
	Line   string // Program line, verbatim.
	Err    error
}

func (err *ErrExecution) Error() string {
	return f("line %d '%v' %v", err.LineNo, err.Line, err.Err)
}

func (err *ErrExecution) Unwrap() error {
	return err.Err
}
