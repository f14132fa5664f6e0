package cpu

import (
	"errors"
	"strings"

	"github.com/ezrec/cpusim/translate"
)

var f = translate.From

var (
	// Operand errors
	ErrInvalidOperand = errors.New(f("invalid operand"))
	ErrOperandRange   = errors.New(f("operand out of range"))
	ErrOperandCount   = errors.New(f("operand count mismatch"))

	// Instruction decode errors
	ErrUnknownInstruction = errors.New(f("unknown instruction"))
)

// ErrOperand describes a register or address token that failed validation.
type ErrOperand struct {
	Kind  string // "register" or "address"
	Token string
	Err   error // ErrInvalidOperand or ErrOperandRange
}

func (err *ErrOperand) Error() string {
	if err.Err == ErrOperandRange {
		limit := REGISTER_COUNT
		if err.Kind == OPERAND_ADDRESS {
			limit = MEMORY_SIZE
		}
		return f("%v '%v' out of range 0-%d", err.Kind, err.Token, limit-1)
	}
	return f("invalid %v operand '%v'", err.Kind, err.Token)
}

func (err *ErrOperand) Unwrap() error {
	return err.Err
}

// ErrOperandCountMismatch is returned when an opcode is given the wrong number of operands.
type ErrOperandCountMismatch struct {
	Opcode Opcode
	Want   int
	Got    int
}

func (err *ErrOperandCountMismatch) Error() string {
	return f("%v requires %d operands, got %d", strings.ToUpper(err.Opcode.String()), err.Want, err.Got)
}

func (err *ErrOperandCountMismatch) Unwrap() error {
	return ErrOperandCount
}

// ErrOpcodeUnknown carries the text of an unrecognized opcode.
type ErrOpcodeUnknown string

func (eo ErrOpcodeUnknown) Error() string {
	return f("unknown instruction: %v", string(eo))
}

func (eo ErrOpcodeUnknown) Unwrap() error {
	return ErrUnknownInstruction
}
