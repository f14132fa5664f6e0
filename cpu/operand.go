package cpu

import (
	"strconv"
)

// Operand kinds, as reported by ErrOperand.
const (
	OPERAND_REGISTER = "register"
	OPERAND_ADDRESS  = "address"
)

// ValidateRegister parses a register token of the form '$N' and returns the
// register index.
func ValidateRegister(token string) (index int, err error) {
	if len(token) != 2 || token[0] != '$' || !isDigits(token[1:]) {
		err = &ErrOperand{Kind: OPERAND_REGISTER, Token: token, Err: ErrInvalidOperand}
		return
	}

	index = int(token[1] - '0')
	if index >= REGISTER_COUNT {
		index = 0
		err = &ErrOperand{Kind: OPERAND_REGISTER, Token: token, Err: ErrOperandRange}
		return
	}

	return
}

// ValidateAddress parses a memory address token of decimal digits and
// returns the memory index.
func ValidateAddress(token string) (index int, err error) {
	if !isDigits(token) {
		err = &ErrOperand{Kind: OPERAND_ADDRESS, Token: token, Err: ErrInvalidOperand}
		return
	}

	// Only overflow can fail here; that is out of range too.
	value, perr := strconv.Atoi(token)
	if perr != nil || value >= MEMORY_SIZE {
		err = &ErrOperand{Kind: OPERAND_ADDRESS, Token: token, Err: ErrOperandRange}
		return
	}

	index = value
	return
}

// isDigits is true for a non-empty string of ASCII decimal digits.
func isDigits(str string) bool {
	if len(str) == 0 {
		return false
	}

	for n := range len(str) {
		if str[n] < '0' || str[n] > '9' {
			return false
		}
	}

	return true
}
