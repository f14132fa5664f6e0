package emulator

import (
	"strings"
)

// Policy selects how Run treats a line that fails to execute.
type Policy int

//go:generate go tool stringer -linecomment -type=Policy
const (
	POLICY_ABORT    = Policy(0) // abort
	POLICY_CONTINUE = Policy(1) // continue
)

// ParsePolicy returns the policy named by text, case-insensitive.
func ParsePolicy(text string) (policy Policy, err error) {
	switch strings.ToLower(text) {
	case POLICY_ABORT.String():
		policy = POLICY_ABORT
	case POLICY_CONTINUE.String():
		policy = POLICY_CONTINUE
	default:
		err = ErrPolicyInvalid
	}

	return
}
