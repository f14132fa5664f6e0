package translate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFrom(t *testing.T) {
	assert := assert.New(t)

	SetLanguage("en-US")

	assert.Equal("unknown instruction: mul", From("unknown instruction: %v", "mul"))
	assert.Equal("ADD requires 3 operands, got 2", From("%v requires %d operands, got %d", "ADD", 3, 2))
}

func TestSetLanguageDefault(t *testing.T) {
	assert := assert.New(t)

	SetLanguage()
	assert.Equal("memory[3]", From("memory[%d]", 3))
}
