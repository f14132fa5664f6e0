package internal

import (
	"maps"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIterSeq2Concat(t *testing.T) {
	assert := assert.New(t)

	a := map[string]int{"a": 1, "b": 2}
	b := map[string]int{"c": 3}

	all := map[string]int{}
	for key, val := range IterSeq2Concat(maps.All(a), maps.All(b)) {
		all[key] = val
	}
	assert.Equal(map[string]int{"a": 1, "b": 2, "c": 3}, all)

	count := 0
	for range IterSeq2Concat(maps.All(a), maps.All(b)) {
		count++
		break
	}
	assert.Equal(1, count)
}

func TestReadLines(t *testing.T) {
	assert := assert.New(t)

	lines, err := ReadLines(strings.NewReader("load $0 , 0\r\n\nEND\n"))
	assert.NoError(err)
	assert.Equal([]string{"load $0 , 0", "", "END"}, lines)

	lines, err = ReadLines(strings.NewReader(""))
	assert.NoError(err)
	assert.Empty(lines)
}

func TestSplitLines(t *testing.T) {
	assert := assert.New(t)

	assert.Equal([]string{"load $0 , 0", "", "END"}, SplitLines("load $0 , 0\r\n\nEND\n"))
	assert.Equal([]string{"END"}, SplitLines("END"))
	assert.Equal([]string{""}, SplitLines("\n"))
	assert.Empty(SplitLines(""))
}
