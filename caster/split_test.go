package caster

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"a", "b", "c"}, SplitList("a | b |c", "|"))
	assert.Equal(t, []string{"a", "", "b"}, SplitList("a,,b", ","))
	assert.Equal(t, []string{"single"}, SplitList(" single ", ","))
	assert.Equal(t, []string{""}, SplitList("", ","))
}

func TestCompactList(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, CompactList([]string{"a", "", "b", ""}))
	assert.Empty(t, CompactList([]string{""}))
}

func TestStripWrapping(t *testing.T) {
	assert.Equal(t, "HAN*SGN", StripWrapping("(HAN*SGN)"))
	assert.Equal(t, "x", StripWrapping("[{(x)}]"))
	assert.Equal(t, "a(b)c", StripWrapping("a(b)c"))
	assert.Equal(t, "", StripWrapping("()"))
}

func TestTokenAt(t *testing.T) {
	tokens := []string{"a", "b"}

	assert.Equal(t, "b", TokenAt(tokens, 1))
	assert.Equal(t, "", TokenAt(tokens, 2))
	assert.Equal(t, "", TokenAt(tokens, -1))
}
