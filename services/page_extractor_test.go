package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTrimmedLabel(t *testing.T) {
	got, ok := trimmedLabel("  First Name  ")
	assert.True(t, ok)
	assert.Equal(t, "First Name", got)

	// Whitespace-only text must read as no label at all, so the next
	// lookup strategy gets a turn.
	_, ok = trimmedLabel("   \n\t ")
	assert.False(t, ok)

	_, ok = trimmedLabel("")
	assert.False(t, ok)
}
