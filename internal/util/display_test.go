package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPadString(t *testing.T) {
	assert.Equal(t, "ab   ", PadString("ab", 5, true))
	assert.Equal(t, "   ab", PadString("ab", 5, false))
	assert.Equal(t, "abcdef", PadString("abcdef", 3, true))
	// Wide runes take two columns each
	assert.Equal(t, "薬 ", PadString("薬", 3, true))
}

func TestColorize(t *testing.T) {
	assert.Equal(t, "x", Colorize("x", ColorRed, false))
	assert.Equal(t, ColorRed+"x"+ColorReset, Colorize("x", ColorRed, true))
	assert.Equal(t, "x", Colorize("x", "", true))
}

func TestGetDisplayWidth(t *testing.T) {
	assert.Equal(t, 4, GetDisplayWidth("37.0"))
	assert.Equal(t, 4, GetDisplayWidth("解熱"))
}
