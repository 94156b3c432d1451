package regionstats

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	v, e := ParseNumber("5,024,279")
	assert.Nil(t, e)
	x, ok := v.AsInt()
	assert.True(t, ok)
	assert.Equal(t, 5024279, x)

	_, e = ParseNumber("")
	assert.NotNil(t, e)

	_, e = ParseNumber("(X)")
	assert.NotNil(t, e)
}

func TestParsePrice(t *testing.T) {
	cases := map[string]int{
		"$372K":   372000,
		"372K":    372000,
		"$565000": 565000,
		"$372.5K": 372, // K expands to 000 by substitution, then truncates
	}

	for in, exp := range cases {
		v, e := ParsePrice(in)
		assert.Nil(t, e)
		x, ok := v.AsInt()
		assert.True(t, ok)
		assert.Equal(t, exp, x, in)
	}

	_, e := ParsePrice("n/a")
	assert.NotNil(t, e)
}

func TestMissingCell(t *testing.T) {
	assert.True(t, MissingCell(""))
	assert.True(t, MissingCell("  "))
	assert.True(t, MissingCell("NA"))
	assert.True(t, MissingCell("N/A"))
	assert.False(t, MissingCell("$372K"))
	assert.False(t, MissingCell("0"))
}

func TestValue(t *testing.T) {
	assert.True(t, NA().IsNA())
	assert.False(t, Some(0).IsNA())

	_, ok := NA().AsFloat()
	assert.False(t, ok)

	x, ok := Some(5.04).AsFloat()
	assert.True(t, ok)
	assert.Equal(t, 5.04, x)

	assert.Equal(t, "N/A", NA().String())
	assert.Equal(t, "5", Some(5).String())
}
