package regionstats

import (
	"fmt"
	"strconv"
	"strings"
)

// Value is an optional numeric. Every stage of the pipeline carries the
// same representation so that a missing cell, an unparsable cell and an
// absent region all flow through ranking and blurb generation as "N/A".
type Value struct {
	x  float64
	ok bool
}

func Some(x float64) Value {
	return Value{x: x, ok: true}
}

func NA() Value {
	return Value{}
}

func (v Value) IsNA() bool {
	return !v.ok
}

// AsFloat returns the value and whether it is present.
func (v Value) AsFloat() (float64, bool) {
	return v.x, v.ok
}

// AsInt truncates toward zero.
func (v Value) AsInt() (int, bool) {
	return int(v.x), v.ok
}

func (v Value) String() string {
	if !v.ok {
		return "N/A"
	}

	return strconv.FormatFloat(v.x, 'f', -1, 64)
}

// MissingCell reports whether a raw cell counts as missing: empty or an
// NA sentinel.
func MissingCell(s string) bool {
	switch strings.TrimSpace(s) {
	case "", "NA", "N/A", "NaN":
		return true
	}

	return false
}

// ParseNumber parses a cell after stripping thousands separators.
func ParseNumber(s string) (Value, error) {
	clean := strings.ReplaceAll(strings.TrimSpace(s), ",", "")
	if clean == "" {
		return NA(), fmt.Errorf("empty cell")
	}

	x, e := strconv.ParseFloat(clean, 64)
	if e != nil {
		return NA(), fmt.Errorf("cannot parse %q as a number", s)
	}

	return Some(x), nil
}

// ParsePrice parses a sale-price cell. A leading "$" is dropped and a
// trailing "K" expands to "000" before parsing; the result is truncated
// to a whole dollar amount.
func ParsePrice(s string) (Value, error) {
	clean := strings.TrimSpace(s)
	clean = strings.ReplaceAll(clean, "$", "")
	clean = strings.ReplaceAll(clean, "K", "000")

	v, e := ParseNumber(clean)
	if e != nil {
		return NA(), fmt.Errorf("cannot parse %q as a price", s)
	}

	x, _ := v.AsFloat()

	return Some(float64(int(x))), nil
}
