// ABOUTME: Numeric value type for the arithmetic evaluator
// ABOUTME: Exact big integers or float64, rendered as shortest round-trip decimal text
package mathexpr

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Value is either an exact integer or a float
type Value struct {
	i *big.Int
	f float64
}

func intValue(i *big.Int) Value {
	return Value{i: i}
}

func floatValue(f float64) Value {
	return Value{f: f}
}

func (v Value) isInt() bool {
	return v.i != nil
}

// IsInt reports whether v holds an exact integer
func (v Value) IsInt() bool {
	return v.isInt()
}

// Float64 returns v as a float64, which may lose precision for large integers
func (v Value) Float64() float64 {
	if v.isInt() {
		f, _ := new(big.Float).SetInt(v.i).Float64()
		return f
	}
	return v.f
}

func (v Value) float() (float64, error) {
	if !v.isInt() {
		return v.f, nil
	}
	f := v.Float64()
	if math.IsInf(f, 0) {
		return 0, ErrIntTooLarge
	}
	return f, nil
}

// String renders integers exactly and floats with the shortest round-tripping
// form, switching to exponent notation outside 1e-4 <= |f| < 1e16.
func (v Value) String() string {
	if v.isInt() {
		return v.i.String()
	}
	return formatFloat(v.f)
}

func formatFloat(f float64) string {
	switch {
	case math.IsNaN(f):
		return "nan"
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	}

	sci := strconv.FormatFloat(f, 'e', -1, 64)
	exp, err := strconv.Atoi(sci[strings.IndexByte(sci, 'e')+1:])
	if err == nil && (exp < -4 || exp >= 16) {
		return sci
	}

	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsRune(s, '.') {
		s += ".0"
	}
	return s
}
