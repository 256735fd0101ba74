package fundamental

import (
	"github.com/shopspring/decimal"
)

// Value is the result of resolving a path: either a present scalar or Absent.
//
// The zero Value is Absent. No scalar is reserved to mean "missing", so a
// present zero is distinct from Absent.
type Value struct {
	value   decimal.Decimal
	present bool
}

// Absent returns the explicit "no data" result. Test a Value with Present
// rather than comparing it with Absent.
func Absent() Value { return Value{} }

// V returns a present Value.
func V[T float32 | float64 | int | int32 | int64 | decimal.Decimal](value T) Value {
	var d decimal.Decimal
	switch v := any(value).(type) {
	case decimal.Decimal:
		d = v
	case float32:
		d = decimal.NewFromFloat32(v)
	case float64:
		d = decimal.NewFromFloat(v)
	case int:
		d = decimal.NewFromInt(int64(v))
	case int32:
		d = decimal.NewFromInt32(v)
	case int64:
		d = decimal.NewFromInt(v)
	}
	return Value{value: d, present: true}
}

// Present reports whether the value holds a scalar.
func (v Value) Present() bool { return v.present }

// Decimal returns the scalar and true, or zero and false when Absent.
func (v Value) Decimal() (decimal.Decimal, bool) { return v.value, v.present }

// Float64 returns the scalar as a float64 and true, or zero and false when Absent.
func (v Value) Float64() (float64, bool) {
	if !v.present {
		return 0, false
	}
	return v.value.InexactFloat64(), true
}

// Or returns the scalar, or fallback when Absent.
func (v Value) Or(fallback decimal.Decimal) decimal.Decimal {
	if !v.present {
		return fallback
	}
	return v.value
}

// Equal reports whether both values are Absent, or both present and numerically equal.
func (v Value) Equal(w Value) bool {
	if v.present != w.present {
		return false
	}
	return !v.present || v.value.Equal(w.value)
}

// String returns the decimal representation, or "n/a" when Absent.
func (v Value) String() string {
	if !v.present {
		return "n/a"
	}
	return v.value.String()
}
