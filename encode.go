package fundamental

import (
	"bytes"
	"encoding/json"
	"slices"

	"github.com/shopspring/decimal"
)

// PeriodValues maps periods to their present values. Absent periods are never
// keys of the map.
type PeriodValues map[Period]decimal.Decimal

// Value returns the value of p, Absent if p is not in the map.
func (m PeriodValues) Value(p Period) Value {
	d, ok := m[p]
	if !ok {
		return Absent()
	}
	return V(d)
}

// Periods returns the keys, shortest period first.
func (m PeriodValues) Periods() []Period {
	periods := make([]Period, 0, len(m))
	for p := range m {
		periods = append(periods, p)
	}
	slices.Sort(periods)
	return periods
}

// MarshalJSON encodes the map as an object keyed by canonical period code,
// with numbers as plain JSON numbers: {"6M":1.1,"1Y":4.2}.
func (m PeriodValues) MarshalJSON() ([]byte, error) {
	// json encoding of decimal.Decimal quotes numbers, and of maps sorts keys
	// alphabetically; both are done by hand.
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, p := range m.Periods() {
		if i > 0 {
			buf.WriteByte(',')
		}
		key, err := json.Marshal(p.Code())
		if err != nil {
			return nil, err
		}
		buf.Write(key)
		buf.WriteByte(':')
		buf.WriteString(m[p].String())
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

var _ json.Marshaler = PeriodValues(nil)
