package fundamental

import (
	"fmt"
	"slices"
	"strings"
)

// Unit describes how a field's scalar should be read.
type Unit string

const (
	Ratio   Unit = "ratio"   // dimensionless, e.g. a turnover
	Percent Unit = "percent" // a fraction, 0.12 is 12%
	Amount  Unit = "amount"  // an amount in the instrument's reporting currency
)

// Definition is the static metadata of a multi-period field: where its values
// live in a Store and which reporting periods it declares.
//
// A Definition is immutable once created and can be shared freely.
type Definition struct {
	stem        string
	periods     []Period
	def         Period
	unit        Unit
	description string
}

// NewDefinition validates and returns a definition.
//
// stem is the dotted path prefix ("OperationRatios.PaymentTurnover"); each
// period long name is appended to it to build a storage path. periods are kept
// in declaration order and must contain def.
func NewDefinition(stem string, def Period, periods []Period, unit Unit, description string) (*Definition, error) {
	if err := ValidatePath(stem); err != nil {
		return nil, fmt.Errorf("%w: stem: %w", ErrInvalidDefinition, err)
	}
	if len(periods) == 0 {
		return nil, fmt.Errorf("%w: %s declares no period", ErrInvalidDefinition, stem)
	}
	for i, p := range periods {
		if !p.Valid() {
			return nil, fmt.Errorf("%w: %s declares an unknown period %d", ErrInvalidDefinition, stem, int(p))
		}
		if slices.Contains(periods[:i], p) {
			return nil, fmt.Errorf("%w: %s declares period %s twice", ErrInvalidDefinition, stem, p)
		}
	}
	if !slices.Contains(periods, def) {
		return nil, fmt.Errorf("%w: %s default period %s is not declared", ErrInvalidDefinition, stem, def)
	}
	if unit == "" {
		unit = Ratio
	}
	return &Definition{
		stem:        stem,
		periods:     slices.Clone(periods),
		def:         def,
		unit:        unit,
		description: description,
	}, nil
}

// MustDefinition is like NewDefinition but panics on error.
func MustDefinition(stem string, def Period, periods []Period, unit Unit, description string) *Definition {
	d, err := NewDefinition(stem, def, periods, unit, description)
	if err != nil {
		panic(err)
	}
	return d
}

// Name returns the last segment of the stem, e.g. "PaymentTurnover".
func (d *Definition) Name() string { return d.stem[strings.LastIndexByte(d.stem, '.')+1:] }

// Stem returns the dotted path prefix.
func (d *Definition) Stem() string { return d.stem }

// Default returns the default period.
func (d *Definition) Default() Period { return d.def }

// Periods returns a copy of the declared periods, in declaration order.
func (d *Definition) Periods() []Period { return slices.Clone(d.periods) }

// Supports reports whether p is declared.
func (d *Definition) Supports(p Period) bool { return slices.Contains(d.periods, p) }

func (d *Definition) Unit() Unit          { return d.unit }
func (d *Definition) Description() string { return d.description }

// Path returns the storage path of period p, e.g. "OperationRatios.PaymentTurnover.OneYear".
func (d *Definition) Path(p Period) string { return d.stem + "." + p.LongName() }

func (d *Definition) String() string { return d.stem }
