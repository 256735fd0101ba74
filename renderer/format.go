package renderer

import (
	"github.com/Rhymond/go-money"
	"github.com/etnz/fundamental"
	"github.com/shopspring/decimal"
)

// formatValue formats d according to unit. Amounts are formatted in currency,
// or as plain decimals if currency is empty. Percents are fractions: 0.153 is
// formatted as "15.30%".
func formatValue(d decimal.Decimal, unit fundamental.Unit, currency string) string {
	switch unit {
	case fundamental.Amount:
		if currency == "" {
			return d.String()
		}
		return formatMoney(d, currency)
	case fundamental.Percent:
		return d.Shift(2).StringFixed(2) + "%"
	default:
		return d.String()
	}
}

// formatMoney formats d in the currency's own format, e.g. "$1,234.50".
func formatMoney(d decimal.Decimal, currency string) string {
	// to get a never nil currency I need to call the Money constructor
	cur := *money.New(0, currency).Currency()
	minor := d.Shift(int32(cur.Fraction)).Round(0)
	return cur.Formatter().Format(minor.IntPart())
}

// formatOptional formats v, or "-" when Absent.
func formatOptional(v fundamental.Value, unit fundamental.Unit, currency string) string {
	d, ok := v.Decimal()
	if !ok {
		return "-"
	}
	return formatValue(d, unit, currency)
}
