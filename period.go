package fundamental

import (
	"fmt"
	"strings"
)

// Period is a reporting window, identified by a canonical short code ("1Y")
// and a long name ("OneYear"). The long name is the last segment of a storage
// path.
//
// The zero Period is not a valid period.
type Period int

const (
	OneMonth Period = iota + 1
	TwoMonths
	ThreeMonths
	SixMonths
	NineMonths
	TwelveMonths
	OneYear
	TwoYears
	ThreeYears
	FiveYears
	TenYears
)

// periods is the registry, in Period order.
var periods = [...]struct{ code, name string }{
	OneMonth:     {"1M", "OneMonth"},
	TwoMonths:    {"2M", "TwoMonths"},
	ThreeMonths:  {"3M", "ThreeMonths"},
	SixMonths:    {"6M", "SixMonths"},
	NineMonths:   {"9M", "NineMonths"},
	TwelveMonths: {"12M", "TwelveMonths"},
	OneYear:      {"1Y", "OneYear"},
	TwoYears:     {"2Y", "TwoYears"},
	ThreeYears:   {"3Y", "ThreeYears"},
	FiveYears:    {"5Y", "FiveYears"},
	TenYears:     {"10Y", "TenYears"},
}

// tokens maps lower cased codes and long names to their Period.
var tokens = func() map[string]Period {
	m := make(map[string]Period, 2*len(periods))
	for p := OneMonth; p <= TenYears; p++ {
		m[strings.ToLower(periods[p].code)] = p
		m[strings.ToLower(periods[p].name)] = p
	}
	return m
}()

// Periods returns all registered periods, shortest code first.
func Periods() []Period {
	all := make([]Period, 0, len(periods)-1)
	for p := OneMonth; p <= TenYears; p++ {
		all = append(all, p)
	}
	return all
}

// Valid reports whether p belongs to the registry.
func (p Period) Valid() bool { return p >= OneMonth && p <= TenYears }

// Code returns the canonical short code (e.g. "1Y").
func (p Period) Code() string {
	if !p.Valid() {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periods[p].code
}

// LongName returns the long form name (e.g. "OneYear").
func (p Period) LongName() string {
	if !p.Valid() {
		return fmt.Sprintf("Period(%d)", int(p))
	}
	return periods[p].name
}

// String returns the canonical code.
func (p Period) String() string { return p.Code() }

// ParsePeriod accepts either a short code or a long name, ignoring case and
// surrounding spaces.
func ParsePeriod(s string) (Period, error) {
	p, ok := tokens[strings.ToLower(strings.TrimSpace(s))]
	if !ok {
		return 0, fmt.Errorf("%w: %q", ErrInvalidPeriodToken, s)
	}
	return p, nil
}

// LongName translates a short code into its long name.
func LongName(code string) (string, error) {
	p, err := ParsePeriod(code)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(strings.TrimSpace(code), p.Code()) {
		return "", fmt.Errorf("%w: %q is not a period code", ErrInvalidPeriodToken, code)
	}
	return p.LongName(), nil
}

// Code translates a long name into its short code.
func Code(name string) (string, error) {
	p, err := ParsePeriod(name)
	if err != nil {
		return "", err
	}
	if !strings.EqualFold(strings.TrimSpace(name), p.LongName()) {
		return "", fmt.Errorf("%w: %q is not a period name", ErrInvalidPeriodToken, name)
	}
	return p.Code(), nil
}

// MarshalText implements encoding.TextMarshaler using the canonical code.
func (p Period) MarshalText() ([]byte, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("%w: %d", ErrInvalidPeriodToken, int(p))
	}
	return []byte(p.Code()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler, accepting either form.
func (p *Period) UnmarshalText(text []byte) error {
	v, err := ParsePeriod(string(text))
	if err != nil {
		return err
	}
	*p = v
	return nil
}
