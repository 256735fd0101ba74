package fundamental

import (
	"errors"
	"testing"
)

func TestParsePeriod(t *testing.T) {
	testCases := []struct {
		input   string
		want    Period
		wantErr bool
	}{
		{"1Y", OneYear, false},
		{"OneYear", OneYear, false},
		{"oneyear", OneYear, false},
		{" 3m ", ThreeMonths, false},
		{"SixMonths", SixMonths, false},
		{"12M", TwelveMonths, false},
		{"10Y", TenYears, false},
		{"4M", 0, true},
		{"Yearly", 0, true},
		{"", 0, true},
	}
	for _, tc := range testCases {
		t.Run(tc.input, func(t *testing.T) {
			got, err := ParsePeriod(tc.input)
			if (err != nil) != tc.wantErr {
				t.Fatalf("ParsePeriod(%q) error = %v, wantErr %v", tc.input, err, tc.wantErr)
			}
			if err != nil && !errors.Is(err, ErrInvalidPeriodToken) {
				t.Errorf("ParsePeriod(%q) error = %v, want ErrInvalidPeriodToken", tc.input, err)
			}
			if got != tc.want {
				t.Errorf("ParsePeriod(%q) = %v, want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestPeriodRoundTrip(t *testing.T) {
	for _, p := range Periods() {
		name, err := LongName(p.Code())
		if err != nil {
			t.Fatalf("LongName(%q) unexpected error: %v", p.Code(), err)
		}
		code, err := Code(name)
		if err != nil {
			t.Fatalf("Code(%q) unexpected error: %v", name, err)
		}
		if code != p.Code() || name != p.LongName() {
			t.Errorf("round trip %v: got (%q, %q), want (%q, %q)", p, code, name, p.Code(), p.LongName())
		}
	}
}

func TestLongNameRejectsNames(t *testing.T) {
	if _, err := LongName("OneYear"); !errors.Is(err, ErrInvalidPeriodToken) {
		t.Errorf("LongName(OneYear) error = %v, want ErrInvalidPeriodToken", err)
	}
	if _, err := Code("1Y"); !errors.Is(err, ErrInvalidPeriodToken) {
		t.Errorf("Code(1Y) error = %v, want ErrInvalidPeriodToken", err)
	}
}

func TestPeriodText(t *testing.T) {
	var p Period
	if err := p.UnmarshalText([]byte("NineMonths")); err != nil {
		t.Fatalf("UnmarshalText() unexpected error: %v", err)
	}
	text, err := p.MarshalText()
	if err != nil {
		t.Fatalf("MarshalText() unexpected error: %v", err)
	}
	if string(text) != "9M" {
		t.Errorf("MarshalText() = %q, want %q", text, "9M")
	}
	if _, err := Period(0).MarshalText(); err == nil {
		t.Errorf("Period(0).MarshalText() expected an error")
	}
}
