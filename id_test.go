package fundamental

import "testing"

var (
	AAPL, _ = NewMSSI("US0378331005", "XNAS")
	VOW, _  = NewMSSI("DE0007664039", "XETR")
)

func TestValidateISIN(t *testing.T) {
	testCases := []struct {
		name      string
		isin      string
		expectErr bool
	}{
		{"Valid Apple ISIN", "US0378331005", false},
		{"Valid VW ISIN", "DE0007664039", false},
		{"Invalid Check Digit", "US0378331006", true},
		{"Invalid Length (Short)", "US123", true},
		{"Invalid Format (lowercase)", "us0378331005", true},
		{"Empty String", "", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateISIN(tc.isin)
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Errorf("ValidateISIN(%q) returned error: %v, want error: %v", tc.isin, err, tc.expectErr)
			}
		})
	}
}

func TestParseID(t *testing.T) {
	testCases := []struct {
		name      string
		id        string
		expectErr bool
	}{
		{"MSSI", "US0378331005.XNAS", false},
		{"MSSI with bad MIC", "US0378331005.XNA", true},
		{"MSSI with bad ISIN", "US0378331006.XNAS", true},
		{"Private", "My Private Fund", false},
		{"Private too short", "ABCDEF", true},
		{"Private with symbol", "Fund#1234", true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := ParseID(tc.id)
			if hasErr := err != nil; hasErr != tc.expectErr {
				t.Errorf("ParseID(%q) returned error: %v, want error: %v", tc.id, err, tc.expectErr)
			}
		})
	}
}

func TestMSSIParts(t *testing.T) {
	if AAPL.ISIN() != "US0378331005" || AAPL.MIC() != "XNAS" {
		t.Errorf("AAPL parts = (%q, %q), want (US0378331005, XNAS)", AAPL.ISIN(), AAPL.MIC())
	}
	if id := ID("My Private Fund"); id.ISIN() != "" || id.MIC() != "" {
		t.Errorf("private id parts = (%q, %q), want empty", id.ISIN(), id.MIC())
	}
}
