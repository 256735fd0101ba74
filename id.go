package fundamental

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// isinRegex checks for the basic structure: 2 letters, 9 alphanumeric, 1 digit.
var isinRegex = regexp.MustCompile(`^[A-Z]{2}[A-Z0-9]{9}[0-9]$`)

// micRegex checks for the format: 4 uppercase alphanumeric characters.
var micRegex = regexp.MustCompile(`^[A-Z0-9]{4}$`)

// idCharRegex checks for alphanumeric characters and space, used in private IDs.
var idCharRegex = regexp.MustCompile(`^[a-zA-Z0-9 ]+$`)

// ID identifies the instrument a fundamental value belongs to.
//
// It is either an MSSI (Market-Specific Security Identifier), the concatenation
// of an ISIN (ISO 6166) and a MIC (ISO 10383) separated by a '.', or a private
// identifier.
//
// Private identifiers are at least 7 characters long, only contain
// alphanumeric characters and spaces, and never contain a '.', so that they
// cannot be mistaken for an MSSI.
type ID string

// NewMSSI creates a new MSSI from its constituent parts after validation.
func NewMSSI(isin, mic string) (ID, error) {
	if err := ValidateISIN(isin); err != nil {
		return "", fmt.Errorf("invalid ISIN: %w", err)
	}
	if err := ValidateMIC(mic); err != nil {
		return "", fmt.Errorf("invalid MIC: %w", err)
	}
	return ID(isin + "." + mic), nil
}

// NewPrivate validates that a string is a valid private ID.
func NewPrivate(s string) (ID, error) {
	if len(s) < 7 {
		return "", fmt.Errorf("invalid id: must be at least 7 characters long, got %d", len(s))
	}
	if strings.Contains(s, ".") {
		return "", fmt.Errorf("invalid id: must not contain a '.' (resembles an MSSI)")
	}
	if !idCharRegex.MatchString(s) {
		return "", fmt.Errorf("invalid id: must only contain alphanumeric characters and spaces")
	}
	return ID(s), nil
}

// ParseID accepts an MSSI or a private identifier.
func ParseID(s string) (ID, error) {
	id := ID(s)
	if strings.Contains(s, ".") {
		if _, _, err := id.MSSI(); err != nil {
			return "", err
		}
		return id, nil
	}
	return NewPrivate(s)
}

// ValidateISIN checks if a string is a validly formatted ISIN, check digit included.
func ValidateISIN(isin string) error {
	if len(isin) != 12 {
		return fmt.Errorf("invalid length: must be 12 characters, got %d", len(isin))
	}
	if !isinRegex.MatchString(isin) {
		return fmt.Errorf("invalid format: must be 2 uppercase letters, 9 alphanumeric chars, and 1 digit")
	}

	// Letters expand to two digits (A=10 ... Z=35) before the Luhn checksum.
	var digits strings.Builder
	for _, char := range isin[:11] {
		if char >= 'A' && char <= 'Z' {
			digits.WriteString(strconv.Itoa(int(char - 'A' + 10)))
		} else {
			digits.WriteRune(char)
		}
	}

	sum := 0
	double := true
	s := digits.String()
	for i := len(s) - 1; i >= 0; i-- {
		digit := int(s[i] - '0')
		if double {
			digit *= 2
		}
		sum += digit/10 + digit%10
		double = !double
	}

	want := (10 - sum%10) % 10
	got := int(isin[11] - '0')
	if want != got {
		return fmt.Errorf("invalid check digit: expected %d, got %d", want, got)
	}
	return nil
}

// ValidateMIC checks if a string conforms to the MIC (ISO 10383) format.
// It validates the format only, not whether the MIC is officially registered.
func ValidateMIC(mic string) error {
	if len(mic) != 4 {
		return fmt.Errorf("invalid length: must be 4 characters, got %d", len(mic))
	}
	if !micRegex.MatchString(mic) {
		return fmt.Errorf("invalid format: must be 4 uppercase alphanumeric characters")
	}
	return nil
}

// MSSI validates the "ISIN.MIC" format and returns both components.
func (id ID) MSSI() (isin string, mic string, err error) {
	parts := strings.Split(string(id), ".")
	if len(parts) != 2 {
		return "", "", fmt.Errorf("invalid format: MSSI must contain exactly one '.', got %q", id)
	}
	isin, mic = parts[0], parts[1]
	if err := ValidateISIN(isin); err != nil {
		return "", "", fmt.Errorf("invalid ISIN part: %w", err)
	}
	if err := ValidateMIC(mic); err != nil {
		return "", "", fmt.Errorf("invalid MIC part: %w", err)
	}
	return isin, mic, nil
}

// ISIN returns the ISIN part of the identifier or an empty string if the ID is not an MSSI.
func (id ID) ISIN() string {
	isin, _, _ := id.MSSI()
	return isin
}

// MIC returns the Market Identifier Code part of the identifier or an empty string if the ID is not an MSSI.
func (id ID) MIC() string {
	_, mic, _ := id.MSSI()
	return mic
}

// String implements the fmt.Stringer interface.
func (id ID) String() string { return string(id) }
