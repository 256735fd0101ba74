package fundamental

import "errors"

var (
	// ErrInvalidPeriodToken is returned when a period matches neither a known code nor a long name.
	ErrInvalidPeriodToken = errors.New("invalid period token")
	// ErrUnsupportedPeriod is returned when a field is queried for a period it does not declare.
	ErrUnsupportedPeriod = errors.New("unsupported period")
	// ErrStoreUnavailable wraps any failure of a Store to answer. It never means "no data".
	ErrStoreUnavailable = errors.New("store unavailable")
	// ErrInvalidPath is returned for a malformed dotted storage path.
	ErrInvalidPath = errors.New("invalid path")
	// ErrUnknownField is returned when a catalog has no definition for a name.
	ErrUnknownField = errors.New("unknown field")
	// ErrInvalidDefinition is returned when a field definition breaks its invariants.
	ErrInvalidDefinition = errors.New("invalid definition")
)
