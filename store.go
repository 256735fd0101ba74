package fundamental

import (
	"context"
	"fmt"
	"regexp"

	"github.com/etnz/fundamental/date"
)

// pathRegex matches dotted paths of at least two identifier segments,
// e.g. "OperationRatios.PaymentTurnover.OneYear".
var pathRegex = regexp.MustCompile(`^[A-Za-z][A-Za-z0-9_]*(\.[A-Za-z][A-Za-z0-9_]*)+$`)

// Store is a point-in-time source of fundamental values.
//
// Get returns the value of path for instrument id as known on date on. "No
// data" is reported as (Absent, nil), never as an error. Errors are reserved
// for malformed paths (ErrInvalidPath) and for a store that cannot answer
// (ErrStoreUnavailable).
//
// Implementations must be safe for concurrent use.
type Store interface {
	Get(ctx context.Context, on date.Date, id ID, path string) (Value, error)
}

// StoreFunc adapts an ordinary function to the Store interface.
type StoreFunc func(ctx context.Context, on date.Date, id ID, path string) (Value, error)

// Get calls f(ctx, on, id, path).
func (f StoreFunc) Get(ctx context.Context, on date.Date, id ID, path string) (Value, error) {
	return f(ctx, on, id, path)
}

// ValidatePath returns ErrInvalidPath if path is not a dotted path.
func ValidatePath(path string) error {
	if !pathRegex.MatchString(path) {
		return fmt.Errorf("%w: %q", ErrInvalidPath, path)
	}
	return nil
}
