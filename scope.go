package fundamental

import (
	"fmt"

	"github.com/etnz/fundamental/date"
)

// Scope is the point-in-time context of a query: the evaluation date and the
// instrument. Only data known on that date is visible to the query.
type Scope struct {
	on date.Date
	id ID
}

// NewScope returns the scope of instrument id evaluated on date on.
func NewScope(on date.Date, id ID) Scope { return Scope{on: on, id: id} }

// On returns the evaluation date.
func (s Scope) On() date.Date { return s.on }

// ID returns the instrument identifier.
func (s Scope) ID() ID { return s.id }

func (s Scope) String() string { return fmt.Sprintf("%s@%s", s.id, s.on) }
