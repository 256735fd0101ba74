package cmd

import (
	"flag"
	"fmt"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/date"
)

// scopeFlags are the flags shared by the commands that query one instrument
// on one day.
type scopeFlags struct {
	on       string
	id       string
	currency string
}

func (s *scopeFlags) register(f *flag.FlagSet) {
	f.StringVar(&s.on, "on", date.Today().String(), "evaluation date (YYYY-MM-DD)")
	f.StringVar(&s.id, "id", "", "instrument identifier (ISIN.MIC or private id)")
	f.StringVar(&s.currency, "currency", "", "currency used to format amounts, plain numbers if empty")
}

// scope returns the Scope selected by the flags.
func (s *scopeFlags) scope() (fundamental.Scope, error) {
	on, err := date.Parse(s.on)
	if err != nil {
		return fundamental.Scope{}, fmt.Errorf("invalid -on date: %w", err)
	}
	if s.id == "" {
		return fundamental.Scope{}, fmt.Errorf("-id is required")
	}
	id, err := fundamental.ParseID(s.id)
	if err != nil {
		return fundamental.Scope{}, fmt.Errorf("invalid -id: %w", err)
	}
	return fundamental.NewScope(on, id), nil
}
