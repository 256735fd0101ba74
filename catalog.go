package fundamental

import (
	"fmt"
	"io"
	"iter"
	"slices"
	"strings"

	"github.com/BurntSushi/toml"
)

// Catalog is an immutable table of field definitions, indexed by stem and by
// short name.
type Catalog struct {
	defs  []*Definition
	stems map[string]*Definition
	names map[string][]*Definition
}

// NewCatalog returns a catalog of defs. Stems must be unique.
func NewCatalog(defs ...*Definition) (*Catalog, error) {
	c := &Catalog{
		defs:  make([]*Definition, 0, len(defs)),
		stems: make(map[string]*Definition, len(defs)),
		names: make(map[string][]*Definition, len(defs)),
	}
	for _, d := range defs {
		if _, exists := c.stems[d.Stem()]; exists {
			return nil, fmt.Errorf("%w: %s is defined twice", ErrInvalidDefinition, d.Stem())
		}
		c.defs = append(c.defs, d)
		c.stems[d.Stem()] = d
		c.names[d.Name()] = append(c.names[d.Name()], d)
	}
	return c, nil
}

// Len returns the number of definitions.
func (c *Catalog) Len() int { return len(c.defs) }

// Definitions iterates over the definitions in declaration order.
func (c *Catalog) Definitions() iter.Seq[*Definition] { return slices.Values(c.defs) }

// Lookup returns the definition for a full stem ("OperationRatios.PaymentTurnover")
// or for an unambiguous short name ("PaymentTurnover").
func (c *Catalog) Lookup(name string) (*Definition, error) {
	if d, ok := c.stems[name]; ok {
		return d, nil
	}
	switch matches := c.names[name]; len(matches) {
	case 0:
		return nil, fmt.Errorf("%w: %q", ErrUnknownField, name)
	case 1:
		return matches[0], nil
	default:
		stems := make([]string, 0, len(matches))
		for _, d := range matches {
			stems = append(stems, d.Stem())
		}
		return nil, fmt.Errorf("%w: %q is ambiguous, use one of %s", ErrUnknownField, name, strings.Join(stems, ", "))
	}
}

// DecodeCatalog reads a catalog from its TOML representation:
//
//	[[field]]
//	stem = "OperationRatios.PaymentTurnover"
//	periods = ["1Y", "3M", "6M"]
//	default = "OneYear"
//	unit = "ratio"
//	description = "Cost of Goods Sold / Average Accounts Payables"
//
// Periods accept either codes or long names.
func DecodeCatalog(r io.Reader) (*Catalog, error) {
	var file struct {
		Field []struct {
			Stem        string   `toml:"stem"`
			Periods     []Period `toml:"periods"`
			Default     Period   `toml:"default"`
			Unit        Unit     `toml:"unit"`
			Description string   `toml:"description"`
		} `toml:"field"`
	}
	md, err := toml.NewDecoder(r).Decode(&file)
	if err != nil {
		return nil, fmt.Errorf("catalog: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("catalog: unknown key %q", undecoded[0].String())
	}

	defs := make([]*Definition, 0, len(file.Field))
	for i, f := range file.Field {
		switch f.Unit {
		case "", Ratio, Percent, Amount:
		default:
			return nil, fmt.Errorf("catalog: field #%d %s: unknown unit %q", i+1, f.Stem, f.Unit)
		}
		d, err := NewDefinition(f.Stem, f.Default, f.Periods, f.Unit, f.Description)
		if err != nil {
			return nil, fmt.Errorf("catalog: field #%d: %w", i+1, err)
		}
		defs = append(defs, d)
	}
	return NewCatalog(defs...)
}
