package renderer

import (
	"bytes"
	"fmt"
	"slices"

	"github.com/etnz/fundamental"
	md "github.com/nao1215/markdown"
)

// FieldMarkdown renders the values of a bound field, one row per declared
// period, the default period in bold. value is the field's Value, that is the
// default period's or the baseline's.
func FieldMarkdown(def *fundamental.Definition, scope fundamental.Scope, value fundamental.Value, values fundamental.PeriodValues, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("%s for %s on %s", def.Name(), scope.ID(), scope.On()))
	if desc := def.Description(); desc != "" {
		doc.PlainText(md.Italic(desc))
	}
	doc.PlainText(fmt.Sprintf("Value: %s", md.Bold(formatOptional(value, def.Unit(), currency))))

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Period", "Path", "Value"},
		Rows:   [][]string{},
	}
	for _, p := range def.Periods() {
		code := p.Code()
		if p == def.Default() {
			code = md.Bold(code)
		}
		table.Rows = append(table.Rows, []string{
			code,
			md.Code(def.Path(p)),
			formatOptional(values.Value(p), def.Unit(), currency),
		})
	}
	doc.Table(table)

	return doc.String()
}

// ExportMarkdown renders an exported sheet, one row per present (field,
// period) pair, fields sorted by stem.
func ExportMarkdown(c *fundamental.Catalog, scope fundamental.Scope, export map[string]fundamental.PeriodValues, currency string) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Fundamentals for %s on %s", scope.ID(), scope.On()))

	stems := make([]string, 0, len(export))
	for stem := range export {
		stems = append(stems, stem)
	}
	slices.Sort(stems)

	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignRight,
		},
		Header: []string{"Field", "Period", "Value"},
		Rows:   [][]string{},
	}
	for _, stem := range stems {
		unit := fundamental.Ratio
		name := stem
		if def, err := c.Lookup(stem); err == nil {
			unit = def.Unit()
			name = def.Name()
		}
		values := export[stem]
		for _, p := range values.Periods() {
			table.Rows = append(table.Rows, []string{
				name,
				p.Code(),
				formatValue(values[p], unit, currency),
			})
		}
	}
	doc.Table(table)

	return doc.String()
}
