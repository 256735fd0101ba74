// Package renderer renders catalogs and resolved fields as markdown.
package renderer

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/etnz/fundamental"
	md "github.com/nao1215/markdown"
)

// CatalogMarkdown renders one row per field definition.
func CatalogMarkdown(c *fundamental.Catalog) string {
	var buf bytes.Buffer
	doc := md.NewMarkdown(&buf)

	doc.H1(fmt.Sprintf("Fields (%d)", c.Len()))
	table := md.TableSet{
		Alignment: []md.TableAlignment{
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
			md.AlignLeft,
		},
		Header: []string{"Name", "Stem", "Periods", "Unit", "Description"},
		Rows:   [][]string{},
	}
	for def := range c.Definitions() {
		codes := make([]string, 0, len(def.Periods()))
		for _, p := range def.Periods() {
			code := p.Code()
			if p == def.Default() {
				code = md.Bold(code)
			}
			codes = append(codes, code)
		}
		table.Rows = append(table.Rows, []string{
			def.Name(),
			md.Code(def.Stem()),
			strings.Join(codes, " "),
			string(def.Unit()),
			def.Description(),
		})
	}
	doc.Table(table)

	return doc.String()
}
