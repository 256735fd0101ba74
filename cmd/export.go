package cmd

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/renderer"
	"github.com/google/subcommands"
)

type exportCmd struct {
	scopeFlags
	json bool
}

func (*exportCmd) Name() string     { return "export" }
func (*exportCmd) Synopsis() string { return "print all the fields of an instrument" }
func (*exportCmd) Usage() string {
	return `fdq export -id <id> [-on <date>] [-json]

  Prints the values of all the fields of the catalog for an instrument as
  known on a date. Fields without any data are omitted.
`
}

func (c *exportCmd) SetFlags(f *flag.FlagSet) {
	c.scopeFlags.register(f)
	f.BoolVar(&c.json, "json", false, "print a JSON object keyed by field stem")
}

func (c *exportCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	scope, err := c.scope()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}

	a, err := openApp(ctx)
	if err != nil {
		return failure(err)
	}
	defer a.close()

	export, err := fundamental.NewSheet(a.catalog, a.store, scope, a.baseline).Export(ctx)
	if err != nil {
		return failure(err)
	}

	if c.json {
		data, err := json.MarshalIndent(export, "", "  ")
		if err != nil {
			return failure(err)
		}
		fmt.Fprintln(stdout, string(data))
		return subcommands.ExitSuccess
	}
	printMarkdown(renderer.ExportMarkdown(a.catalog, scope, export, c.currency))
	return subcommands.ExitSuccess
}
