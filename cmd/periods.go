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

type periodsCmd struct {
	scopeFlags
	json bool
}

func (*periodsCmd) Name() string     { return "periods" }
func (*periodsCmd) Synopsis() string { return "print the values of a field for all its periods" }
func (*periodsCmd) Usage() string {
	return `fdq periods -id <id> [-on <date>] [-json] <field>

  Prints the value of every declared period of a field. Periods without
  data are shown as "-" in the table and omitted from the JSON output.
`
}

func (c *periodsCmd) SetFlags(f *flag.FlagSet) {
	c.scopeFlags.register(f)
	f.BoolVar(&c.json, "json", false, "print a JSON object keyed by period code")
}

func (c *periodsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() != 1 {
		fmt.Fprintln(os.Stderr, "Error: exactly one field name is required.")
		return subcommands.ExitUsageError
	}
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

	field, err := fundamental.NewSheet(a.catalog, a.store, scope, a.baseline).Field(f.Arg(0))
	if err != nil {
		return failure(err)
	}
	values, err := field.PeriodValues(ctx)
	if err != nil {
		return failure(err)
	}

	if c.json {
		data, err := json.Marshal(values)
		if err != nil {
			return failure(err)
		}
		fmt.Fprintln(stdout, string(data))
		return subcommands.ExitSuccess
	}

	value, err := field.Value(ctx)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.FieldMarkdown(field.Definition(), scope, value, values, c.currency))
	return subcommands.ExitSuccess
}
