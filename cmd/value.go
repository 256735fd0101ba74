package cmd

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/etnz/fundamental"
	"github.com/google/subcommands"
)

type valueCmd struct {
	scopeFlags
	period string
}

func (*valueCmd) Name() string     { return "value" }
func (*valueCmd) Synopsis() string { return "print the value of a field" }
func (*valueCmd) Usage() string {
	return `fdq value -id <id> [-on <date>] [-period <period>] <field>

  Prints the value of a field for an instrument as known on a date.
  Without -period, the value of the default period is printed, or the
  baseline if it has none. "n/a" is printed when there is no data.

Usage Examples:
$ fdq value -id US0378331005.XNAS -on 2024-03-31 PaymentTurnover
$ fdq value -id US0378331005.XNAS -period 6M PaymentTurnover
`
}

func (c *valueCmd) SetFlags(f *flag.FlagSet) {
	c.scopeFlags.register(f)
	f.StringVar(&c.period, "period", "", "period code or long name (e.g. 6M or SixMonths)")
}

func (c *valueCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
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

	var v fundamental.Value
	if c.period == "" {
		v, err = field.Value(ctx)
	} else {
		v, err = field.PeriodValue(ctx, c.period)
	}
	if err != nil {
		return failure(err)
	}
	fmt.Fprintln(stdout, v)
	return subcommands.ExitSuccess
}
