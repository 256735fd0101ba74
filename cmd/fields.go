package cmd

import (
	"context"
	"flag"

	"github.com/etnz/fundamental/renderer"
	"github.com/google/subcommands"
)

type fieldsCmd struct{}

func (*fieldsCmd) Name() string     { return "fields" }
func (*fieldsCmd) Synopsis() string { return "list the fields of the catalog" }
func (*fieldsCmd) Usage() string {
	return `fdq fields

  Lists the fields of the configured catalog with their declared periods.
  The default period of each field is in bold.
`
}

func (c *fieldsCmd) SetFlags(f *flag.FlagSet) {}

func (c *fieldsCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	cfg, err := loadConfig()
	if err != nil {
		return failure(err)
	}
	catalog, err := openCatalog(cfg)
	if err != nil {
		return failure(err)
	}
	printMarkdown(renderer.CatalogMarkdown(catalog))
	return subcommands.ExitSuccess
}
