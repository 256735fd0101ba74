package cmd

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/jsonl"
	"github.com/etnz/fundamental/postgres"
	"github.com/google/subcommands"
)

type importCmd struct{}

func (*importCmd) Name() string     { return "import" }
func (*importCmd) Synopsis() string { return "import observations into the store" }
func (*importCmd) Usage() string {
	return `fdq import <file.jsonl>...

  Imports observations from JSONL files into the configured store.
  Each line holds the values published for one instrument on one day:

  { "on":"2024-03-31", "id":"US0378331005.XNAS", "OperationRatios.PaymentTurnover.OneYear":4.2 }

  Existing observations for the same day, instrument and path are replaced.
  Only the jsonl and postgres backends can be written to.
`
}

func (c *importCmd) SetFlags(f *flag.FlagSet) {}

func (c *importCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if f.NArg() == 0 {
		fmt.Fprintln(os.Stderr, "Error: at least one file is required.")
		return subcommands.ExitUsageError
	}
	cfg, err := loadConfig()
	if err != nil {
		return failure(err)
	}

	incoming := fundamental.NewMemoryStore()
	for _, name := range f.Args() {
		if err := decodeFile(incoming, name); err != nil {
			return failure(err)
		}
	}

	switch strings.ToLower(cfg.Store.Backend) {
	case "jsonl":
		store, err := jsonl.Load(cfg.JSONL.Folder)
		if err != nil {
			return failure(err)
		}
		for _, o := range incoming.Observations() {
			if err := store.Put(o); err != nil {
				return failure(err)
			}
		}
		if err := jsonl.Persist(cfg.JSONL.Folder, store); err != nil {
			return failure(err)
		}
	case "postgres":
		pg, err := postgres.New(ctx, postgresConfig(cfg))
		if err != nil {
			return failure(err)
		}
		defer pg.Close()
		if cfg.Postgres.RunMigrations {
			if err := pg.Migrate(ctx); err != nil {
				return failure(err)
			}
		}
		if err := pg.Import(ctx, incoming.Observations()); err != nil {
			return failure(err)
		}
	default:
		fmt.Fprintf(os.Stderr, "Error: the %q backend is read only.\n", cfg.Store.Backend)
		return subcommands.ExitFailure
	}

	slog.Info("import", "files", f.NArg(), "observations", incoming.Len())
	fmt.Fprintf(stdout, "Successfully imported %d observations.\n", incoming.Len())
	return subcommands.ExitSuccess
}

func decodeFile(store *fundamental.MemoryStore, name string) error {
	r, err := os.Open(name)
	if err != nil {
		return fmt.Errorf("cannot open %q for reading: %w", name, err)
	}
	defer r.Close()
	return jsonl.Decode(store, name, r)
}
