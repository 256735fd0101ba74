// Package cmd implements the CLI application to query fundamentals.
package cmd

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/etnz/fundamental"
	"github.com/etnz/fundamental/config"
	"github.com/etnz/fundamental/jsonl"
	"github.com/etnz/fundamental/postgres"
	"github.com/etnz/fundamental/redis"
	"github.com/etnz/fundamental/remote"
	"github.com/etnz/fundamental/s3archive"
	"github.com/google/subcommands"
)

// Register the subcommands.
// A main package will call Register() to allow subcommands, and Execute() on the user-selected one.
func Register(c *subcommands.Commander) {
	c.Register(&fieldsCmd{}, "query")
	c.Register(&valueCmd{}, "query")
	c.Register(&periodsCmd{}, "query")
	c.Register(&exportCmd{}, "query")

	c.Register(&importCmd{}, "store")
}

// as a CLI application, it has a very short lived lifecycle, so it is ok to use global variables.

var configFile = flag.String("config", "", "Path to the TOML configuration file")
var rawOutput = flag.Bool("raw", false, "Print markdown as is, without terminal rendering")

// stdout is where commands print their results.
var stdout io.Writer = os.Stdout

// app holds what a command needs to answer queries.
type app struct {
	cfg      *config.Config
	catalog  *fundamental.Catalog
	baseline fundamental.Baseline
	store    fundamental.Store
	close    func()
}

// openApp loads the configuration, sets up logging and opens the configured
// catalog and store. The caller must call app.close.
func openApp(ctx context.Context) (*app, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	catalog, err := openCatalog(cfg)
	if err != nil {
		return nil, err
	}
	baseline, err := fundamental.ParseBaseline(cfg.Baseline)
	if err != nil {
		return nil, err
	}
	store, closeFn, err := openStore(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &app{cfg: cfg, catalog: catalog, baseline: baseline, store: store, close: closeFn}, nil
}

// loadConfig loads and validates the configuration, and sets up logging.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(*configFile)
	if err != nil {
		return nil, fmt.Errorf("cannot load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.SetDefault(slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.Level()})))
	return cfg, nil
}

// openCatalog returns the configured catalog, or the builtin one.
func openCatalog(cfg *config.Config) (*fundamental.Catalog, error) {
	if cfg.Catalog == "" {
		return fundamental.Builtin(), nil
	}
	f, err := os.Open(cfg.Catalog)
	if err != nil {
		return nil, fmt.Errorf("cannot open catalog: %w", err)
	}
	defer f.Close()
	c, err := fundamental.DecodeCatalog(f)
	if err != nil {
		return nil, fmt.Errorf("cannot decode catalog %q: %w", cfg.Catalog, err)
	}
	slog.Debug("load-catalog", "name", cfg.Catalog, "fields", c.Len())
	return c, nil
}

// openStore opens the configured backend, wrapped in the redis cache if
// enabled.
func openStore(ctx context.Context, cfg *config.Config) (fundamental.Store, func(), error) {
	var (
		store   fundamental.Store
		closers []func()
	)
	closeAll := func() {
		for i := len(closers) - 1; i >= 0; i-- {
			closers[i]()
		}
	}

	switch strings.ToLower(cfg.Store.Backend) {
	case "memory":
		store = fundamental.NewMemoryStore()
	case "jsonl":
		mem, err := jsonl.Load(cfg.JSONL.Folder)
		if err != nil {
			return nil, nil, err
		}
		store = mem
	case "postgres":
		pg, err := postgres.New(ctx, postgresConfig(cfg))
		if err != nil {
			return nil, nil, err
		}
		closers = append(closers, pg.Close)
		if cfg.Postgres.RunMigrations {
			if err := pg.Migrate(ctx); err != nil {
				closeAll()
				return nil, nil, err
			}
		}
		store = pg
	case "remote":
		r, err := remote.New(remote.Config{
			BaseURL:  cfg.Remote.BaseURL,
			APIToken: cfg.Remote.APIToken,
			Timeout:  cfg.Remote.Timeout.Duration,
			CacheDir: cfg.Remote.CacheDir,
		})
		if err != nil {
			return nil, nil, err
		}
		store = r
	case "s3":
		archive, err := s3archive.New(ctx, s3archive.ClientConfig{
			Endpoint:       cfg.S3.Endpoint,
			Region:         cfg.S3.Region,
			Bucket:         cfg.S3.Bucket,
			AccessKey:      cfg.S3.AccessKey,
			SecretKey:      cfg.S3.SecretKey,
			UseSSL:         cfg.S3.UseSSL,
			ForcePathStyle: cfg.S3.ForcePathStyle,
		})
		if err != nil {
			return nil, nil, err
		}
		mem, err := archive.Load(ctx, cfg.S3.Prefix)
		if err != nil {
			return nil, nil, err
		}
		store = mem
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}

	if cfg.Redis.Enabled {
		rdb, err := redis.Connect(ctx, redis.ClientConfig{
			Addr:       cfg.Redis.Addr,
			Password:   cfg.Redis.Password,
			DB:         cfg.Redis.DB,
			PoolSize:   cfg.Redis.PoolSize,
			MaxRetries: cfg.Redis.MaxRetries,
			TLSEnabled: cfg.Redis.TLSEnabled,
		})
		if err != nil {
			// The cache is optional, queries still work without it.
			slog.Warn("cache-disabled", "error", err)
		} else {
			closers = append(closers, func() { rdb.Close() })
			store = redis.NewCache(rdb, store, cfg.Redis.TTL.Duration)
		}
	}
	return store, closeAll, nil
}

func postgresConfig(cfg *config.Config) postgres.ClientConfig {
	return postgres.ClientConfig{
		DSN:      cfg.Postgres.DSN,
		Host:     cfg.Postgres.Host,
		Port:     cfg.Postgres.Port,
		Database: cfg.Postgres.Database,
		User:     cfg.Postgres.User,
		Password: cfg.Postgres.Password,
		SSLMode:  cfg.Postgres.SSLMode,
		MaxConns: cfg.Postgres.PoolMaxConns,
		MinConns: cfg.Postgres.PoolMinConns,
	}
}

// printMarkdown prints doc, rendered for the terminal unless -raw is set.
func printMarkdown(doc string) {
	if *rawOutput {
		fmt.Fprint(stdout, doc)
		return
	}
	out, err := glamour.Render(doc, "auto")
	if err != nil {
		slog.Warn("render-markdown", "error", err)
		out = doc
	}
	fmt.Fprint(stdout, out)
}

// failure prints err and returns the matching exit status.
func failure(err error) subcommands.ExitStatus {
	fmt.Fprintf(os.Stderr, "Error: %v\n", err)
	if errors.Is(err, fundamental.ErrUnknownField) ||
		errors.Is(err, fundamental.ErrUnsupportedPeriod) ||
		errors.Is(err, fundamental.ErrInvalidPeriodToken) {
		return subcommands.ExitUsageError
	}
	return subcommands.ExitFailure
}
