// Package config defines the configuration of the fundamental tools and
// provides validation helpers.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"
)

// Config is the root configuration structure. Fields are populated from a TOML
// file and then optionally overridden by FUNDAMENTAL_* environment variables.
type Config struct {
	Store    StoreConfig    `toml:"store"`
	JSONL    JSONLConfig    `toml:"jsonl"`
	Postgres PostgresConfig `toml:"postgres"`
	Redis    RedisConfig    `toml:"redis"`
	Remote   RemoteConfig   `toml:"remote"`
	S3       S3Config       `toml:"s3"`
	Catalog  string         `toml:"catalog"`  // TOML field catalog, empty for the builtin one
	Baseline string         `toml:"baseline"` // first-available or none
	LogLevel string         `toml:"log_level"`
}

// StoreConfig selects the backend answering point-in-time queries.
type StoreConfig struct {
	Backend string `toml:"backend"`
}

// JSONLConfig holds the location of a folder of yearly JSONL files.
type JSONLConfig struct {
	Folder string `toml:"folder"`
}

// PostgresConfig holds PostgreSQL connection parameters.
type PostgresConfig struct {
	DSN           string `toml:"dsn"`
	Host          string `toml:"host"`
	Port          int    `toml:"port"`
	Database      string `toml:"database"`
	User          string `toml:"user"`
	Password      string `toml:"password"`
	SSLMode       string `toml:"ssl_mode"`
	PoolMaxConns  int    `toml:"pool_max_conns"`
	PoolMinConns  int    `toml:"pool_min_conns"`
	RunMigrations bool   `toml:"run_migrations"`
}

// RedisConfig holds the parameters of the optional read-through cache.
type RedisConfig struct {
	Enabled    bool     `toml:"enabled"`
	Addr       string   `toml:"addr"`
	Password   string   `toml:"password"`
	DB         int      `toml:"db"`
	PoolSize   int      `toml:"pool_size"`
	MaxRetries int      `toml:"max_retries"`
	TLSEnabled bool     `toml:"tls_enabled"`
	TTL        duration `toml:"ttl"`
}

// RemoteConfig holds the parameters of the HTTP snapshot service.
type RemoteConfig struct {
	BaseURL  string   `toml:"base_url"`
	APIToken string   `toml:"api_token"`
	Timeout  duration `toml:"timeout"`
	CacheDir string   `toml:"cache_dir"`
}

// S3Config holds the parameters of an S3 compatible archive.
type S3Config struct {
	Endpoint       string `toml:"endpoint"`
	Region         string `toml:"region"`
	Bucket         string `toml:"bucket"`
	Prefix         string `toml:"prefix"`
	AccessKey      string `toml:"access_key"`
	SecretKey      string `toml:"secret_key"`
	UseSSL         bool   `toml:"use_ssl"`
	ForcePathStyle bool   `toml:"force_path_style"`
}

// duration is a wrapper around time.Duration that supports TOML string decoding
// (e.g. "5m", "30s").
type duration struct {
	time.Duration
}

// UnmarshalText implements encoding.TextUnmarshaler so that BurntSushi/toml can
// parse duration strings like "5m" or "30s".
func (d *duration) UnmarshalText(text []byte) error {
	var err error
	d.Duration, err = time.ParseDuration(string(text))
	return err
}

// MarshalText implements encoding.TextMarshaler.
func (d duration) MarshalText() ([]byte, error) {
	return []byte(d.Duration.String()), nil
}

// Defaults returns a Config populated with sensible defaults.
func Defaults() Config {
	return Config{
		Store: StoreConfig{Backend: "jsonl"},
		JSONL: JSONLConfig{Folder: "."},
		Postgres: PostgresConfig{
			Host:         "localhost",
			Port:         5432,
			Database:     "fundamental",
			SSLMode:      "disable",
			PoolMaxConns: 10,
			PoolMinConns: 1,
		},
		Redis: RedisConfig{
			Addr:     "localhost:6379",
			PoolSize: 10,
			TTL:      duration{24 * time.Hour},
		},
		Remote: RemoteConfig{
			Timeout: duration{30 * time.Second},
		},
		S3: S3Config{
			Region: "us-east-1",
			UseSSL: true,
		},
		Baseline: "first-available",
		LogLevel: "info",
	}
}

// validBackends enumerates the accepted values for StoreConfig.Backend.
var validBackends = map[string]bool{
	"memory":   true,
	"jsonl":    true,
	"postgres": true,
	"remote":   true,
	"s3":       true,
}

// validBaselines enumerates the accepted values for Config.Baseline.
var validBaselines = map[string]bool{
	"first-available": true,
	"none":            true,
}

// validLogLevels maps the accepted values for Config.LogLevel to slog levels.
var validLogLevels = map[string]slog.Level{
	"debug": slog.LevelDebug,
	"info":  slog.LevelInfo,
	"warn":  slog.LevelWarn,
	"error": slog.LevelError,
}

// Level returns the slog level of LogLevel, info if it is unknown.
func (c *Config) Level() slog.Level {
	if l, ok := validLogLevels[strings.ToLower(c.LogLevel)]; ok {
		return l
	}
	return slog.LevelInfo
}

// Validate checks the configuration and returns all problems at once.
func (c *Config) Validate() error {
	var errs []string

	backend := strings.ToLower(c.Store.Backend)
	if !validBackends[backend] {
		errs = append(errs, fmt.Sprintf("store: unknown backend %q (valid: memory, jsonl, postgres, remote, s3)", c.Store.Backend))
	}
	if !validBaselines[strings.ToLower(c.Baseline)] {
		errs = append(errs, fmt.Sprintf("unknown baseline %q (valid: first-available, none)", c.Baseline))
	}
	if _, ok := validLogLevels[strings.ToLower(c.LogLevel)]; !ok {
		errs = append(errs, fmt.Sprintf("unknown log_level %q (valid: debug, info, warn, error)", c.LogLevel))
	}

	switch backend {
	case "jsonl":
		if c.JSONL.Folder == "" {
			errs = append(errs, "jsonl: folder must not be empty")
		}
	case "postgres":
		if c.Postgres.DSN == "" && c.Postgres.Host == "" {
			errs = append(errs, "postgres: either dsn or host must be set")
		}
		if c.Postgres.PoolMinConns > c.Postgres.PoolMaxConns {
			errs = append(errs, fmt.Sprintf("postgres: pool_min_conns (%d) must not exceed pool_max_conns (%d)", c.Postgres.PoolMinConns, c.Postgres.PoolMaxConns))
		}
	case "remote":
		if c.Remote.BaseURL == "" {
			errs = append(errs, "remote: base_url must not be empty")
		}
	case "s3":
		if c.S3.Bucket == "" {
			errs = append(errs, "s3: bucket must not be empty")
		}
		if c.S3.Region == "" {
			errs = append(errs, "s3: region must not be empty")
		}
	}

	if c.Redis.Enabled {
		if c.Redis.Addr == "" {
			errs = append(errs, "redis: addr must not be empty when enabled")
		}
		if c.Redis.TTL.Duration <= 0 {
			errs = append(errs, "redis: ttl must be positive")
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(errs, "\n  - "))
	}
	return nil
}
