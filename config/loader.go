package config

import (
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
)

// Load reads a TOML configuration file at path, merges it on top of the
// built-in defaults, applies FUNDAMENTAL_* environment variable overrides, and
// returns the final Config. An empty path skips the file. The returned Config
// has NOT been validated; the caller should invoke Config.Validate() after
// Load.
func Load(path string) (*Config, error) {
	cfg := Defaults()

	if path != "" {
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, err
		}
	}

	// Load .env file if present (silently ignore if missing).
	_ = godotenv.Load()

	applyEnvOverrides(&cfg)

	return &cfg, nil
}

// applyEnvOverrides reads well-known FUNDAMENTAL_* environment variables and
// overwrites the corresponding Config fields when a variable is set.
func applyEnvOverrides(cfg *Config) {
	setStr(&cfg.Store.Backend, "FUNDAMENTAL_STORE_BACKEND")
	setStr(&cfg.JSONL.Folder, "FUNDAMENTAL_JSONL_FOLDER")

	setStr(&cfg.Postgres.DSN, "FUNDAMENTAL_POSTGRES_DSN")
	setStr(&cfg.Postgres.Host, "FUNDAMENTAL_POSTGRES_HOST")
	setInt(&cfg.Postgres.Port, "FUNDAMENTAL_POSTGRES_PORT")
	setStr(&cfg.Postgres.Database, "FUNDAMENTAL_POSTGRES_DATABASE")
	setStr(&cfg.Postgres.User, "FUNDAMENTAL_POSTGRES_USER")
	setStr(&cfg.Postgres.Password, "FUNDAMENTAL_POSTGRES_PASSWORD")
	setStr(&cfg.Postgres.SSLMode, "FUNDAMENTAL_POSTGRES_SSL_MODE")
	setInt(&cfg.Postgres.PoolMaxConns, "FUNDAMENTAL_POSTGRES_POOL_MAX_CONNS")
	setInt(&cfg.Postgres.PoolMinConns, "FUNDAMENTAL_POSTGRES_POOL_MIN_CONNS")
	setBool(&cfg.Postgres.RunMigrations, "FUNDAMENTAL_POSTGRES_RUN_MIGRATIONS")

	setBool(&cfg.Redis.Enabled, "FUNDAMENTAL_REDIS_ENABLED")
	setStr(&cfg.Redis.Addr, "FUNDAMENTAL_REDIS_ADDR")
	setStr(&cfg.Redis.Password, "FUNDAMENTAL_REDIS_PASSWORD")
	setInt(&cfg.Redis.DB, "FUNDAMENTAL_REDIS_DB")
	setInt(&cfg.Redis.PoolSize, "FUNDAMENTAL_REDIS_POOL_SIZE")
	setInt(&cfg.Redis.MaxRetries, "FUNDAMENTAL_REDIS_MAX_RETRIES")
	setBool(&cfg.Redis.TLSEnabled, "FUNDAMENTAL_REDIS_TLS_ENABLED")
	setDuration(&cfg.Redis.TTL, "FUNDAMENTAL_REDIS_TTL")

	setStr(&cfg.Remote.BaseURL, "FUNDAMENTAL_REMOTE_BASE_URL")
	setStr(&cfg.Remote.APIToken, "FUNDAMENTAL_REMOTE_API_TOKEN")
	setDuration(&cfg.Remote.Timeout, "FUNDAMENTAL_REMOTE_TIMEOUT")
	setStr(&cfg.Remote.CacheDir, "FUNDAMENTAL_REMOTE_CACHE_DIR")

	setStr(&cfg.S3.Endpoint, "FUNDAMENTAL_S3_ENDPOINT")
	setStr(&cfg.S3.Region, "FUNDAMENTAL_S3_REGION")
	setStr(&cfg.S3.Bucket, "FUNDAMENTAL_S3_BUCKET")
	setStr(&cfg.S3.Prefix, "FUNDAMENTAL_S3_PREFIX")
	setStr(&cfg.S3.AccessKey, "FUNDAMENTAL_S3_ACCESS_KEY")
	setStr(&cfg.S3.SecretKey, "FUNDAMENTAL_S3_SECRET_KEY")
	setBool(&cfg.S3.UseSSL, "FUNDAMENTAL_S3_USE_SSL")
	setBool(&cfg.S3.ForcePathStyle, "FUNDAMENTAL_S3_FORCE_PATH_STYLE")

	setStr(&cfg.Catalog, "FUNDAMENTAL_CATALOG")
	setStr(&cfg.Baseline, "FUNDAMENTAL_BASELINE")
	setStr(&cfg.LogLevel, "FUNDAMENTAL_LOG_LEVEL")
}

// Typed env-var helpers. Each only mutates the target when the environment
// variable is present and non-empty.

func setStr(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			*dst = n
		}
	}
}

func setBool(dst *bool, key string) {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			*dst = b
		}
	}
}

func setDuration(dst *duration, key string) {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			dst.Duration = d
		}
	}
}
