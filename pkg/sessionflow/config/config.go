// Package config loads sessionflow settings.
//
// Values are layered: built-in defaults, then an optional TOML file, then a
// .env file, then SESSIONFLOW_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/BrandonKowalski/sessionflow/pkg/sessionflow/constants"
	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v6"
	"github.com/joho/godotenv"
	"golang.org/x/text/language"
)

// Store backends.
const (
	BackendBolt   = "bolt"
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

type Config struct {
	Language string      `toml:"language" env:"SESSIONFLOW_LANGUAGE"`
	Store    StoreConfig `toml:"store"`
	Log      LogConfig   `toml:"log"`
}

type StoreConfig struct {
	Backend       string `toml:"backend" env:"SESSIONFLOW_STORE"`
	Path          string `toml:"path" env:"SESSIONFLOW_STORE_PATH"`
	RedisAddr     string `toml:"redis_addr" env:"SESSIONFLOW_REDIS_ADDR"`
	RedisPassword string `toml:"redis_password" env:"SESSIONFLOW_REDIS_PASSWORD"`
	RedisDB       int    `toml:"redis_db" env:"SESSIONFLOW_REDIS_DB"`
	RedisPrefix   string `toml:"redis_prefix" env:"SESSIONFLOW_REDIS_PREFIX"`
}

type LogConfig struct {
	Level  string `toml:"level" env:"SESSIONFLOW_LOG_LEVEL"`
	Format string `toml:"format" env:"SESSIONFLOW_LOG_FORMAT"` // json, text
	Path   string `toml:"path" env:"SESSIONFLOW_LOG_PATH"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Language: "en",
		Store: StoreConfig{
			Backend:     BackendBolt,
			Path:        "sessionflow.db",
			RedisAddr:   "localhost:6379",
			RedisPrefix: "sessionflow",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// Load builds the configuration. path names a TOML file; when empty the
// SESSIONFLOW_CONFIG variable is consulted, and with neither set no file is
// read. envFile names a dotenv file that is skipped if it does not exist.
func Load(path, envFile string) (*Config, error) {
	cfg := Default()

	if path == "" {
		path = os.Getenv(constants.ConfigPathEnvVar)
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
	}

	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to load %s: %w", envFile, err)
		}
	}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("failed to parse environment variables: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	md, err := toml.DecodeFile(path, c)
	if err != nil {
		return fmt.Errorf("failed to read config %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return fmt.Errorf("unknown keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// Validate rejects settings no backend or logger can run with.
func (c *Config) Validate() error {
	var errs []error

	switch c.Store.Backend {
	case BackendBolt:
		if c.Store.Path == "" {
			errs = append(errs, errors.New("store.path is required for the bolt backend"))
		}
	case BackendRedis:
		if c.Store.RedisAddr == "" {
			errs = append(errs, errors.New("store.redis_addr is required for the redis backend"))
		}
		if c.Store.RedisDB < 0 {
			errs = append(errs, fmt.Errorf("store.redis_db must not be negative, got %d", c.Store.RedisDB))
		}
	case BackendMemory:
	default:
		errs = append(errs, fmt.Errorf("unknown store backend %q", c.Store.Backend))
	}

	switch strings.ToLower(c.Log.Level) {
	case "debug", "info", "warn", "warning", "error":
	default:
		errs = append(errs, fmt.Errorf("unknown log level %q", c.Log.Level))
	}

	switch strings.ToLower(c.Log.Format) {
	case "json", "text":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.Log.Format))
	}

	if _, err := language.Parse(c.Language); err != nil {
		errs = append(errs, fmt.Errorf("invalid language %q: %w", c.Language, err))
	}

	return errors.Join(errs...)
}
