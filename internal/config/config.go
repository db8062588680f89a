// Package config loads host configuration from the environment and an optional YAML file.
package config

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/aretw0/vestibule/internal/logging"
	"github.com/aretw0/vestibule/pkg/onboarding"
	"github.com/aretw0/vestibule/pkg/persistence/middleware"
	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "VESTIBULE_"

// Storage backends.
const (
	StoreMemory = "memory"
	StoreFile   = "file"
	StoreRedis  = "redis"
	StoreSQLite = "sqlite"
)

// Config holds everything a host needs to build an engine and its stores.
type Config struct {
	Addr  string `env:"ADDR" envDefault:":8080" yaml:"addr"`
	Store string `env:"STORE" envDefault:"memory" yaml:"store"`

	DataDir    string `env:"DATA_DIR" envDefault:".vestibule" yaml:"data_dir"`
	SQLitePath string `env:"SQLITE_PATH" yaml:"sqlite_path"`

	RedisAddr     string `env:"REDIS_ADDR" envDefault:"localhost:6379" yaml:"redis_addr"`
	RedisPassword string `env:"REDIS_PASSWORD" yaml:"redis_password"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0" yaml:"redis_db"`

	// Roster is a YAML or JSON guide file. Empty means the built-in roster.
	Roster    string `env:"ROSTER" yaml:"roster"`
	AssetBase string `env:"ASSET_BASE" yaml:"asset_base"`

	Dwell      time.Duration `env:"DWELL" yaml:"dwell"`
	SessionTTL time.Duration `env:"SESSION_TTL" envDefault:"24h" yaml:"session_ttl"`

	// SessionIdle is how long a served session stays in memory without requests.
	// Zero keeps sessions until they finish.
	SessionIdle time.Duration `env:"SESSION_IDLE" envDefault:"30m" yaml:"session_idle"`

	LogLevel string `env:"LOG_LEVEL" envDefault:"info" yaml:"log_level"`

	// EncryptionKey seals session snapshots at rest (base64, 32 bytes). Older keys
	// stay readable through EncryptionFallbackKeys during rotation.
	EncryptionKey          string   `env:"ENCRYPTION_KEY" yaml:"encryption_key"`
	EncryptionFallbackKeys []string `env:"ENCRYPTION_FALLBACK_KEYS" envSeparator:"," yaml:"encryption_fallback_keys"`
}

// Load parses the environment and then overlays the YAML file at path, if any.
// Keys absent from the file keep their environment or default values.
func Load(path string) (*Config, error) {
	cfg := &Config{}
	if err := env.ParseWithOptions(cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StoreFile, StoreRedis, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want memory, file, redis or sqlite)", c.Store)
	}
	if c.Dwell < 0 {
		return fmt.Errorf("dwell must not be negative, got %s", c.Dwell)
	}
	if c.SessionIdle < 0 {
		return fmt.Errorf("session idle timeout must not be negative, got %s", c.SessionIdle)
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return err
	}
	if _, err := c.Encryption(); err != nil {
		return err
	}
	return nil
}

// Encryption decodes the snapshot keys. It returns nil when encryption is off.
func (c *Config) Encryption() (*middleware.EncryptionConfig, error) {
	if c.EncryptionKey == "" {
		return nil, nil
	}
	active, err := decodeKey(c.EncryptionKey)
	if err != nil {
		return nil, fmt.Errorf("encryption key: %w", err)
	}
	out := &middleware.EncryptionConfig{ActiveKey: active}
	for i, raw := range c.EncryptionFallbackKeys {
		k, err := decodeKey(raw)
		if err != nil {
			return nil, fmt.Errorf("fallback encryption key #%d: %w", i, err)
		}
		out.FallbackKeys = append(out.FallbackKeys, k)
	}
	return out, nil
}

func decodeKey(raw string) ([]byte, error) {
	k, err := base64.StdEncoding.DecodeString(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf("not valid base64: %w", err)
	}
	if len(k) != middleware.KeySize {
		return nil, fmt.Errorf("want %d bytes, got %d", middleware.KeySize, len(k))
	}
	return k, nil
}

// Level returns the configured log level.
func (c *Config) Level() slog.Level {
	level, _ := logging.ParseLevel(c.LogLevel)
	return level
}

// EffectiveDwell returns the reveal dwell, falling back to the flow default.
func (c *Config) EffectiveDwell() time.Duration {
	if c.Dwell == 0 {
		return onboarding.DefaultDwell
	}
	return c.Dwell
}

// DatabasePath returns the SQLite file, defaulting to a file inside DataDir.
func (c *Config) DatabasePath() string {
	if c.SQLitePath != "" {
		return c.SQLitePath
	}
	return filepath.Join(c.DataDir, "vestibule.db")
}
