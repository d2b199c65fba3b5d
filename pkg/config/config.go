// Package config loads the server configuration.
//
// The configuration file is TOML. Locations, in priority order:
//  1. $AUTOFEYN_CONFIG
//  2. ./autofeyn.toml
//  3. ~/.config/autofeyn/config.toml
//
// A missing file is not an error; [DefaultConfig] is used instead.
package config

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/matzehuels/autofeyn/pkg/errors"
	"github.com/matzehuels/autofeyn/pkg/session"
)

// EnvPath names the environment variable that overrides the config location.
const EnvPath = "AUTOFEYN_CONFIG"

// Defaults.
const (
	DefaultAddr            = ":8080"
	DefaultPageSize        = 9
	DefaultCleanupInterval = time.Minute
)

// Config is the root configuration structure.
type Config struct {
	Addr     string        `toml:"addr"`
	PageSize int           `toml:"page_size"`
	LogLevel string        `toml:"log_level"`
	Session  SessionConfig `toml:"session"`
	Cache    CacheConfig   `toml:"cache"`
}

// SessionConfig selects the session backend.
type SessionConfig struct {
	Backend         string      `toml:"backend"` // memory, file, redis or mongo
	TTL             Duration    `toml:"ttl"`
	CleanupInterval Duration    `toml:"cleanup_interval"`
	Dir             string      `toml:"dir,omitempty"`
	Redis           RedisConfig `toml:"redis"`
	Mongo           MongoConfig `toml:"mongo"`
}

// RedisConfig holds Redis connection settings.
type RedisConfig struct {
	Addr     string `toml:"addr"`
	Password string `toml:"password,omitempty"`
	DB       int    `toml:"db"`
	Prefix   string `toml:"prefix,omitempty"`
}

// MongoConfig holds MongoDB connection settings.
type MongoConfig struct {
	URI        string `toml:"uri"`
	Database   string `toml:"database"`
	Collection string `toml:"collection"`
}

// CacheConfig controls the diagram count cache.
type CacheConfig struct {
	Disabled bool     `toml:"disabled"`
	Dir      string   `toml:"dir,omitempty"`
	TTL      Duration `toml:"ttl"` // zero keeps entries forever
}

// DefaultConfig returns the configuration used when no file exists.
func DefaultConfig() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

// applyDefaults fills in missing values with defaults.
func (c *Config) applyDefaults() {
	if c.Addr == "" {
		c.Addr = DefaultAddr
	}
	if c.PageSize == 0 {
		c.PageSize = DefaultPageSize
	}
	if c.LogLevel == "" {
		c.LogLevel = "info"
	}
	if c.Session.Backend == "" {
		c.Session.Backend = string(session.BackendMemory)
	}
	if c.Session.TTL == 0 {
		c.Session.TTL = Duration(session.DefaultTTL)
	}
	if c.Session.CleanupInterval == 0 {
		c.Session.CleanupInterval = Duration(DefaultCleanupInterval)
	}
	if c.Session.Redis.Addr == "" {
		c.Session.Redis.Addr = "localhost:6379"
	}
	if c.Session.Mongo.URI == "" {
		c.Session.Mongo.URI = "mongodb://localhost:27017"
	}
	if c.Session.Mongo.Database == "" {
		c.Session.Mongo.Database = "autofeyn"
	}
	if c.Session.Mongo.Collection == "" {
		c.Session.Mongo.Collection = "sessions"
	}
}

// Validate reports the first invalid setting as errors.ErrCodeInvalidConfig.
func (c *Config) Validate() error {
	if c.PageSize < 1 {
		return errors.New(errors.ErrCodeInvalidConfig, "page_size must be positive, got %d", c.PageSize)
	}
	switch session.Backend(c.Session.Backend) {
	case session.BackendMemory, session.BackendFile, session.BackendRedis, session.BackendMongo:
	default:
		return errors.New(errors.ErrCodeInvalidConfig, "unknown session backend %q", c.Session.Backend)
	}
	if c.Session.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session ttl cannot be negative")
	}
	if c.Session.CleanupInterval < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "session cleanup_interval cannot be negative")
	}
	if c.Cache.TTL < 0 {
		return errors.New(errors.ErrCodeInvalidConfig, "cache ttl cannot be negative")
	}
	return nil
}

// SessionStoreConfig converts the session section for [session.Open].
func (c *Config) SessionStoreConfig() session.Config {
	s := c.Session
	return session.Config{
		Backend: session.Backend(s.Backend),
		Dir:     s.Dir,
		Redis: session.RedisConfig{
			Addr:     s.Redis.Addr,
			Password: s.Redis.Password,
			DB:       s.Redis.DB,
			Prefix:   s.Redis.Prefix,
		},
		Mongo: session.MongoConfig{
			URI:        s.Mongo.URI,
			Database:   s.Mongo.Database,
			Collection: s.Mongo.Collection,
		},
	}
}

// Load finds and loads the config file, or returns defaults if none is
// found. The returned path is empty when defaults are used.
func Load() (*Config, string, error) {
	path := FindConfigPath()
	if path == "" {
		return DefaultConfig(), "", nil
	}
	return LoadFromPath(path)
}

// LoadFromPath loads config from a specific path.
func LoadFromPath(path string) (*Config, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, path, fmt.Errorf("read config: %w", err)
	}
	cfg, err := Parse(data)
	if err != nil {
		return nil, path, err
	}
	return cfg, path, nil
}

// Parse decodes TOML, applies defaults and validates the result.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	md, err := toml.Decode(string(data), &cfg)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "parse config")
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, errors.New(errors.ErrCodeInvalidConfig, "unknown config key %q", undecoded[0].String())
	}
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Save writes the config as TOML.
func (c *Config) Save(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(c); err != nil {
		return fmt.Errorf("marshal config: %w", err)
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}

// FindConfigPath returns the first existing config file, or "".
func FindConfigPath() string {
	if p := os.Getenv(EnvPath); p != "" {
		return p
	}
	candidates := []string{"autofeyn.toml"}
	if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "autofeyn", "config.toml"))
	}
	for _, p := range candidates {
		if _, err := os.Stat(p); err == nil {
			return p
		}
	}
	return ""
}

// Duration wraps time.Duration so it reads and writes as "30m" in TOML.
type Duration time.Duration

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Duration) UnmarshalText(text []byte) error {
	parsed, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	*d = Duration(parsed)
	return nil
}

// MarshalText implements encoding.TextMarshaler.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

// Duration returns the underlying time.Duration.
func (d Duration) Duration() time.Duration {
	return time.Duration(d)
}
