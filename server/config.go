package server

import (
	"fmt"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/rs/zerolog"
)

// Backend names accepted by STORYBOOK_BACKEND
const (
	BackendMemory   = "memory"
	BackendSQLite   = "sqlite"
	BackendRedis    = "redis"
	BackendDynamoDB = "dynamodb"
)

// Config holds process configuration loaded from the environment
type Config struct {
	Addr string `env:"STORYBOOK_ADDR" envDefault:":3000"`

	Backend       string `env:"STORYBOOK_BACKEND" envDefault:"memory"`
	SQLitePath    string `env:"STORYBOOK_SQLITE_PATH" envDefault:"storybook.db"`
	RedisAddr     string `env:"STORYBOOK_REDIS_ADDR" envDefault:"localhost:6379"`
	DynamoDBTable string `env:"STORYBOOK_DYNAMODB_TABLE" envDefault:"storybook"`

	PagesDir        string        `env:"STORYBOOK_PAGES_DIR" envDefault:"web"`
	ComponentsDir   string        `env:"STORYBOOK_COMPONENTS_DIR" envDefault:"web/components"`
	FragmentBaseURL string        `env:"STORYBOOK_FRAGMENT_BASE_URL" envDefault:"http://localhost:3000/"`
	FragmentTimeout time.Duration `env:"STORYBOOK_FRAGMENT_TIMEOUT" envDefault:"5s"`

	MonotonicIDs bool   `env:"STORYBOOK_MONOTONIC_IDS" envDefault:"true"`
	LogLevel     string `env:"STORYBOOK_LOG_LEVEL" envDefault:"info"`
}

// LoadConfig parses the process environment
func LoadConfig() (Config, error) {
	return parseConfig(env.Options{})
}

func parseConfig(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks values the env parser cannot
func (c Config) Validate() error {
	switch strings.ToLower(c.Backend) {
	case BackendMemory, BackendSQLite, BackendRedis, BackendDynamoDB:
	default:
		return fmt.Errorf("unknown backend %q", c.Backend)
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.LogLevel, err)
	}
	if c.FragmentTimeout < 0 {
		return fmt.Errorf("fragment timeout must not be negative")
	}
	return nil
}

// Level returns the configured zerolog level
func (c Config) Level() zerolog.Level {
	level, err := zerolog.ParseLevel(c.LogLevel)
	if err != nil {
		return zerolog.InfoLevel
	}
	return level
}
