package config

import (
	"context"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/sethvargo/go-envconfig"
)

// Token store backends.
const (
	TokenStoreFile   = "file"
	TokenStoreRedis  = "redis"
	TokenStoreMongo  = "mongo"
	TokenStoreMemory = "memory"
)

type Config struct {
	Env        string `env:"ENV,         default=development"`
	LogLevel   string `env:"LOG_LEVEL,   default=info"`
	ListenAddr string `env:"LISTEN_ADDR, default=:8080" validate:"required"`

	API   APIConfig
	Token TokenConfig
	Mongo MongoConfig
	Redis RedisConfig
	NATS  NATSConfig
}

type APIConfig struct {
	BaseURL string        `env:"API_BASE_URL, default=http://localhost:8000" validate:"required,url"`
	Timeout time.Duration `env:"API_TIMEOUT,  default=60s"                   validate:"gt=0"`
}

type TokenConfig struct {
	Store string `env:"TOKEN_STORE, default=file"  validate:"oneof=file redis mongo memory"`
	Key   string `env:"TOKEN_KEY,   default=token" validate:"required"`
	// File overrides the default location under the user config dir.
	File  string `env:"TOKEN_FILE"`
	Watch bool   `env:"TOKEN_WATCH, default=true"`
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=project_dashboard"`
}

type RedisConfig struct {
	Addr   string `env:"REDIS_ADDR,   default=localhost:6379"`
	DB     int    `env:"REDIS_DB,     default=0"`
	Prefix string `env:"REDIS_PREFIX, default=dashboard"`
}

// NATSConfig enables session event publishing when URL is set.
type NATSConfig struct {
	URL     string `env:"NATS_URL"`
	Subject string `env:"NATS_SUBJECT, default=dashboard.session"`
}

// IsProduction reports whether ENV is "production".
func (c *Config) IsProduction() bool { return c.Env == "production" }

// Load reads configuration from environment variables using go-envconfig and
// validates it.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: load environment: %w", err)
	}
	if err := validator.New().Struct(&cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return &cfg, nil
}
