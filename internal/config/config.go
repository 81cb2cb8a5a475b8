package config

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

const (
	DriverBolt     = "bolt"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

var ErrInvalidConfig = errors.New("invalid config")

type Config struct {
	HTTPPort           string        `env:"HTTP_PORT"             envDefault:"8080"`
	RequestTimeout     time.Duration `env:"REQUEST_TIMEOUT"       envDefault:"30s"`
	ShutdownTimeout    time.Duration `env:"SHUTDOWN_TIMEOUT"      envDefault:"10s"`
	MaxRequestBodySize int64         `env:"MAX_REQUEST_BODY_SIZE" envDefault:"1048576"`
	LogLevel           string        `env:"LOG_LEVEL"             envDefault:"info"`

	StorageDriver string `env:"STORAGE_DRIVER" envDefault:"bolt"`
	BoltPath      string `env:"BOLT_PATH"      envDefault:"storefront.db"`

	RedisAddr     string        `env:"REDIS_ADDR"     envDefault:"localhost:6379"`
	RedisPassword string        `env:"REDIS_PASSWORD"`
	RedisDB       int           `env:"REDIS_DB"       envDefault:"0"`
	RedisTTL      time.Duration `env:"REDIS_TTL"      envDefault:"0s"`

	MongoURI    string `env:"MONGO_URI"     envDefault:"mongodb://localhost:27017"`
	MongoDBName string `env:"MONGO_DB_NAME" envDefault:"storefront"`

	DBHost     string `env:"DB_HOST"     envDefault:"localhost"`
	DBPort     int    `env:"DB_PORT"     envDefault:"5432"`
	DBUser     string `env:"DB_USER"     envDefault:"postgres"`
	DBPassword string `env:"DB_PASSWORD" envDefault:"postgres"`
	DBName     string `env:"DB_NAME"     envDefault:"storefront"`

	CatalogDBPath   string        `env:"CATALOG_DB_PATH"  envDefault:":memory:"`
	CheckoutLatency time.Duration `env:"CHECKOUT_LATENCY" envDefault:"1800ms"`

	KafkaBrokers []string `env:"KAFKA_BROKERS" envSeparator:","`
	KafkaTopic   string   `env:"KAFKA_TOPIC"   envDefault:"storefront-orders"`

	// Tracing is exported only when OTEL_ENDPOINT (a URL) is set and OTEL_ENABLED is not false.
	OTelEnabled  bool   `env:"OTEL_ENABLED"  envDefault:"true"`
	OTelEndpoint string `env:"OTEL_ENDPOINT"`
}

// Load reads the configuration from environment variables.
func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	switch c.StorageDriver {
	case DriverBolt, DriverRedis, DriverMongo, DriverPostgres, DriverMemory:
	default:
		return fmt.Errorf("%w: unknown STORAGE_DRIVER %q", ErrInvalidConfig, c.StorageDriver)
	}
	if c.CheckoutLatency < 0 {
		return fmt.Errorf("%w: CHECKOUT_LATENCY must not be negative", ErrInvalidConfig)
	}
	if c.CheckoutLatency >= c.RequestTimeout {
		return fmt.Errorf("%w: CHECKOUT_LATENCY must be shorter than REQUEST_TIMEOUT", ErrInvalidConfig)
	}
	if c.MaxRequestBodySize <= 0 {
		return fmt.Errorf("%w: MAX_REQUEST_BODY_SIZE must be positive", ErrInvalidConfig)
	}
	if _, err := c.SlogLevel(); err != nil {
		return err
	}
	return nil
}

// SlogLevel maps LOG_LEVEL (debug, info, warn, error) to a slog level.
func (c *Config) SlogLevel() (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(strings.ToUpper(c.LogLevel))); err != nil {
		return slog.LevelInfo, fmt.Errorf("%w: LOG_LEVEL %q", ErrInvalidConfig, c.LogLevel)
	}
	return level, nil
}

// KafkaEnabled reports whether order events should be published.
func (c *Config) KafkaEnabled() bool {
	return len(c.KafkaBrokers) > 0
}
