package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/mcdev12/transfermarket/go/internal/squad"
	"github.com/mcdev12/transfermarket/go/internal/transfer"
	"github.com/mcdev12/transfermarket/go/internal/valuation"
	"gopkg.in/yaml.v3"
)

const (
	storeDriverPostgres = "postgres"
	storeDriverMemory   = "memory"
)

// Config holds process settings loaded from the environment
type Config struct {
	Port        int    `envconfig:"PORT" default:"8080"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`
	StoreDriver string `envconfig:"STORE_DRIVER" default:"postgres"`
	ConfigPath  string `envconfig:"CONFIG_PATH" default:"config.yaml"`

	// DatabaseURL overrides the DB_* settings when set
	DatabaseURL string `envconfig:"DATABASE_URL"`
	DBHost      string `envconfig:"DB_HOST" default:"localhost"`
	DBPort      int    `envconfig:"DB_PORT" default:"5432"`
	DBUser      string `envconfig:"DB_USER" default:"postgres"`
	DBPassword  string `envconfig:"DB_PASSWORD" default:"postgres"`
	DBName      string `envconfig:"DB_NAME" default:"transfermarket"`
	DBSSLMode   string `envconfig:"DB_SSLMODE" default:"disable"`

	RedisAddr     string        `envconfig:"REDIS_ADDR"`
	RedisPassword string        `envconfig:"REDIS_PASSWORD"`
	RedisDB       int           `envconfig:"REDIS_DB" default:"0"`
	CacheTTL      time.Duration `envconfig:"CACHE_TTL" default:"5m"`

	// NATSURL enables the in-process market feed at /ws/market when set
	NATSURL string `envconfig:"NATS_URL"`

	JWTSecret string        `envconfig:"JWT_SECRET" required:"true"`
	JWTIssuer string        `envconfig:"JWT_ISSUER" default:"transfermarket"`
	TokenTTL  time.Duration `envconfig:"TOKEN_TTL" default:"24h"`

	// SeedTeams is the number of generated teams for the memory driver
	SeedTeams int `envconfig:"SEED_TEAMS" default:"2"`
}

// loadEnv reads Config from the environment
func loadEnv() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	if cfg.StoreDriver != storeDriverPostgres && cfg.StoreDriver != storeDriverMemory {
		return nil, fmt.Errorf("STORE_DRIVER must be %q or %q, got %q", storeDriverPostgres, storeDriverMemory, cfg.StoreDriver)
	}
	return &cfg, nil
}

// DSN returns the Postgres connection URL
func (c *Config) DSN() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=%s",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName, c.DBSSLMode)
}

// MarketConfig is the market policy file
type MarketConfig struct {
	Valuation valuation.Policy      `yaml:"valuation"`
	Paging    transfer.PagingConfig `yaml:"paging"`
	Squad     squad.Policy          `yaml:"squad"`
}

func defaultMarketConfig() MarketConfig {
	return MarketConfig{
		Valuation: valuation.DefaultPolicy(),
		Paging:    transfer.DefaultPagingConfig(),
		Squad:     squad.DefaultPolicy(),
	}
}

// loadMarketConfig overlays the file at path on the defaults. A missing file
// leaves the defaults in place.
func loadMarketConfig(path string) (MarketConfig, error) {
	config := defaultMarketConfig()

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return config, nil
	}
	if err != nil {
		return MarketConfig{}, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &config); err != nil {
		return MarketConfig{}, fmt.Errorf("failed to parse config: %w", err)
	}
	if err := config.Validate(); err != nil {
		return MarketConfig{}, err
	}
	return config, nil
}

// Validate checks every section of the policy file
func (c MarketConfig) Validate() error {
	if err := c.Valuation.Validate(); err != nil {
		return fmt.Errorf("valuation: %w", err)
	}
	if c.Paging.DefaultSize <= 0 || c.Paging.MaxSize < c.Paging.DefaultSize {
		return fmt.Errorf("paging: need 0 < default_size <= max_size, got %d and %d", c.Paging.DefaultSize, c.Paging.MaxSize)
	}
	if err := c.Squad.Validate(); err != nil {
		return fmt.Errorf("squad: %w", err)
	}
	return nil
}
