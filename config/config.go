// Package config loads service and CLI configuration from an optional TOML
// file and the environment. Environment variables win over the file.
package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/meikuraledutech/flow"
)

// Store drivers.
const (
	DriverMemory   = "memory"
	DriverFile     = "file"
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMongo    = "mongo"
	DriverDynamo   = "dynamodb"
)

// StoreConfig selects and configures the snapshot slot backend.
type StoreConfig struct {
	Driver string `toml:"driver"`

	// file
	Dir string `toml:"dir"`

	// postgres
	DatabaseURL string `toml:"database_url"`

	// redis
	RedisURL    string `toml:"redis_url"`
	RedisPrefix string `toml:"redis_prefix"`

	// mongo
	MongoURI        string `toml:"mongo_uri"`
	MongoDatabase   string `toml:"mongo_database"`
	MongoCollection string `toml:"mongo_collection"`

	// dynamodb
	DynamoTable string `toml:"dynamodb_table"`
	AWSRegion   string `toml:"aws_region"`
}

// Config holds all application configuration.
type Config struct {
	Addr        string `toml:"addr"`
	Environment string `toml:"environment"`
	LogLevel    string `toml:"log_level"`

	SnapshotKey string `toml:"snapshot_key"`
	ThemeKey    string `toml:"theme_key"`

	Store StoreConfig `toml:"store"`
}

// Default returns the configuration used when nothing is set.
func Default() *Config {
	return &Config{
		Addr:        ":3000",
		Environment: "development",
		LogLevel:    "info",
		SnapshotKey: flow.DefaultSnapshotKey,
		ThemeKey:    flow.DefaultThemeKey,
		Store: StoreConfig{
			Driver:    DriverFile,
			Dir:       ".flow",
			AWSRegion: "us-east-1",
		},
	}
}

// Load reads FLOW_CONFIG (if set) and then applies environment overrides.
func Load() (*Config, error) {
	return LoadFile(os.Getenv("FLOW_CONFIG"))
}

// LoadFile reads path (skipped when empty) and then applies environment overrides.
func LoadFile(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("config: decode %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Addr = getEnv("FLOW_ADDR", c.Addr)
	c.Environment = getEnv("FLOW_ENV", c.Environment)
	c.LogLevel = getEnv("FLOW_LOG_LEVEL", c.LogLevel)
	c.SnapshotKey = getEnv("FLOW_SNAPSHOT_KEY", c.SnapshotKey)
	c.ThemeKey = getEnv("FLOW_THEME_KEY", c.ThemeKey)

	s := &c.Store
	s.Driver = strings.ToLower(getEnv("FLOW_STORE", s.Driver))
	s.Dir = getEnv("FLOW_STORE_DIR", s.Dir)
	s.DatabaseURL = getEnv("DATABASE_URL", s.DatabaseURL)
	s.RedisURL = getEnv("REDIS_URL", s.RedisURL)
	s.RedisPrefix = getEnv("REDIS_PREFIX", s.RedisPrefix)
	s.MongoURI = getEnv("MONGO_URI", s.MongoURI)
	s.MongoDatabase = getEnv("MONGO_DATABASE", s.MongoDatabase)
	s.MongoCollection = getEnv("MONGO_COLLECTION", s.MongoCollection)
	s.DynamoTable = getEnv("DYNAMODB_TABLE", s.DynamoTable)
	s.AWSRegion = getEnv("AWS_REGION", s.AWSRegion)
}

// Validate checks that the selected driver has what it needs.
func (c *Config) Validate() error {
	if c.SnapshotKey == "" || c.ThemeKey == "" {
		return fmt.Errorf("config: snapshot and theme keys must not be empty")
	}
	if c.SnapshotKey == c.ThemeKey {
		return fmt.Errorf("config: snapshot and theme keys must differ")
	}
	s := c.Store
	switch s.Driver {
	case DriverMemory:
	case DriverFile:
		if s.Dir == "" {
			return fmt.Errorf("config: FLOW_STORE_DIR is required for the file store")
		}
	case DriverPostgres:
		if s.DatabaseURL == "" {
			return fmt.Errorf("config: DATABASE_URL is required for the postgres store")
		}
	case DriverRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("config: REDIS_URL is required for the redis store")
		}
	case DriverMongo:
		if s.MongoURI == "" {
			return fmt.Errorf("config: MONGO_URI is required for the mongo store")
		}
	case DriverDynamo:
		if s.DynamoTable == "" {
			return fmt.Errorf("config: DYNAMODB_TABLE is required for the dynamodb store")
		}
	default:
		return fmt.Errorf("config: unknown store driver %q", s.Driver)
	}
	return nil
}

// IsProduction reports whether the service runs in production mode.
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return fallback
}
