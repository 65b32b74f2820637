// Package config loads server settings from .env, an optional YAML file and
// the environment, in that order of increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"

	"github.com/Brainstorm-collab/CareerFlow-sub002/pkg/errx"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	StoreMemory   = "memory"
	StorePostgres = "postgres"

	ObjectStoreS3    = "s3"
	ObjectStoreLocal = "local"

	defaultConfigFile = "config.yaml"
	devJWTSecret      = "careerflow-dev-secret-change-me"
)

type Config struct {
	Port     string         `yaml:"port"`
	Env      string         `yaml:"env"`
	LogLevel string         `yaml:"log_level"`
	Store    string         `yaml:"store_driver"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	HTTP     HTTPConfig     `yaml:"http"`
	Listing  ListingConfig  `yaml:"listing"`
	Cleanup  CleanupConfig  `yaml:"cleanup"`
}

type DatabaseConfig struct {
	Host           string `yaml:"host"`
	Port           string `yaml:"port"`
	User           string `yaml:"user"`
	Password       string `yaml:"password"`
	Name           string `yaml:"name"`
	SSLMode        string `yaml:"sslmode"`
	MigrateOnStart bool   `yaml:"migrate_on_start"`
}

// DSN renders the lib/pq connection string
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
}

// Enabled reports whether a Redis address is configured
func (r RedisConfig) Enabled() bool {
	return r.Addr != ""
}

type StorageConfig struct {
	Driver   string `yaml:"driver"`
	Region   string `yaml:"aws_region"`
	Bucket   string `yaml:"aws_bucket"`
	Prefix   string `yaml:"s3_prefix"`
	LocalDir string `yaml:"local_dir"`
	BaseURL  string `yaml:"base_url"`
}

type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret"`
	JWTIssuer string `yaml:"jwt_issuer"`
}

type HTTPConfig struct {
	CORSAllowOrigins  string `yaml:"cors_allow_origins"`
	ViewRatePerMinute int    `yaml:"view_rate_per_minute"`
}

type ListingConfig struct {
	OverFetchMultiplier int `yaml:"overfetch_multiplier"`
}

type CleanupConfig struct {
	Workers int `yaml:"workers"`
}

// IsProduction reports whether ENV is production
func (c *Config) IsProduction() bool {
	return strings.EqualFold(c.Env, "production")
}

// Load reads .env, then the YAML file named by CONFIG_FILE (config.yaml by
// default, optional), then environment overrides, and validates the result.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := os.Getenv("CONFIG_FILE")
	if path == "" {
		path = defaultConfigFile
	}
	if err := cfg.loadYAML(path); err != nil {
		return nil, err
	}
	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func defaults() *Config {
	return &Config{
		Port:     "8080",
		Env:      "development",
		LogLevel: "info",
		Store:    StorePostgres,
		Database: DatabaseConfig{
			Host:    "localhost",
			Port:    "5432",
			User:    "postgres",
			Name:    "careerflow",
			SSLMode: "disable",
		},
		Storage: StorageConfig{
			Driver:   ObjectStoreLocal,
			Prefix:   "uploads",
			LocalDir: "./data/uploads",
			BaseURL:  "/files",
		},
		HTTP: HTTPConfig{
			CORSAllowOrigins:  "*",
			ViewRatePerMinute: 30,
		},
		Listing: ListingConfig{OverFetchMultiplier: 2},
		Cleanup: CleanupConfig{Workers: 2},
	}
}

func (c *Config) loadYAML(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return errx.Wrap(err, "failed to read config file", errx.TypeInternal).WithDetail("path", path)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return errx.Wrap(err, "failed to parse config file", errx.TypeValidation).WithDetail("path", path)
	}
	return nil
}

func (c *Config) applyEnv() error {
	setString(&c.Port, "PORT")
	setString(&c.Env, "ENV")
	setString(&c.LogLevel, "LOG_LEVEL")
	setString(&c.Store, "STORE_DRIVER")

	setString(&c.Database.Host, "DB_HOST")
	setString(&c.Database.Port, "DB_PORT")
	setString(&c.Database.User, "DB_USER")
	setString(&c.Database.Password, "DB_PASS")
	setString(&c.Database.Name, "DB_NAME")
	setString(&c.Database.SSLMode, "DB_SSLMODE")

	setString(&c.Redis.Addr, "REDIS_ADDR")
	setString(&c.Redis.Password, "REDIS_PASS")

	setString(&c.Storage.Driver, "OBJECT_STORE")
	setString(&c.Storage.Region, "AWS_REGION")
	setString(&c.Storage.Bucket, "AWS_BUCKET")
	setString(&c.Storage.Prefix, "S3_PREFIX")
	setString(&c.Storage.LocalDir, "LOCAL_STORE_DIR")

	setString(&c.Auth.JWTSecret, "JWT_SECRET")
	setString(&c.Auth.JWTIssuer, "JWT_ISSUER")

	setString(&c.HTTP.CORSAllowOrigins, "CORS_ALLOW_ORIGINS")

	if err := setBool(&c.Database.MigrateOnStart, "MIGRATE_ON_START"); err != nil {
		return err
	}
	if err := setInt(&c.HTTP.ViewRatePerMinute, "VIEW_RATE_PER_MINUTE"); err != nil {
		return err
	}
	if err := setInt(&c.Listing.OverFetchMultiplier, "LISTING_OVERFETCH_MULTIPLIER"); err != nil {
		return err
	}
	return setInt(&c.Cleanup.Workers, "CLEANUP_WORKERS")
}

// Validate checks the settings that have no safe fallback. A missing JWT
// secret outside production falls back to a development secret.
func (c *Config) Validate() error {
	switch c.Store {
	case StoreMemory, StorePostgres:
	default:
		return invalid("STORE_DRIVER", c.Store)
	}

	switch c.Storage.Driver {
	case ObjectStoreLocal:
		if c.Storage.LocalDir == "" {
			return invalid("LOCAL_STORE_DIR", "")
		}
	case ObjectStoreS3:
		if c.Storage.Bucket == "" {
			return invalid("AWS_BUCKET", "")
		}
	default:
		return invalid("OBJECT_STORE", c.Storage.Driver)
	}

	if c.Auth.JWTSecret == "" {
		if c.IsProduction() {
			return invalid("JWT_SECRET", "")
		}
		c.Auth.JWTSecret = devJWTSecret
	}

	if c.Listing.OverFetchMultiplier < 1 {
		return invalid("LISTING_OVERFETCH_MULTIPLIER", strconv.Itoa(c.Listing.OverFetchMultiplier))
	}
	if c.Cleanup.Workers < 1 {
		c.Cleanup.Workers = 1
	}
	return nil
}

// UsingDevSecret reports whether the JWT secret is the development fallback
func (c *Config) UsingDevSecret() bool {
	return c.Auth.JWTSecret == devJWTSecret
}

// ============================================================================
// Helper Methods
// ============================================================================

func setString(dst *string, key string) {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		*dst = v
	}
}

func setInt(dst *int, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return invalid(key, v)
	}
	*dst = n
	return nil
}

func setBool(dst *bool, key string) error {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		return nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return invalid(key, v)
	}
	*dst = b
	return nil
}

func invalid(key, value string) *errx.Error {
	return errx.New("invalid configuration value", errx.TypeValidation).
		WithDetail("key", key).
		WithDetail("value", value)
}
