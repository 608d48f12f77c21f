// Package config handles application configuration loading from an
// optional YAML file and environment variables. It provides a centralized
// Config struct used across the application.
package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration values.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Admin    AdminConfig    `yaml:"admin"`
	Store    StoreConfig    `yaml:"store"`
	Valkey   ValkeyConfig   `yaml:"valkey"`
	Postgres PostgresConfig `yaml:"postgres"`
	S3       S3Config       `yaml:"s3"`
	Cache    CacheConfig    `yaml:"cache"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"APP_HOST"                env-default:"0.0.0.0"`
	Port            string        `yaml:"port"             env:"APP_PORT"                env-default:"8080"`
	Env             string        `yaml:"env"              env:"APP_ENV"                 env-default:"development"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"15s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"15s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"30s"`
}

// AdminConfig holds the shared admin password and the write rate limit.
type AdminConfig struct {
	Password     string        `yaml:"password"      env:"ADMIN_PASSWORD"      env-default:"zmien-to-haslo"`
	PasswordHash string        `yaml:"password_hash" env:"ADMIN_PASSWORD_HASH"`
	RateLimit    int           `yaml:"rate_limit"    env:"ADMIN_RATE_LIMIT"    env-default:"20"`
	RateWindow   time.Duration `yaml:"rate_window"   env:"ADMIN_RATE_WINDOW"   env-default:"1m"`
}

// StoreConfig selects and configures the content backend.
type StoreConfig struct {
	Backend          string `yaml:"backend"           env:"STORE_BACKEND"           env-default:"memory"`
	Key              string `yaml:"key"               env:"STORE_KEY"               env-default:"maltixon:content"`
	FilePath         string `yaml:"file_path"         env:"STORE_FILE_PATH"         env-default:"data/content.json"`
	StrictValidation bool   `yaml:"strict_validation" env:"STORE_STRICT_VALIDATION" env-default:"false"`
	SeedOnStart      bool   `yaml:"seed_on_start"     env:"STORE_SEED_ON_START"     env-default:"false"`
}

// ValkeyConfig holds Valkey (Redis-compatible) connection settings.
type ValkeyConfig struct {
	Host     string `yaml:"host"     env:"VALKEY_HOST"     env-default:"localhost"`
	Port     string `yaml:"port"     env:"VALKEY_PORT"     env-default:"6379"`
	Password string `yaml:"password" env:"VALKEY_PASSWORD"`
	DB       int    `yaml:"db"       env:"VALKEY_DB"       env-default:"0"`
}

// PostgresConfig holds PostgreSQL connection settings.
type PostgresConfig struct {
	Host     string `yaml:"host"     env:"POSTGRES_HOST"     env-default:"localhost"`
	Port     string `yaml:"port"     env:"POSTGRES_PORT"     env-default:"5432"`
	User     string `yaml:"user"     env:"POSTGRES_USER"     env-default:"linkpage"`
	Password string `yaml:"password" env:"POSTGRES_PASSWORD" env-default:"changeme"`
	DB       string `yaml:"db"       env:"POSTGRES_DB"       env-default:"linkpage"`
}

// S3Config holds S3-compatible object storage settings.
type S3Config struct {
	Endpoint  string `yaml:"endpoint"   env:"S3_ENDPOINT"`
	Region    string `yaml:"region"     env:"S3_REGION"     env-default:"us-east-1"`
	AccessKey string `yaml:"access_key" env:"S3_ACCESS_KEY"`
	SecretKey string `yaml:"secret_key" env:"S3_SECRET_KEY"`
	Bucket    string `yaml:"bucket"     env:"S3_BUCKET"`
	ObjectKey string `yaml:"object_key" env:"S3_OBJECT_KEY" env-default:"maltixon-content.json"`
}

// CacheConfig controls the landing page caches.
type CacheConfig struct {
	PageEnabled bool          `yaml:"page_enabled" env:"PAGE_CACHE_ENABLED" env-default:"false"`
	PageTTL     time.Duration `yaml:"page_ttl"     env:"PAGE_CACHE_TTL"     env-default:"5m"`
	LocalMB     int           `yaml:"local_mb"     env:"LOCAL_CACHE_MB"     env-default:"8"`
	LocalTTL    time.Duration `yaml:"local_ttl"    env:"LOCAL_CACHE_TTL"    env-default:"30s"`
}

// MetricsConfig toggles the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"text"`
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	p := c.Postgres
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=disable",
		p.User, p.Password, p.Host, p.Port, p.DB,
	)
}

// Addr returns the server listen address (host:port).
func (c *Config) Addr() string {
	return fmt.Sprintf("%s:%s", c.Server.Host, c.Server.Port)
}

// IsDev returns true if the application is running in development mode.
func (c *Config) IsDev() bool {
	return c.Server.Env == "development"
}

// NeedsValkey reports whether any configured component uses Valkey.
func (c *Config) NeedsValkey() bool {
	return c.Store.Backend == BackendValkey || c.Cache.PageEnabled
}
