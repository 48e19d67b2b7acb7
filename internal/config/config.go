// Package config handles loading and validating the application configuration
// from YAML files with environment variable substitution.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the top-level application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Storage  StorageConfig  `yaml:"storage"`
	Auth     AuthConfig     `yaml:"auth"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Tracing  TracingConfig  `yaml:"tracing"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig defines the Echo HTTP server settings.
type ServerConfig struct {
	Host         string        `yaml:"host"`
	Port         int           `yaml:"port"`
	ReadTimeout  time.Duration `yaml:"read_timeout"`
	WriteTimeout time.Duration `yaml:"write_timeout"`
	// BaseURL is the externally visible origin, used for redirect targets
	// behind a proxy. Empty means relative redirects.
	BaseURL string `yaml:"base_url"`
}

// DatabaseConfig defines PostgreSQL connection settings.
type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Name     string `yaml:"name"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	SSLMode  string `yaml:"sslmode"`
	PoolSize int    `yaml:"pool_size"`
}

// DSN returns a PostgreSQL connection string.
func (d *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d dbname=%s user=%s password=%s sslmode=%s",
		d.Host, d.Port, d.Name, d.User, d.Password, d.SSLMode,
	)
}

// StorageConfig defines the MinIO object storage used for listing and
// profile photos. When Endpoint is empty, photo storage runs in no-op
// mode and uploads are rejected as unavailable.
type StorageConfig struct {
	Endpoint  string `yaml:"endpoint"`
	AccessKey string `yaml:"access_key"`
	SecretKey string `yaml:"secret_key"`
	Bucket    string `yaml:"bucket"`
	UseSSL    bool   `yaml:"use_ssl"`
	// PublicBaseURL overrides the URL prefix of returned photo URLs,
	// for when the bucket is served through a CDN or reverse proxy.
	PublicBaseURL string `yaml:"public_base_url"`
}

// AuthConfig defines session and credential settings.
type AuthConfig struct {
	JWTSecret  string        `yaml:"jwt_secret"`
	SessionTTL time.Duration `yaml:"session_ttl"`
	BcryptCost int           `yaml:"bcrypt_cost"`
	CookieName string        `yaml:"cookie_name"`
	// Secure marks the session cookie Secure; disable only for local
	// plain-HTTP development.
	Secure    bool            `yaml:"secure"`
	LoginRate LoginRateConfig `yaml:"login_rate"`
}

// LoginRateConfig defines the token-bucket limit applied to login attempts.
type LoginRateConfig struct {
	PerSecond float64 `yaml:"per_second"`
	Burst     int     `yaml:"burst"`
}

// JobsConfig defines background job intervals.
type JobsConfig struct {
	MetricsRefreshInterval time.Duration `yaml:"metrics_refresh_interval"`
}

// TracingConfig defines OTLP trace export settings.
type TracingConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Endpoint string `yaml:"endpoint"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json
}

// Load reads and parses a YAML config file, performing environment variable
// substitution and validation.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path) //nolint:gosec // config path from trusted CLI flag
	if err != nil {
		return nil, fmt.Errorf("reading config file: %w", err)
	}

	// Expand environment variables in the YAML content.
	expanded := os.ExpandEnv(string(data))

	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(expanded), cfg); err != nil {
		return nil, fmt.Errorf("parsing config YAML: %w", err)
	}

	applyDefaults(cfg)

	if err := validate(cfg); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	return cfg, nil
}

func applyDefaults(cfg *Config) {
	applyServerDefaults(&cfg.Server)
	applyDatabaseDefaults(&cfg.Database)
	applyAuthDefaults(&cfg.Auth)
	applyJobsDefaults(&cfg.Jobs)
	applyLoggingDefaults(&cfg.Logging)
}

func applyServerDefaults(s *ServerConfig) {
	if s.Host == "" {
		s.Host = "0.0.0.0"
	}
	if s.Port == 0 {
		s.Port = 8080
	}
	if s.ReadTimeout == 0 {
		s.ReadTimeout = 30 * time.Second
	}
	if s.WriteTimeout == 0 {
		s.WriteTimeout = 30 * time.Second
	}
}

func applyDatabaseDefaults(d *DatabaseConfig) {
	if d.Port == 0 {
		d.Port = 5432
	}
	if d.SSLMode == "" {
		d.SSLMode = "disable"
	}
	if d.PoolSize == 0 {
		d.PoolSize = 10
	}
}

func applyAuthDefaults(a *AuthConfig) {
	if a.SessionTTL == 0 {
		a.SessionTTL = 24 * time.Hour
	}
	if a.BcryptCost == 0 {
		a.BcryptCost = 12
	}
	if a.CookieName == "" {
		a.CookieName = "motors_session"
	}
	if a.LoginRate.PerSecond == 0 {
		a.LoginRate.PerSecond = 1.0
	}
	if a.LoginRate.Burst == 0 {
		a.LoginRate.Burst = 5
	}
}

func applyJobsDefaults(j *JobsConfig) {
	if j.MetricsRefreshInterval == 0 {
		j.MetricsRefreshInterval = time.Minute
	}
}

func applyLoggingDefaults(l *LoggingConfig) {
	if l.Level == "" {
		l.Level = "info"
	}
	if l.Format == "" {
		l.Format = "text"
	}
}

func validate(cfg *Config) error {
	var errs []error

	if cfg.Database.Host == "" {
		errs = append(errs, fmt.Errorf("database.host is required"))
	}
	if cfg.Database.Name == "" {
		errs = append(errs, fmt.Errorf("database.name is required"))
	}
	if cfg.Database.User == "" {
		errs = append(errs, fmt.Errorf("database.user is required"))
	}

	if cfg.Auth.JWTSecret == "" {
		errs = append(errs, fmt.Errorf("auth.jwt_secret is required"))
	}

	if cfg.Storage.Endpoint != "" {
		if cfg.Storage.AccessKey == "" {
			errs = append(errs, fmt.Errorf("storage.access_key is required when storage.endpoint is set"))
		}
		if cfg.Storage.SecretKey == "" {
			errs = append(errs, fmt.Errorf("storage.secret_key is required when storage.endpoint is set"))
		}
		if cfg.Storage.Bucket == "" {
			errs = append(errs, fmt.Errorf("storage.bucket is required when storage.endpoint is set"))
		}
	}

	if cfg.Tracing.Enabled && cfg.Tracing.Endpoint == "" {
		errs = append(errs, fmt.Errorf("tracing.endpoint is required when tracing is enabled"))
	}

	return errors.Join(errs...)
}
