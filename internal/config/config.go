package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	defaultHTTPAddr           = ":8080"
	defaultDatabaseURL        = "videorental.db"
	defaultJWTSecret          = "change-me-jwt-secret"
	defaultJWTTTL             = "8h"
	defaultLogLevel           = "info"
	defaultLogFormat          = "text"
	defaultLoginRatePerMinute = 10
	defaultOverdueSchedule    = "0 */15 * * * *"
	defaultAuditPurgeSchedule = "0 30 3 * * *"
	defaultConfigFile         = "config.yaml"
)

// Config is the runtime configuration of the API and its jobs.
type Config struct {
	AppEnv   string         `yaml:"app_env"`
	HTTP     HTTPConfig     `yaml:"http"`
	Database DatabaseConfig `yaml:"database"`
	JWT      JWTConfig      `yaml:"jwt"`
	Log      LogConfig      `yaml:"log"`
	Jobs     JobsConfig     `yaml:"jobs"`
	Tracing  TracingConfig  `yaml:"tracing"`
}

type HTTPConfig struct {
	Addr               string   `yaml:"addr"`
	CORSAllowedOrigins []string `yaml:"cors_allowed_origins"`
	LoginRatePerMinute int      `yaml:"login_rate_per_minute"`
}

type DatabaseConfig struct {
	URL string `yaml:"url"`
}

type JWTConfig struct {
	Secret string        `yaml:"secret"`
	TTL    time.Duration `yaml:"ttl"`
}

type LogConfig struct {
	Level  string `yaml:"level"`  // "debug", "info", "warn", "error"
	Format string `yaml:"format"` // "json" or "text"
}

// JobsConfig holds cron expressions (with seconds) for background jobs.
// An empty expression disables the job.
type JobsConfig struct {
	OverdueSchedule    string `yaml:"overdue_schedule"`
	AuditPurgeSchedule string `yaml:"audit_purge_schedule"`
}

type TracingConfig struct {
	OTLPEndpoint string `yaml:"otlp_endpoint"`
	ServiceName  string `yaml:"service_name"`
}

// Load reads .env (if any), then the YAML file named by CONFIG_FILE (or
// config.yaml when present), then applies environment overrides.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := defaults()

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))
	explicit := path != ""
	if !explicit {
		path = defaultConfigFile
	}
	if err := cfg.loadFile(path); err != nil {
		if explicit || !errors.Is(err, os.ErrNotExist) {
			return nil, err
		}
	}

	if err := cfg.overrideWithEnv(); err != nil {
		return nil, err
	}

	if err := validateConfig(cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func defaults() *Config {
	ttl, _ := time.ParseDuration(defaultJWTTTL)
	return &Config{
		AppEnv: "dev",
		HTTP: HTTPConfig{
			Addr:               defaultHTTPAddr,
			LoginRatePerMinute: defaultLoginRatePerMinute,
		},
		Database: DatabaseConfig{URL: defaultDatabaseURL},
		JWT:      JWTConfig{Secret: defaultJWTSecret, TTL: ttl},
		Log:      LogConfig{Level: defaultLogLevel, Format: defaultLogFormat},
		Jobs: JobsConfig{
			OverdueSchedule:    defaultOverdueSchedule,
			AuditPurgeSchedule: defaultAuditPurgeSchedule,
		},
		Tracing: TracingConfig{ServiceName: "videorental"},
	}
}

func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}
	return nil
}

func (c *Config) overrideWithEnv() error {
	appEnv := strings.TrimSpace(os.Getenv("APP_ENV"))
	if appEnv == "" {
		appEnv = strings.TrimSpace(os.Getenv("ENV"))
	}
	if appEnv != "" {
		c.AppEnv = appEnv
	}
	c.AppEnv = strings.ToLower(c.AppEnv)

	c.HTTP.Addr = getEnv("HTTP_ADDR", c.HTTP.Addr)
	c.Database.URL = getEnv("DATABASE_URL", c.Database.URL)
	c.JWT.Secret = strings.TrimSpace(getEnv("JWT_SECRET", c.JWT.Secret))
	c.Log.Level = getEnv("LOG_LEVEL", c.Log.Level)
	c.Log.Format = getEnv("LOG_FORMAT", c.Log.Format)
	c.Jobs.OverdueSchedule = getEnv("OVERDUE_SCHEDULE", c.Jobs.OverdueSchedule)
	c.Jobs.AuditPurgeSchedule = getEnv("AUDIT_PURGE_SCHEDULE", c.Jobs.AuditPurgeSchedule)
	c.Tracing.OTLPEndpoint = getEnv("OTEL_EXPORTER_OTLP_ENDPOINT", c.Tracing.OTLPEndpoint)

	if extra := os.Getenv("CORS_ALLOWED_ORIGINS"); extra != "" {
		for _, o := range strings.Split(extra, ",") {
			if o = strings.TrimSpace(o); o != "" {
				c.HTTP.CORSAllowedOrigins = append(c.HTTP.CORSAllowedOrigins, o)
			}
		}
	}

	var err error
	if c.JWT.TTL, err = parseDurationEnv("JWT_TTL", c.JWT.TTL); err != nil {
		return err
	}
	if v := strings.TrimSpace(os.Getenv("LOGIN_RATE_PER_MIN")); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("invalid LOGIN_RATE_PER_MIN value %q: %w", v, err)
		}
		c.HTTP.LoginRatePerMinute = n
	}
	return nil
}

func validateConfig(cfg *Config) error {
	if cfg.JWT.TTL <= 0 {
		return fmt.Errorf("JWT_TTL must be > 0")
	}
	if strings.TrimSpace(cfg.Database.URL) == "" {
		return fmt.Errorf("DATABASE_URL must not be empty")
	}
	if cfg.HTTP.LoginRatePerMinute < 0 {
		return fmt.Errorf("LOGIN_RATE_PER_MIN must be >= 0")
	}
	if IsProdLike(cfg.AppEnv) && isEmptyOrDefault(cfg.JWT.Secret, defaultJWTSecret) {
		return fmt.Errorf("in prod/release JWT_SECRET must be set and not default")
	}
	return nil
}

// IsProdLike reports whether env names a production deployment.
func IsProdLike(env string) bool {
	env = strings.ToLower(strings.TrimSpace(env))
	return env == "prod" || env == "production" || env == "release"
}

func isEmptyOrDefault(v, def string) bool {
	trimmed := strings.TrimSpace(v)
	return trimmed == "" || trimmed == def
}

func parseDurationEnv(name string, fallback time.Duration) (time.Duration, error) {
	value := strings.TrimSpace(os.Getenv(name))
	if value == "" {
		return fallback, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", name, value, err)
	}
	return d, nil
}

func getEnv(name, fallback string) string {
	if v := os.Getenv(name); v != "" {
		return v
	}
	return fallback
}
