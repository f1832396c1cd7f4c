package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

type R2 struct {
	AccountID  string `toml:"account_id"`
	AccessKey  string `toml:"-"`
	SecretKey  string `toml:"-"`
	BucketName string `toml:"bucket_name"`
	PublicURL  string `toml:"public_url"`
}

type Anthropic struct {
	APIKey               string `toml:"-"`
	Model                string `toml:"model"`
	BaseURL              string `toml:"base_url"`
	MaxRequestsPerMinute int    `toml:"max_requests_per_minute"`
}

type Sweep struct {
	Interval Duration `toml:"interval"`
}

// Duration reads values such as "5m" from TOML.
type Duration struct {
	time.Duration
}

func (d *Duration) UnmarshalText(text []byte) error {
	v, err := time.ParseDuration(string(text))
	if err != nil {
		return err
	}
	d.Duration = v
	return nil
}

// Config is built once at startup. Secrets only come from the environment;
// the optional TOML file named by CONFIG_FILE carries tunables.
type Config struct {
	Port               string    `toml:"port"`
	GoogleClientID     string    `toml:"-"`
	GoogleClientSecret string    `toml:"-"`
	GoogleRedirectURI  string    `toml:"google_redirect_uri"`
	PostgresURI        string    `toml:"-"`
	RedisURI           string    `toml:"redis_uri"`
	FrontendURL        string    `toml:"frontend_url"`
	R2                 R2        `toml:"r2"`
	Anthropic          Anthropic `toml:"anthropic"`
	Sweep              Sweep     `toml:"sweep"`
	Timezone           string    `toml:"timezone"`
	SecretKey          string    `toml:"-"`
	CookieName         string    `toml:"cookie_name"`
}

func defaultConfig() *Config {
	return &Config{
		Port:        "3000",
		FrontendURL: "http://localhost:5173",
		Anthropic: Anthropic{
			Model:                "claude-3-sonnet-20240229",
			BaseURL:              "https://api.anthropic.com",
			MaxRequestsPerMinute: 30,
		},
		Sweep:      Sweep{Interval: Duration{5 * time.Minute}},
		Timezone:   "UTC",
		CookieName: "postcal_session",
	}
}

// LoadConfig applies defaults, then the CONFIG_FILE TOML file if set, then
// environment variables.
func LoadConfig() (*Config, error) {
	cfg := defaultConfig()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("reading config file %s: %w", path, err)
		}
	}

	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GoogleClientID = getEnv("GOOGLE_CLIENT_ID", cfg.GoogleClientID)
	cfg.GoogleClientSecret = getEnv("GOOGLE_CLIENT_SECRET", cfg.GoogleClientSecret)
	cfg.GoogleRedirectURI = getEnv("GOOGLE_REDIRECT_URI", cfg.GoogleRedirectURI)
	cfg.PostgresURI = getEnv("POSTGRES_URI", cfg.PostgresURI)
	cfg.RedisURI = getEnv("REDIS_URI", cfg.RedisURI)
	cfg.FrontendURL = getEnv("FRONTEND_URL", cfg.FrontendURL)
	cfg.R2 = R2{
		AccountID:  getEnv("R2_ACCOUNT_ID", cfg.R2.AccountID),
		AccessKey:  getEnv("R2_ACCESS_KEY", cfg.R2.AccessKey),
		SecretKey:  getEnv("R2_SECRET_KEY", cfg.R2.SecretKey),
		BucketName: getEnv("R2_BUCKET_NAME", cfg.R2.BucketName),
		PublicURL:  getEnv("R2_PUBLIC_URL", cfg.R2.PublicURL),
	}
	cfg.Anthropic.APIKey = getEnv("ANTHROPIC_API_KEY", cfg.Anthropic.APIKey)
	cfg.Anthropic.Model = getEnv("ANTHROPIC_MODEL", cfg.Anthropic.Model)
	cfg.Anthropic.BaseURL = getEnv("ANTHROPIC_BASE_URL", cfg.Anthropic.BaseURL)
	cfg.Timezone = getEnv("TIMEZONE", cfg.Timezone)
	cfg.SecretKey = getEnv("SECRET_KEY", cfg.SecretKey)
	cfg.CookieName = getEnv("COOKIE_NAME", cfg.CookieName)

	if v := os.Getenv("ANTHROPIC_MAX_RPM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("ANTHROPIC_MAX_RPM: %w", err)
		}
		cfg.Anthropic.MaxRequestsPerMinute = n
	}
	if v := os.Getenv("SWEEP_INTERVAL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, fmt.Errorf("SWEEP_INTERVAL: %w", err)
		}
		cfg.Sweep.Interval = Duration{d}
	}

	return cfg, nil
}

// Validate reports the settings the server cannot start without. The
// Anthropic key is not required: generation features fail individually
// when it is missing.
func (c *Config) Validate() error {
	if c.PostgresURI == "" {
		return errors.New("POSTGRES_URI is required")
	}
	if c.SecretKey == "" {
		return errors.New("SECRET_KEY is required")
	}
	if c.Sweep.Interval.Duration <= 0 {
		return errors.New("sweep interval must be positive")
	}
	if _, err := time.LoadLocation(c.Timezone); err != nil {
		return fmt.Errorf("timezone %q: %w", c.Timezone, err)
	}
	return nil
}

// Location returns the time zone used to bucket posting times.
func (c *Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
