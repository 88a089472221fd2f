package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverMemory   = "memory"

	devJWTSecret = "spendwise-dev-secret"
)

type Config struct {
	Port        string
	Environment string

	// Storage
	StoreDriver string
	DatabaseURL string
	SeedDemo    bool

	// Auth
	JWTSecret string
	TokenTTL  time.Duration

	// HTTP
	FrontendURL    string
	AllowedOrigins []string
	RateLimit      int
	RateWindow     time.Duration

	// Budget alerts
	AMQPURL      string
	AMQPExchange string

	Timezone string
	LogLevel string

	// DotEnvLoaded reports whether a .env file was found.
	DotEnvLoaded bool
}

// Load reads .env (if present), an optional spendwise.{yaml,toml,json} file and
// the environment, in increasing order of precedence.
func Load() (*Config, error) {
	dotEnvErr := godotenv.Load()

	v := viper.New()
	v.SetDefault("port", "8080")
	v.SetDefault("environment", "development")
	v.SetDefault("store_driver", StoreDriverPostgres)
	v.SetDefault("database_url", "")
	v.SetDefault("seed_demo", true)
	v.SetDefault("jwt_secret", "")
	v.SetDefault("token_ttl", 24*time.Hour)
	v.SetDefault("frontend_url", "http://localhost:3000")
	v.SetDefault("allowed_origins", "")
	v.SetDefault("rate_limit", 100)
	v.SetDefault("rate_window", time.Minute)
	v.SetDefault("amqp_url", "")
	v.SetDefault("amqp_exchange", "spendwise")
	v.SetDefault("timezone", "UTC")
	v.SetDefault("log_level", "info")

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("spendwise")
		v.AddConfigPath(".")
	}
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := &Config{
		Port:         v.GetString("port"),
		Environment:  strings.ToLower(v.GetString("environment")),
		StoreDriver:  strings.ToLower(v.GetString("store_driver")),
		DatabaseURL:  v.GetString("database_url"),
		SeedDemo:     v.GetBool("seed_demo"),
		JWTSecret:    v.GetString("jwt_secret"),
		TokenTTL:     v.GetDuration("token_ttl"),
		FrontendURL:  v.GetString("frontend_url"),
		RateLimit:    v.GetInt("rate_limit"),
		RateWindow:   v.GetDuration("rate_window"),
		AMQPURL:      v.GetString("amqp_url"),
		AMQPExchange: v.GetString("amqp_exchange"),
		Timezone:     v.GetString("timezone"),
		LogLevel:     strings.ToLower(v.GetString("log_level")),
		DotEnvLoaded: dotEnvErr == nil,
	}

	cfg.AllowedOrigins = []string{cfg.FrontendURL}
	for _, origin := range strings.Split(v.GetString("allowed_origins"), ",") {
		if origin = strings.TrimSpace(origin); origin != "" && origin != cfg.FrontendURL {
			cfg.AllowedOrigins = append(cfg.AllowedOrigins, origin)
		}
	}

	if cfg.JWTSecret == "" && cfg.IsDevelopment() {
		cfg.JWTSecret = devJWTSecret
	}

	return cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Environment == "development" || c.Environment == "test"
}

// Location resolves Timezone.
func (c *Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Timezone)
}

// Validate returns every configuration problem in a single error.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.StoreDriver {
	case StoreDriverPostgres:
		if c.DatabaseURL == "" {
			problems = append(problems, "DATABASE_URL is required when STORE_DRIVER is postgres")
		}
	case StoreDriverMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid store driver '%s': must be one of [%s %s]", c.StoreDriver, StoreDriverPostgres, StoreDriverMemory))
	}

	if c.JWTSecret == "" {
		problems = append(problems, "JWT_SECRET is required outside development")
	} else if !c.IsDevelopment() && len(c.JWTSecret) < 32 {
		problems = append(problems, "JWT_SECRET must be at least 32 characters outside development")
	}
	if c.TokenTTL <= 0 {
		problems = append(problems, fmt.Sprintf("invalid token ttl %v: must be positive", c.TokenTTL))
	}

	if c.RateLimit < 1 {
		problems = append(problems, fmt.Sprintf("invalid rate limit %d: must be at least 1", c.RateLimit))
	}
	if c.RateWindow < time.Second {
		problems = append(problems, fmt.Sprintf("invalid rate window %v: must be at least 1 second", c.RateWindow))
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if _, err := c.Location(); err != nil {
		problems = append(problems, fmt.Sprintf("invalid timezone '%s': %v", c.Timezone, err))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		problems = append(problems, fmt.Sprintf("invalid log level '%s': must be debug, info, warn or error", c.LogLevel))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
