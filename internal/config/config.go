// Package config loads server settings from the environment and an optional .env file.
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
)

// minSecretLength is the shortest accepted JWT signing secret, in bytes.
const minSecretLength = 32

// Config holds the server settings read from the environment by Load.
type Config struct {
	// HTTP server
	Port        string
	StaticPath  string
	MetricsPath string

	// Database
	DBPath string

	// Auth
	JWTSecret        string
	TokenDuration    time.Duration
	AdminName        string
	AdminPasscode    string
	LoginMaxAttempts int
	LoginLockout     time.Duration

	// Rate limiting, per client IP
	RateLimitRPS   float64
	RateLimitBurst int

	// Logging
	LogLevel  string
	LogFormat string

	// AMQP events; disabled when AMQPURL is empty
	AMQPURL          string
	AMQPExchange     string
	AMQPDialAttempts int
}

// Load reads .env if present, then the environment.
func Load() *Config {
	_ = godotenv.Load()
	return FromEnv()
}

// FromEnv builds a Config from the process environment only.
func FromEnv() *Config {
	return &Config{
		Port:        getEnv("PORT", "8080"),
		StaticPath:  getEnv("STATIC_PATH", "./static"),
		MetricsPath: getEnv("METRICS_PATH", "/metrics"),

		DBPath: getEnv("DB_PATH", "./data/messbook.db"),

		JWTSecret:        getEnv("JWT_SECRET", ""),
		TokenDuration:    getEnvDuration("TOKEN_DURATION", 24*time.Hour),
		AdminName:        getEnv("ADMIN_NAME", ""),
		AdminPasscode:    getEnv("ADMIN_PASSCODE", ""),
		LoginMaxAttempts: getEnvInt("LOGIN_MAX_ATTEMPTS", 5),
		LoginLockout:     getEnvDuration("LOGIN_LOCKOUT", 15*time.Minute),

		RateLimitRPS:   getEnvFloat("RATE_LIMIT_RPS", 10),
		RateLimitBurst: getEnvInt("RATE_LIMIT_BURST", 30),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "text"),

		AMQPURL:          getEnv("AMQP_URL", ""),
		AMQPExchange:     getEnv("AMQP_EXCHANGE", "messbook.events"),
		AMQPDialAttempts: getEnvInt("AMQP_DIAL_ATTEMPTS", 5),
	}
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	if c.DBPath == "" {
		problems = append(problems, "database path cannot be empty")
	}

	if len(c.JWTSecret) < minSecretLength {
		problems = append(problems, fmt.Sprintf("JWT_SECRET must be at least %d bytes", minSecretLength))
	}
	if c.TokenDuration <= 0 {
		problems = append(problems, "token duration must be positive")
	}
	if (c.AdminName == "") != (c.AdminPasscode == "") {
		problems = append(problems, "ADMIN_NAME and ADMIN_PASSCODE must be set together")
	}
	if c.LoginMaxAttempts < 1 {
		problems = append(problems, "login max attempts must be at least 1")
	}
	if c.LoginLockout <= 0 {
		problems = append(problems, "login lockout must be positive")
	}

	if c.RateLimitRPS < 0 {
		problems = append(problems, "rate limit must not be negative")
	}
	if c.RateLimitRPS > 0 && c.RateLimitBurst < 1 {
		problems = append(problems, "rate limit burst must be at least 1")
	}

	if !strings.HasPrefix(c.MetricsPath, "/") {
		problems = append(problems, fmt.Sprintf("metrics path '%s' must start with '/'", c.MetricsPath))
	}

	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be text or json", c.LogFormat))
	}

	if c.AMQPURL != "" {
		if parsedURL, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL: %v", err))
		} else if parsedURL.Scheme != "amqp" && parsedURL.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsedURL.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}

// Addr returns the listen address.
func (c *Config) Addr() string {
	return ":" + c.Port
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value := os.Getenv(key); value != "" {
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
