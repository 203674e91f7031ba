package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const (
	DefaultBaseURL        = "https://api.spendee.com/"
	DefaultClientVersion  = "master"
	DefaultClientPlatform = "WEB"
	DefaultTimeout        = 30 * time.Second
)

// Config holds client configuration
type Config struct {
	BaseURL        string
	ClientVersion  string
	ClientPlatform string
	Timeout        time.Duration
	// SessionTTL bounds how long a token is trusted when the token itself
	// carries no expiry. Zero means no local bound.
	SessionTTL time.Duration
	LogLevel   string
}

// Default returns the configuration used when nothing is set in the environment
func Default() *Config {
	return &Config{
		BaseURL:        DefaultBaseURL,
		ClientVersion:  DefaultClientVersion,
		ClientPlatform: DefaultClientPlatform,
		Timeout:        DefaultTimeout,
		LogLevel:       "INFO",
	}
}

// NewConfig loads configuration from environment variables and an optional .env file
func NewConfig() (*Config, error) {
	// A missing .env file is fine
	_ = godotenv.Load()

	timeout, err := getEnvDuration("SPENDEE_TIMEOUT", DefaultTimeout)
	if err != nil {
		return nil, err
	}
	ttl, err := getEnvDuration("SPENDEE_SESSION_TTL", 0)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		BaseURL:        getEnv("SPENDEE_BASE_URL", DefaultBaseURL),
		ClientVersion:  getEnv("SPENDEE_CLIENT_VERSION", DefaultClientVersion),
		ClientPlatform: getEnv("SPENDEE_CLIENT_PLATFORM", DefaultClientPlatform),
		Timeout:        timeout,
		SessionTTL:     ttl,
		LogLevel:       getEnv("LOG_LEVEL", "INFO"),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration can be used to build a client
func (c *Config) Validate() error {
	if c.BaseURL == "" {
		return fmt.Errorf("SPENDEE_BASE_URL is required")
	}
	u, err := url.Parse(c.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("invalid SPENDEE_BASE_URL %q", c.BaseURL)
	}
	if c.Timeout < 0 {
		return fmt.Errorf("SPENDEE_TIMEOUT must not be negative")
	}
	if c.SessionTTL < 0 {
		return fmt.Errorf("SPENDEE_SESSION_TTL must not be negative")
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	return nil
}

// NewLogger builds a JSON logrus logger at the configured level
func (c *Config) NewLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.JSONFormatter{})
	level, err := logrus.ParseLevel(c.LogLevel)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return strings.TrimSpace(value)
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) (time.Duration, error) {
	value, exists := os.LookupEnv(key)
	if !exists || value == "" {
		return defaultVal, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", key, value, err)
	}
	return d, nil
}
