package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode/utf8"

	"annobot/database"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
	log "github.com/sirupsen/logrus"
)

// Config holds all configuration for the bot. It is built once by Load and
// passed explicitly to the components that need it.
type Config struct {
	// Discord
	DiscordToken  string `env:"DISCORD_TOKEN"`
	CommandPrefix string `env:"COMMAND_PREFIX" envDefault:"!"`
	OwnerID       int64  `env:"OWNER_ID"`
	BotVersion    string `env:"BOT_VERSION" envDefault:"3.2.0"`

	// Database
	DatabaseURL  string `env:"DATABASE_URL"`
	DatabaseName string `env:"DATABASE_NAME"`

	// Cooldowns are kept in memory when no Redis URL is configured
	RedisURL string `env:"REDIS_URL"`

	// Audit events are not forwarded when no NATS servers are configured
	NATSServers string `env:"NATS_SERVERS"`

	// Environment
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// OpenTelemetry
	OTelEnabled              bool   `env:"OTEL_ENABLED" envDefault:"false"`
	OTelServiceName          string `env:"OTEL_SERVICE_NAME" envDefault:"annobot"`
	OTelExporterType         string `env:"OTEL_EXPORTER_TYPE" envDefault:"console"`
	OTelOTLPEndpoint         string `env:"OTEL_OTLP_ENDPOINT" envDefault:"localhost:4317"`
	OTelExportIntervalMillis int    `env:"OTEL_EXPORT_INTERVAL_MILLIS" envDefault:"30000"`
}

// Load reads an optional .env file and then the process environment.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env file: %w", err)
	}
	return FromEnvironment()
}

// FromEnvironment parses the process environment without touching .env.
func FromEnvironment() (*Config, error) {
	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks the invariants the rest of the bot relies on.
func (c *Config) Validate() error {
	if utf8.RuneCountInString(c.CommandPrefix) != 1 || strings.TrimSpace(c.CommandPrefix) == "" {
		return fmt.Errorf("COMMAND_PREFIX must be a single non-space character, got %q", c.CommandPrefix)
	}
	if c.IsTest() {
		return nil
	}
	if c.DiscordToken == "" {
		return fmt.Errorf("DISCORD_TOKEN is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.OTelExportIntervalMillis <= 0 {
		return fmt.Errorf("OTEL_EXPORT_INTERVAL_MILLIS must be positive")
	}
	return nil
}

// GetDatabaseURL constructs the full database URL by combining base URL and database name
func (c *Config) GetDatabaseURL() string {
	return database.ConstructDatabaseURL(c.DatabaseURL, c.DatabaseName)
}

func (c *Config) IsTest() bool {
	return c.Environment == "test"
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// ConfigureLogging applies the configured level and formatter to the
// standard logrus logger.
func (c *Config) ConfigureLogging() error {
	level, err := log.ParseLevel(c.LogLevel)
	if err != nil {
		return fmt.Errorf("invalid LOG_LEVEL %q: %w", c.LogLevel, err)
	}
	log.SetLevel(level)

	if c.IsProduction() {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	}
	return nil
}

// NewTestConfig creates a minimal config suitable for unit tests
func NewTestConfig() *Config {
	return &Config{
		CommandPrefix:            "!",
		OwnerID:                  999999,
		BotVersion:               "test",
		Environment:              "test",
		LogLevel:                 "debug",
		OTelServiceName:          "annobot-test",
		OTelExporterType:         "none",
		OTelExportIntervalMillis: 1000,
	}
}
