package main

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"
)

const (
	backendPostgres  = "postgres"
	backendFirestore = "firestore"
	backendMemory    = "memory"
)

var validBackends = []string{backendPostgres, backendFirestore, backendMemory}

// Config holds all configuration for the service.
type Config struct {
	Port    string `mapstructure:"PORT"`
	GinMode string `mapstructure:"GIN_MODE"`

	DataBackend string `mapstructure:"DATA_BACKEND"`

	// DatabaseURL wins over the individual DB_* settings when set.
	DatabaseURL    string `mapstructure:"DATABASE_URL"`
	DBHost         string `mapstructure:"DB_HOST"`
	DBPort         string `mapstructure:"DB_PORT"`
	DBUser         string `mapstructure:"DB_USER"`
	DBPassword     string `mapstructure:"DB_PASSWORD"`
	DBName         string `mapstructure:"DB_NAME"`
	DBSSLMode      string `mapstructure:"DB_SSLMODE"`
	MigrationsPath string `mapstructure:"MIGRATIONS_PATH"`

	FirestoreProjectID string `mapstructure:"FIRESTORE_PROJECT_ID"`

	AMQPURL      string `mapstructure:"AMQP_URL"`
	AMQPExchange string `mapstructure:"AMQP_EXCHANGE"`

	SnapshotSchedule   string        `mapstructure:"SNAPSHOT_SCHEDULE"`
	CORSAllowedOrigins []string      `mapstructure:"CORS_ALLOWED_ORIGINS"`
	StoreTimeout       time.Duration `mapstructure:"STORE_TIMEOUT"`

	LogLevel  string `mapstructure:"LOG_LEVEL"`
	LogFormat string `mapstructure:"LOG_FORMAT"`

	SeedDemoData bool `mapstructure:"SEED_DEMO_DATA"`
}

var configDefaults = map[string]interface{}{
	"PORT":                 "8080",
	"GIN_MODE":             "release",
	"DATA_BACKEND":         backendPostgres,
	"DB_HOST":              "localhost",
	"DB_PORT":              "5432",
	"DB_USER":              "postgres",
	"DB_PASSWORD":          "password",
	"DB_NAME":              "financetracker",
	"DB_SSLMODE":           "disable",
	"MIGRATIONS_PATH":      "db/migrations",
	"AMQP_EXCHANGE":        "ledger.events",
	"SNAPSHOT_SCHEDULE":    "55 23 * * *", // every day at 23:55
	"CORS_ALLOWED_ORIGINS": "http://localhost:3000",
	"STORE_TIMEOUT":        "10s",
	"LOG_LEVEL":            "info",
	"LOG_FORMAT":           "json",
	"SEED_DEMO_DATA":       false,
}

// LoadConfig reads configuration from environment variables, falling back to defaults.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	for key, value := range configDefaults {
		v.SetDefault(key, value)
	}

	// Bind envs explicitly so Unmarshal sees keys without a default
	for _, key := range []string{"DATABASE_URL", "FIRESTORE_PROJECT_ID", "AMQP_URL"} {
		_ = v.BindEnv(key)
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	config.DataBackend = strings.ToLower(strings.TrimSpace(config.DataBackend))
	config.CORSAllowedOrigins = splitOrigins(config.CORSAllowedOrigins)
	return &config, nil
}

// splitOrigins normalizes a list that may arrive as one comma-separated entry.
func splitOrigins(in []string) []string {
	var out []string
	for _, entry := range in {
		for _, origin := range strings.Split(entry, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				out = append(out, origin)
			}
		}
	}
	return out
}

// PostgresURL returns the connection string for the relational backend.
func (c *Config) PostgresURL() string {
	if c.DatabaseURL != "" {
		return c.DatabaseURL
	}
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSSLMode)
}

// Validate validates the configuration and returns an error listing every problem.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case backendPostgres:
		if c.DatabaseURL == "" && (c.DBHost == "" || c.DBName == "") {
			problems = append(problems, "postgres backend needs DATABASE_URL or DB_HOST and DB_NAME")
		}
		if c.MigrationsPath == "" {
			problems = append(problems, "MIGRATIONS_PATH cannot be empty when using postgres backend")
		}
	case backendFirestore:
		if c.FirestoreProjectID == "" {
			problems = append(problems, "FIRESTORE_PROJECT_ID cannot be empty when using firestore backend")
		}
	case backendMemory:
	default:
		problems = append(problems, fmt.Sprintf("invalid data backend '%s': must be one of %v", c.DataBackend, validBackends))
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

	if c.SnapshotSchedule != "" {
		if _, err := cron.ParseStandard(c.SnapshotSchedule); err != nil {
			problems = append(problems, fmt.Sprintf("invalid snapshot schedule '%s': %v", c.SnapshotSchedule, err))
		}
	}

	if c.StoreTimeout <= 0 {
		problems = append(problems, "STORE_TIMEOUT must be positive")
	}

	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		problems = append(problems, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}
	if c.LogFormat != "json" && c.LogFormat != "console" {
		problems = append(problems, fmt.Sprintf("invalid log format '%s': must be 'json' or 'console'", c.LogFormat))
	}

	if len(problems) > 0 {
		return errors.New("configuration validation failed:\n  - " + strings.Join(problems, "\n  - "))
	}
	return nil
}
