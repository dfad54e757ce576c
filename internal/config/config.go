package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"finadvisor/internal/backend"
)

type Config struct {
	// HTTP server
	Port string

	// Backend selection
	DataBackend string

	// SQLite
	SQLiteDBPath string

	// Postgres
	PostgresDSN string

	// Google Sheets
	GoogleSpreadsheetID   string
	GoogleCredentialsJSON string
	GoogleCredentialsFile string

	// AMQP (alert publishing)
	AMQPURL      string
	AMQPExchange string
	AMQPQueue    string

	// When true the worker also consumes published alerts and
	// dispatches notifications for them.
	NotifyAlerts bool

	// Alert worker
	EvalInterval time.Duration

	// Demo backend seed
	DemoSeed int64
}

func Load() *Config {
	return &Config{
		Port:        getEnv("PORT", "8081"),
		DataBackend: getEnv("DATA_BACKEND", "demo"),

		SQLiteDBPath: getEnv("SQLITE_DB_PATH", "./data/finadvisor.db"),
		PostgresDSN:  getEnv("POSTGRES_DSN", ""),

		GoogleSpreadsheetID:   getEnv("GOOGLE_SPREADSHEET_ID", ""),
		GoogleCredentialsJSON: getEnv("GOOGLE_CREDENTIALS_JSON", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", ""),

		AMQPURL:      getEnv("AMQP_URL", ""),
		AMQPExchange: getEnv("AMQP_EXCHANGE", "finadvisor"),
		AMQPQueue:    getEnv("AMQP_QUEUE", "financial_alerts"),
		NotifyAlerts: getEnvBool("ALERT_NOTIFY", false),

		EvalInterval: getEnvDuration("EVAL_INTERVAL", 1*time.Hour),
		DemoSeed:     getEnvInt64("DEMO_SEED", 42),
	}
}

// Validate checks the configuration and returns a combined error listing
// every problem found.
func (c *Config) Validate() error {
	var problems []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		problems = append(problems, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	backendType := backend.Type(c.DataBackend)
	if !backendType.IsValid() {
		problems = append(problems, fmt.Sprintf(
			"invalid data backend '%s': must be one of sqlite, postgres, sheets, demo", c.DataBackend))
	}

	switch backendType {
	case backend.SQLiteBackend:
		if c.SQLiteDBPath == "" {
			problems = append(problems, "SQLite database path cannot be empty when using sqlite backend")
		}
	case backend.PostgresBackend:
		if c.PostgresDSN == "" {
			problems = append(problems, "POSTGRES_DSN is required when using postgres backend")
		}
	case backend.SheetsBackend:
		if c.GoogleSpreadsheetID == "" {
			problems = append(problems, "GOOGLE_SPREADSHEET_ID is required when using sheets backend")
		}
		if c.GoogleCredentialsJSON == "" && c.GoogleCredentialsFile == "" {
			problems = append(problems,
				"either GOOGLE_CREDENTIALS_JSON or GOOGLE_CREDENTIALS_FILE must be provided for sheets backend")
		}
		if c.GoogleCredentialsFile != "" {
			if _, err := os.Stat(c.GoogleCredentialsFile); os.IsNotExist(err) {
				problems = append(problems, fmt.Sprintf(
					"Google credentials file does not exist: %s", c.GoogleCredentialsFile))
			}
		}
	}

	if c.AMQPURL != "" {
		if parsed, err := url.Parse(c.AMQPURL); err != nil {
			problems = append(problems, fmt.Sprintf("invalid AMQP URL '%s': %v", c.AMQPURL, err))
		} else if parsed.Scheme != "amqp" && parsed.Scheme != "amqps" {
			problems = append(problems, fmt.Sprintf(
				"invalid AMQP URL scheme '%s': must be 'amqp' or 'amqps'", parsed.Scheme))
		}
		if c.AMQPExchange == "" {
			problems = append(problems, "AMQP exchange name cannot be empty when AMQP URL is provided")
		}
		if c.AMQPQueue == "" {
			problems = append(problems, "AMQP queue name cannot be empty when AMQP URL is provided")
		}
	}

	if c.NotifyAlerts && c.AMQPURL == "" {
		problems = append(problems, "ALERT_NOTIFY requires AMQP_URL to be set")
	}

	if c.EvalInterval < time.Minute {
		problems = append(problems, fmt.Sprintf(
			"invalid eval interval %v: must be at least 1 minute", c.EvalInterval))
	} else if c.EvalInterval > 24*time.Hour {
		problems = append(problems, fmt.Sprintf(
			"invalid eval interval %v: must be at most 24 hours", c.EvalInterval))
	}

	if len(problems) > 0 {
		return fmt.Errorf("configuration validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}

// BackendConfig maps the application config onto the backend factory's
// config.
func (c *Config) BackendConfig() backend.Config {
	return backend.Config{
		Type:                  backend.Type(c.DataBackend),
		SQLiteDBPath:          c.SQLiteDBPath,
		PostgresDSN:           c.PostgresDSN,
		GoogleSpreadsheetID:   c.GoogleSpreadsheetID,
		GoogleCredentialsJSON: c.GoogleCredentialsJSON,
		GoogleCredentialsFile: c.GoogleCredentialsFile,
		DemoSeed:              c.DemoSeed,
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if b, err := strconv.ParseBool(value); err == nil {
			return b
		}
	}
	return defaultValue
}

func getEnvInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if i, err := strconv.ParseInt(value, 10, 64); err == nil {
			return i
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return defaultValue
}
