// Package config loads runtime configuration. Values come from an
// optional TOML file first, then environment variables override.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	// HTTP server
	Port string `toml:"port"`

	// Persistence backend: memory, sqlite or postgres.
	DataBackend  string `toml:"data_backend"`
	SQLiteDBPath string `toml:"sqlite_db_path"`
	PostgresURL  string `toml:"postgres_url"`

	// AMQP event publishing (optional; empty URL disables it).
	AMQPURL      string `toml:"amqp_url"`
	AMQPExchange string `toml:"amqp_exchange"`
	AMQPQueue    string `toml:"amqp_queue"`

	// Smart entry (optional; empty key disables it).
	GeminiAPIKey string `toml:"gemini_api_key"`
	GeminiModel  string `toml:"gemini_model"`

	// Google Sheets mirror (optional; empty spreadsheet id disables it).
	SheetsSpreadsheetID   string `toml:"sheets_spreadsheet_id"`
	SheetsSheetName       string `toml:"sheets_sheet_name"`
	SheetsOAuthClientJSON string `toml:"sheets_oauth_client_json"`
	SheetsOAuthTokenJSON  string `toml:"sheets_oauth_token_json"`

	// Accounting cycle policy: MONTHLY, WEEKLY or CUSTOM.
	CycleKind     string `toml:"cycle_kind"`
	CycleStartDay int    `toml:"cycle_start_day"`

	// Dashboard
	UpcomingHorizonDays int `toml:"upcoming_horizon_days"`

	// Server timeouts
	ShutdownTimeout time.Duration `toml:"-"`

	// Logging: debug, info, warn, error.
	LogLevel string `toml:"log_level"`
}

// Load builds the configuration. DOMPET_CONFIG may point at a TOML file;
// environment variables always win.
func Load() (*Config, error) {
	cfg := &Config{
		Port:                "8082",
		DataBackend:         "memory",
		SQLiteDBPath:        "./data/dompet.db",
		AMQPExchange:        "dompet",
		AMQPQueue:           "ledger_events",
		GeminiModel:         "gemini-3-flash-preview",
		CycleKind:           "MONTHLY",
		CycleStartDay:       1,
		UpcomingHorizonDays: 7,
		ShutdownTimeout:     30 * time.Second,
		LogLevel:            "info",
	}

	if path := os.Getenv("DOMPET_CONFIG"); path != "" {
		if _, err := toml.DecodeFile(path, cfg); err != nil {
			return nil, fmt.Errorf("decode config file %s: %w", path, err)
		}
	}

	applyEnv(cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.DataBackend = getEnv("DATA_BACKEND", cfg.DataBackend)
	cfg.SQLiteDBPath = getEnv("SQLITE_DB_PATH", cfg.SQLiteDBPath)
	cfg.PostgresURL = getEnv("POSTGRES_URL", cfg.PostgresURL)
	cfg.AMQPURL = getEnv("AMQP_URL", cfg.AMQPURL)
	cfg.AMQPExchange = getEnv("AMQP_EXCHANGE", cfg.AMQPExchange)
	cfg.AMQPQueue = getEnv("AMQP_QUEUE", cfg.AMQPQueue)
	cfg.GeminiAPIKey = getEnv("GEMINI_API_KEY", cfg.GeminiAPIKey)
	cfg.GeminiModel = getEnv("GEMINI_MODEL", cfg.GeminiModel)
	cfg.SheetsSpreadsheetID = getEnv("SHEETS_SPREADSHEET_ID", cfg.SheetsSpreadsheetID)
	cfg.SheetsSheetName = getEnv("SHEETS_SHEET_NAME", cfg.SheetsSheetName)
	cfg.SheetsOAuthClientJSON = getEnv("SHEETS_OAUTH_CLIENT_JSON", cfg.SheetsOAuthClientJSON)
	cfg.SheetsOAuthTokenJSON = getEnv("SHEETS_OAUTH_TOKEN_JSON", cfg.SheetsOAuthTokenJSON)
	cfg.CycleKind = getEnv("CYCLE_KIND", cfg.CycleKind)
	cfg.CycleStartDay = getEnvInt("CYCLE_START_DAY", cfg.CycleStartDay)
	cfg.UpcomingHorizonDays = getEnvInt("UPCOMING_HORIZON_DAYS", cfg.UpcomingHorizonDays)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)
}

// Validate checks the configuration and returns an error listing every
// problem found.
func (c *Config) Validate() error {
	var errs []string

	if port, err := strconv.Atoi(c.Port); err != nil {
		errs = append(errs, fmt.Sprintf("invalid port '%s': must be a number", c.Port))
	} else if port < 1 || port > 65535 {
		errs = append(errs, fmt.Sprintf("invalid port %d: must be between 1 and 65535", port))
	}

	switch c.DataBackend {
	case "memory":
	case "sqlite":
		if strings.TrimSpace(c.SQLiteDBPath) == "" {
			errs = append(errs, "sqlite backend requires SQLITE_DB_PATH")
		}
	case "postgres":
		if strings.TrimSpace(c.PostgresURL) == "" {
			errs = append(errs, "postgres backend requires POSTGRES_URL")
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid data backend '%s': must be memory, sqlite or postgres", c.DataBackend))
	}

	switch c.CycleKind {
	case "MONTHLY", "WEEKLY":
	case "CUSTOM":
		if c.CycleStartDay < 1 || c.CycleStartDay > 31 {
			errs = append(errs, fmt.Sprintf("invalid cycle start day %d: must be between 1 and 31", c.CycleStartDay))
		}
	default:
		errs = append(errs, fmt.Sprintf("invalid cycle kind '%s': must be MONTHLY, WEEKLY or CUSTOM", c.CycleKind))
	}

	if c.UpcomingHorizonDays < 0 {
		errs = append(errs, fmt.Sprintf("invalid upcoming horizon %d: must not be negative", c.UpcomingHorizonDays))
	}

	switch c.LogLevel {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Sprintf("invalid log level '%s'", c.LogLevel))
	}

	if len(errs) > 0 {
		return fmt.Errorf("configuration errors: %s", strings.Join(errs, "; "))
	}
	return nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}
