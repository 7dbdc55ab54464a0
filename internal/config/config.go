package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Storage backends.
const (
	BackendSQLite   = "sqlite"
	BackendBigQuery = "bigquery"
)

// Config is the process-wide configuration, read once at startup.
type Config struct {
	GeminiAPIKey        string
	InsightsModel       string
	InsightsTemperature float32

	Port string

	StorageBackend  string
	DatabasePath    string
	BigQueryProject string
	BigQueryDataset string

	ExportBucket string

	DefaultOwnerID string
	MonthlyBudget  float64

	LogLevel string
	LogJSON  bool
}

// Load reads configuration from the environment. When envFile is set it is
// loaded first and must exist; otherwise a ".env" in the working directory is
// loaded if present. Variables already set in the environment win.
func Load(envFile string) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return nil, fmt.Errorf("loading env file %s: %w", envFile, err)
		}
	} else if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("loading .env: %w", err)
	}

	cfg := &Config{
		GeminiAPIKey:    firstNonEmpty(os.Getenv("GEMINI_API_KEY"), os.Getenv("GOOGLE_API_KEY")),
		InsightsModel:   getEnv("INSIGHTS_MODEL", "gemini-2.5-flash"),
		Port:            getEnv("PORT", "8080"),
		StorageBackend:  getEnv("STORAGE_BACKEND", BackendSQLite),
		DatabasePath:    getEnv("DATABASE_PATH", "spendwise.db"),
		BigQueryProject: os.Getenv("BIGQUERY_PROJECT"),
		BigQueryDataset: getEnv("BIGQUERY_DATASET", "finance"),
		ExportBucket:    os.Getenv("EXPORT_BUCKET"),
		DefaultOwnerID:  getEnv("DEFAULT_OWNER_ID", "default"),
		LogLevel:        getEnv("LOG_LEVEL", "info"),
	}

	temperature, err := strconv.ParseFloat(getEnv("INSIGHTS_TEMPERATURE", "0.7"), 32)
	if err != nil {
		return nil, fmt.Errorf("INSIGHTS_TEMPERATURE: %w", err)
	}
	cfg.InsightsTemperature = float32(temperature)

	cfg.MonthlyBudget, err = strconv.ParseFloat(getEnv("MONTHLY_BUDGET", "5000"), 64)
	if err != nil {
		return nil, fmt.Errorf("MONTHLY_BUDGET: %w", err)
	}

	if v := os.Getenv("LOG_JSON"); v != "" {
		cfg.LogJSON, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("LOG_JSON: %w", err)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks cross-field constraints.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case BackendSQLite:
		if c.DatabasePath == "" {
			return fmt.Errorf("DATABASE_PATH is required for the sqlite backend")
		}
	case BackendBigQuery:
		if c.BigQueryProject == "" {
			return fmt.Errorf("BIGQUERY_PROJECT is required for the bigquery backend")
		}
	default:
		return fmt.Errorf("unknown STORAGE_BACKEND %q", c.StorageBackend)
	}
	if c.InsightsTemperature < 0 || c.InsightsTemperature > 2 {
		return fmt.Errorf("INSIGHTS_TEMPERATURE must be between 0 and 2, got %v", c.InsightsTemperature)
	}
	if c.MonthlyBudget <= 0 {
		return fmt.Errorf("MONTHLY_BUDGET must be positive, got %v", c.MonthlyBudget)
	}
	return nil
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
