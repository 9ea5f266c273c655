package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// DefaultDatasetURL is the public IMDb top-1000 CSV the charts are built from.
const DefaultDatasetURL = "https://raw.githubusercontent.com/utkarsh820/Datasets/refs/heads/main/imdb.csv"

// Config holds all application configuration loaded from environment variables.
type Config struct {
	DatasetURL   string
	OutputDir    string
	TopN         int
	FallbackYear int
	ChartDPI     int

	FetchTimeout time.Duration
	FetchRetries int

	LogLevel  string
	LogFormat string

	ExportCSVPath     string
	SummaryXLSXPath   string
	ExportConcurrency int

	PostgresHost     string
	PostgresPort     string
	PostgresUser     string
	PostgresPassword string
	PostgresDB       string
	PostgresSSLMode  string

	// EnvFileMissing is set when no .env file was found; main logs it once the logger exists.
	EnvFileMissing bool
}

// Load reads the .env file and returns a populated Config struct.
func Load() *Config {
	missing := godotenv.Load() != nil

	return &Config{
		DatasetURL:   getEnv("DATASET_URL", DefaultDatasetURL),
		OutputDir:    getEnv("OUTPUT_DIR", "."),
		TopN:         getEnvInt("TOP_N", 10),
		FallbackYear: getEnvInt("FALLBACK_YEAR", 1995),
		ChartDPI:     getEnvInt("CHART_DPI", 300),

		FetchTimeout: getEnvDuration("FETCH_TIMEOUT", 0),
		FetchRetries: getEnvInt("FETCH_RETRIES", 1),

		LogLevel:  getEnv("LOG_LEVEL", "info"),
		LogFormat: getEnv("LOG_FORMAT", "console"),

		ExportCSVPath:     getEnv("EXPORT_CSV_PATH", ""),
		SummaryXLSXPath:   getEnv("SUMMARY_XLSX_PATH", ""),
		ExportConcurrency: getEnvInt("EXPORT_CONCURRENCY", 2),

		PostgresHost:     getEnv("POSTGRES_HOST", ""),
		PostgresPort:     getEnv("POSTGRES_PORT", "5432"),
		PostgresUser:     getEnv("POSTGRES_USER", "imdb"),
		PostgresPassword: getEnv("POSTGRES_PASSWORD", ""),
		PostgresDB:       getEnv("POSTGRES_DB", "imdb"),
		PostgresSSLMode:  getEnv("POSTGRES_SSLMODE", "disable"),

		EnvFileMissing: missing,
	}
}

// Validate rejects settings the pipeline cannot run with.
func (c *Config) Validate() error {
	var errs []error
	if c.DatasetURL == "" {
		errs = append(errs, errors.New("DATASET_URL must not be empty"))
	}
	if c.TopN <= 0 {
		errs = append(errs, fmt.Errorf("TOP_N must be positive, got %d", c.TopN))
	}
	if c.ChartDPI <= 0 {
		errs = append(errs, fmt.Errorf("CHART_DPI must be positive, got %d", c.ChartDPI))
	}
	if c.FetchRetries <= 0 {
		errs = append(errs, fmt.Errorf("FETCH_RETRIES must be positive, got %d", c.FetchRetries))
	}
	if c.FetchTimeout < 0 {
		errs = append(errs, fmt.Errorf("FETCH_TIMEOUT must not be negative, got %s", c.FetchTimeout))
	}
	if c.ExportConcurrency <= 0 {
		errs = append(errs, fmt.Errorf("EXPORT_CONCURRENCY must be positive, got %d", c.ExportConcurrency))
	}
	return errors.Join(errs...)
}

// PostgresEnabled reports whether the cleaned table should be exported to PostgreSQL.
func (c *Config) PostgresEnabled() bool {
	return c.PostgresHost != ""
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.PostgresHost +
		" port=" + c.PostgresPort +
		" user=" + c.PostgresUser +
		" password=" + c.PostgresPassword +
		" dbname=" + c.PostgresDB +
		" sslmode=" + c.PostgresSSLMode
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if val := os.Getenv(key); val != "" {
		n, err := strconv.Atoi(val)
		if err == nil {
			return n
		}
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if val := os.Getenv(key); val != "" {
		d, err := time.ParseDuration(val)
		if err == nil {
			return d
		}
	}
	return fallback
}
