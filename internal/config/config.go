package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/tabgraf/sheetnews/internal/news"
)

type Config struct {
	// Feed settings
	FeedsConfigPath     string
	SimilarityThreshold int // cluster join threshold, percent

	// Spreadsheet settings
	SpreadsheetID   string
	SheetID         int64 // numeric grid id inside the spreadsheet
	CredentialsFile string

	// App settings
	Debug            bool
	RequestTimeout   time.Duration
	RetryAttempts    int
	RetryDelay       time.Duration
	FetchConcurrency int
}

func Load() (*Config, error) {
	cfg := &Config{
		// Default values
		FeedsConfigPath:     "configs/feeds.yaml",
		SimilarityThreshold: news.DefaultThreshold,
		SheetID:             0,
		CredentialsFile:     "credentials.json",
		RequestTimeout:      30 * time.Second,
		RetryAttempts:       3,
		RetryDelay:          5 * time.Second,
		FetchConcurrency:    8,
	}

	// Load from environment
	cfg.SpreadsheetID = os.Getenv("SPREADSHEET_ID")
	cfg.FeedsConfigPath = getEnvOrDefault("FEEDS_CONFIG_PATH", cfg.FeedsConfigPath)
	cfg.CredentialsFile = getEnvOrDefault("GOOGLE_CREDENTIALS_FILE", cfg.CredentialsFile)

	// The threshold is parsed strictly: a caller handing a broken value
	// should hear about it instead of silently running with the default.
	if v := os.Getenv("SIMILARITY_THRESHOLD"); v != "" {
		val, err := strconv.Atoi(v)
		if err != nil {
			return nil, fmt.Errorf("SIMILARITY_THRESHOLD must be an integer, got %q", v)
		}
		cfg.SimilarityThreshold = val
	}

	if v := os.Getenv("SHEET_ID"); v != "" {
		if val, err := strconv.ParseInt(v, 10, 64); err == nil && val >= 0 {
			cfg.SheetID = val
		}
	}
	if v := os.Getenv("REQUEST_TIMEOUT"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RequestTimeout = d
		}
	}
	if v := os.Getenv("RETRY_ATTEMPTS"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.RetryAttempts = val
		}
	}
	if v := os.Getenv("RETRY_DELAY"); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			cfg.RetryDelay = d
		}
	}
	if v := os.Getenv("FETCH_CONCURRENCY"); v != "" {
		if val, err := strconv.Atoi(v); err == nil && val > 0 {
			cfg.FetchConcurrency = val
		}
	}

	if debug := os.Getenv("DEBUG"); debug == "true" {
		cfg.Debug = true
	}

	return cfg, cfg.Validate()
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func (c *Config) Validate() error {
	if c.SpreadsheetID == "" {
		return fmt.Errorf("SPREADSHEET_ID is required")
	}
	if c.SimilarityThreshold < 0 || c.SimilarityThreshold > 100 {
		return fmt.Errorf("SIMILARITY_THRESHOLD must be between 0 and 100, got %d", c.SimilarityThreshold)
	}
	return nil
}
