package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	// TVmaze
	BaseURL   string
	UserAgent string

	// IMDb ratings
	IMDBBaseURL string
	IMDBRatings bool

	// Defaults for calls without pathSettings
	EpisodeOrder  string
	DefaultRating string // "tvmaze" or "imdb"

	// Paths
	DataDir   string // $DATA_DIR
	CacheDir  string // $DATA_DIR/cache
	IDMapFile string // $DATA_DIR/id-map.db

	// Cache maintenance
	PruneSchedule string

	// Logging
	LogLevel string
	LogFile  string // empty means stderr

	// Metrics
	MetricsFile string // node-exporter textfile, empty disables
}

// Load loads configuration from environment variables and .env file
func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigName(".env")
	v.SetConfigType("env")
	v.AddConfigPath(".")
	v.AutomaticEnv()

	// Load .env file if it exists (ignore if not found)
	_ = v.ReadInConfig()

	v.SetDefault("TVMAZE_BASE_URL", "https://api.tvmaze.com")
	v.SetDefault("USER_AGENT", "tvmaze-scraper/1.0")
	v.SetDefault("IMDB_BASE_URL", "https://www.imdb.com")
	v.SetDefault("IMDB_RATINGS", true)
	v.SetDefault("EPISODE_ORDER", "default")
	v.SetDefault("DEFAULT_RATING", "tvmaze")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("PRUNE_SCHEDULE", "@every 6h")

	dataDir := v.GetString("DATA_DIR")
	if dataDir == "" {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}
		dataDir = filepath.Join(homeDir, ".config", "tvmaze-scraper")
	} else {
		absPath, err := filepath.Abs(dataDir)
		if err != nil {
			return nil, fmt.Errorf("failed to get absolute path for DATA_DIR: %w", err)
		}
		dataDir = absPath
	}

	cacheDir := filepath.Join(dataDir, "cache")
	if err := os.MkdirAll(cacheDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create cache directory: %w", err)
	}

	config := &Config{
		BaseURL:   v.GetString("TVMAZE_BASE_URL"),
		UserAgent: v.GetString("USER_AGENT"),

		IMDBBaseURL:   v.GetString("IMDB_BASE_URL"),
		IMDBRatings:   v.GetBool("IMDB_RATINGS"),
		EpisodeOrder:  v.GetString("EPISODE_ORDER"),
		DefaultRating: strings.ToLower(v.GetString("DEFAULT_RATING")),

		DataDir:   dataDir,
		CacheDir:  cacheDir,
		IDMapFile: filepath.Join(dataDir, "id-map.db"),

		PruneSchedule: v.GetString("PRUNE_SCHEDULE"),

		LogLevel: v.GetString("LOG_LEVEL"),
		LogFile:  v.GetString("LOG_FILE"),

		MetricsFile: v.GetString("METRICS_FILE"),
	}

	if err := config.validate(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *Config) validate() error {
	if err := validateURL("TVMAZE_BASE_URL", c.BaseURL); err != nil {
		return err
	}
	if c.IMDBRatings {
		if err := validateURL("IMDB_BASE_URL", c.IMDBBaseURL); err != nil {
			return err
		}
	}
	if c.DefaultRating != "tvmaze" && c.DefaultRating != "imdb" {
		return fmt.Errorf("DEFAULT_RATING must be tvmaze or imdb, got %q", c.DefaultRating)
	}
	return nil
}

func validateURL(key, raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("invalid %s: %w", key, err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("%s must be an http(s) URL, got %q", key, raw)
	}
	if u.Host == "" {
		return fmt.Errorf("%s has no host: %q", key, raw)
	}
	return nil
}
