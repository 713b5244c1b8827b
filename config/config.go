package config

import (
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	SourceCSV      = "csv"
	SourcePostgres = "postgres"
)

// Config holds all application configuration. Values come from defaults,
// an optional YAML file and environment variables, in that order.
type Config struct {
	DatasetSource string `yaml:"dataset_source"`
	DatasetPath   string `yaml:"dataset_path"`
	ListenAddr    string `yaml:"listen_addr"`
	HistogramBins int    `yaml:"histogram_bins"`
	MaxRetries    int    `yaml:"max_retries"`
	Verbose       bool   `yaml:"verbose"`

	Postgres PostgresConfig `yaml:"postgres"`
	Snapshot SnapshotConfig `yaml:"snapshot"`
}

// PostgresConfig describes the read-only listings table used when
// DatasetSource is "postgres".
type PostgresConfig struct {
	Host     string `yaml:"host"`
	Port     string `yaml:"port"`
	User     string `yaml:"user"`
	Password string `yaml:"password"`
	DB       string `yaml:"db"`
	SSLMode  string `yaml:"sslmode"`
	Table    string `yaml:"table"`
}

// SnapshotConfig drives the headless-browser page capture.
type SnapshotConfig struct {
	BaseURL        string `yaml:"base_url"`
	OutputDir      string `yaml:"output_dir"`
	ChromeBin      string `yaml:"chrome_bin"`
	MaxConcurrency int    `yaml:"max_concurrency"`
	RateLimitMs    int    `yaml:"rate_limit_ms"`
	TimeoutSec     int    `yaml:"timeout_sec"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		DatasetSource: SourceCSV,
		DatasetPath:   "Cleaned_Ebay_Data.csv",
		ListenAddr:    ":8501",
		HistogramBins: 6,
		MaxRetries:    3,

		Postgres: PostgresConfig{
			Host:     "localhost",
			Port:     "5432",
			User:     "dashboard",
			Password: "dashboard",
			DB:       "ebay_db",
			SSLMode:  "disable",
			Table:    "listings",
		},
		Snapshot: SnapshotConfig{
			BaseURL:        "http://localhost:8501",
			OutputDir:      "./output/snapshots",
			MaxConcurrency: 2,
			RateLimitMs:    500,
			TimeoutSec:     60,
		},
	}
}

// Load reads the .env file, then the YAML file at path (if path is empty,
// DASHBOARD_CONFIG is consulted), then environment overrides.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil {
		log.Println("[config] No .env file found, falling back to system env vars")
	}

	cfg := Default()

	if path == "" {
		path = os.Getenv("DASHBOARD_CONFIG")
	}
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: parse %q: %w", path, err)
		}
	}

	cfg.applyEnvOverrides()

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) applyEnvOverrides() {
	c.DatasetSource = getEnv("DATASET_SOURCE", c.DatasetSource)
	c.DatasetPath = getEnv("DATASET_PATH", c.DatasetPath)
	c.ListenAddr = getEnv("LISTEN_ADDR", c.ListenAddr)
	c.HistogramBins = getEnvInt("HISTOGRAM_BINS", c.HistogramBins)
	c.MaxRetries = getEnvInt("MAX_RETRIES", c.MaxRetries)

	c.Postgres.Host = getEnv("POSTGRES_HOST", c.Postgres.Host)
	c.Postgres.Port = getEnv("POSTGRES_PORT", c.Postgres.Port)
	c.Postgres.User = getEnv("POSTGRES_USER", c.Postgres.User)
	c.Postgres.Password = getEnv("POSTGRES_PASSWORD", c.Postgres.Password)
	c.Postgres.DB = getEnv("POSTGRES_DB", c.Postgres.DB)
	c.Postgres.SSLMode = getEnv("POSTGRES_SSLMODE", c.Postgres.SSLMode)
	c.Postgres.Table = getEnv("POSTGRES_TABLE", c.Postgres.Table)

	c.Snapshot.BaseURL = getEnv("SNAPSHOT_BASE_URL", c.Snapshot.BaseURL)
	c.Snapshot.OutputDir = getEnv("SNAPSHOT_OUTPUT_DIR", c.Snapshot.OutputDir)
	c.Snapshot.ChromeBin = getEnv("CHROME_BIN", c.Snapshot.ChromeBin)
	c.Snapshot.MaxConcurrency = getEnvInt("SNAPSHOT_MAX_CONCURRENCY", c.Snapshot.MaxConcurrency)
	c.Snapshot.RateLimitMs = getEnvInt("SNAPSHOT_RATE_LIMIT_MS", c.Snapshot.RateLimitMs)
	c.Snapshot.TimeoutSec = getEnvInt("SNAPSHOT_TIMEOUT_SEC", c.Snapshot.TimeoutSec)
}

// Validate rejects configurations the dashboard cannot start with.
func (c *Config) Validate() error {
	switch c.DatasetSource {
	case SourceCSV:
		if c.DatasetPath == "" {
			return errors.New("config: dataset_path is required for the csv source")
		}
	case SourcePostgres:
		if c.Postgres.Table == "" {
			return errors.New("config: postgres.table is required for the postgres source")
		}
	default:
		return fmt.Errorf("config: unknown dataset_source %q (want %q or %q)",
			c.DatasetSource, SourceCSV, SourcePostgres)
	}
	if c.ListenAddr == "" {
		return errors.New("config: listen_addr must not be empty")
	}
	if c.HistogramBins < 1 {
		return fmt.Errorf("config: histogram_bins must be positive, got %d", c.HistogramBins)
	}
	return nil
}

// DSN returns the PostgreSQL connection string.
func (c *Config) DSN() string {
	return "host=" + c.Postgres.Host +
		" port=" + c.Postgres.Port +
		" user=" + c.Postgres.User +
		" password=" + c.Postgres.Password +
		" dbname=" + c.Postgres.DB +
		" sslmode=" + c.Postgres.SSLMode
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
