// Package config reads the service configuration from the environment.
// A .env file, when present, is loaded by main before Load runs.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"quote_calculator/internal/infrastructure/database"
)

const (
	BackendFile     = "file"
	BackendSQLite   = "sqlite"
	BackendPostgres = "postgres"
	BackendDynamoDB = "dynamodb"
)

type Config struct {
	Port    int
	Backend string
	DataDir string

	SQLitePath  string
	DatabaseURL string
	DynamoDB    database.DynamoDBSettings

	MinFreeMB  uint64
	WarnFreeMB uint64

	PrepareTimeout time.Duration
	CommitTimeout  time.Duration
	TxTTL          time.Duration
	AutosaveQuiet  time.Duration

	DiskMonitorSpec string
}

// Load builds the configuration and rejects values the service cannot run with.
func Load() (Config, error) {
	dataDir := getenvDefault("DATA_DIR", "./data")
	cfg := Config{
		Backend:     strings.ToLower(getenvDefault("STORAGE_BACKEND", BackendFile)),
		DataDir:     dataDir,
		SQLitePath:  getenvDefault("SQLITE_PATH", filepath.Join(dataDir, "quotes.db")),
		DatabaseURL: os.Getenv("DB_URL"),
		DynamoDB: database.DynamoDBSettings{
			Region:          getenvDefault("AWS_REGION", "us-east-1"),
			Endpoint:        os.Getenv("DYNAMODB_ENDPOINT"),
			AccessKeyID:     os.Getenv("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: os.Getenv("AWS_SECRET_ACCESS_KEY"),
		},
		DiskMonitorSpec: getenvDefault("DISK_MONITOR_SPEC", "@every 1m"),
	}
	if cfg.DynamoDB.Endpoint != "" && cfg.DynamoDB.AccessKeyID == "" {
		cfg.DynamoDB.AccessKeyID = "local"
		cfg.DynamoDB.SecretAccessKey = "local"
	}

	var err error
	if cfg.Port, err = getenvInt("PORT", 8080); err != nil {
		return Config{}, err
	}
	if cfg.MinFreeMB, err = getenvUint("MIN_FREE_MB", 100); err != nil {
		return Config{}, err
	}
	if cfg.WarnFreeMB, err = getenvUint("WARN_FREE_MB", 500); err != nil {
		return Config{}, err
	}
	if cfg.PrepareTimeout, err = getenvDuration("PREPARE_TIMEOUT", 10*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.CommitTimeout, err = getenvDuration("COMMIT_TIMEOUT", 30*time.Second); err != nil {
		return Config{}, err
	}
	if cfg.TxTTL, err = getenvDuration("TX_TTL", 2*time.Minute); err != nil {
		return Config{}, err
	}
	if cfg.AutosaveQuiet, err = getenvDuration("AUTOSAVE_QUIET", 2*time.Second); err != nil {
		return Config{}, err
	}

	switch cfg.Backend {
	case BackendFile, BackendSQLite, BackendDynamoDB:
	case BackendPostgres:
		if cfg.DatabaseURL == "" {
			return Config{}, fmt.Errorf("STORAGE_BACKEND=postgres requires DB_URL")
		}
	default:
		return Config{}, fmt.Errorf("unknown STORAGE_BACKEND %q", cfg.Backend)
	}
	if cfg.WarnFreeMB < cfg.MinFreeMB {
		cfg.WarnFreeMB = cfg.MinFreeMB
	}
	return cfg, nil
}

func (c Config) MinFreeBytes() uint64  { return c.MinFreeMB * 1024 * 1024 }
func (c Config) WarnFreeBytes() uint64 { return c.WarnFreeMB * 1024 * 1024 }

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) (int, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return 0, fmt.Errorf("invalid %s=%q", key, v)
	}
	return n, nil
}

func getenvUint(key string, def uint64) (uint64, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s=%q", key, v)
	}
	return n, nil
}

func getenvDuration(key string, def time.Duration) (time.Duration, error) {
	v := os.Getenv(key)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("invalid %s=%q", key, v)
	}
	return d, nil
}
