// Package config loads server settings from the environment, reading a
// .env file first when one exists, and balance tables from presets and an
// optional YAML override file.
package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/talgya/task-tycoon/internal/economy"
	"github.com/talgya/task-tycoon/internal/persistence"
)

// Config holds the server settings.
type Config struct {
	Addr        string     // TYCOON_ADDR
	DataDir     string     // TYCOON_DATA_DIR
	Store       string     // TYCOON_STORE: sqlite, file, or memory
	Seed        int64      // TYCOON_SEED; 0 draws from crypto/rand
	Difficulty  string     // TYCOON_DIFFICULTY: standard, casual, or hard
	BalanceFile string     // TYCOON_BALANCE_FILE
	CORSOrigins []string   // CORS_ORIGINS, comma-separated
	LogLevel    slog.Level // TYCOON_LOG_LEVEL
}

// Load reads .env (if present) and the environment.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:        envOrDefault("TYCOON_ADDR", ":5000"),
		DataDir:     envOrDefault("TYCOON_DATA_DIR", "data"),
		Store:       strings.ToLower(envOrDefault("TYCOON_STORE", persistence.KindSQLite)),
		Difficulty:  strings.ToLower(envOrDefault("TYCOON_DIFFICULTY", PresetStandard)),
		BalanceFile: os.Getenv("TYCOON_BALANCE_FILE"),
		CORSOrigins: splitList(os.Getenv("CORS_ORIGINS")),
	}

	switch cfg.Store {
	case persistence.KindSQLite, persistence.KindFile, persistence.KindMemory:
	default:
		return nil, fmt.Errorf("TYCOON_STORE: unknown store %q", cfg.Store)
	}

	if v := os.Getenv("TYCOON_SEED"); v != "" {
		seed, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("TYCOON_SEED: %w", err)
		}
		cfg.Seed = seed
	}

	if v := os.Getenv("TYCOON_LOG_LEVEL"); v != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(v)); err != nil {
			return nil, fmt.Errorf("TYCOON_LOG_LEVEL: %w", err)
		}
	}

	return cfg, nil
}

// Tables builds the balance tables: the difficulty preset, then the YAML
// overrides from BalanceFile when set.
func (c *Config) Tables() (economy.Tables, error) {
	t, err := Preset(c.Difficulty)
	if err != nil {
		return economy.Tables{}, err
	}
	if c.BalanceFile == "" {
		return t, nil
	}
	return LoadBalance(c.BalanceFile, t)
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func splitList(v string) []string {
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
