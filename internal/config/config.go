package config

import (
	"log"
	"os"
	"path/filepath"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds the application settings. Every field has a default; a
// config.yaml file and environment variables override them in that order.
type Config struct {
	DataDir     string `yaml:"data_dir"`
	DBPath      string `yaml:"db_path"`
	HistoryPath string `yaml:"history_path"`
	ModelDir    string `yaml:"model_dir"`

	CardsPerGame int `yaml:"cards_per_game"`

	ReminderIntervalMinutes int `yaml:"reminder_interval_minutes"`
	QuietHoursStart         int `yaml:"quiet_hours_start"`
	QuietHoursEnd           int `yaml:"quiet_hours_end"`
}

// Load reads .env, then the YAML config file (CONFIG_PATH or ./config.yaml),
// then environment overrides. A missing config file is fine; a malformed one
// is fatal.
func Load() Config {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	var cfg Config

	configPath := "config.yaml"
	if envPath := os.Getenv("CONFIG_PATH"); envPath != "" {
		configPath = envPath
	}
	if data, err := os.ReadFile(configPath); err == nil {
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			log.Fatalf("Error parsing %s: %v", configPath, err)
		}
		log.Printf("Loaded config from %s", configPath)
	}

	envOverride(&cfg.DataDir, "FLASHDECK_DATA_DIR")
	envOverride(&cfg.DBPath, "FLASHDECK_DB_PATH")
	envOverride(&cfg.HistoryPath, "FLASHDECK_HISTORY_PATH")
	envOverride(&cfg.ModelDir, "FLASHDECK_MODEL_DIR")
	envOverrideInt(&cfg.CardsPerGame, "FLASHDECK_CARDS_PER_GAME")
	envOverrideInt(&cfg.ReminderIntervalMinutes, "FLASHDECK_REMINDER_INTERVAL_MINUTES")
	envOverrideInt(&cfg.QuietHoursStart, "FLASHDECK_QUIET_HOURS_START")
	envOverrideInt(&cfg.QuietHoursEnd, "FLASHDECK_QUIET_HOURS_END")

	cfg.applyDefaults()
	return cfg
}

func (c *Config) applyDefaults() {
	if c.DataDir == "" {
		c.DataDir = "data"
	}
	if c.DBPath == "" {
		c.DBPath = filepath.Join(c.DataDir, "flashdeck.db")
	}
	if c.HistoryPath == "" {
		c.HistoryPath = filepath.Join(c.DataDir, "history.csv")
	}
	if c.ModelDir == "" {
		c.ModelDir = filepath.Join(c.DataDir, "model")
	}
	if c.CardsPerGame == 0 {
		c.CardsPerGame = 10
	}
	if c.ReminderIntervalMinutes == 0 {
		c.ReminderIntervalMinutes = 60
	}
	if c.QuietHoursStart == 0 && c.QuietHoursEnd == 0 {
		c.QuietHoursStart = 8
		c.QuietHoursEnd = 22
	}
}

func envOverride(target *string, key string) {
	if v := os.Getenv(key); v != "" {
		*target = v
	}
}

func envOverrideInt(target *int, key string) {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			log.Printf("config: ignoring %s=%q: %v", key, v, err)
			return
		}
		*target = n
	}
}
