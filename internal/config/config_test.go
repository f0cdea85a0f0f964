package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))

	cfg := Load()

	assert.Equal(t, "data", cfg.DataDir)
	assert.Equal(t, filepath.Join("data", "flashdeck.db"), cfg.DBPath)
	assert.Equal(t, filepath.Join("data", "history.csv"), cfg.HistoryPath)
	assert.Equal(t, filepath.Join("data", "model"), cfg.ModelDir)
	assert.Equal(t, 10, cfg.CardsPerGame)
	assert.Equal(t, 60, cfg.ReminderIntervalMinutes)
	assert.Equal(t, 8, cfg.QuietHoursStart)
	assert.Equal(t, 22, cfg.QuietHoursEnd)
}

func TestLoadFromYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := "data_dir: /var/lib/flashdeck\ncards_per_game: 25\nquiet_hours_start: 7\nquiet_hours_end: 21\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	t.Setenv("CONFIG_PATH", path)

	cfg := Load()

	assert.Equal(t, "/var/lib/flashdeck", cfg.DataDir)
	assert.Equal(t, filepath.Join("/var/lib/flashdeck", "history.csv"), cfg.HistoryPath)
	assert.Equal(t, 25, cfg.CardsPerGame)
	assert.Equal(t, 7, cfg.QuietHoursStart)
	assert.Equal(t, 21, cfg.QuietHoursEnd)
}

func TestEnvOverridesYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("data_dir: from-yaml\n"), 0644))
	t.Setenv("CONFIG_PATH", path)
	t.Setenv("FLASHDECK_DATA_DIR", "from-env")
	t.Setenv("FLASHDECK_CARDS_PER_GAME", "5")

	cfg := Load()

	assert.Equal(t, "from-env", cfg.DataDir)
	assert.Equal(t, 5, cfg.CardsPerGame)
}

func TestEnvOverrideBadIntIgnored(t *testing.T) {
	t.Setenv("CONFIG_PATH", filepath.Join(t.TempDir(), "missing.yaml"))
	t.Setenv("FLASHDECK_CARDS_PER_GAME", "lots")

	cfg := Load()
	assert.Equal(t, 10, cfg.CardsPerGame)
}
