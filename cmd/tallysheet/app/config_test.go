package app

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfig_Environment(t *testing.T) {
	t.Setenv("TALLYSHEET_INPUT_DIR", "from-env")
	t.Setenv("TALLYSHEET_MATCHES_TOKEN", "results")
	t.Setenv("LOG_FORMAT", "json")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.Equal(t, "from-env", cfg.Inputs.Dir)
	assert.Equal(t, "results", cfg.Inputs.MatchesToken)
	assert.Equal(t, "roster", cfg.Inputs.RosterToken)
	assert.Equal(t, "json", cfg.LogFormat)
	assert.Equal(t, "stderr", cfg.LogOutput)
}

func TestLoadConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tallysheet.yaml")
	content := "input_dir: event\nroster: event/players.xlsx\nsheet: Players\nrating_id_fields:\n  - usattId\nlog_level: debug\nformat: yaml\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := LoadConfigFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, cfg.ConfigFile)
	assert.Equal(t, "event", cfg.Inputs.Dir)
	assert.Equal(t, "event/players.xlsx", cfg.Inputs.Roster)
	assert.Equal(t, "Players", cfg.Inputs.Sheet)
	assert.Equal(t, []string{"usattId"}, cfg.Inputs.RatingIDFields)
	assert.Equal(t, "debug", cfg.EnvLogLevel)
	assert.Equal(t, "yaml", cfg.Format)
}

func TestLoadConfigFile_Missing(t *testing.T) {
	_, err := LoadConfigFile(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestConfig_UpdateFromFlags(t *testing.T) {
	cfg := &Config{Format: "yaml"}
	cfg.UpdateFromFlags(true, false, true, "", "")
	assert.True(t, cfg.Verbose)
	assert.True(t, cfg.NoColor)
	assert.Equal(t, "yaml", cfg.Format)

	cfg.UpdateFromFlags(false, false, false, "json", "error")
	assert.Equal(t, "json", cfg.Format)
	assert.Equal(t, "error", cfg.LogLevel)
}
