package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/gridot/cmd/gridotbench/internal/config"
)

func TestLoadUsesPositionalArgsWhenEnvUnset(t *testing.T) {
	cfg, err := config.Load([]string{"/data/dotmark", "3", "512"})
	require.NoError(t, err)
	assert.Equal(t, "/data/dotmark", cfg.DataDir)
	assert.Equal(t, 3, cfg.Runs)
	assert.Equal(t, 512, cfg.Resolution)
}

func TestLoadAppliesDefaultsWithNoArgsAndEnv(t *testing.T) {
	t.Setenv("GRIDOT_DATA_DIR", "/env/dotmark")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "/env/dotmark", cfg.DataDir)
	assert.Equal(t, 5, cfg.Runs)
	assert.Equal(t, 0, cfg.Resolution)
}

func TestLoadEnvDataDirShiftsPositionalArgs(t *testing.T) {
	t.Setenv("GRIDOT_DATA_DIR", "/env/dotmark")

	cfg, err := config.Load([]string{"2", "256"})
	require.NoError(t, err)
	assert.Equal(t, "/env/dotmark", cfg.DataDir)
	assert.Equal(t, 2, cfg.Runs)
	assert.Equal(t, 256, cfg.Resolution)
}

func TestLoadFailsWithoutDataDir(t *testing.T) {
	_, err := config.Load(nil)
	assert.ErrorIs(t, err, config.ErrMissingDataDir)
}

func TestLoadReadsLogLevelFromEnv(t *testing.T) {
	t.Setenv("GRIDOT_DATA_DIR", "/env/dotmark")
	t.Setenv("GRIDOT_LOG_LEVEL", "debug")

	cfg, err := config.Load(nil)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
}
