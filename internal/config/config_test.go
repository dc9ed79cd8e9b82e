package config

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.NotEmpty(t, cfg.LayoutsDir)
	assert.NotEmpty(t, cfg.Database.Path)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestNewManagerUsesDefaults(t *testing.T) {
	// Point everything at an empty sandbox so no real config file is found.
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())

	m, err := NewManager()
	require.NoError(t, err)

	cfg := m.Get()
	require.NotNil(t, cfg)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.LayoutsDir)
}

func TestNewManagerEnvOverride(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("XDG_DATA_HOME", t.TempDir())
	t.Setenv("DOCKCTL_LOGGING_LEVEL", "debug")

	m, err := NewManager()
	require.NoError(t, err)
	assert.Equal(t, "debug", m.Get().Logging.Level)
}

func TestConfigSchema(t *testing.T) {
	data, err := ConfigSchema()
	require.NoError(t, err)

	var schema map[string]any
	require.NoError(t, json.Unmarshal(data, &schema))
	assert.Equal(t, "dockctl configuration", schema["title"])
}
