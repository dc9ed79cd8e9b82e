// Package config provides configuration management for dockctl with Viper
// integration: a TOML config file under the XDG config directory, DOCKCTL_*
// environment overrides, and JSON schema generation.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/spf13/viper"
)

const (
	dirPerm  = 0o755
	filePerm = 0o644

	envPrefix = "DOCKCTL"
	appDir    = "docktree"
)

// Config is the complete dockctl configuration.
type Config struct {
	// LayoutsDir is where layout JSON files live by default.
	LayoutsDir string `mapstructure:"layouts_dir" json:"layouts_dir"`

	Database DatabaseConfig `mapstructure:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" json:"logging"`
}

// DatabaseConfig holds the layout library database settings.
type DatabaseConfig struct {
	Path string `mapstructure:"path" json:"path"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level string `mapstructure:"level" json:"level"`
}

// Manager handles configuration loading and access.
type Manager struct {
	mu     sync.RWMutex
	config *Config
	viper  *viper.Viper
}

// NewManager creates a manager, loads the config file when one exists and
// applies defaults and environment overrides.
func NewManager() (*Manager, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("toml")

	if configDir, err := GetConfigDir(); err == nil {
		v.AddConfigPath(configDir)
	}
	v.AddConfigPath(".") // current directory for development

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	m := &Manager{viper: v}
	m.setDefaults()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
		// No config file is fine; defaults and env fill in.
	}

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	m.config = config
	return m, nil
}

// Get returns the current configuration.
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.config
}

func (m *Manager) setDefaults() {
	defaults := DefaultConfig()
	m.viper.SetDefault("layouts_dir", defaults.LayoutsDir)
	m.viper.SetDefault("database.path", defaults.Database.Path)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
}

// DefaultConfig returns the built-in defaults, anchored in the XDG dirs.
func DefaultConfig() *Config {
	layoutsDir := "."
	if dataDir, err := GetDataDir(); err == nil {
		layoutsDir = filepath.Join(dataDir, "layouts")
	}
	dbPath := filepath.Join(layoutsDir, "docktree.db")
	if dataDir, err := GetDataDir(); err == nil {
		dbPath = filepath.Join(dataDir, "docktree.db")
	}

	return &Config{
		LayoutsDir: layoutsDir,
		Database:   DatabaseConfig{Path: dbPath},
		Logging:    LoggingConfig{Level: "info"},
	}
}

// GetConfigDir returns the dockctl config directory, creating nothing.
func GetConfigDir() (string, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("resolve config directory: %w", err)
	}
	return filepath.Join(base, appDir), nil
}

// GetDataDir returns the dockctl data directory.
func GetDataDir() (string, error) {
	if xdg := os.Getenv("XDG_DATA_HOME"); xdg != "" {
		return filepath.Join(xdg, appDir), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("resolve data directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", appDir), nil
}

// EnsureDirectories creates the config and data directories.
func EnsureDirectories() error {
	for _, get := range []func() (string, error){GetConfigDir, GetDataDir} {
		dir, err := get()
		if err != nil {
			return err
		}
		if err := os.MkdirAll(dir, dirPerm); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}
