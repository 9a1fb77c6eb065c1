// Package config loads config.yaml and the schema contribution files that
// live next to it.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"

	"github.com/mesh-intelligence/shapes/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"

	// FileName is the config file inside the config directory.
	FileName = "config.yaml"

	KeyBackend = "backend"
	KeyDataDir = "data_dir"
	KeyVerbose = "verbose"
)

// defaultConfigYAML is written to config.yaml on first run.
const defaultConfigYAML = `# shapes configuration

# Backend selection
backend: sqlite

# Data directory (optional; overridable by --data-dir flag)
# data_dir:

# Debug logging
verbose: false
`

// Settings is the decoded content of config.yaml.
type Settings struct {
	Backend string `mapstructure:"backend"`
	DataDir string `mapstructure:"data_dir"`
	Verbose bool   `mapstructure:"verbose"`
}

// Load reads config.yaml from configDir. It creates the directory and a
// default config.yaml on first run. A missing file is not an error.
func Load(configDir string) (*viper.Viper, error) {
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		return nil, fmt.Errorf("ensure config dir: %w", err)
	}
	if err := ensureDefaultConfigFile(configDir); err != nil {
		return nil, fmt.Errorf("ensure default config: %w", err)
	}

	v := viper.New()
	v.SetDefault(KeyBackend, types.BackendSQLite)
	v.SetDefault(KeyVerbose, false)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// Decode extracts Settings from v.
func Decode(v *viper.Viper) (Settings, error) {
	var s Settings
	if err := v.Unmarshal(&s); err != nil {
		return Settings{}, fmt.Errorf("decode config: %w", err)
	}
	return s, nil
}

// StoreConfig returns the store configuration for dataDir.
func (s Settings) StoreConfig(dataDir string) types.Config {
	return types.Config{Backend: s.Backend, DataDir: dataDir}
}

func ensureDefaultConfigFile(configDir string) error {
	path := filepath.Join(configDir, FileName)

	_, err := os.Stat(path)
	if err == nil {
		return nil
	}
	if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}
	return os.WriteFile(path, []byte(defaultConfigYAML), 0o644)
}
