// Package config loads mdflow's CLI configuration from a YAML file with
// environment variable overrides.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Parse  ParseConfig  `mapstructure:"parse"`
	Render RenderConfig `mapstructure:"render"`
}

// ParseConfig controls the parse command's stream replay and output.
type ParseConfig struct {
	Chunk     int  `mapstructure:"chunk"`     // Replay chunk size in bytes (0 = one full-parse call)
	Snapshots bool `mapstructure:"snapshots"` // Emit every intermediate parse result
	Indent    bool `mapstructure:"indent"`    // Pretty-print JSON output
}

// RenderConfig controls the render command's glamour output.
type RenderConfig struct {
	Style string `mapstructure:"style"` // Glamour style name (dark, light, notty, ...)
	Width int    `mapstructure:"width"` // Word-wrap width
}

func Load() (*Config, error) {
	configPath, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to get config dir: %w", err)
	}

	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(configPath)
	viper.AddConfigPath(".")

	viper.SetDefault("parse.chunk", 0)
	viper.SetDefault("parse.snapshots", false)
	viper.SetDefault("parse.indent", true)
	viper.SetDefault("render.style", "dark")
	viper.SetDefault("render.width", 80)

	viper.SetEnvPrefix("MDFLOW")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	// Read config file (optional - won't error if missing)
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// GetConfigDir returns the XDG config directory for mdflow.
// Uses $XDG_CONFIG_HOME if set, otherwise ~/.config
func GetConfigDir() (string, error) {
	if xdgHome := os.Getenv("XDG_CONFIG_HOME"); xdgHome != "" {
		return filepath.Join(xdgHome, "mdflow"), nil
	}
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".config", "mdflow"), nil
}
