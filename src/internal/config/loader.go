// FILE: enlight/src/internal/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"enlight/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

func defaults() *Config {
	return &Config{
		Transport: TransportConfig{
			Namespace:       core.DefaultNamespace,
			Level:           core.LevelInfo,
			FlushIntervalMS: core.DefaultFlushIntervalMS,
		},
		Logging: *DefaultLogConfig(),
		Source: SourceConfig{
			DefaultLevel: core.LevelInfo,
			GuessLevel:   true,
			BufferSize:   1000,
		},
	}
}

// Default returns the built-in configuration, used as a template by -save-config.
func Default() *Config {
	return defaults()
}

// Load reads configuration from defaults, the config file and ENLIGHT_ environment variables.
func Load() (*Config, error) {
	configPath := GetConfigPath()

	cfg, err := lconfig.NewBuilder().
		WithDefaults(defaults()).
		WithEnvPrefix("ENLIGHT_").
		WithFile(configPath).
		WithEnvTransform(customEnvTransform).
		WithSources(
			lconfig.SourceEnv,
			lconfig.SourceFile,
			lconfig.SourceDefault,
		).
		Build()

	if err != nil {
		if !strings.Contains(err.Error(), "not found") {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	finalConfig := &Config{}
	if err := cfg.Scan("", finalConfig); err != nil {
		return nil, fmt.Errorf("failed to scan config: %w", err)
	}

	return finalConfig, validateConfig(finalConfig)
}

func customEnvTransform(path string) string {
	env := strings.ReplaceAll(path, ".", "_")
	env = strings.ToUpper(env)
	env = "ENLIGHT_" + env
	return env
}

// GetConfigPath resolves the config file location from the environment.
func GetConfigPath() string {
	if configFile := os.Getenv("ENLIGHT_CONFIG_FILE"); configFile != "" {
		if filepath.IsAbs(configFile) {
			return configFile
		}
		if configDir := os.Getenv("ENLIGHT_CONFIG_DIR"); configDir != "" {
			return filepath.Join(configDir, configFile)
		}
		return configFile
	}

	if configDir := os.Getenv("ENLIGHT_CONFIG_DIR"); configDir != "" {
		return filepath.Join(configDir, "enlight.toml")
	}

	if homeDir, err := os.UserHomeDir(); err == nil {
		return filepath.Join(homeDir, ".config", "enlight.toml")
	}

	return "enlight.toml"
}
