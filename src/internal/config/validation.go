// FILE: enlight/src/internal/config/validation.go
package config

import (
	"fmt"
	"net/url"
	"regexp"
	"strings"

	"enlight/src/internal/core"

	lconfig "github.com/lixenwraith/config"
)

// validateConfig is the centralized validator for the entire configuration
func validateConfig(cfg *Config) error {
	if cfg == nil {
		return fmt.Errorf("config is nil")
	}

	if err := ValidateTransport(&cfg.Transport); err != nil {
		return fmt.Errorf("transport config: %w", err)
	}

	if err := validateLogConfig(&cfg.Logging); err != nil {
		return fmt.Errorf("logging config: %w", err)
	}

	if err := validateSource(&cfg.Source); err != nil {
		return fmt.Errorf("source config: %w", err)
	}

	for i := range cfg.Filters {
		if err := ValidateFilter(i, &cfg.Filters[i]); err != nil {
			return err
		}
	}

	return nil
}

// ValidateTransport checks transport options and fills defaults for unspecified fields.
func ValidateTransport(opts *TransportConfig) error {
	if opts == nil {
		return fmt.Errorf("transport options cannot be nil")
	}

	if opts.Host == "" && opts.BaseURL == "" {
		return fmt.Errorf("transport requires 'host' or 'base_url'")
	}

	parsedURL, err := url.Parse(opts.Endpoint())
	if err != nil {
		return fmt.Errorf("invalid endpoint URL: %w", err)
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return fmt.Errorf("endpoint URL must use http or https scheme: %s", opts.Endpoint())
	}

	if err := lconfig.NonEmpty(opts.APIKey); err != nil {
		return fmt.Errorf("transport requires 'api_key'")
	}

	// Set defaults for unspecified fields
	if opts.Namespace == "" {
		opts.Namespace = core.DefaultNamespace
	}
	if opts.Level == "" {
		opts.Level = core.LevelInfo
	}
	if opts.FlushIntervalMS <= 0 {
		opts.FlushIntervalMS = core.DefaultFlushIntervalMS
	}

	opts.Level = strings.ToLower(opts.Level)
	if !core.IsValidLevel(opts.Level) {
		return fmt.Errorf("invalid level: %s", opts.Level)
	}

	if opts.MaxBatchSize < 0 {
		return fmt.Errorf("max_batch_size cannot be negative: %d", opts.MaxBatchSize)
	}
	if opts.TimeoutMS < 0 {
		return fmt.Errorf("timeout_ms cannot be negative: %d", opts.TimeoutMS)
	}

	return nil
}

func validateLogConfig(cfg *LogConfig) error {
	validOutputs := map[string]bool{
		"file": true, "stdout": true, "stderr": true,
		"both": true, "none": true,
	}
	if !validOutputs[cfg.Output] {
		return fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	validLevels := map[string]bool{
		"debug": true, "info": true, "warn": true, "error": true,
	}
	if !validLevels[cfg.Level] {
		return fmt.Errorf("invalid log level: %s", cfg.Level)
	}

	validFormats := map[string]bool{
		"txt": true, "json": true, "": true,
	}
	if !validFormats[cfg.Format] {
		return fmt.Errorf("invalid log format: %s", cfg.Format)
	}

	if cfg.Output == "file" || cfg.Output == "both" {
		if err := lconfig.NonEmpty(cfg.File.Directory); err != nil {
			return fmt.Errorf("file output requires 'directory'")
		}
		if err := lconfig.NonEmpty(cfg.File.Name); err != nil {
			return fmt.Errorf("file output requires 'name'")
		}
	}

	return nil
}

func validateSource(cfg *SourceConfig) error {
	if cfg.DefaultLevel == "" {
		cfg.DefaultLevel = core.LevelInfo
	}
	if !core.IsValidLevel(cfg.DefaultLevel) {
		return fmt.Errorf("invalid default level: %s", cfg.DefaultLevel)
	}
	if cfg.BufferSize <= 0 {
		cfg.BufferSize = 1000
	}
	return validateRateLimit(&cfg.RateLimit)
}

// ValidateFilter checks a single filter definition.
func ValidateFilter(filterIndex int, cfg *FilterConfig) error {
	// Validate filter type
	switch cfg.Type {
	case FilterTypeInclude, FilterTypeExclude, "":
		// Valid types
	default:
		return fmt.Errorf("filter[%d]: invalid type '%s' (must be 'include' or 'exclude')",
			filterIndex, cfg.Type)
	}

	// Validate filter logic
	switch cfg.Logic {
	case FilterLogicOr, FilterLogicAnd, "":
		// Valid logic
	default:
		return fmt.Errorf("filter[%d]: invalid logic '%s' (must be 'or' or 'and')",
			filterIndex, cfg.Logic)
	}

	// Validate regex patterns
	for i, pattern := range cfg.Patterns {
		if _, err := regexp.Compile(pattern); err != nil {
			return fmt.Errorf("filter[%d] pattern[%d] '%s': invalid regex: %w",
				filterIndex, i, pattern, err)
		}
	}

	return nil
}
