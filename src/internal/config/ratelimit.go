// FILE: enlight/src/internal/config/ratelimit.go
package config

import (
	"fmt"
	"strings"
)

// RateLimitPolicy defines the action to take when a rate limit is exceeded.
type RateLimitPolicy int

const (
	// PolicyDrop drops lines that exceed the rate limit.
	PolicyDrop RateLimitPolicy = iota
	// PolicyPass lets every line through, effectively disabling the limiter.
	PolicyPass
)

// RateLimitConfig caps how many input lines per second reach the transport.
type RateLimitConfig struct {
	// Rate is the number of lines allowed per second. Default: 0 (disabled).
	Rate float64 `toml:"rate"`
	// Burst is the maximum number of lines accepted in a short burst. Defaults to the Rate.
	Burst int `toml:"burst"`
	// Policy is "drop" (default) or "pass".
	Policy string `toml:"policy"`
	// MaxEntrySizeBytes is the maximum allowed size of a single line. 0 = no limit.
	MaxEntrySizeBytes int64 `toml:"max_entry_size_bytes"`
}

// ParsePolicy maps the configured policy name; unknown names were rejected by validation.
func (c RateLimitConfig) ParsePolicy() RateLimitPolicy {
	if strings.ToLower(c.Policy) == "pass" {
		return PolicyPass
	}
	return PolicyDrop
}

func validateRateLimit(cfg *RateLimitConfig) error {
	if cfg.Rate < 0 {
		return fmt.Errorf("rate limit rate cannot be negative")
	}

	if cfg.Burst < 0 {
		return fmt.Errorf("rate limit burst cannot be negative")
	}

	if cfg.MaxEntrySizeBytes < 0 {
		return fmt.Errorf("max entry size bytes cannot be negative")
	}

	switch strings.ToLower(cfg.Policy) {
	case "", "pass", "drop":
		// Valid policies
	default:
		return fmt.Errorf("invalid rate limit policy '%s' (must be 'pass' or 'drop')", cfg.Policy)
	}

	return nil
}
