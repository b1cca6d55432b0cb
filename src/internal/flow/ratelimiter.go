// FILE: enlight/src/internal/flow/ratelimiter.go
package flow

import (
	"math"
	"sync/atomic"

	"enlight/src/internal/config"
	"enlight/src/internal/source"

	"github.com/lixenwraith/log"
	"golang.org/x/time/rate"
)

// RateLimiter enforces a lines-per-second cap on entries read by a source.
type RateLimiter struct {
	limiter *rate.Limiter
	policy  config.RateLimitPolicy
	logger  *log.Logger

	// Statistics
	maxEntrySizeBytes  int64
	droppedBySizeCount atomic.Uint64
	droppedCount       atomic.Uint64
}

// NewRateLimiter creates a limiter from configuration. It returns nil when no limit is set;
// a nil limiter allows everything.
func NewRateLimiter(cfg config.RateLimitConfig, logger *log.Logger) *RateLimiter {
	if cfg.Rate <= 0 && cfg.MaxEntrySizeBytes <= 0 {
		return nil
	}

	l := &RateLimiter{
		policy:            cfg.ParsePolicy(),
		logger:            logger,
		maxEntrySizeBytes: cfg.MaxEntrySizeBytes,
	}

	if cfg.Rate > 0 {
		burst := cfg.Burst
		if burst <= 0 {
			burst = int(math.Ceil(cfg.Rate)) // Default burst to rate
		}
		l.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}

	logger.Debug("msg", "Rate limiter created",
		"component", "rate_limiter",
		"rate", cfg.Rate,
		"burst", cfg.Burst,
		"policy", policyString(l.policy),
		"max_entry_size_bytes", cfg.MaxEntrySizeBytes)
	return l
}

// Allow checks if an entry is permitted to pass.
func (l *RateLimiter) Allow(entry source.Entry) bool {
	if l == nil || l.policy == config.PolicyPass {
		return true
	}

	// Check size limit first
	if l.maxEntrySizeBytes > 0 && entry.RawSize > l.maxEntrySizeBytes {
		l.droppedBySizeCount.Add(1)
		return false
	}

	if l.limiter != nil && !l.limiter.Allow() {
		if l.droppedCount.Add(1) == 1 {
			l.logger.Warn("msg", "Input rate limit exceeded, dropping lines",
				"component", "rate_limiter")
		}
		return false
	}

	return true
}

// GetStats returns statistics for the rate limiter.
func (l *RateLimiter) GetStats() map[string]any {
	if l == nil {
		return map[string]any{
			"enabled": false,
		}
	}

	stats := map[string]any{
		"enabled":               true,
		"dropped_total":         l.droppedCount.Load(),
		"dropped_by_size_total": l.droppedBySizeCount.Load(),
		"policy":                policyString(l.policy),
		"max_entry_size_bytes":  l.maxEntrySizeBytes,
	}

	if l.limiter != nil {
		stats["tokens"] = l.limiter.Tokens()
	}

	return stats
}

// policyString returns the string representation of a rate limit policy.
func policyString(p config.RateLimitPolicy) string {
	switch p {
	case config.PolicyDrop:
		return "drop"
	case config.PolicyPass:
		return "pass"
	default:
		return "unknown"
	}
}
