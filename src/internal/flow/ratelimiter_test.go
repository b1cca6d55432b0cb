// FILE: enlight/src/internal/flow/ratelimiter_test.go
package flow

import (
	"testing"

	"enlight/src/internal/config"
	"enlight/src/internal/source"

	"github.com/lixenwraith/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRateLimiter_Disabled(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{}, log.NewLogger())
	assert.Nil(t, l)
	assert.True(t, l.Allow(source.Entry{RawSize: 1 << 20}))
	assert.Equal(t, false, l.GetStats()["enabled"])
}

func TestRateLimiter_Burst(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{Rate: 0.001, Burst: 3}, log.NewLogger())
	require.NotNil(t, l)

	allowed := 0
	for i := 0; i < 10; i++ {
		if l.Allow(source.Entry{Message: "x"}) {
			allowed++
		}
	}
	assert.Equal(t, 3, allowed)

	stats := l.GetStats()
	assert.Equal(t, uint64(7), stats["dropped_total"])
	assert.Equal(t, "drop", stats["policy"])
}

func TestRateLimiter_MaxEntrySize(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{MaxEntrySizeBytes: 10}, log.NewLogger())
	require.NotNil(t, l)

	assert.True(t, l.Allow(source.Entry{RawSize: 10}))
	assert.False(t, l.Allow(source.Entry{RawSize: 11}))
	assert.Equal(t, uint64(1), l.GetStats()["dropped_by_size_total"])
}

func TestRateLimiter_PassPolicy(t *testing.T) {
	l := NewRateLimiter(config.RateLimitConfig{Rate: 0.001, Burst: 1, Policy: "pass"}, log.NewLogger())
	require.NotNil(t, l)

	for i := 0; i < 5; i++ {
		assert.True(t, l.Allow(source.Entry{}))
	}
	assert.Equal(t, "pass", l.GetStats()["policy"])
}
