// FILE: enlight/src/internal/filter/chain_test.go
package filter

import (
	"testing"

	"enlight/src/internal/config"

	"github.com/stretchr/testify/assert"
)

func TestNewChain(t *testing.T) {
	logger := newTestLogger()

	t.Run("Success", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"apple"}},
			{Type: config.FilterTypeExclude, Patterns: []string{"banana"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.NotNil(t, chain)
		assert.Equal(t, 2, chain.Len())
	})

	t.Run("ErrorInvalidRegexInChain", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Patterns: []string{"apple"}},
			{Patterns: []string{"["}},
		}
		chain, err := NewChain(configs, logger)
		assert.Error(t, err)
		assert.Nil(t, chain)
		assert.Contains(t, err.Error(), "filter[1]")
	})
}

func TestChain_Apply(t *testing.T) {
	logger := newTestLogger()
	entry := record("app", "info", "an apple a day")

	t.Run("EmptyChain", func(t *testing.T) {
		chain, err := NewChain(nil, logger)
		assert.NoError(t, err)
		assert.True(t, chain.Apply(entry))
	})

	t.Run("AllFiltersPass", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"apple"}},
			{Type: config.FilterTypeInclude, Patterns: []string{"day"}},
			{Type: config.FilterTypeExclude, Patterns: []string{"banana"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.True(t, chain.Apply(entry))
	})

	t.Run("OneFilterFails", func(t *testing.T) {
		configs := []config.FilterConfig{
			{Type: config.FilterTypeInclude, Patterns: []string{"apple"}},
			{Type: config.FilterTypeExclude, Patterns: []string{"day"}},
		}
		chain, err := NewChain(configs, logger)
		assert.NoError(t, err)
		assert.False(t, chain.Apply(entry))

		stats := chain.GetStats()
		assert.Equal(t, uint64(1), stats["total_processed"])
		assert.Equal(t, uint64(0), stats["total_passed"])
	})
}
