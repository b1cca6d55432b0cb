// FILE: enlight/src/internal/config/config.go
package config

import (
	"sort"
	"strings"

	"enlight/src/internal/core"
)

// Config is the complete configuration of the enlight shipper binary.
type Config struct {
	Transport TransportConfig `toml:"transport"`
	Logging   LogConfig       `toml:"logging"`
	Source    SourceConfig    `toml:"source"`
	Filters   []FilterConfig  `toml:"filters"`
}

// TransportConfig configures the transport and its batch shipper.
type TransportConfig struct {
	// Full ingest URL. Takes precedence over BaseURL.
	Host string `toml:"host"`

	// Service base URL; the versioned logs path is appended.
	BaseURL string `toml:"base_url"`

	// API key sent with every batch
	APIKey string `toml:"api_key"`

	// Namespace reported for every record
	Namespace string `toml:"namespace"`

	// Server name override, defaults to the hostname
	Server string `toml:"server"`

	// Minimum level shipped: error, warn, info, http, verbose, debug, silly
	Level string `toml:"level"`

	// Strip ANSI color sequences from messages
	Decolorize bool `toml:"decolorize"`

	// Static tags added to every record
	Tags map[string]string `toml:"tags"`

	// Deprecated alias of Tags, used only when Tags is empty
	GlobalTags map[string]string `toml:"global_tags"`

	// Batching
	FlushIntervalMS int64 `toml:"flush_interval_ms"`
	MaxBatchSize    int64 `toml:"max_batch_size"` // 0 = flush on interval only

	// Network
	TimeoutMS          int64 `toml:"timeout_ms"` // 0 = no timeout
	Compress           bool  `toml:"compress"`
	InsecureSkipVerify bool  `toml:"insecure_skip_verify"`
}

// SourceConfig configures the stdin reader of the shipper binary.
type SourceConfig struct {
	// Level for lines that carry none
	DefaultLevel string `toml:"default_level"`

	// Guess the level of plain text lines from their content
	GuessLevel bool `toml:"guess_level"`

	// Lines buffered between reader and transport
	BufferSize int64 `toml:"buffer_size"`

	// Optional cap on lines per second
	RateLimit RateLimitConfig `toml:"rate_limit"`
}

// Endpoint returns the URL batches are posted to.
func (c *TransportConfig) Endpoint() string {
	if c.Host != "" {
		return c.Host
	}
	if c.BaseURL == "" {
		return ""
	}
	return strings.TrimRight(c.BaseURL, "/") + core.LogsPath
}

// StaticTags returns the configured static tags ordered by key.
func (c *TransportConfig) StaticTags() []core.Tag {
	src := c.Tags
	if len(src) == 0 {
		src = c.GlobalTags
	}

	keys := make([]string, 0, len(src))
	for k := range src {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	tags := make([]core.Tag, 0, len(keys))
	for _, k := range keys {
		tags = append(tags, core.NewTag(k, src[k]))
	}
	return tags
}
