// FILE: enlight/src/internal/config/config_test.go
package config

import (
	"path/filepath"
	"testing"

	"enlight/src/internal/core"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransportConfig_Endpoint(t *testing.T) {
	testCases := []struct {
		name     string
		cfg      TransportConfig
		expected string
	}{
		{
			name:     "HostWins",
			cfg:      TransportConfig{Host: "https://ingest.example/custom", BaseURL: "https://api.example"},
			expected: "https://ingest.example/custom",
		},
		{
			name:     "BaseURLWithSuffix",
			cfg:      TransportConfig{BaseURL: "https://api.example"},
			expected: "https://api.example/api/logs?protocol_version=0.5",
		},
		{
			name:     "BaseURLTrailingSlash",
			cfg:      TransportConfig{BaseURL: "https://api.example/"},
			expected: "https://api.example/api/logs?protocol_version=0.5",
		},
		{
			name:     "Empty",
			cfg:      TransportConfig{},
			expected: "",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.cfg.Endpoint())
		})
	}
}

func TestTransportConfig_StaticTags(t *testing.T) {
	t.Run("SortedByKey", func(t *testing.T) {
		cfg := TransportConfig{Tags: map[string]string{"region": "eu", "env": "prod"}}
		assert.Equal(t, []core.Tag{{"env", "prod"}, {"region", "eu"}}, cfg.StaticTags())
	})

	t.Run("LegacyAlias", func(t *testing.T) {
		cfg := TransportConfig{GlobalTags: map[string]string{"app": "billing"}}
		assert.Equal(t, []core.Tag{{"app", "billing"}}, cfg.StaticTags())
	})

	t.Run("TagsOverrideLegacy", func(t *testing.T) {
		cfg := TransportConfig{
			Tags:       map[string]string{"app": "new"},
			GlobalTags: map[string]string{"app": "old"},
		}
		assert.Equal(t, []core.Tag{{"app", "new"}}, cfg.StaticTags())
	})

	t.Run("None", func(t *testing.T) {
		cfg := TransportConfig{}
		assert.Empty(t, cfg.StaticTags())
	})
}

func TestValidateTransport(t *testing.T) {
	t.Run("FillsDefaults", func(t *testing.T) {
		opts := &TransportConfig{BaseURL: "https://api.example", APIKey: "k"}
		require.NoError(t, ValidateTransport(opts))
		assert.Equal(t, core.DefaultNamespace, opts.Namespace)
		assert.Equal(t, core.LevelInfo, opts.Level)
		assert.Equal(t, int64(core.DefaultFlushIntervalMS), opts.FlushIntervalMS)
	})

	t.Run("LevelNormalized", func(t *testing.T) {
		opts := &TransportConfig{Host: "http://localhost:8080/logs", APIKey: "k", Level: "DEBUG"}
		require.NoError(t, ValidateTransport(opts))
		assert.Equal(t, "debug", opts.Level)
	})

	errorCases := []struct {
		name     string
		opts     *TransportConfig
		contains string
	}{
		{"Nil", nil, "cannot be nil"},
		{"NoEndpoint", &TransportConfig{APIKey: "k"}, "'host' or 'base_url'"},
		{"BadScheme", &TransportConfig{Host: "ftp://x", APIKey: "k"}, "http or https"},
		{"NoAPIKey", &TransportConfig{Host: "http://x"}, "api_key"},
		{"BadLevel", &TransportConfig{Host: "http://x", APIKey: "k", Level: "loud"}, "invalid level"},
		{"NegativeBatch", &TransportConfig{Host: "http://x", APIKey: "k", MaxBatchSize: -1}, "max_batch_size"},
		{"NegativeTimeout", &TransportConfig{Host: "http://x", APIKey: "k", TimeoutMS: -5}, "timeout_ms"},
	}

	for _, tc := range errorCases {
		t.Run(tc.name, func(t *testing.T) {
			err := ValidateTransport(tc.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestValidateFilter(t *testing.T) {
	assert.NoError(t, ValidateFilter(0, &FilterConfig{Patterns: []string{"ok"}}))
	assert.NoError(t, ValidateFilter(0, &FilterConfig{Type: FilterTypeExclude, Logic: FilterLogicAnd}))

	err := ValidateFilter(2, &FilterConfig{Type: "maybe"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "filter[2]")

	err = ValidateFilter(0, &FilterConfig{Logic: "xor"})
	require.Error(t, err)

	err = ValidateFilter(1, &FilterConfig{Patterns: []string{"fine", "["}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pattern[1]")
}

func TestValidateConfig(t *testing.T) {
	t.Run("DefaultsWithEndpoint", func(t *testing.T) {
		cfg := defaults()
		cfg.Transport.BaseURL = "https://api.example"
		cfg.Transport.APIKey = "k"
		assert.NoError(t, validateConfig(cfg))
	})

	t.Run("DefaultsWithoutEndpoint", func(t *testing.T) {
		err := validateConfig(defaults())
		require.Error(t, err)
		assert.Contains(t, err.Error(), "transport config")
	})

	t.Run("BadLogOutput", func(t *testing.T) {
		cfg := defaults()
		cfg.Transport.BaseURL = "https://api.example"
		cfg.Transport.APIKey = "k"
		cfg.Logging.Output = "syslog"
		err := validateConfig(cfg)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "logging config")
	})

	t.Run("SourceDefaultsFilled", func(t *testing.T) {
		cfg := defaults()
		cfg.Transport.BaseURL = "https://api.example"
		cfg.Transport.APIKey = "k"
		cfg.Source = SourceConfig{}
		require.NoError(t, validateConfig(cfg))
		assert.Equal(t, core.LevelInfo, cfg.Source.DefaultLevel)
		assert.Equal(t, int64(1000), cfg.Source.BufferSize)
	})
}

func TestCustomEnvTransform(t *testing.T) {
	assert.Equal(t, "ENLIGHT_TRANSPORT_API_KEY", customEnvTransform("transport.api_key"))
	assert.Equal(t, "ENLIGHT_LOGGING_LEVEL", customEnvTransform("logging.level"))
}

func TestGetConfigPath(t *testing.T) {
	t.Run("AbsoluteFile", func(t *testing.T) {
		abs := filepath.Join(t.TempDir(), "custom.toml")
		t.Setenv("ENLIGHT_CONFIG_FILE", abs)
		assert.Equal(t, abs, GetConfigPath())
	})

	t.Run("RelativeFileInDir", func(t *testing.T) {
		t.Setenv("ENLIGHT_CONFIG_FILE", "custom.toml")
		t.Setenv("ENLIGHT_CONFIG_DIR", "/etc/enlight")
		assert.Equal(t, filepath.Join("/etc/enlight", "custom.toml"), GetConfigPath())
	})

	t.Run("DirOnly", func(t *testing.T) {
		t.Setenv("ENLIGHT_CONFIG_FILE", "")
		t.Setenv("ENLIGHT_CONFIG_DIR", "/etc/enlight")
		assert.Equal(t, filepath.Join("/etc/enlight", "enlight.toml"), GetConfigPath())
	})
}

func TestValidateRateLimit(t *testing.T) {
	tests := []struct {
		name    string
		cfg     RateLimitConfig
		wantErr bool
	}{
		{"Disabled", RateLimitConfig{}, false},
		{"Drop", RateLimitConfig{Rate: 100, Burst: 200, Policy: "DROP"}, false},
		{"Pass", RateLimitConfig{Rate: 1, Policy: "pass"}, false},
		{"NegativeRate", RateLimitConfig{Rate: -1}, true},
		{"NegativeBurst", RateLimitConfig{Burst: -1}, true},
		{"NegativeSize", RateLimitConfig{MaxEntrySizeBytes: -1}, true},
		{"UnknownPolicy", RateLimitConfig{Policy: "block"}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validateRateLimit(&tt.cfg)
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}

	assert.Equal(t, PolicyDrop, RateLimitConfig{}.ParsePolicy())
	assert.Equal(t, PolicyPass, RateLimitConfig{Policy: "Pass"}.ParsePolicy())
}
