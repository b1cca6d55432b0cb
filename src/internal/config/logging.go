// FILE: enlight/src/internal/config/logging.go
package config

// LogConfig configures the diagnostic log of the shipper itself
type LogConfig struct {
	// Output mode: "file", "stdout", "stderr", "both", "none"
	Output string `toml:"output"`

	// Log level: "debug", "info", "warn", "error"
	Level string `toml:"level"`

	// File output settings (when Output includes "file" or "both")
	File LogFileConfig `toml:"file"`

	// Format: "txt" or "json"
	Format string `toml:"format"`
}

type LogFileConfig struct {
	// Directory for log files
	Directory string `toml:"directory"`

	// Base name for log files
	Name string `toml:"name"`

	// Maximum size per log file in MB
	MaxSizeMB int64 `toml:"max_size_mb"`

	// Maximum total size of all logs in MB
	MaxTotalSizeMB int64 `toml:"max_total_size_mb"`
}

// DefaultLogConfig returns sensible logging defaults
func DefaultLogConfig() *LogConfig {
	return &LogConfig{
		Output: "stderr",
		Level:  "info",
		File: LogFileConfig{
			Directory:      "./log",
			Name:           "enlight",
			MaxSizeMB:      100,
			MaxTotalSizeMB: 1000,
		},
		Format: "txt",
	}
}
