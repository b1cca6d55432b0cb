// FILE: enlight/src/cmd/enlight/bootstrap.go
package main

import (
	"fmt"

	"enlight/src/internal/config"
	"enlight/src/internal/flow"
	"enlight/src/internal/source"
	"enlight/src/internal/transport"
	"enlight/src/internal/version"

	"github.com/lixenwraith/log"
)

// Creates the transport, the stdin source feeding it and the optional input rate limiter
func bootstrap(cfg *config.Config) (*transport.Transport, *source.StdinSource, *flow.RateLimiter, error) {
	tr, err := transport.New(cfg.Transport, cfg.Filters, logger)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("failed to create transport: %w", err)
	}

	src := source.NewStdinSource(cfg.Source, logger)
	limiter := flow.NewRateLimiter(cfg.Source.RateLimit, logger)

	logger.Info("msg", "enlight initialized",
		"version", version.Short(),
		"endpoint", cfg.Transport.Endpoint(),
		"namespace", cfg.Transport.Namespace,
		"level", cfg.Transport.Level,
		"filters", len(cfg.Filters),
		"rate_limited", limiter != nil)

	return tr, src, limiter, nil
}

// Sets up the diagnostic logger based on configuration
func initializeLogger(cfg *config.Config, quiet bool) error {
	logger = log.NewLogger()

	configArgs, err := loggerArgs(&cfg.Logging, quiet)
	if err != nil {
		return err
	}
	return logger.InitWithDefaults(configArgs...)
}

// Translates the logging section into logger init arguments
func loggerArgs(cfg *config.LogConfig, quiet bool) ([]string, error) {
	var configArgs []string

	if quiet {
		// In quiet mode, disable ALL logging output
		return append(configArgs,
			"disable_file=true",
			"enable_stdout=false",
			"level=255"), nil
	}

	levelValue, err := parseLogLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("invalid log level: %w", err)
	}
	configArgs = append(configArgs, fmt.Sprintf("level=%d", levelValue))

	// Configure based on output mode
	switch cfg.Output {
	case "none":
		configArgs = append(configArgs, "disable_file=true", "enable_stdout=false")

	case "stdout":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stdout")

	case "stderr":
		configArgs = append(configArgs,
			"disable_file=true",
			"enable_stdout=true",
			"stdout_target=stderr")

	case "file":
		configArgs = append(configArgs, "enable_stdout=false")
		configArgs = appendFileArgs(configArgs, cfg)

	case "both":
		configArgs = append(configArgs, "enable_stdout=true", "stdout_target=stderr")
		configArgs = appendFileArgs(configArgs, cfg)

	default:
		return nil, fmt.Errorf("invalid log output mode: %s", cfg.Output)
	}

	if cfg.Format != "" {
		configArgs = append(configArgs, fmt.Sprintf("format=%s", cfg.Format))
	}

	return configArgs, nil
}

func appendFileArgs(configArgs []string, cfg *config.LogConfig) []string {
	return append(configArgs,
		fmt.Sprintf("directory=%s", cfg.File.Directory),
		fmt.Sprintf("name=%s", cfg.File.Name),
		fmt.Sprintf("max_size_mb=%d", cfg.File.MaxSizeMB),
		fmt.Sprintf("max_total_size_mb=%d", cfg.File.MaxTotalSizeMB))
}
