// FILE: enlight/src/cmd/enlight/main.go
package main

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"enlight/src/internal/config"
	"enlight/src/internal/version"

	"github.com/lixenwraith/log"
)

var logger *log.Logger

func main() {
	flagCfg, err := ParseFlags(os.Args[1:])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	InitOutputHandler(flagCfg.Quiet)

	if flagCfg.ShowVersion {
		fmt.Println(version.String())
		os.Exit(0)
	}

	if flagCfg.SaveConfig != "" {
		if err := config.Default().SaveToFile(flagCfg.SaveConfig); err != nil {
			FatalError(1, "Failed to save config: %v\n", err)
		}
		Print("Config template written to %s\n", flagCfg.SaveConfig)
		os.Exit(0)
	}

	// Set config file environment if specified
	if flagCfg.ConfigFile != "" {
		os.Setenv("ENLIGHT_CONFIG_FILE", flagCfg.ConfigFile)
	}

	cfg, err := config.Load()
	if err != nil {
		if flagCfg.ConfigFile != "" && strings.Contains(err.Error(), "not found") {
			FatalError(2, "Config file not found: %s\n", flagCfg.ConfigFile)
		}
		FatalError(1, "Failed to load config: %v\n", err)
	}

	// CLI overrides
	if flagCfg.LogOutput != "" {
		cfg.Logging.Output = flagCfg.LogOutput
	}
	if flagCfg.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(flagCfg.LogLevel)
	}

	if err := initializeLogger(cfg, flagCfg.Quiet); err != nil {
		FatalError(1, "Failed to initialize logger: %v\n", err)
	}
	defer shutdownLogger()

	if err := run(cfg); err != nil {
		logger.Error("msg", "enlight failed", "error", err)
		shutdownLogger()
		os.Exit(1)
	}
}

// Ships stdin until end of input or a termination signal
func run(cfg *config.Config) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	tr, src, limiter, err := bootstrap(cfg)
	if err != nil {
		return err
	}

	if err := tr.Start(ctx); err != nil {
		return fmt.Errorf("failed to start transport: %w", err)
	}

	entries := src.Subscribe()
	if err := src.Start(); err != nil {
		tr.Stop()
		return fmt.Errorf("failed to start source: %w", err)
	}

	sh := NewSignalHandler(logger)
	defer sh.Stop()

	pumped := make(chan uint64, 1)
	go func() {
		pumped <- pump(ctx, entries, limiter, tr)
		cancel()
	}()

	if sig := sh.Wait(ctx); sig != nil {
		src.Stop()
	} else {
		logger.Info("msg", "End of input reached")
	}
	forwarded := <-pumped

	// Stop flushes whatever is still queued
	done := make(chan struct{})
	go func() {
		tr.Stop()
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(10 * time.Second):
		logger.Error("msg", "Shutdown timeout exceeded, pending records lost")
	}

	src.Stop()
	logger.Info("msg", "Shutdown complete",
		"forwarded", forwarded,
		"source", src.GetStats(),
		"rate_limit", limiter.GetStats(),
		"transport", tr.Stats())
	return nil
}

func shutdownLogger() {
	if logger != nil {
		if err := logger.Shutdown(2 * time.Second); err != nil {
			// Best effort - can't log the shutdown error
			Error("Logger shutdown error: %v\n", err)
		}
	}
}
