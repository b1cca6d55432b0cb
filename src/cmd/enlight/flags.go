// FILE: enlight/src/cmd/enlight/flags.go
package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/lixenwraith/log"
)

// Holds the parsed command line
type FlagConfig struct {
	ConfigFile  string
	SaveConfig  string
	ShowVersion bool
	Quiet       bool
	LogOutput   string
	LogLevel    string
}

func customUsage(fs *flag.FlagSet) func() {
	return func() {
		w := fs.Output()
		fmt.Fprintf(w, "enlight - ship log lines from stdin to an ingest service\n\n")
		fmt.Fprintf(w, "Usage: %s [options] < app.log\n\n", os.Args[0])
		fmt.Fprintf(w, "Options:\n")
		fs.PrintDefaults()

		fmt.Fprintf(w, "\nExamples:\n")
		fmt.Fprintf(w, "  # Ship a service's output\n")
		fmt.Fprintf(w, "  myservice 2>&1 | %s --config /etc/enlight.toml\n\n", os.Args[0])
		fmt.Fprintf(w, "  # Write a config template\n")
		fmt.Fprintf(w, "  %s --save-config ./enlight.toml\n\n", os.Args[0])

		fmt.Fprintf(w, "Environment Variables:\n")
		fmt.Fprintf(w, "  ENLIGHT_CONFIG_FILE               Config file path\n")
		fmt.Fprintf(w, "  ENLIGHT_CONFIG_DIR                Config directory\n")
		fmt.Fprintf(w, "  ENLIGHT_TRANSPORT_API_KEY         API key (overrides config)\n")
		fmt.Fprintf(w, "  ENLIGHT_TRANSPORT_BASE_URL        Ingest base URL (overrides config)\n")
	}
}

// Parses args, which exclude the program name
func ParseFlags(args []string) (*FlagConfig, error) {
	fs := flag.NewFlagSet("enlight", flag.ContinueOnError)
	fs.Usage = customUsage(fs)

	fc := &FlagConfig{}
	fs.StringVar(&fc.ConfigFile, "config", "", "Config file path")
	fs.StringVar(&fc.SaveConfig, "save-config", "", "Write a config template to this path and exit")
	fs.BoolVar(&fc.ShowVersion, "version", false, "Show version information")
	fs.BoolVar(&fc.Quiet, "quiet", false, "Suppress all diagnostic output")
	fs.StringVar(&fc.LogOutput, "log-output", "", "Log output: file, stdout, stderr, both, none (overrides config)")
	fs.StringVar(&fc.LogLevel, "log-level", "", "Log level: debug, info, warn, error (overrides config)")

	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	// Validate log-output flag if provided
	if fc.LogOutput != "" {
		validOutputs := map[string]bool{
			"file": true, "stdout": true, "stderr": true,
			"both": true, "none": true,
		}
		if !validOutputs[fc.LogOutput] {
			return nil, fmt.Errorf("invalid log-output: %s (valid: file, stdout, stderr, both, none)", fc.LogOutput)
		}
	}

	// Validate log-level flag if provided
	if fc.LogLevel != "" {
		if _, err := parseLogLevel(fc.LogLevel); err != nil {
			return nil, fmt.Errorf("invalid log-level: %s (valid: debug, info, warn, error)", fc.LogLevel)
		}
	}

	return fc, nil
}

func parseLogLevel(level string) (int, error) {
	switch strings.ToLower(level) {
	case "debug":
		return int(log.LevelDebug), nil
	case "info":
		return int(log.LevelInfo), nil
	case "warn", "warning":
		return int(log.LevelWarn), nil
	case "error":
		return int(log.LevelError), nil
	default:
		return 0, fmt.Errorf("unknown log level: %s", level)
	}
}
