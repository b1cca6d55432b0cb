// FILE: enlight/src/internal/core/const.go
package core

import "strings"

// Level names, ordered from most to least severe.
const (
	LevelError   = "error"
	LevelWarn    = "warn"
	LevelInfo    = "info"
	LevelHTTP    = "http"
	LevelVerbose = "verbose"
	LevelDebug   = "debug"
	LevelSilly   = "silly"
)

var levelPriority = map[string]int{
	LevelError:   0,
	LevelWarn:    1,
	LevelInfo:    2,
	LevelHTTP:    3,
	LevelVerbose: 4,
	LevelDebug:   5,
	LevelSilly:   6,
}

// LevelPriority returns the severity rank of a level name, lower is more severe.
// Unknown names rank as info.
func LevelPriority(level string) int {
	if p, ok := levelPriority[strings.ToLower(level)]; ok {
		return p
	}
	return levelPriority[LevelInfo]
}

// IsValidLevel reports whether level is a known level name.
func IsValidLevel(level string) bool {
	_, ok := levelPriority[strings.ToLower(level)]
	return ok
}

// LevelEnabled reports whether a record at level passes a minimum of min.
func LevelEnabled(level, min string) bool {
	return LevelPriority(level) <= LevelPriority(min)
}

// Default protocol values
const (
	DefaultNamespace       = "go"
	DefaultFlushIntervalMS = 5000
	APIKeyHeader           = "X-appenlight-api-key"
	LogsPath               = "/api/logs?protocol_version=0.5"
	MaxFlattenDepth        = 32
)
