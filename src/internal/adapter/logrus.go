// FILE: enlight/src/internal/adapter/logrus.go
package adapter

import (
	"context"

	"enlight/src/internal/core"

	"github.com/sirupsen/logrus"
)

// LogrusHook forwards logrus entries to a Sink.
type LogrusHook struct {
	sink   Sink
	levels []logrus.Level
}

// NewLogrusHook creates a hook firing for levels, or for every level when none are given.
func NewLogrusHook(sink Sink, levels ...logrus.Level) *LogrusHook {
	if len(levels) == 0 {
		levels = logrus.AllLevels
	}
	return &LogrusHook{sink: sink, levels: levels}
}

// LogrusLevel maps a logrus level onto the transport level names.
func LogrusLevel(level logrus.Level) string {
	switch level {
	case logrus.PanicLevel, logrus.FatalLevel, logrus.ErrorLevel:
		return core.LevelError
	case logrus.WarnLevel:
		return core.LevelWarn
	case logrus.InfoLevel:
		return core.LevelInfo
	case logrus.DebugLevel:
		return core.LevelDebug
	default:
		return core.LevelSilly
	}
}

// Levels returns the list of levels the hook fires for.
func (h *LogrusHook) Levels() []logrus.Level {
	return h.levels
}

// Fire hands the entry to the sink. It never returns an error.
func (h *LogrusHook) Fire(entry *logrus.Entry) error {
	level := LogrusLevel(entry.Level)
	if !h.sink.Enabled(level) {
		return nil
	}

	ctx := entry.Context
	if ctx == nil {
		ctx = context.Background()
	}

	h.sink.Log(ctx, level, entry.Message, metaFor(level, entryFields(entry.Data)), nil)
	return nil
}

func entryFields(data logrus.Fields) core.Fields {
	if len(data) == 0 {
		return nil
	}
	return core.Any(map[string]any(data)).Fields()
}
