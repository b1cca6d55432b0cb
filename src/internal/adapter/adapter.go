// FILE: enlight/src/internal/adapter/adapter.go
package adapter

import (
	"context"

	"enlight/src/internal/core"
)

// Sink receives log calls from a host logging framework.
type Sink interface {
	Log(ctx context.Context, level, msg string, meta core.Value, done func(error))
	Enabled(level string) bool
}

// soleError returns the error when fields holds exactly one error-valued entry.
func soleError(fields core.Fields) (error, bool) {
	if len(fields) != 1 || !fields[0].Value.IsError() {
		return nil, false
	}
	return fields[0].Value.Err(), true
}

// metaFor picks the meta shape handed to the sink.
func metaFor(level string, fields core.Fields) core.Value {
	if level == core.LevelError {
		if err, ok := soleError(fields); ok {
			return core.Error(err)
		}
	}
	return core.Map(fields...)
}
