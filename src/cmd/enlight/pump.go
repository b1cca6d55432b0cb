// FILE: enlight/src/cmd/enlight/pump.go
package main

import (
	"context"

	"enlight/src/internal/core"
	"enlight/src/internal/flow"
	"enlight/src/internal/source"
)

// Part of the transport the pump needs
type logSink interface {
	Log(ctx context.Context, level, msg string, meta core.Value, done func(error))
}

// Forwards source entries the limiter allows to the sink until the channel
// closes or ctx ends. Returns the number of entries forwarded.
func pump(ctx context.Context, entries <-chan source.Entry, limiter *flow.RateLimiter, sink logSink) uint64 {
	var forwarded uint64
	for {
		select {
		case entry, ok := <-entries:
			if !ok {
				return forwarded
			}
			if !limiter.Allow(entry) {
				continue
			}
			sink.Log(ctx, entry.Level, entry.Message, entry.Meta, nil)
			forwarded++
		case <-ctx.Done():
			return forwarded
		}
	}
}
