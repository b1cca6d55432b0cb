// FILE: enlight/src/internal/adapter/adapter_test.go
package adapter

import (
	"context"
	"sync"

	"enlight/src/internal/core"
)

type call struct {
	ctx   context.Context
	level string
	msg   string
	meta  core.Value
}

// recorder is a Sink that keeps every call.
type recorder struct {
	mu    sync.Mutex
	min   string
	calls []call
}

func newRecorder(min string) *recorder {
	return &recorder{min: min}
}

func (r *recorder) Log(ctx context.Context, level, msg string, meta core.Value, done func(error)) {
	r.mu.Lock()
	r.calls = append(r.calls, call{ctx: ctx, level: level, msg: msg, meta: meta})
	r.mu.Unlock()
	if done != nil {
		done(nil)
	}
}

func (r *recorder) Enabled(level string) bool {
	return core.LevelEnabled(level, r.min)
}

func (r *recorder) all() []call {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]call(nil), r.calls...)
}
