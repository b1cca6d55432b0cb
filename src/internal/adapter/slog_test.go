// FILE: enlight/src/internal/adapter/slog_test.go
package adapter

import (
	"context"
	"errors"
	"log/slog"
	"testing"

	"enlight/src/internal/core"
	"enlight/src/internal/txn"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level slog.Level
		want  string
	}{
		{slog.LevelError + 4, core.LevelError},
		{slog.LevelError, core.LevelError},
		{slog.LevelWarn, core.LevelWarn},
		{slog.LevelInfo, core.LevelInfo},
		{slog.LevelInfo + 1, core.LevelInfo},
		{slog.LevelDebug, core.LevelDebug},
		{slog.LevelDebug - 4, core.LevelSilly},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, SlogLevel(tt.level), "level %v", tt.level)
	}
}

func TestSlogHandler_Attrs(t *testing.T) {
	rec := newRecorder(core.LevelSilly)
	logger := slog.New(NewSlogHandler(rec))

	logger.Info("order placed", "order", 42, slog.Group("customer", "id", "c1", "vip", true))

	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, core.LevelInfo, calls[0].level)
	assert.Equal(t, "order placed", calls[0].msg)

	meta := calls[0].meta
	require.True(t, meta.IsMap())
	order, ok := meta.Lookup("order")
	require.True(t, ok)
	assert.Equal(t, int64(42), order.Scalar())
	id, ok := meta.Lookup("customer", "id")
	require.True(t, ok)
	assert.Equal(t, "c1", id.Scalar())
	assert.Equal(t, "order", meta.Fields()[0].Key)
	assert.Equal(t, "customer", meta.Fields()[1].Key)
}

func TestSlogHandler_WithAttrsAndGroups(t *testing.T) {
	rec := newRecorder(core.LevelSilly)
	logger := slog.New(NewSlogHandler(rec)).
		With("service", "billing").
		WithGroup("req").
		With("id", "r2")

	logger.Info("handled", "status", 200)
	logger.WithGroup("empty").Info("no attrs")

	calls := rec.all()
	require.Len(t, calls, 2)

	meta := calls[0].meta
	svc, ok := meta.Lookup("service")
	require.True(t, ok)
	assert.Equal(t, "billing", svc.Scalar())
	id, ok := meta.Lookup("req", "id")
	require.True(t, ok)
	assert.Equal(t, "r2", id.Scalar())
	status, ok := meta.Lookup("req", "status")
	require.True(t, ok)
	assert.Equal(t, int64(200), status.Scalar())

	_, ok = calls[1].meta.Lookup("req", "empty")
	assert.False(t, ok, "empty group must be omitted")
}

func TestSlogHandler_ErrorMeta(t *testing.T) {
	rec := newRecorder(core.LevelSilly)
	logger := slog.New(NewSlogHandler(rec))
	cause := errors.New("disk full")

	logger.Error("write failed", "err", cause)
	logger.Error("write failed", "err", cause, "path", "/tmp/x")
	logger.Warn("write slow", "err", cause)

	calls := rec.all()
	require.Len(t, calls, 3)
	assert.True(t, calls[0].meta.IsError())
	assert.Same(t, cause, calls[0].meta.Err())
	assert.True(t, calls[1].meta.IsMap())
	assert.True(t, calls[2].meta.IsMap())
}

func TestSlogHandler_EnabledAndContext(t *testing.T) {
	rec := newRecorder(core.LevelWarn)
	logger := slog.New(NewSlogHandler(rec))
	ctx, tx := txn.New(context.Background())

	logger.InfoContext(ctx, "dropped")
	logger.WarnContext(ctx, "kept")

	calls := rec.all()
	require.Len(t, calls, 1)
	assert.Equal(t, "kept", calls[0].msg)
	assert.Equal(t, tx.RequestID, txn.RequestID(calls[0].ctx))
}
