// FILE: enlight/src/internal/adapter/slog.go
package adapter

import (
	"context"
	"log/slog"
	"time"

	"enlight/src/internal/core"
)

// SlogHandler is a slog.Handler that forwards records to a Sink.
type SlogHandler struct {
	sink   Sink
	fields core.Fields
	groups []string
}

// NewSlogHandler creates a handler writing to sink.
func NewSlogHandler(sink Sink) *SlogHandler {
	return &SlogHandler{sink: sink}
}

// SlogLevel maps a slog level onto the transport level names.
func SlogLevel(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return core.LevelError
	case level >= slog.LevelWarn:
		return core.LevelWarn
	case level >= slog.LevelInfo:
		return core.LevelInfo
	case level >= slog.LevelDebug:
		return core.LevelDebug
	default:
		return core.LevelSilly
	}
}

func (h *SlogHandler) Enabled(_ context.Context, level slog.Level) bool {
	return h.sink.Enabled(SlogLevel(level))
}

func (h *SlogHandler) Handle(ctx context.Context, r slog.Record) error {
	added := make(core.Fields, 0, r.NumAttrs())
	r.Attrs(func(a slog.Attr) bool {
		added = appendAttr(added, a)
		return true
	})

	fields := insertAt(h.fields, h.groups, added)
	level := SlogLevel(r.Level)
	h.sink.Log(ctx, level, r.Message, metaFor(level, fields), nil)
	return nil
}

func (h *SlogHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	if len(attrs) == 0 {
		return h
	}
	added := make(core.Fields, 0, len(attrs))
	for _, a := range attrs {
		added = appendAttr(added, a)
	}

	h2 := *h
	h2.fields = insertAt(h.fields, h.groups, added)
	return &h2
}

func (h *SlogHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	h2 := *h
	h2.groups = append(h.groups[:len(h.groups):len(h.groups)], name)
	return &h2
}

// insertAt returns a copy of fields with added nested under the group path.
// Empty groups are omitted.
func insertAt(fields core.Fields, path []string, added core.Fields) core.Fields {
	if len(added) == 0 {
		return fields
	}
	if len(path) == 0 {
		out := make(core.Fields, 0, len(fields)+len(added))
		out = append(out, fields...)
		return append(out, added...)
	}

	out := make(core.Fields, len(fields))
	copy(out, fields)
	for i := len(out) - 1; i >= 0; i-- {
		if out[i].Key == path[0] && out[i].Value.IsMap() {
			out[i].Value = core.Map(insertAt(out[i].Value.Fields(), path[1:], added)...)
			return out
		}
	}
	return append(out, core.Field{Key: path[0], Value: core.Map(insertAt(nil, path[1:], added)...)})
}

func appendAttr(dst core.Fields, a slog.Attr) core.Fields {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return dst
	}

	if a.Value.Kind() == slog.KindGroup {
		var group core.Fields
		for _, ga := range a.Value.Group() {
			group = appendAttr(group, ga)
		}
		if len(group) == 0 {
			return dst
		}
		// Inline groups with an empty key
		if a.Key == "" {
			return append(dst, group...)
		}
		return append(dst, core.Field{Key: a.Key, Value: core.Map(group...)})
	}

	return append(dst, core.Field{Key: a.Key, Value: slogValue(a.Value)})
}

func slogValue(v slog.Value) core.Value {
	switch v.Kind() {
	case slog.KindString:
		return core.Scalar(v.String())
	case slog.KindInt64:
		return core.Scalar(v.Int64())
	case slog.KindUint64:
		return core.Scalar(v.Uint64())
	case slog.KindFloat64:
		return core.Scalar(v.Float64())
	case slog.KindBool:
		return core.Scalar(v.Bool())
	case slog.KindDuration:
		return core.Scalar(v.Duration().String())
	case slog.KindTime:
		return core.Scalar(v.Time().UTC().Format(time.RFC3339Nano))
	default:
		return core.Any(v.Any())
	}
}
