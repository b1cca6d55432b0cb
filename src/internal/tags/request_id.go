// FILE: enlight/src/internal/tags/request_id.go
package tags

import (
	"context"

	"enlight/src/internal/core"
	"enlight/src/internal/txn"
)

// RequestIDKey is the tag key under which the resolved request id is reported.
const RequestIDKey = "request_id"

// ResolveRequestID picks the correlation id for a log call. meta.request_id wins,
// then meta.req.id, then the transaction carried by ctx.
func ResolveRequestID(ctx context.Context, meta core.Value) (string, bool) {
	if id, ok := lookupID(meta, RequestIDKey); ok {
		return id, true
	}
	if id, ok := lookupID(meta, "req", "id"); ok {
		return id, true
	}
	if id := txn.RequestID(ctx); id != "" {
		return id, true
	}
	return "", false
}

func lookupID(meta core.Value, path ...string) (string, bool) {
	v, ok := meta.Lookup(path...)
	if !ok || v.IsZero() || v.IsMap() {
		return "", false
	}
	id := Format(v)
	return id, id != ""
}

// AppendRequestID adds the request_id tag unless an identical one is already present.
func AppendRequestID(dst []core.Tag, id string) []core.Tag {
	want := core.NewTag(RequestIDKey, id)
	for _, t := range dst {
		if t == want {
			return dst
		}
	}
	return append(dst, want)
}
