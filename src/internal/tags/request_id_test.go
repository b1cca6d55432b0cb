// FILE: enlight/src/internal/tags/request_id_test.go
package tags

import (
	"context"
	"testing"

	"enlight/src/internal/core"
	"enlight/src/internal/txn"

	"github.com/stretchr/testify/assert"
)

func TestResolveRequestID(t *testing.T) {
	txCtx, _ := txn.WithRequestID(context.Background(), "tx-9")

	testCases := []struct {
		name     string
		ctx      context.Context
		meta     core.Value
		expected string
		found    bool
	}{
		{
			name:     "MetaRequestID",
			ctx:      context.Background(),
			meta:     core.Map(core.F("request_id", "r1")),
			expected: "r1",
			found:    true,
		},
		{
			name:     "ReqID",
			ctx:      context.Background(),
			meta:     core.Map(core.F("req", core.Fields{core.F("id", "r2")})),
			expected: "r2",
			found:    true,
		},
		{
			name: "RequestIDBeatsReqID",
			ctx:  context.Background(),
			meta: core.Map(
				core.F("req", core.Fields{core.F("id", "r2")}),
				core.F("request_id", "r1"),
			),
			expected: "r1",
			found:    true,
		},
		{
			name:     "MetaBeatsTransaction",
			ctx:      txCtx,
			meta:     core.Map(core.F("request_id", "r1")),
			expected: "r1",
			found:    true,
		},
		{
			name:     "TransactionFallback",
			ctx:      txCtx,
			meta:     core.Map(core.F("other", 1)),
			expected: "tx-9",
			found:    true,
		},
		{
			name:     "NumericID",
			ctx:      context.Background(),
			meta:     core.Map(core.F("request_id", 1234)),
			expected: "1234",
			found:    true,
		},
		{
			name:  "EmptyRequestIDIgnored",
			ctx:   context.Background(),
			meta:  core.Map(core.F("request_id", "")),
			found: false,
		},
		{
			name:  "Absent",
			ctx:   context.Background(),
			meta:  core.Map(),
			found: false,
		},
		{
			name:  "ErrorMeta",
			ctx:   context.Background(),
			meta:  core.Error(assert.AnError),
			found: false,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			id, ok := ResolveRequestID(tc.ctx, tc.meta)
			assert.Equal(t, tc.found, ok)
			assert.Equal(t, tc.expected, id)
		})
	}
}

func TestAppendRequestID(t *testing.T) {
	t.Run("AddsWhenMissing", func(t *testing.T) {
		got := AppendRequestID([]core.Tag{{"req.id", "r2"}}, "r2")
		assert.Equal(t, []core.Tag{{"req.id", "r2"}, {"request_id", "r2"}}, got)
	})

	t.Run("NoDuplicate", func(t *testing.T) {
		got := AppendRequestID([]core.Tag{{"request_id", "r1"}}, "r1")
		assert.Equal(t, []core.Tag{{"request_id", "r1"}}, got)
	})

	t.Run("DifferentValueAppended", func(t *testing.T) {
		got := AppendRequestID([]core.Tag{{"request_id", "stale"}}, "r1")
		assert.Len(t, got, 2)
	})
}
