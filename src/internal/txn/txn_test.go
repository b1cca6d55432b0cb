// FILE: enlight/src/internal/txn/txn_test.go
package txn

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	ctx, tx := New(context.Background())
	require.NotNil(t, tx)

	_, err := uuid.Parse(tx.RequestID)
	assert.NoError(t, err, "request id should be a uuid")

	got, ok := FromContext(ctx)
	require.True(t, ok)
	assert.Same(t, tx, got)
	assert.Equal(t, tx.RequestID, RequestID(ctx))
}

func TestWithRequestID(t *testing.T) {
	ctx, _ := WithRequestID(context.Background(), "upstream-42")
	assert.Equal(t, "upstream-42", RequestID(ctx))

	t.Run("Nested", func(t *testing.T) {
		inner, _ := WithRequestID(ctx, "inner")
		assert.Equal(t, "inner", RequestID(inner))
		assert.Equal(t, "upstream-42", RequestID(ctx))
	})
}

func TestFromContext_Missing(t *testing.T) {
	_, ok := FromContext(context.Background())
	assert.False(t, ok)
	assert.Equal(t, "", RequestID(context.Background()))

	//nolint:staticcheck
	_, ok = FromContext(nil)
	assert.False(t, ok)
}
