// FILE: enlight/src/internal/txn/txn.go
package txn

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Transaction is the unit of work a log call belongs to, usually one inbound request.
type Transaction struct {
	RequestID string         // Correlation id attached to every record logged in this transaction
	StartedAt time.Time      // Transaction start
	Metadata  map[string]any // Optional caller data
}

type ctxKey struct{}

// New starts a transaction with a fresh random request id and attaches it to ctx.
func New(ctx context.Context) (context.Context, *Transaction) {
	return WithRequestID(ctx, uuid.NewString())
}

// WithRequestID attaches a transaction carrying an existing request id, e.g. one
// propagated from an upstream service.
func WithRequestID(ctx context.Context, requestID string) (context.Context, *Transaction) {
	t := &Transaction{
		RequestID: requestID,
		StartedAt: time.Now(),
		Metadata:  make(map[string]any),
	}
	return context.WithValue(ctx, ctxKey{}, t), t
}

// FromContext returns the current transaction, if any.
func FromContext(ctx context.Context) (*Transaction, bool) {
	if ctx == nil {
		return nil, false
	}
	t, ok := ctx.Value(ctxKey{}).(*Transaction)
	return t, ok && t != nil
}

// RequestID returns the current transaction's request id, or "" outside a transaction.
func RequestID(ctx context.Context) string {
	if t, ok := FromContext(ctx); ok {
		return t.RequestID
	}
	return ""
}
