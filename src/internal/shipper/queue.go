// FILE: enlight/src/internal/shipper/queue.go
package shipper

import (
	"sync"

	"enlight/src/internal/core"
)

// queue is the pending batch. Appends and drains are atomic with respect to each other.
type queue struct {
	mu     sync.Mutex
	items  []core.LogRecord
	closed bool
}

// push appends a record and returns the new length. It reports false once the queue is closed.
func (q *queue) push(record core.LogRecord) (int, bool) {
	q.mu.Lock()
	defer q.mu.Unlock()

	if q.closed {
		return len(q.items), false
	}
	q.items = append(q.items, record)
	return len(q.items), true
}

// drain hands over every pending record and leaves the queue empty.
func (q *queue) drain() []core.LogRecord {
	q.mu.Lock()
	defer q.mu.Unlock()

	if len(q.items) == 0 {
		return nil
	}
	batch := q.items
	q.items = nil
	return batch
}

// close drains the queue and rejects further pushes.
func (q *queue) close() []core.LogRecord {
	q.mu.Lock()
	defer q.mu.Unlock()

	q.closed = true
	batch := q.items
	q.items = nil
	return batch
}

func (q *queue) len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}
