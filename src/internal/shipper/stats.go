// FILE: enlight/src/internal/shipper/stats.go
package shipper

import "time"

// Stats contains statistics about a shipper
type Stats struct {
	State          string
	Endpoint       string
	StartTime      time.Time
	TotalEnqueued  uint64
	TotalShipped   uint64
	TotalDropped   uint64
	TotalBatches   uint64
	FailedBatches  uint64
	PendingRecords int
	LastEnqueued   time.Time
	LastBatchSent  time.Time
}

// GetStats returns the shipper's statistics.
func (s *Shipper) GetStats() Stats {
	lastEnq, _ := s.lastEnqueued.Load().(time.Time)
	lastBatch, _ := s.lastBatchSent.Load().(time.Time)

	return Stats{
		State:          s.State(),
		Endpoint:       s.endpoint,
		StartTime:      s.startTime,
		TotalEnqueued:  s.totalEnqueued.Load(),
		TotalShipped:   s.totalShipped.Load(),
		TotalDropped:   s.totalDropped.Load(),
		TotalBatches:   s.totalBatches.Load(),
		FailedBatches:  s.failedBatches.Load(),
		PendingRecords: s.queue.len(),
		LastEnqueued:   lastEnq,
		LastBatchSent:  lastBatch,
	}
}

// Map renders the stats as key/value pairs for structured logging.
func (st Stats) Map() map[string]any {
	return map[string]any{
		"state":           st.State,
		"endpoint":        st.Endpoint,
		"total_enqueued":  st.TotalEnqueued,
		"total_shipped":   st.TotalShipped,
		"total_dropped":   st.TotalDropped,
		"total_batches":   st.TotalBatches,
		"failed_batches":  st.FailedBatches,
		"pending_records": st.PendingRecords,
		"last_batch_sent": st.LastBatchSent,
	}
}
