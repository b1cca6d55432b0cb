// FILE: enlight/src/internal/source/source.go
package source

import (
	"time"

	"enlight/src/internal/core"
)

// Represents an input data stream
type Source interface {
	// Returns a channel that receives parsed entries. The channel is closed
	// when the source stops or its input ends.
	Subscribe() <-chan Entry

	// Begins reading from the source
	Start() error

	// Gracefully shuts down the source
	Stop()

	// Returns source statistics
	GetStats() SourceStats
}

// Holds one input line turned into a log call
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Meta    core.Value
	RawSize int64
}

// Contains statistics about a source
type SourceStats struct {
	Type           string
	TotalEntries   uint64
	DroppedEntries uint64
	JSONEntries    uint64
	StartTime      time.Time
	LastEntryTime  time.Time
	Details        map[string]any
}
