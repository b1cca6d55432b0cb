// FILE: enlight/src/internal/format/format.go
package format

import (
	"enlight/src/internal/core"
)

// Payload is an encoded batch ready to be posted.
type Payload struct {
	Body            []byte
	ContentType     string
	ContentEncoding string // "" or "gzip"
	Records         int    // records actually encoded
}

// Encoder turns a batch of records into a request payload.
type Encoder interface {
	Encode(batch []core.LogRecord) (Payload, error)

	// Name returns the encoder type name
	Name() string
}
