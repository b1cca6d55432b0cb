// FILE: enlight/src/internal/format/json.go
package format

import (
	"bytes"
	"encoding/json"
	"fmt"

	"enlight/src/internal/core"

	"github.com/klauspost/compress/gzip"
	"github.com/lixenwraith/log"
)

// JSONEncoder produces the ingest API JSON array, optionally gzip compressed.
type JSONEncoder struct {
	compress bool
	logger   *log.Logger
}

// NewJSONEncoder creates a JSON batch encoder.
func NewJSONEncoder(compress bool, logger *log.Logger) *JSONEncoder {
	return &JSONEncoder{
		compress: compress,
		logger:   logger,
	}
}

// Name returns the encoder's type name.
func (e *JSONEncoder) Name() string {
	if e.compress {
		return "json+gzip"
	}
	return "json"
}

// Encode transforms a batch into a single JSON array. Records that fail to
// marshal are logged and skipped so one bad record cannot sink the batch.
func (e *JSONEncoder) Encode(batch []core.LogRecord) (Payload, error) {
	items := make([]json.RawMessage, 0, len(batch))

	for _, record := range batch {
		item, err := json.Marshal(record)
		if err != nil {
			e.logger.Warn("msg", "Failed to encode record in batch",
				"component", "json_encoder",
				"level", record.Level,
				"error", err)
			continue
		}
		items = append(items, item)
	}

	body, err := json.Marshal(items)
	if err != nil {
		return Payload{}, fmt.Errorf("failed to marshal batch: %w", err)
	}

	payload := Payload{
		Body:        body,
		ContentType: "application/json",
		Records:     len(items),
	}

	if e.compress {
		compressed, err := gzipBytes(body)
		if err != nil {
			return Payload{}, fmt.Errorf("failed to compress batch: %w", err)
		}
		payload.Body = compressed
		payload.ContentEncoding = "gzip"
	}

	return payload, nil
}

func gzipBytes(data []byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := gzip.NewWriter(&buf)
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return nil, err
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
