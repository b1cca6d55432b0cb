// FILE: enlight/src/internal/core/entry.go
package core

import (
	"encoding/json"
	"time"
)

// DateLayout is the ISO-8601 form the ingest API expects for record dates.
const DateLayout = "2006-01-02T15:04:05.000Z07:00"

// Tag is a flat key/value pair derived from structured metadata.
// It serializes as a two-element JSON array.
type Tag [2]string

// NewTag builds a tag from a key and value.
func NewTag(key, value string) Tag {
	return Tag{key, value}
}

func (t Tag) Key() string   { return t[0] }
func (t Tag) Value() string { return t[1] }

// LogRecord is a single enriched log call waiting to be shipped.
// Records are immutable once built; the shipper only ever reads them.
type LogRecord struct {
	Level     string
	Message   Message
	Namespace string
	RequestID string
	Server    string
	Date      time.Time
	Tags      []Tag
}

// wireRecord is the ingest API representation of a LogRecord.
type wireRecord struct {
	LogLevel  string  `json:"log_level"`
	Message   Message `json:"message"`
	Namespace string  `json:"namespace"`
	RequestID string  `json:"request_id,omitempty"`
	Server    string  `json:"server"`
	Date      string  `json:"date"`
	Tags      []Tag   `json:"tags"`
}

func (r LogRecord) MarshalJSON() ([]byte, error) {
	tags := r.Tags
	if tags == nil {
		tags = []Tag{}
	}
	return json.Marshal(wireRecord{
		LogLevel:  r.Level,
		Message:   r.Message,
		Namespace: r.Namespace,
		RequestID: r.RequestID,
		Server:    r.Server,
		Date:      r.Date.UTC().Format(DateLayout),
		Tags:      tags,
	})
}

// Message is the text of a log record, optionally backed by an error value.
type Message struct {
	text string
	err  error
}

// TextMessage wraps plain text.
func TextMessage(text string) Message {
	return Message{text: text}
}

// ErrorMessage wraps an error; its text is err.Error().
func ErrorMessage(err error) Message {
	return Message{err: err}
}

// Err returns the error backing the message, or nil for plain text.
func (m Message) Err() error {
	return m.err
}

func (m Message) String() string {
	if m.err != nil {
		return m.err.Error()
	}
	return m.text
}

func (m Message) MarshalJSON() ([]byte, error) {
	return json.Marshal(m.String())
}
