// FILE: enlight/src/internal/transport/errors.go
package transport

import (
	"enlight/src/internal/core"

	"github.com/charmbracelet/x/ansi"
)

// causeError prefixes the caller's message to a logged error and leaves that error unmodified.
// With strip set, ANSI sequences are removed from the rendered text.
type causeError struct {
	msg   string
	cause error
	strip bool
}

func (e *causeError) Error() string {
	text := e.cause.Error()
	if e.strip {
		text = ansi.Strip(text)
	}
	if e.msg == "" {
		return text
	}
	return e.msg + ". cause: " + text
}

func (e *causeError) Unwrap() error {
	return e.cause
}

// errorMessage builds the record message for an error-level call whose meta is an error.
// An empty msg ships the error as is unless its text must be decolorized.
func errorMessage(msg string, err error, decolorize bool) core.Message {
	if msg == "" && !decolorize {
		return core.ErrorMessage(err)
	}
	return core.ErrorMessage(&causeError{msg: msg, cause: err, strip: decolorize})
}
