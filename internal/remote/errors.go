package remote

import (
	"errors"
	"fmt"
)

var ErrEmptyID = errors.New("remote: empty record id")

// APIError is a structured failure reported by the server, either through a
// non-2xx status or an envelope with success=false.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("remote: status %d", e.StatusCode)
	}
	return fmt.Sprintf("remote: status %d: %s", e.StatusCode, e.Message)
}

// UserMessage returns the server's message.
func (e *APIError) UserMessage() string {
	return e.Message
}
