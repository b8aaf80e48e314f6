package response

import "net/http"

const (
	MessageSuccess      = "Success"
	DefaultErrorMessage = "Something went wrong"
)

// Resp is the standard JSON envelope. Payload fields are added next to
// success and message under a per-collection key.
type Resp struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Errors  any    `json:"errors,omitempty"`
}

// HTTPError is an error with the status code and message sent to the client.
type HTTPError struct {
	Code    int
	Message string
	Errors  any
}

func (e *HTTPError) Error() string { return e.Message }

// NewHTTPError creates an HTTPError.
func NewHTTPError(code int, message string) *HTTPError {
	return &HTTPError{Code: code, Message: message}
}

// BadRequest wraps err as a 400.
func BadRequest(err error) *HTTPError {
	return &HTTPError{Code: http.StatusBadRequest, Message: err.Error()}
}
