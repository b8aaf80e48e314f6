package fetch

import "errors"

var (
	ErrUnsuccessful  = errors.New("fetch: unsuccessful response")
	ErrMissingItems  = errors.New("fetch: response has no items field")
	ErrInvalidSchema = errors.New("fetch: invalid record schema")
)
