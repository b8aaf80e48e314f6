package query

import "errors"

var (
	ErrInvalidParams = errors.New("invalid query params")
	ErrInvalidDate   = errors.New("invalid date")
	ErrDateRange     = errors.New("start date is after end date")
	ErrUnknownFacet  = errors.New("unknown facet filter")
)
