package pagination

import "errors"

var (
	ErrActionDisabled     = errors.New("pagination action is disabled")
	ErrUnknownAction      = errors.New("unknown pagination action")
	ErrPageSizeNotAllowed = errors.New("page size is not one of the allowed options")
)
