package dialog

import "errors"

var (
	ErrRowRequired = errors.New("dialog requires a row")
	ErrInvalidKind = errors.New("invalid dialog kind")
)
