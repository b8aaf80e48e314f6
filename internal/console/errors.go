package console

import "errors"

var (
	ErrUnknownCommand = errors.New("unknown command")
	ErrUsage          = errors.New("usage")
	ErrRowNotFound    = errors.New("row not on the current page")
)
