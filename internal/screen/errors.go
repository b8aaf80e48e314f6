package screen

import "errors"

var (
	ErrClosed          = errors.New("screen: closed")
	ErrNotAllowed      = errors.New("screen: operation not allowed on this collection")
	ErrDialogMismatch  = errors.New("screen: submitted kind does not match the open dialog")
	ErrPayloadRequired = errors.New("screen: payload required")
	ErrMissingDeps     = errors.New("screen: missing dependency")
)
