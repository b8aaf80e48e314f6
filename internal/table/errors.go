package table

import "errors"

var (
	ErrUnknownColumn = errors.New("unknown column")
	ErrNotSortable   = errors.New("column is not sortable")
	ErrNotHideable   = errors.New("column cannot be hidden")
)
