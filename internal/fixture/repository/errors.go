package repository

import "errors"

var (
	ErrNotFound    = errors.New("record not found")
	ErrMissingID   = errors.New("record has no id")
	ErrDuplicateID = errors.New("record id already exists")
)
