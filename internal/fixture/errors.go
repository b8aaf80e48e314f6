package fixture

import "errors"

var (
	ErrUnknownCollection = errors.New("unknown collection")
	ErrRecordNotFound    = errors.New("record not found")
	ErrInvalidPayload    = errors.New("invalid payload")
	ErrReadOnly          = errors.New("collection is read-only")
	ErrNoImage           = errors.New("product has no image")
	ErrDuplicateSKU      = errors.New("sku already exists")
)
