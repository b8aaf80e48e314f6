package cache

import "strings"

// Key is the identity of one cached request: route plus canonical query string.
type Key string

// NewKey joins route and an already-canonical query string.
func NewKey(route, rawQuery string) Key {
	if rawQuery == "" {
		return Key(route)
	}
	return Key(route + "?" + rawQuery)
}

// Route returns the part of the key before the query string.
func (k Key) Route() string {
	route, _, _ := strings.Cut(string(k), "?")
	return route
}

// Query returns the canonical query string, or "".
func (k Key) Query() string {
	_, q, _ := strings.Cut(string(k), "?")
	return q
}
