package fetch

import (
	"encoding/json"
	"fmt"

	"admin-datagrid/internal/pagination"
)

type page[R any] struct {
	rows    []R
	info    pagination.Info
	dropped int
}

// decode reads a list envelope. Records that fail validation or do not
// decode into R are dropped and reported through drop.
func decode[R any](body []byte, itemsField string, v *SchemaValidator, drop func(i int, err error)) (page[R], error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(body, &fields); err != nil {
		return page[R]{}, fmt.Errorf("fetch: decode envelope: %w", err)
	}

	if raw, ok := fields["success"]; ok {
		var success bool
		if err := json.Unmarshal(raw, &success); err == nil && !success {
			var msg string
			_ = json.Unmarshal(fields["message"], &msg)
			return page[R]{}, fmt.Errorf("%w: %s", ErrUnsuccessful, msg)
		}
	}

	rawItems, ok := fields[itemsField]
	if !ok {
		return page[R]{}, fmt.Errorf("%w: %q", ErrMissingItems, itemsField)
	}
	var items []json.RawMessage
	if err := json.Unmarshal(rawItems, &items); err != nil {
		return page[R]{}, fmt.Errorf("fetch: decode %q: %w", itemsField, err)
	}

	var p page[R]
	if raw, ok := fields["pagination"]; ok {
		if err := json.Unmarshal(raw, &p.info); err != nil {
			return page[R]{}, fmt.Errorf("fetch: decode pagination: %w", err)
		}
	}

	p.rows = make([]R, 0, len(items))
	for i, item := range items {
		if err := v.Validate(item); err != nil {
			p.dropped++
			drop(i, err)
			continue
		}
		var r R
		if err := json.Unmarshal(item, &r); err != nil {
			p.dropped++
			drop(i, err)
			continue
		}
		p.rows = append(p.rows, r)
	}
	return p, nil
}
