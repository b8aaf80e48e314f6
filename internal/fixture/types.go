package fixture

import (
	"maps"

	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/query"
)

// Record is one stored row, kept in its JSON shape.
type Record map[string]any

// ID returns the record id, or "".
func (r Record) ID() string {
	id, _ := r["id"].(string)
	return id
}

// Clone returns a shallow copy.
func (r Record) Clone() Record {
	return maps.Clone(r)
}

// --- UseCase Inputs ---

type ListInput struct {
	Collection string
	Params     query.Params
}

type CleanupInput struct {
	OlderThanDays int
}

// --- UseCase Outputs ---

type ListOutput struct {
	Records    []Record
	Pagination pagination.Info
}

type CleanupOutput struct {
	Removed int
}
