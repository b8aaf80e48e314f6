package repository

import "admin-datagrid/internal/query"

// GetOneOptions selects one record. Non-empty fields are ANDed.
type GetOneOptions struct {
	Collection string
	ID         string
	Field      string
	Value      string
}

// ListOptions holds filter and pagination parameters for List.
type ListOptions struct {
	Collection   string
	Search       string
	SearchFields []string
	Facets       map[string]string
	DateField    string
	StartDate    *query.Date
	EndDate      *query.Date
	Limit        int
	Offset       int
}
