package model

import (
	"strconv"
	"time"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/table"
)

// PerformanceRecord is one periodic review of an employee.
type PerformanceRecord struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	UserName  string    `json:"userName,omitempty"`
	Period    string    `json:"period"`
	Score     float64   `json:"score"`
	Rating    string    `json:"rating"`
	Reviewer  string    `json:"reviewer,omitempty"`
	Notes     string    `json:"notes,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (p PerformanceRecord) RecordID() string { return p.ID }

const performanceSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "userId", "period", "score", "rating", "createdAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "userId": {"type": "string", "minLength": 1},
    "userName": {"type": "string"},
    "period": {"type": "string", "minLength": 1},
    "score": {"type": "number", "minimum": 0, "maximum": 100},
    "rating": {"enum": ["outstanding", "exceeds", "meets", "below", "unsatisfactory"]},
    "reviewer": {"type": "string"},
    "notes": {"type": "string"},
    "createdAt": {"type": "string", "format": "date-time"},
    "updatedAt": {"type": "string", "format": "date-time"}
  }
}`

// PerformanceRecords describes the performance records collection.
func PerformanceRecords() Resource[PerformanceRecord] {
	return Resource[PerformanceRecord]{
		Descriptor: Descriptor{
			Name:         "Performance Records",
			Route:        "/performance-records",
			ItemsField:   "records",
			ItemField:    "record",
			Facets:       []string{"userId", "rating", "period"},
			SearchFields: []string{"userName", "reviewer", "notes"},
			DateField:    "createdAt",
			SearchMinLen: 1,
			Schema:       performanceSchema,
			Kinds:        []dialog.Kind{KindView},
		},
		Columns: []table.Column[PerformanceRecord]{
			{Key: "user", Title: "Employee", Value: func(p PerformanceRecord) any { return p.UserName }, Sortable: true},
			{Key: "period", Title: "Period", Value: func(p PerformanceRecord) any { return p.Period }, Sortable: true, Hideable: true},
			{Key: "score", Title: "Score", Value: func(p PerformanceRecord) any { return p.Score }, Sortable: true},
			{Key: "rating", Title: "Rating", Value: func(p PerformanceRecord) any { return p.Rating }, Sortable: true, Hideable: true},
			{Key: "reviewer", Title: "Reviewer", Value: func(p PerformanceRecord) any { return p.Reviewer }, Sortable: true, Hideable: true},
		},
	}
}

// FormatScore renders a score with one decimal.
func FormatScore(score float64) string {
	return strconv.FormatFloat(score, 'f', 1, 64)
}
