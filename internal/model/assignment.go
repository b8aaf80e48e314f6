package model

import (
	"time"

	"admin-datagrid/internal/table"
)

// Assignment is a unit of work given to one employee.
type Assignment struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Description  string    `json:"description,omitempty"`
	AssigneeID   string    `json:"assigneeId"`
	AssigneeName string    `json:"assigneeName,omitempty"`
	Status       string    `json:"status"`
	Priority     string    `json:"priority"`
	DueDate      string    `json:"dueDate,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

func (a Assignment) RecordID() string { return a.ID }

const assignmentSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "title", "assigneeId", "status", "priority", "createdAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "title": {"type": "string", "minLength": 1},
    "description": {"type": "string"},
    "assigneeId": {"type": "string", "minLength": 1},
    "assigneeName": {"type": "string"},
    "status": {"enum": ["pending", "in_progress", "completed", "cancelled"]},
    "priority": {"enum": ["low", "medium", "high"]},
    "dueDate": {"type": "string", "pattern": "^\\d{4}-\\d{2}-\\d{2}$"},
    "createdAt": {"type": "string", "format": "date-time"},
    "updatedAt": {"type": "string", "format": "date-time"}
  }
}`

// Assignments describes the assignments collection.
func Assignments() Resource[Assignment] {
	return Resource[Assignment]{
		Descriptor: Descriptor{
			Name:         "Assignments",
			Route:        "/assignments",
			ItemsField:   "assignments",
			ItemField:    "assignment",
			Facets:       []string{"status", "priority", "assigneeId"},
			SearchFields: []string{"title", "description", "assigneeName"},
			DateField:    "createdAt",
			SearchMinLen: 1,
			Schema:       assignmentSchema,
		},
		Columns: []table.Column[Assignment]{
			{Key: "title", Title: "Title", Value: func(a Assignment) any { return a.Title }, Sortable: true},
			{Key: "assignee", Title: "Assignee", Value: func(a Assignment) any { return a.AssigneeName }, Sortable: true, Hideable: true},
			{Key: "status", Title: "Status", Value: func(a Assignment) any { return a.Status }, Sortable: true, Hideable: true},
			{Key: "priority", Title: "Priority", Value: func(a Assignment) any { return a.Priority }, Sortable: true, Hideable: true},
			{Key: "dueDate", Title: "Due", Value: func(a Assignment) any { return a.DueDate }, Sortable: true, Hideable: true},
			{Key: "createdAt", Title: "Created", Value: func(a Assignment) any { return a.CreatedAt }, Sortable: true, Hideable: true},
		},
	}
}
