package model

import (
	"time"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/table"
)

// AuditLog is one recorded user action. Audit logs are read-only.
type AuditLog struct {
	ID         string    `json:"id"`
	UserID     string    `json:"userId"`
	UserName   string    `json:"userName,omitempty"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resourceId,omitempty"`
	Details    string    `json:"details,omitempty"`
	IPAddress  string    `json:"ipAddress,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

func (a AuditLog) RecordID() string { return a.ID }

const auditLogSchema = `{
  "$schema": "http://json-schema.org/draft-07/schema#",
  "type": "object",
  "required": ["id", "userId", "action", "resource", "createdAt"],
  "properties": {
    "id": {"type": "string", "minLength": 1},
    "userId": {"type": "string", "minLength": 1},
    "userName": {"type": "string"},
    "action": {"enum": ["create", "update", "delete", "login", "logout", "export"]},
    "resource": {"type": "string", "minLength": 1},
    "resourceId": {"type": "string"},
    "details": {"type": "string"},
    "ipAddress": {"type": "string"},
    "createdAt": {"type": "string", "format": "date-time"}
  }
}`

// AuditLogs describes the audit log collection. Short searches are ignored
// so a single keystroke does not trigger a broad scan.
func AuditLogs() Resource[AuditLog] {
	return Resource[AuditLog]{
		Descriptor: Descriptor{
			Name:         "Audit Logs",
			Route:        "/audit-logs",
			ItemsField:   "logs",
			ItemField:    "log",
			Facets:       []string{"action", "resource", "userId"},
			SearchFields: []string{"userName", "details", "resourceId"},
			DateField:    "createdAt",
			SearchMinLen: 2,
			ReadOnly:     true,
			Schema:       auditLogSchema,
			Kinds:        []dialog.Kind{KindView},
			Actions:      []Action{exportLogs, cleanupLogs},
		},
		Columns: []table.Column[AuditLog]{
			{Key: "createdAt", Title: "Time", Value: func(a AuditLog) any { return a.CreatedAt }, Sortable: true},
			{Key: "user", Title: "User", Value: func(a AuditLog) any { return a.UserName }, Sortable: true, Hideable: true},
			{Key: "action", Title: "Action", Value: func(a AuditLog) any { return a.Action }, Sortable: true},
			{Key: "resource", Title: "Resource", Value: func(a AuditLog) any { return a.Resource }, Sortable: true, Hideable: true},
			{Key: "ipAddress", Title: "IP", Value: func(a AuditLog) any { return a.IPAddress }, Hideable: true},
		},
	}
}
