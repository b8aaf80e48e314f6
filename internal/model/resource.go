package model

import (
	"net/http"
	"slices"
	"strings"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/table"
)

// Row kinds and side actions shared by the entity catalog.
const (
	KindView         = dialog.KindView
	KindToggleStatus dialog.Kind = "toggle-status"
	KindDeleteImage  dialog.Kind = "delete-image"
	KindExport       dialog.Kind = "export"
	KindCleanup      dialog.Kind = "cleanup"
)

// Record is implemented by every entity row.
type Record interface {
	RecordID() string
}

// Action is an entity-specific side action answered with the
// {success, message} envelope.
type Action struct {
	Kind   dialog.Kind
	Method string
	// Path is relative to the collection; "{id}" is replaced by the row id.
	Path string
	// Row reports whether the action targets one row.
	Row bool
	// Mutates reports whether a success invalidates the list.
	Mutates bool
	// Params are payload keys sent as query parameters.
	Params []string
	// WithQuery sends the current list filters along.
	WithQuery bool
}

// URL returns the request path of the action under route.
func (a Action) URL(route, id string) string {
	p := strings.ReplaceAll(a.Path, "{id}", id)
	if p == "" {
		return route
	}
	return route + "/" + p
}

// Descriptor is the type-independent description of one collection.
type Descriptor struct {
	Name       string
	Route      string
	ItemsField string
	ItemField  string
	Facets     []string
	// SearchFields and DateField tell an in-memory backend how to filter.
	SearchFields []string
	DateField    string
	SearchMinLen int
	ReadOnly     bool
	Schema       string
	Kinds        []dialog.Kind
	Actions      []Action
}

// Action looks up a side action by kind.
func (d Descriptor) Action(kind dialog.Kind) (Action, bool) {
	i := slices.IndexFunc(d.Actions, func(a Action) bool { return a.Kind == kind })
	if i < 0 {
		return Action{}, false
	}
	return d.Actions[i], true
}

// Allows reports whether a dialog of kind may be opened on this collection.
func (d Descriptor) Allows(kind dialog.Kind) bool {
	switch kind {
	case dialog.KindCreate, dialog.KindUpdate, dialog.KindDelete:
		return !d.ReadOnly
	}
	if slices.Contains(d.Kinds, kind) {
		return true
	}
	_, ok := d.Action(kind)
	return ok
}

// RowlessKinds lists the action kinds that open without a row.
func (d Descriptor) RowlessKinds() []dialog.Kind {
	var out []dialog.Kind
	for _, a := range d.Actions {
		if !a.Row {
			out = append(out, a.Kind)
		}
	}
	return out
}

// Resource binds a Descriptor to its row type.
type Resource[R Record] struct {
	Descriptor
	Columns []table.Column[R]
}

// Descriptors returns every collection of the catalog.
func Descriptors() []Descriptor {
	return []Descriptor{
		Assignments().Descriptor,
		PerformanceRecords().Descriptor,
		AuditLogs().Descriptor,
		Products().Descriptor,
	}
}

var (
	toggleStatus = Action{Kind: KindToggleStatus, Method: http.MethodPatch, Path: "{id}/toggle-status", Row: true, Mutates: true}
	deleteImage  = Action{Kind: KindDeleteImage, Method: http.MethodDelete, Path: "{id}/image", Row: true, Mutates: true}
	exportLogs   = Action{Kind: KindExport, Method: http.MethodGet, Path: "export", WithQuery: true}
	cleanupLogs  = Action{Kind: KindCleanup, Method: http.MethodDelete, Path: "cleanup", Mutates: true, Params: []string{"olderThan"}}
)
