// Package screen is the controller of one entity list view. It owns the
// query parameters, dialog state and current row of that view, and reads and
// writes through the process-wide cache and coordinator.
package screen

import (
	"context"
	"net/url"
	"time"

	"admin-datagrid/internal/cache"
	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/fetch"
	"admin-datagrid/internal/mutation"
	"admin-datagrid/internal/notify"
	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/query"
	"admin-datagrid/internal/remote"
	"admin-datagrid/internal/table"
	"admin-datagrid/pkg/log"
	"admin-datagrid/pkg/schedule"
)

// Config holds the tunable delays of a screen.
type Config struct {
	ClearDelay    time.Duration
	DebounceDelay time.Duration
	DefaultLimit  int
}

// API is the REST surface a screen reads and writes through.
type API interface {
	fetch.Lister
	Create(ctx context.Context, route string, body any) (remote.Envelope, error)
	Update(ctx context.Context, route, id string, body any) (remote.Envelope, error)
	Delete(ctx context.Context, route, id string) (remote.Envelope, error)
	Do(ctx context.Context, method, path string, query url.Values, body any) (remote.Envelope, error)
}

// Deps are the collaborators shared between screens.
type Deps struct {
	Cache       fetch.Resolver
	Coordinator *mutation.Coordinator
	API         API
	Scheduler   schedule.Scheduler
	Logger      log.Logger
	Notifier    notify.Notifier
}

// Input is the payload of a side action; keys are sent as query parameters.
type Input map[string]string

// Snapshot is an immutable copy of everything a presentation layer renders.
type Snapshot[R any] struct {
	Params        query.Params
	Key           cache.Key
	Status        fetch.Status
	Loading       bool
	Err           error
	Rows          []R
	Dropped       int
	Revalidating  bool
	Pagination    pagination.Info
	Controls      pagination.Controls
	Dialog        dialog.State
	Current       *R
	Table         table.Snapshot
	SearchPending bool
}
