// Package fetch binds a list view's query parameters to the remote cache and
// turns cache entries into exactly one of loading, error or success.
package fetch

import (
	"context"

	"admin-datagrid/internal/cache"
	"admin-datagrid/internal/pagination"
)

// Status is the observable state of a View.
type Status int

const (
	StatusLoading Status = iota
	StatusError
	StatusSuccess
)

func (s Status) String() string {
	switch s {
	case StatusError:
		return "error"
	case StatusSuccess:
		return "success"
	default:
		return "loading"
	}
}

// View is what the presentation layer renders for the current key.
type View[R any] struct {
	Key        cache.Key
	Status     Status
	Rows       []R
	Pagination pagination.Info
	Err        error
	// Dropped counts records that failed schema validation.
	Dropped int
	// Revalidating is set while a stored response is being refreshed.
	Revalidating bool
}

// Resolver is the part of the remote cache the orchestrator reads through.
type Resolver interface {
	Subscribe(key cache.Key, fetch cache.Fetcher, listener cache.Listener) (unsubscribe func())
	Revalidate(key cache.Key)
}

// Lister loads one raw list response.
type Lister interface {
	List(ctx context.Context, route, rawQuery string) ([]byte, error)
}

// Config describes the collection an Orchestrator reads.
type Config struct {
	Route      string
	ItemsField string
	Validator  *SchemaValidator
	// History bounds how many visited keys are remembered for invalidation.
	History int
}

const defaultHistory = 32
