package repository

import (
	"context"

	"admin-datagrid/internal/fixture"
)

// Repository is the record store behind the fixture API.
type Repository interface {
	Insert(ctx context.Context, collection string, rec fixture.Record) (fixture.Record, error)
	// GetOne returns nil without error when the record does not exist.
	GetOne(ctx context.Context, opt GetOneOptions) (fixture.Record, error)
	List(ctx context.Context, opt ListOptions) ([]fixture.Record, int, error)
	Update(ctx context.Context, collection, id string, rec fixture.Record) (fixture.Record, error)
	Delete(ctx context.Context, collection, id string) error
	DeleteWhere(ctx context.Context, collection string, match func(fixture.Record) bool) (int, error)
}
