package memory

import (
	"sync"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/fixture/repository"
	"admin-datagrid/pkg/log"
)

type implRepository struct {
	l log.Logger

	mu          sync.RWMutex
	collections map[string][]fixture.Record
}

var _ repository.Repository = (*implRepository)(nil)

// New creates an empty in-memory repository.
func New(l log.Logger) *implRepository {
	return &implRepository{
		l:           l,
		collections: make(map[string][]fixture.Record),
	}
}
