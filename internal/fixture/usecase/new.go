package usecase

import (
	"fmt"
	"strings"
	"time"

	"admin-datagrid/internal/fetch"
	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/fixture/repository"
	"admin-datagrid/internal/model"
	"admin-datagrid/pkg/log"
)

type collection struct {
	desc      model.Descriptor
	validator *fetch.SchemaValidator
}

type implUseCase struct {
	l           log.Logger
	repo        repository.Repository
	collections map[string]collection
	now         func() time.Time
}

var _ fixture.UseCase = (*implUseCase)(nil)

// New creates the fixture use case serving descs. Each schema is compiled once.
func New(l log.Logger, repo repository.Repository, descs []model.Descriptor) (fixture.UseCase, error) {
	uc := &implUseCase{
		l:           l,
		repo:        repo,
		collections: make(map[string]collection, len(descs)),
		now:         func() time.Time { return time.Now().UTC() },
	}
	for _, d := range descs {
		v, err := fetch.NewSchemaValidator(d.Schema)
		if err != nil {
			return nil, fmt.Errorf("fixture.New %s: %w", d.Name, err)
		}
		uc.collections[CollectionName(d)] = collection{desc: d, validator: v}
	}
	return uc, nil
}

// CollectionName is the path segment a descriptor is served under.
func CollectionName(d model.Descriptor) string {
	return strings.TrimPrefix(d.Route, "/")
}

func (uc *implUseCase) collection(name string) (collection, error) {
	c, ok := uc.collections[name]
	if !ok {
		return collection{}, fmt.Errorf("%w: %s", fixture.ErrUnknownCollection, name)
	}
	return c, nil
}
