package usecase

import (
	"context"
	"maps"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/fixture/repository"
	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/query"
)

// List returns one page of a collection together with its pagination info.
func (uc *implUseCase) List(ctx context.Context, input fixture.ListInput) (fixture.ListOutput, error) {
	c, err := uc.collection(input.Collection)
	if err != nil {
		return fixture.ListOutput{}, err
	}

	p := input.Params
	if p.Page < 1 {
		p.Page = query.DefaultPage
	}
	if p.Limit < 1 {
		p.Limit = query.DefaultLimit
	}

	opt := listOptions(c, p)
	opt.Limit = p.Limit
	opt.Offset = (p.Page - 1) * p.Limit

	records, total, err := uc.repo.List(ctx, opt)
	if err != nil {
		uc.l.Errorf(ctx, "fixture.usecase.List.repo.List %s: %v", input.Collection, err)
		return fixture.ListOutput{}, err
	}

	return fixture.ListOutput{
		Records:    records,
		Pagination: pageInfo(p.Page, p.Limit, total),
	}, nil
}

func listOptions(c collection, p query.Params) repository.ListOptions {
	opt := repository.ListOptions{
		Collection:   CollectionName(c.desc),
		SearchFields: c.desc.SearchFields,
		Facets:       maps.Clone(p.Facets),
		DateField:    c.desc.DateField,
		StartDate:    p.StartDate,
		EndDate:      p.EndDate,
	}
	if p.Search != nil {
		opt.Search = *p.Search
	}
	return opt
}

func pageInfo(page, limit, total int) pagination.Info {
	pages := (total + limit - 1) / limit
	return pagination.Info{
		CurrentPage: page,
		TotalPages:  pages,
		TotalCount:  total,
		HasNext:     page < pages,
		HasPrev:     page > 1,
	}
}
