package memory

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"admin-datagrid/internal/fixture"
	"admin-datagrid/internal/fixture/repository"
	"admin-datagrid/internal/query"
)

// Insert appends rec. The caller assigns the id.
func (r *implRepository) Insert(ctx context.Context, collection string, rec fixture.Record) (fixture.Record, error) {
	if rec.ID() == "" {
		return nil, repository.ErrMissingID
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if slices.ContainsFunc(r.collections[collection], func(x fixture.Record) bool { return x.ID() == rec.ID() }) {
		return nil, fmt.Errorf("%w: %s", repository.ErrDuplicateID, rec.ID())
	}
	r.collections[collection] = append(r.collections[collection], rec.Clone())
	return rec.Clone(), nil
}

// GetOne finds one record by id and/or one field value.
func (r *implRepository) GetOne(ctx context.Context, opt repository.GetOneOptions) (fixture.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, rec := range r.collections[opt.Collection] {
		if opt.ID != "" && rec.ID() != opt.ID {
			continue
		}
		if opt.Field != "" && fmt.Sprint(rec[opt.Field]) != opt.Value {
			continue
		}
		return rec.Clone(), nil
	}
	return nil, nil
}

// List filters, orders newest first and pages the collection. The second
// result is the filtered total before paging.
func (r *implRepository) List(ctx context.Context, opt repository.ListOptions) ([]fixture.Record, int, error) {
	r.mu.RLock()
	matched := make([]fixture.Record, 0)
	for _, rec := range r.collections[opt.Collection] {
		if r.match(rec, opt) {
			matched = append(matched, rec.Clone())
		}
	}
	r.mu.RUnlock()

	if opt.DateField != "" {
		slices.SortStableFunc(matched, func(a, b fixture.Record) int {
			return strings.Compare(fmt.Sprint(b[opt.DateField]), fmt.Sprint(a[opt.DateField]))
		})
	}

	total := len(matched)
	if opt.Offset >= total {
		return []fixture.Record{}, total, nil
	}
	end := total
	if opt.Limit > 0 && opt.Offset+opt.Limit < total {
		end = opt.Offset + opt.Limit
	}
	return matched[opt.Offset:end], total, nil
}

func (r *implRepository) match(rec fixture.Record, opt repository.ListOptions) bool {
	for name, want := range opt.Facets {
		if fmt.Sprint(rec[name]) != want {
			return false
		}
	}

	if opt.Search != "" {
		needle := strings.ToLower(opt.Search)
		found := slices.ContainsFunc(opt.SearchFields, func(f string) bool {
			s, ok := rec[f].(string)
			return ok && strings.Contains(strings.ToLower(s), needle)
		})
		if !found {
			return false
		}
	}

	if opt.DateField != "" && (opt.StartDate != nil || opt.EndDate != nil) {
		raw, _ := rec[opt.DateField].(string)
		t, err := time.Parse(time.RFC3339, raw)
		if err != nil {
			return false
		}
		d := query.DateOf(t)
		if opt.StartDate != nil && d.Before(*opt.StartDate) {
			return false
		}
		if opt.EndDate != nil && d.After(*opt.EndDate) {
			return false
		}
	}
	return true
}

// Update replaces the stored record with id.
func (r *implRepository) Update(ctx context.Context, collection, id string, rec fixture.Record) (fixture.Record, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.collections[collection]
	i := slices.IndexFunc(rows, func(x fixture.Record) bool { return x.ID() == id })
	if i < 0 {
		return nil, repository.ErrNotFound
	}
	rows[i] = rec.Clone()
	return rec.Clone(), nil
}

// Delete removes the record with id.
func (r *implRepository) Delete(ctx context.Context, collection, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.collections[collection]
	i := slices.IndexFunc(rows, func(x fixture.Record) bool { return x.ID() == id })
	if i < 0 {
		return repository.ErrNotFound
	}
	r.collections[collection] = slices.Delete(rows, i, i+1)
	return nil
}

// DeleteWhere removes every record match accepts and returns how many.
func (r *implRepository) DeleteWhere(ctx context.Context, collection string, match func(fixture.Record) bool) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	rows := r.collections[collection]
	before := len(rows)
	r.collections[collection] = slices.DeleteFunc(rows, match)
	removed := before - len(r.collections[collection])
	if removed > 0 {
		r.l.Infof(ctx, "memory.DeleteWhere %s: removed %d", collection, removed)
	}
	return removed, nil
}
