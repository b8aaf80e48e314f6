package query

// Update merges patch into current and returns the result; current is not modified.
// Any filter change or limit change forces page 1, whatever patch.Page holds.
// Applying the same patch twice yields the same params as applying it once.
func Update(current Params, patch Patch) Params {
	next := current.Clone()

	if patch.Page.touched {
		next.Page = DefaultPage
		if v, ok := patch.Page.Value(); ok {
			next.Page = v
		}
	}
	if patch.Limit.touched {
		next.Limit = DefaultLimit
		if v, ok := patch.Limit.Value(); ok {
			next.Limit = v
		}
	}

	if patch.Search.touched {
		next.Search = patch.Search.ptr()
	}
	if patch.StartDate.touched {
		next.StartDate = patch.StartDate.ptr()
	}
	if patch.EndDate.touched {
		next.EndDate = patch.EndDate.ptr()
	}
	for name, f := range patch.Facets {
		if !f.touched {
			continue
		}
		v, ok := f.Value()
		if !ok {
			delete(next.Facets, name)
			continue
		}
		if next.Facets == nil {
			next.Facets = make(map[string]string)
		}
		next.Facets[name] = v
	}
	if len(next.Facets) == 0 {
		next.Facets = nil
	}

	if patch.TouchesFilters() || patch.Limit.touched {
		next.Page = DefaultPage
	}
	return next
}
