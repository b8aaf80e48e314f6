package query

import (
	"fmt"
	"net/url"
	"strconv"
)

// Reserved parameter names; facets may not use them.
const (
	KeyPage      = "page"
	KeyLimit     = "limit"
	KeySearch    = "search"
	KeyStartDate = "startDate"
	KeyEndDate   = "endDate"
)

var reserved = map[string]bool{
	KeyPage: true, KeyLimit: true, KeySearch: true, KeyStartDate: true, KeyEndDate: true,
}

// Values converts params to url.Values, omitting absent fields.
func (p Params) Values() url.Values {
	v := url.Values{}
	page, limit := p.Page, p.Limit
	if page < 1 {
		page = DefaultPage
	}
	if limit <= 0 {
		limit = DefaultLimit
	}
	v.Set(KeyPage, strconv.Itoa(page))
	v.Set(KeyLimit, strconv.Itoa(limit))
	if p.Search != nil {
		v.Set(KeySearch, *p.Search)
	}
	if p.StartDate != nil {
		v.Set(KeyStartDate, p.StartDate.String())
	}
	if p.EndDate != nil {
		v.Set(KeyEndDate, p.EndDate.String())
	}
	for name, value := range p.Facets {
		v.Set(name, value)
	}
	return v
}

// Encode returns the canonical query string: keys sorted, absent fields omitted.
// Two params encode equally iff they describe the same request.
func (p Params) Encode() string {
	return p.Values().Encode()
}

// Parse reads params from a query string's values. Keys listed in facets are
// read as facet filters; any other unknown key is ignored.
func Parse(values url.Values, facets []string) (Params, error) {
	p := New(0)

	if raw := values.Get(KeyPage); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, fmt.Errorf("%w: page %q", ErrInvalidParams, raw)
		}
		p.Page = n
	}
	if raw := values.Get(KeyLimit); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil {
			return Params{}, fmt.Errorf("%w: limit %q", ErrInvalidParams, raw)
		}
		p.Limit = n
	}
	if values.Has(KeySearch) {
		s := values.Get(KeySearch)
		p.Search = &s
	}
	if raw := values.Get(KeyStartDate); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			return Params{}, err
		}
		p.StartDate = &d
	}
	if raw := values.Get(KeyEndDate); raw != "" {
		d, err := ParseDate(raw)
		if err != nil {
			return Params{}, err
		}
		p.EndDate = &d
	}
	for _, name := range facets {
		if values.Has(name) {
			if p.Facets == nil {
				p.Facets = make(map[string]string)
			}
			p.Facets[name] = values.Get(name)
		}
	}
	return p, nil
}
