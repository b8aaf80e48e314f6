package query

import "maps"

const (
	DefaultPage  = 1
	DefaultLimit = 50
)

// Params is the server-facing filter and pagination state of one list view.
// A nil pointer or a missing facet key means "not present" and is omitted
// from the encoded query string.
type Params struct {
	Page      int `validate:"gte=1"`
	Limit     int `validate:"gt=0"`
	Search    *string
	StartDate *Date
	EndDate   *Date
	Facets    map[string]string
}

// New returns params on page 1 with the given limit, or DefaultLimit when limit <= 0.
func New(limit int) Params {
	if limit <= 0 {
		limit = DefaultLimit
	}
	return Params{Page: DefaultPage, Limit: limit}
}

// Clone returns a deep copy.
func (p Params) Clone() Params {
	out := p
	if p.Search != nil {
		s := *p.Search
		out.Search = &s
	}
	if p.StartDate != nil {
		d := *p.StartDate
		out.StartDate = &d
	}
	if p.EndDate != nil {
		d := *p.EndDate
		out.EndDate = &d
	}
	out.Facets = maps.Clone(p.Facets)
	return out
}

// Facet returns the value of a facet filter and whether it is present.
func (p Params) Facet(name string) (string, bool) {
	v, ok := p.Facets[name]
	return v, ok
}

// Field is one optional entry of a Patch. The zero value leaves the field
// untouched; Set assigns a value and Clear removes it.
type Field[T any] struct {
	touched bool
	value   *T
}

// Set returns a Field that assigns v.
func Set[T any](v T) Field[T] {
	return Field[T]{touched: true, value: &v}
}

// Clear returns a Field that removes the current value.
func Clear[T any]() Field[T] {
	return Field[T]{touched: true}
}

func (f Field[T]) Touched() bool { return f.touched }

// Value returns the assigned value; ok is false for untouched or cleared fields.
func (f Field[T]) Value() (v T, ok bool) {
	if f.value == nil {
		return v, false
	}
	return *f.value, true
}

func (f Field[T]) ptr() *T {
	if f.value == nil {
		return nil
	}
	v := *f.value
	return &v
}

// Patch is a partial update of Params.
type Patch struct {
	Page      Field[int]
	Limit     Field[int]
	Search    Field[string]
	StartDate Field[Date]
	EndDate   Field[Date]
	Facets    map[string]Field[string]
}

// TouchesFilters reports whether the patch changes anything other than page or limit.
func (p Patch) TouchesFilters() bool {
	if p.Search.touched || p.StartDate.touched || p.EndDate.touched {
		return true
	}
	for _, f := range p.Facets {
		if f.touched {
			return true
		}
	}
	return false
}

// IsZero reports whether the patch touches nothing.
func (p Patch) IsZero() bool {
	return !p.Page.touched && !p.Limit.touched && !p.TouchesFilters()
}

// PageTo is shorthand for a page-only patch.
func PageTo(page int) Patch {
	return Patch{Page: Set(page)}
}

// LimitTo is shorthand for a limit-only patch.
func LimitTo(limit int) Patch {
	return Patch{Limit: Set(limit)}
}

// SearchFor is shorthand for a search patch; nil clears the search.
func SearchFor(term *string) Patch {
	if term == nil {
		return Patch{Search: Clear[string]()}
	}
	return Patch{Search: Set(*term)}
}

// FacetTo is shorthand for a single facet patch; an empty value clears it.
func FacetTo(name, value string) Patch {
	f := Set(value)
	if value == "" {
		f = Clear[string]()
	}
	return Patch{Facets: map[string]Field[string]{name: f}}
}
