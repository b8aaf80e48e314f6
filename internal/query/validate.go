package query

import (
	"fmt"
	"slices"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// Validate checks bounds, date ordering and that every facet is one of allowed.
func (p Params) Validate(allowed []string) error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidParams, err)
	}
	if p.StartDate != nil && p.EndDate != nil && p.StartDate.After(*p.EndDate) {
		return ErrDateRange
	}
	for name := range p.Facets {
		if reserved[name] || !slices.Contains(allowed, name) {
			return fmt.Errorf("%w: %s", ErrUnknownFacet, name)
		}
	}
	return nil
}

// SelectableStart reports whether d may be picked as the start date given the current end date.
func (p Params) SelectableStart(d Date) bool {
	return p.EndDate == nil || !d.After(*p.EndDate)
}

// SelectableEnd reports whether d may be picked as the end date given the current start date.
func (p Params) SelectableEnd(d Date) bool {
	return p.StartDate == nil || !d.Before(*p.StartDate)
}
