// Package pagination maps server pagination metadata onto navigation
// controls and turns control activations into query patches.
package pagination

import (
	"fmt"
	"slices"

	"admin-datagrid/internal/query"
)

// Reconcile derives the navigation controls from the server's Info alone.
func Reconcile(info Info) Controls {
	return Controls{
		First:    Control{Action: First, Disabled: !info.HasPrev, Page: 1},
		Previous: Control{Action: Previous, Disabled: !info.HasPrev, Page: info.CurrentPage - 1},
		Next:     Control{Action: Next, Disabled: !info.HasNext, Page: info.CurrentPage + 1},
		Last:     Control{Action: Last, Disabled: !info.HasNext, Page: info.TotalPages},
		Summary:  info,
		Sizes:    slices.Clone(PageSizes),
	}
}

// Control returns the control for action.
func (c Controls) Control(action Action) (Control, error) {
	switch action {
	case First:
		return c.First, nil
	case Previous:
		return c.Previous, nil
	case Next:
		return c.Next, nil
	case Last:
		return c.Last, nil
	default:
		return Control{}, fmt.Errorf("%w: %q", ErrUnknownAction, action)
	}
}

// Navigate returns the page patch for activating action, or ErrActionDisabled.
func Navigate(info Info, action Action) (query.Patch, error) {
	ctrl, err := Reconcile(info).Control(action)
	if err != nil {
		return query.Patch{}, err
	}
	if ctrl.Disabled {
		return query.Patch{}, fmt.Errorf("%w: %s", ErrActionDisabled, action)
	}
	return query.PageTo(ctrl.Page), nil
}

// ChangePageSize returns the limit patch for size. The limit change resets
// the page through query.Update.
func ChangePageSize(size int) (query.Patch, error) {
	if !slices.Contains(PageSizes, size) {
		return query.Patch{}, fmt.Errorf("%w: %d", ErrPageSizeNotAllowed, size)
	}
	return query.LimitTo(size), nil
}
