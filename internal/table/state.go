package table

import (
	"cmp"
	"fmt"
	"slices"
	"sort"
	"strings"
	"sync"
	"time"
)

// State is the mutable presentation state for one table.
type State[R any] struct {
	columns []Column[R]
	byKey   map[string]int
	id      func(R) string

	mu       sync.Mutex
	sort     []SortKey
	hidden   map[string]bool
	selected map[string]bool
}

// New creates a State over columns. id extracts the selection key of a row.
func New[R any](columns []Column[R], id func(R) string) *State[R] {
	byKey := make(map[string]int, len(columns))
	for i, c := range columns {
		byKey[c.Key] = i
	}
	return &State[R]{
		columns:  columns,
		byKey:    byKey,
		id:       id,
		hidden:   make(map[string]bool),
		selected: make(map[string]bool),
	}
}

func (s *State[R]) column(key string) (Column[R], error) {
	i, ok := s.byKey[key]
	if !ok {
		return Column[R]{}, fmt.Errorf("%w: %s", ErrUnknownColumn, key)
	}
	return s.columns[i], nil
}

// ToggleSort advances key through asc, desc and none. Without multi the
// other sort keys are dropped first.
func (s *State[R]) ToggleSort(key string, multi bool) error {
	col, err := s.column(key)
	if err != nil {
		return err
	}
	if !col.Sortable {
		return fmt.Errorf("%w: %s", ErrNotSortable, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	current := None
	idx := slices.IndexFunc(s.sort, func(k SortKey) bool { return k.Column == key })
	if idx >= 0 {
		current = s.sort[idx].Direction
	}
	next := current.next()

	if !multi {
		s.sort = s.sort[:0]
		idx = -1
	}
	switch {
	case next == None && idx >= 0:
		s.sort = slices.Delete(s.sort, idx, idx+1)
	case next == None:
	case idx >= 0:
		s.sort[idx].Direction = next
	default:
		s.sort = append(s.sort, SortKey{Column: key, Direction: next})
	}
	return nil
}

// ClearSort drops every sort key.
func (s *State[R]) ClearSort() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sort = nil
}

// SetVisible shows or hides a hideable column.
func (s *State[R]) SetVisible(key string, visible bool) error {
	col, err := s.column(key)
	if err != nil {
		return err
	}
	if !col.Hideable && !visible {
		return fmt.Errorf("%w: %s", ErrNotHideable, key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if visible {
		delete(s.hidden, key)
	} else {
		s.hidden[key] = true
	}
	return nil
}

// Columns returns the visible columns in declaration order.
func (s *State[R]) Columns() []Column[R] {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]Column[R], 0, len(s.columns))
	for _, c := range s.columns {
		if !s.hidden[c.Key] {
			out = append(out, c)
		}
	}
	return out
}

// Select marks or unmarks one row id.
func (s *State[R]) Select(id string, on bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if on {
		s.selected[id] = true
	} else {
		delete(s.selected, id)
	}
}

// SelectAll selects every row in rows.
func (s *State[R]) SelectAll(rows []R) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range rows {
		s.selected[s.id(r)] = true
	}
}

// ClearSelection unselects everything.
func (s *State[R]) ClearSelection() {
	s.mu.Lock()
	defer s.mu.Unlock()
	clear(s.selected)
}

// IsSelected reports whether id is selected.
func (s *State[R]) IsSelected(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.selected[id]
}

// Prune drops selected ids that are not among rows. It runs whenever the
// server returns a new page.
func (s *State[R]) Prune(rows []R) {
	present := make(map[string]bool, len(rows))
	for _, r := range rows {
		present[s.id(r)] = true
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for id := range s.selected {
		if !present[id] {
			delete(s.selected, id)
		}
	}
}

// Apply returns rows sorted by the current sort keys. The input is not modified.
func (s *State[R]) Apply(rows []R) []R {
	s.mu.Lock()
	keys := slices.Clone(s.sort)
	s.mu.Unlock()

	out := slices.Clone(rows)
	if len(keys) == 0 {
		return out
	}
	slices.SortStableFunc(out, func(a, b R) int {
		for _, k := range keys {
			col := s.columns[s.byKey[k.Column]]
			c := compare(col.Value(a), col.Value(b))
			if k.Direction == Desc {
				c = -c
			}
			if c != 0 {
				return c
			}
		}
		return 0
	})
	return out
}

// Snapshot returns a copy of the current state.
func (s *State[R]) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := Snapshot{Sort: slices.Clone(s.sort)}
	for k := range s.hidden {
		snap.Hidden = append(snap.Hidden, k)
	}
	for id := range s.selected {
		snap.Selected = append(snap.Selected, id)
	}
	sort.Strings(snap.Hidden)
	sort.Strings(snap.Selected)
	return snap
}

// compare orders nil first, then by the dynamic type of the values.
func compare(a, b any) int {
	switch {
	case a == nil && b == nil:
		return 0
	case a == nil:
		return -1
	case b == nil:
		return 1
	}

	switch x := a.(type) {
	case string:
		if y, ok := b.(string); ok {
			return strings.Compare(strings.ToLower(x), strings.ToLower(y))
		}
	case int:
		if y, ok := b.(int); ok {
			return cmp.Compare(x, y)
		}
	case int64:
		if y, ok := b.(int64); ok {
			return cmp.Compare(x, y)
		}
	case float64:
		if y, ok := b.(float64); ok {
			return cmp.Compare(x, y)
		}
	case bool:
		if y, ok := b.(bool); ok {
			switch {
			case x == y:
				return 0
			case !x:
				return -1
			default:
				return 1
			}
		}
	case time.Time:
		if y, ok := b.(time.Time); ok {
			return x.Compare(y)
		}
	}
	return strings.Compare(fmt.Sprint(a), fmt.Sprint(b))
}
