// Package table holds client-side presentation state of a list view:
// sorting, column visibility and row selection. It never talks to the server.
package table

// Direction is the sort direction of one column.
type Direction int

const (
	None Direction = iota
	Asc
	Desc
)

func (d Direction) String() string {
	switch d {
	case Asc:
		return "asc"
	case Desc:
		return "desc"
	default:
		return "none"
	}
}

// next cycles asc -> desc -> none.
func (d Direction) next() Direction {
	switch d {
	case None:
		return Asc
	case Asc:
		return Desc
	default:
		return None
	}
}

// Column describes one rendered column of rows of type R.
type Column[R any] struct {
	Key      string
	Title    string
	Value    func(R) any
	Sortable bool
	Hideable bool
}

// SortKey is one entry of a multi-column sort, highest priority first.
type SortKey struct {
	Column    string    `json:"column"`
	Direction Direction `json:"direction"`
}

// Snapshot is a copy of the presentation state.
type Snapshot struct {
	Sort     []SortKey `json:"sort"`
	Hidden   []string  `json:"hidden"`
	Selected []string  `json:"selected"`
}
