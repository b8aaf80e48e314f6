package pagination

// Info is the pagination metadata reported by the server. It is read verbatim
// and never recomputed on the client.
type Info struct {
	CurrentPage int  `json:"currentPage"`
	TotalPages  int  `json:"totalPages"`
	TotalCount  int  `json:"totalCount"`
	HasNext     bool `json:"hasNext"`
	HasPrev     bool `json:"hasPrev"`
}

// Action is one navigation control.
type Action string

const (
	First    Action = "first"
	Previous Action = "previous"
	Next     Action = "next"
	Last     Action = "last"
)

// Control is the rendered state of one navigation action.
type Control struct {
	Action   Action
	Disabled bool
	Page     int
}

// Controls is the full navigation bar.
type Controls struct {
	First    Control
	Previous Control
	Next     Control
	Last     Control
	Summary  Info
	Sizes    []int
}

// PageSizes is the fixed set of rows-per-page options.
var PageSizes = []int{10, 20, 30, 40, 50, 100}
