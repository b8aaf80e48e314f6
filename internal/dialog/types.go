package dialog

// Kind names which dialog occupies the single dialog slot.
type Kind string

const (
	KindNone   Kind = ""
	KindCreate Kind = "create"
	KindUpdate Kind = "update"
	KindDelete Kind = "delete"
	KindView   Kind = "view"
)

// State is the tagged union of dialog states. Row-bound states carry their
// row, so an update or delete dialog without a row cannot be represented.
type State interface {
	Kind() Kind
	isState()
}

// Idle means no dialog is open. The current row may still be set while its
// delayed clear is pending.
type Idle struct{}

// Creating is the "new record" dialog; it has no row.
type Creating struct{}

// Editing is the update dialog for Row.
type Editing[R any] struct{ Row R }

// ConfirmingDelete is the delete confirmation for Row.
type ConfirmingDelete[R any] struct{ Row R }

// Acting is any other row-bound dialog, such as a detail view.
type Acting[R any] struct {
	Action Kind
	Row    R
}

// Prompting is any other dialog that needs no row, such as an export prompt.
type Prompting struct{ Action Kind }

func (Idle) Kind() Kind                { return KindNone }
func (Creating) Kind() Kind            { return KindCreate }
func (Editing[R]) Kind() Kind          { return KindUpdate }
func (ConfirmingDelete[R]) Kind() Kind { return KindDelete }
func (a Acting[R]) Kind() Kind         { return a.Action }
func (p Prompting) Kind() Kind         { return p.Action }

func (Idle) isState()                {}
func (Creating) isState()            {}
func (Editing[R]) isState()          {}
func (ConfirmingDelete[R]) isState() {}
func (Acting[R]) isState()           {}
func (Prompting) isState()           {}
