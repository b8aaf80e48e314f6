// Package dialog tracks the current row and the single open dialog of a list view.
package dialog

import (
	"fmt"
	"sync"
	"time"

	"admin-datagrid/pkg/schedule"
)

// DefaultClearDelay is how long the current row outlives its dialog.
const DefaultClearDelay = 500 * time.Millisecond

// Option configures a Machine.
type Option func(*options)

type options struct {
	rowless  map[Kind]bool
	onChange func()
}

// WithRowlessKinds marks extra kinds that open without a row.
func WithRowlessKinds(kinds ...Kind) Option {
	return func(o *options) {
		for _, k := range kinds {
			o.rowless[k] = true
		}
	}
}

// WithOnChange registers a callback fired after the delayed row clear.
func WithOnChange(fn func()) Option {
	return func(o *options) { o.onChange = fn }
}

// Machine is the selection and dialog state machine for rows of type R.
type Machine[R any] struct {
	sched    schedule.Scheduler
	delay    time.Duration
	rowless  map[Kind]bool
	onChange func()

	mu      sync.Mutex
	state   State
	current *R
	version uint64
	clear   schedule.Timer
}

// New creates an idle Machine.
func New[R any](sched schedule.Scheduler, clearDelay time.Duration, opts ...Option) *Machine[R] {
	if clearDelay <= 0 {
		clearDelay = DefaultClearDelay
	}
	o := options{rowless: map[Kind]bool{KindCreate: true}}
	for _, opt := range opts {
		opt(&o)
	}
	return &Machine[R]{
		sched:    sched,
		delay:    clearDelay,
		rowless:  o.rowless,
		onChange: o.onChange,
		state:    Idle{},
	}
}

// OpenCreate opens the create dialog and drops any lingering row.
func (m *Machine[R]) OpenCreate() {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.preemptLocked()
	m.current = nil
	m.state = Creating{}
}

// Open opens the dialog of kind for row. The row is bound before the dialog
// is marked open, and any pending clear from an earlier close is cancelled.
func (m *Machine[R]) Open(kind Kind, row *R) error {
	if kind == KindNone {
		return fmt.Errorf("%w: empty", ErrInvalidKind)
	}
	if kind == KindCreate {
		m.OpenCreate()
		return nil
	}
	if row == nil && !m.rowless[kind] {
		return fmt.Errorf("%w: %s", ErrRowRequired, kind)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.preemptLocked()
	if row == nil {
		m.current = nil
		m.state = Prompting{Action: kind}
		return nil
	}

	r := *row
	m.current = &r
	switch kind {
	case KindUpdate:
		m.state = Editing[R]{Row: r}
	case KindDelete:
		m.state = ConfirmingDelete[R]{Row: r}
	default:
		m.state = Acting[R]{Action: kind, Row: r}
	}
	return nil
}

// Close returns to Idle at once; the current row is cleared after the delay
// unless another Open happens first. Closing an idle machine does nothing.
func (m *Machine[R]) Close() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closeLocked()
}

func (m *Machine[R]) closeLocked() {
	if _, idle := m.state.(Idle); idle {
		return
	}
	m.state = Idle{}
	m.version++
	if m.clear != nil {
		m.clear.Stop()
	}
	version := m.version
	m.clear = m.sched.AfterFunc(m.delay, func() { m.clearRow(version) })
}

// State returns the current dialog state.
func (m *Machine[R]) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Current returns a copy of the current row, or nil.
func (m *Machine[R]) Current() *R {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.currentLocked()
}

// Snapshot returns state and current row read under one lock.
func (m *Machine[R]) Snapshot() (State, *R) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.currentLocked()
}

// Session returns state and current row together with the version that
// identifies this opening of the dialog.
func (m *Machine[R]) Session() (State, *R, uint64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state, m.currentLocked(), m.version
}

// CloseSession closes the dialog only if it is still the one returned by
// Session with version. It reports whether it closed.
func (m *Machine[R]) CloseSession(version uint64) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.version != version {
		return false
	}
	m.closeLocked()
	return true
}

// Stop cancels any pending clear. The machine stays usable.
func (m *Machine[R]) Stop() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.preemptLocked()
}

func (m *Machine[R]) currentLocked() *R {
	if m.current == nil {
		return nil
	}
	r := *m.current
	return &r
}

func (m *Machine[R]) preemptLocked() {
	m.version++
	if m.clear != nil {
		m.clear.Stop()
		m.clear = nil
	}
}

func (m *Machine[R]) clearRow(version uint64) {
	m.mu.Lock()
	if version != m.version {
		m.mu.Unlock()
		return
	}
	m.current = nil
	m.clear = nil
	m.mu.Unlock()

	if m.onChange != nil {
		m.onChange()
	}
}
