// Package debounce turns rapid edits of a text input into at most one
// commit per quiet period.
package debounce

import (
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"admin-datagrid/pkg/schedule"
)

// DefaultDelay is the quiet period before a value commits.
const DefaultDelay = 500 * time.Millisecond

// Debouncer holds at most one pending commit. Every Change replaces it.
type Debouncer struct {
	sched  schedule.Scheduler
	delay  time.Duration
	commit func(string)

	mu      sync.Mutex
	gen     uint64
	pending schedule.Timer
	closed  bool
}

// New creates a Debouncer that calls commit with the last value seen once
// delay passes without another Change.
func New(sched schedule.Scheduler, delay time.Duration, commit func(string)) *Debouncer {
	if delay <= 0 {
		delay = DefaultDelay
	}
	return &Debouncer{sched: sched, delay: delay, commit: commit}
}

// Change records a new raw value and restarts the timer.
func (d *Debouncer) Change(raw string) {
	d.mu.Lock()
	defer d.mu.Unlock()

	if d.closed {
		return
	}
	if d.pending != nil {
		d.pending.Stop()
	}
	d.gen++
	gen := d.gen
	d.pending = d.sched.AfterFunc(d.delay, func() { d.fire(gen, raw) })
}

// Cancel drops the pending value, if any, without closing the Debouncer.
func (d *Debouncer) Cancel() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.cancelLocked()
}

// Close discards the pending value; nothing commits after Close returns.
func (d *Debouncer) Close() {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closed = true
	d.cancelLocked()
}

// Pending reports whether a commit is scheduled.
func (d *Debouncer) Pending() bool {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.pending != nil
}

func (d *Debouncer) cancelLocked() {
	if d.pending != nil {
		d.pending.Stop()
		d.pending = nil
	}
	d.gen++
}

func (d *Debouncer) fire(gen uint64, raw string) {
	d.mu.Lock()
	// A timer that lost the race with Stop still runs; the generation check drops it.
	if d.closed || gen != d.gen {
		d.mu.Unlock()
		return
	}
	d.pending = nil
	d.mu.Unlock()

	d.commit(raw)
}

// SearchTerm turns a raw search value into the committed filter. Values with
// fewer than minLen runes once surrounding whitespace is ignored mean "no
// search filter" and yield nil. Anything else is committed unchanged.
func SearchTerm(raw string, minLen int) *string {
	if minLen < 1 {
		minLen = 1
	}
	if utf8.RuneCountInString(strings.TrimSpace(raw)) < minLen {
		return nil
	}
	return &raw
}
