// Package schedule abstracts delayed callbacks so timers can be cancelled
// deterministically and driven by a manual clock in tests.
package schedule

import "time"

// Timer is a pending callback. Stop reports whether it prevented the call.
type Timer interface {
	Stop() bool
}

// Scheduler runs fn once after d elapses.
type Scheduler interface {
	AfterFunc(d time.Duration, fn func()) Timer
}

type wall struct{}

// Wall returns a Scheduler backed by time.AfterFunc.
func Wall() Scheduler {
	return wall{}
}

func (wall) AfterFunc(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}
