// Package notify delivers transient user-facing notices such as mutation
// outcomes.
package notify

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"admin-datagrid/pkg/log"
)

// GenericMessage is shown when an error carries no message of its own.
const GenericMessage = "Something went wrong. Please try again."

// Level is the severity of a Notice.
type Level string

const (
	LevelInfo    Level = "info"
	LevelSuccess Level = "success"
	LevelWarning Level = "warning"
	LevelError   Level = "error"
)

// Notice is one transient notification.
type Notice struct {
	Level   Level     `json:"level"`
	Message string    `json:"message"`
	At      time.Time `json:"at"`
}

// Notifier receives notices.
type Notifier interface {
	Notify(ctx context.Context, n Notice)
}

// UserMessager is implemented by errors that carry a message fit for users.
type UserMessager interface {
	UserMessage() string
}

// MessageFor picks the user-facing text for err.
func MessageFor(err error) string {
	var um UserMessager
	if errors.As(err, &um) {
		if msg := um.UserMessage(); msg != "" {
			return msg
		}
	}
	return GenericMessage
}

// Success builds a success notice.
func Success(msg string) Notice {
	return Notice{Level: LevelSuccess, Message: msg, At: time.Now()}
}

// Failure builds an error notice for err.
func Failure(err error) Notice {
	return Notice{Level: LevelError, Message: MessageFor(err), At: time.Now()}
}

// Feed is a bounded Notifier read through a channel. Notices are dropped
// when the reader falls behind.
type Feed struct {
	ch      chan Notice
	dropped atomic.Int64
}

// NewFeed creates a Feed buffering up to size notices.
func NewFeed(size int) *Feed {
	if size <= 0 {
		size = 16
	}
	return &Feed{ch: make(chan Notice, size)}
}

func (f *Feed) Notify(_ context.Context, n Notice) {
	select {
	case f.ch <- n:
	default:
		f.dropped.Add(1)
	}
}

// C returns the receive side of the feed.
func (f *Feed) C() <-chan Notice { return f.ch }

// Dropped returns how many notices were discarded.
func (f *Feed) Dropped() int64 { return f.dropped.Load() }

type logNotifier struct {
	l log.Logger
}

// NewLogNotifier writes notices to l.
func NewLogNotifier(l log.Logger) Notifier {
	return logNotifier{l: l}
}

func (n logNotifier) Notify(ctx context.Context, notice Notice) {
	switch notice.Level {
	case LevelError:
		n.l.Errorf(ctx, "notice: %s", notice.Message)
	case LevelWarning:
		n.l.Warnf(ctx, "notice: %s", notice.Message)
	default:
		n.l.Infof(ctx, "notice: %s", notice.Message)
	}
}

// Multi fans a notice out to every notifier.
type Multi []Notifier

func (m Multi) Notify(ctx context.Context, n Notice) {
	for _, x := range m {
		x.Notify(ctx, n)
	}
}
