// Package mutation sequences writes and the cache invalidations they cause.
package mutation

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"

	"admin-datagrid/internal/cache"
	"admin-datagrid/pkg/log"
)

var ErrPanic = errors.New("mutation: write panicked")

// Invalidator marks keys stale and triggers their refetch.
type Invalidator interface {
	Invalidate(key cache.Key)
}

// Write performs one server-side write.
type Write func(ctx context.Context) error

type keyLock struct {
	mu   sync.Mutex
	refs int
}

// Coordinator runs writes and invalidates their keys after a confirmed
// success. Writes sharing a key are serialized together with their
// invalidation. One Coordinator is shared by all screens.
type Coordinator struct {
	inv Invalidator
	l   log.Logger

	mu    sync.Mutex
	locks map[cache.Key]*keyLock
}

// New creates a Coordinator.
func New(inv Invalidator, l log.Logger) *Coordinator {
	return &Coordinator{
		inv:   inv,
		l:     l,
		locks: make(map[cache.Key]*keyLock),
	}
}

// Execute awaits write, then invalidates each distinct key once. A failed
// or panicking write invalidates nothing.
func (c *Coordinator) Execute(ctx context.Context, keys []cache.Key, write Write) error {
	keys = slices.Clone(keys)
	slices.Sort(keys)
	keys = slices.Compact(keys)

	release := c.acquire(keys)
	defer release()

	if err := c.run(ctx, write); err != nil {
		c.l.Warnf(ctx, "mutation.Execute: %v", err)
		return err
	}
	for _, k := range keys {
		c.inv.Invalidate(k)
	}
	return nil
}

func (c *Coordinator) run(ctx context.Context, write Write) (err error) {
	defer func() {
		if r := recover(); r != nil {
			c.l.Errorf(ctx, "mutation.run recovered: %v", r)
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return write(ctx)
}

// acquire locks keys in sorted order so overlapping key sets cannot deadlock.
func (c *Coordinator) acquire(keys []cache.Key) (release func()) {
	held := make([]*keyLock, 0, len(keys))

	c.mu.Lock()
	for _, k := range keys {
		kl, ok := c.locks[k]
		if !ok {
			kl = &keyLock{}
			c.locks[k] = kl
		}
		kl.refs++
		held = append(held, kl)
	}
	c.mu.Unlock()

	for _, kl := range held {
		kl.mu.Lock()
	}

	return func() {
		for i := len(held) - 1; i >= 0; i-- {
			held[i].mu.Unlock()
		}
		c.mu.Lock()
		for i, k := range keys {
			held[i].refs--
			if held[i].refs == 0 {
				delete(c.locks, k)
			}
		}
		c.mu.Unlock()
	}
}
