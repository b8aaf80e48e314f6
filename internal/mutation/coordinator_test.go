package mutation_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-datagrid/internal/cache"
	"admin-datagrid/internal/mutation"
	"admin-datagrid/pkg/log"
)

type countingInvalidator struct {
	mu     sync.Mutex
	counts map[cache.Key]int
	events *events
}

func newInvalidator(ev *events) *countingInvalidator {
	return &countingInvalidator{counts: make(map[cache.Key]int), events: ev}
}

func (c *countingInvalidator) Invalidate(key cache.Key) {
	c.mu.Lock()
	c.counts[key]++
	c.mu.Unlock()
	if c.events != nil {
		c.events.add("invalidate " + string(key))
	}
}

func (c *countingInvalidator) count(key cache.Key) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.counts[key]
}

type events struct {
	mu  sync.Mutex
	log []string
}

func (e *events) add(s string) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.log = append(e.log, s)
}

func (e *events) all() []string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]string(nil), e.log...)
}

var listKey = cache.NewKey("/products", "limit=50&page=1")

func TestExecute(t *testing.T) {
	ctx := context.Background()

	t.Run("Success Invalidates Once", func(t *testing.T) {
		inv := newInvalidator(nil)
		c := mutation.New(inv, log.NewNop())

		err := c.Execute(ctx, []cache.Key{listKey, listKey}, func(ctx context.Context) error { return nil })
		require.NoError(t, err)
		assert.Equal(t, 1, inv.count(listKey))
	})

	t.Run("Failure Invalidates Nothing", func(t *testing.T) {
		inv := newInvalidator(nil)
		c := mutation.New(inv, log.NewNop())
		boom := errors.New("409 conflict")

		err := c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error { return boom })
		assert.ErrorIs(t, err, boom)
		assert.Zero(t, inv.count(listKey))
	})

	t.Run("Panic Is Recovered", func(t *testing.T) {
		inv := newInvalidator(nil)
		c := mutation.New(inv, log.NewNop())

		err := c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error { panic("nil row") })
		assert.ErrorIs(t, err, mutation.ErrPanic)
		assert.Zero(t, inv.count(listKey))

		// The key lock was released.
		require.NoError(t, c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error { return nil }))
		assert.Equal(t, 1, inv.count(listKey))
	})

	t.Run("Invalidation Follows Write", func(t *testing.T) {
		ev := &events{}
		c := mutation.New(newInvalidator(ev), log.NewNop())

		err := c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error {
			ev.add("write")
			return nil
		})
		require.NoError(t, err)
		assert.Equal(t, []string{"write", "invalidate " + string(listKey)}, ev.all())
	})
}

func TestSerialization(t *testing.T) {
	ctx := context.Background()

	t.Run("Same Key", func(t *testing.T) {
		ev := &events{}
		c := mutation.New(newInvalidator(ev), log.NewNop())
		gate := make(chan struct{})
		started := make(chan struct{})

		var wg sync.WaitGroup
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error {
				close(started)
				<-gate
				ev.add("first")
				return nil
			})
		}()
		<-started

		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error {
				ev.add("second")
				return nil
			})
		}()

		time.Sleep(20 * time.Millisecond)
		close(gate)
		wg.Wait()

		inv := "invalidate " + string(listKey)
		assert.Equal(t, []string{"first", inv, "second", inv}, ev.all())
	})

	t.Run("Distinct Keys Run Concurrently", func(t *testing.T) {
		c := mutation.New(newInvalidator(nil), log.NewNop())
		other := cache.NewKey("/assignments", "limit=50&page=1")
		gate := make(chan struct{})
		started := make(chan struct{})

		done := make(chan struct{})
		go func() {
			defer close(done)
			_ = c.Execute(ctx, []cache.Key{listKey}, func(ctx context.Context) error {
				close(started)
				<-gate
				return nil
			})
		}()
		<-started

		require.NoError(t, c.Execute(ctx, []cache.Key{other}, func(ctx context.Context) error { return nil }))
		close(gate)
		<-done
	})
}
