// Package cache is the process-wide remote cache: responses keyed by request
// identity, shared by every screen, with subscribe and invalidate operations.
package cache

import (
	"context"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/singleflight"

	"admin-datagrid/pkg/log"
)

// DefaultFetchTimeout bounds one fetch started by the cache.
const DefaultFetchTimeout = 15 * time.Second

// Fetcher loads the response body for one key.
type Fetcher func(ctx context.Context) ([]byte, error)

// Entry is what a subscriber observes for its key.
type Entry struct {
	Key        Key
	Body       []byte
	Err        error
	Loading    bool
	Validating bool
	FetchedAt  time.Time
}

// Listener receives entries for one subscription, in publish order.
type Listener func(Entry)

type subscriber struct {
	mu   sync.Mutex
	last uint64
	fn   Listener
}

// deliver drops entries older than the last one delivered.
func (s *subscriber) deliver(seq uint64, e Entry) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq <= s.last {
		return
	}
	s.last = seq
	s.fn(e)
}

type keyState struct {
	gen     uint64
	seq     uint64
	stale   bool
	pending bool
	dirty   bool
	fetch   Fetcher
	subs    map[uuid.UUID]*subscriber
}

// Cache coordinates fetches, storage and notification per key.
type Cache struct {
	store   Store
	l       log.Logger
	timeout time.Duration
	group   singleflight.Group

	ctx    context.Context
	cancel context.CancelFunc
	wg     sync.WaitGroup

	mu   sync.Mutex
	keys map[Key]*keyState
}

// Config holds Cache tunables.
type Config struct {
	FetchTimeout time.Duration
}

// New creates a Cache over store.
func New(store Store, l log.Logger, cfg Config) *Cache {
	if cfg.FetchTimeout <= 0 {
		cfg.FetchTimeout = DefaultFetchTimeout
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Cache{
		store:   store,
		l:       l,
		timeout: cfg.FetchTimeout,
		ctx:     ctx,
		cancel:  cancel,
		keys:    make(map[Key]*keyState),
	}
}

// Subscribe registers listener for key. The listener first receives the
// stored entry, or a loading entry followed by the fetch result. Later
// invalidations deliver fresh entries until the returned func is called.
func (c *Cache) Subscribe(key Key, fetch Fetcher, listener Listener) (unsubscribe func()) {
	rec, found, err := c.store.Get(c.ctx, key)
	if err != nil {
		c.l.Warnf(c.ctx, "cache.Subscribe store.Get %s: %v", key, err)
		found = false
	}

	sub := &subscriber{fn: listener}
	id := uuid.New()

	c.mu.Lock()
	ks := c.stateLocked(key)
	ks.fetch = fetch
	ks.subs[id] = sub
	ks.seq++
	seq := ks.seq
	needFetch := !found || ks.stale
	c.mu.Unlock()

	if found {
		sub.deliver(seq, Entry{Key: key, Body: rec.Body, FetchedAt: rec.FetchedAt, Validating: needFetch})
	} else {
		sub.deliver(seq, Entry{Key: key, Loading: true})
	}
	if needFetch {
		c.revalidate(key)
	}

	return func() { c.unsubscribe(key, id) }
}

// Invalidate marks key stale and refetches it for its subscribers. A key
// nobody subscribes to is dropped from the store instead. Invalidations that
// arrive while a refetch is pending collapse into one more fetch started when
// that refetch lands.
func (c *Cache) Invalidate(key Key) {
	c.mu.Lock()
	ks, ok := c.keys[key]
	if !ok || len(ks.subs) == 0 {
		if ok {
			ks.gen++
		}
		c.mu.Unlock()
		if err := c.store.Delete(c.ctx, key); err != nil {
			c.l.Warnf(c.ctx, "cache.Invalidate store.Delete %s: %v", key, err)
		}
		return
	}
	if ks.pending {
		ks.dirty = true
		c.mu.Unlock()
		return
	}
	ks.gen++
	ks.stale = true
	ks.pending = true
	c.mu.Unlock()

	c.l.Debugf(c.ctx, "cache.Invalidate %s", key)
	c.revalidate(key)
}

// Revalidate refetches key for its subscribers without bumping its generation.
// It backs user-triggered retries.
func (c *Cache) Revalidate(key Key) {
	c.revalidate(key)
}

// Peek returns the stored entry for key without subscribing.
func (c *Cache) Peek(ctx context.Context, key Key) (Entry, bool) {
	rec, ok, err := c.store.Get(ctx, key)
	if err != nil || !ok {
		return Entry{}, false
	}
	return Entry{Key: key, Body: rec.Body, FetchedAt: rec.FetchedAt}, true
}

// Wait blocks until every started fetch has finished.
func (c *Cache) Wait() {
	c.wg.Wait()
}

// Close cancels in-flight fetches and waits for them.
func (c *Cache) Close() {
	c.cancel()
	c.wg.Wait()
}

func (c *Cache) stateLocked(key Key) *keyState {
	ks, ok := c.keys[key]
	if !ok {
		ks = &keyState{subs: make(map[uuid.UUID]*subscriber)}
		c.keys[key] = ks
	}
	return ks
}

func (c *Cache) unsubscribe(key Key, id uuid.UUID) {
	c.mu.Lock()
	ks, ok := c.keys[key]
	if !ok {
		c.mu.Unlock()
		return
	}
	delete(ks.subs, id)
	if len(ks.subs) > 0 {
		c.mu.Unlock()
		return
	}
	stale := ks.stale
	delete(c.keys, key)
	c.mu.Unlock()

	// The stale flag dies with the key state, so the record must go too.
	if stale {
		if err := c.store.Delete(c.ctx, key); err != nil {
			c.l.Warnf(c.ctx, "cache.unsubscribe store.Delete %s: %v", key, err)
		}
	}
}

func flightKey(key Key, gen uint64) string {
	return string(key) + "#" + strconv.FormatUint(gen, 10)
}

// revalidate starts, or joins, the fetch of key at its current generation.
func (c *Cache) revalidate(key Key) {
	c.mu.Lock()
	ks, ok := c.keys[key]
	if !ok || ks.fetch == nil {
		c.mu.Unlock()
		return
	}
	gen, fetch := ks.gen, ks.fetch
	c.mu.Unlock()

	c.wg.Add(1)
	done := c.group.DoChan(flightKey(key, gen), func() (any, error) {
		c.run(key, gen, fetch)
		return nil, nil
	})
	go func() {
		<-done
		c.wg.Done()
	}()
}

func (c *Cache) run(key Key, gen uint64, fetch Fetcher) {
	ctx, cancel := context.WithTimeout(c.ctx, c.timeout)
	defer cancel()

	body, err := fetch(ctx)

	c.mu.Lock()
	ks, ok := c.keys[key]
	if !ok || ks.gen != gen {
		c.mu.Unlock()
		c.l.Debugf(c.ctx, "cache.run dropping superseded response for %s", key)
		return
	}

	entry := Entry{Key: key}
	if err != nil {
		ks.stale = true
		entry.Err = err
	} else {
		rec := Record{Body: body, FetchedAt: time.Now()}
		// Stored under the lock so an older generation can never overwrite a newer one.
		if setErr := c.store.Set(ctx, key, rec); setErr != nil {
			c.l.Warnf(c.ctx, "cache.run store.Set %s: %v", key, setErr)
		}
		ks.stale = false
		entry.Body = rec.Body
		entry.FetchedAt = rec.FetchedAt
	}
	// The response may predate a write invalidated while it was in flight.
	again := ks.dirty
	if again {
		ks.dirty = false
		ks.gen++
		ks.stale = true
		entry.Validating = true
	} else {
		ks.pending = false
	}
	ks.seq++
	seq := ks.seq
	subs := make([]*subscriber, 0, len(ks.subs))
	for _, s := range ks.subs {
		subs = append(subs, s)
	}
	c.mu.Unlock()

	if err != nil {
		c.l.Warnf(c.ctx, "cache.run fetch %s: %v", key, err)
	}
	for _, s := range subs {
		s.deliver(seq, entry)
	}
	if again {
		c.revalidate(key)
	}
}
