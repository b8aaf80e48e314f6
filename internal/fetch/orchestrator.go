package fetch

import (
	"context"
	"slices"
	"sync"

	"admin-datagrid/internal/cache"
	"admin-datagrid/internal/query"
	"admin-datagrid/pkg/log"
)

// Orchestrator keeps one subscription to the key of the latest params.
type Orchestrator[R any] struct {
	res      Resolver
	src      Lister
	l        log.Logger
	cfg      Config
	onChange func()

	mu      sync.Mutex
	key     cache.Key
	load    uint64
	unsub   func()
	view    View[R]
	visited []cache.Key
	closed  bool
}

// New creates an Orchestrator. onChange, if set, runs after every view
// change, outside any lock.
func New[R any](res Resolver, src Lister, l log.Logger, cfg Config, onChange func()) *Orchestrator[R] {
	if cfg.History <= 0 {
		cfg.History = defaultHistory
	}
	return &Orchestrator[R]{
		res:      res,
		src:      src,
		l:        l,
		cfg:      cfg,
		onChange: onChange,
	}
}

// Load switches to the key of params. Loading the current key again does nothing.
func (o *Orchestrator[R]) Load(params query.Params) {
	rawQuery := params.Encode()
	key := cache.NewKey(o.cfg.Route, rawQuery)

	o.mu.Lock()
	if o.closed || key == o.key {
		o.mu.Unlock()
		return
	}
	old := o.unsub
	o.unsub = nil
	o.key = key
	o.load++
	load := o.load
	o.view = View[R]{Key: key, Status: StatusLoading}
	o.rememberLocked(key)
	o.mu.Unlock()

	if old != nil {
		old()
	}
	o.changed()

	// Subscribe may deliver synchronously, so no lock is held here.
	unsub := o.res.Subscribe(key, o.fetcher(rawQuery), func(e cache.Entry) {
		o.receive(key, e)
	})

	o.mu.Lock()
	if o.closed || o.load != load {
		o.mu.Unlock()
		unsub()
		return
	}
	o.unsub = unsub
	o.mu.Unlock()
}

// Retry re-issues the current key.
func (o *Orchestrator[R]) Retry() {
	o.mu.Lock()
	key := o.key
	if o.closed || key == "" {
		o.mu.Unlock()
		return
	}
	o.view = View[R]{Key: key, Status: StatusLoading}
	o.mu.Unlock()

	o.changed()
	o.res.Revalidate(key)
}

// View returns a copy of the current view.
func (o *Orchestrator[R]) View() View[R] {
	o.mu.Lock()
	defer o.mu.Unlock()
	v := o.view
	v.Rows = slices.Clone(v.Rows)
	return v
}

// Key returns the current key.
func (o *Orchestrator[R]) Key() cache.Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.key
}

// Keys returns the current key followed by recently visited keys, which a
// write to the collection makes stale as well.
func (o *Orchestrator[R]) Keys() []cache.Key {
	o.mu.Lock()
	defer o.mu.Unlock()
	return slices.Clone(o.visited)
}

// Close drops the subscription. Later entries are ignored.
func (o *Orchestrator[R]) Close() {
	o.mu.Lock()
	if o.closed {
		o.mu.Unlock()
		return
	}
	o.closed = true
	unsub := o.unsub
	o.unsub = nil
	o.mu.Unlock()

	if unsub != nil {
		unsub()
	}
}

func (o *Orchestrator[R]) fetcher(rawQuery string) cache.Fetcher {
	route := o.cfg.Route
	return func(ctx context.Context) ([]byte, error) {
		return o.src.List(ctx, route, rawQuery)
	}
}

func (o *Orchestrator[R]) receive(key cache.Key, e cache.Entry) {
	next := View[R]{Key: key}
	switch {
	case e.Loading:
		next.Status = StatusLoading
	case e.Err != nil:
		next.Status = StatusError
		next.Err = e.Err
	default:
		p, err := decode[R](e.Body, o.cfg.ItemsField, o.cfg.Validator, func(i int, err error) {
			o.l.Warnf(context.Background(), "fetch.receive %s: dropping record %d: %v", key, i, err)
		})
		if err != nil {
			next.Status = StatusError
			next.Err = err
			break
		}
		next.Status = StatusSuccess
		next.Rows = p.rows
		next.Pagination = p.info
		next.Dropped = p.dropped
		next.Revalidating = e.Validating
	}

	o.mu.Lock()
	if o.closed || key != o.key {
		current := o.key
		o.mu.Unlock()
		o.l.Debugf(context.Background(), "fetch.receive discarding %s, current key is %s", key, current)
		return
	}
	o.view = next
	o.mu.Unlock()

	o.changed()
}

func (o *Orchestrator[R]) rememberLocked(key cache.Key) {
	if i := slices.Index(o.visited, key); i >= 0 {
		o.visited = slices.Delete(o.visited, i, i+1)
	}
	o.visited = slices.Insert(o.visited, 0, key)
	if len(o.visited) > o.cfg.History {
		o.visited = o.visited[:o.cfg.History]
	}
}

func (o *Orchestrator[R]) changed() {
	if o.onChange != nil {
		o.onChange()
	}
}
