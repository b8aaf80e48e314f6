package screen

import (
	"context"
	"fmt"
	"net/url"
	"sync"

	"admin-datagrid/internal/debounce"
	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/fetch"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/notify"
	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/query"
	"admin-datagrid/internal/remote"
	"admin-datagrid/internal/table"
)

// Screen is the controller of one list view over rows of type R.
type Screen[R model.Record] struct {
	res  model.Resource[R]
	deps Deps

	orch   *fetch.Orchestrator[R]
	dialog *dialog.Machine[R]
	search *debounce.Debouncer
	table  *table.State[R]

	mu        sync.Mutex
	params    query.Params
	gen       uint64
	closed    bool
	nextSub   int
	listeners map[int]func(Snapshot[R])
}

// New creates a screen for res and starts loading its first page.
func New[R model.Record](res model.Resource[R], deps Deps, cfg Config) (*Screen[R], error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	validator, err := fetch.NewSchemaValidator(res.Schema)
	if err != nil {
		return nil, fmt.Errorf("screen %s: %w", res.Name, err)
	}

	s := &Screen[R]{
		res:       res,
		deps:      deps,
		params:    query.New(cfg.DefaultLimit),
		listeners: make(map[int]func(Snapshot[R])),
	}
	s.orch = fetch.New[R](deps.Cache, deps.API, deps.Logger, fetch.Config{
		Route:      res.Route,
		ItemsField: res.ItemsField,
		Validator:  validator,
	}, s.onView)
	s.dialog = dialog.New[R](deps.Scheduler, cfg.ClearDelay,
		dialog.WithRowlessKinds(res.RowlessKinds()...),
		dialog.WithOnChange(s.publish),
	)
	s.search = debounce.New(deps.Scheduler, cfg.DebounceDelay, s.commitSearch)
	s.table = table.New(res.Columns, func(r R) string { return r.RecordID() })

	s.orch.Load(s.params)
	return s, nil
}

func (d Deps) validate() error {
	switch {
	case d.Cache == nil:
		return fmt.Errorf("%w: cache", ErrMissingDeps)
	case d.Coordinator == nil:
		return fmt.Errorf("%w: coordinator", ErrMissingDeps)
	case d.API == nil:
		return fmt.Errorf("%w: api", ErrMissingDeps)
	case d.Scheduler == nil:
		return fmt.Errorf("%w: scheduler", ErrMissingDeps)
	case d.Logger == nil:
		return fmt.Errorf("%w: logger", ErrMissingDeps)
	case d.Notifier == nil:
		return fmt.Errorf("%w: notifier", ErrMissingDeps)
	}
	return nil
}

// Resource returns the collection this screen shows.
func (s *Screen[R]) Resource() model.Resource[R] { return s.res }

// Snapshot returns a consistent copy of the view state.
func (s *Screen[R]) Snapshot() Snapshot[R] {
	s.mu.Lock()
	params := s.params.Clone()
	s.mu.Unlock()

	view := s.orch.View()
	state, current := s.dialog.Snapshot()

	rows := view.Rows
	if view.Status == fetch.StatusSuccess {
		rows = s.table.Apply(rows)
	}
	return Snapshot[R]{
		Params:        params,
		Key:           view.Key,
		Status:        view.Status,
		Loading:       view.Status == fetch.StatusLoading,
		Err:           view.Err,
		Rows:          rows,
		Dropped:       view.Dropped,
		Revalidating:  view.Revalidating,
		Pagination:    view.Pagination,
		Controls:      pagination.Reconcile(view.Pagination),
		Dialog:        state,
		Current:       current,
		Table:         s.table.Snapshot(),
		SearchPending: s.search.Pending(),
	}
}

// Subscribe registers fn for every state change. fn runs outside the
// screen's locks and may call back into the screen.
func (s *Screen[R]) Subscribe(fn func(Snapshot[R])) (unsubscribe func()) {
	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	s.listeners[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		defer s.mu.Unlock()
		delete(s.listeners, id)
	}
}

// OnQueryChange merges patch into the params and loads the resulting key.
// A patch producing invalid params, such as an inverted date range, is
// refused and the params stay as they were.
func (s *Screen[R]) OnQueryChange(patch query.Patch) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrClosed
	}
	next := query.Update(s.params, patch)
	if err := next.Validate(s.res.Facets); err != nil {
		s.mu.Unlock()
		return err
	}
	s.params = next
	s.gen++
	gen := s.gen
	s.mu.Unlock()

	// A concurrent change may load between our update and our Load; the
	// loop ends with the orchestrator on the latest params.
	for {
		s.orch.Load(next)
		s.mu.Lock()
		if s.gen == gen {
			s.mu.Unlock()
			break
		}
		next, gen = s.params.Clone(), s.gen
		s.mu.Unlock()
	}
	s.publish()
	return nil
}

// Search feeds a keystroke to the debounced search box.
func (s *Screen[R]) Search(raw string) {
	s.search.Change(raw)
	s.publish()
}

func (s *Screen[R]) commitSearch(raw string) {
	term := debounce.SearchTerm(raw, s.res.SearchMinLen)
	if err := s.OnQueryChange(query.SearchFor(term)); err != nil {
		s.deps.Logger.Warnf(context.Background(), "screen.commitSearch %s: %v", s.res.Name, err)
	}
}

// Navigate follows a pagination control using the last server-reported info.
func (s *Screen[R]) Navigate(action pagination.Action) error {
	patch, err := pagination.Navigate(s.orch.View().Pagination, action)
	if err != nil {
		return err
	}
	return s.OnQueryChange(patch)
}

// SetPageSize changes the page size and returns to page 1.
func (s *Screen[R]) SetPageSize(size int) error {
	patch, err := pagination.ChangePageSize(size)
	if err != nil {
		return err
	}
	return s.OnQueryChange(patch)
}

// Retry re-issues the current request.
func (s *Screen[R]) Retry() {
	s.orch.Retry()
}

// OpenCreate opens the create dialog.
func (s *Screen[R]) OpenCreate() error {
	if !s.res.Allows(dialog.KindCreate) {
		return fmt.Errorf("%w: %s", ErrNotAllowed, dialog.KindCreate)
	}
	s.dialog.OpenCreate()
	s.publish()
	return nil
}

// OpenDialog opens the dialog of kind, bound to row when the kind needs one.
func (s *Screen[R]) OpenDialog(kind dialog.Kind, row *R) error {
	if !s.res.Allows(kind) {
		return fmt.Errorf("%w: %s", ErrNotAllowed, kind)
	}
	if err := s.dialog.Open(kind, row); err != nil {
		return err
	}
	s.publish()
	return nil
}

// CloseDialog closes the open dialog. The current row lingers for the
// clear delay.
func (s *Screen[R]) CloseDialog() {
	s.dialog.Close()
	s.publish()
}

// ToggleSort advances the sort of one column.
func (s *Screen[R]) ToggleSort(column string, multi bool) error {
	if err := s.table.ToggleSort(column, multi); err != nil {
		return err
	}
	s.publish()
	return nil
}

// SetColumnVisible shows or hides a column.
func (s *Screen[R]) SetColumnVisible(column string, visible bool) error {
	if err := s.table.SetVisible(column, visible); err != nil {
		return err
	}
	s.publish()
	return nil
}

// SelectRow toggles the selection of one row id.
func (s *Screen[R]) SelectRow(id string, on bool) {
	s.table.Select(id, on)
	s.publish()
}

// SelectPage selects every row of the current page.
func (s *Screen[R]) SelectPage() {
	s.table.SelectAll(s.orch.View().Rows)
	s.publish()
}

// ClearSelection unselects every row.
func (s *Screen[R]) ClearSelection() {
	s.table.ClearSelection()
	s.publish()
}

// Columns returns the visible columns.
func (s *Screen[R]) Columns() []table.Column[R] {
	return s.table.Columns()
}

// Close stops timers and drops the cache subscription. Pending search input
// is discarded.
func (s *Screen[R]) Close() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	clear(s.listeners)
	s.mu.Unlock()

	s.search.Close()
	s.dialog.Stop()
	s.orch.Close()
}

func (s *Screen[R]) onView() {
	view := s.orch.View()
	if view.Status == fetch.StatusSuccess {
		s.table.Prune(view.Rows)
	}
	s.publish()
}

func (s *Screen[R]) publish() {
	s.mu.Lock()
	if s.closed || len(s.listeners) == 0 {
		s.mu.Unlock()
		return
	}
	fns := make([]func(Snapshot[R]), 0, len(s.listeners))
	for _, fn := range s.listeners {
		fns = append(fns, fn)
	}
	s.mu.Unlock()

	snap := s.Snapshot()
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *Screen[R]) currentParams() query.Params {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.params.Clone()
}

func actionQuery(a model.Action, params query.Params, input Input) (url.Values, error) {
	q := url.Values{}
	if a.WithQuery {
		q = params.Values()
	}
	for _, name := range a.Params {
		v, ok := input[name]
		if !ok || v == "" {
			return nil, fmt.Errorf("%w: %s", ErrPayloadRequired, name)
		}
		q.Set(name, v)
	}
	return q, nil
}

func (s *Screen[R]) report(ctx context.Context, env remote.Envelope, fallback string, err error) {
	if err != nil {
		s.deps.Notifier.Notify(ctx, notify.Failure(err))
		return
	}
	msg := env.Message
	if msg == "" {
		msg = fallback
	}
	s.deps.Notifier.Notify(ctx, notify.Success(msg))
}
