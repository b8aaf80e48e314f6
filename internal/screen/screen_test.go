package screen_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-datagrid/internal/cache"
	"admin-datagrid/internal/dialog"
	"admin-datagrid/internal/fetch"
	"admin-datagrid/internal/model"
	"admin-datagrid/internal/mutation"
	"admin-datagrid/internal/notify"
	"admin-datagrid/internal/pagination"
	"admin-datagrid/internal/query"
	"admin-datagrid/internal/remote"
	"admin-datagrid/internal/screen"
	"admin-datagrid/pkg/log"
	"admin-datagrid/pkg/schedule"
)

var created = time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)

type call struct {
	Method string
	Path   string
	Query  url.Values
	Body   any
}

// fakeAPI serves five pages of products and records every request.
type fakeAPI struct {
	mu      sync.Mutex
	lists   []string
	calls   []call
	listErr error
	fail    error
	panics  bool
}

func (f *fakeAPI) List(ctx context.Context, route, rawQuery string) ([]byte, error) {
	f.mu.Lock()
	f.lists = append(f.lists, rawQuery)
	err := f.listErr
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	q, _ := url.ParseQuery(rawQuery)
	page, _ := strconv.Atoi(q.Get("page"))
	info := pagination.Info{CurrentPage: page, TotalPages: 5, TotalCount: 50, HasPrev: page > 1, HasNext: page < 5}
	items := []model.Product{
		product("p"+strconv.Itoa(page)+"-a", "Lathe"),
		product("p"+strconv.Itoa(page)+"-b", "Drill"),
	}
	return json.Marshal(map[string]any{"success": true, "products": items, "pagination": info})
}

func (f *fakeAPI) record(c call) (remote.Envelope, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, c)
	if f.panics {
		panic("unexpected nil")
	}
	if f.fail != nil {
		return remote.Envelope{}, f.fail
	}
	return remote.Envelope{Success: true, Message: "done: " + c.Method, Raw: []byte("id,name\n")}, nil
}

func (f *fakeAPI) Create(ctx context.Context, route string, body any) (remote.Envelope, error) {
	return f.record(call{Method: http.MethodPost, Path: route, Body: body})
}

func (f *fakeAPI) Update(ctx context.Context, route, id string, body any) (remote.Envelope, error) {
	return f.record(call{Method: http.MethodPut, Path: route + "/" + id, Body: body})
}

func (f *fakeAPI) Delete(ctx context.Context, route, id string) (remote.Envelope, error) {
	return f.record(call{Method: http.MethodDelete, Path: route + "/" + id})
}

func (f *fakeAPI) Do(ctx context.Context, method, path string, q url.Values, body any) (remote.Envelope, error) {
	return f.record(call{Method: method, Path: path, Query: q, Body: body})
}

func (f *fakeAPI) listCount(rawQuery string) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for _, q := range f.lists {
		if q == rawQuery {
			n++
		}
	}
	return n
}

func (f *fakeAPI) lastCall() call {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.calls) == 0 {
		return call{}
	}
	return f.calls[len(f.calls)-1]
}

func product(id, name string) model.Product {
	return model.Product{
		ID: id, Name: name, SKU: "SKU-" + id, Category: "tools",
		Price: 10, Stock: 1, Status: model.ProductActive, CreatedAt: created,
	}
}

type harness struct {
	api   *fakeAPI
	cache *cache.Cache
	clock *schedule.Manual
	feed  *notify.Feed
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	h := &harness{
		api:   &fakeAPI{},
		cache: cache.New(cache.NewMemoryStore(64, 0), log.NewNop(), cache.Config{}),
		clock: schedule.NewManual(),
		feed:  notify.NewFeed(16),
	}
	t.Cleanup(h.cache.Close)
	return h
}

func (h *harness) deps() screen.Deps {
	return screen.Deps{
		Cache:       h.cache,
		Coordinator: mutation.New(h.cache, log.NewNop()),
		API:         h.api,
		Scheduler:   h.clock,
		Logger:      log.NewNop(),
		Notifier:    h.feed,
	}
}

func (h *harness) notice(t *testing.T) notify.Notice {
	t.Helper()
	select {
	case n := <-h.feed.C():
		return n
	default:
		t.Fatal("no notice")
		return notify.Notice{}
	}
}

func newProducts(t *testing.T) (*screen.Screen[model.Product], *harness) {
	t.Helper()
	h := newHarness(t)
	s, err := screen.New(model.Products(), h.deps(), screen.Config{})
	require.NoError(t, err)
	t.Cleanup(s.Close)
	h.cache.Wait()
	return s, h
}

func TestLoad(t *testing.T) {
	s, h := newProducts(t)

	snap := s.Snapshot()
	assert.Equal(t, fetch.StatusSuccess, snap.Status)
	assert.False(t, snap.Loading)
	assert.Len(t, snap.Rows, 2)
	assert.Equal(t, "limit=50&page=1", snap.Params.Encode())
	assert.Equal(t, cache.NewKey("/products", "limit=50&page=1"), snap.Key)
	assert.True(t, snap.Controls.First.Disabled)
	assert.False(t, snap.Controls.Next.Disabled)
	assert.Equal(t, 1, h.api.listCount("limit=50&page=1"))
}

func TestClearingSearch(t *testing.T) {
	s, h := newProducts(t)

	require.NoError(t, s.SetPageSize(20))
	h.cache.Wait()
	s.Search("lathe")
	h.clock.Advance(500 * time.Millisecond)
	h.cache.Wait()
	require.NoError(t, s.Navigate(pagination.Next))
	h.cache.Wait()

	before := s.Snapshot()
	require.Equal(t, "limit=20&page=2&search=lathe", before.Params.Encode())

	s.Search("")
	h.clock.Advance(500 * time.Millisecond)
	h.cache.Wait()

	after := s.Snapshot()
	assert.Equal(t, "limit=20&page=1", after.Params.Encode())
	assert.Nil(t, after.Params.Search)
	assert.NotEqual(t, before.Key, after.Key)
	assert.Equal(t, 1, h.api.listCount("limit=20&page=1"))
	assert.Equal(t, "p1-a", after.Rows[0].ID)
}

func TestSearchDebounce(t *testing.T) {
	s, h := newProducts(t)

	for _, v := range []string{"l", "la", "lat", "lath"} {
		s.Search(v)
		h.clock.Advance(100 * time.Millisecond)
	}
	assert.True(t, s.Snapshot().SearchPending)
	h.clock.Advance(500 * time.Millisecond)
	h.cache.Wait()

	assert.False(t, s.Snapshot().SearchPending)
	assert.Equal(t, 1, h.api.listCount("limit=50&page=1&search=lath"))
	assert.Zero(t, h.api.listCount("limit=50&page=1&search=lat"))
}

func TestAuditLogSearchMinLength(t *testing.T) {
	h := newHarness(t)
	s, err := screen.New(model.AuditLogs(), h.deps(), screen.Config{})
	require.NoError(t, err)
	defer s.Close()

	s.Search("a")
	h.clock.Advance(time.Second)
	assert.Nil(t, s.Snapshot().Params.Search)

	s.Search("ad")
	h.clock.Advance(time.Second)
	require.NotNil(t, s.Snapshot().Params.Search)
	assert.Equal(t, "ad", *s.Snapshot().Params.Search)
}

func TestQueryRules(t *testing.T) {
	t.Run("Navigate Previous", func(t *testing.T) {
		s, h := newProducts(t)
		require.NoError(t, s.OnQueryChange(query.PageTo(3)))
		h.cache.Wait()

		require.NoError(t, s.Navigate(pagination.Previous))
		assert.Equal(t, 2, s.Snapshot().Params.Page)
	})

	t.Run("Disabled Control", func(t *testing.T) {
		s, _ := newProducts(t)
		assert.ErrorIs(t, s.Navigate(pagination.First), pagination.ErrActionDisabled)
	})

	t.Run("Page Size Outside Options", func(t *testing.T) {
		s, _ := newProducts(t)
		assert.ErrorIs(t, s.SetPageSize(25), pagination.ErrPageSizeNotAllowed)
	})

	t.Run("Inverted Date Range Refused", func(t *testing.T) {
		s, _ := newProducts(t)
		require.NoError(t, s.OnQueryChange(query.Patch{EndDate: query.Set(query.NewDate(2024, 1, 10))}))
		before := s.Snapshot().Params

		err := s.OnQueryChange(query.Patch{StartDate: query.Set(query.NewDate(2024, 2, 1))})
		assert.ErrorIs(t, err, query.ErrDateRange)
		assert.Equal(t, before.Encode(), s.Snapshot().Params.Encode())
	})

	t.Run("Unknown Facet Refused", func(t *testing.T) {
		s, _ := newProducts(t)
		assert.ErrorIs(t, s.OnQueryChange(query.FacetTo("action", "login")), query.ErrUnknownFacet)
		require.NoError(t, s.OnQueryChange(query.FacetTo("status", "active")))
		assert.Equal(t, "limit=50&page=1&status=active", s.Snapshot().Params.Encode())
	})
}

func TestDelete(t *testing.T) {
	t.Run("Success Invalidates And Closes", func(t *testing.T) {
		s, h := newProducts(t)
		row := s.Snapshot().Rows[0]

		require.NoError(t, s.OpenDialog(dialog.KindDelete, &row))
		require.NoError(t, s.Submit(context.Background(), dialog.KindDelete, nil))
		h.cache.Wait()

		snap := s.Snapshot()
		assert.Equal(t, dialog.Idle{}, snap.Dialog)
		require.NotNil(t, snap.Current)
		assert.Equal(t, row.ID, snap.Current.ID)
		assert.Equal(t, call{Method: http.MethodDelete, Path: "/products/" + row.ID}, h.api.lastCall())
		assert.Equal(t, 2, h.api.listCount("limit=50&page=1"))
		assert.Equal(t, notify.LevelSuccess, h.notice(t).Level)

		h.clock.Advance(500 * time.Millisecond)
		assert.Nil(t, s.Snapshot().Current)
	})

	t.Run("Failure Closes Without Invalidation", func(t *testing.T) {
		s, h := newProducts(t)
		rows := s.Snapshot().Rows
		h.api.fail = &remote.APIError{StatusCode: http.StatusConflict, Message: "Product is referenced by orders"}

		require.NoError(t, s.OpenDialog(dialog.KindDelete, &rows[0]))
		err := s.Submit(context.Background(), dialog.KindDelete, nil)
		h.cache.Wait()

		var apiErr *remote.APIError
		assert.ErrorAs(t, err, &apiErr)
		assert.Equal(t, dialog.Idle{}, s.Snapshot().Dialog)
		assert.Equal(t, 1, h.api.listCount("limit=50&page=1"))
		assert.Equal(t, rows, s.Snapshot().Rows)

		n := h.notice(t)
		assert.Equal(t, notify.LevelError, n.Level)
		assert.Equal(t, "Product is referenced by orders", n.Message)
	})
}

func TestCreateUpdate(t *testing.T) {
	payload := map[string]any{"name": "Press"}

	t.Run("Create Success Closes", func(t *testing.T) {
		s, h := newProducts(t)
		require.NoError(t, s.OpenCreate())
		require.NoError(t, s.Submit(context.Background(), dialog.KindCreate, payload))
		h.cache.Wait()

		assert.Equal(t, dialog.Idle{}, s.Snapshot().Dialog)
		assert.Equal(t, call{Method: http.MethodPost, Path: "/products", Body: payload}, h.api.lastCall())
		assert.Equal(t, "done: POST", h.notice(t).Message)
		assert.Equal(t, 2, h.api.listCount("limit=50&page=1"))
	})

	t.Run("Update Failure Stays Open", func(t *testing.T) {
		s, h := newProducts(t)
		row := s.Snapshot().Rows[1]
		h.api.fail = errors.New("connection reset by peer")

		require.NoError(t, s.OpenDialog(dialog.KindUpdate, &row))
		err := s.Submit(context.Background(), dialog.KindUpdate, payload)
		require.Error(t, err)

		assert.Equal(t, dialog.Editing[model.Product]{Row: row}, s.Snapshot().Dialog)
		assert.Equal(t, notify.GenericMessage, h.notice(t).Message)
	})

	t.Run("Payload Required", func(t *testing.T) {
		s, _ := newProducts(t)
		require.NoError(t, s.OpenCreate())
		assert.ErrorIs(t, s.Submit(context.Background(), dialog.KindCreate, nil), screen.ErrPayloadRequired)
	})

	t.Run("Kind Mismatch", func(t *testing.T) {
		s, _ := newProducts(t)
		require.NoError(t, s.OpenCreate())
		assert.ErrorIs(t, s.Submit(context.Background(), dialog.KindDelete, nil), screen.ErrDialogMismatch)
		assert.ErrorIs(t, s.Submit(context.Background(), dialog.KindNone, nil), screen.ErrDialogMismatch)
	})

	t.Run("Panic Recovered", func(t *testing.T) {
		s, h := newProducts(t)
		h.api.panics = true
		require.NoError(t, s.OpenCreate())

		err := s.Submit(context.Background(), dialog.KindCreate, payload)
		assert.ErrorIs(t, err, mutation.ErrPanic)
		assert.Equal(t, dialog.Creating{}, s.Snapshot().Dialog)
		assert.Equal(t, notify.GenericMessage, h.notice(t).Message)
	})
}

func TestSideActions(t *testing.T) {
	t.Run("Toggle Status Confirmation", func(t *testing.T) {
		s, h := newProducts(t)
		row := s.Snapshot().Rows[0]

		require.NoError(t, s.OpenDialog(model.KindToggleStatus, &row))
		require.NoError(t, s.Submit(context.Background(), model.KindToggleStatus, nil))
		h.cache.Wait()

		assert.Equal(t, http.MethodPatch, h.api.lastCall().Method)
		assert.Equal(t, "/products/"+row.ID+"/toggle-status", h.api.lastCall().Path)
		assert.Equal(t, dialog.Idle{}, s.Snapshot().Dialog)
		assert.Equal(t, 2, h.api.listCount("limit=50&page=1"))
	})

	t.Run("Delete Image Direct", func(t *testing.T) {
		s, h := newProducts(t)
		row := s.Snapshot().Rows[0]

		_, err := s.Act(context.Background(), model.KindDeleteImage, nil, nil)
		assert.ErrorIs(t, err, dialog.ErrRowRequired)

		_, err = s.Act(context.Background(), model.KindDeleteImage, &row, nil)
		require.NoError(t, err)
		assert.Equal(t, "/products/"+row.ID+"/image", h.api.lastCall().Path)
	})

	t.Run("Audit Log Cleanup And Export", func(t *testing.T) {
		h := newHarness(t)
		s, err := screen.New(model.AuditLogs(), h.deps(), screen.Config{})
		require.NoError(t, err)
		defer s.Close()
		h.cache.Wait()

		assert.ErrorIs(t, s.OpenCreate(), screen.ErrNotAllowed)

		require.NoError(t, s.OpenDialog(model.KindCleanup, nil))
		assert.ErrorIs(t, s.Submit(context.Background(), model.KindCleanup, nil), screen.ErrPayloadRequired)
		require.NoError(t, s.Submit(context.Background(), model.KindCleanup, screen.Input{"olderThan": "30"}))
		assert.Equal(t, call{
			Method: http.MethodDelete,
			Path:   "/audit-logs/cleanup",
			Query:  url.Values{"olderThan": {"30"}},
		}, h.api.lastCall())
		assert.Equal(t, dialog.Idle{}, s.Snapshot().Dialog)

		require.NoError(t, s.OnQueryChange(query.FacetTo("action", "login")))
		body, err := s.Act(context.Background(), model.KindExport, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, "id,name\n", string(body))
		assert.Equal(t, "login", h.api.lastCall().Query.Get("action"))
		assert.Equal(t, "/audit-logs/export", h.api.lastCall().Path)
	})
}

func TestDialogRace(t *testing.T) {
	s, h := newProducts(t)
	rows := s.Snapshot().Rows

	require.NoError(t, s.OpenDialog(dialog.KindUpdate, &rows[0]))
	s.CloseDialog()
	h.clock.Advance(200 * time.Millisecond)
	require.NoError(t, s.OpenDialog(dialog.KindUpdate, &rows[1]))
	h.clock.Advance(time.Second)

	require.NotNil(t, s.Snapshot().Current)
	assert.Equal(t, rows[1].ID, s.Snapshot().Current.ID)
}

func TestRetryAndSubscribe(t *testing.T) {
	h := newHarness(t)
	h.api.listErr = errors.New("gateway timeout")
	s, err := screen.New(model.Products(), h.deps(), screen.Config{})
	require.NoError(t, err)
	defer s.Close()
	h.cache.Wait()

	snap := s.Snapshot()
	assert.Equal(t, fetch.StatusError, snap.Status)
	assert.Empty(t, snap.Rows)

	var mu sync.Mutex
	var seen []fetch.Status
	unsub := s.Subscribe(func(snap screen.Snapshot[model.Product]) {
		mu.Lock()
		defer mu.Unlock()
		seen = append(seen, snap.Status)
	})
	defer unsub()

	h.api.mu.Lock()
	h.api.listErr = nil
	h.api.mu.Unlock()
	s.Retry()
	h.cache.Wait()

	assert.Equal(t, fetch.StatusSuccess, s.Snapshot().Status)
	assert.Equal(t, "limit=50&page=1", s.Snapshot().Params.Encode())
	mu.Lock()
	defer mu.Unlock()
	require.NotEmpty(t, seen)
	assert.Equal(t, fetch.StatusLoading, seen[0])
	assert.Equal(t, fetch.StatusSuccess, seen[len(seen)-1])
}

func TestTableState(t *testing.T) {
	s, h := newProducts(t)

	require.NoError(t, s.ToggleSort("name", false))
	assert.Equal(t, "Drill", s.Snapshot().Rows[0].Name)

	s.SelectPage()
	assert.Len(t, s.Snapshot().Table.Selected, 2)

	require.NoError(t, s.OnQueryChange(query.PageTo(2)))
	h.cache.Wait()
	assert.Empty(t, s.Snapshot().Table.Selected)

	require.NoError(t, s.SetColumnVisible("sku", false))
	assert.Len(t, s.Columns(), 5)
}

func TestMissingDeps(t *testing.T) {
	_, err := screen.New(model.Products(), screen.Deps{}, screen.Config{})
	assert.ErrorIs(t, err, screen.ErrMissingDeps)
}
