package dialog_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-datagrid/internal/dialog"
	"admin-datagrid/pkg/schedule"
)

type row struct {
	ID   string
	Name string
}

func newMachine(opts ...dialog.Option) (*dialog.Machine[row], *schedule.Manual) {
	clock := schedule.NewManual()
	return dialog.New[row](clock, 500*time.Millisecond, opts...), clock
}

func TestMachine(t *testing.T) {
	a := row{ID: "a", Name: "Lathe"}
	b := row{ID: "b", Name: "Press"}

	t.Run("Starts Idle", func(t *testing.T) {
		m, _ := newMachine()
		assert.Equal(t, dialog.Idle{}, m.State())
		assert.Nil(t, m.Current())
	})

	t.Run("Open Update Binds Row", func(t *testing.T) {
		m, _ := newMachine()
		require.NoError(t, m.Open(dialog.KindUpdate, &a))

		state, current := m.Snapshot()
		assert.Equal(t, dialog.Editing[row]{Row: a}, state)
		require.NotNil(t, current)
		assert.Equal(t, a, *current)
	})

	t.Run("Close Keeps Row Until Delay", func(t *testing.T) {
		m, clock := newMachine()
		require.NoError(t, m.Open(dialog.KindUpdate, &a))

		m.Close()
		assert.Equal(t, dialog.KindNone, m.State().Kind())
		require.NotNil(t, m.Current())
		assert.Equal(t, "a", m.Current().ID)

		clock.Advance(499 * time.Millisecond)
		assert.NotNil(t, m.Current())

		clock.Advance(time.Millisecond)
		assert.Nil(t, m.Current())
	})

	t.Run("New Selection Preempts Pending Clear", func(t *testing.T) {
		m, clock := newMachine()
		require.NoError(t, m.Open(dialog.KindUpdate, &a))
		m.Close()

		clock.Advance(200 * time.Millisecond)
		require.NoError(t, m.Open(dialog.KindUpdate, &b))
		clock.Advance(time.Second)

		require.NotNil(t, m.Current())
		assert.Equal(t, "b", m.Current().ID)
		assert.Equal(t, dialog.Editing[row]{Row: b}, m.State())
	})

	t.Run("Second Close Restarts Delay For Latest Row", func(t *testing.T) {
		m, clock := newMachine()
		require.NoError(t, m.Open(dialog.KindDelete, &a))
		m.Close()
		clock.Advance(300 * time.Millisecond)
		require.NoError(t, m.Open(dialog.KindUpdate, &b))
		m.Close()

		clock.Advance(300 * time.Millisecond)
		require.NotNil(t, m.Current())
		assert.Equal(t, "b", m.Current().ID)

		clock.Advance(200 * time.Millisecond)
		assert.Nil(t, m.Current())
	})

	t.Run("Create Has No Row", func(t *testing.T) {
		m, clock := newMachine()
		require.NoError(t, m.Open(dialog.KindUpdate, &a))
		m.Close()
		m.OpenCreate()

		state, current := m.Snapshot()
		assert.Equal(t, dialog.Creating{}, state)
		assert.Nil(t, current)

		clock.Advance(time.Second)
		assert.Equal(t, dialog.Creating{}, m.State())
	})

	t.Run("Row Kinds Require Row", func(t *testing.T) {
		m, _ := newMachine()
		assert.ErrorIs(t, m.Open(dialog.KindUpdate, nil), dialog.ErrRowRequired)
		assert.ErrorIs(t, m.Open(dialog.KindDelete, nil), dialog.ErrRowRequired)
		assert.ErrorIs(t, m.Open(dialog.KindView, nil), dialog.ErrRowRequired)
		assert.ErrorIs(t, m.Open(dialog.KindNone, &a), dialog.ErrInvalidKind)
		assert.Equal(t, dialog.Idle{}, m.State())
	})

	t.Run("Custom Kinds", func(t *testing.T) {
		m, _ := newMachine(dialog.WithRowlessKinds("export"))
		require.NoError(t, m.Open("export", nil))
		assert.Equal(t, dialog.Prompting{Action: "export"}, m.State())

		require.NoError(t, m.Open(dialog.KindView, &a))
		assert.Equal(t, dialog.Acting[row]{Action: dialog.KindView, Row: a}, m.State())
	})

	t.Run("Current Is A Copy", func(t *testing.T) {
		m, _ := newMachine()
		require.NoError(t, m.Open(dialog.KindUpdate, &a))
		c := m.Current()
		c.Name = "changed"
		assert.Equal(t, "Lathe", m.Current().Name)
	})

	t.Run("OnChange After Clear", func(t *testing.T) {
		changes := 0
		m, clock := newMachine(dialog.WithOnChange(func() { changes++ }))
		require.NoError(t, m.Open(dialog.KindUpdate, &a))
		m.Close()
		m.Close()
		clock.Advance(time.Second)
		assert.Equal(t, 1, changes)
	})

	t.Run("CloseSession Ignores Newer Dialog", func(t *testing.T) {
		m, clock := newMachine()
		require.NoError(t, m.Open(dialog.KindDelete, &a))
		_, _, version := m.Session()

		require.NoError(t, m.Open(dialog.KindUpdate, &b))
		assert.False(t, m.CloseSession(version))
		assert.Equal(t, dialog.Editing[row]{Row: b}, m.State())

		_, _, version = m.Session()
		assert.True(t, m.CloseSession(version))
		clock.Advance(time.Second)
		assert.Nil(t, m.Current())
	})
}
