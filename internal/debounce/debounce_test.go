package debounce_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"admin-datagrid/internal/debounce"
	"admin-datagrid/pkg/schedule"
)

func TestDebouncer(t *testing.T) {
	t.Run("Burst Commits Once With Last Value", func(t *testing.T) {
		clock := schedule.NewManual()
		var commits []string
		d := debounce.New(clock, 500*time.Millisecond, func(v string) { commits = append(commits, v) })

		for _, v := range []string{"l", "la", "lat", "lath"} {
			d.Change(v)
			clock.Advance(100 * time.Millisecond)
		}
		assert.Empty(t, commits)

		clock.Advance(time.Second)
		require.Len(t, commits, 1)
		assert.Equal(t, "lath", commits[0])
	})

	t.Run("Quiet Periods Commit Separately", func(t *testing.T) {
		clock := schedule.NewManual()
		var commits []string
		d := debounce.New(clock, 500*time.Millisecond, func(v string) { commits = append(commits, v) })

		d.Change("ab")
		clock.Advance(500 * time.Millisecond)
		d.Change("abc")
		clock.Advance(500 * time.Millisecond)

		assert.Equal(t, []string{"ab", "abc"}, commits)
	})

	t.Run("Close Discards Pending", func(t *testing.T) {
		clock := schedule.NewManual()
		committed := false
		d := debounce.New(clock, 500*time.Millisecond, func(string) { committed = true })

		d.Change("press")
		assert.True(t, d.Pending())
		d.Close()
		clock.Advance(time.Second)

		assert.False(t, committed)
		d.Change("again")
		clock.Advance(time.Second)
		assert.False(t, committed)
	})

	t.Run("Cancel Keeps Debouncer Usable", func(t *testing.T) {
		clock := schedule.NewManual()
		var commits []string
		d := debounce.New(clock, 100*time.Millisecond, func(v string) { commits = append(commits, v) })

		d.Change("one")
		d.Cancel()
		clock.Advance(time.Second)
		d.Change("two")
		clock.Advance(time.Second)

		assert.Equal(t, []string{"two"}, commits)
	})

	t.Run("Single Pending Timer", func(t *testing.T) {
		clock := schedule.NewManual()
		d := debounce.New(clock, 500*time.Millisecond, func(string) {})
		d.Change("a")
		d.Change("ab")
		d.Change("abc")
		assert.Equal(t, 1, clock.Pending())
	})
}

func TestSearchTerm(t *testing.T) {
	t.Run("Audit Log Minimum", func(t *testing.T) {
		assert.Nil(t, debounce.SearchTerm("", 2))
		assert.Nil(t, debounce.SearchTerm("a", 2))
		assert.Nil(t, debounce.SearchTerm("  é ", 2))
		if got := debounce.SearchTerm("ab", 2); assert.NotNil(t, got) {
			assert.Equal(t, "ab", *got)
		}
	})

	t.Run("Default Minimum Only Clears Empty", func(t *testing.T) {
		assert.Nil(t, debounce.SearchTerm("   ", 1))
		if got := debounce.SearchTerm(" x ", 1); assert.NotNil(t, got) {
			assert.Equal(t, " x ", *got)
		}
	})

	t.Run("Commits The Literal Value", func(t *testing.T) {
		if got := debounce.SearchTerm("  lathe ", 2); assert.NotNil(t, got) {
			assert.Equal(t, "  lathe ", *got)
		}
	})
}
