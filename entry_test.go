package btreeslab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Entry API Tests

func TestEntryOrInsert(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	// Vacant: the default goes in.
	got := m.Entry("a").OrInsert(1)
	assert.Equal(t, 1, got)
	val, _ := m.Get("a")
	assert.Equal(t, 1, val)

	// Occupied: the existing value wins.
	got = m.Entry("a").OrInsert(99)
	assert.Equal(t, 1, got)
	assert.Equal(t, 1, m.Len())
}

func TestEntryOrInsertWith(t *testing.T) {
	t.Parallel()

	m := New[string, []int]()
	calls := 0
	build := func() []int {
		calls++
		return []int{}
	}

	m.Entry("bucket").OrInsertWith(build)
	m.Entry("bucket").OrInsertWith(build)
	assert.Equal(t, 1, calls)
}

func TestEntryAndModify(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	// Absent: AndModify is a no-op and OrInsert fills the slot.
	got := m.Entry("counter").AndModify(func(v *int) { *v++ }).OrInsert(0)
	assert.Equal(t, 0, got)

	// Present: the increment applies without a second descent.
	got = m.Entry("counter").AndModify(func(v *int) { *v++ }).OrInsert(0)
	assert.Equal(t, 1, got)

	val, _ := m.Get("counter")
	assert.Equal(t, 1, val)
}

func TestEntrySetAndRemove(t *testing.T) {
	t.Parallel()

	m := New[string, int]()

	e := m.Entry("k")
	assert.False(t, e.Found())
	assert.Equal(t, "k", e.Key())
	_, ok := e.Get()
	assert.False(t, ok)

	_, replaced := e.Set(5)
	assert.False(t, replaced)
	assert.True(t, e.Found())
	val, ok := e.Get()
	assert.True(t, ok)
	assert.Equal(t, 5, val)

	// Set on the now-occupied entry overwrites in place.
	prev, replaced := e.Set(6)
	assert.True(t, replaced)
	assert.Equal(t, 5, prev)
	val, _ = m.Get("k")
	assert.Equal(t, 6, val)

	removed, ok := e.Remove()
	assert.True(t, ok)
	assert.Equal(t, 6, removed)
	assert.False(t, e.Found())
	assert.False(t, m.Contains("k"))

	_, ok = e.Remove()
	assert.False(t, ok)
}

func TestEntrySurvivesRebalancing(t *testing.T) {
	t.Parallel()

	// An entry insertion that splits nodes still reports the right
	// value afterwards: the address is fixed up through the splits.
	m := New[int, int](WithOrder(4))
	for i := 1; i <= 4; i++ {
		m.Insert(i*10, i)
	}

	e := m.Entry(25)
	got := e.OrInsert(100)
	assert.Equal(t, 100, got)
	require.NoError(t, m.t.validate())

	val, ok := e.Get()
	require.True(t, ok)
	assert.Equal(t, 100, val)

	e.AndModify(func(v *int) { *v = 200 })
	val, _ = m.Get(25)
	assert.Equal(t, 200, val)
}

func TestEntryFixedCapacity(t *testing.T) {
	t.Parallel()

	m := New[int, int](WithOrder(4), WithFixedCapacity(1))
	for i := 1; i <= 4; i++ {
		m.Insert(i, i)
	}

	assert.PanicsWithValue(t, ErrArenaFull, func() {
		m.Entry(5).OrInsert(5)
	})
	assert.Equal(t, 4, m.Len())
	require.NoError(t, m.t.validate())
}
