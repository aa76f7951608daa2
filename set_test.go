package btreeslab

import (
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Set Tests

func TestSetBasicOps(t *testing.T) {
	t.Parallel()

	s := NewSet[string]()
	assert.True(t, s.IsEmpty())

	assert.True(t, s.Insert("b"))
	assert.True(t, s.Insert("a"))
	assert.False(t, s.Insert("a"))
	assert.Equal(t, 2, s.Len())

	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("c"))

	assert.True(t, s.Remove("a"))
	assert.False(t, s.Remove("a"))
	assert.Equal(t, 1, s.Len())

	s.Clear()
	assert.True(t, s.IsEmpty())
}

func TestSetOrdering(t *testing.T) {
	t.Parallel()

	s := NewSet[int](WithOrder(4))
	perm := rand.New(rand.NewSource(4)).Perm(300)
	for _, k := range perm {
		s.Insert(k)
	}

	keys := s.Keys()
	require.Len(t, keys, 300)
	assert.True(t, sort.IntsAreSorted(keys))

	first, ok := s.First()
	require.True(t, ok)
	assert.Equal(t, 0, first)
	last, ok := s.Last()
	require.True(t, ok)
	assert.Equal(t, 299, last)
}

func TestSetPop(t *testing.T) {
	t.Parallel()

	s := NewSet[int]()
	for _, k := range []int{3, 1, 2} {
		s.Insert(k)
	}

	k, ok := s.PopFirst()
	require.True(t, ok)
	assert.Equal(t, 1, k)
	k, ok = s.PopLast()
	require.True(t, ok)
	assert.Equal(t, 3, k)
	assert.Equal(t, 1, s.Len())
}

func TestSetRange(t *testing.T) {
	t.Parallel()

	s := NewSet[int](WithOrder(4))
	for _, k := range []int{1, 3, 5, 7, 9, 11} {
		s.Insert(k)
	}

	r := s.Range(Included(3), Excluded(9))
	var got []int
	for {
		k, ok := r.Next()
		if !ok {
			break
		}
		got = append(got, k)
	}
	assert.Equal(t, []int{3, 5, 7}, got)

	r = s.Range(Unbounded[int](), Unbounded[int]())
	k, ok := r.NextBack()
	require.True(t, ok)
	assert.Equal(t, 11, k)
}

func TestSetAscendDescend(t *testing.T) {
	t.Parallel()

	s := NewSetFunc[int](func(a, b int) int { return a - b })
	for i := 1; i <= 5; i++ {
		s.Insert(i)
	}

	var up, down []int
	s.Ascend(func(k int) bool {
		up = append(up, k)
		return true
	})
	s.Descend(func(k int) bool {
		down = append(down, k)
		return true
	})
	assert.Equal(t, []int{1, 2, 3, 4, 5}, up)
	assert.Equal(t, []int{5, 4, 3, 2, 1}, down)
}

func TestSetFixedCapacity(t *testing.T) {
	t.Parallel()

	s := NewSet[int](WithOrder(4), WithFixedCapacity(1))
	for i := 1; i <= 4; i++ {
		added, err := s.TryInsert(i)
		require.NoError(t, err)
		assert.True(t, added)
	}

	added, err := s.TryInsert(5)
	assert.ErrorIs(t, err, ErrArenaFull)
	assert.False(t, added)
	assert.Equal(t, 4, s.Len())

	// Duplicate keys never allocate, so they succeed even at capacity.
	added, err = s.TryInsert(4)
	require.NoError(t, err)
	assert.False(t, added)
}
