package btreeslab

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func rangeKeys(m *Map[int, int], start, end Bound[int]) []int {
	keys := []int{}
	r := m.Range(start, end)
	for {
		k, _, ok := r.Next()
		if !ok {
			return keys
		}
		keys = append(keys, k)
	}
}

func rangeKeysBack(m *Map[int, int], start, end Bound[int]) []int {
	keys := []int{}
	r := m.Range(start, end)
	for {
		k, _, ok := r.NextBack()
		if !ok {
			return keys
		}
		keys = append([]int{k}, keys...)
	}
}

// Range Query Tests

func TestRangeLiteral(t *testing.T) {
	t.Parallel()

	// Inserting {1,3,5,7,9,11} and querying [3,9) yields exactly 3,5,7.
	m := New[int, int](WithOrder(4))
	for _, k := range []int{1, 3, 5, 7, 9, 11} {
		m.Insert(k, k)
	}

	got := rangeKeys(m, Included(3), Excluded(9))
	assert.Equal(t, []int{3, 5, 7}, got)
}

func TestRangeBoundCombinations(t *testing.T) {
	t.Parallel()

	const size = 26
	m := New[int, int]()
	all := []int{}
	for i := 1; i <= size; i++ {
		m.Insert(i, i)
		all = append(all, i)
	}

	// Every bound combination that covers the whole key span yields
	// every key.
	full := [][2]Bound[int]{
		{Excluded(0), Excluded(size + 1)},
		{Excluded(0), Included(size + 1)},
		{Excluded(0), Included(size)},
		{Excluded(0), Unbounded[int]()},
		{Included(0), Excluded(size + 1)},
		{Included(0), Included(size)},
		{Included(1), Included(size)},
		{Included(1), Unbounded[int]()},
		{Unbounded[int](), Included(size)},
		{Unbounded[int](), Unbounded[int]()},
	}
	for _, bounds := range full {
		assert.Equal(t, all, rangeKeys(m, bounds[0], bounds[1]))
		assert.Equal(t, all, rangeKeysBack(m, bounds[0], bounds[1]))
	}

	assert.Equal(t, all[1:], rangeKeys(m, Excluded(1), Unbounded[int]()))
	assert.Equal(t, all[:size-1], rangeKeys(m, Unbounded[int](), Excluded(size)))
	assert.Equal(t, []int{10, 11, 12}, rangeKeys(m, Included(10), Included(12)))
	assert.Equal(t, []int{11}, rangeKeys(m, Excluded(10), Excluded(12)))
	assert.Equal(t, []int{10}, rangeKeys(m, Included(10), Included(10)))
	assert.Empty(t, rangeKeys(m, Included(10), Excluded(10)))
}

func TestRangeAbsentBounds(t *testing.T) {
	t.Parallel()

	// Bounds that miss every stored key resolve to the nearest gap.
	m := New[int, int](WithOrder(4))
	for _, k := range []int{10, 20, 30, 40, 50, 60, 70} {
		m.Insert(k, k)
	}

	assert.Equal(t, []int{20, 30, 40}, rangeKeys(m, Included(15), Excluded(45)))
	assert.Equal(t, []int{20, 30, 40}, rangeKeys(m, Excluded(15), Included(45)))
	assert.Equal(t, []int{50, 60, 70}, rangeKeys(m, Included(45), Unbounded[int]()))
	assert.Empty(t, rangeKeys(m, Included(71), Unbounded[int]()))
	assert.Empty(t, rangeKeys(m, Included(100), Included(200)))
	assert.Equal(t, []int{10}, rangeKeys(m, Unbounded[int](), Excluded(15)))
}

func TestRangeEmptyMap(t *testing.T) {
	t.Parallel()

	m := New[int, int]()
	assert.Empty(t, rangeKeys(m, Unbounded[int](), Unbounded[int]()))
	assert.Empty(t, rangeKeys(m, Included(1), Included(10)))
	assert.Empty(t, rangeKeysBack(m, Unbounded[int](), Unbounded[int]()))
}

func TestRangeInvalid(t *testing.T) {
	t.Parallel()

	m := New[int, int]()
	m.Insert(1, 1)

	assert.PanicsWithValue(t, ErrInvalidRange, func() {
		m.Range(Included(10), Included(5))
	})
	assert.PanicsWithValue(t, ErrInvalidRange, func() {
		m.Range(Excluded(5), Excluded(5))
	})
}

func TestRangeDoubleEnded(t *testing.T) {
	t.Parallel()

	// Consuming a range from both ends meets in the middle without
	// overlap.
	m := New[int, int](WithOrder(4))
	for i := 1; i <= 10; i++ {
		m.Insert(i, i)
	}

	r := m.Iter()
	var front, back []int
	for {
		k, _, ok := r.Next()
		if !ok {
			break
		}
		front = append(front, k)
		if k2, _, ok := r.NextBack(); ok {
			back = append([]int{k2}, back...)
		}
	}
	assert.Equal(t, []int{1, 2, 3, 4, 5}, front)
	assert.Equal(t, []int{6, 7, 8, 9, 10}, back)
}

func TestAscendDescend(t *testing.T) {
	t.Parallel()

	m := New[int, int](WithOrder(4))
	for i := 1; i <= 100; i++ {
		m.Insert(i, i)
	}

	var up []int
	m.Ascend(func(k, v int) bool {
		up = append(up, k)
		return true
	})
	require.Len(t, up, 100)
	assert.Equal(t, 1, up[0])
	assert.Equal(t, 100, up[99])

	var down []int
	m.Descend(func(k, v int) bool {
		down = append(down, k)
		return len(down) < 10
	})
	assert.Equal(t, []int{100, 99, 98, 97, 96, 95, 94, 93, 92, 91}, down)
}
