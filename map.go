package btreeslab

import (
	"cmp"
)

// Map is an ordered map from K to V. Keys are unique and iterated in
// strictly increasing order.
//
// A Map is not safe for concurrent use: any number of readers may be
// active at once, but a mutation must not overlap any other access.
type Map[K, V any] struct {
	t *tree[K, V]
}

// New returns an empty map ordered by the natural ordering of K.
func New[K cmp.Ordered, V any](opts ...Option) *Map[K, V] {
	return NewFunc[K, V](cmp.Compare[K], opts...)
}

// NewFunc returns an empty map ordered by compare, which must return a
// negative number when a < b, zero when a == b and a positive number
// when a > b.
func NewFunc[K, V any](compare func(a, b K) int, opts ...Option) *Map[K, V] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	return &Map[K, V]{t: newTree[K, V](compare, o)}
}

// Len returns the number of entries.
func (m *Map[K, V]) Len() int {
	return m.t.len()
}

// IsEmpty reports whether the map holds no entries.
func (m *Map[K, V]) IsEmpty() bool {
	return m.t.len() == 0
}

// Clear removes every entry and frees every node.
func (m *Map[K, V]) Clear() {
	m.t.clear()
}

// Get returns the value stored under key.
func (m *Map[K, V]) Get(key K) (V, bool) {
	addr, found := m.t.addressOf(key)
	if !found {
		var zero V
		return zero, false
	}
	return m.t.item(addr).value, true
}

// Contains reports whether key is present.
func (m *Map[K, V]) Contains(key K) bool {
	_, found := m.t.addressOf(key)
	return found
}

// Insert stores value under key, returning the previous value if the key
// was already present. On a map backed by a fixed-capacity arena, Insert
// panics with ErrArenaFull when the arena cannot grow; use TryInsert to
// handle that case.
func (m *Map[K, V]) Insert(key K, value V) (V, bool) {
	prev, replaced, err := m.TryInsert(key, value)
	if err != nil {
		panic(err)
	}
	return prev, replaced
}

// TryInsert stores value under key. It fails with ErrArenaFull when a
// fixed-capacity arena cannot absorb the insertion; the tree is left
// exactly as it was, no partial split is committed.
func (m *Map[K, V]) TryInsert(key K, value V) (V, bool, error) {
	var zero V
	addr, found := m.t.addressOf(key)
	if found {
		return m.t.replaceValueAt(addr, value), true, nil
	}
	if err := m.t.checkRoom(addr); err != nil {
		return zero, false, err
	}
	m.t.insertExactlyAt(addr, item[K, V]{key: key, value: value}, -1)
	return zero, false, nil
}

// Remove deletes key, returning the value it held.
func (m *Map[K, V]) Remove(key K) (V, bool) {
	addr, found := m.t.addressOf(key)
	if !found {
		var zero V
		return zero, false
	}
	it, _, _ := m.t.removeAt(addr)
	return it.value, true
}

// Update rewrites the entry under key in one descent. fn receives the
// current value (or the zero value when absent) and reports the new
// value and whether the entry should exist afterwards: returning false
// removes the entry, or leaves the map unchanged if the key was absent.
func (m *Map[K, V]) Update(key K, fn func(value V, found bool) (V, bool)) {
	addr, found := m.t.addressOf(key)
	if found {
		it := m.t.item(addr)
		value, keep := fn(it.value, true)
		if keep {
			it.value = value
		} else {
			m.t.removeAt(addr)
		}
		return
	}
	var zero V
	value, insert := fn(zero, false)
	if !insert {
		return
	}
	if err := m.t.checkRoom(addr); err != nil {
		panic(err)
	}
	m.t.insertExactlyAt(addr, item[K, V]{key: key, value: value}, -1)
}

// First returns the smallest entry.
func (m *Map[K, V]) First() (K, V, bool) {
	return m.entryAt(m.t.firstItemAddress())
}

// Last returns the greatest entry.
func (m *Map[K, V]) Last() (K, V, bool) {
	return m.entryAt(m.t.lastItemAddress())
}

// PopFirst removes and returns the smallest entry.
func (m *Map[K, V]) PopFirst() (K, V, bool) {
	return m.popAt(m.t.firstItemAddress())
}

// PopLast removes and returns the greatest entry.
func (m *Map[K, V]) PopLast() (K, V, bool) {
	return m.popAt(m.t.lastItemAddress())
}

func (m *Map[K, V]) entryAt(addr address) (K, V, bool) {
	it := m.t.item(addr)
	if it == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	return it.key, it.value, true
}

func (m *Map[K, V]) popAt(addr address) (K, V, bool) {
	if m.t.item(addr) == nil {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	it, _, _ := m.t.removeAt(addr)
	return it.key, it.value, true
}

// Keys returns every key in increasing order.
func (m *Map[K, V]) Keys() []K {
	keys := make([]K, 0, m.Len())
	m.Ascend(func(key K, _ V) bool {
		keys = append(keys, key)
		return true
	})
	return keys
}

// Values returns every value in increasing key order.
func (m *Map[K, V]) Values() []V {
	values := make([]V, 0, m.Len())
	m.Ascend(func(_ K, value V) bool {
		values = append(values, value)
		return true
	})
	return values
}

// Stats describes the node storage backing a map.
type Stats struct {
	Live   int // occupied arena slots
	Leaves int // slots holding leaf nodes
	Height int // levels from root to leaf, 0 when empty
}

// Stats reports how the arena is being used.
func (m *Map[K, V]) Stats() Stats {
	st := Stats{Live: m.t.nodes.live()}
	m.t.nodes.walk(func(_ int, n *node[K, V]) {
		if n.leaf {
			st.Leaves++
		}
	})
	for id := m.t.root; id >= 0; {
		st.Height++
		n := m.t.nodes.at(id)
		if n.leaf {
			break
		}
		id = n.children[0]
	}
	return st
}
