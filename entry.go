package btreeslab

// Entry is a view into a single key's slot, found or vacant, obtained
// with one descent and reused for every operation on it. An Entry holds
// an address into the tree: it is invalidated by any map mutation other
// than its own methods.
type Entry[K, V any] struct {
	t     *tree[K, V]
	key   K
	addr  address
	found bool
}

// Entry locates key once and returns a view positioned at its slot,
// whether occupied or vacant.
func (m *Map[K, V]) Entry(key K) *Entry[K, V] {
	addr, found := m.t.addressOf(key)
	return &Entry[K, V]{t: m.t, key: key, addr: addr, found: found}
}

// Found reports whether the key was present.
func (e *Entry[K, V]) Found() bool {
	return e.found
}

// Key returns the key this entry was located with.
func (e *Entry[K, V]) Key() K {
	return e.key
}

// Get returns the current value of an occupied entry.
func (e *Entry[K, V]) Get() (V, bool) {
	if !e.found {
		var zero V
		return zero, false
	}
	return e.t.item(e.addr).value, true
}

// OrInsert fills a vacant entry with value and returns the value now in
// place, without a second descent. Panics with ErrArenaFull when a
// fixed-capacity arena cannot absorb the insertion.
func (e *Entry[K, V]) OrInsert(value V) V {
	return e.OrInsertWith(func() V { return value })
}

// OrInsertWith is OrInsert with a lazily computed default.
func (e *Entry[K, V]) OrInsertWith(fn func() V) V {
	if e.found {
		return e.t.item(e.addr).value
	}
	if err := e.t.checkRoom(e.addr); err != nil {
		panic(err)
	}
	value := fn()
	e.addr = e.t.insertExactlyAt(e.addr, item[K, V]{key: e.key, value: value}, -1)
	e.found = true
	return value
}

// AndModify applies fn to the value of an occupied entry, in place.
// Returns the entry for chaining with OrInsert.
func (e *Entry[K, V]) AndModify(fn func(value *V)) *Entry[K, V] {
	if e.found {
		fn(&e.t.item(e.addr).value)
	}
	return e
}

// Set stores value at the entry, inserting if it was vacant, and returns
// the value it displaced.
func (e *Entry[K, V]) Set(value V) (V, bool) {
	if e.found {
		it := e.t.item(e.addr)
		prev := it.value
		it.value = value
		return prev, true
	}
	if err := e.t.checkRoom(e.addr); err != nil {
		panic(err)
	}
	e.addr = e.t.insertExactlyAt(e.addr, item[K, V]{key: e.key, value: value}, -1)
	e.found = true
	var zero V
	return zero, false
}

// Remove deletes an occupied entry and returns its value. The entry
// becomes vacant but keeps no usable position; re-locate with
// Map.Entry before inserting again.
func (e *Entry[K, V]) Remove() (V, bool) {
	if !e.found {
		var zero V
		return zero, false
	}
	it, _, _ := e.t.removeAt(e.addr)
	e.found = false
	e.addr = nowhere()
	return it.value, true
}
