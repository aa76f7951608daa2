package btreeslab

type boundKind int

const (
	unbounded boundKind = iota
	included
	excluded
)

// Bound is one end of a key range.
type Bound[K any] struct {
	key  K
	kind boundKind
}

// Included bounds a range by key, key itself belonging to the range.
func Included[K any](key K) Bound[K] {
	return Bound[K]{key: key, kind: included}
}

// Excluded bounds a range by key, key itself falling outside the range.
func Excluded[K any](key K) Bound[K] {
	return Bound[K]{key: key, kind: excluded}
}

// Unbounded leaves one end of a range open.
func Unbounded[K any]() Bound[K] {
	return Bound[K]{}
}

// Range is a double-ended iterator over a key range. It holds addresses
// into the tree, so the map must not be mutated while a Range is in use.
type Range[K, V any] struct {
	t    *tree[K, V]
	addr address
	end  address
}

// Range returns an iterator over the entries between start and end.
// Bounds are resolved to addresses once; stepping never re-searches from
// the root. Panics with ErrInvalidRange when start is above end.
func (m *Map[K, V]) Range(start, end Bound[K]) *Range[K, V] {
	t := m.t
	if start.kind != unbounded && end.kind != unbounded {
		c := t.cmp(start.key, end.key)
		if c > 0 || (c == 0 && start.kind == excluded && end.kind == excluded) {
			panic(ErrInvalidRange)
		}
	}

	r := &Range[K, V]{t: t}

	switch start.kind {
	case unbounded:
		r.addr = t.firstItemAddress()
	case included:
		if addr, found := t.addressOf(start.key); found {
			r.addr = addr
		} else {
			r.addr = t.itemOrEndAddress(addr)
		}
	case excluded:
		if addr, found := t.addressOf(start.key); found {
			r.addr, _ = t.nextItemOrBackAddress(addr)
		} else {
			r.addr = t.itemOrEndAddress(addr)
		}
	}

	switch end.kind {
	case unbounded:
		r.end = t.lastValidAddress()
	case included:
		if addr, found := t.addressOf(end.key); found {
			r.end, _ = t.nextItemOrBackAddress(addr)
		} else {
			r.end = t.itemOrEndAddress(addr)
		}
	case excluded:
		if addr, found := t.addressOf(end.key); found {
			r.end = addr
		} else {
			r.end = t.itemOrEndAddress(addr)
		}
	}

	return r
}

// itemOrEndAddress resolves a leaf gap to an address forward stepping
// can reach: the item following the gap, or the trailing gap when the
// position is past every item.
func (t *tree[K, V]) itemOrEndAddress(gap address) address {
	addr := t.normalize(gap)
	if addr.isNowhere() {
		return t.lastValidAddress()
	}
	return addr
}

// Iter returns an iterator over all entries in increasing key order.
func (m *Map[K, V]) Iter() *Range[K, V] {
	return m.Range(Unbounded[K](), Unbounded[K]())
}

// Next yields the next entry from the front of the range.
func (r *Range[K, V]) Next() (K, V, bool) {
	if r.addr == r.end || r.addr.isNowhere() {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	it := r.t.item(r.addr)
	r.addr, _ = r.t.nextItemOrBackAddress(r.addr)
	return it.key, it.value, true
}

// NextBack yields the next entry from the back of the range.
func (r *Range[K, V]) NextBack() (K, V, bool) {
	if r.addr == r.end || r.end.isNowhere() {
		var zeroK K
		var zeroV V
		return zeroK, zeroV, false
	}
	prev, _ := r.t.previousItemAddress(r.end)
	it := r.t.item(prev)
	r.end = prev
	return it.key, it.value, true
}

// Ascend calls fn for every entry in increasing key order until fn
// returns false.
func (m *Map[K, V]) Ascend(fn func(key K, value V) bool) {
	r := m.Iter()
	for {
		k, v, ok := r.Next()
		if !ok || !fn(k, v) {
			return
		}
	}
}

// Descend calls fn for every entry in decreasing key order until fn
// returns false.
func (m *Map[K, V]) Descend(fn func(key K, value V) bool) {
	r := m.Iter()
	for {
		k, v, ok := r.NextBack()
		if !ok || !fn(k, v) {
			return
		}
	}
}
