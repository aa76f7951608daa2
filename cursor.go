package btreeslab

// Cursor walks the map in key order without re-searching from the root:
// stepping advances within a leaf, or ascends to the parent and descends
// into the adjacent subtree. A cursor caches nothing that outlives a
// mutation; reposition it with First, Last or Seek after the map
// changes.
type Cursor[K, V any] struct {
	t     *tree[K, V]
	addr  address
	valid bool
}

// Cursor returns an unpositioned cursor. Position it with First, Last or
// Seek before reading.
func (m *Map[K, V]) Cursor() *Cursor[K, V] {
	return &Cursor[K, V]{t: m.t, addr: nowhere()}
}

// First positions the cursor on the smallest entry.
func (c *Cursor[K, V]) First() bool {
	c.addr = c.t.firstItemAddress()
	c.valid = c.t.item(c.addr) != nil
	return c.valid
}

// Last positions the cursor on the greatest entry.
func (c *Cursor[K, V]) Last() bool {
	c.addr = c.t.lastItemAddress()
	c.valid = c.t.item(c.addr) != nil
	return c.valid
}

// Seek positions the cursor on the first entry with a key greater than
// or equal to key.
func (c *Cursor[K, V]) Seek(key K) bool {
	addr, found := c.t.addressOf(key)
	if !found {
		addr = c.t.normalize(addr)
	}
	c.addr = addr
	c.valid = c.t.item(c.addr) != nil
	return c.valid
}

// Next steps to the following entry.
func (c *Cursor[K, V]) Next() bool {
	if !c.valid {
		return false
	}
	addr, ok := c.t.nextItemAddress(c.addr)
	if !ok {
		c.valid = false
		return false
	}
	c.addr = addr
	return true
}

// Prev steps to the preceding entry.
func (c *Cursor[K, V]) Prev() bool {
	if !c.valid {
		return false
	}
	addr, ok := c.t.previousItemAddress(c.addr)
	if !ok {
		c.valid = false
		return false
	}
	c.addr = addr
	return true
}

// Valid reports whether the cursor is positioned on an entry.
func (c *Cursor[K, V]) Valid() bool {
	return c.valid
}

// Key returns the key under the cursor. Only meaningful while Valid.
func (c *Cursor[K, V]) Key() K {
	if it := c.t.item(c.addr); it != nil {
		return it.key
	}
	var zero K
	return zero
}

// Value returns the value under the cursor. Only meaningful while Valid.
func (c *Cursor[K, V]) Value() V {
	if it := c.t.item(c.addr); it != nil {
		return it.value
	}
	var zero V
	return zero
}
