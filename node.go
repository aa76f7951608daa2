package btreeslab

import (
	"slices"
)

// item is a key/value pair stored in a node.
type item[K, V any] struct {
	key   K
	value V
}

// node is a single B-tree node. An internal node holding k items has k+1
// children; a leaf has none. parent is a navigation hint, not ownership:
// it is kept consistent only while the node is attached to the tree.
// A node with parent -1 is the root.
type node[K, V any] struct {
	parent   int
	leaf     bool
	items    []item[K, V]
	children []int
}

func newLeaf[K, V any](parent int, items ...item[K, V]) *node[K, V] {
	return &node[K, V]{
		parent: parent,
		leaf:   true,
		items:  items,
	}
}

// newBinary builds an internal node with a single separator, used when a
// split reaches the root.
func newBinary[K, V any](parent, left int, sep item[K, V], right int) *node[K, V] {
	return &node[K, V]{
		parent:   parent,
		items:    []item[K, V]{sep},
		children: []int{left, right},
	}
}

func (n *node[K, V]) itemCount() int {
	return len(n.items)
}

func (n *node[K, V]) childCount() int {
	return len(n.children)
}

// childIndex returns the position of id among n's children, or -1.
func (n *node[K, V]) childIndex(id int) int {
	for i, c := range n.children {
		if c == id {
			return i
		}
	}
	return -1
}

// childIDOpt returns the child at index, reporting false for leaves and
// out-of-range indexes.
func (n *node[K, V]) childIDOpt(index int) (int, bool) {
	if n.leaf || index < 0 || index >= len(n.children) {
		return -1, false
	}
	return n.children[index], true
}

// searchMin returns the offset of the item with the greatest key not
// exceeding key, or -1 when every item is greater. Items are sorted, so
// this is the standard nearest-below binary search.
func (n *node[K, V]) searchMin(cmp func(K, K) int, key K) int {
	if len(n.items) == 0 || cmp(n.items[0].key, key) > 0 {
		return -1
	}
	i, j := 0, len(n.items)-1
	if cmp(n.items[j].key, key) <= 0 {
		return j
	}
	// invariant: items[i].key <= key < items[j].key
	for j-i > 1 {
		k := (i + j) / 2
		if cmp(n.items[k].key, key) > 0 {
			j = k
		} else {
			i = k
		}
	}
	return i
}

type balance int

const (
	balanced balance = iota
	overflow
	underflow
)

// isOverflowing reports whether the node holds more than the order m
// allows. An internal node overflows one item sooner than a leaf because
// it also carries a child per item.
func (n *node[K, V]) isOverflowing(m int) bool {
	if n.leaf {
		return len(n.items) > m
	}
	return len(n.items) >= m
}

func (n *node[K, V]) isUnderflowing(m int) bool {
	return len(n.items) < m/2-1
}

func (n *node[K, V]) balance(m int) balance {
	switch {
	case n.isOverflowing(m):
		return overflow
	case n.isUnderflowing(m):
		return underflow
	default:
		return balanced
	}
}

// wouldUnderflow reports whether giving away one item would leave the
// node underflowing. Used as the rotation guard.
func (n *node[K, V]) wouldUnderflow(m int) bool {
	return len(n.items) <= m/2-1
}

// insert puts an item at offset. For internal nodes, rightChild becomes
// the child immediately to the right of the new item. The node is assumed
// not to have overflowed yet; rebalancing happens afterwards.
func (n *node[K, V]) insert(offset int, it item[K, V], rightChild int) {
	n.items = slices.Insert(n.items, offset, it)
	if !n.leaf {
		n.children = slices.Insert(n.children, offset+1, rightChild)
	}
}

// remove deletes the leaf item at offset and returns it.
func (n *node[K, V]) remove(offset int) item[K, V] {
	it := n.items[offset]
	n.items = slices.Delete(n.items, offset, offset+1)
	return it
}

func (n *node[K, V]) removeLast() item[K, V] {
	it := n.items[len(n.items)-1]
	n.items = n.items[:len(n.items)-1]
	return it
}

// replace swaps the item at offset, returning the old one. Only used on
// internal nodes to substitute a separator.
func (n *node[K, V]) replace(offset int, it item[K, V]) item[K, V] {
	old := n.items[offset]
	n.items[offset] = it
	return old
}

// split divides an overflowing node around its median. The receiver keeps
// the items below the median and the returned node takes the items above
// it; the median itself moves up to the parent. Returns the offset the
// median had, the median, and the new right node.
func (n *node[K, V]) split() (int, item[K, V], *node[K, V]) {
	mi := (len(n.items) - 1) / 2
	median := n.items[mi]

	right := &node[K, V]{
		parent: n.parent,
		leaf:   n.leaf,
		items:  slices.Clone(n.items[mi+1:]),
	}
	n.items = n.items[:mi]

	if !n.leaf {
		right.children = slices.Clone(n.children[mi+1:])
		n.children = n.children[:mi+1]
	}

	return mi, median, right
}

// appendNode concatenates other onto n with sep between them, absorbing
// other's children. Returns the offset sep landed at.
func (n *node[K, V]) appendNode(sep item[K, V], other *node[K, V]) int {
	offset := len(n.items)
	n.items = append(n.items, sep)
	n.items = append(n.items, other.items...)
	if !n.leaf {
		n.children = append(n.children, other.children...)
	}
	return offset
}

// pushLeft prepends an item. For internal nodes, childID becomes the new
// leftmost child.
func (n *node[K, V]) pushLeft(it item[K, V], childID int) {
	n.items = slices.Insert(n.items, 0, it)
	if !n.leaf {
		n.children = slices.Insert(n.children, 0, childID)
	}
}

// popLeft removes the first item (and leftmost child, for internal
// nodes). Fails when the node cannot spare an item.
func (n *node[K, V]) popLeft(m int) (item[K, V], int, bool) {
	if n.wouldUnderflow(m) {
		return item[K, V]{}, -1, false
	}
	it := n.items[0]
	n.items = slices.Delete(n.items, 0, 1)
	childID := -1
	if !n.leaf {
		childID = n.children[0]
		n.children = slices.Delete(n.children, 0, 1)
	}
	return it, childID, true
}

// pushRight appends an item (and child), returning its offset.
func (n *node[K, V]) pushRight(it item[K, V], childID int) int {
	offset := len(n.items)
	n.items = append(n.items, it)
	if !n.leaf {
		n.children = append(n.children, childID)
	}
	return offset
}

// popRight removes the last item (and rightmost child). The returned
// offset is the node's item count before the pop, mirroring the address
// a trailing gap would have had.
func (n *node[K, V]) popRight(m int) (int, item[K, V], int, bool) {
	if n.wouldUnderflow(m) {
		return 0, item[K, V]{}, -1, false
	}
	offset := len(n.items)
	it := n.items[len(n.items)-1]
	n.items = n.items[:len(n.items)-1]
	childID := -1
	if !n.leaf {
		childID = n.children[len(n.children)-1]
		n.children = n.children[:len(n.children)-1]
	}
	return offset, it, childID, true
}
