package btreeslab

import (
	"slices"
)

// tree is the engine shared by Map and Set. All structural knowledge
// lives here: search, insertion, deletion and the rebalancing that keeps
// every leaf at the same depth.
//
// Addresses returned by one method remain valid only until the next
// structural mutation. The rebalancing helpers thread an address through
// every rotation, split and merge so a caller keeps a usable address
// across a single mutating call chain.
type tree[K, V any] struct {
	nodes arena[K, V]
	root  int // -1 when the tree is empty
	count int
	order int
	cmp   func(K, K) int
	log   Logger
}

func newTree[K, V any](cmp func(K, K) int, opts Options) *tree[K, V] {
	var nodes arena[K, V]
	if opts.capacity > 0 {
		nodes = newFixedArena[K, V](opts.capacity)
	} else {
		nodes = newSlabArena[K, V]()
	}
	return &tree[K, V]{
		nodes: nodes,
		root:  -1,
		order: opts.order,
		cmp:   cmp,
		log:   opts.logger,
	}
}

func (t *tree[K, V]) len() int {
	return t.count
}

func (t *tree[K, V]) clear() {
	t.nodes.reset()
	t.root = -1
	t.count = 0
}

// item returns the item stored at addr, or nil when addr is a gap.
func (t *tree[K, V]) item(addr address) *item[K, V] {
	if addr.isNowhere() {
		return nil
	}
	n := t.nodes.at(addr.id)
	if addr.offset < 0 || addr.offset >= len(n.items) {
		return nil
	}
	return &n.items[addr.offset]
}

// addressOf locates key. On a miss the returned gap address is the leaf
// position where the key would be inserted.
func (t *tree[K, V]) addressOf(key K) (address, bool) {
	if t.root < 0 {
		return nowhere(), false
	}
	return t.addressIn(t.root, key)
}

func (t *tree[K, V]) addressIn(id int, key K) (address, bool) {
	for {
		n := t.nodes.at(id)
		i := n.searchMin(t.cmp, key)
		if i >= 0 && t.cmp(n.items[i].key, key) == 0 {
			return address{id, i}, true
		}
		if n.leaf {
			return address{id, i + 1}, false
		}
		id = n.children[i+1]
	}
}

// firstItemAddress is the address of the smallest item, or nowhere.
func (t *tree[K, V]) firstItemAddress() address {
	if t.root < 0 {
		return nowhere()
	}
	id := t.root
	for {
		n := t.nodes.at(id)
		if n.leaf {
			return address{id, 0}
		}
		id = n.children[0]
	}
}

// lastItemAddress is the address of the greatest item, or nowhere.
func (t *tree[K, V]) lastItemAddress() address {
	if t.root < 0 {
		return nowhere()
	}
	id := t.root
	for {
		n := t.nodes.at(id)
		if n.leaf {
			return address{id, len(n.items) - 1}
		}
		id = n.children[len(n.children)-1]
	}
}

// lastValidAddress is the gap after the greatest item: the address
// forward iteration lands on once exhausted.
func (t *tree[K, V]) lastValidAddress() address {
	if t.root < 0 {
		return nowhere()
	}
	id := t.root
	for {
		n := t.nodes.at(id)
		if n.leaf {
			return address{id, len(n.items)}
		}
		id = n.children[len(n.children)-1]
	}
}

// normalize turns a gap address into the address of the item that
// follows it, ascending as long as the gap sits past a node's last item.
// Returns nowhere when the gap is at the very end of the tree.
func (t *tree[K, V]) normalize(addr address) address {
	if addr.isNowhere() {
		return addr
	}
	for {
		n := t.nodes.at(addr.id)
		if addr.offset < len(n.items) {
			return addr
		}
		if n.parent < 0 {
			return nowhere()
		}
		addr.offset = t.nodes.at(n.parent).childIndex(addr.id)
		addr.id = n.parent
	}
}

// leafAddress pushes an internal gap address down to the equivalent gap
// in a leaf, where insertion can happen.
func (t *tree[K, V]) leafAddress(addr address) address {
	if addr.isNowhere() {
		return addr
	}
	for {
		childID, ok := t.nodes.at(addr.id).childIDOpt(addr.offset)
		if !ok {
			return addr
		}
		addr.id = childID
		addr.offset = t.nodes.at(childID).itemCount()
	}
}

// previousItemAddress steps to the item just before addr in key order.
func (t *tree[K, V]) previousItemAddress(addr address) (address, bool) {
	if addr.isNowhere() {
		return addr, false
	}
	for {
		if childID, ok := t.nodes.at(addr.id).childIDOpt(addr.offset); ok {
			addr.offset = t.nodes.at(childID).itemCount()
			addr.id = childID
			continue
		}
		for {
			if addr.offset > 0 {
				addr.offset--
				return addr, true
			}
			parentID := t.nodes.at(addr.id).parent
			if parentID < 0 {
				return addr, false
			}
			addr.offset = t.nodes.at(parentID).childIndex(addr.id)
			addr.id = parentID
		}
	}
}

// nextItemAddress steps to the item just after addr in key order.
func (t *tree[K, V]) nextItemAddress(addr address) (address, bool) {
	addr, ok := t.nextItemOrBackAddress(addr)
	if !ok {
		return addr, false
	}
	if addr.offset >= t.nodes.at(addr.id).itemCount() {
		return addr, false
	}
	return addr, true
}

// nextItemOrBackAddress steps to the next item, or to the trailing gap
// when addr holds the tree's last item. The trailing gap is the only gap
// forward stepping ever produces, which makes it a usable end marker.
func (t *tree[K, V]) nextItemOrBackAddress(addr address) (address, bool) {
	if addr.isNowhere() {
		return addr, false
	}
	count := t.nodes.at(addr.id).itemCount()
	if addr.offset < count {
		addr.offset++
	} else if addr.offset > count {
		return addr, false
	}

	shifted := addr
	for {
		if childID, ok := t.nodes.at(addr.id).childIDOpt(addr.offset); ok {
			addr.offset = 0
			addr.id = childID
			continue
		}
		for {
			if addr.offset < t.nodes.at(addr.id).itemCount() {
				return addr, true
			}
			parentID := t.nodes.at(addr.id).parent
			if parentID < 0 {
				return shifted, true
			}
			addr.offset = t.nodes.at(parentID).childIndex(addr.id)
			addr.id = parentID
		}
	}
}

// insertAt inserts an item at a gap address anywhere in the tree, first
// lowering the gap to its leaf equivalent.
func (t *tree[K, V]) insertAt(addr address, it item[K, V]) address {
	return t.insertExactlyAt(t.leafAddress(addr), it, -1)
}

// insertExactlyAt inserts an item at a leaf gap (or, with rightID >= 0,
// a separator into an internal node during rebalancing) and restores
// balance. Returns the item's address after rebalancing.
func (t *tree[K, V]) insertExactlyAt(addr address, it item[K, V], rightID int) address {
	if addr.isNowhere() {
		if t.root >= 0 {
			panic("btreeslab: insert at invalid address")
		}
		id := t.allocateNode(newLeaf(-1, it))
		t.root = id
		t.count++
		return address{id, 0}
	}
	t.nodes.at(addr.id).insert(addr.offset, it, rightID)
	addr = t.rebalance(addr.id, addr)
	t.count++
	return addr
}

// replaceValueAt overwrites the value at an occupied address, returning
// the previous value.
func (t *tree[K, V]) replaceValueAt(addr address, value V) V {
	it := t.item(addr)
	old := it.value
	it.value = value
	return old
}

// removeAt removes the item at an occupied address. The returned address
// points at the item that followed it (or the trailing gap), already
// fixed up for the rebalancing the removal triggered.
func (t *tree[K, V]) removeAt(addr address) (item[K, V], address, bool) {
	n := t.nodes.at(addr.id)
	if addr.offset < 0 || addr.offset >= len(n.items) {
		return item[K, V]{}, addr, false
	}
	t.count--

	if n.leaf {
		it := n.remove(addr.offset)
		return it, t.rebalance(addr.id, addr), true
	}

	// Removing a separator: replace it with the rightmost item of the
	// left subtree, then rebalance from the leaf that lost it.
	next, _ := t.nextItemOrBackAddress(addr)
	sep, leafID := t.removeRightmostLeafOf(n.children[addr.offset])
	it := n.replace(addr.offset, sep)
	return it, t.rebalance(leafID, next), true
}

// removeRightmostLeafOf pops the last item of the rightmost leaf under
// id, returning it along with the leaf's id.
func (t *tree[K, V]) removeRightmostLeafOf(id int) (item[K, V], int) {
	for {
		n := t.nodes.at(id)
		if n.leaf {
			return n.removeLast(), id
		}
		id = n.children[len(n.children)-1]
	}
}

// rebalance restores the fill invariants along the path from node id to
// the root, threading addr through every structural change so it still
// locates the same logical position afterwards.
func (t *tree[K, V]) rebalance(id int, addr address) address {
	bal := t.nodes.at(id).balance(t.order)
	for {
		switch bal {
		case balanced:
			return addr

		case overflow:
			n := t.nodes.at(id)
			medianOffset, median, right := n.split()
			rightID := t.allocateNode(right)
			parentID := n.parent

			if parentID < 0 {
				rootID := t.allocateNode(newBinary(-1, id, median, rightID))
				t.root = rootID
				t.log.Info("root split", "root", rootID, "live", t.nodes.live())

				if addr.id == id {
					if addr.offset == medianOffset {
						addr = address{rootID, 0}
					} else if addr.offset > medianOffset {
						addr = address{rightID, addr.offset - medianOffset - 1}
					}
				}
				return addr
			}

			parent := t.nodes.at(parentID)
			offset := parent.childIndex(id)
			parent.insert(offset, median, rightID)

			if addr.id == id {
				if addr.offset == medianOffset {
					addr = address{parentID, offset}
				} else if addr.offset > medianOffset {
					addr = address{rightID, addr.offset - medianOffset - 1}
				}
			} else if addr.id == parentID {
				if addr.offset >= offset {
					addr.offset++
				}
			}

			id = parentID
			bal = parent.balance(t.order)

		case underflow:
			n := t.nodes.at(id)
			parentID := n.parent
			if parentID < 0 {
				// The root may underflow freely; it is only collapsed
				// once it holds no items at all.
				if len(n.items) == 0 {
					if childID, ok := n.childIDOpt(0); ok {
						t.root = childID
						child := t.nodes.at(childID)
						child.parent = -1
						if addr.id == id {
							addr = address{childID, child.itemCount()}
						}
					} else {
						t.root = -1
						addr = nowhere()
					}
					t.releaseNode(id)
					t.log.Info("root collapsed", "root", t.root, "live", t.nodes.live())
				}
				return addr
			}

			index := t.nodes.at(parentID).childIndex(id)
			if t.tryRotateLeft(parentID, index, &addr) || t.tryRotateRight(parentID, index, &addr) {
				return addr
			}
			// Both siblings are at minimum fill: merge, then continue
			// upward since the parent lost a separator.
			bal, addr = t.mergeSibling(parentID, index, addr)
			id = parentID
		}
	}
}

// tryRotateLeft moves the first item of the deficient child's right
// sibling up to the parent and the old separator down to the child.
func (t *tree[K, V]) tryRotateLeft(id, deficientIndex int, addr *address) bool {
	parent := t.nodes.at(id)
	pivotOffset := deficientIndex
	rightIndex := deficientIndex + 1
	if rightIndex >= parent.childCount() {
		return false
	}
	rightID := parent.children[rightIndex]
	childID := parent.children[deficientIndex]

	it, grandchild, ok := t.nodes.at(rightID).popLeft(t.order)
	if !ok {
		return false
	}
	it, parent.items[pivotOffset] = parent.items[pivotOffset], it
	leftOffset := t.nodes.at(childID).pushRight(it, grandchild)
	if grandchild >= 0 {
		t.nodes.at(grandchild).parent = childID
	}

	if addr.id == rightID {
		if addr.offset == 0 {
			*addr = address{id, pivotOffset}
		} else {
			addr.offset--
		}
	} else if addr.id == id && addr.offset == pivotOffset {
		*addr = address{childID, leftOffset}
	}
	return true
}

// tryRotateRight moves the last item of the deficient child's left
// sibling up to the parent and the old separator down to the child.
func (t *tree[K, V]) tryRotateRight(id, deficientIndex int, addr *address) bool {
	if deficientIndex == 0 {
		return false
	}
	parent := t.nodes.at(id)
	pivotOffset := deficientIndex - 1
	leftID := parent.children[deficientIndex-1]
	childID := parent.children[deficientIndex]

	leftOffset, it, grandchild, ok := t.nodes.at(leftID).popRight(t.order)
	if !ok {
		return false
	}
	it, parent.items[pivotOffset] = parent.items[pivotOffset], it
	t.nodes.at(childID).pushLeft(it, grandchild)
	if grandchild >= 0 {
		t.nodes.at(grandchild).parent = childID
	}

	if addr.id == childID {
		addr.offset++
	} else if addr.id == leftID {
		if addr.offset == leftOffset {
			*addr = address{id, pivotOffset}
		}
	} else if addr.id == id && addr.offset == pivotOffset {
		*addr = address{childID, 0}
	}
	return true
}

// mergeSibling merges the deficient child with a direct sibling, pulling
// the separator between them down from the parent. Returns the parent's
// balance afterwards so rebalancing can continue upward.
func (t *tree[K, V]) mergeSibling(id, deficientIndex int, addr address) (balance, address) {
	li := deficientIndex
	if deficientIndex > 0 {
		li = deficientIndex - 1
	}

	parent := t.nodes.at(id)
	leftID := parent.children[li]
	rightID := parent.children[li+1]
	sep := parent.items[li]
	parent.items = slices.Delete(parent.items, li, li+1)
	parent.children = slices.Delete(parent.children, li+1, li+2)
	bal := parent.balance(t.order)

	right := t.releaseNode(rightID)
	for _, c := range right.children {
		t.nodes.at(c).parent = leftID
	}
	leftOffset := t.nodes.at(leftID).appendNode(sep, right)

	if addr.id == id {
		if addr.offset == li {
			addr = address{leftID, leftOffset}
		} else if addr.offset > li {
			addr.offset--
		}
	} else if addr.id == rightID {
		addr = address{leftID, addr.offset + leftOffset + 1}
	}

	return bal, addr
}

// splitsNeeded counts the node allocations an insertion at the given
// leaf would trigger, so a bounded arena can refuse up front and leave
// the tree untouched.
func (t *tree[K, V]) splitsNeeded(leafID int) int {
	if leafID < 0 {
		return 1
	}
	n := t.nodes.at(leafID)
	if len(n.items)+1 <= t.order {
		return 0
	}
	needed := 1
	for {
		if n.parent < 0 {
			return needed + 1
		}
		n = t.nodes.at(n.parent)
		if len(n.items)+1 < t.order {
			return needed
		}
		needed++
	}
}

// checkRoom reports ErrArenaFull when the arena cannot absorb an
// insertion at the given leaf gap.
func (t *tree[K, V]) checkRoom(addr address) error {
	if t.nodes.available() < t.splitsNeeded(addr.id) {
		t.log.Warn("insert refused", "live", t.nodes.live(), "available", t.nodes.available())
		return ErrArenaFull
	}
	return nil
}

func (t *tree[K, V]) allocateNode(n *node[K, V]) int {
	id, ok := t.nodes.allocate(n)
	if !ok {
		// Callers gate allocations with checkRoom; reaching this point
		// means an invariant was broken.
		panic(ErrArenaFull)
	}
	for _, c := range n.children {
		t.nodes.at(c).parent = id
	}
	return id
}

func (t *tree[K, V]) releaseNode(id int) *node[K, V] {
	return t.nodes.release(id)
}

// validate recursively checks the structural invariants: parent links,
// key ordering against separators, fill bounds off the root, and equal
// leaf depth. Used by tests after every mutation.
func (t *tree[K, V]) validate() error {
	if t.root < 0 {
		if t.count != 0 {
			return ErrCorruption
		}
		return nil
	}
	_, err := t.validateNode(t.root, -1, nil, nil)
	return err
}

func (t *tree[K, V]) validateNode(id, parent int, min, max *K) (int, error) {
	n := t.nodes.at(id)
	if n.parent != parent {
		return 0, ErrCorruption
	}
	root := min == nil && max == nil
	if root {
		if t.count > 0 && len(n.items) == 0 {
			return 0, ErrCorruption
		}
	} else if n.balance(t.order) != balanced {
		return 0, ErrCorruption
	}
	for i := 1; i < len(n.items); i++ {
		if t.cmp(n.items[i-1].key, n.items[i].key) >= 0 {
			return 0, ErrCorruption
		}
	}
	if len(n.items) > 0 {
		if min != nil && t.cmp(*min, n.items[0].key) >= 0 {
			return 0, ErrCorruption
		}
		if max != nil && t.cmp(n.items[len(n.items)-1].key, *max) >= 0 {
			return 0, ErrCorruption
		}
	}
	if n.leaf {
		if len(n.children) != 0 {
			return 0, ErrCorruption
		}
		return 0, nil
	}
	if len(n.children) != len(n.items)+1 {
		return 0, ErrCorruption
	}
	depth := -1
	for i, childID := range n.children {
		childMin, childMax := min, max
		if i > 0 {
			childMin = &n.items[i-1].key
		}
		if i < len(n.items) {
			childMax = &n.items[i].key
		}
		d, err := t.validateNode(childID, id, childMin, childMax)
		if err != nil {
			return 0, err
		}
		if depth >= 0 && d != depth {
			return 0, ErrCorruption
		}
		depth = d
	}
	return depth + 1, nil
}
