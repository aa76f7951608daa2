package btreeslab

import (
	"fmt"
	"math"
)

// arena owns every node of one tree. Nodes are addressed by integer ids;
// freed ids are recycled by later allocations, so an id observed before a
// release must never be dereferenced after a subsequent allocate.
type arena[K, V any] interface {
	// allocate stores n and returns its id. ok is false when the arena is
	// at capacity, in which case n was not stored.
	allocate(n *node[K, V]) (id int, ok bool)

	// release frees the slot and returns the node that occupied it. The
	// id may be handed out again by a later allocate.
	release(id int) *node[K, V]

	// at returns the node stored at id. Panics if the slot is free or the
	// id was never allocated: a stale id is a contract violation, not a
	// recoverable condition.
	at(id int) *node[K, V]

	// live returns the number of occupied slots.
	live() int

	// available returns how many more nodes can be allocated.
	available() int

	// reset frees every slot at once.
	reset()

	// walk calls fn for every occupied slot in id order.
	walk(fn func(id int, n *node[K, V]))
}

// slabArena is the default backend: a growable slice of slots with a free
// list. Released ids are reused LIFO, keeping the slab dense under churn.
type slabArena[K, V any] struct {
	slots []*node[K, V]
	free  []int
	count int
}

func newSlabArena[K, V any]() *slabArena[K, V] {
	return &slabArena[K, V]{}
}

func (a *slabArena[K, V]) allocate(n *node[K, V]) (int, bool) {
	a.count++
	if len(a.free) > 0 {
		id := a.free[len(a.free)-1]
		a.free = a.free[:len(a.free)-1]
		a.slots[id] = n
		return id, true
	}
	a.slots = append(a.slots, n)
	return len(a.slots) - 1, true
}

func (a *slabArena[K, V]) release(id int) *node[K, V] {
	n := a.at(id)
	a.slots[id] = nil
	a.free = append(a.free, id)
	a.count--
	return n
}

func (a *slabArena[K, V]) at(id int) *node[K, V] {
	if id < 0 || id >= len(a.slots) || a.slots[id] == nil {
		panic(fmt.Sprintf("btreeslab: dereference of free node id %d", id))
	}
	return a.slots[id]
}

func (a *slabArena[K, V]) live() int {
	return a.count
}

func (a *slabArena[K, V]) available() int {
	return math.MaxInt
}

func (a *slabArena[K, V]) reset() {
	a.slots = a.slots[:0]
	a.free = a.free[:0]
	a.count = 0
}

func (a *slabArena[K, V]) walk(fn func(id int, n *node[K, V])) {
	for id, n := range a.slots {
		if n != nil {
			fn(id, n)
		}
	}
}

// fixedArena bounds the number of live nodes. allocate fails once the
// bound is reached; callers must check available before mutating so that
// a failed insertion leaves the tree untouched.
type fixedArena[K, V any] struct {
	slab     slabArena[K, V]
	capacity int
}

func newFixedArena[K, V any](capacity int) *fixedArena[K, V] {
	return &fixedArena[K, V]{capacity: capacity}
}

func (a *fixedArena[K, V]) allocate(n *node[K, V]) (int, bool) {
	if a.slab.count >= a.capacity {
		return -1, false
	}
	return a.slab.allocate(n)
}

func (a *fixedArena[K, V]) release(id int) *node[K, V] {
	return a.slab.release(id)
}

func (a *fixedArena[K, V]) at(id int) *node[K, V] {
	return a.slab.at(id)
}

func (a *fixedArena[K, V]) live() int {
	return a.slab.count
}

func (a *fixedArena[K, V]) available() int {
	return a.capacity - a.slab.count
}

func (a *fixedArena[K, V]) reset() {
	a.slab.reset()
}

func (a *fixedArena[K, V]) walk(fn func(id int, n *node[K, V])) {
	a.slab.walk(fn)
}
