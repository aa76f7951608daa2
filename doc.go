// Package btreeslab implements an ordered map and set backed by a B-tree
// whose nodes live in a contiguous slab addressed by integer ids instead
// of pointers.
//
// All parent/child relations are integer indices into one arena. Freed
// slots are recycled by later insertions, so a long-lived tree keeps its
// node storage compact regardless of churn. Two arena backends are
// provided: a growable slab with a free list (the default) and a
// fixed-capacity slab whose insertions fail with ErrArenaFull once the
// bound is reached.
//
// Keys are kept in strictly increasing order with no duplicates. Lookups,
// insertions and removals are O(log n). Iteration, range queries, cursors
// and the entry API all step between items without re-searching from the
// root.
package btreeslab
