package btreeslab

// offsetBefore addresses the position before the first item of a node.
// It only appears transiently while walking between nodes.
const offsetBefore = -1

// address locates a position inside the tree: an item when offset is in
// [0, len(items)), or an insertion gap when offset equals len(items) (or
// offsetBefore). Addresses are only meaningful until the next structural
// mutation; arena ids are recycled, so a stale address can silently point
// at an unrelated node.
type address struct {
	id     int
	offset int
}

// nowhere is the address of nothing, used for empty trees and exhausted
// iterators.
func nowhere() address {
	return address{id: -1, offset: 0}
}

func (a address) isNowhere() bool {
	return a.id < 0
}

func (a address) before() bool {
	return a.offset == offsetBefore
}
