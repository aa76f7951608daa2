package btreeslab

import (
	"cmp"
)

// Set is an ordered set of keys, backed by the same slab tree as Map.
type Set[K any] struct {
	m *Map[K, struct{}]
}

// NewSet returns an empty set ordered by the natural ordering of K.
func NewSet[K cmp.Ordered](opts ...Option) *Set[K] {
	return &Set[K]{m: New[K, struct{}](opts...)}
}

// NewSetFunc returns an empty set ordered by compare.
func NewSetFunc[K any](compare func(a, b K) int, opts ...Option) *Set[K] {
	return &Set[K]{m: NewFunc[K, struct{}](compare, opts...)}
}

// Len returns the number of keys.
func (s *Set[K]) Len() int {
	return s.m.Len()
}

// IsEmpty reports whether the set holds no keys.
func (s *Set[K]) IsEmpty() bool {
	return s.m.IsEmpty()
}

// Clear removes every key.
func (s *Set[K]) Clear() {
	s.m.Clear()
}

// Contains reports whether key is present.
func (s *Set[K]) Contains(key K) bool {
	return s.m.Contains(key)
}

// Insert adds key, reporting whether it was absent. Panics with
// ErrArenaFull on a full fixed-capacity arena; use TryInsert instead.
func (s *Set[K]) Insert(key K) bool {
	_, present := s.m.Insert(key, struct{}{})
	return !present
}

// TryInsert adds key, failing with ErrArenaFull when a fixed-capacity
// arena cannot absorb it.
func (s *Set[K]) TryInsert(key K) (bool, error) {
	_, present, err := s.m.TryInsert(key, struct{}{})
	return !present && err == nil, err
}

// Remove deletes key, reporting whether it was present.
func (s *Set[K]) Remove(key K) bool {
	_, present := s.m.Remove(key)
	return present
}

// First returns the smallest key.
func (s *Set[K]) First() (K, bool) {
	k, _, ok := s.m.First()
	return k, ok
}

// Last returns the greatest key.
func (s *Set[K]) Last() (K, bool) {
	k, _, ok := s.m.Last()
	return k, ok
}

// PopFirst removes and returns the smallest key.
func (s *Set[K]) PopFirst() (K, bool) {
	k, _, ok := s.m.PopFirst()
	return k, ok
}

// PopLast removes and returns the greatest key.
func (s *Set[K]) PopLast() (K, bool) {
	k, _, ok := s.m.PopLast()
	return k, ok
}

// Keys returns every key in increasing order.
func (s *Set[K]) Keys() []K {
	return s.m.Keys()
}

// Ascend calls fn for every key in increasing order until fn returns
// false.
func (s *Set[K]) Ascend(fn func(key K) bool) {
	s.m.Ascend(func(key K, _ struct{}) bool {
		return fn(key)
	})
}

// Descend calls fn for every key in decreasing order until fn returns
// false.
func (s *Set[K]) Descend(fn func(key K) bool) {
	s.m.Descend(func(key K, _ struct{}) bool {
		return fn(key)
	})
}

// Cursor returns an unpositioned cursor over the set's keys. Position
// it with First, Last or Seek before reading.
func (s *Set[K]) Cursor() *Cursor[K, struct{}] {
	return s.m.Cursor()
}

// SetRange is a double-ended iterator over a key range of a Set.
type SetRange[K any] struct {
	r *Range[K, struct{}]
}

// Range returns an iterator over the keys between start and end.
func (s *Set[K]) Range(start, end Bound[K]) *SetRange[K] {
	return &SetRange[K]{r: s.m.Range(start, end)}
}

// Next yields the next key from the front of the range.
func (r *SetRange[K]) Next() (K, bool) {
	k, _, ok := r.r.Next()
	return k, ok
}

// NextBack yields the next key from the back of the range.
func (r *SetRange[K]) NextBack() (K, bool) {
	k, _, ok := r.r.NextBack()
	return k, ok
}
