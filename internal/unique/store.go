package unique

import "iter"

type slot[T any] struct {
	generation uint32
	value      T
}

// Store is one attribute table. Slots are addressed by key index and only
// answer to the exact generation they were written with.
type Store[T any] struct {
	slots []slot[T]
	live  int
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{slots: make([]slot[T], 0, 16)}
}

func (s *Store[T]) lookup(key Key) *slot[T] {
	if key.IsNull() || int(key.index) >= len(s.slots) {
		return nil
	}
	sl := &s.slots[key.index]
	if sl.generation != key.generation {
		return nil
	}
	return sl
}

// Get returns the value stored for key, or false when the slot is empty or was
// written by a different generation.
func (s *Store[T]) Get(key Key) (T, bool) {
	if sl := s.lookup(key); sl != nil {
		return sl.value, true
	}
	var zero T
	return zero, false
}

// GetMut returns a pointer into the table, or nil when absent. The pointer is
// invalidated by any Insert that grows the table.
func (s *Store[T]) GetMut(key Key) *T {
	if sl := s.lookup(key); sl != nil {
		return &sl.value
	}
	return nil
}

func (s *Store[T]) Contains(key Key) bool { return s.lookup(key) != nil }

// Insert writes value at key.index, growing the table with empty slots as needed
// and overwriting whatever the slot held before.
func (s *Store[T]) Insert(key Key, value T) {
	if key.IsNull() {
		return
	}
	for len(s.slots) <= int(key.index) {
		s.slots = append(s.slots, slot[T]{})
	}
	sl := &s.slots[key.index]
	if sl.generation == 0 {
		s.live++
	}
	sl.generation = key.generation
	sl.value = value
}

// Remove empties the slot when it still belongs to key. The value stays in memory
// but is unreachable. Stale and unknown keys are ignored.
func (s *Store[T]) Remove(key Key) {
	if sl := s.lookup(key); sl != nil {
		sl.generation = 0
		s.live--
	}
}

// Len returns the number of occupied slots.
func (s *Store[T]) Len() int { return s.live }

// Iter yields occupied slots in ascending index order.
func (s *Store[T]) Iter() iter.Seq2[Key, T] {
	return func(yield func(Key, T) bool) {
		for i := range s.slots {
			sl := &s.slots[i]
			if sl.generation == 0 {
				continue
			}
			if !yield(Key{index: uint32(i), generation: sl.generation}, sl.value) {
				return
			}
		}
	}
}

// IterMut is Iter with pointers into the table. The table must not grow while iterating.
func (s *Store[T]) IterMut() iter.Seq2[Key, *T] {
	return func(yield func(Key, *T) bool) {
		for i := range s.slots {
			sl := &s.slots[i]
			if sl.generation == 0 {
				continue
			}
			if !yield(Key{index: uint32(i), generation: sl.generation}, &sl.value) {
				return
			}
		}
	}
}

func (s *Store[T]) Keys() iter.Seq[Key] {
	return func(yield func(Key) bool) {
		for k := range s.Iter() {
			if !yield(k) {
				return
			}
		}
	}
}
