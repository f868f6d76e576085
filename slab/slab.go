// Package slab provides a slot-reusing arena. Values are stored in a
// single backing array and addressed by integer keys that stay stable
// until the slot is deleted; vacant slots are chained into a free list
// and reused by later inserts, so the arena never shuffles live values.
//
// Because the slot layout is defined here, a Slab measures exactly: its
// backing cost is the slot size times the allocated capacity, occupied
// or not, plus whatever the live values own.
package slab

import (
	"github.com/genc-murat/deepsize"
)

// Slab is an arena of T addressed by stable integer keys. The zero
// value is an empty arena ready to use.
type Slab[T any] struct {
	entries []entry[T]
	next    int // head of the vacant-slot free list
	size    int
}

// entry is one slot of the backing array. A vacant entry holds the
// index of the next vacant slot instead of a value.
type entry[T any] struct {
	value    T
	next     int
	occupied bool
}

var _ deepsize.Sizer = (*Slab[string])(nil)

// Stats describes the occupancy of a Slab.
type Stats struct {
	Occupied int
	Vacant   int
	Capacity int
}

// New creates a new empty Slab instance.
func New[T any]() *Slab[T] {
	return &Slab[T]{}
}

// NewWithCapacity creates a Slab with room for n values before the
// backing array has to grow.
func NewWithCapacity[T any](n int) *Slab[T] {
	return &Slab[T]{entries: make([]entry[T], 0, n)}
}

// Insert stores v in the arena and returns its key. Vacant slots left
// by earlier deletes are reused before the backing array grows.
//
// Parameters:
//   - v: The value to store.
//
// Returns:
//   - int: The key under which v is stored. The key remains valid until
//     Delete is called with it, after which it may be handed out again.
func (s *Slab[T]) Insert(v T) int {
	key := s.next
	if key == len(s.entries) {
		s.entries = append(s.entries, entry[T]{value: v, occupied: true})
		s.next = len(s.entries)
	} else {
		s.next = s.entries[key].next
		s.entries[key] = entry[T]{value: v, occupied: true}
	}
	s.size++
	return key
}

// Get returns the value stored under key and whether the slot is
// occupied.
func (s *Slab[T]) Get(key int) (T, bool) {
	if key < 0 || key >= len(s.entries) || !s.entries[key].occupied {
		var zero T
		return zero, false
	}
	return s.entries[key].value, true
}

// Delete removes the value under key and returns it. The slot is zeroed
// and chained into the free list; the backing array never shrinks.
func (s *Slab[T]) Delete(key int) (T, bool) {
	if key < 0 || key >= len(s.entries) || !s.entries[key].occupied {
		var zero T
		return zero, false
	}
	v := s.entries[key].value
	s.entries[key] = entry[T]{next: s.next}
	s.next = key
	s.size--
	return v, true
}

// Len returns the number of occupied slots.
func (s *Slab[T]) Len() int {
	return s.size
}

// Cap returns the number of allocated slots, occupied or not.
func (s *Slab[T]) Cap() int {
	return cap(s.entries)
}

// Range calls f for every occupied slot in key order until f returns
// false.
func (s *Slab[T]) Range(f func(key int, value T) bool) {
	for i := range s.entries {
		if !s.entries[i].occupied {
			continue
		}
		if !f(i, s.entries[i].value) {
			return
		}
	}
}

// GetStats returns the current occupancy of the arena.
func (s *Slab[T]) GetStats() Stats {
	return Stats{
		Occupied: s.size,
		Vacant:   len(s.entries) - s.size,
		Capacity: cap(s.entries),
	}
}

// DeepSizeOfChildren reports the backing array at full capacity plus
// everything the live values own. Deleted slots are zeroed on the way
// out, so they contribute slot space but no children.
func (s *Slab[T]) DeepSizeOfChildren(ctx *deepsize.Context) uintptr {
	return deepsize.OfChildren(ctx, s.entries)
}
