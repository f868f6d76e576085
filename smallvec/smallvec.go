// Package smallvec provides a small-size-optimized vector. Short vectors
// live entirely inside the Vec value and cost no heap at all; once the
// inline capacity is exceeded the contents spill to a heap-allocated
// buffer that grows like an ordinary slice.
//
// Vec implements deepsize.Sizer, so measurements see through the
// optimization: an inline vector reports only what its elements own,
// and a spilled one additionally reports its full backing capacity.
package smallvec

import (
	"github.com/genc-murat/deepsize"
)

// InlineCap is the number of elements a Vec stores inline before
// spilling to the heap.
const InlineCap = 8

// Vec is a vector of T with inline storage for up to InlineCap
// elements. The zero value is an empty vector ready to use.
type Vec[T any] struct {
	inline [InlineCap]T
	n      int
	heap   []T
}

var _ deepsize.Sizer = (*Vec[string])(nil)

// New creates a new empty Vec instance.
func New[T any]() *Vec[T] {
	return &Vec[T]{}
}

// Len returns the number of elements in the vector.
func (v *Vec[T]) Len() int {
	if v.Spilled() {
		return len(v.heap)
	}
	return v.n
}

// Cap returns the number of element slots currently allocated, inline
// or on the heap.
func (v *Vec[T]) Cap() int {
	if v.Spilled() {
		return cap(v.heap)
	}
	return InlineCap
}

// Spilled reports whether the vector has moved to a heap-allocated
// buffer. A spilled vector never moves back inline, even when truncated
// below the inline capacity.
func (v *Vec[T]) Spilled() bool {
	return v.heap != nil
}

// At returns the element at index i and whether the index is in range.
func (v *Vec[T]) At(i int) (T, bool) {
	if i < 0 || i >= v.Len() {
		var zero T
		return zero, false
	}
	if v.Spilled() {
		return v.heap[i], true
	}
	return v.inline[i], true
}

// Append adds items to the end of the vector, spilling to the heap when
// the inline buffer cannot hold the result.
func (v *Vec[T]) Append(items ...T) {
	if !v.Spilled() && v.n+len(items) <= InlineCap {
		copy(v.inline[v.n:], items)
		v.n += len(items)
		return
	}
	v.spill(v.n + len(items))
	v.heap = append(v.heap, items...)
}

// Truncate shrinks the vector to n elements. The backing capacity is
// kept, so a spilled vector keeps paying for its buffer. Removed slots
// are zeroed so their former contents can be collected.
func (v *Vec[T]) Truncate(n int) {
	if n < 0 || n >= v.Len() {
		return
	}
	if v.Spilled() {
		clear(v.heap[n:])
		v.heap = v.heap[:n]
		return
	}
	clear(v.inline[n:v.n])
	v.n = n
}

// spill moves the inline contents to a heap buffer with room for at
// least need elements. The inline slots are cleared afterwards so stale
// copies do not hold references.
func (v *Vec[T]) spill(need int) {
	if v.Spilled() {
		return
	}
	c := 2 * InlineCap
	for c < need {
		c *= 2
	}
	buf := make([]T, v.n, c)
	copy(buf, v.inline[:v.n])
	clear(v.inline[:v.n])
	v.n = 0
	v.heap = buf
}

// DeepSizeOfChildren reports the heap bytes owned by the vector's
// contents. While inline, the buffer is part of the Vec itself and only
// the elements' own children count; once spilled, the full backing
// capacity counts too, whether or not every slot is occupied.
func (v *Vec[T]) DeepSizeOfChildren(ctx *deepsize.Context) uintptr {
	if v.Spilled() {
		return deepsize.OfChildren(ctx, v.heap)
	}
	var size uintptr
	for i := 0; i < v.n; i++ {
		size += deepsize.OfChildren(ctx, v.inline[i])
	}
	return size
}
