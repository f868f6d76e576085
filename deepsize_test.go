package deepsize

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
)

func TestOfStringAndSlice(t *testing.T) {
	type sample struct {
		Name string
		Nums []int32
	}
	v := sample{Name: "hello", Nums: make([]int32, 3, 4)}

	t.Run("ChildrenAddStringBytesAndSliceCapacity", func(t *testing.T) {
		// Five bytes of string data plus a backing array with room
		// for four int32 values.
		assert.Equal(t, uintptr(21), OfChildren(NewContext(), v))
	})

	t.Run("OfAddsOwnRepresentation", func(t *testing.T) {
		assert.Equal(t, unsafe.Sizeof(v)+21, Of(v))
	})
}

func TestOfNil(t *testing.T) {
	assert.Equal(t, uintptr(0), Of(nil))
	assert.Equal(t, uintptr(0), OfChildren(NewContext(), nil))
	assert.Equal(t, uintptr(0), OfBoxed(NewContext(), nil))

	var p *int
	assert.Equal(t, unsafe.Sizeof(p), Of(p))
}

func TestSharedAllocationCountedOnce(t *testing.T) {
	type pair struct {
		A, B []byte
	}
	buf := make([]byte, 100)

	t.Run("SameBackingInOneValue", func(t *testing.T) {
		assert.Equal(t, uintptr(100), OfChildren(NewContext(), pair{A: buf, B: buf}))
	})

	t.Run("SameStringInTwoFields", func(t *testing.T) {
		s := "payload"
		type two struct {
			A, B string
		}
		assert.Equal(t, uintptr(len(s)), OfChildren(NewContext(), two{A: s, B: s}))
	})

	t.Run("SharedContextSpansCalls", func(t *testing.T) {
		ctx := NewContext()
		assert.Equal(t, uintptr(100), OfChildren(ctx, buf))
		assert.Equal(t, uintptr(0), OfChildren(ctx, buf))
	})
}

func TestOwnershipCycleTerminates(t *testing.T) {
	type node struct {
		next *node
	}
	a := &node{}
	b := &node{next: a}
	a.next = b

	// Each node is charged once and the cycle stops at the first
	// revisited pointer.
	assert.Equal(t, 2*unsafe.Sizeof(node{}), OfChildren(NewContext(), a))
}

func TestDisjointValuesAddUp(t *testing.T) {
	type holder struct {
		X, Y []byte
	}
	x := make([]byte, 64)
	y := make([]byte, 32)

	whole := OfChildren(NewContext(), holder{X: x, Y: y})
	parts := OfChildren(NewContext(), x) + OfChildren(NewContext(), y)
	assert.Equal(t, parts, whole)
}

func TestCapacityNotLength(t *testing.T) {
	t.Run("SliceChargedByCapacity", func(t *testing.T) {
		s := make([]int64, 2, 16)
		assert.Equal(t, uintptr(128), OfChildren(NewContext(), s))
	})

	t.Run("TruncationChangesNothing", func(t *testing.T) {
		s := make([]byte, 50, 50)
		before := OfChildren(NewContext(), s)
		s = s[:10]
		assert.Equal(t, before, OfChildren(NewContext(), s))
	})

	t.Run("EmptySliceOwnsNothing", func(t *testing.T) {
		assert.Equal(t, uintptr(0), OfChildren(NewContext(), []int64{}))
		var s []int64
		assert.Equal(t, uintptr(0), OfChildren(NewContext(), s))
	})
}

func TestOfBoxed(t *testing.T) {
	t.Run("BoxedScalarChargesItsCell", func(t *testing.T) {
		var x any = int64(7)
		assert.Equal(t, uintptr(8), OfBoxed(NewContext(), x))
	})

	t.Run("PointerIsNotBoxed", func(t *testing.T) {
		n := int64(7)
		var x any = &n
		assert.Equal(t, unsafe.Sizeof(n), OfBoxed(NewContext(), x))
	})

	t.Run("SharedBoxCountedOnce", func(t *testing.T) {
		var x any = [4]int64{1, 2, 3, 4}
		y := x
		ctx := NewContext()
		assert.Equal(t, uintptr(32), OfBoxed(ctx, x))
		assert.Equal(t, uintptr(0), OfBoxed(ctx, y))
	})

	t.Run("InterfaceFieldChargesBox", func(t *testing.T) {
		type holder struct {
			V any
		}
		assert.Equal(t, uintptr(8), OfChildren(NewContext(), holder{V: int64(7)}))
	})
}

func TestSizerImplementation(t *testing.T) {
	t.Run("ValueReceiver", func(t *testing.T) {
		assert.Equal(t, uintptr(42), OfChildren(NewContext(), valueSizer{claim: 42}))
	})

	t.Run("PointerReceiverThroughPointer", func(t *testing.T) {
		v := &ptrSizer{claim: 7}
		want := unsafe.Sizeof(ptrSizer{}) + 7
		assert.Equal(t, want, OfChildren(NewContext(), v))
	})

	t.Run("PointerDeduplicated", func(t *testing.T) {
		v := &ptrSizer{claim: 7}
		ctx := NewContext()
		OfChildren(ctx, v)
		assert.Equal(t, uintptr(0), OfChildren(ctx, v))
	})
}

type valueSizer struct {
	claim uintptr
}

func (s valueSizer) DeepSizeOfChildren(ctx *Context) uintptr {
	return s.claim
}

type ptrSizer struct {
	claim uintptr
}

func (s *ptrSizer) DeepSizeOfChildren(ctx *Context) uintptr {
	return s.claim
}
