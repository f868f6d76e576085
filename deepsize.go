// Package deepsize estimates the total heap footprint of Go values. The
// deep size of a value is the size of its own in-memory representation
// plus every byte of heap it transitively owns, with allocations that are
// reachable more than once counted exactly once.
//
// Measurement is analytical. No allocator or GC statistics are consulted;
// sizes come from reflection, from documented knowledge of runtime data
// structure layouts, and from per type models registered with Register.
// Results are estimates with known, documented error bounds, suitable for
// cache cost functions, eviction weights and memory regression tests.
//
// Backing buffers are charged by capacity, not length. A slice with room
// for a thousand elements costs the same whether one or all of them are
// in use, because that is what the process is paying for.
//
// Types can opt in to exact accounting by implementing Sizer, or can be
// described from the outside with Register and its variants. Subpackages
// teach the engine about popular container libraries the same way.
//
// Measuring is read only but not synchronized. Do not measure values
// that other goroutines are mutating.
package deepsize

import (
	"reflect"
	"unsafe"

	"github.com/genc-murat/deepsize/internal/layout"
)

// Sizer is implemented by types that know how many heap bytes their
// children own. DeepSizeOfChildren must return only the transitively
// owned bytes, excluding the receiver's own inline representation, which
// the caller accounts for. Implementations claim new allocations through
// ctx.Visit so that sharing stays deduplicated.
//
// A pointer receiver works as expected. The engine dereferences pointers
// itself, charging the pointee's representation along the way, so the
// method describes the pointed-to value's children either way.
type Sizer interface {
	DeepSizeOfChildren(ctx *Context) uintptr
}

var sizerType = reflect.TypeOf((*Sizer)(nil)).Elem()

// Of returns the deep size of v in bytes. It is shorthand for OfContext
// with a fresh Context, which is the right call for measuring one value
// in isolation.
func Of(v any) uintptr {
	return OfContext(NewContext(), v)
}

// OfContext returns the deep size of v in bytes, the size of v's own
// representation plus everything OfChildren counts. Allocations already
// recorded in ctx are not counted again, which makes a shared context the
// tool for measuring several values that may share structure.
//
// Parameters:
//   - ctx: the visited set for this measurement series
//   - v: the value to measure
//
// Returns:
//   - uintptr: the estimated footprint of v in bytes
func OfContext(ctx *Context, v any) uintptr {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	return rv.Type().Size() + childrenOf(rv, ctx)
}

// OfChildren returns only the heap bytes transitively owned by v's
// children, excluding v's own inline representation. This is the quantity
// a container adds up for each element it stores inline, with the
// element's slot already part of the container's backing cost.
func OfChildren(ctx *Context, v any) uintptr {
	if v == nil {
		return 0
	}
	return childrenOf(reflect.ValueOf(v), ctx)
}

// OfBoxed measures a value reached through an interface. When the value
// is not pointer shaped the interface holds it in a separately allocated
// cell, so on first visit the cell's bytes are charged on top of the
// children. Pointer shaped values live directly in the interface word and
// cost nothing extra.
func OfBoxed(ctx *Context, v any) uintptr {
	if v == nil {
		return 0
	}
	rv := reflect.ValueOf(v)
	if layout.DirectIface(rv.Kind()) {
		return childrenOf(rv, ctx)
	}
	data := layout.EfaceData(v)
	if data == nil || !ctx.Visit(data) {
		return 0
	}
	return rv.Type().Size() + childrenOf(rv, ctx)
}

// childrenOf dispatches a single value to the model registry, then to a
// Sizer implementation, then to the structural walk. Interface values go
// straight to the walk so the box and the dynamic value are both seen.
// Pointers are walked before the Sizer check: dereferencing charges the
// pointee and deduplicates it, and the pointee then picks up its own
// model or method, so a pointer receiver implementation still only needs
// to describe the value it points at.
func childrenOf(v reflect.Value, ctx *Context) uintptr {
	if !v.IsValid() {
		return 0
	}
	t := v.Type()
	if t.Kind() == reflect.Interface {
		return walkInterface(v, ctx)
	}
	if m, ok := lookupModel(t); ok {
		return m.children(v, ctx)
	}
	if t.Kind() == reflect.Pointer {
		return walkPointer(v, ctx)
	}
	if t.Implements(sizerType) {
		if x, ok := valueInterface(v); ok {
			return x.(Sizer).DeepSizeOfChildren(ctx)
		}
	} else if v.CanAddr() && reflect.PointerTo(t).Implements(sizerType) {
		p := reflect.NewAt(t, unsafe.Pointer(v.UnsafeAddr()))
		return p.Interface().(Sizer).DeepSizeOfChildren(ctx)
	}
	return walkChildren(v, ctx)
}

// valueInterface extracts v as an interface value, using the value's
// address to get at unexported fields the ordinary path refuses.
func valueInterface(v reflect.Value) (any, bool) {
	if v.CanInterface() {
		return v.Interface(), true
	}
	if v.CanAddr() {
		return reflect.NewAt(v.Type(), unsafe.Pointer(v.UnsafeAddr())).Elem().Interface(), true
	}
	return nil, false
}
