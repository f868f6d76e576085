package deepsize

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/genc-murat/deepsize/internal/layout"
)

// walkChildren is the structural fallback for types with no model and no
// Sizer implementation. It charges what a kind is known to own and
// recurses through childrenOf so models apply at every level.
func walkChildren(v reflect.Value, ctx *Context) uintptr {
	switch v.Kind() {
	case reflect.String:
		return walkString(v, ctx)
	case reflect.Slice:
		return walkSlice(v, ctx)
	case reflect.Array:
		return walkArray(v, ctx)
	case reflect.Struct:
		return walkStruct(v, ctx)
	case reflect.Pointer:
		return walkPointer(v, ctx)
	case reflect.Map:
		return walkMap(v, ctx)
	case reflect.Chan:
		return walkChan(v, ctx)
	case reflect.Interface:
		return walkInterface(v, ctx)
	default:
		// Scalars live entirely in their slot. Funcs may close over
		// heap, and uintptr or unsafe.Pointer may reference it, but
		// none of them own it in a way reflection can see.
		return 0
	}
}

func walkString(v reflect.Value, ctx *Context) uintptr {
	n := v.Len()
	if n == 0 {
		return 0
	}
	s := v.String()
	if !ctx.Visit(unsafe.Pointer(unsafe.StringData(s))) {
		return 0
	}
	return uintptr(n)
}

// walkSlice charges the full backing array, occupied or not, then the
// children of the live elements. Two slices of one array share a data
// pointer only when they start at the same element, so resliced views
// with different offsets are charged again. That is the documented cost
// of address based deduplication.
func walkSlice(v reflect.Value, ctx *Context) uintptr {
	c := v.Cap()
	if c == 0 {
		return 0
	}
	if !ctx.Visit(v.UnsafePointer()) {
		return 0
	}
	et := v.Type().Elem()
	size := uintptr(c) * et.Size()
	if typeCanOwn(et) {
		for i := 0; i < v.Len(); i++ {
			size += childrenOf(v.Index(i), ctx)
		}
	}
	return size
}

func walkArray(v reflect.Value, ctx *Context) uintptr {
	if !typeCanOwn(v.Type().Elem()) {
		return 0
	}
	var size uintptr
	for i := 0; i < v.Len(); i++ {
		size += childrenOf(v.Index(i), ctx)
	}
	return size
}

func walkStruct(v reflect.Value, ctx *Context) uintptr {
	var size uintptr
	for i := 0; i < v.NumField(); i++ {
		f := v.Field(i)
		if !typeCanOwn(f.Type()) {
			continue
		}
		size += childrenOf(f, ctx)
	}
	return size
}

func walkPointer(v reflect.Value, ctx *Context) uintptr {
	if v.IsNil() {
		return 0
	}
	if !ctx.Visit(v.UnsafePointer()) {
		return 0
	}
	e := v.Elem()
	return e.Type().Size() + childrenOf(e, ctx)
}

// walkInterface accounts for the box an interface may have allocated for
// its value, then the value itself.
func walkInterface(v reflect.Value, ctx *Context) uintptr {
	if v.IsNil() {
		return 0
	}
	if x, ok := valueInterface(v); ok {
		return OfBoxed(ctx, x)
	}
	e := v.Elem()
	if layout.DirectIface(e.Kind()) {
		return childrenOf(e, ctx)
	}
	return e.Type().Size() + childrenOf(e, ctx)
}

// walkMap charges the map header, an estimate of the table backing based
// on the entry count, and the children of the keys and elements. Only the
// length is observable from outside the runtime, so a map that shrank
// after deletions is underestimated.
func walkMap(v reflect.Value, ctx *Context) uintptr {
	if v.IsNil() {
		return 0
	}
	if !ctx.Visit(v.UnsafePointer()) {
		return 0
	}
	t := v.Type()
	kt, et := t.Key(), t.Elem()
	size := layout.MapHeaderSize + layout.MapBackingBytes(v.Len(), kt.Size(), et.Size())
	if typeCanOwn(kt) || typeCanOwn(et) {
		it := v.MapRange()
		for it.Next() {
			size += childrenOf(it.Key(), ctx)
			size += childrenOf(it.Value(), ctx)
		}
	}
	return size
}

func walkChan(v reflect.Value, ctx *Context) uintptr {
	if v.IsNil() {
		return 0
	}
	if !ctx.Visit(v.UnsafePointer()) {
		return 0
	}
	// Elements sitting in the buffer are deliberately not walked. They
	// are in transit between goroutines, not owned by the channel.
	return layout.ChanBytes(v.Cap(), v.Type().Elem().Size())
}

// ownCache memoizes typeCanOwn. Registrations can flip an answer, so the
// registry clears it on every store.
var ownCache sync.Map

func resetOwnCache() {
	ownCache.Range(func(k, _ any) bool {
		ownCache.Delete(k)
		return true
	})
}

// typeCanOwn reports whether values of type t can ever own heap bytes.
// It is a pruning hint for container loops, so it must only say no when
// the children size is provably always zero.
func typeCanOwn(t reflect.Type) bool {
	if v, ok := ownCache.Load(t); ok {
		return v.(bool)
	}
	r := computeCanOwn(t)
	ownCache.Store(t, r)
	return r
}

func computeCanOwn(t reflect.Type) bool {
	if m, ok := lookupModel(t); ok {
		return m.fn != nil || m.fixed > 0
	}
	if t.Implements(sizerType) || reflect.PointerTo(t).Implements(sizerType) {
		return true
	}
	switch t.Kind() {
	case reflect.String, reflect.Slice, reflect.Pointer, reflect.Map,
		reflect.Chan, reflect.Interface:
		return true
	case reflect.Array:
		return typeCanOwn(t.Elem())
	case reflect.Struct:
		for i := 0; i < t.NumField(); i++ {
			if typeCanOwn(t.Field(i).Type) {
				return true
			}
		}
		return false
	default:
		return false
	}
}
