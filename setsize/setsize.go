// Package setsize registers deep-size models for deckarep/golang-set/v2.
//
// Both set flavors are a struct{} valued map, reached through the Set
// interface, with the thread safe one adding a lock around it. Their
// concrete types are unexported, so registration takes the types from
// throwaway constructor values and the model speaks to live sets through
// the interface.
//
// Models are per instantiation: call Register once for each element type
// the process keeps sets of.
package setsize

import (
	"unsafe"

	mapset "github.com/deckarep/golang-set/v2"

	"github.com/genc-murat/deepsize"
	"github.com/genc-murat/deepsize/internal/layout"
)

// Register installs one model for the thread safe and one for the thread
// unsafe set of element type T.
func Register[T comparable]() {
	fn := deepsize.Pointee(func(v any, ctx *deepsize.Context) uintptr {
		s := v.(mapset.Set[T])
		size := layout.MapHeaderSize +
			layout.MapBackingBytes(s.Cardinality(), unsafe.Sizeof(*new(T)), 0)
		s.Each(func(item T) bool {
			size += deepsize.OfChildren(ctx, item)
			return false
		})
		return size
	})
	deepsize.Register(mapset.NewSet[T](), fn)
	deepsize.Register(mapset.NewThreadUnsafeSet[T](), fn)
}
