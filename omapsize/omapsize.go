// Package omapsize registers a deep-size model for wk8/go-ordered-map/v2.
//
// An ordered map is a lookup map from key to pair plus a generic linked
// list threading the pairs in insertion order. Pairs and list cells are
// exported types, so their sizes come straight from the libraries; only
// the counts are reconstructed, from Len and the Oldest iteration.
//
// Models are per instantiation: call Register once for each key/value
// type pair in use.
package omapsize

import (
	"unsafe"

	list "github.com/bahlo/generic-list-go"
	orderedmap "github.com/wk8/go-ordered-map/v2"

	"github.com/genc-murat/deepsize"
	"github.com/genc-murat/deepsize/internal/layout"
)

// Register installs the model for OrderedMap[K, V]. Maps built by the
// library's constructor are priced exactly; a zero valued OrderedMap is
// charged as if its internals were allocated.
func Register[K comparable, V any]() {
	deepsize.Register(orderedmap.OrderedMap[K, V]{}, func(v any, ctx *deepsize.Context) uintptr {
		om := v.(orderedmap.OrderedMap[K, V])
		n := om.Len()
		size := layout.MapHeaderSize +
			layout.MapBackingBytes(n, unsafe.Sizeof(*new(K)), layout.PtrSize) +
			unsafe.Sizeof(list.List[*orderedmap.Pair[K, V]]{}) +
			uintptr(n)*(unsafe.Sizeof(orderedmap.Pair[K, V]{})+
				unsafe.Sizeof(list.Element[*orderedmap.Pair[K, V]]{}))
		for p := om.Oldest(); p != nil; p = p.Next() {
			size += deepsize.OfChildren(ctx, p.Key) + deepsize.OfChildren(ctx, p.Value)
		}
		return size
	})
}
