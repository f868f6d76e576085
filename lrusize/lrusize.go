// Package lrusize registers deep-size models for the generic caches of
// hashicorp/golang-lru/v2.
//
// The cache internals are one map from key to entry pointer plus an
// intrusive list threaded through the entries, none of it exported, so
// the models mirror the v2.0.7 layout in shadow structs and read the
// live state through Len, Keys and Peek. Peek does not touch recency,
// so measuring a cache does not reorder it.
//
// Models are per instantiation: call Register once for each key/value
// type pair the process caches.
package lrusize

import (
	"time"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/hashicorp/golang-lru/v2/simplelru"

	"github.com/genc-murat/deepsize"
	"github.com/genc-murat/deepsize/internal/layout"
)

// entryShadow mirrors the internal entry type shared by the plain and
// expirable caches of golang-lru v2.0.7. Every cached pair owns one.
type entryShadow[K comparable, V any] struct {
	next, prev unsafe.Pointer
	list       unsafe.Pointer
	key        K
	value      V
	expiresAt  time.Time
	bucket     uint8
}

// listShadow mirrors the internal list header: a sentinel entry and the
// length.
type listShadow[K comparable, V any] struct {
	root entryShadow[K, V]
	n    int
}

// Register installs models for *lru.Cache[K, V] and the underlying
// *simplelru.LRU[K, V]. The eviction buffers the outer cache keeps for
// callback delivery are assumed empty, which they are outside of an
// eviction in flight.
func Register[K comparable, V any]() {
	deepsize.Register((*lru.Cache[K, V])(nil), deepsize.Pointee(func(v any, ctx *deepsize.Context) uintptr {
		c := v.(*lru.Cache[K, V])
		return unsafe.Sizeof(simplelru.LRU[K, V]{}) + lruChildren(ctx, c.Len(), c.Keys(), c.Peek)
	}))
	deepsize.Register((*simplelru.LRU[K, V])(nil), deepsize.Pointee(func(v any, ctx *deepsize.Context) uintptr {
		l := v.(*simplelru.LRU[K, V])
		return lruChildren(ctx, l.Len(), l.Keys(), l.Peek)
	}))
}

// lruChildren prices the entry list, the lookup map and the stored keys
// and values of one LRU with n live entries.
func lruChildren[K comparable, V any](ctx *deepsize.Context, n int, keys []K, peek func(K) (V, bool)) uintptr {
	size := unsafe.Sizeof(listShadow[K, V]{}) +
		layout.MapHeaderSize +
		layout.MapBackingBytes(n, unsafe.Sizeof(*new(K)), layout.PtrSize) +
		uintptr(n)*unsafe.Sizeof(entryShadow[K, V]{})
	for _, k := range keys {
		size += deepsize.OfChildren(ctx, k)
		if val, ok := peek(k); ok {
			size += deepsize.OfChildren(ctx, val)
		}
	}
	return size
}
