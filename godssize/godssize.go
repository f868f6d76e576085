// Package godssize registers deep-size models for the container types of
// github.com/emirpasic/gods.
//
// The gods containers keep their backing stores in unexported fields, so
// the models rebuild the heap arithmetic from the public API: the element
// count drives the bucket, node and slot costs, and the stored keys and
// values are charged through their interface boxes, once per traversal
// context no matter how many containers share them.
//
// The models assume containers built by the library's constructors. A
// zero valued container that never allocated its internals is charged as
// if it had, which overstates it by a few words.
//
// Import the package for its side effects:
//
//	import _ "github.com/genc-murat/deepsize/godssize"
package godssize

import (
	"unsafe"

	"github.com/emirpasic/gods/lists/arraylist"
	"github.com/emirpasic/gods/lists/doublylinkedlist"
	"github.com/emirpasic/gods/maps/linkedhashmap"
	"github.com/emirpasic/gods/maps/treemap"
	"github.com/emirpasic/gods/sets/hashset"
	"github.com/emirpasic/gods/trees/btree"
	"github.com/emirpasic/gods/trees/redblacktree"

	"github.com/genc-murat/deepsize"
	"github.com/genc-murat/deepsize/internal/layout"
)

func init() {
	deepsize.Register(linkedhashmap.Map{}, linkedHashMapChildren)
	deepsize.Register(treemap.Map{}, treeMapChildren)
	deepsize.Register(redblacktree.Tree{}, redBlackTreeChildren)
	deepsize.Register(btree.Tree{}, bTreeChildren)
	deepsize.Register(arraylist.List{}, arrayListChildren)
	deepsize.Register(hashset.Set{}, hashSetChildren)
}

// listElement mirrors the unexported element type of
// gods/lists/doublylinkedlist as of v1.18.1.
type listElement struct {
	value any
	prev  unsafe.Pointer
	next  unsafe.Pointer
}

// linkedHashMapChildren prices the lookup table, the insertion order list
// with one node per key, and the boxed keys and values. The key box is
// stored in both the table and the list but only ever charged once.
func linkedHashMapChildren(v any, ctx *deepsize.Context) uintptr {
	m := v.(linkedhashmap.Map)
	n := m.Size()
	size := layout.MapHeaderSize +
		layout.MapBackingBytes(n, layout.InterfaceSize, layout.InterfaceSize) +
		unsafe.Sizeof(doublylinkedlist.List{}) +
		uintptr(n)*unsafe.Sizeof(listElement{})
	m.Each(func(key, value any) {
		size += deepsize.OfBoxed(ctx, key) + deepsize.OfBoxed(ctx, value)
	})
	return size
}

func treeMapChildren(v any, ctx *deepsize.Context) uintptr {
	m := v.(treemap.Map)
	size := unsafe.Sizeof(redblacktree.Tree{}) +
		uintptr(m.Size())*unsafe.Sizeof(redblacktree.Node{})
	m.Each(func(key, value any) {
		size += deepsize.OfBoxed(ctx, key) + deepsize.OfBoxed(ctx, value)
	})
	return size
}

func redBlackTreeChildren(v any, ctx *deepsize.Context) uintptr {
	t := v.(redblacktree.Tree)
	size := uintptr(t.Size()) * unsafe.Sizeof(redblacktree.Node{})
	it := t.Iterator()
	for it.Next() {
		size += deepsize.OfBoxed(ctx, it.Key()) + deepsize.OfBoxed(ctx, it.Value())
	}
	return size
}

// bTreeChildren hands the node graph to the structural walk. The btree
// package exports its nodes and entries, so reflection sees the real
// slice capacities instead of an estimate; the model exists to keep the
// comparator function out of the walk.
func bTreeChildren(v any, ctx *deepsize.Context) uintptr {
	t := v.(btree.Tree)
	return deepsize.OfChildren(ctx, t.Root)
}

func arrayListChildren(v any, ctx *deepsize.Context) uintptr {
	l := v.(arraylist.List)
	size := arrayListCap(l.Size()) * layout.InterfaceSize
	l.Each(func(_ int, value any) {
		size += deepsize.OfBoxed(ctx, value)
	})
	return size
}

func hashSetChildren(v any, ctx *deepsize.Context) uintptr {
	s := v.(hashset.Set)
	size := layout.MapHeaderSize + layout.MapBackingBytes(s.Size(), layout.InterfaceSize, 0)
	for _, item := range s.Values() {
		size += deepsize.OfBoxed(ctx, item)
	}
	return size
}

// arrayListCap reproduces the arraylist growth schedule for a list built
// by single element appends: whenever size reaches capacity the backing
// array is reallocated to twice capacity plus two, and resizing sets the
// slice length to its capacity. Bulk appends and the shrink on removal
// leave capacities the public API cannot reveal, so the result is a
// documented estimate for those.
func arrayListCap(n int) uintptr {
	if n <= 0 {
		return 0
	}
	c := uintptr(2)
	for c <= uintptr(n) {
		c = 2 * (c + 1)
	}
	return c
}
