// Package btreesize registers a deep-size model for google/btree.
//
// A B-tree does not expose its nodes, its degree or its fill ratio, so
// the model is an estimate built from the tree length: nodes are assumed
// half way between the minimum and maximum fill, with their item and
// child arrays allocated at capacity, and every tree is assumed to own
// the default freelist its constructor builds. Items themselves are
// charged exactly, through their interface boxes.
//
// The estimate needs the degree the trees were built with, which the
// library does not reveal either, so registration is explicit rather
// than an import side effect. Trees of mixed degrees in one process
// share the single registered model.
package btreesize

import (
	"fmt"
	"unsafe"

	"github.com/google/btree"

	"github.com/genc-murat/deepsize"
	"github.com/genc-murat/deepsize/internal/layout"
)

// nodeShadow mirrors the unexported node type of google/btree v1.0.1:
// an item slice, a child slice and the copy-on-write context pointer.
type nodeShadow struct {
	items    []btree.Item
	children []unsafe.Pointer
	cow      unsafe.Pointer
}

// Register installs the model for *btree.BTree, estimating node storage
// for trees built with btree.New(degree). Degrees below 2 are rejected,
// matching the constructor.
func Register(degree int) {
	if degree < 2 {
		panic(fmt.Sprintf("btreesize: bad degree %d", degree))
	}
	maxItems := 2*degree - 1
	minItems := degree - 1
	perNode := unsafe.Sizeof(nodeShadow{}) +
		uintptr(maxItems)*layout.InterfaceSize +
		uintptr(maxItems+1)*layout.PtrSize

	deepsize.Register((*btree.BTree)(nil), deepsize.Pointee(func(v any, ctx *deepsize.Context) uintptr {
		t := v.(*btree.BTree)
		size := fixedOverhead
		if n := t.Len(); n > 0 {
			avg := (maxItems + minItems) / 2
			nodes := uintptr((n + avg - 1) / avg)
			size += nodes * perNode
		}
		t.Ascend(func(i btree.Item) bool {
			size += deepsize.OfBoxed(ctx, i)
			return true
		})
		return size
	}))
}

// fixedOverhead is what btree.New allocates before the first insert: the
// copy-on-write context and a default sized freelist. Trees built with
// NewWithFreeList share a freelist this cannot see.
var fixedOverhead = layout.PtrSize +
	unsafe.Sizeof(btree.FreeList{}) +
	btree.DefaultFreeListSize*layout.PtrSize
