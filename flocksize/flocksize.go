// Package flocksize registers a deep-size model for gofrs/flock.
//
// A file lock owns its path string and nothing else measurable: the
// descriptor behind it belongs to the kernel, not the heap.
//
// Import the package for its side effects:
//
//	import _ "github.com/genc-murat/deepsize/flocksize"
package flocksize

import (
	"github.com/gofrs/flock"

	"github.com/genc-murat/deepsize"
)

func init() {
	deepsize.Register((*flock.Flock)(nil), deepsize.Pointee(func(v any, ctx *deepsize.Context) uintptr {
		return deepsize.OfChildren(ctx, v.(*flock.Flock).Path())
	}))
}
