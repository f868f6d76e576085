// Package fastcachesize registers a deep-size model for
// VictoriaMetrics/fastcache.
//
// fastcache already meters its own chunk arena, so the model reads
// Stats.BytesSize instead of reconstructing anything. Chunks are often
// mmapped outside the Go heap; the cache owns them all the same, so they
// are reported. The per bucket index maps are not part of the figure,
// making the result a documented underestimate, typically by a few
// percent of the arena.
//
// Import the package for its side effects:
//
//	import _ "github.com/genc-murat/deepsize/fastcachesize"
package fastcachesize

import (
	"github.com/VictoriaMetrics/fastcache"

	"github.com/genc-murat/deepsize"
)

func init() {
	deepsize.Register((*fastcache.Cache)(nil), deepsize.Pointee(func(v any, _ *deepsize.Context) uintptr {
		var s fastcache.Stats
		v.(*fastcache.Cache).UpdateStats(&s)
		return uintptr(s.BytesSize)
	}))
}
