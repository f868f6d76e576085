// Package gjsonsize teaches the deepsize engine about gjson results.
// Importing it registers the model:
//
//	import _ "github.com/genc-murat/deepsize/gjsonsize"
//
// A gjson.Result does not own a parsed tree. It owns at most three
// allocations: the Raw fragment of the source document it was cut from,
// the unescaped Str form of a string value, and the Indexes slice some
// queries attach. Sub-results are carved out of the same document on
// demand, so measuring a Result never recurses into its elements; their
// text is already inside Raw.
//
// Results taken from one document share its backing array. The shared
// backing is counted once when two results start at the same byte, and
// when Str is a cut of Raw it is not counted again. Results cut from
// the same document at different offsets are each charged their own
// view, an acknowledged overestimate of address-based deduplication.
package gjsonsize

import (
	"unsafe"

	"github.com/tidwall/gjson"

	"github.com/genc-murat/deepsize"
)

func init() {
	deepsize.Register(gjson.Result{}, children)
}

// children accounts one gjson.Result by variant. Every variant owns its
// Raw fragment; only the String variant can own a second, unescaped
// copy of the text.
func children(v any, ctx *deepsize.Context) uintptr {
	r := v.(gjson.Result)

	size := deepsize.OfChildren(ctx, r.Raw)
	if r.Type == gjson.String && !within(r.Str, r.Raw) {
		size += deepsize.OfChildren(ctx, r.Str)
	}
	size += deepsize.OfChildren(ctx, r.Indexes)
	return size
}

// within reports whether s is a cut of outer's backing array. gjson
// returns Str as a slice of the document whenever the value needed no
// unescaping, and a fresh allocation otherwise.
func within(s, outer string) bool {
	if len(s) == 0 {
		return true
	}
	if len(outer) == 0 {
		return false
	}
	sp := uintptr(unsafe.Pointer(unsafe.StringData(s)))
	op := uintptr(unsafe.Pointer(unsafe.StringData(outer)))
	return sp >= op && sp+uintptr(len(s)) <= op+uintptr(len(outer))
}
