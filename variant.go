package deepsize

import "unsafe"

// DistinguishBySize decides which of two candidate layouts an opaque
// structure was built with by comparing its observed size against shadow
// A and shadow B. It returns true when the observed size matches A and
// false otherwise, so B is the arm a future, unrecognized layout falls
// into.
//
// This is a last resort for structures whose representation is fixed at
// build time and leaks nothing else observable. It panics when the two
// shadows have the same size, because then the observed size proves
// nothing and a model built on the answer would be guessing.
func DistinguishBySize[A, B any](observed uintptr) bool {
	var a A
	var b B
	sa, sb := unsafe.Sizeof(a), unsafe.Sizeof(b)
	if sa == sb {
		panic("deepsize: candidate layouts are not distinguishable by size")
	}
	return observed == sa
}
