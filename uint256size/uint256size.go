// Package uint256size registers a deep-size model for holiman/uint256.
//
// A 256 bit integer is four inline words. Registering it keeps the walk
// from visiting the limbs one by one in hot paths full of them.
//
// Import the package for its side effects:
//
//	import _ "github.com/genc-murat/deepsize/uint256size"
package uint256size

import (
	"github.com/holiman/uint256"

	"github.com/genc-murat/deepsize"
)

func init() {
	deepsize.RegisterZero(uint256.Int{})
}
