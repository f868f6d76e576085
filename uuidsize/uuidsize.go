// Package uuidsize registers deep-size models for google/uuid.
//
// A UUID is sixteen inline bytes and owns no heap. Registering it lets
// the engine skip the array walk for values that appear in bulk, such
// as UUID keyed maps.
//
// Import the package for its side effects:
//
//	import _ "github.com/genc-murat/deepsize/uuidsize"
package uuidsize

import (
	"github.com/google/uuid"

	"github.com/genc-murat/deepsize"
)

func init() {
	deepsize.RegisterZero(uuid.UUID{}, uuid.NullUUID{})
}
