package setsize

import (
	"reflect"
	"testing"
	"unsafe"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/stretchr/testify/assert"

	"github.com/genc-murat/deepsize"
	"github.com/genc-murat/deepsize/internal/layout"
)

func init() {
	Register[string]()
}

func TestThreadSafeSet(t *testing.T) {
	s := mapset.NewSet[string]()
	s.Add("alpha")
	s.Add("bravo")

	want := reflect.TypeOf(s).Elem().Size() +
		layout.MapHeaderSize +
		layout.MapBackingBytes(2, unsafe.Sizeof(""), 0) +
		uintptr(len("alpha")+len("bravo"))
	assert.Equal(t, want, deepsize.OfChildren(deepsize.NewContext(), s))
}

func TestThreadUnsafeSet(t *testing.T) {
	s := mapset.NewThreadUnsafeSet[string]()
	s.Add("alpha")

	want := reflect.TypeOf(s).Elem().Size() +
		layout.MapHeaderSize +
		layout.MapBackingBytes(1, unsafe.Sizeof(""), 0) +
		uintptr(len("alpha"))
	assert.Equal(t, want, deepsize.OfChildren(deepsize.NewContext(), s))
}

func TestSharedContextCountsOnce(t *testing.T) {
	s := mapset.NewSet[string]("alpha", "bravo", "delta")

	ctx := deepsize.NewContext()
	assert.NotZero(t, deepsize.OfChildren(ctx, s))
	assert.Zero(t, deepsize.OfChildren(ctx, s))
}
