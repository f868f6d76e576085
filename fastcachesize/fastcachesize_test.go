package fastcachesize

import (
	"reflect"
	"testing"

	"github.com/VictoriaMetrics/fastcache"
	"github.com/stretchr/testify/assert"

	"github.com/genc-murat/deepsize"
)

func TestTracksArenaBytes(t *testing.T) {
	c := fastcache.New(1 << 20)
	defer c.Reset()
	c.Set([]byte("alpha"), []byte("uno"))
	c.Set([]byte("bravo"), []byte("dos"))

	var s fastcache.Stats
	c.UpdateStats(&s)
	assert.NotZero(t, s.BytesSize)

	want := reflect.TypeOf(c).Elem().Size() + uintptr(s.BytesSize)
	assert.Equal(t, want, deepsize.OfChildren(deepsize.NewContext(), c))
}

func TestSharedContextCountsOnce(t *testing.T) {
	c := fastcache.New(1 << 20)
	defer c.Reset()
	c.Set([]byte("alpha"), []byte("uno"))

	ctx := deepsize.NewContext()
	assert.NotZero(t, deepsize.OfChildren(ctx, c))
	assert.Zero(t, deepsize.OfChildren(ctx, c))
}
