package slab

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"

	"github.com/genc-murat/deepsize"
)

func TestInsertAndGet(t *testing.T) {
	s := New[string]()

	t.Run("Insert", func(t *testing.T) {
		assert.Equal(t, 0, s.Insert("first"))
		assert.Equal(t, 1, s.Insert("second"))
		assert.Equal(t, 2, s.Len())
	})

	t.Run("Get", func(t *testing.T) {
		v, ok := s.Get(0)
		assert.True(t, ok)
		assert.Equal(t, "first", v)
	})

	t.Run("GetVacant", func(t *testing.T) {
		_, ok := s.Get(5)
		assert.False(t, ok)
		_, ok = s.Get(-1)
		assert.False(t, ok)
	})
}

func TestDeleteReusesSlots(t *testing.T) {
	s := New[string]()
	k0 := s.Insert("a")
	k1 := s.Insert("b")
	s.Insert("c")

	t.Run("Delete", func(t *testing.T) {
		v, ok := s.Delete(k1)
		assert.True(t, ok)
		assert.Equal(t, "b", v)
		assert.Equal(t, 2, s.Len())

		_, ok = s.Get(k1)
		assert.False(t, ok)
	})

	t.Run("DeleteTwice", func(t *testing.T) {
		_, ok := s.Delete(k1)
		assert.False(t, ok)
	})

	t.Run("FreedSlotComesBackFirst", func(t *testing.T) {
		assert.Equal(t, k1, s.Insert("d"))
		assert.Equal(t, 3, s.Len())
	})

	t.Run("FreeListIsAStack", func(t *testing.T) {
		s.Delete(k0)
		s.Delete(k1)
		assert.Equal(t, k1, s.Insert("e"))
		assert.Equal(t, k0, s.Insert("f"))
	})
}

func TestRange(t *testing.T) {
	s := New[int]()
	for i := 0; i < 5; i++ {
		s.Insert(i * 10)
	}
	s.Delete(2)

	var keys []int
	s.Range(func(key, value int) bool {
		keys = append(keys, key)
		assert.Equal(t, key*10, value)
		return true
	})
	assert.Equal(t, []int{0, 1, 3, 4}, keys)

	t.Run("StopsWhenFReturnsFalse", func(t *testing.T) {
		count := 0
		s.Range(func(int, int) bool {
			count++
			return false
		})
		assert.Equal(t, 1, count)
	})
}

func TestGetStats(t *testing.T) {
	s := NewWithCapacity[int](8)
	s.Insert(1)
	s.Insert(2)
	s.Insert(3)
	s.Delete(1)

	stats := s.GetStats()
	assert.Equal(t, 2, stats.Occupied)
	assert.Equal(t, 1, stats.Vacant)
	assert.Equal(t, 8, stats.Capacity)
}

func TestDeepSizeChildren(t *testing.T) {
	slotSize := unsafe.Sizeof(entry[string]{})

	t.Run("EmptyOwnsNothing", func(t *testing.T) {
		s := New[string]()
		assert.Equal(t, uintptr(0), s.DeepSizeOfChildren(deepsize.NewContext()))
	})

	t.Run("CapacityDrivesBackingCost", func(t *testing.T) {
		s := NewWithCapacity[string](8)
		s.Insert("hello")

		want := 8*slotSize + uintptr(len("hello"))
		assert.Equal(t, want, s.DeepSizeOfChildren(deepsize.NewContext()))
	})

	t.Run("DeleteKeepsBackingDropsChildren", func(t *testing.T) {
		s := NewWithCapacity[string](8)
		k := s.Insert("hello")
		s.Insert("world")
		before := s.DeepSizeOfChildren(deepsize.NewContext())

		s.Delete(k)
		after := s.DeepSizeOfChildren(deepsize.NewContext())
		assert.Equal(t, before-uintptr(len("hello")), after)
	})

	t.Run("MeasuredThroughEngine", func(t *testing.T) {
		s := NewWithCapacity[int64](4)
		s.Insert(7)

		want := unsafe.Sizeof(s) + unsafe.Sizeof(*s) + 4*unsafe.Sizeof(entry[int64]{})
		assert.Equal(t, want, deepsize.Of(s))
	})
}
