package deepsize

import (
	"reflect"
	"sync"
	"unsafe"

	"github.com/genc-murat/deepsize/internal/layout"
)

// sync.Map has two possible representations chosen at build time. The
// default since go1.24 is a hash trie; GOEXPERIMENT=nosynchashtriemap
// restores the older read map plus dirty map form. Neither is observable
// through the public API, but the two Map structs differ in size, so the
// build's variant can be read off reflect. Mutex fields appear in the
// shadows as their plain byte footprint.

// syncMapTrieShadow mirrors sync.Map backed by internal/sync.HashTrieMap.
type syncMapTrieShadow struct {
	inited   uint32
	initMu   [8]byte
	root     unsafe.Pointer
	keyHash  uintptr
	valEqual uintptr
	seed     uintptr
}

// syncMapMutexShadow mirrors the read/dirty sync.Map.
type syncMapMutexShadow struct {
	mu     [8]byte
	read   unsafe.Pointer
	dirty  map[any]unsafe.Pointer
	misses int
}

// trieEntryShadow mirrors internal/sync.HashTrieMap's entry node with
// both type parameters at any, which is how sync.Map instantiates it.
type trieEntryShadow struct {
	isEntry  bool
	overflow unsafe.Pointer
	key      any
	value    any
}

// trieIndirectShadow mirrors the sixteen way branch node of the trie.
// One branch node is shared by up to sixteen children, so models charge
// a sixteenth of it per entry.
type trieIndirectShadow struct {
	isEntry  bool
	dead     bool
	mu       [8]byte
	parent   unsafe.Pointer
	children [16]unsafe.Pointer
}

// syncMapEntryShadow mirrors the entry cell of the read/dirty variant.
type syncMapEntryShadow struct {
	p unsafe.Pointer
}

var syncMapTrie bool

func init() {
	t := reflect.TypeOf((*sync.Map)(nil)).Elem()
	syncMapTrie = DistinguishBySize[syncMapTrieShadow, syncMapMutexShadow](t.Size())
	setModel(t, model{fn: syncMapChildren})
}

// syncMapChildren models a sync.Map value. Both variants store keys and
// values as interfaces, so the headers are part of the charged node or
// slot and the boxes are charged through OfBoxed. Entries that only the
// dirty map still holds, and trie nodes emptied by deletion, are not
// observable through Range; the result is a lower bound during churn.
func syncMapChildren(v any, ctx *Context) uintptr {
	rv := reflect.ValueOf(v)
	p := reflect.New(rv.Type())
	p.Elem().Set(rv)
	m := p.Interface().(*sync.Map)

	var n, size uintptr
	m.Range(func(k, val any) bool {
		n++
		size += OfBoxed(ctx, k) + OfBoxed(ctx, val)
		return true
	})
	if n == 0 {
		return 0
	}
	if syncMapTrie {
		size += n * unsafe.Sizeof(trieEntryShadow{})
		size += n * unsafe.Sizeof(trieIndirectShadow{}) / 16
	} else {
		size += layout.MapHeaderSize
		size += layout.MapBackingBytes(int(n), layout.InterfaceSize, layout.PtrSize)
		size += n * unsafe.Sizeof(syncMapEntryShadow{})
	}
	return size
}
