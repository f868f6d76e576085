// Package layout centralizes documented knowledge about the in-memory
// layout of Go runtime data structures. Every constant and shadow struct
// in this package mirrors a structure the runtime does not export, pinned
// to the layout shipped with go1.24. The init check in the root package
// guards the assumptions that can be checked; the rest are estimates and
// are documented as such at the sites that use them.
package layout

import (
	"reflect"
	"unsafe"
)

// PtrSize is the size of a machine pointer on the current platform.
const PtrSize = unsafe.Sizeof(uintptr(0))

// Descriptor sizes of the built-in reference types. These are the inline
// parts that live inside a struct field or variable; the heap they point
// at is accounted separately.
const (
	StringHeaderSize   = unsafe.Sizeof("")
	SliceHeaderSize    = unsafe.Sizeof([]byte(nil))
	InterfaceSize      = unsafe.Sizeof(any(nil))
	MapDescriptorSize  = unsafe.Sizeof(map[int]int(nil))
	ChanDescriptorSize = unsafe.Sizeof(chan int(nil))
	FuncDescriptorSize = unsafe.Sizeof((func())(nil))
)

// eface mirrors the runtime representation of an empty interface value.
type eface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

// EfaceData returns the data word of an interface value. For types that
// are not pointer shaped this is the address of the heap cell the value
// was boxed into.
func EfaceData(v any) unsafe.Pointer {
	return (*eface)(unsafe.Pointer(&v)).data
}

// DirectIface reports whether values of kind k are stored directly in an
// interface data word instead of being boxed. Single pointer kinds are
// direct; everything else allocates a cell when placed in an interface.
// Structs that happen to be exactly one pointer wide are also stored
// directly by the runtime, so treating them as boxed overestimates by one
// word-sized cell.
func DirectIface(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Map, reflect.Chan, reflect.Func, reflect.UnsafePointer:
		return true
	}
	return false
}

// mapHeader mirrors internal/runtime/maps.Map as of go1.24, the swiss
// table implementation behind the built-in map.
type mapHeader struct {
	used        uint64
	seed        uintptr
	dirPtr      unsafe.Pointer
	dirLen      int
	globalDepth uint8
	globalShift uint8
	writing     uint8
	clearSeq    uint64
}

// Swiss table geometry. Slots are stored in groups of eight, each group
// prefixed by an eight byte control word, and the table grows once a
// group set reaches 7/8 occupancy.
const (
	MapHeaderSize      = unsafe.Sizeof(mapHeader{})
	MapGroupSlots      = 8
	MapGroupCtrlBytes  = 8
	mapMaxAvgGroupLoad = 7
)

// MapBackingBytes estimates the backing storage of a built-in map holding
// n entries with the given key and element sizes. Groups are allocated in
// powers of two, so the estimate reproduces the allocation steps of a map
// grown by insertion. A map that shrank after deletions keeps its larger
// backing, which this function cannot see; the result is a lower bound in
// that case. The small per table directory and the key/elem indirection
// the runtime applies above 128 byte slots are ignored.
func MapBackingBytes(n int, keySize, elemSize uintptr) uintptr {
	if n <= 0 {
		return 0
	}
	slot := keySize + elemSize
	groups := NextPow2((uintptr(n) + mapMaxAvgGroupLoad - 1) / mapMaxAvgGroupLoad)
	return groups * (MapGroupCtrlBytes + MapGroupSlots*slot)
}

// chanHeader mirrors runtime.hchan as of go1.24.
type chanHeader struct {
	qcount   uint
	dataqsiz uint
	buf      unsafe.Pointer
	elemsize uint16
	synctest bool
	closed   uint32
	timer    unsafe.Pointer
	elemtype unsafe.Pointer
	sendx    uint
	recvx    uint
	recvq    waitq
	sendq    waitq
	lock     uintptr
}

type waitq struct {
	first unsafe.Pointer
	last  unsafe.Pointer
}

// ChanHeaderSize is the fixed cost of a channel, buffered or not.
const ChanHeaderSize = unsafe.Sizeof(chanHeader{})

// ChanBytes returns the heap cost of a channel with the given buffer
// capacity and element size. The ring buffer is allocated eagerly at
// make time, so capacity is the honest measure regardless of how many
// elements are queued.
func ChanBytes(capacity int, elemSize uintptr) uintptr {
	return ChanHeaderSize + uintptr(capacity)*elemSize
}

// NextPow2 returns the smallest power of two greater than or equal to n.
func NextPow2(n uintptr) uintptr {
	if n == 0 {
		return 0
	}
	p := uintptr(1)
	for p < n {
		p <<= 1
	}
	return p
}
