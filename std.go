package deepsize

import (
	"net"
	"os"
	"reflect"
	"sync"
	"time"
)

// Standard library types whose referents belong to the runtime, the
// kernel or process global state rather than to the value. Declaring
// them zero keeps the walk out of file descriptors and shared zone data.
func init() {
	RegisterZero(
		time.Time{},
		time.Duration(0),
		time.Month(0),
		time.Weekday(0),
		time.Location{},
		(*time.Location)(nil),
	)
	RegisterZero(
		net.TCPConn{},
		net.UDPConn{},
		net.UnixConn{},
		net.IPConn{},
		net.TCPListener{},
	)
	RegisterZero(os.File{})

	// These carry locks, so their types are named without building a
	// value go vet would object to.
	registerTypeZero(reflect.TypeOf((*net.UnixListener)(nil)).Elem())
	registerTypeZero(reflect.TypeOf((*sync.Pool)(nil)).Elem())
}
