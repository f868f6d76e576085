package deepsize

import (
	"reflect"
	"sync"
)

// SizeFunc computes the heap bytes owned by the children of v, excluding
// v's own inline representation. The value passed to the function has the
// registered type, or a pointer to it when the pointer type itself was
// registered.
type SizeFunc func(v any, ctx *Context) uintptr

// model is a registered description of one concrete type. Either fn is
// set, or the children size is the fixed constant.
type model struct {
	fixed uintptr
	fn    SizeFunc
}

// models maps reflect.Type to model. Lookups far outnumber registrations,
// which mostly happen in init functions, so a sync.Map fits the pattern.
var models sync.Map

// Register installs fn as the children model for sample's dynamic type.
// The model takes precedence over a Sizer implementation and over the
// structural walk, and a later registration for the same type replaces an
// earlier one. Registering with a nil sample or fn panics.
//
// The sample only supplies the type. Use a typed nil pointer, such as
// (*T)(nil), to register a pointer type without constructing a T.
func Register(sample any, fn SizeFunc) {
	if sample == nil {
		panic("deepsize: Register called with nil sample")
	}
	if fn == nil {
		panic("deepsize: Register called with nil SizeFunc")
	}
	setModel(reflect.TypeOf(sample), model{fn: fn})
}

// RegisterFixed declares that values of each sample's dynamic type always
// own exactly size bytes beyond their own representation, without looking
// at the value. Registering with no samples or a nil sample panics.
func RegisterFixed(size uintptr, samples ...any) {
	if len(samples) == 0 {
		panic("deepsize: RegisterFixed called with no samples")
	}
	for _, s := range samples {
		if s == nil {
			panic("deepsize: RegisterFixed called with nil sample")
		}
		setModel(reflect.TypeOf(s), model{fixed: size})
	}
}

// RegisterZero declares that values of each sample's dynamic type own no
// heap at all beyond their own representation. This is the usual shape
// for handle types whose referents belong to the runtime or the kernel
// rather than to the value.
func RegisterZero(samples ...any) {
	RegisterFixed(0, samples...)
}

// Pointee adapts fn for a model registered on a pointer type. It charges
// and deduplicates the cell the pointer refers to, then lets fn describe
// the cell's contents; fn receives the pointer itself. A nil pointer or
// an already counted cell costs nothing.
//
// Registering the pointer type is how containers with an unexported
// implementation get a model: the constructor's return value supplies
// the type, and fn talks to it through its public methods.
func Pointee(fn SizeFunc) SizeFunc {
	return func(v any, ctx *Context) uintptr {
		rv := reflect.ValueOf(v)
		if rv.IsNil() || !ctx.Visit(rv.UnsafePointer()) {
			return 0
		}
		return rv.Type().Elem().Size() + fn(v, ctx)
	}
}

// registerTypeZero is the internal registration path for types that
// cannot appear as a plain sample, such as lock holding structs that go
// vet refuses to see copied.
func registerTypeZero(t reflect.Type) {
	setModel(t, model{})
}

func setModel(t reflect.Type, m model) {
	models.Store(t, m)
	resetOwnCache()
}

func lookupModel(t reflect.Type) (model, bool) {
	v, ok := models.Load(t)
	if !ok {
		return model{}, false
	}
	return v.(model), true
}

// children applies the model to one value. Fixed models never touch the
// value. Function models need the value materialized as an interface,
// and fall back to the structural walk for the rare value that cannot
// be, such as an unexported, unaddressable field.
func (m model) children(v reflect.Value, ctx *Context) uintptr {
	if m.fn == nil {
		return m.fixed
	}
	x, ok := valueInterface(v)
	if !ok {
		return walkChildren(v, ctx)
	}
	return m.fn(x, ctx)
}
