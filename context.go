package deepsize

import "unsafe"

// Context tracks which heap allocations have already been attributed
// during a single measurement. Passing one context through a series of
// calls makes shared allocations count once across the whole series;
// a fresh context starts the accounting over.
//
// A Context is not safe for concurrent use. The object graph must not be
// mutated while it is being measured.
type Context struct {
	seen map[uintptr]struct{}
}

// NewContext creates a new empty Context instance.
func NewContext() *Context {
	return &Context{seen: make(map[uintptr]struct{})}
}

// Visit records the allocation at p as counted and reports whether this
// is the first time it has been seen. Callers add an allocation's bytes
// only when Visit returns true. A nil p is never counted.
func (c *Context) Visit(p unsafe.Pointer) bool {
	if p == nil {
		return false
	}
	a := uintptr(p)
	if _, ok := c.seen[a]; ok {
		return false
	}
	c.seen[a] = struct{}{}
	return true
}

// Visited reports whether the allocation at p has already been counted,
// without recording it.
func (c *Context) Visited(p unsafe.Pointer) bool {
	if p == nil {
		return true
	}
	_, ok := c.seen[uintptr(p)]
	return ok
}

// Reset forgets every allocation seen so far, so the context can be
// reused for an unrelated measurement without reallocating.
func (c *Context) Reset() {
	clear(c.seen)
}
