package arena

import "reflect"

// releaser is the subset of Arena[T]'s API that Pool needs without knowing
// T, so a single Pool can hold one Arena per concrete type it has seen.
type releaser interface {
	Release()
	Released() bool
}

// Pool is a bump allocator for more than one concrete type, something a
// single Arena[T] cannot be since Go has no tagged union to carve node
// types out of one block the way the reference C allocator does. Each
// distinct type requested through Alloc gets its own Arena, created lazily
// on first use; Release drops all of them together.
//
// Not safe for concurrent use.
type Pool struct {
	arenas map[reflect.Type]releaser
}

// NewPool returns an empty pool.
func NewPool() *Pool {
	return &Pool{arenas: make(map[reflect.Type]releaser)}
}

// Alloc returns a pointer to a new zero-valued T, carved out of p's arena
// for T. The returned pointer remains valid until p is released.
func Alloc[T any](p *Pool) *T {
	var zero T
	t := reflect.TypeOf(zero)

	a, ok := p.arenas[t]
	if !ok {
		na := New[T]()
		p.arenas[t] = na
		a = na
	}
	return a.(*Arena[T]).Alloc()
}

// Release releases every arena held by p. Idempotent.
func (p *Pool) Release() {
	if p.arenas == nil {
		return
	}
	for _, a := range p.arenas {
		a.Release()
	}
	p.arenas = nil
}

// Released reports whether Release has already been called.
func (p *Pool) Released() bool { return p.arenas == nil }
