package token

import "github.com/dolthub/swiss"

// Interner is a string-interning table: Intern returns a single shared
// backing value for equal strings. It is a standalone type; the Scanner
// does not use it, and scanned token values carry their own strings. It
// is not safe for concurrent use.
type Interner struct {
	m *swiss.Map[string, *string]
}

// NewInterner returns an Interner with initial capacity for at least size
// distinct strings.
func NewInterner(size int) *Interner {
	if size < 8 {
		size = 8
	}
	return &Interner{m: swiss.NewMap[string, *string](uint32(size))}
}

// Intern returns the canonical *string for s, appending s as the canonical
// copy the first time it is seen.
func (in *Interner) Intern(s string) *string {
	if p, ok := in.m.Get(s); ok {
		return p
	}
	p := new(string)
	*p = s
	in.m.Put(s, p)
	return p
}

// Len returns the number of distinct strings interned so far.
func (in *Interner) Len() int { return in.m.Count() }
