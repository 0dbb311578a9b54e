package arena

// cell is one link of an intrusive singly-linked list. Declaring it as a
// struct field rather than wrapping T lets the list live inline in an
// Arena allocation instead of requiring a separate heap object per entry.
type cell[T any] struct {
	val  T
	next *cell[T]
}

// List is an append-only, intrusively linked ordered list: Add is O(1),
// forward iteration visits entries in declaration order, and reverse
// iteration visits them from most to least recently added, after a first
// O(n) walk of the whole list.
//
// The zero value is an empty, ready-to-use list.
type List[T any] struct {
	arena *Arena[cell[T]]
	head  *cell[T]
	tail  *cell[T]
	n     int
}

// NewList returns an empty list backed by its own arena.
func NewList[T any]() *List[T] {
	return &List[T]{arena: New[cell[T]]()}
}

// Add appends v to the end of the list.
func (l *List[T]) Add(v T) {
	if l.arena == nil {
		l.arena = New[cell[T]]()
	}
	c := l.arena.Alloc()
	c.val = v
	if l.tail == nil {
		l.head = c
		l.tail = c
	} else {
		l.tail.next = c
		l.tail = c
	}
	l.n++
}

// Len returns the number of entries in the list.
func (l *List[T]) Len() int { return l.n }

// Each calls f for every entry, in declaration order. It stops early if f
// returns false.
func (l *List[T]) Each(f func(T) bool) {
	for c := l.head; c != nil; c = c.next {
		if !f(c.val) {
			return
		}
	}
}

// EachReverse calls f for every entry, from most to least recently added.
// It stops early if f returns false. Because the list is only singly
// linked, every call first walks the full chain to build a reverse view,
// so stopping early does not avoid that O(n) walk.
func (l *List[T]) EachReverse(f func(T) bool) {
	if l.n == 0 {
		return
	}
	stack := make([]*cell[T], 0, l.n)
	for c := l.head; c != nil; c = c.next {
		stack = append(stack, c)
	}
	for i := len(stack) - 1; i >= 0; i-- {
		if !f(stack[i].val) {
			return
		}
	}
}

// Release discards the list's backing arena. Idempotent.
func (l *List[T]) Release() {
	if l.arena != nil {
		l.arena.Release()
	}
	l.head, l.tail, l.n = nil, nil, 0
}
