package arena_test

import (
	"testing"

	"github.com/mna/raviast/lang/arena"
	"github.com/stretchr/testify/require"
)

type poolInt struct{ v int }
type poolString struct{ v string }

func TestPoolAllocSegregatesByType(t *testing.T) {
	p := arena.NewPool()
	a := arena.Alloc[poolInt](p)
	a.v = 1
	b := arena.Alloc[poolString](p)
	b.v = "x"

	require.Equal(t, 1, a.v)
	require.Equal(t, "x", b.v)
}

func TestPoolAllocDistinctPointers(t *testing.T) {
	p := arena.NewPool()
	seen := make(map[*poolInt]bool)
	for i := 0; i < 1000; i++ {
		v := arena.Alloc[poolInt](p)
		v.v = i
		require.False(t, seen[v])
		seen[v] = true
	}
}

func TestPoolReleaseIdempotent(t *testing.T) {
	p := arena.NewPool()
	arena.Alloc[poolInt](p)
	require.False(t, p.Released())
	p.Release()
	require.True(t, p.Released())
	p.Release() // must not panic
	require.True(t, p.Released())
}
