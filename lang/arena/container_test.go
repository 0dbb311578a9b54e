package arena_test

import (
	"testing"

	"github.com/mna/raviast/lang/arena"
	"github.com/stretchr/testify/require"
)

func TestContainerReleaseDropsAllPools(t *testing.T) {
	c := arena.NewContainer()
	arena.Alloc[poolInt](c.Nodes)
	arena.Alloc[poolInt](c.Scopes)
	arena.Alloc[poolInt](c.Symbols)

	require.False(t, c.Released())
	c.Release()
	require.True(t, c.Released())
	require.True(t, c.Nodes.Released())
	require.True(t, c.Scopes.Released())
	require.True(t, c.Symbols.Released())
}

func TestContainerReleaseIdempotent(t *testing.T) {
	c := arena.NewContainer()
	c.Release()
	require.True(t, c.Released())
	c.Release() // must not panic
	require.True(t, c.Released())
}
