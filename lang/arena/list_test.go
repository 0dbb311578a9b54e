package arena_test

import (
	"testing"

	"github.com/mna/raviast/lang/arena"
	"github.com/stretchr/testify/require"
)

func TestListEachOrder(t *testing.T) {
	l := arena.NewList[string]()
	l.Add("a")
	l.Add("b")
	l.Add("c")

	var got []string
	l.Each(func(s string) bool {
		got = append(got, s)
		return true
	})
	require.Equal(t, []string{"a", "b", "c"}, got)
	require.Equal(t, 3, l.Len())
}

func TestListEachReverseFindsNewestMatch(t *testing.T) {
	type binding struct {
		name string
		id   int
	}
	l := arena.NewList[binding]()
	l.Add(binding{"x", 1})
	l.Add(binding{"y", 2})
	l.Add(binding{"x", 3}) // shadows the first x

	var found binding
	l.EachReverse(func(b binding) bool {
		if b.name == "x" {
			found = b
			return false // stop at first (newest) match
		}
		return true
	})
	require.Equal(t, 3, found.id)
}

func TestListEachReverseFullOrder(t *testing.T) {
	l := arena.NewList[int]()
	for i := 0; i < 5; i++ {
		l.Add(i)
	}
	var got []int
	l.EachReverse(func(v int) bool {
		got = append(got, v)
		return true
	})
	require.Equal(t, []int{4, 3, 2, 1, 0}, got)
}

func TestListReleaseResets(t *testing.T) {
	l := arena.NewList[int]()
	l.Add(1)
	l.Release()
	require.Equal(t, 0, l.Len())
	l.Release() // idempotent
}
