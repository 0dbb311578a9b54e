package token

import (
	"fmt"
	"testing"
)

type startEnd struct {
	s, e Pos
}

func (se startEnd) Span() (start, end Pos) { return se.s, se.e }

func TestPosInside(t *testing.T) {
	cases := []struct {
		ref, test startEnd
		want      bool
	}{
		{startEnd{1, 2}, startEnd{3, 4}, false},
		{startEnd{1, 3}, startEnd{3, 4}, false},
		{startEnd{1, 4}, startEnd{3, 4}, true},
		{startEnd{2, 4}, startEnd{3, 4}, true},
		{startEnd{3, 4}, startEnd{3, 4}, true},
		{startEnd{4, 5}, startEnd{3, 4}, false},
	}
	for _, c := range cases {
		t.Run(fmt.Sprintf("%v-%v", c.ref, c.test), func(t *testing.T) {
			got := PosInside(c.ref, c.test)
			if c.want != got {
				t.Errorf("want %t, got %t", c.want, got)
			}
		})
	}
}

func TestPosAdjacent(t *testing.T) {
	// source: "aaa\nbbb\nccc\nddd" - newlines at byte offsets 3, 7, 11.
	fset := NewFileSet()
	f := fset.AddFile("test", -1, 15)
	f.AddLine(4)
	f.AddLine(8)
	f.AddLine(12)

	line1 := startEnd{f.Pos(0), f.Pos(2)}
	line2 := startEnd{f.Pos(4), f.Pos(6)}
	line3 := startEnd{f.Pos(8), f.Pos(10)}
	line4 := startEnd{f.Pos(12), f.Pos(14)}

	cases := []struct {
		name      string
		ref, test startEnd
		want      bool
	}{
		{"same line", line1, line1, true},
		{"next line", line1, line2, true},
		{"two lines after", line1, line3, false},
		{"previous line", line2, line1, false},
		{"same line, other end", line4, line4, true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := PosAdjacent(c.ref, c.test, f)
			if c.want != got {
				t.Errorf("want %t, got %t", c.want, got)
			}
		})
	}
	_ = line4
}

func TestFormatPos(t *testing.T) {
	fset := NewFileSet()
	f0 := fset.AddFile("test", -1, 10)
	f1 := fset.AddFile("test_next", -1, 10)

	cases := []struct {
		pos          Pos
		mode         PosMode
		file         *File
		withFilename bool
		want         string
	}{
		{NoPos, PosLong, f0, true, ":-:-"},
		{NoPos, PosOffsets, f0, true, "-"},
		{NoPos, PosRaw, f0, true, "0"},
		{NoPos, PosNone, f0, true, ""},
		{f0.Pos(0), PosLong, f0, true, "test:1:1"},
		{f0.Pos(0), PosOffsets, f0, true, "0"},
		{f0.Pos(1), PosLong, f0, true, "test:1:2"},
		{f0.Pos(1), PosOffsets, f0, true, "1"},
		{f1.Pos(0), PosLong, f1, true, "test_next:1:1"},
		{f1.Pos(0), PosLong, f1, false, ":1:1"},
	}

	for _, c := range cases {
		t.Run(fmt.Sprintf("%d:%s", c.pos, c.mode), func(t *testing.T) {
			got := FormatPos(c.mode, c.file, c.pos, c.withFilename)
			if got != c.want {
				t.Errorf("want %q, got %q", c.want, got)
			}
		})
	}
}
