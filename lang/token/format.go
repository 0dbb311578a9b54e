package token

import "fmt"

// Spanner is implemented by anything with a source span, namely ast.Node.
// It is declared here (rather than imported from the ast package) to avoid
// a dependency cycle; ast.Node satisfies it structurally.
type Spanner interface {
	Span() (start, end Pos)
}

// PosInside reports whether test's span is entirely contained within ref's
// span (a closed interval comparison on the two Pos values).
func PosInside(ref, test Spanner) bool {
	rs, re := ref.Span()
	ts, te := test.Span()
	return rs <= ts && te <= re
}

// PosAdjacent reports whether test's span starts on the same line as ref's
// span ends, or on the very next line. It is used to decide whether a
// comment should be attached to a following or preceding node.
func PosAdjacent(ref, test Spanner, file *File) bool {
	_, re := ref.Span()
	ts, _ := test.Span()
	rl := file.Position(re).Line
	tl := file.Position(ts).Line
	return tl == rl || tl == rl+1
}

// PosMode controls how positions are rendered by FormatPos.
type PosMode int

const (
	// PosLong renders "filename:line:col".
	PosLong PosMode = iota
	// PosOffsets renders the 0-based byte offset.
	PosOffsets
	// PosRaw renders the raw Pos integer value.
	PosRaw
	// PosNone renders nothing.
	PosNone
)

func (m PosMode) String() string {
	switch m {
	case PosLong:
		return "long"
	case PosOffsets:
		return "offsets"
	case PosRaw:
		return "raw"
	case PosNone:
		return "none"
	}
	return "unknown"
}

// FormatPos renders pos according to mode, resolving line/column
// information against file. If withFilename is false, the filename part
// (when applicable) is omitted.
func FormatPos(mode PosMode, file *File, pos Pos, withFilename bool) string {
	switch mode {
	case PosNone:
		return ""
	case PosRaw:
		return fmt.Sprintf("%d", pos)
	}

	if !pos.Valid() || file == nil {
		if mode == PosOffsets {
			return "-"
		}
		name := ""
		if withFilename && file != nil {
			name = file.Name()
		}
		return fmt.Sprintf("%s:-:-", name)
	}

	p := file.Position(pos)
	if mode == PosOffsets {
		return fmt.Sprintf("%d", p.Offset)
	}

	name := ""
	if withFilename {
		name = p.Filename
	}
	return fmt.Sprintf("%s:%d:%d", name, p.Line, p.Column)
}
