package parser

import (
	"strings"

	"github.com/mna/raviast/lang/arena"
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/token"
)

// Container is the host-facing result of a parse: the parsed chunks, the
// file set used to resolve their positions, and the arena pools backing
// every node allocated while parsing them. It is the mandatory external
// handle a host holds onto an AST: release it when done, dump it with
// String in the meantime.
type Container struct {
	*arena.Container

	FileSet *token.FileSet
	Chunks  []*ast.Chunk
}

// String returns a human-readable dump of every parsed chunk, in Go-syntax
// representation so each node's type is visible alongside its field values.
// It never fails outright: a printing error is folded into the returned
// text instead, since tostring-style debugging output has no error return.
func (c *Container) String() string {
	var buf strings.Builder
	p := ast.Printer{Output: &buf, NodeFmt: "%#v"}
	for _, ch := range c.Chunks {
		start, _ := ch.Span()
		file := c.FileSet.File(start)
		if err := p.Print(ch, file); err != nil {
			return err.Error()
		}
	}
	return buf.String()
}
