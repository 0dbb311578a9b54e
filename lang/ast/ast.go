// Package ast defines the types used to represent the abstract syntax
// tree (AST) of the Ravi-flavored Lua dialect parsed by this module. It is
// a quasi-lossless AST: it can recreate the source precisely except that
//   - semicolons are replaced by whitespace
//   - newlines are normalized to "\n"
//   - other whitespace is normalized to " " (e.g. tabs)
//
// Comments are not part of any node; instead they are parsed only if
// requested and stored separately on the Chunk, associated with the node
// they are most likely linked to. As such they are not considered when
// reporting node positions, though they may affect the span of blocks
// (and indirectly of the chunk).
package ast

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/mna/raviast/lang/token"
)

// Node represents any node in the AST.
type Node interface {
	// Every Node implements the fmt.Formatter interface so it can print a
	// description of itself. The only supported verbs are 'v' and 's'. The
	// '#' flag can be used to print count information about children nodes.
	// A width can be set to define the number of runes to print for the node
	// description - by default, that width is padded with spaces on the
	// left if the description is shorter, otherwise it is truncated to that
	// width. The '-' flag can be used to pad with spaces on the right
	// instead, and the '+' flag can be used to prevent padding altogether -
	// it only truncates if longer.
	fmt.Formatter

	// Span reports the start and end position of the node.
	Span() (start, end token.Pos)

	// Walk enters each node inside itself to implement the Visitor pattern.
	Walk(v Visitor)
}

// Expr represents an expression in the AST.
type Expr interface {
	Node
	expr()
}

// Stmt represents a statement in the AST.
type Stmt interface {
	Node

	// BlockEnding returns true if the statement must only appear as the
	// last statement in a block. Only return satisfies this in this
	// dialect: break and goto are ordinary statements that may appear
	// anywhere a statement is valid.
	BlockEnding() bool
}

type (
	// Chunk represents a Chunk production: the root of a parsed source
	// file or string, exactly like Block except that it keeps track of its
	// name and the EOF position, which is useful to give empty files a
	// valid position.
	Chunk struct {
		// Name is the filename, which may be empty if the chunk did not come
		// from a named file.
		Name string

		// Comments is filled only if parsing comments was requested, and it
		// lists comments ordered by position in the chunk. The comments are
		// not necessarily associated with the *Chunk itself, see each
		// Comment.Node field for the associated node.
		Comments []*Comment

		// Block is the block of statements contained in the chunk.
		Block *Block
		EOF   token.Pos // position of the EOF marker

		// Symbols is filled by the resolver: it is the symbol table of the
		// implicit top-level vararg function wrapping the chunk.
		Symbols any
	}

	// Comment represents a single comment, either short (--) or long
	// (--[[ ]]).
	Comment struct {
		// Node this comment is associated with, only set if parsing comments
		// was requested.
		Node     Node
		Start    token.Pos // position of the starting '-'
		Raw, Val string
	}

	// Block represents a block of statements.
	Block struct {
		// Both Start and End are saved because the block may start and end
		// before or after the statements due to comments.
		Start token.Pos
		End   token.Pos
		Stmts []Stmt
	}
)

func (n *Chunk) Format(f fmt.State, verb rune) {
	lbl := "chunk"
	if n.Name != "" {
		lbl += " " + strings.ReplaceAll(n.Name, string(os.PathSeparator), "/")
	}
	format(f, verb, n, lbl, nil)
}
func (n *Chunk) Span() (start, end token.Pos) {
	if n.Block != nil {
		return n.Block.Span()
	}
	return n.EOF, n.EOF
}
func (n *Chunk) Walk(v Visitor) {
	if n.Block != nil {
		Walk(v, n.Block)
	}
}

func (n *Comment) Format(f fmt.State, verb rune) { format(f, verb, n, "comment "+n.Val, nil) }
func (n *Comment) Span() (start, end token.Pos) {
	return n.Start, n.Start + token.Pos(len(n.Raw))
}
func (n *Comment) Walk(_ Visitor) {}

func (n *Block) Format(f fmt.State, verb rune) {
	format(f, verb, n, "block", map[string]int{"stmts": len(n.Stmts)})
}
func (n *Block) Span() (start, end token.Pos) {
	return n.Start, n.End
}
func (n *Block) Walk(v Visitor) {
	for _, s := range n.Stmts {
		Walk(v, s)
	}
}

// RaviType tags the static type of an expression or declares the type
// annotation of a local variable, function parameter or conversion
// operator.
type RaviType int8

const (
	// ANY is the default, absent any annotation or inference.
	ANY RaviType = iota
	NIL
	BOOLEAN
	INTEGER
	FLOAT
	ARRAY_INTEGER
	ARRAY_FLOAT
	TABLE
	STRING
	FUNCTION
	// USERDATA is tagged on expressions or declarations annotated with a
	// (possibly dotted) user-defined type name, carried alongside in a
	// TypeAnnotation.Name field.
	USERDATA
)

func (t RaviType) String() string {
	switch t {
	case ANY:
		return "any"
	case NIL:
		return "nil"
	case BOOLEAN:
		return "boolean"
	case INTEGER:
		return "integer"
	case FLOAT:
		return "number"
	case ARRAY_INTEGER:
		return "integer[]"
	case ARRAY_FLOAT:
		return "number[]"
	case TABLE:
		return "table"
	case STRING:
		return "string"
	case FUNCTION:
		return "closure"
	case USERDATA:
		return "userdata"
	}
	return "unknown"
}

// TypeAnnotation is a (Type, Name) pair: Name is only meaningful (and
// non-empty) when Type is USERDATA, in which case it holds the dotted
// type name (e.g. "mypkg.MyType").
type TypeAnnotation struct {
	Type RaviType
	Name string
}

func (t TypeAnnotation) String() string {
	if t.Type == USERDATA {
		return t.Name
	}
	return t.Type.String()
}

func format(f fmt.State, verb rune, n Node, label string, counts map[string]int) {
	if verb != 'v' && verb != 's' {
		fmt.Fprintf(f, "%%!%c(%T)", verb, n)
		return
	}

	// replace tabs and newlines with the corresponding unicode key
	label = strings.ReplaceAll(label, "\r\n", "⏎")
	label = strings.ReplaceAll(label, "\n", "⏎")
	label = strings.ReplaceAll(label, "\t", "⭾")
	label = strings.ReplaceAll(label, "\v", "⭿")

	if w, ok := f.Width(); ok {
		minus, plus := f.Flag('-'), f.Flag('+')
		runes := []rune(label)
		if len(runes) >= w {
			runes = runes[:w]
		} else if minus {
			runes = append(runes, []rune(strings.Repeat(" ", w-len(runes)))...)
		} else if !plus {
			runes = append([]rune(strings.Repeat(" ", w-len(runes))), runes...)
		}
		label = string(runes)
	}

	fmt.Fprint(f, label)
	if f.Flag('#') && len(counts) > 0 {
		keys := make([]string, 0, len(counts))
		for k := range counts {
			keys = append(keys, k)
		}
		sort.Strings(keys)

		fmt.Fprint(f, " {")
		for i, k := range keys {
			if i > 0 {
				fmt.Fprint(f, ", ")
			}
			fmt.Fprintf(f, "%s=%d", k, counts[k])
		}
		fmt.Fprint(f, "}")
	}
}
