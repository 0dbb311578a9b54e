// Package parser implements the parser that transforms source code written
// in the Ravi-flavored Lua dialect into an abstract syntax tree (AST).
package parser

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/mna/raviast/lang/arena"
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/scanner"
	"github.com/mna/raviast/lang/token"
)

// Mode is a set of bit flags that configures the parsing. By default (0),
// the AST is parsed fully, all errors are reported and comments are
// ignored.
type Mode uint

// List of supported parsing modes, which can be combined with bitwise or.
const (
	Comments Mode = 1 << iota // parse and report comments, associate them with their AST node.
)

// ParseFiles is a helper function that parses the source files and returns
// a Container holding the fileset and the ASTs, along with any error
// encountered. The error, if non-nil, is guaranteed to be a
// scanner.ErrorList. The returned Container is never nil and must be
// released by the caller once it is done with the trees (and, in
// particular, before discarding a partial result from a failed parse).
func ParseFiles(ctx context.Context, mode Mode, files ...string) (*Container, error) {
	cnt := &Container{Container: arena.NewContainer(), FileSet: token.NewFileSet()}
	if len(files) == 0 {
		return cnt, nil
	}

	var p parser
	p.parseComments = mode&Comments != 0
	p.nodes = cnt.Nodes

	res := make([]*ast.Chunk, 0, len(files))

	for _, file := range files {
		select {
		case <-ctx.Done():
			p.errors.Add(token.Position{Filename: file}, ctx.Err().Error())
			continue
		default:
		}

		b, err := os.ReadFile(file)
		if err != nil {
			p.errors.Add(token.Position{Filename: file}, err.Error())
			continue
		}

		p.init(cnt.FileSet, file, b)
		ch := p.parseChunk()
		ch.Name = file
		res = append(res, ch)
	}
	p.errors.Sort()
	cnt.Chunks = res
	return cnt, p.errors.Err()
}

// ParseChunk is a helper function that parses a single chunk from a slice
// of bytes and returns a Container holding it, along with any error
// encountered. The chunk is added to the provided fset for position
// reporting under the name specified in filename. The error, if non-nil,
// is guaranteed to be a scanner.ErrorList. The returned Container is never
// nil and must be released by the caller.
func ParseChunk(ctx context.Context, mode Mode, fset *token.FileSet, filename string, src []byte) (*Container, error) {
	cnt := &Container{Container: arena.NewContainer(), FileSet: fset}

	var p parser
	p.parseComments = mode&Comments != 0
	p.nodes = cnt.Nodes
	p.init(fset, filename, src)
	ch := p.parseChunk()
	ch.Name = filename

	cnt.Chunks = []*ast.Chunk{ch}
	cnt.Root = ch
	return cnt, p.errors.Err()
}

// parser parses source files and generates an AST.
type parser struct {
	// those fields are immutable after p.init
	parseComments bool
	scanner       scanner.Scanner
	errors        scanner.ErrorList
	file          *token.File

	// current token
	tok token.Token
	val token.Value

	// this is set in p.advance to the position before skipping any
	// comments, which is then used to set the starting position of
	// blocks, so that blocks always encompass their leading comments.
	preCommentPos token.Pos

	// this field is only used when parseComments is true; pending
	// comments are those skipped over by p.advance, stored here until
	// they are attached to a block.
	pendingComments []*ast.Comment

	// this field is only set when parseComments is true: the current
	// block is pushed to the stack when starting to parse that block,
	// and popped on exit, so pending comments can be attached to the
	// innermost enclosing block in a single pass.
	blocksStack []*ast.Block

	// varargStack tracks, for each nested function currently being
	// parsed, whether it declared a trailing '...' parameter; the main
	// chunk is implicitly vararg. Used to reject '...' expressions
	// outside a vararg function.
	varargStack []bool

	// nodes is the arena pool every AST node parsed by p is carved out
	// of; set once by ParseFiles/ParseChunk before parsing starts.
	nodes *arena.Pool
}

// allocNode returns a zero-valued *T carved out of p's node pool.
func allocNode[T any](p *parser) *T {
	return arena.Alloc[T](p.nodes)
}

// inVararg reports whether the innermost enclosing function accepts '...'.
func (p *parser) inVararg() bool {
	return p.varargStack[len(p.varargStack)-1]
}

func (p *parser) init(fset *token.FileSet, filename string, src []byte) {
	p.file = fset.AddFile(filename, -1, len(src))
	p.scanner.Init(p.file, src, p.errors.Add)
	p.pendingComments = nil
	p.blocksStack = p.blocksStack[:0]
	p.varargStack = append(p.varargStack[:0], true) // the main chunk is implicitly vararg

	p.advance()
}

func (p *parser) advance() {
	p.tok = p.scanner.Scan(&p.val)
	p.preCommentPos = p.val.Pos
	for p.tok == token.COMMENT {
		if p.parseComments {
			var curBlock *ast.Block
			if len(p.blocksStack) > 0 {
				curBlock = p.blocksStack[len(p.blocksStack)-1]
			}
			com := allocNode[ast.Comment](p)
			*com = ast.Comment{
				Start: p.val.Pos,
				Raw:   p.val.Raw,
				Val:   p.val.String,
				Node:  curBlock,
			}
			p.pendingComments = append(p.pendingComments, com)
		}
		p.tok = p.scanner.Scan(&p.val)
	}
}

func (p *parser) enterBlock(block *ast.Block) {
	block.Start = p.preCommentPos

	if p.parseComments {
		// walk pending comments backwards until one starts before this
		// block, reassigning any that were provisionally attached to the
		// parent block to this (more specific) one instead.
		for i := len(p.pendingComments) - 1; i >= 0; i-- {
			c := p.pendingComments[i]
			if c.Start < block.Start {
				break
			}
			c.Node = block
		}
		p.blocksStack = append(p.blocksStack, block)
	}
}

func (p *parser) exitBlock(block *ast.Block) {
	block.End = p.preCommentPos
	if p.parseComments {
		if last := p.blocksStack[len(p.blocksStack)-1]; last != block {
			panic(fmt.Sprintf("block stack corrupted: popping block %v, should be %v", last, block))
		}
		p.blocksStack = p.blocksStack[:len(p.blocksStack)-1]
	}
}

var errPanicMode = errors.New("panic")

// expect returns the position of the current token and consumes it if it
// is tok, otherwise it reports an error and panics with errPanicMode,
// which is recovered at the statement level.
func (p *parser) expect(tok token.Token) token.Pos {
	pos := p.val.Pos
	if p.tok != tok {
		p.errorExpected(pos, tok.GoString())
		panic(errPanicMode)
	}
	p.advance()
	return pos
}

// expectClose is like expect, but produces the closing-delimiter error
// shape that names the opening token's line when the two are not on the
// same line.
func (p *parser) expectClose(tok, open token.Token, openPos token.Pos) token.Pos {
	if p.tok != tok {
		if p.file.Position(p.val.Pos).Line != p.file.Position(openPos).Line {
			p.error(p.val.Pos, fmt.Sprintf("%s expected (to close %s at line %d)",
				tok.GoString(), open.GoString(), p.file.Position(openPos).Line))
			panic(errPanicMode)
		}
		p.errorExpected(p.val.Pos, tok.GoString())
		panic(errPanicMode)
	}
	pos := p.val.Pos
	p.advance()
	return pos
}

func (p *parser) error(pos token.Pos, msg string) {
	p.errors.Add(p.file.Position(pos), msg)
}

// errorExpected reports "<msg> expected" at pos, where msg names the
// expected token or construct. When pos is the current token's position,
// the current token is appended as "<msg> expected near '<tok>'".
func (p *parser) errorExpected(pos token.Pos, msg string) {
	if pos != p.val.Pos {
		p.error(pos, msg+" expected")
		return
	}
	lit := p.tok.Literal(p.val)
	if lit == "" {
		lit = p.tok.GoString()
	}
	p.error(pos, fmt.Sprintf("%s expected near '%s'", msg, lit))
}

// unexpected reports the "unexpected symbol" error used at an expression
// position with no viable primary expression.
func (p *parser) unexpected(pos token.Pos) {
	p.error(pos, "unexpected symbol")
	panic(errPanicMode)
}
