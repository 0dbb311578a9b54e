package resolver

import (
	"github.com/dolthub/swiss"

	"github.com/mna/raviast/lang/arena"
	"github.com/mna/raviast/lang/ast"
)

// funcState accumulates the symbol table of a single function (or the
// implicit top-level chunk function) as its body is resolved.
type funcState struct {
	parent *funcState
	info   *FuncInfo

	// upvalueIndex caches the slot already assigned to a captured name, so
	// that a variable referenced more than once inside the same function
	// is only lifted through the enclosing chain once.
	upvalueIndex map[string]int
}

func newFuncState(scopes, symbols *arena.Pool, parent *funcState, node ast.Node, isVararg bool) *funcState {
	fs := arena.Alloc[funcState](scopes)
	info := arena.Alloc[FuncInfo](symbols)
	*info = FuncInfo{Node: node, IsVararg: isVararg}
	fs.parent = parent
	fs.info = info
	fs.upvalueIndex = make(map[string]int)
	return fs
}

// block is one lexical scope: a function body, a do/if/while/for body, or
// a synthetic scope introduced by the resolver (e.g. to hold a for loop's
// control variables). Declaring the same name twice in the same block is
// legal: the most recently declared one shadows all earlier ones. Locals
// are recorded in declaration order in an arena.List, and looked up by
// name through localIndex, which keeps the most recent declaration.
type block struct {
	parent *block
	fn     *funcState

	children []*block
	name     string // filled in by nameBlocks, used only when printing

	locals *arena.List[*Symbol]

	// localIndex accelerates find() with an O(1) lookup for the most
	// recently declared local of a given name, for blocks that accumulate
	// many bindings; locals remains the authoritative record of
	// declaration order (walked with Each by nameBlocks).
	localIndex *swiss.Map[string, *Symbol]

	labels map[string]*ast.LabelStmt

	isLoop     bool
	breakLabel *ast.LabelStmt // synthetic target of `break` for this loop, created lazily
}

func newBlock(scopes *arena.Pool, parent *block, fn *funcState) *block {
	b := arena.Alloc[block](scopes)
	b.parent = parent
	b.fn = fn
	b.locals = arena.NewList[*Symbol]()
	b.localIndex = swiss.NewMap[string, *Symbol](8)
	return b
}

// declare adds a new local to b, always succeeding: a prior local with
// the same name in this block is shadowed, not replaced or rejected.
func (b *block) declare(sym *Symbol) {
	b.locals.Add(sym)
	b.localIndex.Put(sym.Name, sym) // last write wins: the most recent declaration
}

// find looks up name among this block's own locals only, returning the
// most recently declared one.
func (b *block) find(name string) *Symbol {
	if sym, ok := b.localIndex.Get(name); ok {
		return sym
	}
	return nil
}

// findLabel looks up a label declared directly in this block.
func (b *block) findLabel(name string) *ast.LabelStmt {
	return b.labels[name]
}
