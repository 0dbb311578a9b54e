package resolver

import (
	"fmt"

	"github.com/mna/raviast/lang/ast"
)

// SymbolKind indicates the kind of binding a Symbol represents.
type SymbolKind uint8

const (
	Undefined SymbolKind = iota // placeholder used while reporting errors
	Local                       // name is local to its function
	Upvalue                     // name is captured from an enclosing function
	Global                      // name is not declared by any enclosing local or upvalue
	Label                       // name is a goto target
)

var symbolKindNames = [...]string{
	Undefined: "undefined",
	Local:     "local",
	Upvalue:   "upvalue",
	Global:    "global",
	Label:     "label",
}

func (k SymbolKind) String() string {
	if int(k) >= len(symbolKindNames) {
		return fmt.Sprintf("<invalid SymbolKind %d>", k)
	}
	return symbolKindNames[k]
}

// Symbol is the resolver's result for an identifier: it ties together
// every NameExpr, Param and declaration that denote the same variable.
type Symbol struct {
	Kind SymbolKind
	Name string
	Type ast.TypeAnnotation

	// Index records the slot this symbol occupies:
	//   - the owning function's Locals, if Kind == Local
	//   - the owning function's Upvalues, if Kind == Upvalue
	// It is meaningless for Global and Label.
	Index int

	// BlockName is filled in only when NameBlocks mode is requested; it
	// identifies the block in which this symbol was declared.
	BlockName string

	// Decl is the node that declared this binding: the *ast.FunctionExpr
	// for a parameter, the for statement for a loop variable, the
	// *ast.LocalStmt/*ast.LocalFunctionStmt, or nil for globals.
	Decl ast.Node
}

// Upvalue describes one captured variable of a function: it refers either
// to a Local slot of the immediately enclosing function, or (when the
// capture must pass through one or more intermediate functions) to an
// Upvalue slot already lifted into that enclosing function.
type Upvalue struct {
	Name        string
	FromLocal   bool // true: Index is a slot in the parent's Locals; false: Index is a slot in the parent's Upvalues
	Index       int
	ParentLocal *Symbol
}

// FuncInfo is the symbol table attached to a Chunk or FunctionExpr: the
// full set of locals declared anywhere in the function (by slot index)
// and the upvalues it captures from enclosing functions, in capture order.
type FuncInfo struct {
	Node     ast.Node // *ast.Chunk or *ast.FunctionExpr
	Locals   []*Symbol
	Upvalues []*Upvalue
	IsVararg bool
}
