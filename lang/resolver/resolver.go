// Package resolver implements the resolver that takes a parsed abstract
// syntax tree and resolves identifiers to bindings: locals, upvalues
// (closure captures) or globals, matching Lua's scoping rules rather than
// the stricter undefined-is-an-error style of some other languages.
//
// # Scopes
//
// Every name reference is either "local" to the enclosing function, an
// "upvalue" captured from an enclosing function, or otherwise "global" (a
// runtime table lookup, never a resolve error - Lua has no concept of an
// undeclared variable). Declaring a name already declared in the same
// block does not error: the new declaration simply shadows the old one
// for any reference after it, which is why each block's locals are kept
// in declaration order and searched from the most recent backward.
//
// A function that references a variable declared in an enclosing
// function "lifts" it as an upvalue. If several functions are nested
// between the declaration and the use, every intermediate function gets
// its own upvalue entry chained to its immediate parent, rather than the
// use-site function reaching directly into a distant ancestor's locals.
//
// # Labels and goto
//
// A label is visible anywhere in the block where it is declared,
// including before its own declaration (forward goto), but not inside a
// nested function. `break` is resolved as though it were `goto` to a
// synthetic label placed at the end of the innermost enclosing loop.
package resolver

import (
	"context"
	"fmt"

	"github.com/mna/raviast/lang/arena"
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/scanner"
	"github.com/mna/raviast/lang/token"
)

// MaxLocals is the maximum number of local variables (including
// parameters) a single function may declare.
const MaxLocals = 200

// Mode is a set of bit flags that configures the resolving. By default
// (0), the symbols are resolved, all errors are reported, and blocks are
// not given unique names.
type Mode uint

// List of supported resolver modes, which can be combined with bitwise or.
const (
	NameBlocks Mode = 1 << iota // give unique names to blocks, useful for printing the resolved AST.
)

// ResolveFiles takes the file set and corresponding list of chunks from a
// successful parse result and resolves the identifiers used in the
// source code. cnt is the same Container the chunks were parsed into
// (its Scopes and Symbols pools receive every block, funcState, Symbol
// and Upvalue allocated while resolving, and its Nodes pool receives the
// synthetic break labels the resolver creates), so that a single
// cnt.Release() still drops everything the parse and its resolution
// allocated.
//
// An AST that resulted in errors in the parse phase should never be
// passed to the resolver, the behavior is undefined.
//
// The returned error, if non-nil, is guaranteed to be a scanner.ErrorList.
func ResolveFiles(ctx context.Context, cnt *arena.Container, fset *token.FileSet, chunks []*ast.Chunk, mode Mode) error {
	if len(chunks) == 0 {
		return nil
	}

	var r resolver
	r.nodes = cnt.Nodes
	r.scopes = cnt.Scopes
	r.symbols = cnt.Symbols
	for _, ch := range chunks {
		select {
		case <-ctx.Done():
			r.errors.Add(token.Position{}, ctx.Err().Error())
			return r.errors.Err()
		default:
		}

		start, _ := ch.Span()
		r.init(fset.File(start))
		r.chunk(ch)

		if mode&NameBlocks != 0 {
			r.nameBlocks()
		}
	}
	r.errors.Sort()
	return r.errors.Err()
}

type resolver struct {
	file   *token.File
	errors scanner.ErrorList

	env  *block
	root *block
	fn   *funcState

	nodes   *arena.Pool
	scopes  *arena.Pool
	symbols *arena.Pool
}

// useName resolves name used at pos and returns its binding.
func (r *resolver) useName(name string, pos token.Pos) *Symbol {
	return r.resolveName(name)
}

func (r *resolver) init(file *token.File) {
	r.file = file
	r.env = nil
	r.root = nil
	r.fn = nil
}

func (r *resolver) errorf(p token.Pos, format string, args ...interface{}) {
	r.errors.Add(r.file.Position(p), fmt.Sprintf(format, args...))
}

func (r *resolver) push(isLoop bool) *block {
	b := newBlock(r.scopes, r.env, r.fn)
	b.isLoop = isLoop
	if r.env == nil {
		r.root = b
	} else {
		r.env.children = append(r.env.children, b)
	}
	r.env = b
	return b
}

func (r *resolver) pop() {
	// the block's locals list must survive the pop: nameBlocks walks the
	// whole tree once the chunk is fully resolved and still needs each
	// block's symbols to assign their BlockName.
	r.env = r.env.parent
}

func (r *resolver) pushFunc(node ast.Node, isVararg bool) *funcState {
	fn := newFuncState(r.scopes, r.symbols, r.fn, node, isVararg)
	r.fn = fn
	return fn
}

func (r *resolver) popFunc() {
	r.fn = r.fn.parent
}

// chunk resolves the implicit top-level vararg function wrapping a file.
func (r *resolver) chunk(ch *ast.Chunk) {
	fn := r.pushFunc(ch, true)
	r.push(false)
	r.blockStmts(ch.Block)
	r.pop()
	r.popFunc()
	ch.Symbols = fn.info
}

// blockBody resolves a nested block that does not start a new function,
// e.g. the body of an if/while/for/do statement.
func (r *resolver) blockBody(body *ast.Block, isLoop bool) {
	r.push(isLoop)
	r.blockStmts(body)
	r.pop()
}

// blockStmts declares every label in the block up front (so forward goto
// works), then resolves each statement in order.
func (r *resolver) blockStmts(b *ast.Block) {
	r.env.labels = make(map[string]*ast.LabelStmt)
	for _, s := range b.Stmts {
		if lbl, ok := s.(*ast.LabelStmt); ok {
			if _, dup := r.env.labels[lbl.Name]; dup {
				r.errorf(lbl.Start, "label '%s' already defined in this block", lbl.Name)
				continue
			}
			r.env.labels[lbl.Name] = lbl
		}
	}
	for _, s := range b.Stmts {
		r.stmt(s)
	}
}

func (r *resolver) stmt(stmt ast.Stmt) {
	switch stmt := stmt.(type) {
	case *ast.LocalStmt:
		for _, e := range stmt.Exprs {
			r.expr(e)
		}
		for i, name := range stmt.Names {
			var typ ast.TypeAnnotation
			if i < len(stmt.Types) {
				typ = stmt.Types[i]
			}
			r.declareLocal(name, stmt.NamePos[i], typ, stmt)
		}

	case *ast.ExprStmt:
		r.expr(stmt.X)

	case *ast.AssignStmt:
		for _, e := range stmt.Rhs {
			r.expr(e)
		}
		for _, e := range stmt.Lhs {
			r.expr(e)
		}

	case *ast.IfStmt:
		for _, c := range stmt.Clauses {
			r.expr(c.Cond)
			r.blockBody(c.Body, false)
		}
		if stmt.Else != nil {
			r.blockBody(stmt.Else, false)
		}

	case *ast.WhileStmt:
		r.expr(stmt.Cond)
		r.blockBody(stmt.Body, true)

	case *ast.RepeatStmt:
		// repeat's until condition can see locals declared in the body, so it
		// resolves inside the same block rather than after it is popped.
		r.push(true)
		r.blockStmts(stmt.Body)
		r.expr(stmt.Cond)
		r.pop()

	case *ast.ForNumStmt:
		r.expr(stmt.Start)
		r.expr(stmt.Stop)
		if stmt.Step != nil {
			r.expr(stmt.Step)
		}
		r.push(true)
		r.declareLocal(stmt.Name, stmt.NamePos, stmt.Type, stmt)
		r.blockStmts(stmt.Body)
		r.pop()

	case *ast.ForInStmt:
		for _, e := range stmt.Exprs {
			r.expr(e)
		}
		r.push(true)
		for i, name := range stmt.Names {
			var typ ast.TypeAnnotation
			if i < len(stmt.Types) {
				typ = stmt.Types[i]
			}
			r.declareLocal(name, stmt.NamePos[i], typ, stmt)
		}
		r.blockStmts(stmt.Body)
		r.pop()

	case *ast.DoStmt:
		r.blockBody(stmt.Body, false)

	case *ast.BadStmt:
		// a parse error already reported this; nothing to resolve.

	case *ast.FunctionStmt:
		// the leading name is resolved as a use (local, upvalue or global);
		// the dotted/method path after it is a runtime field access and is
		// never resolved to a binding, matching Lua's `function a.b.c()`
		// sugar for `a.b.c = function() end`.
		r.useName(stmt.Names[0], stmt.NamePos[0])
		// for a method, the parser already prepended `self` to Fn.Params.
		r.functionBody(stmt.Fn, false)

	case *ast.LocalFunctionStmt:
		// unlike a plain local, `local function f` binds the name before the
		// body so that f can recurse.
		r.declareLocal(stmt.Name, stmt.NamePos, ast.TypeAnnotation{}, stmt)
		r.functionBody(stmt.Fn, false)

	case *ast.ReturnStmt:
		for _, e := range stmt.Exprs {
			r.expr(e)
		}

	case *ast.LabelStmt:
		// already declared by blockStmts' pre-pass.

	case *ast.GotoStmt:
		if stmt.IsBreak {
			r.resolveBreak(stmt)
		} else {
			r.resolveGoto(stmt)
		}

	default:
		panic(fmt.Sprintf("resolver: unexpected statement %T", stmt))
	}
}

func (r *resolver) expr(expr ast.Expr) {
	switch expr := expr.(type) {
	case *ast.LiteralExpr, *ast.VarargExpr:
		// nothing to resolve

	case *ast.NameExpr:
		expr.Symbol = r.useName(expr.Name, expr.NamePos)

	case *ast.ParenExpr:
		r.expr(expr.X)

	case *ast.UnaryExpr:
		r.expr(expr.X)

	case *ast.BinaryExpr:
		r.expr(expr.X)
		r.expr(expr.Y)

	case *ast.FieldSelectorExpr:
		r.expr(expr.X)

	case *ast.YIndexExpr:
		r.expr(expr.X)
		r.expr(expr.Y)

	case *ast.FunctionCallExpr:
		r.expr(expr.Fn)
		for _, a := range expr.Args {
			r.expr(a)
		}

	case *ast.TableConstructorExpr:
		for _, fld := range expr.Fields {
			if fld.Key != nil {
				r.expr(fld.Key)
			}
			r.expr(fld.Value)
		}

	case *ast.FunctionExpr:
		r.functionBody(expr, false)

	default:
		panic(fmt.Sprintf("resolver: unexpected expression %T", expr))
	}
}

// functionBody resolves a function's parameters and body in a fresh
// funcState. implicitSelf prepends a `self` parameter, used for the
// `function a:b()` method-declaration sugar.
func (r *resolver) functionBody(fn *ast.FunctionExpr, implicitSelf bool) {
	fs := r.pushFunc(fn, fn.IsVararg)
	r.push(false)

	if implicitSelf {
		r.declareLocal("self", fn.Function, ast.TypeAnnotation{}, fn)
	}
	for _, p := range fn.Params {
		r.declareLocal(p.Name, p.NamePos, p.Type, fn)
	}

	r.blockStmts(fn.Body)
	r.pop()
	r.popFunc()
	fn.Symbols = fs.info
}

// declareLocal adds name as a new local of the current function,
// shadowing any earlier local of the same name in the current block.
func (r *resolver) declareLocal(name string, pos token.Pos, typ ast.TypeAnnotation, decl ast.Node) *Symbol {
	sym := arena.Alloc[Symbol](r.symbols)
	*sym = Symbol{
		Kind:  Local,
		Name:  name,
		Type:  typ,
		Index: len(r.fn.info.Locals),
		Decl:  decl,
	}
	if sym.Index >= MaxLocals {
		r.errorf(pos, "too many local variables")
	}
	r.fn.info.Locals = append(r.fn.info.Locals, sym)
	r.env.declare(sym)
	return sym
}

// resolveName finds name's binding: a local of the current function, an
// upvalue lifted from an enclosing function (possibly through several
// intermediate ones), or a global if no enclosing scope declares it.
func (r *resolver) resolveName(name string) *Symbol {
	if sym := r.lookup(r.fn, r.env, name); sym != nil {
		return sym
	}
	sym := arena.Alloc[Symbol](r.symbols)
	*sym = Symbol{Kind: Global, Name: name}
	return sym
}

// lookup searches fn's own blocks starting at b, then recurses into the
// enclosing function (if any) and lifts the result as an upvalue chained
// through fn.
func (r *resolver) lookup(fn *funcState, b *block, name string) *Symbol {
	for cur := b; cur != nil && cur.fn == fn; cur = cur.parent {
		if sym := cur.find(name); sym != nil {
			return sym
		}
	}

	// find the block at which the enclosing function's scope resumes: the
	// first ancestor block that does not belong to fn.
	var outer *block
	for cur := b; cur != nil; cur = cur.parent {
		if cur.fn != fn {
			outer = cur
			break
		}
	}
	if outer == nil || fn.parent == nil {
		return nil
	}

	parentSym := r.lookup(fn.parent, outer, name)
	if parentSym == nil {
		return nil
	}
	return r.addUpvalue(fn, fn.parent, name, parentSym)
}

// addUpvalue records that fn captures name from its immediately enclosing
// function, caching the slot so repeated references to the same name
// inside fn reuse a single upvalue entry. parentSym is the binding found
// in parentFn: either the Local itself, or (when the capture passes
// through several functions) the Upvalue already lifted into parentFn.
// Every Upvalue's ParentLocal must reference the real ancestor Local
// directly, never an intermediate Upvalue, so it is resolved here rather
// than copied from parentSym.
func (r *resolver) addUpvalue(fn, parentFn *funcState, name string, parentSym *Symbol) *Symbol {
	if idx, ok := fn.upvalueIndex[name]; ok {
		sym := arena.Alloc[Symbol](r.symbols)
		*sym = Symbol{Kind: Upvalue, Name: name, Index: idx, Type: parentSym.Type}
		return sym
	}

	root := parentSym
	if parentSym.Kind == Upvalue {
		root = parentFn.info.Upvalues[parentSym.Index].ParentLocal
	}

	idx := len(fn.info.Upvalues)
	up := arena.Alloc[Upvalue](r.symbols)
	*up = Upvalue{Name: name, FromLocal: parentSym.Kind == Local, Index: parentSym.Index, ParentLocal: root}
	fn.info.Upvalues = append(fn.info.Upvalues, up)
	fn.upvalueIndex[name] = idx

	sym := arena.Alloc[Symbol](r.symbols)
	*sym = Symbol{Kind: Upvalue, Name: name, Index: idx, Type: parentSym.Type}
	return sym
}

// resolveGoto finds the nearest visible label for stmt, searching the
// current block and its ancestors, but never crossing into an enclosing
// function.
func (r *resolver) resolveGoto(stmt *ast.GotoStmt) {
	for b := r.env; b != nil && b.fn == r.fn; b = b.parent {
		if lbl := b.findLabel(stmt.Name); lbl != nil {
			stmt.Target = lbl
			return
		}
	}
	r.errorf(stmt.Goto, "no visible label '%s' for goto", stmt.Name)
}

// resolveBreak resolves a synthetic `goto break` to the innermost
// enclosing loop's end-of-body label, creating that label on first use.
func (r *resolver) resolveBreak(stmt *ast.GotoStmt) {
	for b := r.env; b != nil && b.fn == r.fn; b = b.parent {
		if b.isLoop {
			if b.breakLabel == nil {
				lbl := arena.Alloc[ast.LabelStmt](r.nodes)
				*lbl = ast.LabelStmt{Name: "break"}
				b.breakLabel = lbl
			}
			stmt.Target = b.breakLabel
			return
		}
	}
	r.errorf(stmt.Goto, "break outside a loop")
}
