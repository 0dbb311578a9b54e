package resolver_test

import (
	"context"
	"testing"

	"github.com/mna/raviast/lang/arena"
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/resolver"
	"github.com/mna/raviast/lang/token"
	"github.com/stretchr/testify/require"
)

// name builds a *ast.NameExpr for a given identifier.
func name(n string) *ast.NameExpr { return &ast.NameExpr{Name: n} }

func resolve(t *testing.T, ch *ast.Chunk) {
	t.Helper()
	fset := token.NewFileSet()
	f := fset.AddFile("test.ravi", -1, 1)
	ch.EOF = f.Pos(0)
	cnt := arena.NewContainer()
	t.Cleanup(cnt.Release)
	err := resolver.ResolveFiles(context.Background(), cnt, fset, []*ast.Chunk{ch}, 0)
	require.NoError(t, err)
}

func TestResolveLocalShadowsInSameBlock(t *testing.T) {
	xUse := name("x")

	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.LocalStmt{Names: []string{"x"}, NamePos: []token.Pos{1}, Exprs: []ast.Expr{&ast.LiteralExpr{Tok: token.INT}}},
		&ast.LocalStmt{Names: []string{"x"}, NamePos: []token.Pos{2}, Exprs: []ast.Expr{&ast.LiteralExpr{Tok: token.INT}}},
		&ast.ExprStmt{X: &ast.FunctionCallExpr{Fn: xUse}},
	}}}
	resolve(t, ch)

	sym, ok := xUse.Symbol.(*resolver.Symbol)
	require.True(t, ok)
	require.Equal(t, resolver.Local, sym.Kind)
	require.Equal(t, 1, sym.Index) // the second declaration, not the first
}

func TestResolveGlobalFallback(t *testing.T) {
	use := name("undeclared")
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.ExprStmt{X: &ast.FunctionCallExpr{Fn: use}},
	}}}
	resolve(t, ch)

	sym := use.Symbol.(*resolver.Symbol)
	require.Equal(t, resolver.Global, sym.Kind)
	require.Equal(t, "undeclared", sym.Name)
}

func TestResolveUpvalueSingleLevel(t *testing.T) {
	use := name("x")
	inner := &ast.FunctionExpr{Body: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Exprs: []ast.Expr{use}},
	}}}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.LocalStmt{Names: []string{"x"}, NamePos: []token.Pos{1}, Exprs: []ast.Expr{&ast.LiteralExpr{Tok: token.INT}}},
		&ast.LocalStmt{Names: []string{"f"}, NamePos: []token.Pos{2}, Exprs: []ast.Expr{inner}},
	}}}
	resolve(t, ch)

	sym := use.Symbol.(*resolver.Symbol)
	require.Equal(t, resolver.Upvalue, sym.Kind)

	info := inner.Symbols.(*resolver.FuncInfo)
	require.Len(t, info.Upvalues, 1)
	require.True(t, info.Upvalues[0].FromLocal)
}

func TestResolveUpvalueChainThroughIntermediateFunction(t *testing.T) {
	use := name("x")
	innermost := &ast.FunctionExpr{Body: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Exprs: []ast.Expr{use}},
	}}}
	middle := &ast.FunctionExpr{Body: &ast.Block{Stmts: []ast.Stmt{
		&ast.ReturnStmt{Exprs: []ast.Expr{innermost}},
	}}}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.LocalStmt{Names: []string{"x"}, NamePos: []token.Pos{1}, Exprs: []ast.Expr{&ast.LiteralExpr{Tok: token.INT}}},
		&ast.LocalStmt{Names: []string{"f"}, NamePos: []token.Pos{2}, Exprs: []ast.Expr{middle}},
	}}}
	resolve(t, ch)

	midInfo := middle.Symbols.(*resolver.FuncInfo)
	require.Len(t, midInfo.Upvalues, 1, "the intermediate function must also capture x to relay it")
	require.True(t, midInfo.Upvalues[0].FromLocal)

	innerInfo := innermost.Symbols.(*resolver.FuncInfo)
	require.Len(t, innerInfo.Upvalues, 1)
	require.False(t, innerInfo.Upvalues[0].FromLocal, "innermost's immediate parent slot is middle's upvalue, not a local")

	// both upvalues in the chain must reference the same real ancestor
	// Local directly, never an intermediate Upvalue-kind symbol.
	require.Same(t, midInfo.Upvalues[0].ParentLocal, innerInfo.Upvalues[0].ParentLocal)
	require.Equal(t, resolver.Local, innerInfo.Upvalues[0].ParentLocal.Kind)
	require.Equal(t, "x", innerInfo.Upvalues[0].ParentLocal.Name)
}

func TestResolveTooManyLocalsErrors(t *testing.T) {
	var stmts []ast.Stmt
	for i := 0; i < resolver.MaxLocals+5; i++ {
		stmts = append(stmts, &ast.LocalStmt{
			Names:   []string{"v"},
			NamePos: []token.Pos{token.Pos(i + 1)},
			Exprs:   []ast.Expr{&ast.LiteralExpr{Tok: token.INT}},
		})
	}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: stmts}}

	fset := token.NewFileSet()
	f := fset.AddFile("test.ravi", -1, 1)
	ch.EOF = f.Pos(0)
	cnt := arena.NewContainer()
	t.Cleanup(cnt.Release)
	err := resolver.ResolveFiles(context.Background(), cnt, fset, []*ast.Chunk{ch}, 0)
	require.Error(t, err)
}

func TestResolveBreakTargetsInnermostLoop(t *testing.T) {
	brk := &ast.GotoStmt{IsBreak: true}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.WhileStmt{
			Cond: &ast.LiteralExpr{Tok: token.TRUE},
			Body: &ast.Block{Stmts: []ast.Stmt{brk}},
		},
	}}}
	resolve(t, ch)
	require.NotNil(t, brk.Target)
}

func TestResolveBreakOutsideLoopErrors(t *testing.T) {
	brk := &ast.GotoStmt{IsBreak: true}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{brk}}}

	fset := token.NewFileSet()
	f := fset.AddFile("test.ravi", -1, 1)
	ch.EOF = f.Pos(0)
	cnt := arena.NewContainer()
	t.Cleanup(cnt.Release)
	err := resolver.ResolveFiles(context.Background(), cnt, fset, []*ast.Chunk{ch}, 0)
	require.Error(t, err)
}

func TestResolveGotoForwardLabel(t *testing.T) {
	g := &ast.GotoStmt{Name: "done"}
	lbl := &ast.LabelStmt{Name: "done"}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		g,
		lbl,
	}}}
	resolve(t, ch)
	require.Same(t, lbl, g.Target)
}

func TestResolveGotoUndefinedLabelErrors(t *testing.T) {
	g := &ast.GotoStmt{Name: "nowhere"}
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{g}}}

	fset := token.NewFileSet()
	f := fset.AddFile("test.ravi", -1, 1)
	ch.EOF = f.Pos(0)
	cnt := arena.NewContainer()
	t.Cleanup(cnt.Release)
	err := resolver.ResolveFiles(context.Background(), cnt, fset, []*ast.Chunk{ch}, 0)
	require.Error(t, err)
}

func TestNameBlocksAssignsRootName(t *testing.T) {
	ch := &ast.Chunk{Block: &ast.Block{Stmts: []ast.Stmt{
		&ast.LocalStmt{Names: []string{"x"}, NamePos: []token.Pos{1}, Exprs: []ast.Expr{&ast.LiteralExpr{Tok: token.INT}}},
		&ast.DoStmt{Body: &ast.Block{}},
	}}}
	fset := token.NewFileSet()
	f := fset.AddFile("test.ravi", -1, 1)
	ch.EOF = f.Pos(0)
	cnt := arena.NewContainer()
	t.Cleanup(cnt.Release)
	err := resolver.ResolveFiles(context.Background(), cnt, fset, []*ast.Chunk{ch}, resolver.NameBlocks)
	require.NoError(t, err)
	require.Equal(t, "_", ch.Symbols.(*resolver.FuncInfo).Locals[0].BlockName)
}
