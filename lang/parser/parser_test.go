package parser_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/parser"
	"github.com/mna/raviast/lang/token"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseSrc(t *testing.T, src string) (*ast.Chunk, error) {
	t.Helper()
	fset := token.NewFileSet()
	cnt, err := parser.ParseChunk(context.Background(), parser.Mode(0), fset, "test.lua", []byte(src))
	t.Cleanup(cnt.Release)
	return cnt.Chunks[0], err
}

func TestParseLocalWithTypeAnnotation(t *testing.T) {
	ch, err := parseSrc(t, `local x: integer = 1`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 1)

	local, ok := ch.Block.Stmts[0].(*ast.LocalStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"x"}, local.Names)
	assert.Equal(t, ast.INTEGER, local.Types[0].Type)
	require.Len(t, local.Exprs, 1)

	lit, ok := local.Exprs[0].(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, token.INT, lit.Tok)
	assert.Equal(t, int64(1), lit.Value.Int)
}

func TestParseShadowedLocal(t *testing.T) {
	ch, err := parseSrc(t, `
local x = 1
local x = x + 1
return x
`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 3)
	assert.IsType(t, &ast.LocalStmt{}, ch.Block.Stmts[0])
	assert.IsType(t, &ast.LocalStmt{}, ch.Block.Stmts[1])
	assert.IsType(t, &ast.ReturnStmt{}, ch.Block.Stmts[2])
}

func TestParseMethodDeclaration(t *testing.T) {
	ch, err := parseSrc(t, `
function obj:method(a, b)
  return a + b
end
`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 1)

	fn, ok := ch.Block.Stmts[0].(*ast.FunctionStmt)
	require.True(t, ok)
	assert.Equal(t, []string{"obj", "method"}, fn.Names)
	assert.True(t, fn.Method)
	require.Len(t, fn.Fn.Params, 3)
	assert.Equal(t, "self", fn.Fn.Params[0].Name)
	assert.Equal(t, "a", fn.Fn.Params[1].Name)
	assert.Equal(t, "b", fn.Fn.Params[2].Name)
}

func TestParseExpressionPrecedence(t *testing.T) {
	ch, err := parseSrc(t, `return 1 + 2 * 3 ^ 2`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 1)

	ret := ch.Block.Stmts[0].(*ast.ReturnStmt)
	require.Len(t, ret.Exprs, 1)

	// 1 + (2 * (3 ^ 2))
	top, ok := ret.Exprs[0].(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.PLUS, top.Op)

	rhs, ok := top.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.STAR, rhs.Op)

	pow, ok := rhs.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.CIRCUMFLEX, pow.Op)
}

func TestParseRightAssociativeConcat(t *testing.T) {
	ch, err := parseSrc(t, `return "a" .. "b" .. "c"`)
	require.NoError(t, err)
	ret := ch.Block.Stmts[0].(*ast.ReturnStmt)

	// "a" .. ("b" .. "c")
	top, ok := ret.Exprs[0].(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.DOTDOT, top.Op)
	_, ok = top.X.(*ast.LiteralExpr)
	require.True(t, ok)

	nested, ok := top.Y.(*ast.BinaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.DOTDOT, nested.Op)
}

func TestParseGlobalAssignment(t *testing.T) {
	ch, err := parseSrc(t, `counter = counter + 1`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 1)

	assign, ok := ch.Block.Stmts[0].(*ast.AssignStmt)
	require.True(t, ok)
	require.Len(t, assign.Lhs, 1)
	name, ok := assign.Lhs[0].(*ast.NameExpr)
	require.True(t, ok)
	assert.Equal(t, "counter", name.Name)
}

func TestParseNestedLocalFunctions(t *testing.T) {
	ch, err := parseSrc(t, `
local function outer()
  local x = 1
  local function middle()
    local function inner()
      return x
    end
    return inner
  end
  return middle
end
`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 1)
	_, ok := ch.Block.Stmts[0].(*ast.LocalFunctionStmt)
	require.True(t, ok)
}

func TestParseTableConstructorDisambiguatesNameEquals(t *testing.T) {
	ch, err := parseSrc(t, `return {a = 1, [2] = 3, 4}`)
	require.NoError(t, err)
	ret := ch.Block.Stmts[0].(*ast.ReturnStmt)
	tbl, ok := ret.Exprs[0].(*ast.TableConstructorExpr)
	require.True(t, ok)
	require.Len(t, tbl.Fields, 3)

	key0, ok := tbl.Fields[0].Key.(*ast.LiteralExpr)
	require.True(t, ok)
	assert.Equal(t, "a", key0.Value.String)

	assert.NotNil(t, tbl.Fields[1].Key)
	assert.Nil(t, tbl.Fields[2].Key)
}

func TestParseBreakInsideWhileLoop(t *testing.T) {
	ch, err := parseSrc(t, `
while true do
  break
end
`)
	require.NoError(t, err)
	while, ok := ch.Block.Stmts[0].(*ast.WhileStmt)
	require.True(t, ok)
	require.Len(t, while.Body.Stmts, 1)
	brk, ok := while.Body.Stmts[0].(*ast.GotoStmt)
	require.True(t, ok)
	assert.True(t, brk.IsBreak)
}

func TestParseGotoAndLabel(t *testing.T) {
	ch, err := parseSrc(t, `
do
  goto done
  ::done::
end
`)
	require.NoError(t, err)
	do, ok := ch.Block.Stmts[0].(*ast.DoStmt)
	require.True(t, ok)
	require.Len(t, do.Body.Stmts, 2)

	gotoStmt, ok := do.Body.Stmts[0].(*ast.GotoStmt)
	require.True(t, ok)
	assert.Equal(t, "done", gotoStmt.Name)

	label, ok := do.Body.Stmts[1].(*ast.LabelStmt)
	require.True(t, ok)
	assert.Equal(t, "done", label.Name)
}

func TestParseRaviConversionOperator(t *testing.T) {
	ch, err := parseSrc(t, `local x = @integer y`)
	require.NoError(t, err)
	local := ch.Block.Stmts[0].(*ast.LocalStmt)
	conv, ok := local.Exprs[0].(*ast.UnaryExpr)
	require.True(t, ok)
	assert.Equal(t, token.AT, conv.Op)
	assert.Equal(t, ast.INTEGER, conv.ConvType)
}

func TestParseMissingEndProducesExpectedError(t *testing.T) {
	_, err := parseSrc(t, `
if true then
  return 1
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "'end' expected")
}

func TestParseUnexpectedSymbolRecoversAndReportsError(t *testing.T) {
	ch, err := parseSrc(t, `
local x = 1
+
local y = 2
`)
	require.Error(t, err)

	// recovery should still produce a statement list covering both locals,
	// with a bad statement standing in for the broken one.
	require.GreaterOrEqual(t, len(ch.Block.Stmts), 2)
	found := false
	for _, s := range ch.Block.Stmts {
		if _, ok := s.(*ast.BadStmt); ok {
			found = true
		}
	}
	assert.True(t, found, fmt.Sprintf("expected a bad statement in %#v", ch.Block.Stmts))
}

func TestParseNonCallExpressionStatementIsNotASyntaxError(t *testing.T) {
	ch, err := parseSrc(t, `
x
t.k
`)
	require.NoError(t, err)
	require.Len(t, ch.Block.Stmts, 2)

	stmt0, ok := ch.Block.Stmts[0].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = stmt0.X.(*ast.NameExpr)
	assert.True(t, ok)

	stmt1, ok := ch.Block.Stmts[1].(*ast.ExprStmt)
	require.True(t, ok)
	_, ok = stmt1.X.(*ast.FieldSelectorExpr)
	assert.True(t, ok)
}

func TestParseUserDefinedTypeNameTooLong(t *testing.T) {
	long := ""
	for i := 0; i < 130; i++ {
		long += "a"
	}
	_, err := parseSrc(t, fmt.Sprintf("local x: %s = nil", long))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "User defined type name is too long")
}

func TestParseVarargAllowedInsideVarargFunction(t *testing.T) {
	ch, err := parseSrc(t, `
local function f(...)
  return ...
end
`)
	require.NoError(t, err)
	fn, ok := ch.Block.Stmts[0].(*ast.LocalFunctionStmt)
	require.True(t, ok)
	ret := fn.Fn.Body.Stmts[0].(*ast.ReturnStmt)
	_, ok = ret.Exprs[0].(*ast.VarargExpr)
	assert.True(t, ok)
}

func TestParseVarargOutsideVarargFunctionReportsError(t *testing.T) {
	_, err := parseSrc(t, `
local function f()
  return ...
end
`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "cannot use '...' outside a vararg function")
}

func TestParseVarargAllowedAtChunkTopLevel(t *testing.T) {
	ch, err := parseSrc(t, `return ...`)
	require.NoError(t, err)
	ret := ch.Block.Stmts[0].(*ast.ReturnStmt)
	_, ok := ret.Exprs[0].(*ast.VarargExpr)
	assert.True(t, ok)
}

func TestParseLeadingCommentAttachesToBlock(t *testing.T) {
	cnt, err := parser.ParseChunk(context.Background(), parser.Comments, token.NewFileSet(), "test.lua", []byte(`
-- explains x
local x = 1
`))
	defer cnt.Release()
	require.NoError(t, err)
	ch := cnt.Chunks[0]
	require.Len(t, ch.Comments, 1)
	assert.Equal(t, " explains x", ch.Comments[0].Val)
	assert.Same(t, ch.Block, ch.Comments[0].Node)
}
