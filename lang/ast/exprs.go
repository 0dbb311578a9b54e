package ast

import (
	"fmt"

	"github.com/mna/raviast/lang/token"
)

// all Expr implementations embed this unexported marker method.
func (*LiteralExpr) expr()          {}
func (*VarargExpr) expr()           {}
func (*NameExpr) expr()             {}
func (*ParenExpr) expr()            {}
func (*UnaryExpr) expr()            {}
func (*BinaryExpr) expr()           {}
func (*FieldSelectorExpr) expr()    {}
func (*YIndexExpr) expr()           {}
func (*FunctionCallExpr) expr()     {}
func (*TableConstructorExpr) expr() {}
func (*FunctionExpr) expr()         {}

type (
	// LiteralExpr represents a literal nil, true, false, number or string.
	LiteralExpr struct {
		TokPos token.Pos
		Tok    token.Token // NIL, TRUE, FALSE, INT, FLOAT or STRING
		Value  token.Value
	}

	// VarargExpr represents the `...` expression, only valid inside a
	// vararg function.
	VarargExpr struct {
		TokPos token.Pos
	}

	// NameExpr represents an identifier used as an expression. Symbol is
	// filled in by the resolver and holds the resolved binding (local,
	// upvalue, global or nil if unresolved).
	NameExpr struct {
		NamePos token.Pos
		Name    string
		Symbol  any
	}

	// ParenExpr represents a parenthesized expression, `( Expr )`. It
	// truncates a multi-value expression down to a single result, so it is
	// kept as its own node instead of being discarded during parsing.
	ParenExpr struct {
		Lparen, Rparen token.Pos
		X              Expr
	}

	// UnaryExpr represents a unary operation: not, -, #, ~, or the ravi
	// conversion operator `@type`.
	UnaryExpr struct {
		OpPos token.Pos
		Op    token.Token
		X     Expr

		// ConvType and ConvTypeName are only set when Op is AT (the ravi
		// conversion operator).
		ConvType     RaviType
		ConvTypeName string
	}

	// BinaryExpr represents a binary operation.
	BinaryExpr struct {
		OpPos token.Pos
		Op    token.Token
		X, Y  Expr
	}

	// FieldSelectorExpr represents `X.Sel` or `X:Sel` (the latter only
	// valid as the callee of a FunctionCallExpr, signaled by Method=true).
	FieldSelectorExpr struct {
		X      Expr
		Dot    token.Pos
		Sel    string
		SelPos token.Pos
		Method bool
	}

	// YIndexExpr represents `X[Y]`.
	YIndexExpr struct {
		X              Expr
		Lbrack, Rbrack token.Pos
		Y              Expr
	}

	// FunctionCallExpr represents a function or method call, `X(Args)`.
	// When the callee is a method call sugar (`recv:name(args)`), Fn is the
	// FieldSelectorExpr with Method=true.
	FunctionCallExpr struct {
		Fn             Expr
		Lparen, Rparen token.Pos
		Args           []Expr
	}

	// TableField represents a single entry of a table constructor: it may
	// be a positional value (Key == nil), a `[Key] = Value` entry, or a
	// `Name = Value` entry (Key is a *LiteralExpr string in that case).
	TableField struct {
		Key   Expr
		Value Expr
	}

	// TableConstructorExpr represents `{ Fields }`.
	TableConstructorExpr struct {
		Lbrace, Rbrace token.Pos
		Fields         []*TableField
	}

	// Param represents a single function parameter, with an optional ravi
	// type annotation.
	Param struct {
		Name    string
		NamePos token.Pos
		Type    TypeAnnotation
	}

	// FunctionExpr represents a function literal/body, shared by function
	// expressions, function statements and local function statements.
	FunctionExpr struct {
		Function token.Pos
		Lparen   token.Pos
		Params   []*Param
		IsVararg bool
		Rparen   token.Pos
		Body     *Block
		End      token.Pos

		// RetType is the declared return type, if the body ends with a ravi
		// return type annotation; ANY if absent.
		RetType TypeAnnotation

		// Symbols is filled by the resolver: the symbol table of locals and
		// upvalues captured by this function.
		Symbols any
	}
)

func (n *LiteralExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, n.Tok.Literal(n.Value), nil)
}
func (n *LiteralExpr) Span() (start, end token.Pos) {
	return n.TokPos, n.TokPos + token.Pos(len(n.Value.Raw))
}
func (n *LiteralExpr) Walk(_ Visitor) {}

func (n *VarargExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "...", nil) }
func (n *VarargExpr) Span() (start, end token.Pos)  { return n.TokPos, n.TokPos + 3 }
func (n *VarargExpr) Walk(_ Visitor)                {}

func (n *NameExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Name, nil) }
func (n *NameExpr) Span() (start, end token.Pos) {
	return n.NamePos, n.NamePos + token.Pos(len(n.Name))
}
func (n *NameExpr) Walk(_ Visitor) {}

func (n *ParenExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "(…)", nil) }
func (n *ParenExpr) Span() (start, end token.Pos) {
	return n.Lparen, n.Rparen + 1
}
func (n *ParenExpr) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
}

func (n *UnaryExpr) Format(f fmt.State, verb rune) {
	label := n.Op.String()
	if n.Op == token.AT {
		label = "@" + n.ConvType.String()
	}
	format(f, verb, n, label, nil)
}
func (n *UnaryExpr) Span() (start, end token.Pos) {
	_, xend := n.X.Span()
	return n.OpPos, xend
}
func (n *UnaryExpr) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
}

func (n *BinaryExpr) Format(f fmt.State, verb rune) { format(f, verb, n, n.Op.String(), nil) }
func (n *BinaryExpr) Span() (start, end token.Pos) {
	xstart, _ := n.X.Span()
	_, yend := n.Y.Span()
	return xstart, yend
}
func (n *BinaryExpr) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
	if n.Y != nil {
		Walk(v, n.Y)
	}
}

func (n *FieldSelectorExpr) Format(f fmt.State, verb rune) {
	sep := "."
	if n.Method {
		sep = ":"
	}
	format(f, verb, n, sep+n.Sel, nil)
}
func (n *FieldSelectorExpr) Span() (start, end token.Pos) {
	xstart, _ := n.X.Span()
	return xstart, n.SelPos + token.Pos(len(n.Sel))
}
func (n *FieldSelectorExpr) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
}

func (n *YIndexExpr) Format(f fmt.State, verb rune) { format(f, verb, n, "[…]", nil) }
func (n *YIndexExpr) Span() (start, end token.Pos) {
	xstart, _ := n.X.Span()
	return xstart, n.Rbrack + 1
}
func (n *YIndexExpr) Walk(v Visitor) {
	if n.X != nil {
		Walk(v, n.X)
	}
	if n.Y != nil {
		Walk(v, n.Y)
	}
}

func (n *FunctionCallExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "call(…)", map[string]int{"args": len(n.Args)})
}
func (n *FunctionCallExpr) Span() (start, end token.Pos) {
	xstart, _ := n.Fn.Span()
	return xstart, n.Rparen + 1
}
func (n *FunctionCallExpr) Walk(v Visitor) {
	if n.Fn != nil {
		Walk(v, n.Fn)
	}
	for _, a := range n.Args {
		Walk(v, a)
	}
}

func (n *TableConstructorExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "{…}", map[string]int{"fields": len(n.Fields)})
}
func (n *TableConstructorExpr) Span() (start, end token.Pos) {
	return n.Lbrace, n.Rbrace + 1
}
func (n *TableConstructorExpr) Walk(v Visitor) {
	for _, fld := range n.Fields {
		if fld.Key != nil {
			Walk(v, fld.Key)
		}
		if fld.Value != nil {
			Walk(v, fld.Value)
		}
	}
}

func (n *FunctionExpr) Format(f fmt.State, verb rune) {
	format(f, verb, n, "function(…)", map[string]int{"params": len(n.Params)})
}
func (n *FunctionExpr) Span() (start, end token.Pos) {
	return n.Function, n.End + 3
}
func (n *FunctionExpr) Walk(v Visitor) {
	if n.Body != nil {
		Walk(v, n.Body)
	}
}
