package parser

import (
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/token"
)

// priority holds the left/right binding power of a binary operator, as in
// the reference lparser.c priority table: left is used when the operator
// is on the right of a subexpression (normal case), right is used for the
// recursive call on the right operand, and is lower than left for a
// right-associative operator ('..' and '^').
type priority struct{ left, right int }

var binPriority = map[token.Token]priority{
	token.OR:         {1, 1},
	token.AND:        {2, 2},
	token.LT:         {3, 3},
	token.GT:         {3, 3},
	token.LE:         {3, 3},
	token.GE:         {3, 3},
	token.BANGEQ:     {3, 3},
	token.EQEQ:       {3, 3},
	token.PIPE:       {4, 4},
	token.TILDE:      {5, 5},
	token.AMPERSAND:  {6, 6},
	token.LTLT:       {7, 7},
	token.GTGT:       {7, 7},
	token.DOTDOT:     {9, 8}, // right-associative
	token.PLUS:       {10, 10},
	token.MINUS:      {10, 10},
	token.STAR:       {11, 11},
	token.SLASH:      {11, 11},
	token.SLASHSLASH: {11, 11},
	token.PERCENT:    {11, 11},
	token.CIRCUMFLEX: {14, 13}, // right-associative
}

const unaryPriority = 12

func (p *parser) parseExpr() ast.Expr {
	return p.parseSubExpr(0)
}

// parseSubExpr implements precedence-climbing: it parses a unary or
// primary expression, then extends it with any binary operators whose
// left priority exceeds limit.
func (p *parser) parseSubExpr(limit int) ast.Expr {
	var x ast.Expr

	if p.tok.IsUnop() {
		opPos, op := p.val.Pos, p.tok
		if op == token.AT {
			x = p.parseConversionExpr()
		} else {
			p.advance()
			operand := p.parseSubExpr(unaryPriority)
			un := allocNode[ast.UnaryExpr](p)
			*un = ast.UnaryExpr{OpPos: opPos, Op: op, X: operand}
			x = un
		}
	} else {
		x = p.parsePrimaryOrSimpleExpr()
	}

	for {
		pri, ok := binPriority[p.tok]
		if !ok || pri.left <= limit {
			break
		}
		opPos, op := p.val.Pos, p.tok
		p.advance()
		y := p.parseSubExpr(pri.right)
		bin := allocNode[ast.BinaryExpr](p)
		*bin = ast.BinaryExpr{OpPos: opPos, Op: op, X: x, Y: y}
		x = bin
	}
	return x
}

// parseConversionExpr parses the ravi `@type expr` prefix operator, where
// an `integer` or `number` type may be followed by `[]` to convert to the
// corresponding array type.
func (p *parser) parseConversionExpr() ast.Expr {
	opPos := p.val.Pos
	p.advance() // consume '@'

	typ, name := p.parseTypeName()
	if p.tok == token.LBRACK {
		lbrack := p.val.Pos
		p.advance()
		p.expectClose(token.RBRACK, token.LBRACK, lbrack)
		switch typ {
		case ast.INTEGER:
			typ = ast.ARRAY_INTEGER
		case ast.FLOAT:
			typ = ast.ARRAY_FLOAT
		default:
			p.error(lbrack, "invalid array element type")
		}
	}
	operand := p.parseSubExpr(unaryPriority)
	conv := allocNode[ast.UnaryExpr](p)
	*conv = ast.UnaryExpr{OpPos: opPos, Op: token.AT, X: operand, ConvType: typ, ConvTypeName: name}
	return conv
}

// parseTypeName parses a single ravi type annotation name (a keyword type
// like "integer" or a dotted user type name), classifying it into a
// RaviType plus, for USERDATA, the raw dotted name.
func (p *parser) parseTypeName() (ast.RaviType, string) {
	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "type name")
		panic(errPanicMode)
	}
	name := p.val.Raw
	namePos := p.val.Pos
	p.advance()

	for p.tok == token.DOT {
		p.advance()
		if p.tok != token.IDENT {
			p.errorExpected(p.val.Pos, "name")
			panic(errPanicMode)
		}
		name += "." + p.val.Raw
		p.advance()
	}

	switch name {
	case "any":
		return ast.ANY, ""
	case "nil":
		return ast.NIL, ""
	case "boolean":
		return ast.BOOLEAN, ""
	case "integer":
		return ast.INTEGER, ""
	case "number":
		return ast.FLOAT, ""
	case "table":
		return ast.TABLE, ""
	case "string":
		return ast.STRING, ""
	case "closure":
		return ast.FUNCTION, ""
	}

	if len(name) > 127 {
		p.error(namePos, "User defined type name is too long")
	}
	return ast.USERDATA, name
}

// parseTypeAnnotation parses an optional `: Type` or `: Type[]` suffix,
// returning the ANY annotation if none is present.
func (p *parser) parseTypeAnnotation() ast.TypeAnnotation {
	if p.tok != token.COLON {
		return ast.TypeAnnotation{Type: ast.ANY}
	}
	p.advance()
	typ, name := p.parseTypeName()
	if p.tok == token.LBRACK {
		p.advance()
		p.expectClose(token.RBRACK, token.LBRACK, p.val.Pos)
		switch typ {
		case ast.INTEGER:
			typ = ast.ARRAY_INTEGER
		case ast.FLOAT:
			typ = ast.ARRAY_FLOAT
		default:
			p.error(p.val.Pos, "invalid array element type")
		}
	}
	return ast.TypeAnnotation{Type: typ, Name: name}
}

// parsePrimaryOrSimpleExpr parses a literal, vararg, table constructor,
// function literal, or a suffixed expression rooted at a name or
// parenthesized expression.
func (p *parser) parsePrimaryOrSimpleExpr() ast.Expr {
	switch {
	case p.tok.IsAtom():
		tok, val, pos := p.tok, p.val, p.val.Pos
		p.advance()
		if tok == token.DOTDOTDOT {
			if !p.inVararg() {
				p.error(pos, "cannot use '...' outside a vararg function")
			}
			vararg := allocNode[ast.VarargExpr](p)
			*vararg = ast.VarargExpr{TokPos: pos}
			return vararg
		}
		lit := allocNode[ast.LiteralExpr](p)
		*lit = ast.LiteralExpr{TokPos: pos, Tok: tok, Value: val}
		return lit
	case p.tok == token.LBRACE:
		return p.parseTableConstructor()
	case p.tok == token.FUNCTION:
		return p.parseFunctionExpr()
	default:
		return p.parseSuffixedExpr()
	}
}

// parsePrimaryExpr parses the root of a suffixed expression: a
// parenthesized expression or a bare name.
func (p *parser) parsePrimaryExpr() ast.Expr {
	switch p.tok {
	case token.LPAREN:
		lparen := p.val.Pos
		p.advance()
		x := p.parseExpr()
		rparen := p.expectClose(token.RPAREN, token.LPAREN, lparen)
		paren := allocNode[ast.ParenExpr](p)
		*paren = ast.ParenExpr{Lparen: lparen, Rparen: rparen, X: x}
		return paren
	case token.IDENT:
		name, pos := p.val.Raw, p.val.Pos
		p.advance()
		nameExpr := allocNode[ast.NameExpr](p)
		*nameExpr = ast.NameExpr{NamePos: pos, Name: name}
		return nameExpr
	default:
		p.unexpected(p.val.Pos)
		return nil
	}
}

// parseSuffixedExpr parses a primary expression followed by any number of
// '.', ':', '[', or '(' suffixes (selectors, indexing, calls).
func (p *parser) parseSuffixedExpr() ast.Expr {
	x := p.parsePrimaryExpr()
	for {
		switch p.tok {
		case token.DOT:
			dot := p.val.Pos
			p.advance()
			if p.tok != token.IDENT {
				p.errorExpected(p.val.Pos, "name")
				panic(errPanicMode)
			}
			sel, selPos := p.val.Raw, p.val.Pos
			p.advance()
			fld := allocNode[ast.FieldSelectorExpr](p)
			*fld = ast.FieldSelectorExpr{X: x, Dot: dot, Sel: sel, SelPos: selPos}
			x = fld
		case token.COLON:
			dot := p.val.Pos
			p.advance()
			if p.tok != token.IDENT {
				p.errorExpected(p.val.Pos, "name")
				panic(errPanicMode)
			}
			sel, selPos := p.val.Raw, p.val.Pos
			p.advance()
			meth := allocNode[ast.FieldSelectorExpr](p)
			*meth = ast.FieldSelectorExpr{X: x, Dot: dot, Sel: sel, SelPos: selPos, Method: true}
			x = p.parseCallArgs(meth)
		case token.LBRACK:
			lbrack := p.val.Pos
			p.advance()
			y := p.parseExpr()
			rbrack := p.expectClose(token.RBRACK, token.LBRACK, lbrack)
			idx := allocNode[ast.YIndexExpr](p)
			*idx = ast.YIndexExpr{X: x, Lbrack: lbrack, Rbrack: rbrack, Y: y}
			x = idx
		case token.LPAREN, token.STRING, token.LBRACE:
			x = p.parseCallArgs(x)
		default:
			return x
		}
	}
}

// parseCallArgs parses the arguments of a call applied to fn: a
// parenthesized, possibly empty, comma-separated expression list, a bare
// string literal, or a table constructor (both of the latter being
// syntactic sugar for a single-argument call).
func (p *parser) parseCallArgs(fn ast.Expr) ast.Expr {
	switch p.tok {
	case token.STRING:
		tok, val, pos := p.tok, p.val, p.val.Pos
		p.advance()
		lit := allocNode[ast.LiteralExpr](p)
		*lit = ast.LiteralExpr{TokPos: pos, Tok: tok, Value: val}
		call := allocNode[ast.FunctionCallExpr](p)
		*call = ast.FunctionCallExpr{Fn: fn, Lparen: pos, Rparen: pos, Args: []ast.Expr{lit}}
		return call
	case token.LBRACE:
		tbl := p.parseTableConstructor()
		lbrace, rbrace := tbl.Span()
		call := allocNode[ast.FunctionCallExpr](p)
		*call = ast.FunctionCallExpr{Fn: fn, Lparen: lbrace, Rparen: rbrace, Args: []ast.Expr{tbl}}
		return call
	default:
		lparen := p.expect(token.LPAREN)
		var args []ast.Expr
		if p.tok != token.RPAREN {
			args = p.parseExprList()
		}
		rparen := p.expectClose(token.RPAREN, token.LPAREN, lparen)
		call := allocNode[ast.FunctionCallExpr](p)
		*call = ast.FunctionCallExpr{Fn: fn, Lparen: lparen, Rparen: rparen, Args: args}
		return call
	}
}

func (p *parser) parseExprList() []ast.Expr {
	exprs := []ast.Expr{p.parseExpr()}
	for p.tok == token.COMMA {
		p.advance()
		exprs = append(exprs, p.parseExpr())
	}
	return exprs
}

func (p *parser) parseTableConstructor() *ast.TableConstructorExpr {
	lbrace := p.expect(token.LBRACE)
	var fields []*ast.TableField

	for p.tok != token.RBRACE {
		field := allocNode[ast.TableField](p)
		switch {
		case p.tok == token.LBRACK:
			p.advance()
			key := p.parseExpr()
			p.expectClose(token.RBRACK, token.LBRACK, p.val.Pos)
			p.expect(token.EQ)
			value := p.parseExpr()
			*field = ast.TableField{Key: key, Value: value}
		case p.tok == token.IDENT && p.peekIsAssign():
			name, pos := p.val.Raw, p.val.Pos
			p.advance()
			p.advance() // consume '='
			value := p.parseExpr()
			key := allocNode[ast.LiteralExpr](p)
			*key = ast.LiteralExpr{TokPos: pos, Tok: token.STRING, Value: token.Value{String: name, Raw: name}}
			*field = ast.TableField{Key: key, Value: value}
		default:
			value := p.parseExpr()
			*field = ast.TableField{Value: value}
		}
		fields = append(fields, field)

		if p.tok == token.COMMA || p.tok == token.SEMICOLON {
			p.advance()
		} else {
			break
		}
	}

	rbrace := p.expectClose(token.RBRACE, token.LBRACE, lbrace)
	tbl := allocNode[ast.TableConstructorExpr](p)
	*tbl = ast.TableConstructorExpr{Lbrace: lbrace, Rbrace: rbrace, Fields: fields}
	return tbl
}

// peekIsAssign reports whether the current IDENT token is immediately
// followed by '=', which disambiguates a `Name = Value` table field from a
// positional expression starting with a name.
func (p *parser) peekIsAssign() bool {
	tok, _ := p.scanner.Lookahead()
	return tok == token.EQ
}

func (p *parser) parseFunctionExpr() *ast.FunctionExpr {
	fnPos := p.expect(token.FUNCTION)
	return p.parseFunctionBody(fnPos)
}

// parseFunctionBody parses the `(Params) Body end` part shared by function
// expressions, function statements and local function statements.
func (p *parser) parseFunctionBody(fnPos token.Pos) *ast.FunctionExpr {
	lparen := p.expect(token.LPAREN)

	var params []*ast.Param
	isVararg := false
	for p.tok != token.RPAREN {
		if p.tok == token.DOTDOTDOT {
			p.advance()
			isVararg = true
			break
		}
		if p.tok != token.IDENT {
			p.errorExpected(p.val.Pos, "<name> or '...'")
			panic(errPanicMode)
		}
		name, pos := p.val.Raw, p.val.Pos
		p.advance()
		typ := p.parseTypeAnnotation()
		param := allocNode[ast.Param](p)
		*param = ast.Param{Name: name, NamePos: pos, Type: typ}
		params = append(params, param)

		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}
	rparen := p.expectClose(token.RPAREN, token.LPAREN, lparen)

	retType := p.parseTypeAnnotation()

	p.varargStack = append(p.varargStack, isVararg)
	body := p.parseBlock()
	p.varargStack = p.varargStack[:len(p.varargStack)-1]
	end := p.expectClose(token.END, token.FUNCTION, fnPos)

	fn := allocNode[ast.FunctionExpr](p)
	*fn = ast.FunctionExpr{
		Function: fnPos,
		Lparen:   lparen,
		Params:   params,
		IsVararg: isVararg,
		Rparen:   rparen,
		Body:     body,
		End:      end,
		RetType:  retType,
	}
	return fn
}
