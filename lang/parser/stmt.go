package parser

import (
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/token"
)

// parseLocalStmt parses `local Names[: Types] [= Exprs]`.
func (p *parser) parseLocalStmt() *ast.LocalStmt {
	stmt := allocNode[ast.LocalStmt](p)
	stmt.Local = p.expect(token.LOCAL)

	for {
		if p.tok != token.IDENT {
			p.errorExpected(p.val.Pos, "name")
			panic(errPanicMode)
		}
		stmt.Names = append(stmt.Names, p.val.Raw)
		stmt.NamePos = append(stmt.NamePos, p.val.Pos)
		p.advance()
		stmt.Types = append(stmt.Types, p.parseTypeAnnotation())

		if p.tok == token.COMMA {
			p.advance()
		} else {
			break
		}
	}

	if p.tok == token.EQ {
		stmt.Assign = p.val.Pos
		p.advance()
		stmt.Exprs = p.parseExprList()
	}
	return stmt
}

// parseIfStmt parses `if Cond then Body (elseif Cond then Body)* (else
// Body)? end`.
func (p *parser) parseIfStmt() *ast.IfStmt {
	stmt := allocNode[ast.IfStmt](p)

	for {
		ifPos := p.val.Pos
		p.advance() // consume 'if' or 'elseif'
		cond := p.parseExpr()
		then := p.expect(token.THEN)
		body := p.parseBlock()
		clause := allocNode[ast.IfClause](p)
		*clause = ast.IfClause{If: ifPos, Cond: cond, Then: then, Body: body}
		stmt.Clauses = append(stmt.Clauses, clause)
		if p.tok != token.ELSEIF {
			break
		}
	}

	if p.tok == token.ELSE {
		p.advance()
		stmt.Else = p.parseBlock()
	}
	stmt.End = p.expectClose(token.END, token.IF, stmt.Clauses[0].If)
	return stmt
}

// parseWhileStmt parses `while Cond do Body end`.
func (p *parser) parseWhileStmt() *ast.WhileStmt {
	stmt := allocNode[ast.WhileStmt](p)
	stmt.While = p.expect(token.WHILE)
	stmt.Cond = p.parseExpr()
	stmt.Do = p.expect(token.DO)
	stmt.Body = p.parseBlock()
	stmt.End = p.expectClose(token.END, token.WHILE, stmt.While)
	return stmt
}

// parseRepeatStmt parses `repeat Body until Cond`; note the condition is
// scoped inside the body's block, so locals declared in Body are visible
// in Cond.
func (p *parser) parseRepeatStmt() *ast.RepeatStmt {
	stmt := allocNode[ast.RepeatStmt](p)
	stmt.Repeat = p.expect(token.REPEAT)
	stmt.Body = p.parseBlock(token.UNTIL)
	stmt.Until = p.expectClose(token.UNTIL, token.REPEAT, stmt.Repeat)
	stmt.Cond = p.parseExpr()
	return stmt
}

// parseDoStmt parses a bare `do Body end` block.
func (p *parser) parseDoStmt() *ast.DoStmt {
	stmt := allocNode[ast.DoStmt](p)
	stmt.Do = p.expect(token.DO)
	stmt.Body = p.parseBlock()
	stmt.End = p.expectClose(token.END, token.DO, stmt.Do)
	return stmt
}

// parseForStmt disambiguates the numeric form `for Name = Start, Stop[,
// Step] do` from the generic form `for Names in Exprs do`, by parsing the
// first name and looking at the token that follows it.
func (p *parser) parseForStmt() ast.Stmt {
	forPos := p.expect(token.FOR)

	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "name")
		panic(errPanicMode)
	}
	name, namePos := p.val.Raw, p.val.Pos
	p.advance()

	typ := p.parseTypeAnnotation()

	if p.tok == token.EQ {
		return p.parseForNumStmt(forPos, name, namePos, typ)
	}
	return p.parseForInStmt(forPos, name, namePos, typ)
}

func (p *parser) parseForNumStmt(forPos token.Pos, name string, namePos token.Pos, typ ast.TypeAnnotation) *ast.ForNumStmt {
	stmt := allocNode[ast.ForNumStmt](p)
	stmt.For = forPos
	stmt.Name = name
	stmt.NamePos = namePos
	stmt.Type = typ

	p.expect(token.EQ)
	stmt.Start = p.parseExpr()
	p.expect(token.COMMA)
	stmt.Stop = p.parseExpr()
	if p.tok == token.COMMA {
		p.advance()
		stmt.Step = p.parseExpr()
	}

	stmt.Do = p.expect(token.DO)
	stmt.Body = p.parseBlock()
	stmt.End = p.expectClose(token.END, token.FOR, forPos)
	return stmt
}

func (p *parser) parseForInStmt(forPos token.Pos, firstName string, firstNamePos token.Pos, firstType ast.TypeAnnotation) *ast.ForInStmt {
	stmt := allocNode[ast.ForInStmt](p)
	stmt.For = forPos
	stmt.Names = []string{firstName}
	stmt.NamePos = []token.Pos{firstNamePos}
	stmt.Types = []ast.TypeAnnotation{firstType}

	for p.tok == token.COMMA {
		p.advance()
		if p.tok != token.IDENT {
			p.errorExpected(p.val.Pos, "name")
			panic(errPanicMode)
		}
		stmt.Names = append(stmt.Names, p.val.Raw)
		stmt.NamePos = append(stmt.NamePos, p.val.Pos)
		p.advance()
		stmt.Types = append(stmt.Types, p.parseTypeAnnotation())
	}

	stmt.In = p.expect(token.IN)
	stmt.Exprs = p.parseExprList()
	stmt.Do = p.expect(token.DO)
	stmt.Body = p.parseBlock()
	stmt.End = p.expectClose(token.END, token.FOR, forPos)
	return stmt
}

// parseFunctionStmt parses `function Name(.Name|:Name)* (Params) Body
// end`, prepending an implicit `self` parameter when the name chain ends
// in a method (`:Name`) sugar.
func (p *parser) parseFunctionStmt() *ast.FunctionStmt {
	stmt := allocNode[ast.FunctionStmt](p)
	stmt.Function = p.expect(token.FUNCTION)

	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "name")
		panic(errPanicMode)
	}
	stmt.Names = append(stmt.Names, p.val.Raw)
	stmt.NamePos = append(stmt.NamePos, p.val.Pos)
	p.advance()

	for p.tok == token.DOT {
		p.advance()
		if p.tok != token.IDENT {
			p.errorExpected(p.val.Pos, "name")
			panic(errPanicMode)
		}
		stmt.Names = append(stmt.Names, p.val.Raw)
		stmt.NamePos = append(stmt.NamePos, p.val.Pos)
		p.advance()
	}

	if p.tok == token.COLON {
		p.advance()
		if p.tok != token.IDENT {
			p.errorExpected(p.val.Pos, "name")
			panic(errPanicMode)
		}
		stmt.Names = append(stmt.Names, p.val.Raw)
		stmt.NamePos = append(stmt.NamePos, p.val.Pos)
		p.advance()
		stmt.Method = true
	}

	stmt.Fn = p.parseFunctionBody(stmt.Function)
	if stmt.Method {
		self := allocNode[ast.Param](p)
		*self = ast.Param{Name: "self", NamePos: stmt.Function, Type: ast.TypeAnnotation{Type: ast.ANY}}
		stmt.Fn.Params = append([]*ast.Param{self}, stmt.Fn.Params...)
	}
	return stmt
}

// parseLocalFunctionStmt parses `local function Name (Params) Body end`.
func (p *parser) parseLocalFunctionStmt() *ast.LocalFunctionStmt {
	stmt := allocNode[ast.LocalFunctionStmt](p)
	stmt.Local = p.expect(token.LOCAL)
	p.expect(token.FUNCTION)

	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "name")
		panic(errPanicMode)
	}
	stmt.Name = p.val.Raw
	stmt.NamePos = p.val.Pos
	fnPos := p.val.Pos
	p.advance()

	stmt.Fn = p.parseFunctionBody(fnPos)
	return stmt
}

// parseReturnStmt parses `return Exprs? ;?`; it is always the last
// statement parsed in its enclosing block.
func (p *parser) parseReturnStmt() *ast.ReturnStmt {
	stmt := allocNode[ast.ReturnStmt](p)
	stmt.Return = p.expect(token.RETURN)

	if !p.atBlockEnd() && p.tok != token.SEMICOLON {
		stmt.Exprs = p.parseExprList()
	}
	if p.tok == token.SEMICOLON {
		p.advance()
	}
	return stmt
}

// parseLabelStmt parses `::Name::`.
func (p *parser) parseLabelStmt() *ast.LabelStmt {
	stmt := allocNode[ast.LabelStmt](p)
	stmt.Start = p.expect(token.COLONCOLON)

	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "name")
		panic(errPanicMode)
	}
	stmt.Name = p.val.Raw
	stmt.NamePos = p.val.Pos
	p.advance()

	stmt.End = p.expect(token.COLONCOLON)
	return stmt
}

// parseGotoStmt parses `goto Name`.
func (p *parser) parseGotoStmt() *ast.GotoStmt {
	stmt := allocNode[ast.GotoStmt](p)
	stmt.Goto = p.expect(token.GOTO)

	if p.tok != token.IDENT {
		p.errorExpected(p.val.Pos, "name")
		panic(errPanicMode)
	}
	stmt.Name = p.val.Raw
	stmt.NamePos = p.val.Pos
	p.advance()
	return stmt
}

// parseExprOrAssignStmt parses either a bare expression statement, or an
// assignment `Lhs (, Lhs)* = Rhs (, Rhs)*`. Whether a bare expression
// statement must be a function call is a semantic property, checked by
// a later pass, not here.
func (p *parser) parseExprOrAssignStmt() ast.Stmt {
	x := p.parseSuffixedExpr()

	if p.tok != token.COMMA && p.tok != token.EQ {
		exprStmt := allocNode[ast.ExprStmt](p)
		*exprStmt = ast.ExprStmt{X: x}
		return exprStmt
	}

	lhs := []ast.Expr{x}
	for p.tok == token.COMMA {
		p.advance()
		lhs = append(lhs, p.parseSuffixedExpr())
	}

	assign := p.expect(token.EQ)
	rhs := p.parseExprList()
	assignStmt := allocNode[ast.AssignStmt](p)
	*assignStmt = ast.AssignStmt{Lhs: lhs, Assign: assign, Rhs: rhs}
	return assignStmt
}
