package parser

import (
	"github.com/mna/raviast/lang/ast"
	"github.com/mna/raviast/lang/token"
)

func (p *parser) parseChunk() *ast.Chunk {
	chunk := allocNode[ast.Chunk](p)
	chunk.Block = p.parseBlock()
	chunk.EOF = p.expect(token.EOF)

	if p.parseComments {
		p.processComments(chunk)
	}
	return chunk
}

// blockEndToks are the tokens that end the blocks of a statement without
// themselves terminating the enclosing block.
var blockEndToks = [...]token.Token{token.EOF, token.END, token.ELSE, token.ELSEIF, token.UNTIL}

func (p *parser) parseBlock(extraEnd ...token.Token) *ast.Block {
	block := allocNode[ast.Block](p)
	p.enterBlock(block)

	var ending ast.Stmt
	var endingReported bool
	for !p.atBlockEnd(extraEnd...) {
		stmt := p.parseStmt()
		if stmt == nil {
			continue
		}
		if ending != nil {
			if !endingReported {
				pos, _ := stmt.Span()
				p.error(pos, "'end' expected")
				endingReported = true
			}
		} else if stmt.BlockEnding() {
			ending = stmt
		}
		block.Stmts = append(block.Stmts, stmt)
	}

	p.exitBlock(block)
	return block
}

func (p *parser) atBlockEnd(extraEnd ...token.Token) bool {
	if tokenIn(p.tok, blockEndToks[:]...) {
		return true
	}
	return tokenIn(p.tok, extraEnd...)
}

func tokenIn(t token.Token, toks ...token.Token) bool {
	for _, tok := range toks {
		if t == tok {
			return true
		}
	}
	return false
}

// parseStmt returns nil for a statement to ignore (the ';' statement, or
// one swallowed entirely by error recovery).
func (p *parser) parseStmt() (stmt ast.Stmt) {
	start := p.val.Pos

	defer func() {
		if err := recover(); err != nil {
			if err == errPanicMode {
				bad := allocNode[ast.BadStmt](p)
				*bad = ast.BadStmt{Start: start, End: p.syncAfterError()}
				stmt = bad
				return
			}
			panic(err)
		}
	}()

	switch p.tok {
	case token.SEMICOLON:
		p.advance()
		return nil
	case token.LOCAL:
		if tok, _ := p.scanner.Lookahead(); tok == token.FUNCTION {
			return p.parseLocalFunctionStmt()
		}
		return p.parseLocalStmt()
	case token.IF:
		return p.parseIfStmt()
	case token.WHILE:
		return p.parseWhileStmt()
	case token.DO:
		return p.parseDoStmt()
	case token.FOR:
		return p.parseForStmt()
	case token.REPEAT:
		return p.parseRepeatStmt()
	case token.FUNCTION:
		return p.parseFunctionStmt()
	case token.RETURN:
		return p.parseReturnStmt()
	case token.BREAK:
		pos := p.expect(token.BREAK)
		brk := allocNode[ast.GotoStmt](p)
		*brk = ast.GotoStmt{Goto: pos, IsBreak: true}
		return brk
	case token.GOTO:
		return p.parseGotoStmt()
	case token.COLONCOLON:
		return p.parseLabelStmt()
	default:
		return p.parseExprOrAssignStmt()
	}
}

type syncMode int

const (
	syncAfter syncMode = iota
	syncAt
)

// syncToks are safe synchronization points after a parse error: tokens
// that reliably start (syncAt) or end (syncAfter) a statement and are
// never valid mid-expression, so resuming there cannot cascade errors.
var syncToks = map[token.Token]syncMode{
	token.SEMICOLON:  syncAfter,
	token.END:        syncAfter,
	token.IF:         syncAt,
	token.WHILE:      syncAt,
	token.FOR:        syncAt,
	token.REPEAT:     syncAt,
	token.DO:         syncAt,
	token.FUNCTION:   syncAt,
	token.LOCAL:      syncAt,
	token.COLONCOLON: syncAt,
	token.RETURN:     syncAt,
	token.BREAK:      syncAt,
	token.GOTO:       syncAt,
}

func (p *parser) syncAfterError() token.Pos {
	for p.tok != token.EOF {
		if mode, ok := syncToks[p.tok]; ok {
			if mode == syncAfter {
				p.advance()
			}
			return p.val.Pos
		}
		p.advance()
	}
	return p.val.Pos
}
