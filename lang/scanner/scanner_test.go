package scanner_test

import (
	"testing"

	"github.com/mna/raviast/lang/scanner"
	"github.com/mna/raviast/lang/token"
	"github.com/stretchr/testify/require"
)

func scanAll(t *testing.T, src string) ([]scanner.TokenAndValue, string) {
	t.Helper()
	fs := token.NewFileSet()
	f := fs.AddFile("test.lua", -1, len(src))

	var el scanner.ErrorList
	var s scanner.Scanner
	s.Init(f, []byte(src), el.Add)

	var toks []scanner.TokenAndValue
	var v token.Value
	for {
		tok := s.Scan(&v)
		toks = append(toks, scanner.TokenAndValue{Token: tok, Value: v})
		if tok == token.EOF {
			break
		}
	}
	errStr := ""
	if err := el.Err(); err != nil {
		errStr = err.Error()
	}
	return toks, errStr
}

func kinds(toks []scanner.TokenAndValue) []token.Token {
	out := make([]token.Token, len(toks))
	for i, tv := range toks {
		out[i] = tv.Token
	}
	return out
}

func TestScanKeywordsAndIdents(t *testing.T) {
	toks, errs := scanAll(t, "local x = function end")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.LOCAL, token.IDENT, token.EQ, token.FUNCTION, token.END, token.EOF}, kinds(toks))
	require.Equal(t, "x", toks[1].Value.Raw)
}

func TestScanRaviTypeAnnotation(t *testing.T) {
	toks, errs := scanAll(t, "local x: integer = 1")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.LOCAL, token.IDENT, token.COLON, token.IDENT, token.EQ, token.INT, token.EOF}, kinds(toks))
}

func TestScanConversionOperator(t *testing.T) {
	toks, errs := scanAll(t, "local y = @integer[] x")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.LOCAL, token.IDENT, token.EQ, token.AT, token.IDENT, token.LBRACK, token.RBRACK, token.IDENT, token.EOF}, kinds(toks))
}

func TestScanNumbers(t *testing.T) {
	toks, errs := scanAll(t, "1 1.5 0x1F 0x1p4 1e10")
	require.Empty(t, errs)
	require.Equal(t, token.INT, toks[0].Token)
	require.EqualValues(t, 1, toks[0].Value.Int)
	require.Equal(t, token.FLOAT, toks[1].Token)
	require.Equal(t, token.INT, toks[2].Token)
	require.EqualValues(t, 31, toks[2].Value.Int)
	require.Equal(t, token.FLOAT, toks[3].Token)
	require.Equal(t, token.FLOAT, toks[4].Token)
}

func TestScanShortString(t *testing.T) {
	toks, errs := scanAll(t, `"hello\nworld"`)
	require.Empty(t, errs)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, "hello\nworld", toks[0].Value.String)
}

func TestScanLongString(t *testing.T) {
	toks, errs := scanAll(t, "[==[ a ]] still going ]==]")
	require.Empty(t, errs)
	require.Equal(t, token.STRING, toks[0].Token)
	require.Equal(t, " a ]] still going ", toks[0].Value.String)
}

func TestScanComments(t *testing.T) {
	toks, errs := scanAll(t, "-- line comment\n--[[ long\ncomment ]] x")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{token.COMMENT, token.COMMENT, token.IDENT, token.EOF}, kinds(toks))
	require.Equal(t, " line comment", toks[0].Value.String)
	require.Equal(t, " long\ncomment ", toks[1].Value.String)
}

func TestScanOperators(t *testing.T) {
	toks, errs := scanAll(t, "== ~= <= >= < > .. ... // << >>")
	require.Empty(t, errs)
	require.Equal(t, []token.Token{
		token.EQEQ, token.BANGEQ, token.LE, token.GE, token.LT, token.GT,
		token.DOTDOT, token.DOTDOTDOT, token.SLASHSLASH, token.LTLT, token.GTGT, token.EOF,
	}, kinds(toks))
}

func TestScanUnterminatedString(t *testing.T) {
	_, errs := scanAll(t, `"unterminated`)
	require.Contains(t, errs, "string literal not terminated")
}

func TestScanIllegalCharacter(t *testing.T) {
	_, errs := scanAll(t, "$")
	require.Contains(t, errs, "illegal character")
}
