package token

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestTokenString(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		if tok.String() == "" {
			t.Errorf("missing string representation of token %d", tok)
		}
	}
}

func TestLookupKw(t *testing.T) {
	for tok := kwStart; tok <= kwEnd; tok++ {
		require.Equal(t, tok, LookupKw(tok.String()))
	}
	require.Equal(t, IDENT, LookupKw("notAKeyword"))
}

func TestLookupPunct(t *testing.T) {
	for tok := punctStart; tok <= punctEnd; tok++ {
		require.Equal(t, tok, LookupPunct(tok.String()))
	}
	require.Equal(t, ILLEGAL, LookupPunct("$$$"))
}

func TestIsKeyword(t *testing.T) {
	for tok := Token(0); tok < maxToken; tok++ {
		expect := tok >= kwStart && tok <= kwEnd
		require.Equal(t, expect, tok.IsKeyword())
	}
}

func TestIsBinop(t *testing.T) {
	for _, tok := range []Token{OR, AND, LT, GT, LE, GE, EQEQ, BANGEQ, PLUS, MINUS, STAR, SLASH, DOTDOT, CIRCUMFLEX} {
		require.True(t, tok.IsBinop(), tok.String())
	}
	for _, tok := range []Token{NOT, HASH, LPAREN, IDENT, IF} {
		require.False(t, tok.IsBinop(), tok.String())
	}
}

func TestIsUnop(t *testing.T) {
	for _, tok := range []Token{NOT, MINUS, HASH, TILDE, AT} {
		require.True(t, tok.IsUnop(), tok.String())
	}
	for _, tok := range []Token{PLUS, AND, LPAREN} {
		require.False(t, tok.IsUnop(), tok.String())
	}
}

func TestIsAtom(t *testing.T) {
	for _, tok := range []Token{INT, FLOAT, STRING, NIL, TRUE, FALSE, DOTDOTDOT} {
		require.True(t, tok.IsAtom(), tok.String())
	}
	for _, tok := range []Token{IDENT, LPAREN, PLUS} {
		require.False(t, tok.IsAtom(), tok.String())
	}
}

func TestLiteral(t *testing.T) {
	val := Value{
		Raw:    "ident",
		String: "string",
		Int:    1,
		Float:  2,
	}

	require.Equal(t, val.Raw, IDENT.Literal(val))
	require.Equal(t, `"string"`, STRING.Literal(val))
	require.Equal(t, val.String, COMMENT.Literal(val))
	require.Equal(t, "1", INT.Literal(val))
	require.Equal(t, "2", FLOAT.Literal(val))
	require.Equal(t, "", ILLEGAL.Literal(val))
}
