package parser_test

import (
	"context"
	"testing"

	"github.com/mna/raviast/lang/parser"
	"github.com/mna/raviast/lang/token"
	"github.com/stretchr/testify/require"
)

func TestContainerReleaseIsIdempotent(t *testing.T) {
	cnt, err := parser.ParseChunk(context.Background(), parser.Mode(0), token.NewFileSet(), "test.lua", []byte(`local x = 1`))
	require.NoError(t, err)

	require.False(t, cnt.Released())
	cnt.Release()
	require.True(t, cnt.Released())
	cnt.Release() // must not panic
	require.True(t, cnt.Released())
}

func TestContainerStringDumpsParsedChunk(t *testing.T) {
	cnt, err := parser.ParseChunk(context.Background(), parser.Mode(0), token.NewFileSet(), "test.lua", []byte(`local x = 1`))
	require.NoError(t, err)
	defer cnt.Release()

	out := cnt.String()
	require.Contains(t, out, "LocalStmt")
}

func TestParseFilesReturnsUsableContainerOnNoFiles(t *testing.T) {
	cnt, err := parser.ParseFiles(context.Background(), parser.Mode(0))
	require.NoError(t, err)
	require.NotNil(t, cnt)
	require.Empty(t, cnt.Chunks)
	cnt.Release()
	require.True(t, cnt.Released())
}
