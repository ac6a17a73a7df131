package lspserver

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	_ "github.com/yaklabco/mkdlint/pkg/lint/rules"
)

func TestHandleDocumentSymbol_NestsHeadingsByLevel(t *testing.T) {
	t.Parallel()

	s := New()
	uri := "file:///tmp/doc.md"
	s.documents.Open(uri, 1, "# One\n\n## Two\n\n### Three\n\n## Four\n")

	result, err := s.handleDocumentSymbol(&protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentUri(uri)},
	})
	require.NoError(t, err)

	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	require.Len(t, symbols, 1)

	root := symbols[0]
	assert.Equal(t, "One", root.Name)
	assert.Equal(t, "H1", root.Detail)
	require.Len(t, root.Children, 2)

	assert.Equal(t, "Two", root.Children[0].Name)
	require.Len(t, root.Children[0].Children, 1)
	assert.Equal(t, "Three", root.Children[0].Children[0].Name)

	assert.Equal(t, "Four", root.Children[1].Name)
	assert.Empty(t, root.Children[1].Children)
}

func TestHandleDocumentSymbol_NoHeadingsReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	s := New()
	uri := "file:///tmp/doc.md"
	s.documents.Open(uri, 1, "Just a paragraph.\n")

	result, err := s.handleDocumentSymbol(&protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: protocol.DocumentUri(uri)},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Empty(t, symbols)
}

func TestHandleDocumentSymbol_UnknownDocumentReturnsEmptySlice(t *testing.T) {
	t.Parallel()

	s := New()
	result, err := s.handleDocumentSymbol(&protocol.DocumentSymbolParams{
		TextDocument: protocol.TextDocumentIdentifier{URI: "file:///tmp/missing.md"},
	})
	require.NoError(t, err)
	symbols, ok := result.([]protocol.DocumentSymbol)
	require.True(t, ok)
	assert.Empty(t, symbols)
}

func TestHeadingLevelLabel(t *testing.T) {
	t.Parallel()

	tests := []struct {
		level int
		want  string
	}{
		{1, "H1"}, {2, "H2"}, {3, "H3"}, {4, "H4"}, {5, "H5"}, {6, "H6"}, {9, "H6"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, headingLevelLabel(tt.level))
	}
}
