package lspserver

import (
	"context"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/lint"
	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// handleDocumentSymbol answers textDocument/documentSymbol with a nested
// outline of the document's headings, derived from the parsed heading tree.
func (s *Server) handleDocumentSymbol(params *protocol.DocumentSymbolParams) (any, error) {
	uri := string(params.TextDocument.URI)
	doc := s.documents.Get(uri)
	if doc == nil {
		return []protocol.DocumentSymbol{}, nil
	}

	cfg := s.configFor(uri)
	result, err := s.lint.lintText(context.Background(), uriToPath(uri), doc.Text, cfg)
	if err != nil {
		return nil, err
	}
	if result.Snapshot == nil || result.Snapshot.Root == nil {
		return []protocol.DocumentSymbol{}, nil
	}

	headings := lint.Headings(result.Snapshot.Root)
	return headingOutline(headings, doc.Text), nil
}

// outlineNode is a heap-allocated intermediate used to build the heading
// tree; unlike protocol.DocumentSymbol it carries a level field and its
// Children grow by pointer, so nesting a heading never invalidates a pointer
// held by an ancestor further up the stack.
type outlineNode struct {
	level    int
	symbol   protocol.DocumentSymbol
	children []*outlineNode
}

// headingOutline builds a nested heading tree from the flat, source-ordered
// list headings returns, nesting each heading under the nearest preceding
// heading of a strictly lower level (roots may appear at any level, per a
// well-formed heading tree).
func headingOutline(headings []*mdast.Node, text string) []protocol.DocumentSymbol {
	var roots []*outlineNode
	var stack []*outlineNode

	for _, h := range headings {
		level := lint.HeadingLevel(h)
		pos := h.SourcePosition()
		symRange := lineColToRange(text, pos.StartLine, pos.StartColumn, pos.EndLine, pos.EndColumn)

		node := &outlineNode{
			level: level,
			symbol: protocol.DocumentSymbol{
				Name:           lint.HeadingText(h),
				Detail:         headingLevelLabel(level),
				Kind:           protocol.SymbolKindString,
				Range:          symRange,
				SelectionRange: symRange,
			},
		}

		for len(stack) > 0 && stack[len(stack)-1].level >= level {
			stack = stack[:len(stack)-1]
		}

		if len(stack) == 0 {
			roots = append(roots, node)
		} else {
			parent := stack[len(stack)-1]
			parent.children = append(parent.children, node)
		}
		stack = append(stack, node)
	}

	return toDocumentSymbols(roots)
}

// toDocumentSymbols converts an outlineNode tree into the protocol's
// DocumentSymbol shape, recursively attaching children.
func toDocumentSymbols(nodes []*outlineNode) []protocol.DocumentSymbol {
	out := make([]protocol.DocumentSymbol, 0, len(nodes))
	for _, n := range nodes {
		sym := n.symbol
		sym.Children = toDocumentSymbols(n.children)
		out = append(out, sym)
	}
	return out
}

func headingLevelLabel(level int) string {
	switch level {
	case 1:
		return "H1"
	case 2:
		return "H2"
	case 3:
		return "H3"
	case 4:
		return "H4"
	case 5:
		return "H5"
	default:
		return "H6"
	}
}
