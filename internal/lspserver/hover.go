package lspserver

import (
	"context"
	"fmt"
	"strings"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// handleHover answers textDocument/hover with the concatenated documentation
// of every rule firing on the hovered line, marking fixable rules with a
// wrench so a reader knows --fix (or the fixAll command) would resolve them.
func (s *Server) handleHover(params *protocol.HoverParams) (any, error) {
	uri := string(params.TextDocument.URI)
	doc := s.documents.Get(uri)
	if doc == nil {
		return nil, nil //nolint:nilnil // LSP: no hover for an unknown document
	}

	cfg := s.configFor(uri)
	result, err := s.lint.lintText(context.Background(), uriToPath(uri), doc.Text, cfg)
	if err != nil {
		return nil, err
	}

	line := int(params.Position.Line) + 1

	var lines []string
	var hoverRange *protocol.Range
	for i := range result.Diagnostics {
		d := &result.Diagnostics[i]
		if d.StartLine != line {
			continue
		}

		lines = append(lines, hoverLineFor(d))
		if hoverRange == nil {
			r := lineColToRange(doc.Text, d.StartLine, d.StartColumn, d.EndLine, d.EndColumn)
			hoverRange = &r
		}
	}

	if len(lines) == 0 {
		return nil, nil //nolint:nilnil // LSP: nothing to report at this position
	}

	return &protocol.Hover{
		Contents: protocol.MarkupContent{
			Kind:  protocol.MarkupKindMarkdown,
			Value: strings.Join(lines, "\n\n"),
		},
		Range: hoverRange,
	}, nil
}

// hoverLineFor formats one diagnostic's rule documentation for hover text.
func hoverLineFor(d *lint.Diagnostic) string {
	rule, ok := lint.DefaultRegistry.Get(d.RuleID)
	if !ok {
		return fmt.Sprintf("**%s** — %s", d.RuleID, d.Message)
	}

	marker := ""
	if rule.CanFix() {
		marker = " 🔧"
	}

	return fmt.Sprintf("**%s** (%s)%s\n\n%s", rule.ID(), rule.Name(), marker, rule.Description())
}
