package lspserver

import (
	"context"
	"fmt"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// handleCodeAction offers per-diagnostic quick fixes, a fix-all-in-file
// source action, and disable-line/disable-file actions that insert the
// mkdlint-disable inline directives pkg/lint/inlineconfig understands.
func (s *Server) handleCodeAction(params *protocol.CodeActionParams) (any, error) {
	uri := string(params.TextDocument.URI)
	doc := s.documents.Get(uri)
	if doc == nil {
		return []protocol.CodeAction{}, nil
	}

	ctx := context.Background()
	cfg := s.configFor(uri)
	result, err := s.lint.lintText(ctx, uriToPath(uri), doc.Text, cfg)
	if err != nil {
		return nil, err
	}

	var actions []protocol.CodeAction

	for i := range result.Diagnostics {
		d := &result.Diagnostics[i]
		diagRange := lineColToRange(doc.Text, d.StartLine, d.StartColumn, d.EndLine, d.EndColumn)
		if !rangesOverlap(diagRange, params.Range) {
			continue
		}

		if d.HasFix() {
			actions = append(actions, quickFixAction(uri, doc.Text, d, diagRange))
		}

		actions = append(actions,
			disableLineAction(uri, doc.Text, d.RuleID, d.StartLine),
			disableFileAction(uri, d.RuleID),
		)
	}

	if result.HasFixes() {
		actions = append(actions, protocol.CodeAction{
			Title: "Fix all mkdlint issues in this file",
			Kind:  protocol.CodeActionKindSourceFixAll,
			Command: &protocol.Command{
				Title:     "Fix all mkdlint issues in this file",
				Command:   fixAllCommand,
				Arguments: []any{uri},
			},
		})
	}

	if actions == nil {
		actions = []protocol.CodeAction{}
	}
	return actions, nil
}

func rangesOverlap(a, b protocol.Range) bool {
	return !posLess(a.End, b.Start) && !posLess(b.End, a.Start)
}

func posLess(a, b protocol.Position) bool {
	if a.Line != b.Line {
		return a.Line < b.Line
	}
	return a.Character < b.Character
}

// quickFixAction converts a diagnostic's byte-offset fix edits into an LSP
// code action over the document's current text.
func quickFixAction(uri, text string, d *lint.Diagnostic, diagRange protocol.Range) protocol.CodeAction {
	edits := make([]protocol.TextEdit, 0, len(d.FixEdits))
	for _, e := range d.FixEdits {
		edits = append(edits, protocol.TextEdit{
			Range: protocol.Range{
				Start: offsetToPosition(text, e.StartOffset),
				End:   offsetToPosition(text, e.EndOffset),
			},
			NewText: e.NewText,
		})
	}

	return protocol.CodeAction{
		Title:       fmt.Sprintf("Fix: %s", d.Message),
		Kind:        protocol.CodeActionKindQuickFix,
		Diagnostics: []protocol.Diagnostic{{Range: diagRange, Code: d.RuleID, Source: serverName, Message: d.Message}},
		IsPreferred: true,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				protocol.DocumentUri(uri): edits,
			},
		},
	}
}

// disableLineAction builds a code action that inserts a
// mkdlint-disable-line directive on the diagnostic's line.
func disableLineAction(uri, text, ruleID string, line int) protocol.CodeAction {
	_, lineText := lineBounds(text, line)
	insertion := protocol.TextEdit{
		Range: protocol.Range{
			Start: protocol.Position{Line: uint32(line - 1), Character: uint32(len(lineText))},
			End:   protocol.Position{Line: uint32(line - 1), Character: uint32(len(lineText))},
		},
		NewText: fmt.Sprintf(" <!-- mkdlint-disable-line %s -->", ruleID),
	}
	return protocol.CodeAction{
		Title: fmt.Sprintf("Disable %s for this line", ruleID),
		Kind:  protocol.CodeActionKindQuickFix,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				protocol.DocumentUri(uri): {insertion},
			},
		},
	}
}

// disableFileAction builds a code action that inserts a file-wide
// mkdlint-disable directive at the top of the document.
func disableFileAction(uri, ruleID string) protocol.CodeAction {
	insertion := protocol.TextEdit{
		Range:   protocol.Range{Start: protocol.Position{}, End: protocol.Position{}},
		NewText: fmt.Sprintf("<!-- mkdlint-disable %s -->\n", ruleID),
	}
	return protocol.CodeAction{
		Title: fmt.Sprintf("Disable %s for this file", ruleID),
		Kind:  protocol.CodeActionKindQuickFix,
		Edit: &protocol.WorkspaceEdit{
			Changes: map[protocol.DocumentUri][]protocol.TextEdit{
				protocol.DocumentUri(uri): {insertion},
			},
		},
	}
}

// lineBounds returns the byte offset and text of the given 1-based line.
func lineBounds(text string, line int) (int, string) {
	current := 1
	start := 0
	for i := 0; i < len(text); i++ {
		if current == line {
			end := i
			for end < len(text) && text[end] != '\n' {
				end++
			}
			return start, text[start:end]
		}
		if text[i] == '\n' {
			current++
			start = i + 1
		}
	}
	if current == line {
		return start, text[start:]
	}
	return 0, ""
}
