package lspserver

import (
	"context"
	"fmt"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// handleExecuteCommand dispatches workspace/executeCommand. The only
// command mkdlint's server advertises is fixAllCommand, which runs the same
// bounded fix-convergence loop as `mkdlint --fix` in memory and returns a
// WorkspaceEdit replacing the document's full text.
func (s *Server) handleExecuteCommand(ctx context.Context, params *protocol.ExecuteCommandParams) (any, error) {
	switch params.Command {
	case fixAllCommand:
		return s.executeFixAll(ctx, params.Arguments)
	default:
		return nil, fmt.Errorf("unknown command: %s", params.Command)
	}
}

func (s *Server) executeFixAll(ctx context.Context, args []any) (any, error) {
	if len(args) == 0 {
		return nil, fmt.Errorf("%s: missing document uri argument", fixAllCommand)
	}
	uri, ok := args[0].(string)
	if !ok {
		return nil, fmt.Errorf("%s: argument must be a document uri", fixAllCommand)
	}

	doc := s.documents.Get(uri)
	if doc == nil {
		return nil, fmt.Errorf("%s: document not open: %s", fixAllCommand, uri)
	}

	cfg := s.configFor(uri)
	pipeline := lint.NewPipeline(s.lint.engine)
	result, err := pipeline.ProcessContent(ctx, uriToPath(uri), []byte(doc.Text), cfg, lint.PipelineOptions{
		Fix: true,
	})
	if err != nil {
		return nil, err
	}
	if !result.Modified || result.ModifiedContent == nil {
		return &protocol.WorkspaceEdit{}, nil
	}

	endPos := offsetToPosition(doc.Text, len(doc.Text))
	edit := protocol.TextEdit{
		Range: protocol.Range{
			Start: protocol.Position{},
			End:   endPos,
		},
		NewText: string(result.ModifiedContent),
	}

	we := &protocol.WorkspaceEdit{
		Changes: map[protocol.DocumentUri][]protocol.TextEdit{
			protocol.DocumentUri(uri): {edit},
		},
	}

	if s.conn != nil {
		applyParams := struct {
			Edit *protocol.WorkspaceEdit `json:"edit"`
		}{Edit: we}
		if err := s.conn.Call(ctx, "workspace/applyEdit", applyParams, nil); err != nil {
			return nil, fmt.Errorf("%s: apply edit: %w", fixAllCommand, err)
		}
	}

	return we, nil
}
