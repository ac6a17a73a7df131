package lspserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"golang.org/x/exp/jsonrpc2"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// diagnosticCache remembers the last diagnostics published for a document,
// with a result ID hashed from the version and the diagnostics. Nothing reads
// the cache back when answering textDocument/diagnostic.
type diagnosticCache struct {
	mu    sync.Mutex
	byURI map[string]cachedDiagnostics
}

type cachedDiagnostics struct {
	resultID    string
	diagnostics []protocol.Diagnostic
	version     int32
}

func newDiagnosticCache() *diagnosticCache {
	return &diagnosticCache{byURI: make(map[string]cachedDiagnostics)}
}

// diagnosticsForDocument lints doc's current text and converts the result
// into LSP diagnostics, grounded on the rule configuration for its workspace.
func (s *Server) diagnosticsForDocument(ctx context.Context, doc *Document) ([]protocol.Diagnostic, error) {
	cfg := s.configFor(doc.URI)

	result, err := s.lint.lintText(ctx, uriToPath(doc.URI), doc.Text, cfg)
	if err != nil {
		return nil, err
	}

	return diagnosticsFromResult(doc.Text, result), nil
}

func diagnosticsFromResult(text string, result *lint.FileResult) []protocol.Diagnostic {
	out := make([]protocol.Diagnostic, 0, len(result.Diagnostics))
	for i := range result.Diagnostics {
		d := &result.Diagnostics[i]
		sev := severityToProtocol(d.Severity)
		out = append(out, protocol.Diagnostic{
			Range:    lineColToRange(text, d.StartLine, d.StartColumn, d.EndLine, d.EndColumn),
			Severity: &sev,
			Code:     d.RuleID,
			Source:   serverName,
			Message:  d.Message,
		})
	}
	return out
}

func severityToProtocol(sev config.Severity) protocol.DiagnosticSeverity {
	switch sev {
	case config.SeverityError:
		return protocol.DiagnosticSeverityError
	case config.SeverityInfo:
		return protocol.DiagnosticSeverityInformation
	case config.SeverityWarning:
		return protocol.DiagnosticSeverityWarning
	default:
		return protocol.DiagnosticSeverityWarning
	}
}

// publishDiagnostics lints doc and sends textDocument/publishDiagnostics,
// guarding against out-of-order results: if doc has been edited again (its
// version has moved on) by the time linting finishes, the stale result is
// dropped instead of overwriting the newer one.
func (s *Server) publishDiagnostics(ctx context.Context, doc *Document) {
	version := doc.Version
	diags, err := s.diagnosticsForDocument(ctx, doc)
	if err != nil {
		return
	}

	current := s.documents.Get(doc.URI)
	if current == nil || current.Version != version {
		return
	}

	s.cacheDiagnostics(doc.URI, version, diags)

	v := version
	_ = lspNotify(ctx, s.conn, "textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(doc.URI),
		Version:     &v,
		Diagnostics: diags,
	})
}

// clearDiagnostics publishes an empty diagnostic set, used on didClose.
func clearDiagnostics(ctx context.Context, conn *jsonrpc2.Connection, uri string) {
	if conn == nil {
		return
	}
	_ = lspNotify(ctx, conn, "textDocument/publishDiagnostics", &protocol.PublishDiagnosticsParams{
		URI:         protocol.DocumentUri(uri),
		Diagnostics: []protocol.Diagnostic{},
	})
}

// handleDiagnostic serves textDocument/diagnostic (pull mode). It always
// re-lints and returns a full report with a fresh resultId; the client's
// previousResultId is not compared and no "unchanged" report is sent.
func (s *Server) handleDiagnostic(params *protocol.DocumentDiagnosticParams) (any, error) {
	uri := string(params.TextDocument.URI)
	doc := s.documents.Get(uri)
	if doc == nil {
		return &protocol.FullDocumentDiagnosticReport{Kind: "full", Items: []protocol.Diagnostic{}}, nil
	}

	diags, err := s.diagnosticsForDocument(context.Background(), doc)
	if err != nil {
		return nil, err
	}

	resultID := hashDiagnostics(doc.Version, diags)
	s.cacheDiagnostics(uri, doc.Version, diags)

	id := resultID
	return &protocol.FullDocumentDiagnosticReport{
		Kind:     "full",
		ResultID: &id,
		Items:    diags,
	}, nil
}

func (s *Server) cacheDiagnostics(uri string, version int32, diags []protocol.Diagnostic) {
	s.diagCache.mu.Lock()
	defer s.diagCache.mu.Unlock()
	s.diagCache.byURI[uri] = cachedDiagnostics{
		resultID:    hashDiagnostics(version, diags),
		diagnostics: diags,
		version:     version,
	}
}

func hashDiagnostics(version int32, diags []protocol.Diagnostic) string {
	h := sha256.New()
	fmt.Fprintf(h, "v%d:", version)
	for _, d := range diags {
		fmt.Fprintf(h, "%s:%d:%d:%s;", d.Code, d.Range.Start.Line, d.Range.Start.Character, d.Message)
	}
	return hex.EncodeToString(h.Sum(nil))[:16]
}
