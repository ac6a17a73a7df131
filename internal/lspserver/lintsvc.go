package lspserver

import (
	"context"
	"net/url"
	"strings"

	"github.com/yaklabco/mkdlint/internal/configloader"
	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
	goldmarkparser "github.com/yaklabco/mkdlint/pkg/parser/goldmark"
)

// lintService wraps the lint engine the CLI uses so the LSP server can lint
// in-memory document text instead of files on disk.
type lintService struct {
	engine *lint.Engine
}

// newLintService builds a lint service against the default rule registry,
// mirroring the construction in internal/cli/lint.go.
func newLintService(flavor config.Flavor) *lintService {
	parser := goldmarkparser.New(string(flavor))
	return &lintService{engine: lint.NewEngine(parser, lint.DefaultRegistry)}
}

// lintText lints in-memory content against cfg, producing a FileResult the
// same way a file on disk would.
func (s *lintService) lintText(ctx context.Context, path string, text string, cfg *config.Config) (*lint.FileResult, error) {
	return s.engine.LintFile(ctx, path, []byte(text), cfg)
}

// uriToPath converts a file:// URI to a filesystem path, used only as the
// diagnostic FilePath / pipeline path argument (no disk I/O is performed).
func uriToPath(uri string) string {
	u, err := url.Parse(uri)
	if err != nil || u.Scheme != "file" {
		return uri
	}
	return u.Path
}

// offsetToPosition converts a byte offset into an LSP zero-based position,
// using the same line table the lint engine builds from content.
func offsetToPosition(text string, offset int) protocol.Position {
	if offset < 0 {
		offset = 0
	}
	if offset > len(text) {
		offset = len(text)
	}
	line := 0
	lineStart := 0
	for i := 0; i < offset; i++ {
		if text[i] == '\n' {
			line++
			lineStart = i + 1
		}
	}
	return protocol.Position{Line: uint32(line), Character: uint32(offset - lineStart)}
}

// positionToOffset converts a zero-based LSP position into a byte offset
// into text, the inverse of offsetToPosition.
func positionToOffset(text string, pos protocol.Position) int {
	line := 0
	i := 0
	for line < int(pos.Line) && i < len(text) {
		if text[i] == '\n' {
			line++
		}
		i++
	}
	end := i + int(pos.Character)
	if end > len(text) {
		end = len(text)
	}
	return end
}

// lineColToRange converts a diagnostic's 1-based line/column span (byte
// columns) into a zero-based LSP range against text.
func lineColToRange(text string, startLine, startCol, endLine, endCol int) protocol.Range {
	return protocol.Range{
		Start: lineColToPosition(text, startLine, startCol),
		End:   lineColToPosition(text, endLine, endCol),
	}
}

// lineColToPosition converts a 1-based line/byte-column pair into a
// zero-based LSP position. Byte columns are used directly as UTF-16
// character offsets; this is exact for ASCII and an accepted approximation
// for the rare non-ASCII line.
func lineColToPosition(_ string, line, col int) protocol.Position {
	if line < 1 {
		line = 1
	}
	if col < 1 {
		col = 1
	}
	return protocol.Position{Line: uint32(line - 1), Character: uint32(col - 1)}
}

// loadWorkspaceConfig resolves configuration the same way the CLI does,
// rooted at dir (the workspace folder, or the document's directory when no
// workspace folder was advertised).
func loadWorkspaceConfig(ctx context.Context, dir string) *config.Config {
	result, err := configloader.Load(ctx, configloader.LoadOptions{WorkingDir: dir})
	if err != nil || result == nil {
		return config.NewConfig()
	}
	return result.Config
}

// dirOf returns the directory portion of a file:// URI's path.
func dirOf(uri string) string {
	path := uriToPath(uri)
	if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
		return path[:idx]
	}
	return "."
}
