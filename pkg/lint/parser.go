package lint

import (
	"context"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// Parser turns Markdown bytes into a FileSnapshot. Defined here rather than
// in pkg/mdast so the consumer owns the interface; pkg/parser/goldmark
// supplies the implementation.
//
// Implementations must be deterministic for a given (path, content) pair,
// side-effect free, and must return a snapshot where:
//
//   - snapshot.Path == path and snapshot.Content == content
//   - mdast.ValidateTokens(snapshot.Tokens, len(snapshot.Content)) is true
//   - snapshot.Root is non-nil with Kind == mdast.NodeDocument
//   - every node's File field points back at snapshot
//
// A failed parse returns (nil, err) rather than a partial snapshot.
type Parser interface {
	Parse(ctx context.Context, path string, content []byte) (*mdast.FileSnapshot, error)
}
