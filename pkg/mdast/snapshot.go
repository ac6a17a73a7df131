// Package mdast is mkdlint's Markdown document model: a lossless, immutable
// view of a parsed file built from three layers - the raw bytes, a token
// stream classifying every byte, and an AST of nodes referencing spans of
// that token stream.
package mdast

// FileSnapshot is an immutable, lossless view of one Markdown file as of
// the moment it was parsed. Every rule receives the same FileSnapshot for
// a file; none of them mutate it.
type FileSnapshot struct {
	// Path identifies the file on disk; empty for in-memory content such
	// as an LSP buffer that hasn't been saved.
	Path string

	// Content holds the complete, unmodified file bytes.
	Content []byte

	// Lines indexes every line's byte offsets, 0-indexed by slice
	// position (line N is Lines[N-1]).
	Lines []LineInfo

	// Tokens is the full token stream, contiguous and covering every
	// byte of Content. Nil until a Parser has run.
	Tokens []Token

	// Root is the document's AST root. Nil until a Parser has run.
	Root *Node

	// FrontMatter describes a leading front-matter block (YAML or TOML),
	// or nil if the file doesn't open with one.
	FrontMatter *FrontMatterInfo

	// MathBlocks lists display-math regions found outside of code spans,
	// in source order.
	MathBlocks []MathBlockInfo
}

// LineInfo records one line's byte boundaries within FileSnapshot.Content.
type LineInfo struct {
	// StartOffset is the byte offset the line's content begins at.
	StartOffset int

	// NewlineStart is the byte offset where the line's trailing newline
	// sequence begins. For a final line with no trailing newline, this
	// equals EndOffset.
	NewlineStart int

	// EndOffset is the byte offset immediately past the line's newline
	// sequence (or, for the final line, past its last byte).
	EndOffset int
}

// NewFileSnapshot builds a FileSnapshot's line index from content. Tokens
// and Root stay nil until a Parser tokenizes and builds the AST.
func NewFileSnapshot(path string, content []byte) *FileSnapshot {
	return &FileSnapshot{
		Path:    path,
		Content: content,
		Lines:   BuildLines(content),
	}
}
