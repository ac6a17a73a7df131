package mdast

// SourceRange is a half-open byte interval [StartOffset, EndOffset) into a
// file's content.
type SourceRange struct {
	StartOffset int
	EndOffset   int
}

// Len reports the range's width in bytes.
func (r SourceRange) Len() int {
	return r.EndOffset - r.StartOffset
}

// IsEmpty reports whether the range spans zero bytes.
func (r SourceRange) IsEmpty() bool {
	return r.StartOffset == r.EndOffset
}

// Contains reports whether offset falls inside the range.
func (r SourceRange) Contains(offset int) bool {
	return offset >= r.StartOffset && offset < r.EndOffset
}

// Position is a 1-based line/column pair.
type Position struct {
	Line   int
	Column int
}

// IsValid reports whether both Line and Column are positive.
func (p Position) IsValid() bool {
	return p.Line > 0 && p.Column > 0
}

// SourcePosition is a range expressed in line/column terms rather than byte
// offsets.
type SourcePosition struct {
	StartLine   int
	StartColumn int
	EndLine     int
	EndColumn   int
}

// Start returns the range's starting Position.
func (sp SourcePosition) Start() Position {
	return Position{Line: sp.StartLine, Column: sp.StartColumn}
}

// End returns the range's ending Position.
func (sp SourcePosition) End() Position {
	return Position{Line: sp.EndLine, Column: sp.EndColumn}
}

// IsValid reports whether every line/column component is positive.
func (sp SourcePosition) IsValid() bool {
	return sp.StartLine > 0 && sp.StartColumn > 0 && sp.EndLine > 0 && sp.EndColumn > 0
}

// IsSingleLine reports whether the range starts and ends on the same line.
func (sp SourcePosition) IsSingleLine() bool {
	return sp.StartLine == sp.EndLine
}

// hasTokenSpan reports whether n carries a resolvable token range against
// its own File.
func (n *Node) hasTokenSpan() bool {
	if n.File == nil || n.FirstToken < 0 || n.LastToken < 0 {
		return false
	}
	tokens := n.File.Tokens
	return n.FirstToken < len(tokens) && n.LastToken < len(tokens)
}

// SourceRange resolves n's token span to a byte range in its File. An
// unattached node, or one with no token span, yields the zero SourceRange.
func (n *Node) SourceRange() SourceRange {
	if !n.hasTokenSpan() {
		return SourceRange{}
	}
	tokens := n.File.Tokens
	return SourceRange{
		StartOffset: tokens[n.FirstToken].StartOffset,
		EndOffset:   tokens[n.LastToken].EndOffset,
	}
}

// SourcePosition resolves n's SourceRange to line/column coordinates via
// its File's line table. An unattached node, or one with no token span,
// yields the zero SourcePosition.
func (n *Node) SourcePosition() SourcePosition {
	if n.File == nil || n.FirstToken < 0 {
		return SourcePosition{}
	}

	byteRange := n.SourceRange()
	startLine, startCol := n.File.LineAt(byteRange.StartOffset)
	endLine, endCol := n.File.LineAt(byteRange.EndOffset)

	return SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// Text slices n's File content to the bytes covered by its SourceRange, or
// nil if n is unattached or its range falls outside the file content.
func (n *Node) Text() []byte {
	if n.File == nil {
		return nil
	}
	r := n.SourceRange()
	if r.StartOffset < 0 || r.EndOffset > len(n.File.Content) {
		return nil
	}
	return n.File.Content[r.StartOffset:r.EndOffset]
}
