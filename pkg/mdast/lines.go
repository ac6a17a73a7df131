package mdast

import "sort"

// BuildLines splits content into LineInfo records, one per line,
// recognizing both LF and CRLF endings. The final line is included even
// without a trailing newline.
func BuildLines(content []byte) []LineInfo {
	if len(content) == 0 {
		return []LineInfo{}
	}

	lines := make([]LineInfo, 0, estimateLineCount(content))
	lineStart := 0

	for idx, b := range content {
		if b != '\n' {
			continue
		}
		newlineStart := idx
		if idx > 0 && content[idx-1] == '\r' {
			newlineStart = idx - 1
		}
		lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: newlineStart, EndOffset: idx + 1})
		lineStart = idx + 1
	}

	if lineStart <= len(content) {
		lines = append(lines, LineInfo{StartOffset: lineStart, NewlineStart: len(content), EndOffset: len(content)})
	}
	return lines
}

// estimateLineCount guesses a capacity for BuildLines' result by counting
// newlines, to avoid repeated slice growth on large files.
func estimateLineCount(content []byte) int {
	count := 1
	for _, b := range content {
		if b == '\n' {
			count++
		}
	}
	return count
}

// LineCount returns how many lines f has.
func (f *FileSnapshot) LineCount() int {
	return len(f.Lines)
}

// LineAt converts a byte offset to a 1-based (line, column) pair, column
// counting bytes rather than runes. An offset past the end of content
// clamps to a position at the end of the last line; a negative offset (or
// a file with no lines) returns (0, 0).
func (f *FileSnapshot) LineAt(offset int) (int, int) {
	if offset < 0 || len(f.Lines) == 0 {
		return 0, 0
	}
	if offset >= len(f.Content) {
		last := f.Lines[len(f.Lines)-1]
		return len(f.Lines), offset - last.StartOffset + 1
	}

	idx := sort.Search(len(f.Lines), func(i int) bool { return f.Lines[i].EndOffset > offset })
	if idx >= len(f.Lines) {
		idx = len(f.Lines) - 1
	}

	line := f.Lines[idx]
	if offset < line.StartOffset {
		return 0, 0
	}
	return idx + 1, offset - line.StartOffset + 1
}

// Offset converts a 1-based (line, column) pair back to a byte offset.
// Column may point one past the last byte of the line (for cursor
// positioning); anything further returns (0, false).
func (f *FileSnapshot) Offset(line, col int) (int, bool) {
	if line < 1 || line > len(f.Lines) || col < 1 {
		return 0, false
	}

	info := f.Lines[line-1]
	offset := info.StartOffset + col - 1
	if offset > info.EndOffset {
		return 0, false
	}
	return offset, true
}

// LineContent returns 1-based line's bytes, excluding its line ending, or
// nil if line is out of range.
func (f *FileSnapshot) LineContent(line int) []byte {
	if line < 1 || line > len(f.Lines) {
		return nil
	}
	info := f.Lines[line-1]
	return f.Content[info.StartOffset:info.NewlineStart]
}
