package goldmark

import (
	"strings"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// detectFrontMatter recognizes a leading front-matter region: the source must
// begin with an opening fence ("---" for YAML, "+++" for TOML, or "{" for
// JSON) and reach a matching closing fence before the first blank line. It
// returns the dialect name and the byte offset just past the closing fence's
// line (including its newline), or ok=false if no front matter is present.
func detectFrontMatter(lines []mdast.LineInfo, content []byte) (syntax string, end int, ok bool) {
	if len(lines) == 0 {
		return "", 0, false
	}

	first := strings.TrimRight(string(content[lines[0].StartOffset:lines[0].NewlineStart]), "\r")

	var open string
	switch first {
	case "---":
		open, syntax = "---", "yaml"
	case "+++":
		open, syntax = "+++", "toml"
	case "{":
		open, syntax = "}", "json"
	default:
		return "", 0, false
	}

	for i := 1; i < len(lines); i++ {
		text := strings.TrimRight(string(content[lines[i].StartOffset:lines[i].NewlineStart]), "\r")
		if text == "" {
			// A blank line before the closing fence disqualifies front matter.
			return "", 0, false
		}
		if text == open {
			return syntax, lines[i].EndOffset, true
		}
	}

	return "", 0, false
}

// mathOpenDelims lists recognized display-math opening delimiters, longest first.
var mathOpenDelims = []struct {
	open  string
	close string
}{
	{"$$", "$$"},
	{`\[`, `\]`},
}

// detectMathBlocks scans line-start positions (outside the skipBefore offset,
// typically the end of any front-matter region) for kramdown-style display
// math blocks: a line whose trimmed content begins with a recognized opening
// delimiter and some later line whose trimmed content ends with the matching
// closing delimiter. Detection is line-oriented and does not attempt to
// understand nested inline math or code spans; fenced/indented code blocks
// are excluded by the caller via skipRanges.
func detectMathBlocks(lines []mdast.LineInfo, content []byte, skipBefore int, skipRanges []mdast.SourceRange) []mdast.MathBlockInfo {
	var blocks []mdast.MathBlockInfo

	inSkip := func(offset int) bool {
		for _, r := range skipRanges {
			if r.Contains(offset) {
				return true
			}
		}
		return false
	}

	for i := 0; i < len(lines); i++ {
		if lines[i].StartOffset < skipBefore || inSkip(lines[i].StartOffset) {
			continue
		}
		text := strings.TrimSpace(string(content[lines[i].StartOffset:lines[i].NewlineStart]))
		if text == "" {
			continue
		}

		var delim struct{ open, close string }
		matched := false
		for _, d := range mathOpenDelims {
			if strings.HasPrefix(text, d.open) {
				delim.open, delim.close = d.open, d.close
				matched = true
				break
			}
		}
		if !matched {
			continue
		}

		// Single-line math block: opens and closes on the same line.
		rest := strings.TrimSpace(strings.TrimPrefix(text, delim.open))
		if strings.HasSuffix(rest, delim.close) && rest != "" {
			blocks = append(blocks, mdast.MathBlockInfo{
				Delimiter: delim.open,
				Range:     mdast.SourceRange{StartOffset: lines[i].StartOffset, EndOffset: lines[i].NewlineStart},
			})
			continue
		}

		for j := i + 1; j < len(lines); j++ {
			closeText := strings.TrimSpace(string(content[lines[j].StartOffset:lines[j].NewlineStart]))
			if closeText == delim.close {
				blocks = append(blocks, mdast.MathBlockInfo{
					Delimiter: delim.open,
					Range:     mdast.SourceRange{StartOffset: lines[i].StartOffset, EndOffset: lines[j].EndOffset},
				})
				i = j
				break
			}
		}
	}

	return blocks
}

// maskRanges returns a copy of content with the bytes in each range replaced
// by spaces (newlines preserved), so byte offsets and line counts are
// unaffected while goldmark sees blank lines in the masked regions.
func maskRanges(content []byte, ranges ...mdast.SourceRange) []byte {
	masked := make([]byte, len(content))
	copy(masked, content)
	for _, r := range ranges {
		start, end := r.StartOffset, r.EndOffset
		if start < 0 {
			start = 0
		}
		if end > len(masked) {
			end = len(masked)
		}
		for i := start; i < end; i++ {
			if masked[i] != '\n' && masked[i] != '\r' {
				masked[i] = ' '
			}
		}
	}
	return masked
}
