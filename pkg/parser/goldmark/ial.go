package goldmark

import (
	"regexp"
	"strings"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// ialPattern matches a kramdown-style inline attribute list anchored to the
// end of a line: {: #id .class key="value" key2=value2 }
var ialPattern = regexp.MustCompile(`\{:\s*(.*?)\s*\}\s*$`)

// attachIALs walks heading and paragraph nodes, recognizing a trailing
// inline attribute list on the node's last source line and storing it under
// Node.Ext["ial"].
func attachIALs(root *mdast.Node, snapshot *mdast.FileSnapshot) {
	_ = mdast.Walk(root, func(n *mdast.Node) error {
		if n.Kind != mdast.NodeHeading && n.Kind != mdast.NodeParagraph {
			return nil
		}

		rng := n.SourceRange()
		if rng.IsEmpty() {
			return nil
		}

		endLine, _ := snapshot.LineAt(rng.EndOffset)
		lineBytes := snapshot.LineContent(endLine)
		lineStr := strings.TrimRight(string(lineBytes), "\r\n")

		loc := ialPattern.FindStringSubmatchIndex(lineStr)
		if loc == nil {
			return nil
		}

		lineStartOffset := offsetOfLine(snapshot, endLine)
		ial := parseIAL(lineStr[loc[2]:loc[3]])
		ial.Range = mdast.SourceRange{
			StartOffset: lineStartOffset + loc[0],
			EndOffset:   lineStartOffset + loc[1],
		}

		if n.Ext == nil {
			n.Ext = make(map[string]any)
		}
		n.Ext["ial"] = ial

		return nil
	})
}

// offsetOfLine returns the byte offset of the start of the given 1-based line.
func offsetOfLine(snapshot *mdast.FileSnapshot, line int) int {
	if line < 1 || line > len(snapshot.Lines) {
		return 0
	}
	return snapshot.Lines[line-1].StartOffset
}

// parseIAL parses the inside of an IAL body ("#id .class key=\"val\"") into
// selectors and attributes. Unrecognized tokens are ignored.
func parseIAL(body string) *mdast.IAL {
	ial := &mdast.IAL{Attrs: make(map[string]string)}

	for _, tok := range splitIALTokens(body) {
		switch {
		case strings.HasPrefix(tok, "#"):
			ial.ID = strings.TrimPrefix(tok, "#")
		case strings.HasPrefix(tok, "."):
			ial.Classes = append(ial.Classes, strings.TrimPrefix(tok, "."))
		case strings.Contains(tok, "="):
			parts := strings.SplitN(tok, "=", 2)
			key := parts[0]
			val := strings.Trim(parts[1], `"'`)
			ial.Attrs[key] = val
		}
	}

	return ial
}

// splitIALTokens splits an IAL body on whitespace, keeping quoted
// key="value with spaces" pairs intact.
func splitIALTokens(body string) []string {
	var tokens []string
	var cur strings.Builder
	inQuote := false

	flush := func() {
		if cur.Len() > 0 {
			tokens = append(tokens, cur.String())
			cur.Reset()
		}
	}

	for _, r := range body {
		switch {
		case r == '"':
			inQuote = !inQuote
			cur.WriteRune(r)
		case r == ' ' && !inQuote:
			flush()
		default:
			cur.WriteRune(r)
		}
	}
	flush()

	return tokens
}
