package lint

import (
	"bytes"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// This file collects the small, pure query/accessor functions rules reach
// for instead of walking mdast.Node fields directly: "find me all the X",
// "what line is this on", "is this the kind of thing I care about". None of
// them mutate the tree or the snapshot they're given.

// blockField returns n's Block payload, or nil if n doesn't carry one of
// the requested kind.
func blockField(n *mdast.Node, kind mdast.NodeKind) *mdast.BlockAttrs {
	if n == nil || n.Kind != kind || n.Block == nil {
		return nil
	}
	return n.Block
}

// --- node collection by kind ---

func Headings(root *mdast.Node) []*mdast.Node  { return mdast.FindByKind(root, mdast.NodeHeading) }
func Lists(root *mdast.Node) []*mdast.Node      { return mdast.FindByKind(root, mdast.NodeList) }
func CodeBlocks(root *mdast.Node) []*mdast.Node { return mdast.FindByKind(root, mdast.NodeCodeBlock) }
func Links(root *mdast.Node) []*mdast.Node      { return mdast.FindByKind(root, mdast.NodeLink) }
func Images(root *mdast.Node) []*mdast.Node     { return mdast.FindByKind(root, mdast.NodeImage) }
func Paragraphs(root *mdast.Node) []*mdast.Node { return mdast.FindByKind(root, mdast.NodeParagraph) }
func HTMLBlocks(root *mdast.Node) []*mdast.Node { return mdast.FindByKind(root, mdast.NodeHTMLBlock) }
func HTMLInlines(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeHTMLInline)
}
func ThematicBreaks(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeThematicBreak)
}
func EmphasisNodes(root *mdast.Node) []*mdast.Node {
	return mdast.FindByKind(root, mdast.NodeEmphasis)
}
func StrongNodes(root *mdast.Node) []*mdast.Node { return mdast.FindByKind(root, mdast.NodeStrong) }
func CodeSpans(root *mdast.Node) []*mdast.Node   { return mdast.FindByKind(root, mdast.NodeCodeSpan) }

// FirstHeading returns the document's first heading, or nil if it has none.
func FirstHeading(root *mdast.Node) *mdast.Node {
	if headings := Headings(root); len(headings) > 0 {
		return headings[0]
	}
	return nil
}

// FirstBlock returns the document's first top-level block, or nil if empty.
func FirstBlock(root *mdast.Node) *mdast.Node {
	if root == nil {
		return nil
	}
	return root.FirstChild
}

func IsHeadingNode(n *mdast.Node) bool { return n != nil && n.Kind == mdast.NodeHeading }

// --- heading / list / code-block field accessors ---

// HeadingLevel returns n's heading level, or 0 if n isn't a heading.
func HeadingLevel(n *mdast.Node) int {
	b := blockField(n, mdast.NodeHeading)
	if b == nil {
		return 0
	}
	return b.HeadingLevel
}

func listData(n *mdast.Node) *mdast.ListAttrs {
	b := blockField(n, mdast.NodeList)
	if b == nil {
		return nil
	}
	return b.List
}

func IsOrderedList(n *mdast.Node) bool {
	l := listData(n)
	return l != nil && l.Ordered
}

func IsTightList(n *mdast.Node) bool {
	l := listData(n)
	return l != nil && l.Tight
}

// ListItems returns list's direct list-item children, in document order.
func ListItems(list *mdast.Node) []*mdast.Node {
	if list == nil || list.Kind != mdast.NodeList {
		return nil
	}
	var items []*mdast.Node
	for child := list.FirstChild; child != nil; child = child.Next {
		if child.Kind == mdast.NodeListItem {
			items = append(items, child)
		}
	}
	return items
}

func ListBulletMarker(list *mdast.Node) string {
	if l := listData(list); l != nil {
		return l.BulletMarker
	}
	return ""
}

// ListStartNumber returns an ordered list's start number, or 0 if list isn't
// ordered (or isn't a list at all).
func ListStartNumber(list *mdast.Node) int {
	l := listData(list)
	if l == nil || !l.Ordered {
		return 0
	}
	return l.StartNumber
}

func ListDelimiter(list *mdast.Node) string {
	if l := listData(list); l != nil {
		return l.Delimiter
	}
	return ""
}

func codeBlockData(n *mdast.Node) *mdast.CodeBlockAttrs {
	b := blockField(n, mdast.NodeCodeBlock)
	if b == nil {
		return nil
	}
	return b.CodeBlock
}

func CodeBlockInfo(n *mdast.Node) string {
	if cb := codeBlockData(n); cb != nil {
		return cb.Info
	}
	return ""
}

func IsFencedCodeBlock(n *mdast.Node) bool {
	cb := codeBlockData(n)
	return cb != nil && !cb.Indented
}

func IsIndentedCodeBlock(n *mdast.Node) bool {
	cb := codeBlockData(n)
	return cb != nil && cb.Indented
}

func CodeFenceChar(n *mdast.Node) byte {
	if cb := codeBlockData(n); cb != nil {
		return cb.FenceChar
	}
	return 0
}

func CodeFenceLength(n *mdast.Node) int {
	if cb := codeBlockData(n); cb != nil {
		return cb.FenceLength
	}
	return 0
}

// --- link / image / text accessors ---

func linkData(n *mdast.Node) *mdast.LinkAttrs {
	if n == nil || n.Inline == nil {
		return nil
	}
	return n.Inline.Link
}

func LinkDestination(n *mdast.Node) string {
	if l := linkData(n); l != nil {
		return l.Destination
	}
	return ""
}

func LinkTitle(n *mdast.Node) string {
	if l := linkData(n); l != nil {
		return l.Title
	}
	return ""
}

// extractTextContent concatenates the text of every NodeText descendant of
// n, depth-first.
func extractTextContent(n *mdast.Node) string {
	if n == nil {
		return ""
	}
	var buf bytes.Buffer
	_ = mdast.Walk(n, func(node *mdast.Node) error { //nolint:errcheck // Walk visitor never returns error
		if node.Kind == mdast.NodeText && node.Inline != nil {
			buf.Write(node.Inline.Text)
		}
		return nil
	})
	return buf.String()
}

// LinkText returns the concatenated text of a link or image node's
// children.
func LinkText(n *mdast.Node) string {
	if n == nil || (n.Kind != mdast.NodeLink && n.Kind != mdast.NodeImage) {
		return ""
	}
	return extractTextContent(n)
}

// ImageAlt returns an image's alt text, which is just its children's text.
func ImageAlt(n *mdast.Node) string {
	if n == nil || n.Kind != mdast.NodeImage {
		return ""
	}
	return extractTextContent(n)
}

func IsEmptyLink(n *mdast.Node) bool {
	return n != nil && n.Kind == mdast.NodeLink && LinkDestination(n) == ""
}

func IsEmptyLinkText(n *mdast.Node) bool {
	if n == nil || n.Kind != mdast.NodeLink {
		return false
	}
	return len(bytes.TrimSpace([]byte(LinkText(n)))) == 0
}

func HeadingText(n *mdast.Node) string {
	if n == nil || n.Kind != mdast.NodeHeading {
		return ""
	}
	return extractTextContent(n)
}

func CodeSpanContent(node *mdast.Node) string {
	if node == nil || node.Kind != mdast.NodeCodeSpan {
		return ""
	}
	if node.Inline != nil && len(node.Inline.Text) > 0 {
		return string(node.Inline.Text)
	}
	return extractTextContent(node)
}

// ExtractHTMLTagName returns the lowercased tag name of an HTML element
// ("<Div class=x>" -> "div"), or "" if content doesn't start with a tag.
func ExtractHTMLTagName(content []byte) string {
	content = bytes.TrimSpace(content)
	if len(content) < 2 || content[0] != '<' {
		return ""
	}

	idx := 1
	if idx < len(content) && content[idx] == '/' {
		idx++
	}

	start := idx
	for idx < len(content) && isTagNameByte(content[idx]) {
		idx++
	}
	if idx == start {
		return ""
	}
	return string(bytes.ToLower(content[start:idx]))
}

func isTagNameByte(ch byte) bool {
	return (ch >= 'a' && ch <= 'z') || (ch >= 'A' && ch <= 'Z') || (ch >= '0' && ch <= '9') || ch == '-'
}

// --- GFM tables ---

// tableExtKey is the Ext map key the goldmark table extension stores its
// node data under.
const tableExtKey = "table"

// Tables returns every GFM table node in the document; nil if there are
// none, including when tables weren't parsed at all (non-GFM flavor).
func Tables(root *mdast.Node) []*mdast.Node {
	if root == nil {
		return nil
	}
	var tables []*mdast.Node
	_ = mdast.Walk(root, func(n *mdast.Node) error { //nolint:errcheck // Walk visitor never returns error
		if IsTableNode(n) {
			tables = append(tables, n)
		}
		return nil
	})
	return tables
}

func IsTableNode(n *mdast.Node) bool {
	if n == nil || n.Ext == nil {
		return false
	}
	_, ok := n.Ext[tableExtKey]
	return ok
}

// --- line-range membership ---

// lineInAnyRange reports whether lineNum falls within the source range of
// any node in nodes.
func lineInAnyRange(nodes []*mdast.Node, lineNum int) bool {
	for _, n := range nodes {
		pos := n.SourcePosition()
		if pos.IsValid() && lineNum >= pos.StartLine && lineNum <= pos.EndLine {
			return true
		}
	}
	return false
}

func IsLineInCodeBlock(file *mdast.FileSnapshot, root *mdast.Node, lineNum int) bool {
	if file == nil || root == nil || lineNum < 1 {
		return false
	}
	return lineInAnyRange(CodeBlocks(root), lineNum)
}

func IsLineInTable(file *mdast.FileSnapshot, root *mdast.Node, lineNum int) bool {
	if file == nil || root == nil || lineNum < 1 {
		return false
	}
	return lineInAnyRange(Tables(root), lineNum)
}

// --- raw line content ---

// LineContent returns the bytes of 1-based line lineNum, excluding its
// terminating newline, or nil if lineNum is out of range.
func LineContent(file *mdast.FileSnapshot, lineNum int) []byte {
	if file == nil || lineNum < 1 || lineNum > len(file.Lines) {
		return nil
	}
	line := file.Lines[lineNum-1]
	return file.Content[line.StartOffset:line.NewlineStart]
}

// LineLength returns the byte length of lineNum excluding its newline, or 0
// if out of range.
func LineLength(file *mdast.FileSnapshot, lineNum int) int {
	if file == nil || lineNum < 1 || lineNum > len(file.Lines) {
		return 0
	}
	line := file.Lines[lineNum-1]
	return line.NewlineStart - line.StartOffset
}

func IsBlankLine(file *mdast.FileSnapshot, lineNum int) bool {
	return len(bytes.TrimSpace(LineContent(file, lineNum))) == 0
}

func HasTrailingWhitespace(file *mdast.FileSnapshot, lineNum int) bool {
	content := LineContent(file, lineNum)
	if len(content) == 0 {
		return false
	}
	last := content[len(content)-1]
	return last == ' ' || last == '\t'
}

// TrailingWhitespaceRange returns the [start, end) byte offsets of trailing
// whitespace on lineNum, or (-1, -1) if there is none.
func TrailingWhitespaceRange(file *mdast.FileSnapshot, lineNum int) (int, int) {
	if file == nil || lineNum < 1 || lineNum > len(file.Lines) {
		return -1, -1
	}
	line := file.Lines[lineNum-1]
	content := file.Content[line.StartOffset:line.NewlineStart]
	if len(content) == 0 {
		return -1, -1
	}

	end := line.NewlineStart
	start := end
	for idx := len(content) - 1; idx >= 0; idx-- {
		if content[idx] != ' ' && content[idx] != '\t' {
			break
		}
		start = line.StartOffset + idx
	}

	if start == end {
		return -1, -1
	}
	return start, end
}

func LineContainsURL(file *mdast.FileSnapshot, lineNum int) bool {
	content := LineContent(file, lineNum)
	return bytes.Contains(content, []byte("http://")) || bytes.Contains(content, []byte("https://"))
}

// countBlankRun walks line numbers from start in step increments (+1 or -1)
// while they stay blank and in range, returning how many it found.
func countBlankRun(file *mdast.FileSnapshot, start, step int) int {
	count := 0
	for ln := start; ln >= 1 && ln <= len(file.Lines); ln += step {
		if !IsBlankLine(file, ln) {
			break
		}
		count++
	}
	return count
}

func CountBlankLinesBefore(file *mdast.FileSnapshot, lineNum int) int {
	if file == nil || lineNum < 2 {
		return 0
	}
	return countBlankRun(file, lineNum-1, -1)
}

func CountBlankLinesAfter(file *mdast.FileSnapshot, lineNum int) int {
	if file == nil || lineNum < 1 || lineNum >= len(file.Lines) {
		return 0
	}
	return countBlankRun(file, lineNum+1, 1)
}
