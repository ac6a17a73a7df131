package goldmark

import (
	"github.com/yaklabco/mkdlint/pkg/mdast"
	"github.com/yuin/goldmark/ast"
	east "github.com/yuin/goldmark/extension/ast"
)

// mapper translates a parsed goldmark AST into an mdast.Node tree,
// referencing back into content for anything goldmark represents as byte
// segments rather than extracted strings.
type mapper struct {
	content []byte
}

func newMapper(content []byte) *mapper {
	return &mapper{content: content}
}

// mapDocument converts gmDoc (goldmark's *ast.Document) into an mdast
// document tree.
func (m *mapper) mapDocument(gmDoc ast.Node) *mdast.Node {
	doc := mdast.NewDocument()
	m.mapChildren(gmDoc, doc)
	return doc
}

func (m *mapper) mapChildren(gmParent ast.Node, parent *mdast.Node) {
	for child := gmParent.FirstChild(); child != nil; child = child.NextSibling() {
		if mapped := m.mapNode(child); mapped != nil {
			mdast.AppendChild(parent, mapped)
		}
	}
}

// mapNode converts a single goldmark node. Returning nil drops it (and its
// subtree) from the mdast tree; nothing currently does that, but the
// signature leaves room for future block-level filtering.
func (m *mapper) mapNode(gmNode ast.Node) *mdast.Node {
	switch gmn := gmNode.(type) {
	case *ast.Document:
		return m.mapContainer(gmn, mdast.NodeDocument)
	case *ast.Paragraph:
		return m.mapContainer(gmn, mdast.NodeParagraph)
	case *ast.ListItem:
		return m.mapContainer(gmn, mdast.NodeListItem)
	case *ast.Blockquote:
		return m.mapContainer(gmn, mdast.NodeBlockquote)
	case *ast.ThematicBreak:
		return mdast.NewNode(mdast.NodeThematicBreak)
	case *ast.HTMLBlock:
		return mdast.NewNode(mdast.NodeHTMLBlock)
	case *ast.RawHTML:
		return mdast.NewNode(mdast.NodeHTMLInline)
	case *ast.Heading:
		return m.mapHeading(gmn)
	case *ast.List:
		return m.mapList(gmn)
	case *ast.FencedCodeBlock:
		return m.mapFencedCodeBlock(gmn)
	case *ast.CodeBlock:
		return m.mapIndentedCodeBlock(gmn)
	case *ast.Text:
		return m.mapText(gmn)
	case *ast.Emphasis:
		return m.mapEmphasis(gmn)
	case *ast.CodeSpan:
		return m.mapCodeSpan(gmn)
	case *ast.Link:
		return m.mapLink(gmn)
	case *ast.Image:
		return m.mapImage(gmn)
	case *ast.AutoLink:
		return m.mapAutoLink(gmn)
	case *ast.String:
		return m.mapString(gmn)
	case *east.Strikethrough:
		return m.mapStrikethrough(gmn)
	case *east.TaskCheckBox:
		return m.mapTaskCheckBox(gmn)
	case *east.Table:
		return m.mapExt(gmn, map[string]any{"table": true, "alignments": gmn.Alignments})
	case *east.TableHeader:
		return m.mapExt(gmn, map[string]any{"tableHeader": true})
	case *east.TableRow:
		return m.mapExt(gmn, map[string]any{"tableRow": true})
	case *east.TableCell:
		return m.mapExt(gmn, map[string]any{"tableCell": true, "alignment": gmn.Alignment})
	default:
		// Unknown node type: keep its text by recursing, but don't claim a
		// specific mdast kind for it.
		return m.mapContainer(gmNode, mdast.NodeRaw)
	}
}

// mapContainer wraps gmNode as a bare node of kind with no attributes of
// its own, recursing into its children.
func (m *mapper) mapContainer(gmNode ast.Node, kind mdast.NodeKind) *mdast.Node {
	node := mdast.NewNode(kind)
	m.mapChildren(gmNode, node)
	return node
}

// mapExt wraps a GFM table-family node as mdast.NodeRaw carrying ext under
// Node.Ext, since mdast has no first-class table node kinds.
func (m *mapper) mapExt(gmNode ast.Node, ext map[string]any) *mdast.Node {
	node := mdast.NewNode(mdast.NodeRaw)
	node.Ext = ext
	m.mapChildren(gmNode, node)
	return node
}

func (m *mapper) mapHeading(h *ast.Heading) *mdast.Node {
	node := mdast.NewNode(mdast.NodeHeading)
	node.Block = mdast.NewBlockAttrs().WithHeadingLevel(h.Level)
	m.mapChildren(h, node)
	return node
}

func (m *mapper) mapList(list *ast.List) *mdast.Node {
	node := mdast.NewNode(mdast.NodeList)

	attrs := &mdast.ListAttrs{
		Ordered:     list.IsOrdered(),
		StartNumber: list.Start,
		Tight:       list.IsTight,
	}
	if list.IsOrdered() {
		// goldmark doesn't expose the ordered delimiter directly.
		attrs.Delimiter = "."
	} else {
		attrs.BulletMarker = string(list.Marker)
	}

	node.Block = mdast.NewBlockAttrs().WithList(attrs)
	m.mapChildren(list, node)
	return node
}

func (m *mapper) mapFencedCodeBlock(codeBlock *ast.FencedCodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)

	info := ""
	if codeBlock.Info != nil {
		info = string(codeBlock.Info.Value(m.content))
	}
	fenceChar, fenceLength := m.fenceStyleBeforeBlock(codeBlock)

	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{
		FenceChar:   fenceChar,
		FenceLength: fenceLength,
		Info:        info,
	})
	return node
}

// fenceStyleBeforeBlock recovers the opening fence's character and run
// length, which goldmark discards after parsing: it walks back from the
// block's first content line to the line above it and reads the fence off
// that raw source line. Returns ('`', 3) if anything looks off.
func (m *mapper) fenceStyleBeforeBlock(codeBlock *ast.FencedCodeBlock) (byte, int) {
	const defaultChar, defaultLen = '`', 3

	lines := codeBlock.Lines()
	if lines.Len() == 0 {
		return defaultChar, defaultLen
	}

	lineStart := m.lineStartContaining(lines.At(0).Start)
	if lineStart == 0 {
		return defaultChar, defaultLen
	}

	fenceLineEnd := lineStart - 1
	fenceLineStart := m.lineStartContaining(fenceLineEnd)
	return m.fenceAt(fenceLineStart, fenceLineEnd)
}

// lineStartContaining returns the byte offset the line containing offset
// begins at.
func (m *mapper) lineStartContaining(offset int) int {
	for offset > 0 && m.content[offset-1] != '\n' {
		offset--
	}
	return offset
}

// fenceAt reads a fence character and run length from content[start:end],
// skipping leading indentation. Falls back to ('`', 3) if the line doesn't
// open with '`' or '~'.
func (m *mapper) fenceAt(start, end int) (byte, int) {
	const defaultChar, defaultLen = '`', 3

	pos := start
	for pos < end && pos < len(m.content) && (m.content[pos] == ' ' || m.content[pos] == '\t') {
		pos++
	}
	if pos >= end || pos >= len(m.content) {
		return defaultChar, defaultLen
	}

	fenceChar := m.content[pos]
	if fenceChar != '`' && fenceChar != '~' {
		return defaultChar, defaultLen
	}

	length := 0
	for pos < end && pos < len(m.content) && m.content[pos] == fenceChar {
		length++
		pos++
	}
	if length < 3 {
		length = 3
	}
	return fenceChar, length
}

func (m *mapper) mapIndentedCodeBlock(_ *ast.CodeBlock) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeBlock)
	node.Block = mdast.NewBlockAttrs().WithCodeBlock(&mdast.CodeBlockAttrs{Indented: true})
	return node
}

func (m *mapper) mapText(textNode *ast.Text) *mdast.Node {
	switch {
	case textNode.SoftLineBreak():
		return mdast.NewNode(mdast.NodeSoftBreak)
	case textNode.HardLineBreak():
		return mdast.NewNode(mdast.NodeHardBreak)
	}
	node := mdast.NewNode(mdast.NodeText)
	node.Inline = mdast.NewInlineAttrs().WithText(textNode.Value(m.content))
	return node
}

func (m *mapper) mapEmphasis(emphasis *ast.Emphasis) *mdast.Node {
	kind, level := mdast.NodeEmphasis, 1
	if emphasis.Level == 2 {
		kind, level = mdast.NodeStrong, 2
	}

	node := mdast.NewNode(kind)
	node.Inline = mdast.NewInlineAttrs().WithEmphasisLevel(level)
	m.mapChildren(emphasis, node)
	return node
}

func (m *mapper) mapCodeSpan(codeSpan *ast.CodeSpan) *mdast.Node {
	node := mdast.NewNode(mdast.NodeCodeSpan)

	var text []byte
	for child := codeSpan.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			text = append(text, t.Value(m.content)...)
		}
	}

	node.Inline = mdast.NewInlineAttrs().WithText(text)
	return node
}

// mapLink and mapImage both default ReferenceStyle to inline: goldmark
// normalizes every reference-link syntax down to a resolved destination
// during parsing, so the original [text][label]/[label][]/[label] spelling
// isn't recoverable from the goldmark node. The refs package re-derives it
// by inspecting the raw source instead.

func (m *mapper) mapLink(link *ast.Link) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:    string(link.Destination),
		Title:          string(link.Title),
		ReferenceStyle: mdast.RefStyleInline,
	})
	m.mapChildren(link, node)
	return node
}

func (m *mapper) mapImage(img *ast.Image) *mdast.Node {
	node := mdast.NewNode(mdast.NodeImage)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:    string(img.Destination),
		Title:          string(img.Title),
		ReferenceStyle: mdast.RefStyleInline,
	})
	m.mapChildren(img, node)
	return node
}

func (m *mapper) mapAutoLink(al *ast.AutoLink) *mdast.Node {
	node := mdast.NewNode(mdast.NodeLink)
	node.Inline = mdast.NewInlineAttrs().WithLink(&mdast.LinkAttrs{
		Destination:    string(al.URL(m.content)),
		ReferenceStyle: mdast.RefStyleAutolink,
	})

	text := mdast.NewNode(mdast.NodeText)
	text.Inline = mdast.NewInlineAttrs().WithText(al.Label(m.content))
	mdast.AppendChild(node, text)
	return node
}

func (m *mapper) mapString(s *ast.String) *mdast.Node {
	node := mdast.NewNode(mdast.NodeText)
	node.Inline = mdast.NewInlineAttrs().WithText(s.Value)
	return node
}

func (m *mapper) mapStrikethrough(s *east.Strikethrough) *mdast.Node {
	node := mdast.NewNode(mdast.NodeEmphasis)
	node.Ext = map[string]any{"strikethrough": true}
	m.mapChildren(s, node)
	return node
}

func (m *mapper) mapTaskCheckBox(cb *east.TaskCheckBox) *mdast.Node {
	node := mdast.NewNode(mdast.NodeText)
	node.Ext = map[string]any{"taskCheckbox": true, "checked": cb.IsChecked}
	return node
}

// getNodeByteRange returns the [start, end) byte span a goldmark node
// covers in content. Block nodes expose this via Lines(); inline nodes
// don't (calling Lines() on one panics), so they go through
// getInlineNodeByteRange instead.
func getNodeByteRange(gmNode ast.Node, content []byte) (int, int) {
	if gmNode.Type() == ast.TypeInline {
		return getInlineNodeByteRange(gmNode, content)
	}

	lines := gmNode.Lines()
	if lines.Len() == 0 {
		return -1, -1
	}
	first, last := lines.At(0), lines.At(lines.Len()-1)
	return first.Start, last.Stop
}

// getInlineNodeByteRange derives an inline node's byte span from the text
// segments it (or its RawHTML/Text children) carry, since inline nodes
// don't track a span of their own.
func getInlineNodeByteRange(gmNode ast.Node, _ []byte) (int, int) {
	start, end := -1, -1
	extend := func(s, e int) {
		if start == -1 || s < start {
			start = s
		}
		if e > end {
			end = e
		}
	}

	if rawHTML, ok := gmNode.(*ast.RawHTML); ok {
		segs := rawHTML.Segments
		for i := range segs.Len() {
			seg := segs.At(i)
			extend(seg.Start, seg.Stop)
		}
		return start, end
	}

	for child := gmNode.FirstChild(); child != nil; child = child.NextSibling() {
		if t, ok := child.(*ast.Text); ok {
			extend(t.Segment.Start, t.Segment.Stop)
		}
	}
	if t, ok := gmNode.(*ast.Text); ok {
		extend(t.Segment.Start, t.Segment.Stop)
	}

	return start, end
}
