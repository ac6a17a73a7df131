package refs

import (
	"bytes"
	"regexp"
	"strings"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// Collect walks root and file's source once, returning the fully resolved
// reference Context: every heading anchor, HTML anchor, reference
// definition, and link/image usage, with usages already matched to their
// definitions.
func Collect(root *mdast.Node, file *mdast.FileSnapshot) *Context {
	if root == nil || file == nil {
		return NewContext(file)
	}

	c := &collector{ctx: NewContext(file), root: root}
	c.walkAnchorsAndUsages()
	c.collectDefinitions()
	c.resolve()
	return c.ctx
}

// collector accumulates a Context's contents across a single pass of the
// AST plus a line-oriented pass of the raw source (reference definitions
// aren't represented as distinct AST nodes).
type collector struct {
	ctx  *Context
	root *mdast.Node
}

func (c *collector) walkAnchorsAndUsages() {
	_ = mdast.Walk(c.root, c.visit) //nolint:errcheck // visitor never returns error
}

func (c *collector) visit(node *mdast.Node) error {
	switch node.Kind {
	case mdast.NodeHeading:
		c.addHeadingAnchor(node)
	case mdast.NodeLink:
		c.addUsage(node, false)
	case mdast.NodeImage:
		c.addUsage(node, true)
	case mdast.NodeHTMLBlock, mdast.NodeHTMLInline:
		c.addHTMLAnchors(node)
	}
	return nil
}

func (c *collector) addHeadingAnchor(node *mdast.Node) {
	if text := plainText(node); text != "" {
		c.ctx.Anchors.AddFromHeading(text, node.SourcePosition())
	}
}

// plainText concatenates the text of every NodeText descendant of n.
func plainText(n *mdast.Node) string {
	var buf bytes.Buffer
	_ = mdast.Walk(n, func(node *mdast.Node) error { //nolint:errcheck // visitor never returns error
		if node.Kind == mdast.NodeText && node.Inline != nil {
			buf.Write(node.Inline.Text)
		}
		return nil
	})
	return buf.String()
}

func (c *collector) addUsage(node *mdast.Node, isImage bool) {
	if node.Inline == nil || node.Inline.Link == nil {
		return
	}
	dest := node.Inline.Link.Destination

	style, label := c.detectStyle(node, isImage)
	usage := &ReferenceUsage{
		IsImage:         isImage,
		Text:            plainText(node),
		Destination:     dest,
		Fragment:        ExtractFragment(dest),
		Position:        node.SourcePosition(),
		Node:            node,
		Style:           style,
		Label:           label,
		NormalizedLabel: NormalizeLabel(label),
	}
	c.ctx.Usages = append(c.ctx.Usages, usage)
}

// detectStyle reports how node's link was written. The parser's mapper
// already classifies autolinks and full/collapsed/shortcut references up
// front; everything else falls back to a source-line heuristic since
// plain inline links ([x](y)) leave no distinguishing mdast attribute.
func (c *collector) detectStyle(node *mdast.Node, isImage bool) (ReferenceStyle, string) {
	if link := node.Inline.Link; link != nil {
		switch link.ReferenceStyle {
		case mdast.RefStyleAutolink:
			return StyleAutolink, ""
		case mdast.RefStyleFull:
			return StyleFull, link.ReferenceLabel
		case mdast.RefStyleCollapsed:
			return StyleCollapsed, plainText(node)
		case mdast.RefStyleShortcut:
			return StyleShortcut, plainText(node)
		case mdast.RefStyleInline:
			// fall through to the source heuristic below
		}
	}

	line, ok := c.sourceLine(node.SourcePosition())
	if !ok {
		return StyleInline, ""
	}
	text := plainText(node)

	if idx := bytes.Index(line, []byte("][")); idx >= 0 {
		if label := labelAfter(line, idx+2); label != "" {
			return StyleFull, label
		}
	}
	if bytes.Contains(line, []byte("["+text+"][]")) {
		return StyleCollapsed, text
	}
	if isShortcutReference(line, text, isImage) {
		return StyleShortcut, text
	}
	return StyleInline, ""
}

// labelAfter reads the "label" out of "...][label]..." where start is the
// byte index just past "][".
func labelAfter(line []byte, start int) string {
	if start >= len(line) {
		return ""
	}
	end := bytes.IndexByte(line[start:], ']')
	if end < 0 {
		return ""
	}
	return string(line[start : start+end])
}

// isShortcutReference reports whether line contains "[text]" (or "![text]"
// for images) not immediately followed by '(' or '[', which would instead
// make it an inline or full reference.
func isShortcutReference(line []byte, text string, isImage bool) bool {
	prefix := "["
	if isImage {
		prefix = "!["
	}
	pattern := []byte(prefix + text + "]")

	idx := bytes.Index(line, pattern)
	if idx < 0 {
		return false
	}
	after := idx + len(pattern)
	if after >= len(line) {
		return true
	}
	return line[after] != '(' && line[after] != '['
}

// htmlAnchorAttrs are the HTML attributes that create a fragment target,
// paired with the AnchorSource they're recorded under.
var htmlAnchorAttrs = []struct {
	name   string
	source AnchorSource
}{
	{"id", AnchorFromHTMLID},
	{"name", AnchorFromHTMLName},
}

func (c *collector) addHTMLAnchors(node *mdast.Node) {
	pos := node.SourcePosition()
	content, ok := c.sourceLine(pos)
	if !ok || len(content) == 0 {
		return
	}
	for _, attr := range htmlAnchorAttrs {
		c.extractAttr(content, attr.name, attr.source, pos)
	}
}

// sourceLine returns the raw source line containing pos's start, or false
// if pos is invalid or out of range.
func (c *collector) sourceLine(pos mdast.SourcePosition) ([]byte, bool) {
	if !pos.IsValid() || c.ctx.File == nil ||
		pos.StartLine < 1 || pos.StartLine > len(c.ctx.File.Lines) {
		return nil, false
	}
	line := c.ctx.File.Lines[pos.StartLine-1]
	return c.ctx.File.Content[line.StartOffset:line.NewlineStart], true
}

// htmlAttrPattern matches id="value" or id='value' (or name=...).
var htmlAttrPattern = regexp.MustCompile(`(?i)\b(id|name)\s*=\s*["']([^"']+)["']`)

func (c *collector) extractAttr(content []byte, attr string, source AnchorSource, pos mdast.SourcePosition) {
	for _, match := range htmlAttrPattern.FindAllSubmatch(content, -1) {
		if len(match) >= 3 && strings.EqualFold(string(match[1]), attr) {
			c.ctx.Anchors.Add(&Anchor{ID: string(match[2]), Source: source, Position: pos})
		}
	}
}

// refDefPattern matches a reference definition line:
// [label]: destination "title" | 'title' | (title), up to 3 spaces indent.
var refDefPattern = regexp.MustCompile(
	`^\s{0,3}\[([^\]]+)\]:\s*(\S+)(?:\s+"([^"]*)"|\s+'([^']*)'|\s+\(([^)]*)\))?\s*$`,
)

// codeBlockLines returns the set of 1-based line numbers inside any code
// block, which reference-definition scanning must skip.
func codeBlockLines(root *mdast.Node) map[int]bool {
	lines := make(map[int]bool)
	if root == nil {
		return lines
	}
	//nolint:errcheck // Walk visitor never returns error in this usage
	mdast.Walk(root, func(node *mdast.Node) error {
		if node.Kind != mdast.NodeCodeBlock {
			return nil
		}
		pos := node.SourcePosition()
		if pos.IsValid() {
			for line := pos.StartLine; line <= pos.EndLine; line++ {
				lines[line] = true
			}
		}
		return nil
	})
	return lines
}

// collectDefinitions scans the raw source line by line for reference
// definitions. They aren't AST nodes, so this can't reuse the node walk
// above.
func (c *collector) collectDefinitions() {
	if c.ctx.File == nil || len(c.ctx.File.Content) == 0 {
		return
	}
	skip := codeBlockLines(c.root)

	for idx, line := range c.ctx.File.Lines {
		lineNum := idx + 1
		if skip[lineNum] {
			continue
		}

		raw := c.ctx.File.Content[line.StartOffset:line.NewlineStart]
		m := refDefPattern.FindSubmatch(raw)
		if m == nil {
			continue
		}

		label := string(m[1])
		normalized := NormalizeLabel(label)
		def := &ReferenceDefinition{
			Label:           label,
			NormalizedLabel: normalized,
			Destination:     string(m[2]),
			Title:           firstNonEmpty(string(m[3]), string(m[4]), string(m[5])),
			LineNumber:      lineNum,
			Position: mdast.SourcePosition{
				StartLine:   lineNum,
				EndLine:     lineNum,
				StartColumn: 1,
			},
		}

		if _, exists := c.ctx.Definitions[normalized]; exists {
			def.IsDuplicate = true
		} else {
			c.ctx.Definitions[normalized] = def
		}
		c.ctx.AllDefinitions = append(c.ctx.AllDefinitions, def)
	}
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// resolve links each usage to its definition (by normalized label) and
// tallies definition usage counts.
func (c *collector) resolve() {
	for _, usage := range c.ctx.Usages {
		if usage.NormalizedLabel == "" {
			continue
		}
		if def := c.ctx.Definitions[usage.NormalizedLabel]; def != nil {
			usage.ResolvedDefinition = def
			def.UsageCount++
		}
	}
}
