package mdast

//go:generate stringer -type=NodeKind -trimprefix=Node

// NodeKind classifies the type of an AST node.
type NodeKind uint16

// Node kinds for block-level and inline-level Markdown elements.
const (
	NodeDocument NodeKind = iota

	// Block-level nodes.
	NodeParagraph
	NodeHeading
	NodeList
	NodeListItem
	NodeBlockquote
	NodeCodeBlock
	NodeThematicBreak
	NodeHTMLBlock

	// Inline-level nodes.
	NodeText
	NodeEmphasis
	NodeStrong
	NodeCodeSpan
	NodeLink
	NodeImage
	NodeSoftBreak
	NodeHardBreak
	NodeHTMLInline

	// Fallback for unrecognized content.
	NodeRaw
)

// blockKinds is the membership set consulted by Node.IsBlock.
var blockKinds = map[NodeKind]bool{
	NodeDocument:      true,
	NodeParagraph:     true,
	NodeHeading:       true,
	NodeList:          true,
	NodeListItem:      true,
	NodeBlockquote:    true,
	NodeCodeBlock:     true,
	NodeThematicBreak: true,
	NodeHTMLBlock:     true,
}

// inlineKinds is the membership set consulted by Node.IsInline.
var inlineKinds = map[NodeKind]bool{
	NodeText:       true,
	NodeEmphasis:   true,
	NodeStrong:     true,
	NodeCodeSpan:   true,
	NodeLink:       true,
	NodeImage:      true,
	NodeSoftBreak:  true,
	NodeHardBreak:  true,
	NodeHTMLInline: true,
}

// Node is one node of the Markdown AST: a tagged variant over block- and
// inline-level constructs, linked into a tree via Parent/child/sibling
// pointers.
type Node struct {
	Kind NodeKind

	Parent     *Node
	FirstChild *Node
	LastChild  *Node
	Prev       *Node
	Next       *Node

	// FirstToken and FirstToken..LastToken index into the owning
	// FileSnapshot.Tokens; both are -1 for synthetic or degenerate nodes,
	// otherwise FirstToken <= LastToken.
	FirstToken int
	LastToken  int

	// File back-references the FileSnapshot this node was parsed from.
	File *FileSnapshot

	Block  *BlockAttrs
	Inline *InlineAttrs

	// Ext carries extension-specific data (GFM tables, IAL, ...) keyed by
	// extension name.
	Ext map[string]any
}

// IsBlock reports whether n is one of the block-level node kinds.
func (n *Node) IsBlock() bool {
	return blockKinds[n.Kind]
}

// IsInline reports whether n is one of the inline-level node kinds.
func (n *Node) IsInline() bool {
	return inlineKinds[n.Kind]
}

// HasChildren reports whether n has at least one child.
func (n *Node) HasChildren() bool {
	return n.FirstChild != nil
}

// ChildCount counts n's direct children by walking the sibling chain.
func (n *Node) ChildCount() int {
	var count int
	for child := n.FirstChild; child != nil; child = child.Next {
		count++
	}
	return count
}

// Children materializes n's direct children as a slice, in document order.
func (n *Node) Children() []*Node {
	out := make([]*Node, 0, n.ChildCount())
	for child := n.FirstChild; child != nil; child = child.Next {
		out = append(out, child)
	}
	return out
}
