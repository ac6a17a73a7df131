package mdast

// BlockAttrs carries the attributes specific to block-level node kinds.
// Which field is populated depends on Node.Kind: HeadingLevel for
// NodeHeading, List for NodeList, CodeBlock for NodeCodeBlock.
type BlockAttrs struct {
	HeadingLevel int
	List         *ListAttrs
	CodeBlock    *CodeBlockAttrs
}

// ListAttrs describes a NodeList's marker style and looseness.
type ListAttrs struct {
	Ordered      bool
	BulletMarker string // "-", "+", or "*" for unordered lists
	StartNumber  int
	Delimiter    string // "." or ")" for ordered lists
	Tight        bool   // true when no blank line separates items
}

// CodeBlockAttrs describes a NodeCodeBlock's fence (or lack thereof).
type CodeBlockAttrs struct {
	FenceChar   byte // '`' or '~'; unused when Indented
	FenceLength int
	Info        string
	Indented    bool
}

// InlineAttrs carries the attributes specific to inline-level node kinds.
// Text holds content for NodeText/NodeCodeSpan; Link holds it for
// NodeLink/NodeImage; EmphasisLevel distinguishes NodeEmphasis (1) from
// NodeStrong (2).
type InlineAttrs struct {
	Text          []byte
	Link          *LinkAttrs
	EmphasisLevel int
}

// ReferenceStyle identifies which of the four link/image syntaxes (plus
// autolinks) a LinkAttrs was parsed from.
type ReferenceStyle uint8

const (
	RefStyleInline    ReferenceStyle = iota // [text](url)
	RefStyleFull                           // [text][label]
	RefStyleCollapsed                      // [label][]
	RefStyleShortcut                       // [label]
	RefStyleAutolink                       // <https://example.com>
)

var referenceStyleNames = [...]string{
	RefStyleInline:    "inline",
	RefStyleFull:      "full",
	RefStyleCollapsed: "collapsed",
	RefStyleShortcut:  "shortcut",
	RefStyleAutolink:  "autolink",
}

// String renders the reference style's name, or "unknown" for an
// out-of-range value.
func (s ReferenceStyle) String() string {
	if int(s) >= len(referenceStyleNames) {
		return "unknown"
	}
	return referenceStyleNames[s]
}

// LinkAttrs describes a link or image target.
type LinkAttrs struct {
	Destination string
	Title       string

	// ReferenceLabel is set for reference-style links; empty for inline
	// links and autolinks.
	ReferenceLabel string
	ReferenceStyle ReferenceStyle
}

// NewBlockAttrs returns a zero-valued BlockAttrs ready for the With*
// builder methods.
func NewBlockAttrs() *BlockAttrs {
	return &BlockAttrs{}
}

// NewInlineAttrs returns a zero-valued InlineAttrs ready for the With*
// builder methods.
func NewInlineAttrs() *InlineAttrs {
	return &InlineAttrs{}
}

// WithHeadingLevel sets HeadingLevel, returning a for chaining.
func (a *BlockAttrs) WithHeadingLevel(level int) *BlockAttrs {
	a.HeadingLevel = level
	return a
}

// WithList sets List, returning a for chaining.
func (a *BlockAttrs) WithList(attrs *ListAttrs) *BlockAttrs {
	a.List = attrs
	return a
}

// WithCodeBlock sets CodeBlock, returning a for chaining.
func (a *BlockAttrs) WithCodeBlock(attrs *CodeBlockAttrs) *BlockAttrs {
	a.CodeBlock = attrs
	return a
}

// WithText sets Text, returning a for chaining.
func (a *InlineAttrs) WithText(text []byte) *InlineAttrs {
	a.Text = text
	return a
}

// WithLink sets Link, returning a for chaining.
func (a *InlineAttrs) WithLink(attrs *LinkAttrs) *InlineAttrs {
	a.Link = attrs
	return a
}

// WithEmphasisLevel sets EmphasisLevel, returning a for chaining.
func (a *InlineAttrs) WithEmphasisLevel(level int) *InlineAttrs {
	a.EmphasisLevel = level
	return a
}
