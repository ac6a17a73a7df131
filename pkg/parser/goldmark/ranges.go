package goldmark

import (
	"sort"

	"github.com/yaklabco/mkdlint/pkg/mdast"
	"github.com/yuin/goldmark/ast"
)

// TokenRangeAssigner stamps each mdast.Node with the [FirstToken, LastToken]
// span of tokens it covers, walking the mdast tree in lockstep with the
// goldmark tree that produced it.
type TokenRangeAssigner struct {
	tokens  []mdast.Token
	content []byte
}

// NewTokenRangeAssigner returns an assigner over tokens/content.
func NewTokenRangeAssigner(tokens []mdast.Token, content []byte) *TokenRangeAssigner {
	return &TokenRangeAssigner{tokens: tokens, content: content}
}

// AssignRanges walks root/gmRoot together, setting a token range on every
// mdast node it can derive one for from the goldmark source positions,
// then fills in the document root and any nodes the walk skipped.
func (a *TokenRangeAssigner) AssignRanges(root *mdast.Node, gmRoot ast.Node) {
	if root == nil || len(a.tokens) == 0 {
		return
	}
	a.walk(root, gmRoot)
	a.coverDocument(root)
	a.fillFromChildren(root)
}

// FindTokensInRange returns the first and last token index overlapping
// [start, end), or -1 for either side with nothing in range.
func (a *TokenRangeAssigner) FindTokensInRange(start, end int) (int, int) {
	return tokenAtOrAfter(a.tokens, start), tokenAtOrBefore(a.tokens, end)
}

// walk pairs each mdast node with its goldmark counterpart (both trees were
// built in the same order, so a lockstep sibling walk keeps them aligned)
// and stamps a token range from the goldmark node's byte span.
func (a *TokenRangeAssigner) walk(node *mdast.Node, gmNode ast.Node) {
	if node == nil {
		return
	}

	if start, end := getNodeByteRange(gmNode, a.content); start >= 0 && end >= 0 && start <= end {
		first := tokenAtOrAfter(a.tokens, start)
		last := tokenAtOrBefore(a.tokens, end)
		if first >= 0 && last >= 0 {
			mdast.SetTokenRange(node, first, last)
		}
	}

	mdChild, gmChild := node.FirstChild, gmNode.FirstChild()
	for mdChild != nil && gmChild != nil {
		a.walk(mdChild, gmChild)
		mdChild, gmChild = mdChild.Next, gmChild.NextSibling()
	}
}

// coverDocument stamps the document root with the full token range, since
// a document always spans the whole file regardless of what its children
// individually cover.
func (a *TokenRangeAssigner) coverDocument(root *mdast.Node) {
	if root.Kind == mdast.NodeDocument {
		mdast.SetTokenRange(root, 0, len(a.tokens)-1)
	}
}

// fillFromChildren post-order visits every node still missing a token
// range (synthetic nodes the goldmark walk couldn't map directly) and
// derives one as the union of its children's ranges.
func (a *TokenRangeAssigner) fillFromChildren(node *mdast.Node) {
	for child := node.FirstChild; child != nil; child = child.Next {
		a.fillFromChildren(child)
	}

	if node.FirstToken >= 0 && node.LastToken >= 0 {
		return
	}

	first, last := -1, -1
	for child := node.FirstChild; child != nil; child = child.Next {
		if child.FirstToken >= 0 && (first < 0 || child.FirstToken < first) {
			first = child.FirstToken
		}
		if child.LastToken >= 0 && child.LastToken > last {
			last = child.LastToken
		}
	}
	if first >= 0 && last >= 0 {
		mdast.SetTokenRange(node, first, last)
	}
}

// tokenAtOrAfter returns the index of the first token whose span contains
// or starts at offset, or -1 if offset is past every token.
func tokenAtOrAfter(tokens []mdast.Token, offset int) int {
	if len(tokens) == 0 || offset < 0 {
		return -1
	}
	idx := sort.Search(len(tokens), func(i int) bool { return tokens[i].EndOffset > offset })
	if idx < len(tokens) {
		return idx
	}
	return -1
}

// tokenAtOrBefore returns the index of the last token ending at or before
// offset, falling back to token 0 if every token ends after it.
func tokenAtOrBefore(tokens []mdast.Token, offset int) int {
	if len(tokens) == 0 || offset < 0 {
		return -1
	}
	idx := sort.Search(len(tokens), func(i int) bool { return tokens[i].EndOffset >= offset })
	switch {
	case idx < len(tokens) && tokens[idx].EndOffset == offset:
		return idx
	case idx > 0:
		return idx - 1
	default:
		return 0
	}
}
