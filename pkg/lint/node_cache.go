package lint

import "github.com/yaklabco/mkdlint/pkg/mdast"

// NodeCache walks a document's AST once and buckets its nodes by kind, so
// that when N rules each ask for "all the headings" the tree is walked
// once instead of N times. Profiling a full rule set showed AST traversal
// (mdast.Walk/FindAll) dominating CPU time; NodeCache turns that from
// O(rules x nodes) into O(nodes).
//
// It is built lazily on first access through RuleContext, is not
// thread-safe (each file gets its own RuleContext and cache), and its
// accessors return slices shared across every rule for that file - callers
// must copy before sorting or otherwise mutating in place.
type NodeCache struct {
	buckets map[mdast.NodeKind][]*mdast.Node
	tables  []*mdast.Node
	built   bool
}

// cachedKinds lists the node kinds NodeCache buckets directly by Kind.
// Tables are handled separately since GFM tables are carried in Node.Ext
// rather than as a distinct NodeKind.
var cachedKinds = []mdast.NodeKind{
	mdast.NodeHeading,
	mdast.NodeList,
	mdast.NodeListItem,
	mdast.NodeCodeBlock,
	mdast.NodeParagraph,
	mdast.NodeBlockquote,
	mdast.NodeThematicBreak,
	mdast.NodeHTMLBlock,
	mdast.NodeCodeSpan,
	mdast.NodeLink,
	mdast.NodeImage,
	mdast.NodeHTMLInline,
	mdast.NodeEmphasis,
	mdast.NodeStrong,
}

// nodeCacheBucketCap is a rough initial per-bucket capacity; most of these
// kinds are sparse relative to total node count, so overshooting a little
// costs less than the reallocation churn of starting from zero.
const nodeCacheBucketCap = 8

func newNodeCache() *NodeCache {
	return &NodeCache{}
}

// build walks root once, populating every bucket. Calling it again on an
// already-built cache, or with a nil root, is a no-op.
func (nc *NodeCache) build(root *mdast.Node) {
	if nc.built || root == nil {
		return
	}

	nc.buckets = make(map[mdast.NodeKind][]*mdast.Node, len(cachedKinds))
	for _, k := range cachedKinds {
		nc.buckets[k] = make([]*mdast.Node, 0, nodeCacheBucketCap)
	}

	//nolint:errcheck // Walk visitor never returns error in this usage
	mdast.Walk(root, func(node *mdast.Node) error {
		if bucket, ok := nc.buckets[node.Kind]; ok {
			nc.buckets[node.Kind] = append(bucket, node)
		} else if IsTableNode(node) {
			nc.tables = append(nc.tables, node)
		}
		return nil
	})

	nc.built = true
}

func (nc *NodeCache) Headings() []*mdast.Node       { return nc.buckets[mdast.NodeHeading] }
func (nc *NodeCache) Lists() []*mdast.Node          { return nc.buckets[mdast.NodeList] }
func (nc *NodeCache) ListItems() []*mdast.Node      { return nc.buckets[mdast.NodeListItem] }
func (nc *NodeCache) CodeBlocks() []*mdast.Node     { return nc.buckets[mdast.NodeCodeBlock] }
func (nc *NodeCache) Paragraphs() []*mdast.Node     { return nc.buckets[mdast.NodeParagraph] }
func (nc *NodeCache) Blockquotes() []*mdast.Node    { return nc.buckets[mdast.NodeBlockquote] }
func (nc *NodeCache) ThematicBreaks() []*mdast.Node { return nc.buckets[mdast.NodeThematicBreak] }
func (nc *NodeCache) HTMLBlocks() []*mdast.Node     { return nc.buckets[mdast.NodeHTMLBlock] }
func (nc *NodeCache) CodeSpans() []*mdast.Node      { return nc.buckets[mdast.NodeCodeSpan] }
func (nc *NodeCache) Links() []*mdast.Node          { return nc.buckets[mdast.NodeLink] }
func (nc *NodeCache) Images() []*mdast.Node         { return nc.buckets[mdast.NodeImage] }
func (nc *NodeCache) HTMLInlines() []*mdast.Node    { return nc.buckets[mdast.NodeHTMLInline] }
func (nc *NodeCache) Emphasis() []*mdast.Node       { return nc.buckets[mdast.NodeEmphasis] }
func (nc *NodeCache) Strong() []*mdast.Node         { return nc.buckets[mdast.NodeStrong] }
func (nc *NodeCache) Tables() []*mdast.Node         { return nc.tables }
