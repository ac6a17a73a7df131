package lint_test

import (
	"testing"

	"github.com/yaklabco/mkdlint/pkg/lint"
	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// sampleDocument builds one document exercising every node kind helpers.go
// queries: a level-2 heading, a paragraph holding a link and an image, an
// ordered list, an unordered list, and a fenced code block.
func sampleDocument() *mdast.Node {
	doc := mdast.NewNode(mdast.NodeDocument)

	heading := mdast.NewNode(mdast.NodeHeading)
	heading.Block = &mdast.BlockAttrs{HeadingLevel: 2}
	mdast.AppendChild(doc, heading)

	para := mdast.NewNode(mdast.NodeParagraph)
	mdast.AppendChild(doc, para)

	ordered := mdast.NewNode(mdast.NodeList)
	ordered.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{Ordered: true, Tight: true}}
	mdast.AppendChild(doc, ordered)

	unordered := mdast.NewNode(mdast.NodeList)
	unordered.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{Ordered: false, Tight: false}}
	mdast.AppendChild(doc, unordered)

	code := mdast.NewNode(mdast.NodeCodeBlock)
	code.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Info: "go"}}
	mdast.AppendChild(doc, code)

	link := mdast.NewNode(mdast.NodeLink)
	link.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: "https://example.com"}}
	mdast.AppendChild(para, link)

	image := mdast.NewNode(mdast.NodeImage)
	image.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: "image.png"}}
	mdast.AppendChild(para, image)

	return doc
}

func TestNodeKindQueries(t *testing.T) {
	t.Parallel()

	doc := sampleDocument()

	cases := []struct {
		name string
		got  int
		want int
	}{
		{"Headings", len(lint.Headings(doc)), 1},
		{"Lists", len(lint.Lists(doc)), 2},
		{"CodeBlocks", len(lint.CodeBlocks(doc)), 1},
		{"Links", len(lint.Links(doc)), 1},
		{"Images", len(lint.Images(doc)), 1},
		{"Paragraphs", len(lint.Paragraphs(doc)), 1},
	}
	for _, tc := range cases {
		if tc.got != tc.want {
			t.Errorf("%s: got %d, want %d", tc.name, tc.got, tc.want)
		}
	}
}

func headingWithLevel(level int) *mdast.Node {
	n := mdast.NewNode(mdast.NodeHeading)
	n.Block = &mdast.BlockAttrs{HeadingLevel: level}
	return n
}

func listWith(ordered, tight bool) *mdast.Node {
	n := mdast.NewNode(mdast.NodeList)
	n.Block = &mdast.BlockAttrs{List: &mdast.ListAttrs{Ordered: ordered, Tight: tight}}
	return n
}

func TestHeadingLevel(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node *mdast.Node
		want int
	}{
		{"nil node", nil, 0},
		{"non-heading node", mdast.NewNode(mdast.NodeParagraph), 0},
		{"heading without block attrs", mdast.NewNode(mdast.NodeHeading), 0},
		{"heading level 2", headingWithLevel(2), 2},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.HeadingLevel(tc.node); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestIsOrderedList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node *mdast.Node
		want bool
	}{
		{"nil node", nil, false},
		{"non-list node", mdast.NewNode(mdast.NodeParagraph), false},
		{"ordered list", listWith(true, false), true},
		{"unordered list", listWith(false, false), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.IsOrderedList(tc.node); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestIsTightList(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name string
		node *mdast.Node
		want bool
	}{
		{"nil node", nil, false},
		{"tight list", listWith(false, true), true},
		{"loose list", listWith(false, false), false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.IsTightList(tc.node); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestCodeBlockInfo(t *testing.T) {
	t.Parallel()

	withInfo := func(info string) *mdast.Node {
		n := mdast.NewNode(mdast.NodeCodeBlock)
		n.Block = &mdast.BlockAttrs{CodeBlock: &mdast.CodeBlockAttrs{Info: info}}
		return n
	}

	cases := []struct {
		name string
		node *mdast.Node
		want string
	}{
		{"nil node", nil, ""},
		{"code block with info", withInfo("python"), "python"},
		{"code block without info", withInfo(""), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.CodeBlockInfo(tc.node); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func TestLinkDestination(t *testing.T) {
	t.Parallel()

	withDest := func(dest string) *mdast.Node {
		n := mdast.NewNode(mdast.NodeLink)
		n.Inline = &mdast.InlineAttrs{Link: &mdast.LinkAttrs{Destination: dest}}
		return n
	}

	cases := []struct {
		name string
		node *mdast.Node
		want string
	}{
		{"nil node", nil, ""},
		{"link with destination", withDest("https://example.com"), "https://example.com"},
		{"node without inline attrs", mdast.NewNode(mdast.NodeLink), ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.LinkDestination(tc.node); got != tc.want {
				t.Errorf("got %q, want %q", got, tc.want)
			}
		})
	}
}

func snapshotOf(content string) *mdast.FileSnapshot {
	b := []byte(content)
	return &mdast.FileSnapshot{Content: b, Lines: mdast.BuildLines(b)}
}

func TestLineContent(t *testing.T) {
	t.Parallel()

	file := snapshotOf("line1\nline2\nline3")

	cases := []struct {
		name    string
		lineNum int
		want    string
	}{
		{"line 1", 1, "line1"},
		{"line 2", 2, "line2"},
		{"line 3", 3, "line3"},
		{"line 0 (invalid)", 0, ""},
		{"line 4 (invalid)", 4, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.LineContent(file, tc.lineNum); string(got) != tc.want {
				t.Errorf("got %q, want %q", string(got), tc.want)
			}
		})
	}
}

func TestLineContent_NilFile(t *testing.T) {
	t.Parallel()

	if got := lint.LineContent(nil, 1); got != nil {
		t.Errorf("expected nil, got %v", got)
	}
}

func TestLineLength(t *testing.T) {
	t.Parallel()

	file := snapshotOf("short\nlonger line\n")

	cases := []struct {
		name    string
		lineNum int
		want    int
	}{
		{"line 1", 1, 5},
		{"line 2", 2, 11},
		{"invalid line", 0, 0},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.LineLength(file, tc.lineNum); got != tc.want {
				t.Errorf("got %d, want %d", got, tc.want)
			}
		})
	}
}

func TestHasTrailingWhitespace(t *testing.T) {
	t.Parallel()

	file := snapshotOf("no trailing\nwith space \nwith tab\t\n")

	cases := []struct {
		name    string
		lineNum int
		want    bool
	}{
		{"no trailing", 1, false},
		{"with space", 2, true},
		{"with tab", 3, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.HasTrailingWhitespace(file, tc.lineNum); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTrailingWhitespaceRange(t *testing.T) {
	t.Parallel()

	file := snapshotOf("no trailing\nwith space  \nwith tab\t\n")

	cases := []struct {
		name      string
		lineNum   int
		wantStart int
		wantEnd   int
	}{
		{"no trailing", 1, -1, -1},
		{"with space", 2, 22, 24},
		{"with tab", 3, 33, 34},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			start, end := lint.TrailingWhitespaceRange(file, tc.lineNum)
			if start != tc.wantStart || end != tc.wantEnd {
				t.Errorf("got [%d:%d], want [%d:%d]", start, end, tc.wantStart, tc.wantEnd)
			}
		})
	}
}

func TestIsBlankLine(t *testing.T) {
	t.Parallel()

	file := snapshotOf("content\n\n   \n\t\n")

	cases := []struct {
		name    string
		lineNum int
		want    bool
	}{
		{"content line", 1, false},
		{"empty line", 2, true},
		{"spaces only", 3, true},
		{"tab only", 4, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := lint.IsBlankLine(file, tc.lineNum); got != tc.want {
				t.Errorf("got %v, want %v", got, tc.want)
			}
		})
	}
}
