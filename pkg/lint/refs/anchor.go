package refs

import (
	"strconv"
	"strings"
	"unicode"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// AnchorSource names where an Anchor came from.
type AnchorSource int

const (
	AnchorFromHeading  AnchorSource = iota // generated from a heading's text
	AnchorFromHTMLID                       // an HTML element's id="..."
	AnchorFromHTMLName                     // an HTML <a name="...">
	AnchorFromCustomID                     // {#custom-id} syntax (not yet supported)
)

// Anchor is one valid link-fragment target within the document.
type Anchor struct {
	ID       string
	Source   AnchorSource
	Position mdast.SourcePosition
	Text     string // original heading text, when Source is AnchorFromHeading
}

// AnchorMap indexes a document's anchors for fragment validation, keeping
// every anchor seen under an ID (not just the first) since duplicate
// headings are legal Markdown even though only GitHub's slugging picks a
// winner.
type AnchorMap struct {
	anchors     map[string][]*Anchor
	anchorLower map[string]string // lowercased ID -> canonical-case ID
	seenCounts  map[string]int    // base anchor text -> times generated, for -1/-2 suffixes
}

// NewAnchorMap returns an empty AnchorMap.
func NewAnchorMap() *AnchorMap {
	return &AnchorMap{
		anchors:     make(map[string][]*Anchor),
		anchorLower: make(map[string]string),
		seenCounts:  make(map[string]int),
	}
}

// Add records anchor under its ID.
func (m *AnchorMap) Add(anchor *Anchor) {
	m.anchors[anchor.ID] = append(m.anchors[anchor.ID], anchor)
	m.anchorLower[strings.ToLower(anchor.ID)] = anchor.ID
}

// AddFromHeading generates a GitHub-compatible anchor ID from text, adds
// it, and returns the ID.
func (m *AnchorMap) AddFromHeading(text string, pos mdast.SourcePosition) string {
	id := m.GenerateAnchor(text)
	m.Add(&Anchor{ID: id, Source: AnchorFromHeading, Position: pos, Text: text})
	return id
}

// GenerateAnchor converts heading text to an anchor ID, appending a
// "-1", "-2", ... suffix for each repeat of the same base text.
func (m *AnchorMap) GenerateAnchor(text string) string {
	base := slugify(text)

	seen := m.seenCounts[base]
	m.seenCounts[base] = seen + 1
	if seen == 0 {
		return base
	}
	return base + "-" + strconv.Itoa(seen)
}

// slugify implements GitHub's heading-to-anchor algorithm: lowercase,
// strip punctuation other than '-'/'_', turn spaces into hyphens, and
// collapse/trim the result.
func slugify(text string) string {
	var buf strings.Builder
	buf.Grow(len(text))

	prevHyphen := false
	for _, ch := range strings.ToLower(text) {
		switch {
		case unicode.IsLetter(ch) || unicode.IsNumber(ch):
			buf.WriteRune(ch)
			prevHyphen = false
		case ch == '-' || ch == '_':
			buf.WriteRune(ch)
			prevHyphen = ch == '-'
		case ch == ' ' && !prevHyphen && buf.Len() > 0:
			_ = buf.WriteByte('-') // strings.Builder.WriteByte never fails
			prevHyphen = true
		}
		// any other punctuation is dropped
	}

	result := strings.Trim(buf.String(), "-")
	for strings.Contains(result, "--") {
		result = strings.ReplaceAll(result, "--", "-")
	}
	return result
}

func (m *AnchorMap) Has(id string) bool {
	_, ok := m.anchors[id]
	return ok
}

func (m *AnchorMap) HasIgnoreCase(id string) bool {
	_, ok := m.anchorLower[strings.ToLower(id)]
	return ok
}

// Lookup returns the first anchor recorded under id, or nil.
func (m *AnchorMap) Lookup(id string) *Anchor {
	if anchors := m.anchors[id]; len(anchors) > 0 {
		return anchors[0]
	}
	return nil
}

// LookupIgnoreCase is Lookup, case-insensitively.
func (m *AnchorMap) LookupIgnoreCase(id string) *Anchor {
	canonical, ok := m.anchorLower[strings.ToLower(id)]
	if !ok {
		return nil
	}
	return m.Lookup(canonical)
}

// LookupAll returns every anchor recorded under id.
func (m *AnchorMap) LookupAll(id string) []*Anchor {
	return m.anchors[id]
}

// All returns every anchor in the map, in no particular order.
func (m *AnchorMap) All() []*Anchor {
	total := 0
	for _, anchors := range m.anchors {
		total += len(anchors)
	}
	all := make([]*Anchor, 0, total)
	for _, anchors := range m.anchors {
		all = append(all, anchors...)
	}
	return all
}

// Count returns the number of distinct anchor IDs (not total anchors).
func (m *AnchorMap) Count() int {
	return len(m.anchors)
}
