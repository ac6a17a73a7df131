// Package refs tracks reference-style links and images across a document:
// which labels are defined, which are used, how many times, and which
// document anchors exist for fragment validation. Rules like undefined-
// reference and orphaned-anchor checks need the whole document's picture
// before they can judge a single link, so this is built once per file and
// shared across all of them via RuleContext.RefContext.
package refs

import (
	"strings"

	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// ReferenceStyle names the Markdown syntax a link or image was written in.
type ReferenceStyle string

const (
	StyleInline    ReferenceStyle = "inline"    // [text](url) or ![alt](url)
	StyleFull      ReferenceStyle = "full"      // [text][label] or ![alt][label]
	StyleCollapsed ReferenceStyle = "collapsed" // [label][] or ![label][]
	StyleShortcut  ReferenceStyle = "shortcut"  // [label] or ![label]
	StyleAutolink  ReferenceStyle = "autolink"  // <https://example.com>
)

// ReferenceDefinition is one `[label]: destination "title"` definition.
type ReferenceDefinition struct {
	Label           string
	NormalizedLabel string
	Destination     string
	Title           string
	Position        mdast.SourcePosition
	LineNumber      int // 1-based

	// IsDuplicate marks every definition after the first one seen for a
	// given NormalizedLabel; CommonMark keeps only the first.
	IsDuplicate bool

	// UsageCount is how many ReferenceUsages resolved to this definition.
	UsageCount int
}

// ReferenceUsage is one link or image appearing in the document.
type ReferenceUsage struct {
	Style ReferenceStyle

	IsImage bool
	Text    string // link text, or image alt text

	// Label and NormalizedLabel are set for Full/Collapsed/Shortcut
	// styles; empty for Inline/Autolink.
	Label           string
	NormalizedLabel string

	Destination string
	Fragment    string // e.g. "#section-name", extracted from Destination

	Position mdast.SourcePosition
	Node     *mdast.Node

	// ResolvedDefinition is the matching ReferenceDefinition, if one was
	// found during Collect.
	ResolvedDefinition *ReferenceDefinition
}

// Context is the full reference picture for one document: every
// definition, every usage, and every valid anchor target. Collect builds
// one per file; rules read it, never mutate it.
type Context struct {
	// Definitions maps a normalized label to its first (non-duplicate)
	// definition.
	Definitions map[string]*ReferenceDefinition

	// AllDefinitions includes duplicates, in source order.
	AllDefinitions []*ReferenceDefinition

	// Usages is every link/image usage, in source order.
	Usages []*ReferenceUsage

	Anchors *AnchorMap
	File    *mdast.FileSnapshot
}

// NewContext returns an empty Context bound to file.
func NewContext(file *mdast.FileSnapshot) *Context {
	return &Context{
		Definitions: make(map[string]*ReferenceDefinition),
		Anchors:     NewAnchorMap(),
		File:        file,
	}
}

// ResolveLabel looks up the definition for label, normalizing first.
func (c *Context) ResolveLabel(label string) *ReferenceDefinition {
	return c.Definitions[NormalizeLabel(label)]
}

// ValidateFragment reports whether fragment (e.g. "#intro") names a valid
// target: the empty fragment, "#top", a GitHub line reference, or a known
// anchor are all valid.
func (c *Context) ValidateFragment(fragment string) bool {
	id := strings.TrimPrefix(fragment, "#")
	switch {
	case id == "":
		return true
	case strings.EqualFold(id, "top"):
		return true
	case isGitHubLineReference(id):
		return true
	default:
		return c.Anchors.Has(id)
	}
}

// UnusedDefinitions returns every non-duplicate definition with zero
// usages.
func (c *Context) UnusedDefinitions() []*ReferenceDefinition {
	var unused []*ReferenceDefinition
	for _, def := range c.AllDefinitions {
		if !def.IsDuplicate && def.UsageCount == 0 {
			unused = append(unused, def)
		}
	}
	return unused
}

// DuplicateDefinitions returns every definition after the first for its
// label.
func (c *Context) DuplicateDefinitions() []*ReferenceDefinition {
	var dups []*ReferenceDefinition
	for _, def := range c.AllDefinitions {
		if def.IsDuplicate {
			dups = append(dups, def)
		}
	}
	return dups
}

// UnresolvedUsages returns usages that name a label with no matching
// definition.
func (c *Context) UnresolvedUsages() []*ReferenceUsage {
	var unresolved []*ReferenceUsage
	for _, usage := range c.Usages {
		if usage.Label != "" && usage.ResolvedDefinition == nil {
			unresolved = append(unresolved, usage)
		}
	}
	return unresolved
}

// NormalizeLabel case-folds and whitespace-collapses label, per
// CommonMark's reference-matching rule.
func NormalizeLabel(label string) string {
	return strings.Join(strings.Fields(strings.ToLower(label)), " ")
}

// isGitHubLineReference reports whether id matches GitHub's permalink
// fragment syntax: L20, L19C5, L19C5-L21C11, L19-L21, case-insensitively.
func isGitHubLineReference(id string) bool {
	if len(id) < 2 || (id[0] != 'L' && id[0] != 'l') {
		return false
	}
	for i := 1; i < len(id); i++ {
		switch ch := id[i]; {
		case ch >= '0' && ch <= '9':
			return true
		case ch != 'C' && ch != 'c' && ch != '-':
			return false
		}
	}
	return false
}

// ExtractFragment returns the "#..." suffix of url, or "" if it has none.
func ExtractFragment(url string) string {
	if idx := strings.Index(url, "#"); idx >= 0 {
		return url[idx:]
	}
	return ""
}
