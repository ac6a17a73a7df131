// Package configloader provides configuration loading and resolution.
package configloader

import (
	"sort"
	"strings"
)

// ruleAliasTable lists every markdownlint-compatible alias alongside the
// canonical rule ID it maps to, grouped the way markdownlint's own rule
// docs group them. A map literal would do, but keeping the association as
// an ordered table makes GetAliasesForRule's reverse lookup and
// GetAllRuleIDs' dedup read as "process this table" rather than "walk this
// map," and keeps duplicate aliases (single-title/single-h1) visibly
// adjacent.
type ruleAlias struct {
	alias string
	id    string
}

//nolint:gochecknoglobals // Read-only lookup table.
var ruleAliasTable = []ruleAlias{
	// Headings
	{"heading-increment", "MD001"},
	{"heading-style", "MD003"},
	{"blanks-around-headings", "MD022"},
	{"heading-start-left", "MD023"},
	{"no-duplicate-heading", "MD024"},
	{"single-title", "MD025"},
	{"single-h1", "MD025"},
	{"no-trailing-punctuation", "MD026"},
	{"first-line-heading", "MD041"},
	{"first-line-h1", "MD041"},
	{"required-headings", "MD043"},
	{"no-missing-space-atx", "MD018"},
	{"no-multiple-space-atx", "MD019"},
	{"no-missing-space-closed-atx", "MD020"},
	{"no-multiple-space-closed-atx", "MD021"},

	// Lists
	{"ul-style", "MD004"},
	{"list-indent", "MD005"},
	{"ul-indent", "MD007"},
	{"ol-prefix", "MD029"},
	{"list-marker-space", "MD030"},
	{"blanks-around-lists", "MD032"},

	// Whitespace
	{"no-trailing-spaces", "MD009"},
	{"no-hard-tabs", "MD010"},
	{"no-multiple-blanks", "MD012"},
	{"line-length", "MD013"},
	{"single-trailing-newline", "MD047"},

	// Code
	{"commands-show-output", "MD014"},
	{"blanks-around-fences", "MD031"},
	{"no-space-in-code", "MD038"},
	{"fenced-code-language", "MD040"},
	{"code-block-style", "MD046"},
	{"code-fence-style", "MD048"},

	// Links
	{"no-reversed-links", "MD011"},
	{"no-bare-urls", "MD034"},
	{"no-space-in-links", "MD039"},
	{"no-empty-links", "MD042"},
	{"link-fragments", "MD051"},
	{"reference-links-images", "MD052"},
	{"link-image-reference-definitions", "MD053"},
	{"link-image-style", "MD054"},
	{"descriptive-link-text", "MD059"},

	// Blockquote
	{"no-multiple-space-blockquote", "MD027"},
	{"no-blanks-blockquote", "MD028"},

	// HTML
	{"no-inline-html", "MD033"},

	// HR
	{"hr-style", "MD035"},

	// Emphasis
	{"no-emphasis-as-heading", "MD036"},
	{"no-space-in-emphasis", "MD037"},
	{"emphasis-style", "MD049"},
	{"strong-style", "MD050"},

	// Images
	{"no-alt-text", "MD045"},

	// Names/Spelling
	{"proper-names", "MD044"},

	// Tables
	{"table-pipe-style", "MD055"},
	{"table-column-count", "MD056"},
	{"blanks-around-tables", "MD058"},
	{"table-column-style", "MD060"},
}

// ruleAliases indexes ruleAliasTable by alias for NormalizeRuleID.
//
//nolint:gochecknoglobals // built once from ruleAliasTable below.
var ruleAliases = buildAliasIndex()

func buildAliasIndex() map[string]string {
	idx := make(map[string]string, len(ruleAliasTable))
	for _, a := range ruleAliasTable {
		idx[a.alias] = a.id
	}
	return idx
}

// ruleTags maps markdownlint tag names to the rule IDs they group, so a
// config can enable/disable a whole tag at once.
//
//nolint:gochecknoglobals // Read-only lookup table.
var ruleTags = map[string][]string{
	"accessibility": {"MD045", "MD059"},
	"atx":           {"MD018", "MD019"},
	"atx_closed":    {"MD020", "MD021"},
	"blank_lines":   {"MD012", "MD022", "MD031", "MD032", "MD047"},
	"blockquote":    {"MD027", "MD028"},
	"bullet":        {"MD004", "MD005", "MD007", "MD032"},
	"code":          {"MD014", "MD031", "MD038", "MD040", "MD046", "MD048"},
	"emphasis":      {"MD036", "MD037", "MD049", "MD050"},
	"hard_tab":      {"MD010"},
	"headings":      {"MD001", "MD003", "MD018", "MD019", "MD020", "MD021", "MD022", "MD023", "MD024", "MD025", "MD026", "MD036", "MD041", "MD043"},
	"hr":            {"MD035"},
	"html":          {"MD033"},
	"images":        {"MD045", "MD052", "MD053", "MD054"},
	"indentation":   {"MD005", "MD007", "MD027"},
	"language":      {"MD040"},
	"line_length":   {"MD013"},
	"links":         {"MD011", "MD034", "MD039", "MD042", "MD051", "MD052", "MD053", "MD054", "MD059"},
	"ol":            {"MD029", "MD030", "MD032"},
	"spaces":        {"MD018", "MD019", "MD020", "MD021", "MD023"},
	"spelling":      {"MD044"},
	"table":         {"MD055", "MD056", "MD058", "MD060"},
	"ul":            {"MD004", "MD005", "MD007", "MD030", "MD032"},
	"url":           {"MD034"},
	"whitespace":    {"MD009", "MD010", "MD012", "MD027", "MD028", "MD030", "MD037", "MD038", "MD039"},
}

// NormalizeRuleID resolves key (either a bare rule ID like "MD001" or an
// alias like "heading-increment") to its canonical uppercase rule ID, or
// "" if key is neither.
func NormalizeRuleID(key string) string {
	if upper := strings.ToUpper(key); strings.HasPrefix(upper, "MD") {
		return upper
	}
	return ruleAliases[key]
}

// IsTag reports whether key names a recognized rule tag.
func IsTag(key string) bool {
	_, ok := ruleTags[key]
	return ok
}

// GetTagRules returns the rule IDs tag groups, or nil for an unknown tag.
func GetTagRules(tag string) []string {
	return ruleTags[tag]
}

// GetAllRuleIDs returns every rule ID with at least one alias, sorted.
func GetAllRuleIDs() []string {
	seen := make(map[string]struct{}, len(ruleAliasTable))
	for _, a := range ruleAliasTable {
		seen[a.id] = struct{}{}
	}

	ids := make([]string, 0, len(seen))
	for id := range seen {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids
}

// GetAliasesForRule returns every alias ruleID is known by, in table order.
func GetAliasesForRule(ruleID string) []string {
	var aliases []string
	for _, a := range ruleAliasTable {
		if a.id == ruleID {
			aliases = append(aliases, a.alias)
		}
	}
	return aliases
}
