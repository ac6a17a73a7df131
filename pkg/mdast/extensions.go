package mdast

// FrontMatterInfo describes a leading front-matter region detected in a file.
// The region is excluded from block parsing but remains addressable by range.
type FrontMatterInfo struct {
	// Syntax identifies the front-matter dialect: "yaml", "toml", or "json".
	Syntax string

	// Range is the byte range of the front-matter region, including both fences.
	Range SourceRange
}

// MathBlockInfo describes a display-math region (e.g. kramdown `$$...$$` or
// `\[...\]`) detected outside of fenced/indented code blocks.
type MathBlockInfo struct {
	// Delimiter is the opening delimiter text ("$$" or "\[").
	Delimiter string

	// Range is the byte range of the math block, including both delimiters.
	Range SourceRange
}

// IAL represents an inline attribute list (kramdown `{: #id .class key="val"}`)
// attached to a heading or paragraph node via Node.Ext["ial"].
type IAL struct {
	// ID is the selector id, if any ("#foo" -> "foo").
	ID string

	// Classes holds selector classes, in source order ("." prefixes stripped).
	Classes []string

	// Attrs holds key="value" / key=value attribute pairs.
	Attrs map[string]string

	// Range is the byte range of the IAL span itself (the `{: ... }` text).
	Range SourceRange
}
