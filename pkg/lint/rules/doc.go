// Package rules implements mkdlint's built-in lint rules.
//
// # Layout
//
// Rules are grouped by file along domain lines rather than by rule-ID
// order, mirroring how a reviewer thinks about a Markdown document:
//
//   - Whitespace/layout (MD009, MD010, MD012, MD047): line- and
//     file-level cleanliness checks that don't need the AST.
//   - Headings (MD001, MD003, MD018-MD026, MD041): level sequencing,
//     ATX spacing, duplicate/trailing-punctuation checks.
//   - Lists (MD004, MD005, MD007, MD029, MD030, MD032): marker style,
//     indentation, and spacing around list items.
//   - Blockquotes (MD027, MD028).
//   - Line length (MD013).
//   - Links and images (MD011, MD034, MD039, MD042, MD045, MDL001).
//   - Code blocks (MD031, MD038, MD040, MD046, MD048).
//   - Emphasis (MD036, MD037, MD049, MD050).
//   - Horizontal rules (MD035).
//   - Inline HTML (MD033).
//   - GFM tables (MDL002, MDL003, MDL004).
//
// # Rule IDs
//
// MD001-MD060 track markdownlint's rule numbering for drop-in config
// compatibility; rules with no markdownlint equivalent use the MDLxxx
// range instead.
//
// # Packs
//
// A pack is a named bundle of rule IDs plus default severities, selectable
// as a starting point instead of listing rules one by one:
//
//   - core: baseline whitespace/structure checks
//   - strict: every core rule promoted to error, plus the full rule set
//   - relaxed: whitespace only
//   - gfm: core plus table/task-list/link coverage for GFM documents
//
// See PackByName and Packs for programmatic access.
//
// # Registration
//
// RegisterAll wires every rule in this package into a lint.Registry. Each
// rule implements lint.Rule and reports findings through RuleContext,
// DiagnosticBuilder, and EditBuilder.
package rules
