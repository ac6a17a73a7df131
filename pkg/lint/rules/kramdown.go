package rules

import (
	"fmt"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// IALSelectorRule checks inline attribute lists (kramdown `{: #id .class}`)
// for duplicate IDs across the document and malformed selectors.
type IALSelectorRule struct {
	lint.BaseRule
}

// NewIALSelectorRule creates the KMD001 rule.
func NewIALSelectorRule() *IALSelectorRule {
	return &IALSelectorRule{
		BaseRule: lint.NewBaseRule(
			"KMD001",
			"ial-selector-style",
			"Inline attribute list selectors should be well-formed and unique",
			[]string{"kramdown", "attributes"},
			false,
		),
	}
}

// Apply checks every heading/paragraph IAL in the document for a duplicate
// id selector or an empty selector/attribute token.
func (r *IALSelectorRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	seenIDs := make(map[string]*mdast.Node)

	err := mdast.Walk(ctx.Root, func(n *mdast.Node) error {
		if ctx.Cancelled() {
			return ctx.Ctx.Err()
		}
		ial, ok := n.Ext["ial"].(*mdast.IAL)
		if !ok || ial == nil {
			return nil
		}

		if ial.ID == "" && len(ial.Classes) == 0 && len(ial.Attrs) == 0 {
			diags = append(diags, lint.NewDiagnostic(r.ID(), n,
				"Inline attribute list has no selectors or attributes").
				WithSeverity(config.SeverityWarning).
				Build())
		}

		if ial.ID != "" {
			if _, exists := seenIDs[ial.ID]; exists {
				diags = append(diags, lint.NewDiagnostic(r.ID(), n,
					fmt.Sprintf("Duplicate inline attribute list id %q", ial.ID)).
					WithSeverity(config.SeverityError).
					Build())
			} else {
				seenIDs[ial.ID] = n
			}
		}

		return nil
	})

	return diags, err
}

// MathBlockStyleRule checks display-math blocks for consistent delimiter
// usage and required blank-line surround, analogous to fenced code block
// style checks.
type MathBlockStyleRule struct {
	lint.BaseRule
}

// NewMathBlockStyleRule creates the KMD002 rule.
func NewMathBlockStyleRule() *MathBlockStyleRule {
	return &MathBlockStyleRule{
		BaseRule: lint.NewBaseRule(
			"KMD002",
			"math-block-style",
			"Math blocks should use a consistent delimiter and be surrounded by blank lines",
			[]string{"kramdown", "math"},
			false,
		),
	}
}

// Apply checks math blocks for delimiter consistency across the document and
// for a blank line immediately before and after each block.
func (r *MathBlockStyleRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.File == nil || len(ctx.File.MathBlocks) == 0 {
		return nil, nil
	}

	expected := ctx.OptionString("style", "")
	var diags []lint.Diagnostic

	for _, mb := range ctx.File.MathBlocks {
		if ctx.Cancelled() {
			return diags, ctx.Ctx.Err()
		}

		pos := rangePosition(ctx.File, mb.Range)

		if expected == "" {
			expected = mb.Delimiter
		} else if mb.Delimiter != expected {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				fmt.Sprintf("Math block delimiter %q is inconsistent with %q used earlier in the document", mb.Delimiter, expected)).
				WithSeverity(config.SeverityWarning).
				Build())
		}

		startLine := pos.StartLine
		endLine := pos.EndLine

		if startLine > 1 && !isBlankLine(ctx.File, startLine-1) {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				"Math block should be preceded by a blank line").
				WithSeverity(config.SeverityWarning).
				Build())
		}
		if endLine < ctx.File.LineCount() && !isBlankLine(ctx.File, endLine+1) {
			diags = append(diags, lint.NewDiagnosticAt(r.ID(), ctx.File.Path, pos,
				"Math block should be followed by a blank line").
				WithSeverity(config.SeverityWarning).
				Build())
		}
	}

	return diags, nil
}

// rangePosition converts a byte SourceRange into a SourcePosition for the given file.
func rangePosition(file *mdast.FileSnapshot, r mdast.SourceRange) mdast.SourcePosition {
	startLine, startCol := file.LineAt(r.StartOffset)
	endLine, endCol := file.LineAt(r.EndOffset)
	return mdast.SourcePosition{
		StartLine:   startLine,
		StartColumn: startCol,
		EndLine:     endLine,
		EndColumn:   endCol,
	}
}

// isBlankLine reports whether the given 1-based line is empty or whitespace-only.
func isBlankLine(file *mdast.FileSnapshot, line int) bool {
	content := file.LineContent(line)
	for _, b := range content {
		switch b {
		case ' ', '\t', '\r', '\n':
			continue
		default:
			return false
		}
	}
	return true
}
