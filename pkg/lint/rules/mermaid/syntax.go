package mermaid

import (
	"fmt"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// SyntaxRule is MM001: every mermaid code block must parse.
type SyntaxRule struct {
	lint.BaseRule
}

// NewSyntaxRule builds the MM001 mermaid-syntax rule.
func NewSyntaxRule() *SyntaxRule {
	return &SyntaxRule{
		BaseRule: lint.NewBaseRule("MM001", "mermaid-syntax",
			"Mermaid diagram syntax must be valid", []string{"mermaid"}, false),
	}
}

// DefaultSeverity reports error: an unparsable diagram can't render at all.
func (r *SyntaxRule) DefaultSeverity() config.Severity { return config.SeverityError }

// Apply flags every mermaid block whose parse failed.
func (r *SyntaxRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, block := range ExtractMermaidBlocks(ctx) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if block.ParseErr == nil {
			continue
		}
		diag := lint.NewDiagnostic(r.ID(), block.Node, fmt.Sprintf("Invalid mermaid syntax: %v", block.ParseErr)).
			WithSeverity(config.SeverityError).
			WithSuggestion("Check mermaid diagram syntax").
			Build()
		diags = append(diags, diag)
	}
	return diags, nil
}
