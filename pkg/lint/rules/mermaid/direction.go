package mermaid

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// InvalidDirectionRule is MM004: flowchart diagrams must declare one of the
// five recognized directions.
type InvalidDirectionRule struct {
	lint.BaseRule
}

// NewInvalidDirectionRule builds the MM004 mermaid-invalid-direction rule.
func NewInvalidDirectionRule() *InvalidDirectionRule {
	return &InvalidDirectionRule{
		BaseRule: lint.NewBaseRule("MM004", "mermaid-invalid-direction",
			"Flowchart direction must be valid (TB, TD, BT, RL, LR)", []string{"mermaid"}, false),
	}
}

// DefaultSeverity reports warning: the parser still recovers, it just can't
// orient the diagram.
func (r *InvalidDirectionRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

// Apply flags mermaid blocks whose parse error is specifically a missing or
// unrecognized flowchart direction. go-mermaid surfaces this as a parse
// error rather than a validation error, since it can't build the AST
// without a direction to anchor on.
func (r *InvalidDirectionRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	if ctx.Root == nil || ctx.File == nil {
		return nil, nil
	}

	var diags []lint.Diagnostic
	for _, block := range ExtractMermaidBlocks(ctx) {
		if ctx.Cancelled() {
			return diags, fmt.Errorf("rule cancelled: %w", ctx.Ctx.Err())
		}
		if block.ParseErr == nil || !IsDirectionParseError(block.ParseErr) {
			continue
		}
		diag := lint.NewDiagnostic(r.ID(), block.Node, "Invalid flowchart direction: must be one of TB, TD, BT, RL, or LR").
			WithSeverity(config.SeverityError).
			WithSuggestion("Use a valid direction: TB (top-bottom), TD (top-down), BT (bottom-top), RL (right-left), or LR (left-right)").
			Build()
		diags = append(diags, diag)
	}
	return diags, nil
}

// IsDirectionParseError reports whether err is go-mermaid's "expected
// 'flowchart' or 'graph' followed by direction" parse failure.
func IsDirectionParseError(err error) bool {
	return err != nil && strings.Contains(strings.ToLower(err.Error()), "followed by direction")
}
