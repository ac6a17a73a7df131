package mermaid

import (
	"strings"

	"github.com/sammcj/go-mermaid/validator"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// DuplicateIDRule is MM003: node/participant/state/class/branch identifiers
// within one mermaid diagram must be unique.
type DuplicateIDRule struct {
	lint.BaseRule
}

// NewDuplicateIDRule builds the MM003 mermaid-duplicate-id rule.
func NewDuplicateIDRule() *DuplicateIDRule {
	return &DuplicateIDRule{
		BaseRule: lint.NewBaseRule("MM003", "mermaid-duplicate-id",
			"Diagram identifiers must be unique", []string{"mermaid"}, false),
	}
}

// DefaultSeverity reports warning: duplicates usually still render, just
// ambiguously.
func (r *DuplicateIDRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

func (r *DuplicateIDRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	return CollectValidationDiagnostics(ctx, ValidationDiagnosticBuilder{
		RuleID:      r.ID(),
		MessageFunc: func(err validator.ValidationError) string { return "Duplicate identifier: " + err.Message },
		Suggestion:  "Remove or rename the duplicate identifier",
		ErrorFilter: isDuplicateError,
	})
}

// isDuplicateError matches every go-mermaid "duplicate <thing> ..." message
// across diagram kinds (flowchart node IDs, sequence participants, state
// IDs, class names, gitgraph branches).
func isDuplicateError(err validator.ValidationError) bool {
	return strings.Contains(strings.ToLower(err.Message), "duplicate")
}
