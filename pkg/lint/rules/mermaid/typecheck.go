package mermaid

import (
	"strings"

	"github.com/sammcj/go-mermaid/validator"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// typeCheckPatterns are substrings of go-mermaid validator messages that
// indicate an invalid type modifier, relationship, or arrow kind.
var typeCheckPatterns = []string{
	"invalid visibility",
	"invalid relationship type",
	"invalid message arrow",
	"invalid arrow",
	"invalid type",
	"invalid modifier",
}

// TypeCheckRule is MM005: type modifiers and relationship/arrow kinds in a
// mermaid diagram must be recognized ones.
type TypeCheckRule struct {
	lint.BaseRule
}

// NewTypeCheckRule builds the MM005 mermaid-type-check rule.
func NewTypeCheckRule() *TypeCheckRule {
	return &TypeCheckRule{
		BaseRule: lint.NewBaseRule("MM005", "mermaid-type-check",
			"Type modifiers and relationships must be valid", []string{"mermaid"}, false),
	}
}

// DefaultSeverity reports warning: the diagram still renders, just not as
// the author likely intended.
func (r *TypeCheckRule) DefaultSeverity() config.Severity { return config.SeverityWarning }

func (r *TypeCheckRule) Apply(ctx *lint.RuleContext) ([]lint.Diagnostic, error) {
	return CollectValidationDiagnostics(ctx, ValidationDiagnosticBuilder{
		RuleID:      r.ID(),
		MessageFunc: func(err validator.ValidationError) string { return "Invalid type: " + err.Message },
		Suggestion:  "Use valid type modifiers and relationship types",
		ErrorFilter: isTypeCheckError,
	})
}

// isTypeCheckError matches the validator messages MM005 owns, after
// excluding the ones MM002 (undefined reference) and MM003 (duplicate)
// already claim.
func isTypeCheckError(err validator.ValidationError) bool {
	if isUndefinedReferenceError(err) || isDuplicateError(err) {
		return false
	}
	msg := strings.ToLower(err.Message)
	for _, pattern := range typeCheckPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}
	return false
}
