package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDiagnostic_HasRuleName(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name     string
		ruleID   string
		ruleName string
		message  string
	}{
		{"trailing spaces", "MD009", "no-trailing-spaces", "trailing spaces found"},
		{"heading increment", "MD001", "heading-increment", "heading level skips"},
		{"empty message", "MD047", "single-trailing-newline", ""},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			diag := Diagnostic{RuleID: tc.ruleID, RuleName: tc.ruleName, Message: tc.message}

			assert.Equal(t, tc.ruleID, diag.RuleID)
			assert.Equal(t, tc.ruleName, diag.RuleName)
			assert.Equal(t, tc.message, diag.Message)
		})
	}
}
