package reporter

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yaklabco/mkdlint/pkg/analysis"
	"github.com/yaklabco/mkdlint/pkg/config"
)

// renderSummary runs a SummaryRenderer over report with the given extra
// options and returns the rendered output, failing t on render error.
func renderSummary(t *testing.T, extra Options, report *analysis.Report) string {
	t.Helper()

	var buf bytes.Buffer
	opts := extra
	opts.Writer = &buf
	opts.Color = "never"

	renderer := NewSummaryRenderer(opts)
	require.NoError(t, renderer.Render(context.Background(), report))
	return buf.String()
}

func TestSummaryRenderer_EmptyReport(t *testing.T) {
	t.Parallel()

	output := renderSummary(t, Options{}, &analysis.Report{Totals: analysis.Totals{}})
	assert.Contains(t, output, "No issues found")
}

func TestSummaryRenderer_ShowsRulesTable(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleID: "MD009", RuleName: "no-trailing-spaces", Issues: 5, Errors: 3, Warnings: 2, Fixable: true},
			{RuleID: "MD001", RuleName: "heading-increment", Issues: 2, Errors: 2, Warnings: 0, Fixable: false},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "README.md", Issues: 4, Errors: 3, Warnings: 1},
		},
		Totals: analysis.Totals{Issues: 7, Errors: 5, Warnings: 2, Files: 1, FilesWithIssues: 1},
	}
	output := renderSummary(t, Options{SummaryOrder: config.SummaryOrderRules}, report)

	assert.Contains(t, output, "Rules Summary")
	assert.Contains(t, output, "no-trailing-spaces")
	assert.Contains(t, output, "heading-increment")
	assert.Contains(t, output, "Files Summary")
	assert.Contains(t, output, "README.md")
}

func TestSummaryRenderer_FilesFirstOrder(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleID: "MD009", RuleName: "no-trailing-spaces", Issues: 1},
		},
		ByFile: []analysis.FileAnalysis{
			{Path: "README.md", Issues: 1},
		},
		Totals: analysis.Totals{Issues: 1, Files: 1, FilesWithIssues: 1},
	}
	output := renderSummary(t, Options{SummaryOrder: config.SummaryOrderFiles}, report)

	filesIdx := strings.Index(output, "Files Summary")
	rulesIdx := strings.Index(output, "Rules Summary")

	assert.Greater(t, rulesIdx, filesIdx, "Files should come before Rules when SummaryOrderFiles")
}

func TestSummaryRenderer_ShowsTotals(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		Totals: analysis.Totals{
			Issues:          10,
			Errors:          6,
			Warnings:        4,
			Files:           5,
			FilesWithIssues: 3,
		},
	}
	output := renderSummary(t, Options{}, report)

	assert.Contains(t, output, "10")
	assert.Contains(t, output, "6 errors")
	assert.Contains(t, output, "4 warnings")
	assert.Contains(t, output, "3 files")
}

func TestSummaryRenderer_FixableIndicator(t *testing.T) {
	t.Parallel()

	report := &analysis.Report{
		ByRule: []analysis.RuleAnalysis{
			{RuleID: "MD009", RuleName: "fixable-rule", Issues: 1, Fixable: true},
			{RuleID: "MD001", RuleName: "not-fixable", Issues: 1, Fixable: false},
		},
		Totals: analysis.Totals{Issues: 2},
	}
	output := renderSummary(t, Options{}, report)

	assert.Contains(t, output, "âœ“")
}
