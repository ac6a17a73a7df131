package analysis

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yaklabco/mkdlint/pkg/config"
)

type totalsCase struct {
	name   string
	totals Totals
	want   bool
}

// runTotalsCases subtests each case against pred, asserting want == pred(totals).
func runTotalsCases(t *testing.T, cases []totalsCase, pred func(Totals) bool) {
	t.Helper()
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, pred(tc.totals))
		})
	}
}

func TestTotals_HasIssues(t *testing.T) {
	t.Parallel()

	runTotalsCases(t, []totalsCase{
		{name: "no issues", totals: Totals{Issues: 0}, want: false},
		{name: "has issues", totals: Totals{Issues: 5}, want: true},
	}, Totals.HasIssues)
}

func TestTotals_HasErrors(t *testing.T) {
	t.Parallel()

	runTotalsCases(t, []totalsCase{
		{name: "no errors", totals: Totals{Errors: 0, Warnings: 5}, want: false},
		{name: "has errors", totals: Totals{Errors: 3}, want: true},
	}, Totals.HasErrors)
}

func TestDefaultOptions(t *testing.T) {
	t.Parallel()

	opts := DefaultOptions()

	assert.True(t, opts.IncludeDiagnostics)
	assert.True(t, opts.IncludeByFile)
	assert.True(t, opts.IncludeByRule)
	assert.Equal(t, SortByCount, opts.SortBy)
	assert.True(t, opts.SortDesc)
	assert.Equal(t, config.RuleFormatName, opts.RuleFormat)
}

func TestSortField_IsValid(t *testing.T) {
	t.Parallel()

	assert.True(t, SortByCount.IsValid())
	assert.True(t, SortByAlpha.IsValid())
	assert.True(t, SortBySeverity.IsValid())
	assert.False(t, SortField("invalid").IsValid())
}
