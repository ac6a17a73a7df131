package pretty

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/yaklabco/mkdlint/pkg/runner"
)

const summaryDividerWidth = 40

// plural returns singular when n is 1, otherwise plural.
func plural(n int, singular, plural string) string {
	if n == 1 {
		return singular
	}
	return plural
}

// FormatSummaryOneLine renders run statistics as a single line, e.g.
// "12 issues (8 errors, 4 warnings), in 3 files, 6 fixable".
func (s *Styles) FormatSummaryOneLine(stats runner.Stats) string {
	if stats.DiagnosticsTotal == 0 {
		return s.cleanRunSummary(stats)
	}

	parts := []string{s.issueCountPart(stats)}
	parts = append(parts, fmt.Sprintf("in %d %s", stats.FilesWithIssues, plural(stats.FilesWithIssues, "file", "files")))
	if stats.DiagnosticsFixable > 0 {
		parts = append(parts, s.Success.Render(fmt.Sprintf("%d fixable", stats.DiagnosticsFixable)))
	}
	if fixed := s.fixedPart(stats); fixed != "" {
		parts = append(parts, fixed)
	}

	return strings.Join(parts, ", ") + "\n"
}

// cleanRunSummary renders the one-line summary for a run with zero
// diagnostics.
func (s *Styles) cleanRunSummary(stats runner.Stats) string {
	msg := s.Success.Render("No issues found") +
		s.Dim.Render(fmt.Sprintf(" (%d files checked)", stats.FilesProcessed))
	if fixed := s.fixedPart(stats); fixed != "" {
		msg += ", " + fixed
	}
	return msg + "\n"
}

// issueCountPart renders "N issues (X errors, Y warnings, Z info)",
// dropping the parenthetical when no severity has a nonzero count.
func (s *Styles) issueCountPart(stats runner.Stats) string {
	count := fmt.Sprintf("%d %s", stats.DiagnosticsTotal, plural(stats.DiagnosticsTotal, "issue", "issues"))

	var bySeverity []string
	for _, sev := range []struct {
		key   string
		style lipgloss.Style
	}{
		{"error", s.Error}, {"warning", s.Warning}, {"info", s.Info},
	} {
		if n := stats.DiagnosticsBySeverity[sev.key]; n > 0 {
			label := sev.key + "s"
			if sev.key == "info" {
				label = sev.key
			}
			bySeverity = append(bySeverity, sev.style.Render(fmt.Sprintf("%d %s", n, label)))
		}
	}
	if len(bySeverity) == 0 {
		return count
	}
	return fmt.Sprintf("%s (%s)", count, strings.Join(bySeverity, ", "))
}

// fixedPart renders "N fixed in M files", or "" if nothing was fixed.
func (s *Styles) fixedPart(stats runner.Stats) string {
	if stats.DiagnosticsFixed == 0 {
		return ""
	}
	word := plural(stats.FilesModified, "file", "files")
	return s.Success.Render(fmt.Sprintf("%d fixed in %d %s", stats.DiagnosticsFixed, stats.FilesModified, word))
}

// FormatSummary renders run statistics as a multi-line summary block.
func (s *Styles) FormatSummary(stats runner.Stats) string {
	var out strings.Builder

	fmt.Fprintf(&out, "\n%s\n%s\n", s.SummaryTitle.Render("Summary"), strings.Repeat("-", summaryDividerWidth))

	s.writeField(&out, "Files checked:", stats.FilesProcessed, s.SummaryValue, true)
	s.writeField(&out, "Files with issues:", stats.FilesWithIssues, s.Failure, false)
	s.writeField(&out, "Files modified:", stats.FilesModified, s.Success, false)
	out.WriteString("\n")

	s.writeField(&out, "Total issues:", stats.DiagnosticsTotal, s.SummaryValue, true)
	s.writeIndentedCount(&out, "Errors:", stats.DiagnosticsBySeverity["error"], s.Error)
	s.writeIndentedCount(&out, "Warnings:", stats.DiagnosticsBySeverity["warning"], s.Warning)
	s.writeIndentedCount(&out, "Info:", stats.DiagnosticsBySeverity["info"], s.Info)
	out.WriteString("\n")

	out.WriteString(s.overallStatus(stats))
	out.WriteString("\n")

	return out.String()
}

// writeField writes one "  Label:   value" line, two-space indented,
// padded so values start after 21 characters. If always is false, a zero count
// suppresses the line entirely.
func (s *Styles) writeField(out *strings.Builder, label string, count int, style lipgloss.Style, always bool) {
	if count == 0 && !always {
		return
	}
	fmt.Fprintf(out, "  %-19s%s\n", label, style.Render(strconv.Itoa(count)))
}

// writeIndentedCount is writeField indented one level further, used for
// the per-severity breakdown under "Total issues". Zero counts are
// suppressed.
func (s *Styles) writeIndentedCount(out *strings.Builder, label string, count int, style lipgloss.Style) {
	if count == 0 {
		return
	}
	fmt.Fprintf(out, "    %-17s%s\n", label, style.Render(strconv.Itoa(count)))
}

// overallStatus renders the final pass/warn/fail line.
func (s *Styles) overallStatus(stats runner.Stats) string {
	switch {
	case stats.DiagnosticsBySeverity["error"] > 0:
		return s.Failure.Render("Lint failed with errors")
	case stats.DiagnosticsBySeverity["warning"] > 0:
		return s.Warning.Render("Lint completed with warnings")
	default:
		return s.Success.Render("Lint passed")
	}
}
