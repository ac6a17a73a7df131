package pretty

import (
	"fmt"
	"strings"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/lint"
)

// FormatDiagnostic renders diag for terminal output using the legacy
// rule-ID-only identifier format.
func (s *Styles) FormatDiagnostic(diag *lint.Diagnostic, showContext bool, sourceLine string) string {
	return s.FormatDiagnosticWithFormat(diag, showContext, sourceLine, config.RuleFormatID)
}

// FormatDiagnosticWithFormat renders diag as "path:line:col  severity
// message  (rule-id)", with an optional source-context line and any
// suggested fix message, using ruleFormat to render the rule identifier.
func (s *Styles) FormatDiagnosticWithFormat(
	diag *lint.Diagnostic, showContext bool, sourceLine string, ruleFormat config.RuleFormat,
) string {
	var out strings.Builder

	location := fmt.Sprintf("%s:%d:%d", s.FilePath.Render(diag.FilePath), diag.StartLine, diag.StartColumn)
	ruleIdentifier := config.FormatRuleID(ruleFormat, diag.RuleID, diag.RuleName)

	fmt.Fprintf(&out, "  %s  %s  %s  %s\n",
		location,
		s.FormatSeverity(diag.Severity),
		s.Message.Render(diag.Message),
		s.RuleID.Render("("+ruleIdentifier+")"),
	)

	if showContext && sourceLine != "" {
		out.WriteString(s.FormatSourceContext(sourceLine, diag.StartColumn))
	}
	if diag.Suggestion != "" {
		fmt.Fprintf(&out, "    %s %s\n", s.Dim.Render("Suggestion:"), s.Suggestion.Render(diag.Suggestion))
	}

	return out.String()
}

// FormatSeverity renders sev with its severity color, falling back to the
// raw string for an unrecognized value.
func (s *Styles) FormatSeverity(sev config.Severity) string {
	switch sev {
	case config.SeverityError:
		return s.Error.Render("error")
	case config.SeverityWarning:
		return s.Warning.Render("warning")
	case config.SeverityInfo:
		return s.Info.Render("info")
	default:
		return string(sev)
	}
}

// sourceContextIndent aligns a quoted source line under the diagnostic
// message above it.
const sourceContextIndent = "        "

// FormatSourceContext renders line indented under a diagnostic, with a
// caret pointing at column (1-based; 0 suppresses the caret).
func (s *Styles) FormatSourceContext(line string, column int) string {
	var out strings.Builder
	fmt.Fprintf(&out, "%s%s\n", sourceContextIndent, s.SourceLine.Render(line))
	if column > 0 {
		fmt.Fprintf(&out, "%s%s%s\n", sourceContextIndent, strings.Repeat(" ", column-1), s.Caret.Render("^"))
	}
	return out.String()
}

// FormatFileHeader renders path with its issue count for grouped output.
func (s *Styles) FormatFileHeader(path string, issueCount int) string {
	header := s.FilePath.Render(path)
	if issueCount > 0 {
		header += s.Dim.Render(fmt.Sprintf(" (%d issues)", issueCount))
	}
	return header
}
