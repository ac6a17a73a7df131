// Package pretty renders lint diagnostics, diffs, summaries, and tables as
// Lipgloss-styled terminal output.
package pretty

import (
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

// Styles bundles every named style the CLI's renderers reach for. NewStyles
// is the only constructor; fields are public so renderers compose them
// freely (e.g. Styles.Bold.Render(Styles.Error.Render(...))).
type Styles struct {
	Error   lipgloss.Style
	Warning lipgloss.Style
	Info    lipgloss.Style

	FilePath   lipgloss.Style
	Location   lipgloss.Style
	RuleID     lipgloss.Style
	Message    lipgloss.Style
	Suggestion lipgloss.Style
	SourceLine lipgloss.Style
	Caret      lipgloss.Style

	DiffHeader  lipgloss.Style
	DiffHunk    lipgloss.Style
	DiffAdd     lipgloss.Style
	DiffRemove  lipgloss.Style
	DiffContext lipgloss.Style

	SummaryTitle lipgloss.Style
	SummaryValue lipgloss.Style
	Success      lipgloss.Style
	Failure      lipgloss.Style

	TableHeader    lipgloss.Style
	TableBorder    lipgloss.Style
	TableErrorRow  lipgloss.Style
	TableWarnRow   lipgloss.Style
	TableInfoRow   lipgloss.Style
	TableFixable   lipgloss.Style
	TableLegend    lipgloss.Style
	TableSeparator lipgloss.Style

	Dim  lipgloss.Style
	Bold lipgloss.Style
}

// ANSI 256-color palette entries shared between the styles that draw from
// the same hue, named for what they signal rather than their numeric value.
const (
	colorRed       = "9"  // errors, failures, remove-diff lines, carets
	colorYellow    = "11" // warnings
	colorBlue      = "12" // info severity
	colorGreen     = "10" // success, additions, fixable markers, suggestions
	colorCyan      = "14" // diff hunk headers
	colorGray      = "8"  // secondary/dim text: locations, borders, context
	colorLightGray = "7"  // source line text, table header text
)

func fg(color string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color))
}

// newColorStyles builds the ANSI-256 palette used when color output is
// enabled.
func newColorStyles() *Styles {
	return &Styles{
		Error:   fg(colorRed).Bold(true),
		Warning: fg(colorYellow).Bold(true),
		Info:    fg(colorBlue).Bold(true),

		FilePath:   lipgloss.NewStyle().Bold(true),
		Location:   fg(colorGray),
		RuleID:     fg(colorGray),
		Message:    lipgloss.NewStyle(),
		Suggestion: fg(colorGreen).Italic(true),
		SourceLine: fg(colorLightGray),
		Caret:      fg(colorRed),

		DiffHeader:  lipgloss.NewStyle().Bold(true),
		DiffHunk:    fg(colorCyan),
		DiffAdd:     fg(colorGreen),
		DiffRemove:  fg(colorRed),
		DiffContext: fg(colorGray),

		SummaryTitle: lipgloss.NewStyle().Bold(true),
		SummaryValue: lipgloss.NewStyle(),
		Success:      fg(colorGreen).Bold(true),
		Failure:      fg(colorRed).Bold(true),

		TableHeader:    fg(colorLightGray).Bold(true),
		TableBorder:    fg(colorGray),
		TableErrorRow:  fg(colorRed),
		TableWarnRow:   fg(colorYellow),
		TableInfoRow:   fg(colorBlue),
		TableFixable:   fg(colorGreen),
		TableLegend:    fg(colorGray).Italic(true),
		TableSeparator: fg(colorGray),

		Dim:  fg(colorGray),
		Bold: lipgloss.NewStyle().Bold(true),
	}
}

// newNoColorStyles builds a Styles whose every field renders plain text,
// for --no-color and non-TTY output.
func newNoColorStyles() *Styles {
	plain := lipgloss.NewStyle()
	return &Styles{
		Error: plain, Warning: plain, Info: plain,
		FilePath: plain, Location: plain, RuleID: plain, Message: plain,
		Suggestion: plain, SourceLine: plain, Caret: plain,
		DiffHeader: plain, DiffHunk: plain, DiffAdd: plain, DiffRemove: plain, DiffContext: plain,
		SummaryTitle: plain, SummaryValue: plain, Success: plain, Failure: plain,
		TableHeader: plain, TableBorder: plain, TableErrorRow: plain, TableWarnRow: plain,
		TableInfoRow: plain, TableFixable: plain, TableLegend: plain, TableSeparator: plain,
		Dim: plain, Bold: plain,
	}
}

// NewStyles builds the colored palette when colorEnabled is true, or an
// all-plain Styles otherwise.
func NewStyles(colorEnabled bool) *Styles {
	if !colorEnabled {
		return newNoColorStyles()
	}
	return newColorStyles()
}

// IsColorEnabled decides whether output should be colored given a CLI color
// mode ("always", "never", or "auto") and the writer output will go to. In
// auto mode, color requires both a TTY writer and an unset NO_COLOR
// environment variable (https://no-color.org/).
func IsColorEnabled(mode string, writer io.Writer) bool {
	switch mode {
	case "always":
		return true
	case "never":
		return false
	}

	if os.Getenv("NO_COLOR") != "" {
		return false
	}
	f, ok := writer.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
