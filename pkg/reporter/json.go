package reporter

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"

	"github.com/yaklabco/mkdlint/pkg/lint"
	"github.com/yaklabco/mkdlint/pkg/runner"
)

// defaultSeverityLabel is substituted when a diagnostic's Severity is
// unset, so the JSON output never emits an empty severity string.
const defaultSeverityLabel = "warning"

// JSONOutput is the top-level shape written by JSONReporter.
type JSONOutput struct {
	Version string           `json:"version"`
	Files   []JSONFileResult `json:"files"`
	Summary JSONSummary      `json:"summary"`
}

// JSONFileResult is one linted file's diagnostics and outcome.
type JSONFileResult struct {
	Path        string           `json:"path"`
	Diagnostics []JSONDiagnostic `json:"diagnostics"`
	Modified    bool             `json:"modified,omitempty"`
	Error       string           `json:"error,omitempty"`
}

// JSONDiagnostic is one rule violation.
type JSONDiagnostic struct {
	RuleID      string    `json:"ruleId"`
	RuleName    string    `json:"ruleName"`
	Severity    string    `json:"severity"`
	Message     string    `json:"message"`
	StartLine   int       `json:"startLine"`
	StartColumn int       `json:"startColumn"`
	EndLine     int       `json:"endLine"`
	EndColumn   int       `json:"endColumn"`
	Suggestion  string    `json:"suggestion,omitempty"`
	Fixable     bool      `json:"fixable"`
	Fixes       []JSONFix `json:"fixes,omitempty"`
}

// JSONFix is one proposed text edit for a diagnostic.
type JSONFix struct {
	StartOffset int    `json:"startOffset"`
	EndOffset   int    `json:"endOffset"`
	NewText     string `json:"newText"`
}

// JSONSummary totals the run across every file.
type JSONSummary struct {
	FilesChecked    int            `json:"filesChecked"`
	FilesWithIssues int            `json:"filesWithIssues"`
	FilesModified   int            `json:"filesModified"`
	FilesErrored    int            `json:"filesErrored"`
	TotalIssues     int            `json:"totalIssues"`
	BySeverity      map[string]int `json:"bySeverity"`
}

// JSONReporter renders a runner.Result as a single JSON document.
type JSONReporter struct {
	opts Options
	bw   *bufio.Writer
}

// NewJSONReporter returns a JSONReporter writing to opts.Writer.
func NewJSONReporter(opts Options) *JSONReporter {
	return &JSONReporter{opts: opts, bw: bufio.NewWriterSize(opts.Writer, bufWriterSize)}
}

// Report implements Reporter, returning the total diagnostic count.
func (r *JSONReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	output := jsonOutputFor(result)

	encoder := json.NewEncoder(r.bw)
	if !r.opts.Compact {
		encoder.SetIndent("", "  ")
	}
	if err := encoder.Encode(output); err != nil {
		return 0, fmt.Errorf("encode JSON: %w", err)
	}
	return output.Summary.TotalIssues, nil
}

// jsonOutputFor assembles the full JSONOutput for result, which may be nil
// (an empty run still produces a well-formed, empty document).
func jsonOutputFor(result *runner.Result) *JSONOutput {
	output := &JSONOutput{
		Version: "1.0.0",
		Files:   []JSONFileResult{},
		Summary: JSONSummary{BySeverity: make(map[string]int)},
	}
	if result == nil {
		return output
	}

	output.Files = make([]JSONFileResult, 0, len(result.Files))
	for _, file := range result.Files {
		fr := jsonFileResultFor(file)
		tallyFile(&output.Summary, fr)
		output.Files = append(output.Files, fr)
	}
	return output
}

func jsonFileResultFor(file runner.FileOutcome) JSONFileResult {
	fr := JSONFileResult{Path: file.Path, Diagnostics: []JSONDiagnostic{}}

	if file.Error != nil {
		fr.Error = file.Error.Error()
	}
	if file.Result == nil || file.Result.FileResult == nil {
		return fr
	}

	fr.Modified = file.Result.Written
	for _, diag := range file.Result.Diagnostics {
		fr.Diagnostics = append(fr.Diagnostics, jsonDiagnosticFor(diag))
	}
	return fr
}

func jsonDiagnosticFor(diag lint.Diagnostic) JSONDiagnostic {
	jd := JSONDiagnostic{
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    string(diag.Severity),
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     len(diag.FixEdits) > 0,
	}
	for _, edit := range diag.FixEdits {
		jd.Fixes = append(jd.Fixes, JSONFix{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return jd
}

// tallyFile folds one file's rendered diagnostics into the running
// summary.
func tallyFile(summary *JSONSummary, fr JSONFileResult) {
	summary.FilesChecked++
	if fr.Error != "" {
		summary.FilesErrored++
	}
	if len(fr.Diagnostics) > 0 {
		summary.FilesWithIssues++
	}
	if fr.Modified {
		summary.FilesModified++
	}

	for _, diag := range fr.Diagnostics {
		summary.TotalIssues++
		severity := diag.Severity
		if severity == "" {
			severity = defaultSeverityLabel
		}
		summary.BySeverity[severity]++
	}
}
