package runner

import "github.com/yaklabco/mkdlint/pkg/lint"

// FileOutcome pairs a processed path with its pipeline result or the error
// that kept it from producing one.
type FileOutcome struct {
	Path   string
	Result *lint.PipelineResult
	Error  error
}

// Stats aggregates counters across every file in a Run.
type Stats struct {
	FilesDiscovered int
	FilesProcessed  int
	FilesSkipped    int
	FilesErrored    int

	DiagnosticsTotal      int
	DiagnosticsFixable    int
	DiagnosticsFixed      int
	DiagnosticsBySeverity map[string]int

	FilesWithIssues int
	FilesModified   int
}

func newStats() Stats {
	return Stats{DiagnosticsBySeverity: make(map[string]int)}
}

// Result is a completed (or partially completed, if the run was
// cancelled) multi-file run.
type Result struct {
	// Files holds one outcome per processed path, ordered by discovery
	// order (not completion order).
	Files []FileOutcome
	Stats Stats

	// Errors holds failures not tied to any single file.
	Errors []error
}

// HasFailures reports whether any diagnostic reached error severity.
func (r *Result) HasFailures() bool {
	return r != nil && r.Stats.DiagnosticsBySeverity["error"] > 0
}

// HasIssues reports whether the run produced any diagnostics at all.
func (r *Result) HasIssues() bool {
	return r != nil && r.Stats.DiagnosticsTotal > 0
}

// accumulate folds one file's outcome into r, updating both r.Files and
// r.Stats.
func (r *Result) accumulate(outcome FileOutcome) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}
	if outcome.Result == nil {
		return
	}

	r.Stats.FilesProcessed++
	if outcome.Result.Skipped {
		r.Stats.FilesSkipped++
	}
	if outcome.Result.Written {
		r.Stats.FilesModified++
	}
	r.Stats.DiagnosticsFixed += outcome.Result.TotalEditsApplied

	if outcome.Result.FileResult == nil {
		return
	}

	diags := outcome.Result.Diagnostics
	r.Stats.DiagnosticsTotal += len(diags)
	r.Stats.DiagnosticsFixable += outcome.Result.FixableCount()
	if len(diags) > 0 {
		r.Stats.FilesWithIssues++
	}

	for _, diag := range diags {
		severity := string(diag.Severity)
		if severity == "" {
			severity = "warning"
		}
		r.Stats.DiagnosticsBySeverity[severity]++
	}
}
