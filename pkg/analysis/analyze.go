package analysis

import (
	"cmp"
	"path/filepath"
	"slices"
	"time"

	"github.com/yaklabco/mkdlint/pkg/lint"
	"github.com/yaklabco/mkdlint/pkg/runner"
)

// ReportVersion is the current report format version.
const ReportVersion = "1.0.0"

const (
	severityError   = "error"
	severityWarning = "warning"
	severityInfo    = "info"
)

// aggregator accumulates per-file and per-rule views while Analyze makes its
// single pass over diagnostics; buildByFile/buildByRule finalize them into
// the Report's sorted slices.
type aggregator struct {
	rules     map[string]*RuleAnalysis
	files     map[string]*FileAnalysis
	rulesSeen map[string]map[string]bool // ruleID -> set of file paths
	filesSeen map[string]map[string]bool // path -> set of rule IDs
}

func newAggregator() *aggregator {
	return &aggregator{
		rules:     make(map[string]*RuleAnalysis),
		files:     make(map[string]*FileAnalysis),
		rulesSeen: make(map[string]map[string]bool),
		filesSeen: make(map[string]map[string]bool),
	}
}

func (a *aggregator) file(path string) *FileAnalysis {
	if _, ok := a.files[path]; !ok {
		a.files[path] = &FileAnalysis{Path: path}
		a.filesSeen[path] = make(map[string]bool)
	}
	return a.files[path]
}

func (a *aggregator) rule(id, name string) *RuleAnalysis {
	if _, ok := a.rules[id]; !ok {
		a.rules[id] = &RuleAnalysis{RuleID: id, RuleName: name}
		a.rulesSeen[id] = make(map[string]bool)
	}
	return a.rules[id]
}

// record folds one diagnostic, already mapped to displayPath, into both the
// per-file and per-rule views plus the run-wide totals.
func (a *aggregator) record(totals *Totals, displayPath string, diag *lint.Diagnostic) {
	severity := normalizeSeverity(string(diag.Severity))
	fixable := len(diag.FixEdits) > 0

	totals.Issues++
	if fixable {
		totals.Fixable++
	}

	fa := a.file(displayPath)
	fa.Issues++
	a.filesSeen[displayPath][diag.RuleID] = true
	addSeverity(totals, fa, severity)

	ra := a.rule(diag.RuleID, diag.RuleName)
	ra.Issues++
	if fixable {
		ra.Fixable = true
	}
	a.rulesSeen[diag.RuleID][displayPath] = true
	addRuleSeverity(ra, severity)
}

func addSeverity(totals *Totals, fa *FileAnalysis, severity string) {
	switch severity {
	case severityError:
		totals.Errors++
		fa.Errors++
	case severityWarning:
		totals.Warnings++
		fa.Warnings++
	case severityInfo:
		totals.Infos++
		fa.Infos++
	}
}

func addRuleSeverity(ra *RuleAnalysis, severity string) {
	switch severity {
	case severityError:
		ra.Errors++
	case severityWarning:
		ra.Warnings++
	case severityInfo:
		ra.Infos++
	}
}

func normalizeSeverity(sev string) string {
	if sev == "" {
		return severityWarning
	}
	return sev
}

func (a *aggregator) buildByRule(opts Options) []RuleAnalysis {
	result := make([]RuleAnalysis, 0, len(a.rules))
	for id, ra := range a.rules {
		for f := range a.rulesSeen[id] {
			ra.Files = append(ra.Files, f)
		}
		slices.Sort(ra.Files)
		result = append(result, *ra)
	}
	sortAnalysis(result, opts.SortBy, opts.SortDesc,
		func(r RuleAnalysis) string { return r.RuleID },
		func(r RuleAnalysis) (int, int, int) { return r.Errors, r.Warnings, r.Issues })
	return result
}

func (a *aggregator) buildByFile(opts Options) []FileAnalysis {
	result := make([]FileAnalysis, 0, len(a.files))
	for path, fa := range a.files {
		if fa.Issues == 0 {
			continue
		}
		for r := range a.filesSeen[path] {
			fa.Rules = append(fa.Rules, r)
		}
		slices.Sort(fa.Rules)
		result = append(result, *fa)
	}
	sortAnalysis(result, opts.SortBy, opts.SortDesc,
		func(f FileAnalysis) string { return f.Path },
		func(f FileAnalysis) (int, int, int) { return f.Errors, f.Warnings, f.Issues })
	return result
}

// sortAnalysis orders items per sortBy: alphabetically by alphaKey,
// by severity (errors, then warnings, then issues, always descending), or
// by raw issue count (direction set by desc).
func sortAnalysis[T any](items []T, sortBy SortField, desc bool, alphaKey func(T) string, severity func(T) (errors, warnings, issues int)) {
	slices.SortFunc(items, func(left, right T) int {
		switch sortBy {
		case SortByAlpha:
			return cmp.Compare(alphaKey(left), alphaKey(right))
		case SortBySeverity:
			le, lw, li := severity(left)
			re, rw, ri := severity(right)
			if r := cmp.Compare(re, le); r != 0 {
				return r
			}
			if r := cmp.Compare(rw, lw); r != 0 {
				return r
			}
			return cmp.Compare(ri, li)
		default: // SortByCount
			_, _, li := severity(left)
			_, _, ri := severity(right)
			r := cmp.Compare(li, ri)
			if desc {
				r = -r
			}
			return r
		}
	})
}

// makeRelativePath rewrites absPath relative to workDir, falling back to
// absPath unchanged if workDir is empty or the two paths share no common
// ancestor that filepath.Rel can express.
func makeRelativePath(absPath, workDir string) string {
	if workDir == "" {
		return absPath
	}
	rel, err := filepath.Rel(workDir, absPath)
	if err != nil {
		return absPath
	}
	return rel
}

func diagnosticEntry(path, severity string, diag *lint.Diagnostic) DiagnosticEntry {
	entry := DiagnosticEntry{
		FilePath:    path,
		RuleID:      diag.RuleID,
		RuleName:    diag.RuleName,
		Severity:    severity,
		Message:     diag.Message,
		StartLine:   diag.StartLine,
		StartColumn: diag.StartColumn,
		EndLine:     diag.EndLine,
		EndColumn:   diag.EndColumn,
		Suggestion:  diag.Suggestion,
		Fixable:     len(diag.FixEdits) > 0,
	}
	for _, edit := range diag.FixEdits {
		entry.Fixes = append(entry.Fixes, FixEntry{
			StartOffset: edit.StartOffset,
			EndOffset:   edit.EndOffset,
			NewText:     edit.NewText,
		})
	}
	return entry
}

// Analyze reduces a runner.Result to a Report in one pass over its
// diagnostics, computing totals and (per opts) the flat diagnostics list,
// per-file view, and per-rule view together.
func Analyze(result *runner.Result, opts Options) *Report {
	report := &Report{Version: ReportVersion, Timestamp: time.Now()}
	if result == nil {
		return report
	}

	agg := newAggregator()

	for _, file := range result.Files {
		report.Totals.Files++
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		if len(file.Result.Diagnostics) > 0 {
			report.Totals.FilesWithIssues++
		}

		displayPath := makeRelativePath(file.Path, opts.WorkingDir)
		for _, diag := range file.Result.Diagnostics {
			agg.record(&report.Totals, displayPath, &diag)
			if opts.IncludeDiagnostics {
				severity := normalizeSeverity(string(diag.Severity))
				report.Diagnostics = append(report.Diagnostics, diagnosticEntry(displayPath, severity, &diag))
			}
		}
	}

	if opts.IncludeByRule {
		report.ByRule = agg.buildByRule(opts)
	}
	if opts.IncludeByFile {
		report.ByFile = agg.buildByFile(opts)
	}

	return report
}
