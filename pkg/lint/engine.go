package lint

import (
	"context"
	"fmt"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/fix"
	"github.com/yaklabco/mkdlint/pkg/lint/inlineconfig"
	"github.com/yaklabco/mkdlint/pkg/mdast"
)

// FileResult contains the results of linting a single file.
type FileResult struct {
	// Snapshot is the parsed file.
	Snapshot *mdast.FileSnapshot

	// Diagnostics contains all issues found.
	Diagnostics []Diagnostic

	// Edits contains validated, sorted edits for auto-fix.
	// Empty if no fixes are available or --fix was not requested.
	Edits []fix.TextEdit

	// SkippedEdits contains edits that were skipped due to conflicts.
	// When multiple edits overlap, earlier edits (by start position) take precedence.
	SkippedEdits []fix.TextEdit

	// EditConflicts is true if any edits were skipped due to conflicts, or if
	// edit validation failed and all edits were dropped.
	EditConflicts bool

	// RuleErrors contains any errors from rule execution.
	RuleErrors map[string]error
}

// HasIssues returns true if any diagnostics were found.
func (fr *FileResult) HasIssues() bool {
	return len(fr.Diagnostics) > 0
}

// HasFixes returns true if any fixes are available.
func (fr *FileResult) HasFixes() bool {
	return len(fr.Edits) > 0
}

// IssueCount returns the total number of diagnostics.
func (fr *FileResult) IssueCount() int {
	return len(fr.Diagnostics)
}

// FixableCount returns the number of diagnostics with fixes.
func (fr *FileResult) FixableCount() int {
	count := 0
	for _, d := range fr.Diagnostics {
		if d.HasFix() {
			count++
		}
	}
	return count
}

// Engine coordinates parsing and rule execution for linting.
type Engine struct {
	// Parser parses Markdown files into FileSnapshots.
	Parser Parser

	// Registry holds all available rules.
	Registry *Registry
}

// NewEngine creates a new Engine with the given parser and registry.
func NewEngine(parser Parser, registry *Registry) *Engine {
	return &Engine{
		Parser:   parser,
		Registry: registry,
	}
}

// LintFile parses and lints a single file.
func (e *Engine) LintFile(
	ctx context.Context,
	path string,
	content []byte,
	cfg *config.Config,
) (*FileResult, error) {
	// Parse the file.
	snapshot, err := e.Parser.Parse(ctx, path, content)
	if err != nil {
		return nil, fmt.Errorf("parse error: %w", err)
	}

	// Resolve inline-configuration directives (mkdlint-disable/-enable/
	// -configure-file HTML comments), unless disabled via --no-inline-config.
	var inlineRes *inlineconfig.Resolution
	effectiveCfg := cfg
	if cfg == nil || !cfg.NoInlineConfig {
		var ierr error
		inlineRes, ierr = inlineconfig.Resolve(content)
		if ierr != nil {
			return nil, fmt.Errorf("inline config error: %w", ierr)
		}
		effectiveCfg = mergeInlineOptions(cfg, inlineRes)
	}

	// Resolve which rules to run.
	resolved := ResolveRules(e.Registry, effectiveCfg)

	result := &FileResult{
		Snapshot:    snapshot,
		Diagnostics: nil,
		Edits:       nil,
		RuleErrors:  make(map[string]error),
	}

	// Collect all edits for validation.
	var allEdits []fix.TextEdit

	// Run each rule.
	for _, rr := range resolved {
		// Check for cancellation.
		select {
		case <-ctx.Done():
			return result, fmt.Errorf("linting cancelled: %w", ctx.Err())
		default:
		}

		// Create rule context.
		ruleCtx := NewRuleContext(ctx, snapshot, effectiveCfg, rr.Config)
		ruleCtx.Registry = e.Registry

		// Execute rule.
		diags, err := rr.Rule.Apply(ruleCtx)
		if err != nil {
			result.RuleErrors[rr.Rule.ID()] = err
			continue
		}

		// Process diagnostics, filtering out any suppressed by an inline
		// mkdlint-disable directive covering their line.
		kept := diags[:0]
		for diagIdx := range diags {
			d := &diags[diagIdx]

			if inlineRes != nil && inlineRes.IsDisabled(rr.Rule.ID(), d.StartLine) {
				continue
			}

			// Apply resolved severity.
			d.Severity = rr.Severity

			// Ensure file path is set.
			if d.FilePath == "" {
				d.FilePath = path
			}

			// Ensure rule name is set for human-readable output.
			if d.RuleName == "" {
				d.RuleName = rr.Rule.Name()
			}

			// Collect edits if auto-fix is enabled for this rule.
			if rr.AutoFix && len(d.FixEdits) > 0 {
				allEdits = append(allEdits, d.FixEdits...)
			}

			kept = append(kept, *d)
		}

		result.Diagnostics = append(result.Diagnostics, kept...)
	}

	// Validate and prepare edits, merging deletions and filtering conflicts.
	if len(allEdits) > 0 {
		accepted, skipped, _, err := fix.PrepareEditsFiltered(allEdits, len(content))
		if err != nil {
			// Validation error (not conflicts - those are filtered).
			// Still include diagnostics but clear edits.
			result.Edits = nil
			result.SkippedEdits = nil
			result.EditConflicts = true
		} else {
			result.Edits = accepted
			result.SkippedEdits = skipped
			result.EditConflicts = len(skipped) > 0
		}
	}

	return result, nil
}

// mergeInlineOptions applies mkdlint-configure-file option overrides on top
// of cfg, producing a cloned config so the caller's original is untouched.
// Inline directives are the last stage of the precedence chain described in
// §4.4, so they win over config-file and CLI-supplied rule options.
func mergeInlineOptions(cfg *config.Config, res *inlineconfig.Resolution) *config.Config {
	if res == nil || len(res.Options) == 0 {
		return cfg
	}

	var out *config.Config
	if cfg != nil {
		out = cfg.Clone()
	} else {
		out = config.NewConfig()
	}
	if out.Rules == nil {
		out.Rules = make(map[string]config.RuleConfig)
	}

	for ruleID, opts := range res.Options {
		rc := out.Rules[ruleID]
		if rc.Options == nil {
			rc.Options = make(map[string]any, len(opts))
		}
		for k, v := range opts {
			rc.Options[k] = v
		}
		out.Rules[ruleID] = rc
	}

	return out
}
