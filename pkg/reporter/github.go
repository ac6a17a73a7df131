package reporter

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/yaklabco/mkdlint/pkg/config"
	"github.com/yaklabco/mkdlint/pkg/runner"
)

// GitHubReporter formats diagnostics as GitHub Actions workflow commands
// (`::error file=...,line=...::message`), so they surface as annotations on
// the pull request diff and in the Actions run log.
type GitHubReporter struct {
	opts Options
	out  io.Writer
}

// NewGitHubReporter creates a new GitHub Actions annotation reporter.
func NewGitHubReporter(opts Options) *GitHubReporter {
	return &GitHubReporter{
		opts: opts,
		out:  opts.Writer,
	}
}

// Report implements Reporter.
func (r *GitHubReporter) Report(_ context.Context, result *runner.Result) (int, error) {
	if result == nil {
		return 0, nil
	}

	count := 0
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		for _, diag := range file.Result.Diagnostics {
			line := fmt.Sprintf(
				"::%s file=%s,line=%d,col=%d,title=%s::%s\n",
				githubAnnotationLevel(diag.Severity),
				githubEscapeProperty(diag.FilePath),
				diag.StartLine,
				diag.StartColumn,
				diag.RuleID,
				githubEscapeMessage(diag.Message),
			)
			if _, err := io.WriteString(r.out, line); err != nil {
				return count, fmt.Errorf("write annotation: %w", err)
			}
			count++
		}
	}

	return count, nil
}

// githubAnnotationLevel maps mkdlint severity to a GitHub annotation command.
func githubAnnotationLevel(severity config.Severity) string {
	switch severity {
	case config.SeverityError:
		return "error"
	case config.SeverityWarning:
		return "warning"
	case config.SeverityInfo:
		return "notice"
	default:
		return "warning"
	}
}

// githubEscapeProperty escapes a workflow-command property value per the
// GitHub Actions toolkit encoding rules.
func githubEscapeProperty(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
		":", "%3A",
		",", "%2C",
	)
	return r.Replace(s)
}

// githubEscapeMessage escapes a workflow-command message value.
func githubEscapeMessage(s string) string {
	r := strings.NewReplacer(
		"%", "%25",
		"\r", "%0D",
		"\n", "%0A",
	)
	return r.Replace(s)
}
