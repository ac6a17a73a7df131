package reporter

import (
	"bufio"
	"context"
	"fmt"
	"io"

	"golang.org/x/term"

	"github.com/yaklabco/mkdlint/internal/ui/pretty"
	"github.com/yaklabco/mkdlint/pkg/runner"
)

// fallbackTermWidth is used when the output writer isn't a terminal (or
// its size can't be queried), e.g. when piped to a file.
const fallbackTermWidth = 100

// TableReporter renders a runner.Result as a color-coded table, either one
// table per file or a single combined table.
type TableReporter struct {
	opts      Options
	styles    *pretty.Styles
	formatter *pretty.TableFormatter
	bw        *bufio.Writer
}

// NewTableReporter returns a TableReporter writing to opts.Writer, sizing
// itself to the writer's terminal width when it has one.
func NewTableReporter(opts Options) *TableReporter {
	colorEnabled := pretty.IsColorEnabled(opts.Color, opts.Writer)
	styles := pretty.NewStyles(colorEnabled)
	width := terminalWidth(opts.Writer)

	return &TableReporter{
		opts:      opts,
		styles:    styles,
		formatter: pretty.NewTableFormatter(styles, colorEnabled, width),
		bw:        bufio.NewWriterSize(opts.Writer, bufWriterSize),
	}
}

// Report implements Reporter, returning the total diagnostic count.
func (r *TableReporter) Report(_ context.Context, result *runner.Result) (_ int, err error) {
	defer func() {
		if flushErr := r.bw.Flush(); err == nil {
			err = flushErr
		}
	}()

	if result == nil || len(result.Files) == 0 {
		if r.opts.ShowSummary {
			fmt.Fprintln(r.bw, r.styles.Success.Render("No files to check."))
		}
		return 0, nil
	}

	total := totalDiagnostics(result)
	if total == 0 {
		r.reportClean(result)
		return 0, nil
	}

	if r.opts.PerFile {
		r.reportPerFile(result)
	} else {
		r.reportCombined(result)
	}
	return total, nil
}

func (r *TableReporter) reportClean(result *runner.Result) {
	if !r.opts.ShowSummary {
		return
	}
	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, r.styles.Success.Render("All files passed!"))
	fmt.Fprintln(r.bw, r.styles.Dim.Render(fmt.Sprintf("%d files checked", result.Stats.FilesProcessed)))
}

func (r *TableReporter) reportCombined(result *runner.Result) {
	fmt.Fprint(r.bw, r.formatter.FormatTable(result))
	if !r.opts.ShowSummary {
		return
	}

	fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	fmt.Fprintln(r.bw)
	r.printFixHint(result)
}

func (r *TableReporter) reportPerFile(result *runner.Result) {
	filesWithIssues := 0
	for _, file := range result.Files {
		if !hasDiagnostics(file) {
			continue
		}
		filesWithIssues++

		fmt.Fprintln(r.bw)
		fmt.Fprintln(r.bw, r.styles.Bold.Render(file.Path))
		fmt.Fprint(r.bw, r.formatter.FormatFileTable(file))
	}

	if !r.opts.ShowSummary || filesWithIssues == 0 {
		return
	}

	fmt.Fprintln(r.bw)
	fmt.Fprintln(r.bw, r.styles.TableSeparator.Render(
		"════════════════════════════════════════════════════════════════════════════════"))
	fmt.Fprintln(r.bw, r.styles.Bold.Render("Overall Summary"))
	fmt.Fprintln(r.bw, r.formatter.FormatTableSummary(result.Stats, ""))
	fmt.Fprintln(r.bw)
	r.printFixHint(result)
}

func (r *TableReporter) printFixHint(result *runner.Result) {
	if anyFixable(result) {
		fmt.Fprintln(r.bw, r.styles.Dim.Render("Run with --fix to auto-repair fixable issues"))
	}
}

func hasDiagnostics(file runner.FileOutcome) bool {
	return file.Result != nil && file.Result.FileResult != nil && len(file.Result.Diagnostics) > 0
}

// totalDiagnostics sums diagnostics across every processed file.
func totalDiagnostics(result *runner.Result) int {
	total := 0
	for _, file := range result.Files {
		if file.Result != nil && file.Result.FileResult != nil {
			total += len(file.Result.Diagnostics)
		}
	}
	return total
}

// anyFixable reports whether at least one diagnostic across the run
// carries a fix.
func anyFixable(result *runner.Result) bool {
	for _, file := range result.Files {
		if file.Result == nil || file.Result.FileResult == nil {
			continue
		}
		for _, diag := range file.Result.Diagnostics {
			if len(diag.FixEdits) > 0 {
				return true
			}
		}
	}
	return false
}

// terminalWidth queries writer's terminal width via an Fd() method,
// falling back to fallbackTermWidth when writer isn't a terminal or the
// query fails.
func terminalWidth(writer io.Writer) int {
	f, ok := writer.(interface{ Fd() uintptr })
	if !ok {
		return fallbackTermWidth
	}
	width, _, err := term.GetSize(int(f.Fd()))
	if err != nil || width <= 0 {
		return fallbackTermWidth
	}
	return width
}
