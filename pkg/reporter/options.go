package reporter

import (
	"io"
	"os"

	"github.com/yaklabco/mkdlint/pkg/config"
)

// bufWriterSize buffers reporter output writers (64 KiB).
const bufWriterSize = 64 * 1024

// Options configures how a Renderer presents results.
type Options struct {
	Writer      io.Writer
	ErrorWriter io.Writer
	Format      Format

	// Color is "auto", "always", or "never".
	Color string

	ShowContext bool
	ShowSummary bool
	GroupByFile bool
	Compact     bool

	// PerFile emits a separate report per file (table format only).
	PerFile bool

	RuleFormat   config.RuleFormat
	SummaryOrder config.SummaryOrder

	// WorkingDir paths are made relative to; empty keeps paths as-is.
	WorkingDir string
}

// DefaultOptions returns the reporter defaults: text format to stdout, auto
// color, context and summary shown.
func DefaultOptions() Options {
	return Options{
		Writer:       os.Stdout,
		ErrorWriter:  os.Stderr,
		Format:       FormatText,
		Color:        "auto",
		ShowContext:  true,
		ShowSummary:  true,
		GroupByFile:  true,
		RuleFormat:   config.RuleFormatName,
		SummaryOrder: config.SummaryOrderRules,
	}
}
