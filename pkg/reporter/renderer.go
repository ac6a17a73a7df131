package reporter

import (
	"context"

	"github.com/yaklabco/mkdlint/pkg/analysis"
)

// Renderer writes a finished analysis.Report to its configured destination.
// Implementations hold no mutable state beyond their Options.
type Renderer interface {
	Render(ctx context.Context, report *analysis.Report) error
}
