package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/yaklabco/mkdlint/internal/lspserver"
)

func newLSPCommand() *cobra.Command {
	var stdio bool

	cmd := &cobra.Command{
		Use:   "lsp",
		Short: "Start the Language Server Protocol server",
		Long: `Start mkdlint as a Language Server Protocol server.

The server communicates over stdin/stdout using LSP 3.17. It tracks open
documents, debounces edits, and publishes diagnostics, code actions, hover,
document symbols, and completion backed by the same lint engine as the
default command.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if !stdio {
				return fmt.Errorf("only --stdio transport is supported")
			}

			server := lspserver.New()
			return server.RunStdio(cmd.Context())
		},
	}

	cmd.Flags().BoolVar(&stdio, "stdio", true, "use stdin/stdout for communication (required)")

	return cmd
}
