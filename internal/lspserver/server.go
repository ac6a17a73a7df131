// Package lspserver implements a Language Server Protocol server for
// mkdlint. It reuses the same lint engine as the CLI (goldmark parser,
// rule registry, config resolver) to provide live diagnostics and quick-fix
// code actions over stdio.
//
// Transport: stdio only (--stdio).
// Protocol: LSP 3.17 subset via internal/lsp/protocol, JSON-RPC via
// golang.org/x/exp/jsonrpc2.
package lspserver

import (
	"context"
	stdjson "encoding/json"
	"io"
	"log"
	"os"

	"golang.org/x/exp/jsonrpc2"

	"github.com/yaklabco/mkdlint/internal/lsp/protocol"
	"github.com/yaklabco/mkdlint/pkg/config"
)

const serverName = "mkdlint"

// fixAllCommand is the custom workspace command clients can invoke to apply
// every available auto-fix in a document.
const fixAllCommand = "mkdlint.fixAll"

// jsonNull is an explicit JSON null value for call results.
// golang.org/x/exp/jsonrpc2 treats (nil, nil) as "no response" for calls,
// so handlers that must reply with JSON null return this instead.
var jsonNull = stdjson.RawMessage("null")

// Server is the mkdlint LSP server.
type Server struct {
	conn   *jsonrpc2.Connection
	exitCh chan struct{}

	documents *DocumentStore
	lint      *lintService
	diagCache *diagnosticCache
	workspace *workspaceConfig
	debounce  *debouncer
}

// New creates a new LSP server. The lint service parses with the default
// CommonMark flavor; a workspace's actual flavor preference (set via its
// config file) governs rule configuration but not parsing, since the parser
// is built once at server startup rather than per workspace.
func New() *Server {
	return &Server{
		exitCh:    make(chan struct{}),
		documents: NewDocumentStore(),
		lint:      newLintService(config.FlavorCommonMark),
		diagCache: newDiagnosticCache(),
		workspace: newWorkspaceConfig(),
		debounce:  newDebouncer(),
	}
}

// RunStdio starts the LSP server on stdin/stdout. It blocks until the
// connection is closed or the context is cancelled.
func (s *Server) RunStdio(ctx context.Context) error {
	conn, err := jsonrpc2.Dial(ctx, stdioDialer{}, &serverBinder{server: s})
	if err != nil {
		return err
	}

	done := make(chan struct{})
	go func() {
		select {
		case <-ctx.Done():
			_ = conn.Close()
		case <-s.exitCh:
			_ = conn.Close()
		case <-done:
		}
	}()
	defer close(done)

	return conn.Wait()
}

// serverBinder binds a JSON-RPC connection to the server's dispatch handler.
type serverBinder struct {
	server *Server
}

func (b *serverBinder) Bind(_ context.Context, conn *jsonrpc2.Connection) (jsonrpc2.ConnectionOptions, error) {
	b.server.conn = conn
	return jsonrpc2.ConnectionOptions{
		Framer:  jsonrpc2.HeaderFramer(),
		Handler: jsonrpc2.HandlerFunc(b.server.handle),
	}, nil
}

// handle dispatches incoming JSON-RPC messages to the appropriate handler.
func (s *Server) handle(ctx context.Context, req *jsonrpc2.Request) (any, error) {
	switch req.Method {
	case "initialize":
		return unmarshalAndCall(req, s.handleInitialize)
	case "initialized", "$/setTrace":
		return nil, nil //nolint:nilnil // LSP: notifications have no result
	case "shutdown":
		return jsonNull, nil
	case "exit":
		select {
		case <-s.exitCh:
		default:
			close(s.exitCh)
		}
		return nil, nil //nolint:nilnil // LSP: exit is a notification

	case "textDocument/didOpen":
		return nil, unmarshalAndNotify(req, func(p *protocol.DidOpenTextDocumentParams) {
			s.handleDidOpen(ctx, p)
		})
	case "textDocument/didChange":
		return nil, unmarshalAndNotify(req, func(p *protocol.DidChangeTextDocumentParams) {
			s.handleDidChange(ctx, p)
		})
	case "textDocument/didSave":
		return nil, unmarshalAndNotify(req, func(p *protocol.DidSaveTextDocumentParams) {
			s.handleDidSave(ctx, p)
		})
	case "textDocument/didClose":
		return nil, unmarshalAndNotify(req, func(p *protocol.DidCloseTextDocumentParams) {
			s.handleDidClose(ctx, p)
		})

	case "textDocument/codeAction":
		return unmarshalAndCall(req, s.handleCodeAction)
	case "textDocument/diagnostic":
		return unmarshalAndCall(req, s.handleDiagnostic)
	case "textDocument/hover":
		return unmarshalAndCall(req, s.handleHover)
	case "textDocument/documentSymbol":
		return unmarshalAndCall(req, s.handleDocumentSymbol)
	case "textDocument/completion":
		return unmarshalAndCall(req, s.handleCompletion)

	case "workspace/executeCommand":
		return unmarshalAndCall(req, func(p *protocol.ExecuteCommandParams) (any, error) {
			return s.handleExecuteCommand(ctx, p)
		})
	case "workspace/didChangeWatchedFiles":
		return nil, unmarshalAndNotify(req, func(_ *protocol.DidChangeWatchedFilesParams) {
			s.handleDidChangeWatchedFiles(ctx)
		})

	default:
		return nil, jsonrpc2.NewError(protocol.ErrorCodeMethodNotFound, "method not supported: "+req.Method)
	}
}

// unmarshalAndCall unmarshals request params into T and calls fn, wrapping
// the result for the jsonrpc2 transport.
func unmarshalAndCall[T any](req *jsonrpc2.Request, fn func(*T) (any, error)) (any, error) {
	var params T
	if len(req.Params) > 0 {
		if err := stdjson.Unmarshal(req.Params, &params); err != nil {
			return nil, jsonrpc2.NewError(protocol.ErrorCodeInvalidParams, err.Error())
		}
	}
	result, err := fn(&params)
	if err != nil {
		return nil, err
	}
	if result == nil {
		return jsonNull, nil
	}
	raw, merr := stdjson.Marshal(result)
	if merr != nil {
		return nil, merr
	}
	return stdjson.RawMessage(raw), nil
}

// unmarshalAndNotify unmarshals request params into T and calls fn (for
// notifications, which have no result).
func unmarshalAndNotify[T any](req *jsonrpc2.Request, fn func(*T)) error {
	var params T
	if len(req.Params) > 0 {
		if err := stdjson.Unmarshal(req.Params, &params); err != nil {
			return jsonrpc2.NewError(protocol.ErrorCodeInvalidParams, err.Error())
		}
	}
	fn(&params)
	return nil
}

// lspNotify marshals params and sends a notification over conn.
func lspNotify(ctx context.Context, conn *jsonrpc2.Connection, method string, params any) error {
	raw, err := stdjson.Marshal(params)
	if err != nil {
		return err
	}
	return conn.Notify(ctx, method, stdjson.RawMessage(raw))
}

// handleInitialize responds with the server's capabilities.
func (s *Server) handleInitialize(params *protocol.InitializeParams) (any, error) {
	log.Printf("lsp: initialize from %s", clientInfoString(params))

	s.workspace.setRoots(workspaceRootsFromParams(params))

	return &protocol.InitializeResult{
		Capabilities: protocol.ServerCapabilities{
			TextDocumentSync: &protocol.TextDocumentSyncOptions{
				OpenClose: true,
				Change:    protocol.TextDocumentSyncKindFull,
				Save:      &protocol.SaveOptions{IncludeText: true},
			},
			CodeActionProvider: &protocol.CodeActionOptions{
				CodeActionKinds: []protocol.CodeActionKind{
					protocol.CodeActionKindQuickFix,
					protocol.CodeActionKindSourceFixAll,
				},
			},
			DiagnosticProvider: &protocol.DiagnosticOptions{
				Identifier: serverName,
			},
			ExecuteCommandProvider: &protocol.ExecuteCommandOptions{
				Commands: []string{fixAllCommand},
			},
			DocumentSymbolProvider: true,
			HoverProvider:          true,
			CompletionProvider: &protocol.CompletionOptions{
				TriggerCharacters: []string{"{", ":", "#", "."},
			},
		},
		ServerInfo: &protocol.ServerInfo{
			Name:    serverName,
			Version: "0.1.0",
		},
	}, nil
}

// workspaceRootsFromParams extracts workspace folder paths from the
// initialize request, falling back to rootUri on older clients that don't
// send workspaceFolders.
func workspaceRootsFromParams(params *protocol.InitializeParams) []string {
	if params == nil {
		return nil
	}
	if len(params.WorkspaceFolders) > 0 {
		roots := make([]string, 0, len(params.WorkspaceFolders))
		for _, f := range params.WorkspaceFolders {
			roots = append(roots, uriToPath(string(f.URI)))
		}
		return roots
	}
	if params.RootURI != nil {
		return []string{uriToPath(*params.RootURI)}
	}
	return nil
}

// handleDidOpen lints the opened document immediately, cancelling any
// leftover debounce from a previous session for the same URI.
func (s *Server) handleDidOpen(ctx context.Context, params *protocol.DidOpenTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	s.debounce.cancel(uri)
	s.documents.Open(uri, params.TextDocument.Version, params.TextDocument.Text)
	if doc := s.documents.Get(uri); doc != nil {
		s.publishDiagnostics(ctx, doc)
	}
}

// handleDidChange updates the document and schedules a debounced re-lint, so
// a fast typist doesn't trigger a lint pass per keystroke. Each call
// supersedes any pending debounce for uri; the fired callback always reads
// the document's latest text via s.documents.Get rather than closing over
// params, so it never re-lints a superseded edit.
func (s *Server) handleDidChange(ctx context.Context, params *protocol.DidChangeTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	for _, change := range params.ContentChanges {
		s.documents.Update(uri, params.TextDocument.Version, change.Text)
	}
	s.debounce.schedule(uri, func() {
		if doc := s.documents.Get(uri); doc != nil {
			s.publishDiagnostics(context.Background(), doc)
		}
	})
}

// handleDidSave cancels any pending debounce and re-lints immediately.
func (s *Server) handleDidSave(ctx context.Context, params *protocol.DidSaveTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	s.debounce.cancel(uri)
	if params.Text != nil && *params.Text != "" {
		s.documents.Update(uri, 0, *params.Text)
	}
	if doc := s.documents.Get(uri); doc != nil {
		s.publishDiagnostics(ctx, doc)
	}
}

// handleDidClose drops debounce state, clears diagnostics, and removes the
// document.
func (s *Server) handleDidClose(ctx context.Context, params *protocol.DidCloseTextDocumentParams) {
	uri := string(params.TextDocument.URI)
	s.debounce.forget(uri)
	s.documents.Close(uri)
	clearDiagnostics(ctx, s.conn, uri)
}

// clientInfoString formats client info for logging.
func clientInfoString(params *protocol.InitializeParams) string {
	if params == nil || params.ClientInfo == nil {
		return "unknown"
	}
	return params.ClientInfo.Name
}

// stdioDialer implements jsonrpc2.Dialer for stdin/stdout communication.
// It uses an io.Pipe intermediary so Close reliably interrupts a blocked
// read on stdin across platforms.
type stdioDialer struct{}

func (stdioDialer) Dial(_ context.Context) (io.ReadWriteCloser, error) {
	pr, pw := io.Pipe()
	go func() { _, _ = io.Copy(pw, os.Stdin) }()
	return &stdioRWC{pr: pr, pw: pw}, nil
}

// stdioRWC reads from an io.Pipe (fed by os.Stdin) and writes to os.Stdout.
type stdioRWC struct {
	pr *io.PipeReader
	pw *io.PipeWriter
}

func (s *stdioRWC) Read(p []byte) (int, error)  { return s.pr.Read(p) }
func (s *stdioRWC) Write(p []byte) (int, error) { return os.Stdout.Write(p) }
func (s *stdioRWC) Close() error {
	_ = s.pw.Close()
	return s.pr.Close()
}
