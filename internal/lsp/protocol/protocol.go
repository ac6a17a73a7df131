// Package protocol defines the subset of LSP 3.17 JSON-RPC types mkdlint's
// language server needs: document lifecycle, diagnostics, code actions, and
// workspace command execution. It deliberately covers only the methods the
// server implements rather than the full specification.
package protocol

// DocumentUri is a URI identifying a text document, typically file://...
type DocumentUri string

// Position is a zero-based line/character offset within a document.
type Position struct {
	Line      uint32 `json:"line"`
	Character uint32 `json:"character"`
}

// Range is a start/end pair of Positions.
type Range struct {
	Start Position `json:"start"`
	End   Position `json:"end"`
}

// DiagnosticSeverity mirrors the LSP severity enum.
type DiagnosticSeverity int

// Diagnostic severities, in LSP's fixed numeric encoding.
const (
	DiagnosticSeverityError       DiagnosticSeverity = 1
	DiagnosticSeverityWarning     DiagnosticSeverity = 2
	DiagnosticSeverityInformation DiagnosticSeverity = 3
	DiagnosticSeverityHint        DiagnosticSeverity = 4
)

// Diagnostic is a single LSP diagnostic entry.
type Diagnostic struct {
	Range    Range               `json:"range"`
	Severity *DiagnosticSeverity `json:"severity,omitempty"`
	Code     string              `json:"code,omitempty"`
	Source   string              `json:"source,omitempty"`
	Message  string              `json:"message"`
}

// TextDocumentItem describes a document as sent by didOpen.
type TextDocumentItem struct {
	URI        DocumentUri `json:"uri"`
	LanguageID string      `json:"languageId"`
	Version    int32       `json:"version"`
	Text       string      `json:"text"`
}

// TextDocumentIdentifier identifies a document by URI alone.
type TextDocumentIdentifier struct {
	URI DocumentUri `json:"uri"`
}

// VersionedTextDocumentIdentifier adds a version number to the identifier.
type VersionedTextDocumentIdentifier struct {
	URI     DocumentUri `json:"uri"`
	Version int32       `json:"version"`
}

// TextDocumentContentChangeEvent describes one incremental or full change.
// mkdlint's server advertises full sync, so Text always holds the whole
// document.
type TextDocumentContentChangeEvent struct {
	Text string `json:"text"`
}

// DidOpenTextDocumentParams is sent on textDocument/didOpen.
type DidOpenTextDocumentParams struct {
	TextDocument TextDocumentItem `json:"textDocument"`
}

// DidChangeTextDocumentParams is sent on textDocument/didChange.
type DidChangeTextDocumentParams struct {
	TextDocument   VersionedTextDocumentIdentifier  `json:"textDocument"`
	ContentChanges []TextDocumentContentChangeEvent `json:"contentChanges"`
}

// DidSaveTextDocumentParams is sent on textDocument/didSave.
type DidSaveTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Text         *string                `json:"text,omitempty"`
}

// DidCloseTextDocumentParams is sent on textDocument/didClose.
type DidCloseTextDocumentParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// PublishDiagnosticsParams is sent server->client to push diagnostics.
type PublishDiagnosticsParams struct {
	URI         DocumentUri  `json:"uri"`
	Version     *int32       `json:"version,omitempty"`
	Diagnostics []Diagnostic `json:"diagnostics"`
}

// ClientInfo identifies the connecting client.
type ClientInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// InitializeParams is sent on the initialize request.
type InitializeParams struct {
	ProcessID        *int64            `json:"processId,omitempty"`
	ClientInfo       *ClientInfo       `json:"clientInfo,omitempty"`
	RootURI          *string           `json:"rootUri,omitempty"`
	WorkspaceFolders []WorkspaceFolder `json:"workspaceFolders,omitempty"`
}

// TextDocumentSyncKind describes how document text is synchronized.
type TextDocumentSyncKind int

// Full sync is the only mode mkdlint's server advertises.
const TextDocumentSyncKindFull TextDocumentSyncKind = 1

// SaveOptions controls whether didSave includes document text.
type SaveOptions struct {
	IncludeText bool `json:"includeText"`
}

// TextDocumentSyncOptions advertises sync behavior in ServerCapabilities.
type TextDocumentSyncOptions struct {
	OpenClose bool                 `json:"openClose"`
	Change    TextDocumentSyncKind `json:"change"`
	Save      *SaveOptions         `json:"save,omitempty"`
}

// CodeActionKind names a category of code action.
type CodeActionKind string

// Code action kinds mkdlint's server offers.
const (
	CodeActionKindQuickFix     CodeActionKind = "quickfix"
	CodeActionKindSourceFixAll CodeActionKind = "source.fixAll.mkdlint"
)

// CodeActionOptions advertises which code action kinds are supported.
type CodeActionOptions struct {
	CodeActionKinds []CodeActionKind `json:"codeActionKinds,omitempty"`
}

// DiagnosticOptions advertises pull-diagnostic support.
type DiagnosticOptions struct {
	Identifier string `json:"identifier,omitempty"`
}

// ExecuteCommandOptions advertises workspace/executeCommand support.
type ExecuteCommandOptions struct {
	Commands []string `json:"commands"`
}

// ServerInfo identifies the server in InitializeResult.
type ServerInfo struct {
	Name    string `json:"name"`
	Version string `json:"version,omitempty"`
}

// ServerCapabilities lists the features mkdlint's language server supports.
type ServerCapabilities struct {
	TextDocumentSync       *TextDocumentSyncOptions `json:"textDocumentSync,omitempty"`
	CodeActionProvider     *CodeActionOptions       `json:"codeActionProvider,omitempty"`
	DiagnosticProvider     *DiagnosticOptions       `json:"diagnosticProvider,omitempty"`
	ExecuteCommandProvider *ExecuteCommandOptions   `json:"executeCommandProvider,omitempty"`
	DocumentSymbolProvider bool                     `json:"documentSymbolProvider,omitempty"`
	HoverProvider          bool                     `json:"hoverProvider,omitempty"`
	CompletionProvider     *CompletionOptions       `json:"completionProvider,omitempty"`
}

// InitializeResult is the response to the initialize request.
type InitializeResult struct {
	Capabilities ServerCapabilities `json:"capabilities"`
	ServerInfo   *ServerInfo        `json:"serverInfo,omitempty"`
}

// CodeActionContext carries the diagnostics active at the requested range.
type CodeActionContext struct {
	Diagnostics []Diagnostic     `json:"diagnostics"`
	Only        []CodeActionKind `json:"only,omitempty"`
}

// CodeActionParams is sent on textDocument/codeAction.
type CodeActionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Range        Range                  `json:"range"`
	Context      CodeActionContext      `json:"context"`
}

// TextEdit replaces the text within Range with NewText.
type TextEdit struct {
	Range   Range  `json:"range"`
	NewText string `json:"newText"`
}

// WorkspaceEdit is a set of per-document text edits to apply on the client.
type WorkspaceEdit struct {
	Changes map[DocumentUri][]TextEdit `json:"changes,omitempty"`
}

// Command names a server-defined command the client can invoke or a code
// action can carry.
type Command struct {
	Title     string `json:"title"`
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}

// CodeAction is a single quick-fix or source action offered to the client.
type CodeAction struct {
	Title       string          `json:"title"`
	Kind        CodeActionKind  `json:"kind,omitempty"`
	Diagnostics []Diagnostic    `json:"diagnostics,omitempty"`
	Edit        *WorkspaceEdit  `json:"edit,omitempty"`
	Command     *Command        `json:"command,omitempty"`
	IsPreferred bool            `json:"isPreferred,omitempty"`
}

// DocumentDiagnosticParams is sent on textDocument/diagnostic (pull mode).
type DocumentDiagnosticParams struct {
	TextDocument     TextDocumentIdentifier `json:"textDocument"`
	PreviousResultID *string                `json:"previousResultId,omitempty"`
}

// FullDocumentDiagnosticReport carries a complete diagnostic list.
type FullDocumentDiagnosticReport struct {
	Kind     string       `json:"kind"`
	ResultID *string      `json:"resultId,omitempty"`
	Items    []Diagnostic `json:"items"`
}

// ExecuteCommandParams is sent on workspace/executeCommand.
type ExecuteCommandParams struct {
	Command   string `json:"command"`
	Arguments []any  `json:"arguments,omitempty"`
}

// Error codes used in JSON-RPC error responses.
const (
	ErrorCodeMethodNotFound = -32601
	ErrorCodeInvalidParams  = -32602
)

// TextDocumentPositionParams identifies a document and a position within it;
// the shape shared by hover and completion requests.
type TextDocumentPositionParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
	Position     Position               `json:"position"`
}

// MarkupKind names the format of a MarkupContent value.
type MarkupKind string

// Markup kinds mkdlint's server produces.
const (
	MarkupKindPlainText MarkupKind = "plaintext"
	MarkupKindMarkdown  MarkupKind = "markdown"
)

// MarkupContent carries a formatted string, e.g. for hover text.
type MarkupContent struct {
	Kind  MarkupKind `json:"kind"`
	Value string     `json:"value"`
}

// HoverParams is sent on textDocument/hover.
type HoverParams struct {
	TextDocumentPositionParams
}

// Hover is the response to a hover request.
type Hover struct {
	Contents MarkupContent `json:"contents"`
	Range    *Range        `json:"range,omitempty"`
}

// DocumentSymbolParams is sent on textDocument/documentSymbol.
type DocumentSymbolParams struct {
	TextDocument TextDocumentIdentifier `json:"textDocument"`
}

// SymbolKind mirrors the LSP symbol kind enum (only the values mkdlint uses).
type SymbolKind int

// Symbol kinds mkdlint's document outline uses.
const (
	SymbolKindFile   SymbolKind = 1
	SymbolKindString SymbolKind = 15
)

// DocumentSymbol is one entry in a hierarchical document outline.
type DocumentSymbol struct {
	Name           string           `json:"name"`
	Detail         string           `json:"detail,omitempty"`
	Kind           SymbolKind       `json:"kind"`
	Range          Range            `json:"range"`
	SelectionRange Range            `json:"selectionRange"`
	Children       []DocumentSymbol `json:"children,omitempty"`
}

// CompletionContext carries the character that triggered completion, if any.
type CompletionContext struct {
	TriggerCharacter string `json:"triggerCharacter,omitempty"`
}

// CompletionParams is sent on textDocument/completion.
type CompletionParams struct {
	TextDocumentPositionParams
	Context *CompletionContext `json:"context,omitempty"`
}

// CompletionItemKind mirrors the LSP completion item kind enum.
type CompletionItemKind int

// Completion item kinds mkdlint's IAL completion uses.
const (
	CompletionItemKindProperty CompletionItemKind = 10
	CompletionItemKindText     CompletionItemKind = 1
)

// CompletionItem is a single completion suggestion.
type CompletionItem struct {
	Label         string             `json:"label"`
	Kind          CompletionItemKind `json:"kind,omitempty"`
	Detail        string             `json:"detail,omitempty"`
	InsertText    string             `json:"insertText,omitempty"`
	SortText      string             `json:"sortText,omitempty"`
}

// CompletionList is the response to a completion request.
type CompletionList struct {
	IsIncomplete bool             `json:"isIncomplete"`
	Items        []CompletionItem `json:"items"`
}

// CompletionOptions advertises completion trigger characters.
type CompletionOptions struct {
	TriggerCharacters []string `json:"triggerCharacters,omitempty"`
}

// FileChangeType mirrors the LSP file change type enum.
type FileChangeType int

// File change types reported by didChangeWatchedFiles.
const (
	FileChangeTypeCreated FileChangeType = 1
	FileChangeTypeChanged FileChangeType = 2
	FileChangeTypeDeleted FileChangeType = 3
)

// FileEvent describes one change to a watched file.
type FileEvent struct {
	URI  DocumentUri    `json:"uri"`
	Type FileChangeType `json:"type"`
}

// DidChangeWatchedFilesParams is sent on workspace/didChangeWatchedFiles.
type DidChangeWatchedFilesParams struct {
	Changes []FileEvent `json:"changes"`
}

// WorkspaceFolder identifies one root folder in a multi-root workspace.
type WorkspaceFolder struct {
	URI  DocumentUri `json:"uri"`
	Name string      `json:"name"`
}
