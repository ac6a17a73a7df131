// Package mdast is the Markdown AST representation shared by the parser,
// linter, and fixer. Its Parser interface lives in pkg/lint instead, since
// the consumer of a parsing abstraction should be the one to define it.
package mdast
