// Package runner provides multi-file linting orchestration.
package runner

import "github.com/yaklabco/mkdlint/pkg/config"

// Options controls a multi-file run: what to scan, how to scan it, and how
// much concurrency to use.
type Options struct {
	// Paths are the user-specified files/directories to process. Empty
	// means the current working directory.
	Paths []string

	// WorkingDir resolves relative Paths. Empty means the process's
	// current working directory.
	WorkingDir string

	// Extensions lists the lowercase, dot-prefixed file extensions treated
	// as Markdown. Empty defaults to DefaultExtensions().
	Extensions []string

	// IncludeGlobs are extra glob patterns to include, relative to
	// WorkingDir. Empty means "everything matching Extensions".
	IncludeGlobs []string

	// ExcludeGlobs skip matching files or directories; config and CLI
	// ignore rules are merged into this slice before a run starts.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed
	// during discovery.
	FollowSymlinks bool

	// Jobs caps concurrent workers. 0 or negative means "one per CPU".
	Jobs int

	// Config is this run's resolved configuration.
	Config *config.Config
}

// DefaultExtensions returns the Markdown file extensions scanned when
// Options.Extensions is empty.
func DefaultExtensions() []string {
	return []string{".md", ".markdown"}
}

// effectiveExtensions is o.Extensions, or DefaultExtensions() if unset.
func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

// effectivePaths is o.Paths, or {"."} if unset.
func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}
