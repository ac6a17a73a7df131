package lspserver

import (
	"context"
	"strings"
	"sync"

	"github.com/yaklabco/mkdlint/pkg/config"
)

// workspaceConfig caches the resolved configuration for one workspace root,
// invalidated on workspace/didChangeWatchedFiles notifications so edits to
// .mkdlintrc.yml (or similar) on disk take effect without a client restart.
type workspaceConfig struct {
	mu    sync.RWMutex
	roots []string
	cache map[string]*config.Config
}

func newWorkspaceConfig() *workspaceConfig {
	return &workspaceConfig{cache: make(map[string]*config.Config)}
}

// setRoots records the workspace folders reported at initialize, used to
// pick the right root for a document that isn't directly under one.
func (w *workspaceConfig) setRoots(roots []string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.roots = roots
}

// rootFor returns the longest workspace root containing path, or "" if no
// root was advertised or none contains it (configFor then falls back to the
// document's own directory).
func (w *workspaceConfig) rootFor(path string) string {
	w.mu.RLock()
	defer w.mu.RUnlock()

	best := ""
	for _, root := range w.roots {
		if strings.HasPrefix(path, root) && len(root) > len(best) {
			best = root
		}
	}
	return best
}

// configFor resolves (and caches) the configuration governing uri, rooted at
// its workspace folder.
func (s *Server) configFor(uri string) *config.Config {
	path := uriToPath(uri)
	root := s.workspace.rootFor(path)
	if root == "" {
		root = dirOf(uri)
	}

	s.workspace.mu.RLock()
	cfg, ok := s.workspace.cache[root]
	s.workspace.mu.RUnlock()
	if ok {
		return cfg
	}

	cfg = loadWorkspaceConfig(context.Background(), root)

	s.workspace.mu.Lock()
	s.workspace.cache[root] = cfg
	s.workspace.mu.Unlock()

	return cfg
}

// invalidateConfig drops the cached configuration for every known root, so
// the next lint re-resolves it from disk.
func (s *Server) invalidateConfig() {
	s.workspace.mu.Lock()
	defer s.workspace.mu.Unlock()
	s.workspace.cache = make(map[string]*config.Config)
}

// handleDidChangeWatchedFiles invalidates cached config and re-lints every
// open document, so edits to a config file on disk take effect immediately.
func (s *Server) handleDidChangeWatchedFiles(ctx context.Context) {
	s.invalidateConfig()
	for _, doc := range s.documents.All() {
		s.publishDiagnostics(ctx, doc)
	}
}
