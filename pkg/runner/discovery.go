package runner

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Discover walks opts' target paths under its working directory and returns
// a deduplicated, deterministically sorted list of absolute paths to every
// Markdown file found.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	extensions := opts.effectiveExtensions()
	seen := make(map[string]struct{})
	var files []string

	add := func(path string) {
		if _, dup := seen[path]; dup {
			return
		}
		seen[path] = struct{}{}
		files = append(files, path)
	}

	for _, inputPath := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		absPath := inputPath
		if !filepath.IsAbs(absPath) {
			absPath = filepath.Join(workDir, absPath)
		}
		absPath = filepath.Clean(absPath)

		info, err := os.Stat(absPath)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", inputPath, err)
		}

		if !info.IsDir() {
			if matchesFile(absPath, workDir, extensions, opts) {
				add(absPath)
			}
			continue
		}

		found, err := walkDirectory(ctx, absPath, workDir, extensions, opts)
		if err != nil {
			return nil, err
		}
		for _, f := range found {
			add(f)
		}
	}

	sort.Strings(files)
	return files, nil
}

// resolveWorkDir returns the absolute form of workDir, or the process's
// current directory when workDir is empty.
func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	abs, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return abs, nil
}

// walkDirectory recursively collects matching files under root, honoring
// hidden-entry skipping, exclude globs, and (for directory symlinks)
// opts.FollowSymlinks.
func walkDirectory(ctx context.Context, root, workDir string, extensions []string, opts Options) ([]string, error) {
	var files []string

	walkErr := filepath.WalkDir(root, func(path string, entry fs.DirEntry, err error) error {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return ctxErr
		}
		if err != nil {
			if os.IsPermission(err) {
				return nil
			}
			return err
		}

		relPath, relErr := filepath.Rel(workDir, path)
		if relErr != nil {
			relPath = path
		}

		if entry.IsDir() {
			if path != root && isHidden(entry.Name()) {
				return filepath.SkipDir
			}
			if matchesAny(relPath, opts.ExcludeGlobs) {
				return filepath.SkipDir
			}
			return nil
		}

		if entry.Type()&fs.ModeSymlink != 0 {
			resolved, handled, err := followSymlink(ctx, path, workDir, extensions, opts)
			if err != nil {
				return err
			}
			if handled {
				files = append(files, resolved...)
				return nil
			}
			// Not a directory symlink (or following is disabled and target
			// is a plain file): fall through to the regular file checks.
		}

		if isHidden(entry.Name()) {
			return nil
		}
		if matchesFile(path, workDir, extensions, opts) {
			files = append(files, path)
		}
		return nil
	})
	if walkErr != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, walkErr)
	}

	return files, nil
}

// followSymlink resolves a symlink encountered during the walk. When it
// points at a directory, handled is true and resolved carries every match
// found by recursing into the real target (skipped entirely when
// opts.FollowSymlinks is false). When it points at a file, or is broken,
// handled is false so the caller treats path like a normal entry.
func followSymlink(ctx context.Context, path, workDir string, extensions []string, opts Options) (resolved []string, handled bool, err error) {
	realPath, evalErr := filepath.EvalSymlinks(path)
	if evalErr != nil {
		return nil, false, nil //nolint:nilerr // broken symlinks are skipped silently
	}
	info, statErr := os.Stat(realPath)
	if statErr != nil {
		return nil, false, nil //nolint:nilerr // inaccessible symlink targets are skipped silently
	}
	if !info.IsDir() {
		return nil, false, nil
	}
	if !opts.FollowSymlinks {
		return nil, true, nil
	}
	// Walk the resolved target, not the symlink itself: filepath.WalkDir
	// lstats its root, so recursing on path here would just find the same
	// symlink again.
	found, err := walkDirectory(ctx, realPath, workDir, extensions, opts)
	return found, true, err
}

func isHidden(name string) bool {
	return strings.HasPrefix(name, ".")
}

// matchesFile reports whether path satisfies opts' extension, exclude, and
// (if present) include criteria.
func matchesFile(path, workDir string, extensions []string, opts Options) bool {
	if !hasMatchingExtension(path, extensions) {
		return false
	}

	relPath, err := filepath.Rel(workDir, path)
	if err != nil {
		relPath = path
	}

	if matchesAny(relPath, opts.ExcludeGlobs) {
		return false
	}
	if len(opts.IncludeGlobs) > 0 && !matchesAny(relPath, opts.IncludeGlobs) {
		return false
	}
	return true
}

func hasMatchingExtension(path string, extensions []string) bool {
	ext := strings.ToLower(filepath.Ext(path))
	for _, candidate := range extensions {
		if strings.ToLower(candidate) == ext {
			return true
		}
	}
	return false
}

// matchesAny reports whether relPath matches any of patterns.
func matchesAny(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matchGlob(relPath, pattern) {
			return true
		}
	}
	return false
}

// matchGlob matches path against pattern, supporting plain filepath.Match
// globs ("*.md") as well as "**" segments for recursive matching
// ("docs/**", "**/vendor").
func matchGlob(path, pattern string) bool {
	path = filepath.ToSlash(path)
	pattern = filepath.ToSlash(pattern)

	if strings.Contains(pattern, "**") {
		return matchDoubleStar(path, pattern)
	}

	if ok, _ := filepath.Match(pattern, path); ok {
		return true
	}
	ok, _ := filepath.Match(pattern, filepath.Base(path))
	return ok
}

// matchDoubleStar implements the "**" extension to filepath.Match for the
// three shapes that matter in practice: "**/suffix", "prefix/**", and
// "prefix/**/suffix". A bare "**" (or any other arrangement) degrades to
// prefix/suffix containment checks.
func matchDoubleStar(path, pattern string) bool {
	segments := strings.SplitN(pattern, "**", 2)
	if len(segments) == 1 {
		ok, _ := filepath.Match(pattern, path)
		return ok
	}
	prefix := strings.TrimSuffix(segments[0], "/")
	suffix := strings.TrimPrefix(segments[1], "/")

	if prefix == "" && suffix == "" {
		return true // bare "**" matches everything
	}

	if prefix == "" {
		return matchesAnywhere(path, suffix)
	}

	if suffix == "" {
		return path == prefix || strings.HasPrefix(path, prefix+"/")
	}

	if !strings.HasPrefix(path, prefix) {
		return false
	}
	if strings.HasSuffix(path, suffix) {
		return true
	}
	ok, _ := filepath.Match(suffix, filepath.Base(path))
	return ok
}

// matchesAnywhere reports whether suffix matches the tail of path, any one
// of its path components, or appears as a substring — the three ways a
// "**/suffix" pattern is used in practice (a file name, a directory name
// anywhere in the tree, or a path fragment).
func matchesAnywhere(path, suffix string) bool {
	if strings.HasSuffix(path, suffix) || strings.Contains(path, suffix) {
		return true
	}
	for _, component := range strings.Split(path, "/") {
		if ok, _ := filepath.Match(suffix, component); ok {
			return true
		}
	}
	return false
}
