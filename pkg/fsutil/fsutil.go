// Package fsutil provides file system utilities and safety primitives for mkdlint.
// It handles atomic writes, content hashing, modification detection, and backups.
package fsutil

import (
	"context"
	"crypto/sha256"
	"errors"
	"fmt"
	"os"
	"time"
)

// Sentinel errors for error categorization via errors.Is.
var (
	ErrNilFileInfo      = errors.New("nil FileInfo")
	ErrNotFound         = errors.New("file not found")
	ErrPermissionDenied = errors.New("permission denied")
	ErrIsDirectory      = errors.New("path is a directory")
)

// FileInfo is a snapshot of a file's stat metadata and content hash at one
// point in time, used by CheckModified/CheckModifiedQuick to detect
// concurrent external edits during the fix-apply pipeline.
type FileInfo struct {
	Path    string
	Mode    os.FileMode
	ModTime time.Time
	Size    int64
	Hash    [32]byte
}

// ReadFile reads path and returns its content plus a FileInfo snapshot
// suitable for a later CheckModified/CheckModifiedQuick call.
func ReadFile(ctx context.Context, path string) ([]byte, *FileInfo, error) {
	if err := ctxErr(ctx, "read file"); err != nil {
		return nil, nil, err
	}

	stat, err := statFile(path)
	if err != nil {
		return nil, nil, err
	}
	if stat.IsDir() {
		return nil, nil, fmt.Errorf("%w: %s", ErrIsDirectory, path)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		if os.IsPermission(err) {
			return nil, nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
		}
		return nil, nil, fmt.Errorf("read %s: %w", path, err)
	}

	return content, &FileInfo{
		Path:    path,
		Mode:    stat.Mode(),
		ModTime: stat.ModTime(),
		Size:    stat.Size(),
		Hash:    sha256.Sum256(content),
	}, nil
}

// CheckModified reports whether the file at info.Path has changed since
// info was captured. It first compares mod time and size (cheap, catches
// most edits) and only re-reads and re-hashes the content when those still
// match, to rule out a same-size edit landing in the same stat tick.
func CheckModified(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctxErr(ctx, "check modified"); err != nil {
		return false, err
	}

	changed, err := statChanged(info)
	if err != nil || changed {
		return changed, err
	}

	content, err := os.ReadFile(info.Path)
	if err != nil {
		return false, fmt.Errorf("read %s: %w", info.Path, err)
	}
	return sha256.Sum256(content) != info.Hash, nil
}

// CheckModifiedQuick is CheckModified without the content re-hash: it
// trusts mod time and size, accepting the small false-negative risk in
// exchange for avoiding a re-read.
func CheckModifiedQuick(ctx context.Context, info *FileInfo) (bool, error) {
	if info == nil {
		return false, ErrNilFileInfo
	}
	if err := ctxErr(ctx, "check modified"); err != nil {
		return false, err
	}

	return statChanged(info)
}

// statChanged stats info.Path and reports whether its mod time or size
// differs from the snapshot, treating a deleted file as changed.
func statChanged(info *FileInfo) (bool, error) {
	stat, err := statFile(info.Path)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return true, nil
		}
		return false, err
	}
	return !stat.ModTime().Equal(info.ModTime) || stat.Size() != info.Size, nil
}

// statFile wraps os.Stat, translating not-found/permission errors to this
// package's sentinels.
func statFile(path string) (os.FileInfo, error) {
	stat, err := os.Stat(path)
	switch {
	case err == nil:
		return stat, nil
	case os.IsNotExist(err):
		return nil, fmt.Errorf("%w: %s: %w", ErrNotFound, path, err)
	case os.IsPermission(err):
		return nil, fmt.Errorf("%w: %s: %w", ErrPermissionDenied, path, err)
	default:
		return nil, fmt.Errorf("stat %s: %w", path, err)
	}
}

// ctxErr returns a wrapped error naming op if ctx is already done.
func ctxErr(ctx context.Context, op string) error {
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
		return nil
	}
}
