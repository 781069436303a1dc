// Package filesystem classifies and lists filesystem entries for the mapper.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/taigrr/foldermap/internal/types"
)

// Service provides the stat and readdir primitives the mapper relies on.
type Service struct {
	rootPath string
	fs       afero.Fs

	// confined services never follow symlinks.
	confined bool
}

// New creates a Service over fsys. rootPath bounds ResolvePath; it does not
// restrict Classify or ReadDir. A nil fsys means the OS filesystem.
func New(rootPath string, fsys afero.Fs) *Service {
	if fsys == nil {
		fsys = afero.NewOsFs()
	}
	absPath, err := filepath.Abs(rootPath)
	if err != nil {
		absPath = filepath.Clean(rootPath)
	}
	return &Service{
		rootPath: absPath,
		fs:       fsys,
	}
}

// NewConfined creates a Service that keeps every lookup inside rootPath:
// ResolvePath rejects paths that pass through a symlink, and Classify reports
// symlinks as files instead of following them, so their targets are never
// listed.
func NewConfined(rootPath string, fsys afero.Fs) *Service {
	s := New(rootPath, fsys)
	s.confined = true
	return s
}

// RootPath returns the absolute root the service was created with.
func (s *Service) RootPath() string {
	return s.rootPath
}

// ResolvePath resolves a path relative to the root and rejects anything that
// escapes it.
func (s *Service) ResolvePath(relativePath string) (string, error) {
	relativePath = strings.TrimSpace(relativePath)
	if relativePath == "." {
		relativePath = ""
	}
	relativePath = strings.TrimPrefix(relativePath, "/")

	absPath, err := filepath.Abs(filepath.Join(s.rootPath, relativePath))
	if err != nil {
		return "", err
	}

	relPath, err := filepath.Rel(s.rootPath, absPath)
	if err != nil {
		return "", err
	}
	if relPath == ".." || strings.HasPrefix(relPath, ".."+string(filepath.Separator)) {
		return "", fmt.Errorf("path traversal not allowed: %s", relativePath)
	}

	if s.confined {
		if err := s.checkNoSymlinks(relPath); err != nil {
			return "", err
		}
	}

	return absPath, nil
}

// checkNoSymlinks rejects relPath when any existing component under the root
// is a symlink.
func (s *Service) checkNoSymlinks(relPath string) error {
	if relPath == "." {
		return nil
	}
	current := s.rootPath
	for _, part := range strings.Split(relPath, string(filepath.Separator)) {
		current = filepath.Join(current, part)
		info, err := s.stat(current)
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		if err != nil {
			return pathError("stat", current, err)
		}
		if info.Mode()&fs.ModeSymlink != 0 {
			return fmt.Errorf("symlink not allowed: %s", relPath)
		}
	}
	return nil
}

// Classify reports whether path is a folder or a file. Symlinks are
// followed unless the service is confined, in which case a symlink is a
// file. A missing or unreadable path is an error.
func (s *Service) Classify(path string) (types.EntryType, error) {
	info, err := s.stat(path)
	if err != nil {
		return types.File, pathError("stat", path, err)
	}
	if info.IsDir() {
		return types.Folder, nil
	}
	return types.File, nil
}

func (s *Service) stat(path string) (fs.FileInfo, error) {
	if s.confined {
		if lstater, ok := s.fs.(afero.Lstater); ok {
			info, _, err := lstater.LstatIfPossible(path)
			return info, err
		}
	}
	return s.fs.Stat(path)
}

// ClassifyContext is Classify for callers running under a context; it fails
// without touching the filesystem once ctx is done.
func (s *Service) ClassifyContext(ctx context.Context, path string) (types.EntryType, error) {
	if err := ctx.Err(); err != nil {
		return types.File, fmt.Errorf("classify %s: %w", path, err)
	}
	return s.Classify(path)
}

// ReadDir returns the raw names of the immediate children of path, sorted by
// name.
func (s *Service) ReadDir(path string) ([]string, error) {
	infos, err := afero.ReadDir(s.fs, path)
	if err != nil {
		return nil, pathError("read directory", path, err)
	}

	names := make([]string, 0, len(infos))
	for _, info := range infos {
		names = append(names, info.Name())
	}
	return names, nil
}

// ReadDirContext is ReadDir for callers running under a context.
func (s *Service) ReadDirContext(ctx context.Context, path string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("read directory %s: %w", path, err)
	}
	return s.ReadDir(path)
}

func pathError(op, path string, err error) error {
	if errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("no such file or directory: %s: %w", path, err)
	}
	if errors.Is(err, fs.ErrPermission) {
		return fmt.Errorf("permission denied: %s: %w", path, err)
	}
	return fmt.Errorf("failed to %s: %s - %w", op, path, err)
}
