package filesystem

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/spf13/afero"

	"github.com/taigrr/foldermap/internal/types"
)

func setupTestTree(t *testing.T) (string, *Service) {
	t.Helper()
	root := filepath.FromSlash("/tree")
	memFs := afero.NewMemMapFs()

	files := []string{"b.md", "a.txt", "sub/c.txt", ".gitkeep"}
	for _, name := range files {
		path := filepath.Join(root, filepath.FromSlash(name))
		if err := afero.WriteFile(memFs, path, []byte("x"), 0o644); err != nil {
			t.Fatalf("Failed to write %s: %v", path, err)
		}
	}
	if err := memFs.MkdirAll(filepath.Join(root, "empty"), 0o755); err != nil {
		t.Fatalf("Failed to create empty dir: %v", err)
	}

	return root, New(root, memFs)
}

func TestService_Classify(t *testing.T) {
	root, svc := setupTestTree(t)

	tests := []struct {
		path string
		want types.EntryType
	}{
		{root, types.Folder},
		{filepath.Join(root, "sub"), types.Folder},
		{filepath.Join(root, "empty"), types.Folder},
		{filepath.Join(root, "a.txt"), types.File},
		{filepath.Join(root, ".gitkeep"), types.File},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			got, err := svc.Classify(tt.path)
			if err != nil {
				t.Fatalf("Classify(%q) error = %v", tt.path, err)
			}
			if got != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.path, got, tt.want)
			}
		})
	}
}

func TestService_ClassifyMissing(t *testing.T) {
	root, svc := setupTestTree(t)
	missing := filepath.Join(root, "not", "exist")

	_, err := svc.Classify(missing)
	if err == nil {
		t.Fatal("Classify() error = nil, want error")
	}
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("errors.Is(err, fs.ErrNotExist) = false for %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q should name the path %q", err.Error(), missing)
	}
}

func TestService_ClassifyContextCancelled(t *testing.T) {
	root, svc := setupTestTree(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.ClassifyContext(ctx, root)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ClassifyContext() error = %v, want context.Canceled", err)
	}
}

func TestService_ReadDir(t *testing.T) {
	root, svc := setupTestTree(t)

	names, err := svc.ReadDir(root)
	if err != nil {
		t.Fatalf("ReadDir() error = %v", err)
	}

	want := []string{".gitkeep", "a.txt", "b.md", "empty", "sub"}
	if !slices.Equal(names, want) {
		t.Errorf("ReadDir() = %v, want %v", names, want)
	}

	names, err = svc.ReadDirContext(context.Background(), filepath.Join(root, "empty"))
	if err != nil {
		t.Fatalf("ReadDirContext() error = %v", err)
	}
	if len(names) != 0 {
		t.Errorf("ReadDirContext(empty) = %v, want no names", names)
	}
}

func TestService_ReadDirMissing(t *testing.T) {
	root, svc := setupTestTree(t)

	_, err := svc.ReadDir(filepath.Join(root, "gone"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Errorf("ReadDir() error = %v, want fs.ErrNotExist", err)
	}
}

func TestService_ResolvePath(t *testing.T) {
	root, svc := setupTestTree(t)

	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{"root", "", root, false},
		{"dot", ".", root, false},
		{"nested", "sub/c.txt", filepath.Join(root, "sub", "c.txt"), false},
		{"leading slash", "/sub", filepath.Join(root, "sub"), false},
		{"whitespace", "  sub  ", filepath.Join(root, "sub"), false},
		{"traversal", "../etc/passwd", "", true},
		{"nested traversal", "sub/../../x", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := svc.ResolvePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ResolvePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ResolvePath(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

// setupSymlinkTree creates root/inside/a.txt and root/link pointing at a
// directory outside root.
func setupSymlinkTree(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	outside := t.TempDir()
	if err := os.WriteFile(filepath.Join(outside, "secret.txt"), nil, 0o644); err != nil {
		t.Fatalf("Failed to write outside file: %v", err)
	}
	if err := os.MkdirAll(filepath.Join(root, "inside"), 0o755); err != nil {
		t.Fatalf("Failed to create dir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(root, "inside", "a.txt"), nil, 0o644); err != nil {
		t.Fatalf("Failed to write file: %v", err)
	}
	if err := os.Symlink(outside, filepath.Join(root, "link")); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	return root
}

func TestService_ConfinedSymlinks(t *testing.T) {
	root := setupSymlinkTree(t)
	link := filepath.Join(root, "link")

	t.Run("classify", func(t *testing.T) {
		got, err := New(root, nil).Classify(link)
		if err != nil {
			t.Fatalf("Classify(%q) error = %v", link, err)
		}
		if got != types.Folder {
			t.Errorf("Classify(%q) = %v, want %v", link, got, types.Folder)
		}

		got, err = NewConfined(root, nil).Classify(link)
		if err != nil {
			t.Fatalf("confined Classify(%q) error = %v", link, err)
		}
		if got != types.File {
			t.Errorf("confined Classify(%q) = %v, want %v", link, got, types.File)
		}
	})

	t.Run("resolve", func(t *testing.T) {
		svc := NewConfined(root, nil)
		tests := []struct {
			input   string
			wantErr bool
		}{
			{"", false},
			{"inside/a.txt", false},
			{"inside/missing.txt", false},
			{"link", true},
			{"link/secret.txt", true},
		}
		for _, tt := range tests {
			_, err := svc.ResolvePath(tt.input)
			if (err != nil) != tt.wantErr {
				t.Errorf("ResolvePath(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if err != nil && !strings.Contains(err.Error(), "symlink not allowed") {
				t.Errorf("ResolvePath(%q) error = %v, want symlink error", tt.input, err)
			}
		}

		if _, err := New(root, nil).ResolvePath("link/secret.txt"); err != nil {
			t.Errorf("unconfined ResolvePath error = %v", err)
		}
	})
}
