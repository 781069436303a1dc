package pathfilter

import (
	"fmt"
	"path/filepath"
	"strings"

	ignore "github.com/sabhiram/go-gitignore"

	"github.com/taigrr/foldermap/internal/types"
)

// ignoreFilter rejects entries matched by gitignore-style patterns. Paths are
// matched relative to root; entries outside root are never rejected.
type ignoreFilter struct {
	root    string
	matcher *ignore.GitIgnore
}

// IgnoreFile compiles a gitignore-style file into a Filter. Patterns are
// relative to the directory containing the file.
func IgnoreFile(path string) (types.Filter, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, err
	}

	matcher, err := ignore.CompileIgnoreFile(absPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read ignore file: %s - %w", path, err)
	}

	return &ignoreFilter{root: filepath.Dir(absPath), matcher: matcher}, nil
}

// IgnorePatterns compiles inline gitignore-style patterns relative to root.
func IgnorePatterns(root string, lines ...string) types.Filter {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		absRoot = filepath.Clean(root)
	}
	return &ignoreFilter{root: absRoot, matcher: ignore.CompileIgnoreLines(lines...)}
}

// Match implements types.Filter.
func (f *ignoreFilter) Match(entry *types.Entry) bool {
	rel, err := filepath.Rel(f.root, entry.Path)
	if err != nil || rel == "." || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return true
	}

	rel = filepath.ToSlash(rel)
	// Directory-only patterns ("build/") need the trailing slash to match.
	if entry.Type == types.Folder {
		rel += "/"
	}

	return !f.matcher.MatchesPath(rel)
}
