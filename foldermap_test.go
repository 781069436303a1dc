package foldermap_test

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taigrr/foldermap"
)

func writeTree(t *testing.T, paths ...string) string {
	t.Helper()
	root := t.TempDir()
	for _, p := range paths {
		full := filepath.Join(root, filepath.FromSlash(p))
		if strings.HasSuffix(p, "/") {
			require.NoError(t, os.MkdirAll(full, 0o755))
			continue
		}
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
		require.NoError(t, os.WriteFile(full, nil, 0o644))
	}
	return root
}

func names(entry *foldermap.Entry) []string {
	var out []string
	for name := range entry.Entries {
		out = append(out, name)
	}
	return out
}

func TestEntryTypeTags(t *testing.T) {
	assert.EqualValues(t, 0, foldermap.Folder)
	assert.EqualValues(t, 1, foldermap.File)
}

func TestMap_OptionShapes(t *testing.T) {
	root := writeTree(t,
		"wish-list.txt",
		"personal/goals.txt",
		"diary/day-1.txt",
		"diary/day-2.txt",
	)
	ctx := context.Background()

	t.Run("single name", func(t *testing.T) {
		tree, err := foldermap.Map(ctx, root, "wish-list.txt")
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"personal", "diary"}, names(tree))
	})

	t.Run("name list", func(t *testing.T) {
		tree, err := foldermap.Map(ctx, root, []string{"personal", "day-2.txt"})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"wish-list.txt", "diary"}, names(tree))
		assert.ElementsMatch(t, []string{"day-1.txt"}, names(tree.Entries["diary"]))
	})

	t.Run("predicate", func(t *testing.T) {
		tree, err := foldermap.MapSync(root, func(e *foldermap.Entry) bool {
			return e.Type == foldermap.Folder || strings.HasPrefix(e.Name, "day")
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"personal", "diary"}, names(tree))
		assert.ElementsMatch(t, []string{"day-1.txt", "day-2.txt"}, names(tree.Entries["diary"]))
	})

	t.Run("options", func(t *testing.T) {
		tree, err := foldermap.Map(ctx, root, foldermap.Options{
			ExcludeNames: []string{"Diary"},
			SkipEmpty:    true,
		})
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{"wish-list.txt", "personal"}, names(tree))
	})

	t.Run("unsupported", func(t *testing.T) {
		_, err := foldermap.Map(ctx, root, 3.14)
		assert.Error(t, err)
	})
}

func TestMap_RelativePathIsResolved(t *testing.T) {
	root := writeTree(t, "a.txt")
	wd, err := os.Getwd()
	require.NoError(t, err)
	t.Cleanup(func() { os.Chdir(wd) })
	require.NoError(t, os.Chdir(root))

	tree, err := foldermap.MapSync(".", nil)
	require.NoError(t, err)
	assert.True(t, filepath.IsAbs(tree.Path))
	assert.Equal(t, filepath.Join(tree.Path, "a.txt"), tree.Entries["a.txt"].Path)
}

func TestMap_NotExist(t *testing.T) {
	tree, err := foldermap.Map(context.Background(), filepath.Join(t.TempDir(), "not", "exist"), nil)
	assert.Nil(t, tree)
	assert.ErrorIs(t, err, fs.ErrNotExist)
	assert.Contains(t, err.Error(), "no such file or directory")
}

func TestMapper_CustomFilesystem(t *testing.T) {
	memFs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(memFs, filepath.FromSlash("/site/index.html"), nil, 0o644))
	require.NoError(t, afero.WriteFile(memFs, filepath.FromSlash("/site/app.js.map"), nil, 0o644))

	m := foldermap.New(memFs, zerolog.Nop())
	tree, err := m.Map(context.Background(), filepath.FromSlash("/site"), foldermap.Options{
		ExcludeExtensions: []string{".map"},
	})
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{"index.html"}, names(tree))
}
