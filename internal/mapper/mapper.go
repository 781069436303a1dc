// Package mapper builds filtered, nested snapshots of directory trees.
//
// MapSync walks a tree in a single goroutine, visiting children in directory
// listing order. Map fans out one goroutine per child at every level and
// joins before a folder's result is finalized. Both produce the same tree for
// the same filesystem state, and both fail as a whole on the first I/O error:
// there are no partial results.
//
// Filter predicates never run concurrently. MapSync calls them from one
// goroutine in listing order; Map serializes them across its goroutines, so
// sibling order is unspecified but a predicate with unsynchronized state is
// safe under either variant.
package mapper

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/sourcegraph/conc/pool"
	"github.com/spf13/afero"

	"github.com/taigrr/foldermap/internal/filesystem"
	"github.com/taigrr/foldermap/internal/pathfilter"
	"github.com/taigrr/foldermap/internal/types"
)

// Mapper maps directory trees on a filesystem.
type Mapper struct {
	fileSystem *filesystem.Service
	logger     zerolog.Logger
}

// New creates a Mapper over fsys (the OS filesystem when nil).
func New(fsys afero.Fs, logger zerolog.Logger) *Mapper {
	return &Mapper{
		fileSystem: filesystem.New(".", fsys),
		logger:     logger,
	}
}

// FromService creates a Mapper that classifies and lists through fileSystem,
// keeping its symlink policy.
func FromService(fileSystem *filesystem.Service, logger zerolog.Logger) *Mapper {
	return &Mapper{
		fileSystem: fileSystem,
		logger:     logger,
	}
}

// MapSync maps the entry at path. A nil entry with a nil error means the
// entry itself was filtered out.
func (m *Mapper) MapSync(path string, cfg *types.Config) (*types.Entry, error) {
	entryPath, err := resolve(path)
	if err != nil {
		return nil, err
	}
	return m.mapEntrySync(entryPath, pathfilter.New(cfg))
}

// Map is the concurrent form of MapSync. The context is checked before each
// stat and directory read; once it is done the call fails with its error.
// Filter predicates are called one at a time.
func (m *Mapper) Map(ctx context.Context, path string, cfg *types.Config) (*types.Entry, error) {
	entryPath, err := resolve(path)
	if err != nil {
		return nil, err
	}
	run := &mapRun{Mapper: m, ctx: ctx}
	return run.mapEntry(entryPath, pathfilter.New(cfg))
}

// mapRun is the state of one concurrent Map call.
type mapRun struct {
	*Mapper
	ctx context.Context

	// filterMu serializes filter evaluation across the fan-out.
	filterMu sync.Mutex
}

func (r *mapRun) shouldMap(filter *pathfilter.PathFilter, entry *types.Entry) bool {
	r.filterMu.Lock()
	defer r.filterMu.Unlock()
	return filter.ShouldMap(entry)
}

func resolve(path string) (string, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve path: %s - %w", path, err)
	}
	return absPath, nil
}

func (m *Mapper) mapEntrySync(entryPath string, filter *pathfilter.PathFilter) (*types.Entry, error) {
	entryType, err := m.fileSystem.Classify(entryPath)
	if err != nil {
		return nil, err
	}

	entry := types.NewEntry(entryPath, entryType)
	if !filter.ShouldMap(entry) {
		return nil, nil
	}
	if entryType == types.File {
		return entry, nil
	}

	names, err := m.fileSystem.ReadDir(entryPath)
	if err != nil {
		return nil, err
	}

	childFilter := m.childFilter(entry, filter)
	entries := make(map[string]*types.Entry, len(names))
	for _, name := range names {
		child, err := m.mapEntrySync(filepath.Join(entryPath, name), childFilter)
		if err != nil {
			return nil, err
		}
		if child != nil {
			entries[name] = child
		}
	}

	return m.finishFolder(entry, entries, len(names), filter), nil
}

func (r *mapRun) mapEntry(entryPath string, filter *pathfilter.PathFilter) (*types.Entry, error) {
	entryType, err := r.fileSystem.ClassifyContext(r.ctx, entryPath)
	if err != nil {
		return nil, err
	}

	entry := types.NewEntry(entryPath, entryType)
	if !r.shouldMap(filter, entry) {
		return nil, nil
	}
	if entryType == types.File {
		return entry, nil
	}

	names, err := r.fileSystem.ReadDirContext(r.ctx, entryPath)
	if err != nil {
		return nil, err
	}

	childFilter := r.childFilter(entry, filter)

	// Each child owns one slot; the map is only built after the join.
	children := make([]*types.Entry, len(names))
	p := pool.New().WithErrors().WithFirstError()
	for i, name := range names {
		p.Go(func() error {
			child, err := r.mapEntry(filepath.Join(entryPath, name), childFilter)
			if err != nil {
				return err
			}
			children[i] = child
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}

	entries := make(map[string]*types.Entry, len(names))
	for i, child := range children {
		if child != nil {
			entries[names[i]] = child
		}
	}

	return r.finishFolder(entry, entries, len(names), filter), nil
}

// childFilter picks the filter for a folder's children: a subtree override
// when the folder is force-included with one, the parent's filter otherwise.
func (m *Mapper) childFilter(folder *types.Entry, filter *pathfilter.PathFilter) *pathfilter.PathFilter {
	sub, ok := filter.SubFilter(strings.ToLower(folder.Name))
	if !ok {
		return filter
	}
	m.logger.Debug().Str("path", folder.Path).Msg("applying folder override")
	return sub
}

// finishFolder attaches entries to the folder, or drops the folder when it
// has no accepted children and empty folders are skipped.
func (m *Mapper) finishFolder(folder *types.Entry, entries map[string]*types.Entry, listed int, filter *pathfilter.PathFilter) *types.Entry {
	m.logger.Debug().
		Str("path", folder.Path).
		Int("listed", listed).
		Int("accepted", len(entries)).
		Msg("mapped folder")

	if filter.SkipEmpty() && len(entries) == 0 {
		return nil
	}
	folder.Entries = entries
	return folder
}
