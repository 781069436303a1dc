// Package foldermap maps a directory tree into a nested, filtered snapshot.
//
// Every mapped node is an Entry. Files carry their base name and extension;
// folders carry their accepted children keyed by the raw directory-entry
// name. Options decide what is mapped: name and extension allow/deny lists, a
// predicate, skipping of empty folders, and per-folder overrides for folders
// force-included by name.
//
//	tree, err := foldermap.Map(ctx, "./docs", foldermap.Options{
//		ExcludeNames:      []string{"node_modules", ".git"},
//		ExcludeExtensions: []string{"map"},
//		SkipEmpty:         true,
//	})
//
// A nil tree with a nil error means the root itself was filtered out. Any I/O
// error anywhere in the tree fails the whole call.
package foldermap

import (
	"context"

	"github.com/rs/zerolog"
	"github.com/spf13/afero"

	"github.com/taigrr/foldermap/internal/config"
	"github.com/taigrr/foldermap/internal/mapper"
	"github.com/taigrr/foldermap/internal/types"
)

type (
	// Entry is one mapped filesystem node.
	Entry = types.Entry
	// EntryType tags an Entry as Folder or File.
	EntryType = types.EntryType
	// Options is the full form of the mapping options.
	Options = types.Options
	// Filter is a predicate over entries.
	Filter = types.Filter
	// FilterFunc adapts a function to Filter.
	FilterFunc = types.FilterFunc
)

// Entry type tags, 0 for folders and 1 for files.
const (
	Folder = types.Folder
	File   = types.File
)

// Mapper maps trees on a specific filesystem with a specific logger.
type Mapper struct {
	m *mapper.Mapper
}

// New creates a Mapper. A nil fsys uses the OS filesystem.
func New(fsys afero.Fs, logger zerolog.Logger) *Mapper {
	return &Mapper{m: mapper.New(fsys, logger)}
}

var defaultMapper = New(nil, zerolog.Nop())

// Map maps root concurrently. opts may be nil, a Filter, a
// func(*Entry) bool, a single name or a []string of names to exclude, or
// Options. A filter predicate is called from the worker goroutines but one
// call at a time, in no particular sibling order; use MapSync when the
// predicate needs listing order.
func Map(ctx context.Context, root string, opts any) (*Entry, error) {
	return defaultMapper.Map(ctx, root, opts)
}

// MapSync maps root sequentially in directory-listing order. It accepts the
// same opts as Map and produces the same tree. A filter predicate is called
// from the calling goroutine in listing order.
func MapSync(root string, opts any) (*Entry, error) {
	return defaultMapper.MapSync(root, opts)
}

// Map is the Mapper form of the package-level Map.
func (m *Mapper) Map(ctx context.Context, root string, opts any) (*Entry, error) {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return nil, err
	}
	return m.m.Map(ctx, root, cfg)
}

// MapSync is the Mapper form of the package-level MapSync.
func (m *Mapper) MapSync(root string, opts any) (*Entry, error) {
	cfg, err := config.Resolve(opts)
	if err != nil {
		return nil, err
	}
	return m.m.MapSync(root, cfg)
}
