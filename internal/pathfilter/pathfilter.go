// Package pathfilter decides which entries of a directory tree are mapped and
// which configuration applies below a given folder.
package pathfilter

import (
	"slices"
	"strings"

	"github.com/taigrr/foldermap/internal/types"
)

// PathFilter applies one canonical configuration to entries.
type PathFilter struct {
	config *types.Config
}

// New creates a PathFilter for the given configuration. A nil configuration
// behaves like an empty one: everything is mapped.
func New(config *types.Config) *PathFilter {
	if config == nil {
		config = &types.Config{}
	}
	return &PathFilter{config: config}
}

// Config returns the configuration the filter was built from.
func (pf *PathFilter) Config() *types.Config {
	return pf.config
}

// SkipEmpty reports whether folders without accepted children are dropped.
func (pf *PathFilter) SkipEmpty() bool {
	return pf.config.SkipEmpty
}

// ShouldMap reports whether the entry, and with it its subtree, belongs in
// the result.
//
// Name lists win over everything, include before exclude. Folders then only
// consult the filter. Files consult the extension lists, then the filter, and
// finally fall back to excluding when any include list is configured.
func (pf *PathFilter) ShouldMap(entry *types.Entry) bool {
	cfg := pf.config
	name := strings.ToLower(entry.Name)

	if slices.Contains(cfg.IncludeNames, name) {
		return true
	}
	if slices.Contains(cfg.ExcludeNames, name) {
		return false
	}

	if entry.Type == types.Folder {
		if cfg.Filter != nil {
			return cfg.Filter.Match(entry)
		}
		return true
	}

	ext := strings.ToLower(entry.Ext)
	if slices.Contains(cfg.IncludeExtensions, ext) {
		return true
	}
	if slices.Contains(cfg.ExcludeExtensions, ext) {
		return false
	}

	if cfg.Filter != nil {
		return cfg.Filter.Match(entry)
	}

	return !pf.allowListMode()
}

func (pf *PathFilter) allowListMode() bool {
	return len(pf.config.IncludeNames) > 0 || len(pf.config.IncludeExtensions) > 0
}

// SubFilter returns the filter to use for the children of the folder named
// folderName (already lowercased). The boolean is false when the parent
// filter should be reused unchanged.
//
// Only folders listed in IncludeNames get their own filter: the override
// registered in IncludeFolders, or an unfiltered one when none is registered.
func (pf *PathFilter) SubFilter(folderName string) (*PathFilter, bool) {
	cfg, ok := SubtreeConfig(folderName, pf.config)
	if !ok {
		return nil, false
	}
	return New(cfg), true
}

// SubtreeConfig is the configuration-level form of SubFilter. It never
// modifies cfg.
func SubtreeConfig(folderName string, cfg *types.Config) (*types.Config, bool) {
	if cfg == nil || !slices.Contains(cfg.IncludeNames, folderName) {
		return nil, false
	}
	if override, ok := cfg.IncludeFolders[folderName]; ok && override != nil {
		return override, true
	}
	return &types.Config{}, true
}
