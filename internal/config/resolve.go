// Package config turns raw mapping options into the canonical configuration
// and loads options from files and the environment.
package config

import (
	"fmt"
	"strings"

	"github.com/taigrr/foldermap/internal/pathfilter"
	"github.com/taigrr/foldermap/internal/types"
)

// Resolve normalizes raw options into a Config. Accepted shapes:
//
//   - nil: no filtering
//   - *types.Config: used as is
//   - types.Filter or func(*types.Entry) bool: a filter predicate; a nil
//     func means no filter
//   - string: a single name to exclude
//   - []string: names to exclude
//   - types.Options or *types.Options: the full form
func Resolve(raw any) (*types.Config, error) {
	switch opts := raw.(type) {
	case nil:
		return &types.Config{}, nil
	case *types.Config:
		if opts == nil {
			return &types.Config{}, nil
		}
		return opts, nil
	case types.Filter:
		return &types.Config{Filter: usableFilter(opts)}, nil
	case func(*types.Entry) bool:
		if opts == nil {
			return &types.Config{}, nil
		}
		return &types.Config{Filter: types.FilterFunc(opts)}, nil
	case string:
		return &types.Config{ExcludeNames: lowerAll([]string{opts})}, nil
	case []string:
		return &types.Config{ExcludeNames: lowerAll(opts)}, nil
	case types.Options:
		return ResolveOptions(opts)
	case *types.Options:
		if opts == nil {
			return &types.Config{}, nil
		}
		return ResolveOptions(*opts)
	default:
		return nil, fmt.Errorf("unsupported options type %T", raw)
	}
}

// ResolveOptions normalizes the full options form. Nested folder overrides
// are resolved eagerly.
func ResolveOptions(opts types.Options) (*types.Config, error) {
	cfg := &types.Config{
		Filter:            usableFilter(opts.Filter),
		ExcludeNames:      lowerAll(opts.ExcludeNames),
		IncludeNames:      lowerAll(opts.IncludeNames),
		ExcludeExtensions: normalizeExtensions(opts.ExcludeExtensions),
		IncludeExtensions: normalizeExtensions(opts.IncludeExtensions),
		SkipEmpty:         opts.SkipEmpty,
	}

	if cfg.Filter == nil && opts.IgnoreFile != "" {
		filter, err := pathfilter.IgnoreFile(opts.IgnoreFile)
		if err != nil {
			return nil, err
		}
		cfg.Filter = filter
	}

	if len(opts.IncludeFolders) > 0 {
		cfg.IncludeFolders = make(map[string]*types.Config, len(opts.IncludeFolders))
		for name, folderOpts := range opts.IncludeFolders {
			folderCfg, err := ResolveOptions(folderOpts)
			if err != nil {
				return nil, fmt.Errorf("invalid options for folder %q: %w", name, err)
			}
			cfg.IncludeFolders[strings.ToLower(name)] = folderCfg
		}
	}

	return cfg, nil
}

// usableFilter drops a typed-nil FilterFunc, which would panic on Match.
func usableFilter(filter types.Filter) types.Filter {
	if fn, ok := filter.(types.FilterFunc); ok && fn == nil {
		return nil
	}
	return filter
}

func lowerAll(names []string) []string {
	if len(names) == 0 {
		return nil
	}
	out := make([]string, 0, len(names))
	for _, name := range names {
		out = append(out, strings.ToLower(name))
	}
	return out
}

func normalizeExtensions(exts []string) []string {
	if len(exts) == 0 {
		return nil
	}
	out := make([]string, 0, len(exts))
	for _, ext := range exts {
		out = append(out, strings.ToLower(strings.TrimPrefix(ext, ".")))
	}
	return out
}
