package types

type (
	// Options is the raw, unnormalized form of a mapping configuration. It is
	// what config files, flags and tool calls carry.
	Options struct {
		// Filter is consulted for folders and for files no list decided on.
		// Calls are serialized within one mapping call; see Filter.
		Filter Filter `json:"-" yaml:"-" mapstructure:"-"`

		ExcludeNames      []string `json:"excludeNames,omitempty" yaml:"excludeNames,omitempty" mapstructure:"excludeNames"`
		IncludeNames      []string `json:"includeNames,omitempty" yaml:"includeNames,omitempty" mapstructure:"includeNames"`
		ExcludeExtensions []string `json:"excludeExtensions,omitempty" yaml:"excludeExtensions,omitempty" mapstructure:"excludeExtensions"`
		IncludeExtensions []string `json:"includeExtensions,omitempty" yaml:"includeExtensions,omitempty" mapstructure:"includeExtensions"`
		SkipEmpty         bool     `json:"skipEmpty,omitempty" yaml:"skipEmpty,omitempty" mapstructure:"skipEmpty"`

		// IncludeFolders holds per-folder overrides, applied when recursing
		// into a folder whose name is also listed in IncludeNames.
		IncludeFolders map[string]Options `json:"includeFolders,omitempty" yaml:"includeFolders,omitempty" mapstructure:"includeFolders"`

		// IgnoreFile is a gitignore-style pattern file used as the filter
		// when Filter is nil.
		IgnoreFile string `json:"ignoreFile,omitempty" yaml:"ignoreFile,omitempty" mapstructure:"ignoreFile"`
	}
)
