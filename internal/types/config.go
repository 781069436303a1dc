package types

// Config is the canonical configuration consumed by the mapper. Names and
// extensions are lowercase, extensions carry no leading dot. A list counts as
// configured when it is non-empty.
type Config struct {
	Filter            Filter
	ExcludeNames      []string
	IncludeNames      []string
	ExcludeExtensions []string
	IncludeExtensions []string
	SkipEmpty         bool
	IncludeFolders    map[string]*Config
}
