package main

import "github.com/modelcontextprotocol/go-sdk/mcp"

type (
	// FolderOverride contains the options applied inside one force-included
	// folder.
	FolderOverride struct {
		ExcludeNames      []string `json:"excludeNames,omitempty" jsonschema:"Entry names to leave out inside the folder"`
		IncludeNames      []string `json:"includeNames,omitempty" jsonschema:"Entry names to always map inside the folder"`
		ExcludeExtensions []string `json:"excludeExtensions,omitempty" jsonschema:"File extensions to leave out inside the folder"`
		IncludeExtensions []string `json:"includeExtensions,omitempty" jsonschema:"File extensions to always map inside the folder"`
		SkipEmpty         bool     `json:"skipEmpty,omitempty" jsonschema:"Drop empty folders inside the folder"`
	}

	// MapFolderInput contains parameters for mapping a folder.
	MapFolderInput struct {
		Path              string                    `json:"path,omitempty" jsonschema:"Folder or file to map, relative to the served root (default: root)"`
		ExcludeNames      []string                  `json:"excludeNames,omitempty" jsonschema:"Entry names to leave out (case-insensitive)"`
		IncludeNames      []string                  `json:"includeNames,omitempty" jsonschema:"Entry names to always map; any include list switches to allow-list mode"`
		ExcludeExtensions []string                  `json:"excludeExtensions,omitempty" jsonschema:"File extensions to leave out, without the dot"`
		IncludeExtensions []string                  `json:"includeExtensions,omitempty" jsonschema:"File extensions to always map, without the dot"`
		SkipEmpty         bool                      `json:"skipEmpty,omitempty" jsonschema:"Drop folders that end up with no mapped children (default: false)"`
		IncludeFolders    map[string]FolderOverride `json:"includeFolders,omitempty" jsonschema:"Options for folders listed in includeNames, keyed by folder name"`
	}

	// MapFolderOutput contains the mapped tree.
	MapFolderOutput struct {
		Found   bool `json:"found"`
		Folders int  `json:"folders"`
		Files   int  `json:"files"`
		Tree    any  `json:"tree,omitempty"`
	}
)

func registerTools(server *mcp.Server) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "map_folder",
		Description: "Map a folder into a nested tree of entries (path, type 0=folder 1=file, name, base/ext for files, entries for folders). Supports name and extension allow/deny lists, skipping empty folders, and per-folder overrides. found=false means the path itself was filtered out.",
	}, handleMapFolder)
}
