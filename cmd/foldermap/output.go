package main

import (
	"encoding/json"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/taigrr/foldermap/internal/types"
)

const (
	formatJSON = "json"
	formatYAML = "yaml"
)

// writeTree encodes tree to w. A nil tree (root filtered out) is written as
// null in either format.
func writeTree(w io.Writer, tree *types.Entry, format string) error {
	if format == formatYAML {
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(tree); err != nil {
			return err
		}
		return enc.Close()
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}
