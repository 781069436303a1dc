package types

import "encoding/json"

type (
	fileRecord struct {
		Path string    `json:"path" yaml:"path"`
		Type EntryType `json:"type" yaml:"type"`
		Name string    `json:"name" yaml:"name"`
		Base string    `json:"base" yaml:"base"`
		Ext  string    `json:"ext" yaml:"ext"`
	}

	// Entries is a pointer so that an attached but empty mapping still
	// encodes as {} while a missing one is omitted.
	folderRecord struct {
		Path    string             `json:"path" yaml:"path"`
		Type    EntryType          `json:"type" yaml:"type"`
		Name    string             `json:"name" yaml:"name"`
		Entries *map[string]*Entry `json:"entries,omitempty" yaml:"entries,omitempty"`
	}
)

func (e Entry) record() any {
	if e.Type == File {
		return fileRecord{Path: e.Path, Type: e.Type, Name: e.Name, Base: e.Base, Ext: e.Ext}
	}
	rec := folderRecord{Path: e.Path, Type: e.Type, Name: e.Name}
	if e.Entries != nil {
		rec.Entries = &e.Entries
	}
	return rec
}

// MarshalJSON emits base/ext for files and entries for folders only.
func (e Entry) MarshalJSON() ([]byte, error) {
	return json.Marshal(e.record())
}

// MarshalYAML mirrors MarshalJSON for gopkg.in/yaml.v3.
func (e Entry) MarshalYAML() (any, error) {
	return e.record(), nil
}
