// Package types defines the data structures shared by the mapper, its
// configuration and the command line surface.
package types

import (
	"path/filepath"
	"strings"
)

// EntryType tags an entry as a folder or a file.
type EntryType int

const (
	// Folder marks a directory entry.
	Folder EntryType = 0
	// File marks anything that is not a directory.
	File EntryType = 1
)

// String returns "folder" or "file".
func (t EntryType) String() string {
	if t == Folder {
		return "folder"
	}
	return "file"
}

type (
	// Entry describes one filesystem node of a mapped tree.
	//
	// Base and Ext are only meaningful for files. Entries is only set for
	// folders, keyed by the raw directory-entry name of each accepted child.
	Entry struct {
		Path    string
		Type    EntryType
		Name    string
		Base    string
		Ext     string
		Entries map[string]*Entry
	}

	// Filter decides whether an entry belongs in the mapped tree. Match is
	// called at most once per entry and never concurrently with itself within
	// one mapping call, so it may keep unsynchronized state. Sharing one
	// stateful Filter between simultaneous mapping calls needs its own
	// locking.
	Filter interface {
		Match(entry *Entry) bool
	}

	// FilterFunc adapts an ordinary function to the Filter interface. A nil
	// FilterFunc passed as options means no filter.
	FilterFunc func(entry *Entry) bool
)

// Match calls f(entry).
func (f FilterFunc) Match(entry *Entry) bool {
	return f(entry)
}

// NewEntry builds the descriptor for an already classified path. It does no
// I/O.
func NewEntry(path string, typ EntryType) *Entry {
	name := filepath.Base(path)
	entry := &Entry{
		Path: path,
		Type: typ,
		Name: name,
	}
	if typ == File {
		entry.Base, entry.Ext = splitName(name)
	}
	return entry
}

// splitName splits a file name into base and extension. A pure dotfile such
// as ".gitkeep" has an empty base and the remainder as its extension.
func splitName(name string) (base, ext string) {
	ext = filepath.Ext(name)
	base = strings.TrimSuffix(name, ext)
	// filepath.Ext treats the leading dot of ".gitkeep" as an extension,
	// which is exactly the dotfile split.
	return base, strings.TrimPrefix(ext, ".")
}
