// Package share provides browsing and file retrieval against a remote SMB
// share. Two transports implement the same Client contract: a wrapper around
// the smbclient binary (default) and a native SMB2 client.
package share

import (
	"strings"
)

// EntryKind classifies a remote entry as a file or directory.
type EntryKind int

const (
	EntryFile EntryKind = iota
	EntryDir
)

// String returns a human-readable kind string.
func (k EntryKind) String() string {
	if k == EntryDir {
		return "dir"
	}
	return "file"
}

// Entry is a single row from a share listing. Entries are transient: share
// contents may change between listings, so they are never cached.
type Entry struct {
	Name string
	Kind EntryKind
}

// Location identifies a directory tree on a remote share.
// Immutable once resolved for a run.
type Location struct {
	Server string   // Host or IP
	Share  string   // Share name
	Path   []string // Path segments below the share root; empty means the root
}

// UNC returns the //server/share form used for display and for smbclient.
func (l Location) UNC() string {
	return "//" + l.Server + "/" + l.Share
}

// RemotePath joins the path segments with the given separator.
// An empty path yields "".
func (l Location) RemotePath(sep string) string {
	return strings.Join(l.Path, sep)
}

// Child returns a Location one directory deeper.
func (l Location) Child(name string) Location {
	child := Location{Server: l.Server, Share: l.Share}
	child.Path = append(child.Path, l.Path...)
	child.Path = append(child.Path, name)
	return child
}

// String renders the location for log lines.
func (l Location) String() string {
	if len(l.Path) == 0 {
		return l.UNC()
	}
	return l.UNC() + "/" + l.RemotePath("/")
}

// Credential holds the share username and password. The password lives only
// in process memory for the run's duration and must never be logged or
// written to persistent storage.
type Credential struct {
	Username string
	Password string
}

// Client is the minimal share contract: list a directory and fetch a file.
// Any transport satisfying these two primitives is a valid collaborator.
type Client interface {
	// List returns the entries at the location, with the ./.. pseudo-entries
	// and listing noise already stripped. An empty result is not an error.
	List(loc Location) ([]Entry, error)

	// Fetch retrieves loc.Path/name into the local file at dest.
	Fetch(loc Location, name string, dest string) error
}

// FileNames returns the names of FILE entries, order preserved.
func FileNames(entries []Entry) []string {
	var names []string
	for _, e := range entries {
		if e.Kind == EntryFile {
			names = append(names, e.Name)
		}
	}
	return names
}
