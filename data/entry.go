package data

import (
	"path"
	"time"
)

// Entry describes a single path produced by a directory listing.
// It provides metadata similar to os.FileInfo but is shared by every listing backend.
type Entry struct {
	Path        string      `json:"path"`
	Name        string      `json:"name"`
	Mode        FileMode    `json:"mode"`
	Size        int64       `json:"size"`
	ModifyTime  time.Time   `json:"modify_time"`
	ContentType ContentType `json:"content_type,omitempty"`
}

// NewEntry creates an entry for path and derives its name and content type.
func NewEntry(p string, mode FileMode, size int64, modifyTime time.Time) *Entry {
	entry := &Entry{
		Path:       p,
		Name:       path.Base(p),
		Mode:       mode,
		Size:       size,
		ModifyTime: modifyTime,
	}

	if !mode.IsDir() {
		entry.ContentType = GetMIMEType(p)
	}

	return entry
}

// NewDirectoryEntry creates an entry for a directory.
func NewDirectoryEntry(p string, perm FileMode) *Entry {
	return NewEntry(p, perm.Perm()|ModeDir, 0, time.Time{})
}

// NewFileEntry creates an entry for a regular file.
func NewFileEntry(p string, size int64, perm FileMode) *Entry {
	return NewEntry(p, perm.Perm(), size, time.Time{})
}

// IsDir reports whether the entry describes a directory.
func (e *Entry) IsDir() bool {
	return e.Mode.IsDir()
}

func (e *Entry) String() string {
	return e.Path
}
