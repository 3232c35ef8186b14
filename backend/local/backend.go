package local

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"syscall"
	"time"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/data"
)

// LocalBackend lists directories of the host filesystem.
// Paths are host paths and are passed to the os package unchanged.
type LocalBackend struct{}

func NewLocalBackend() *LocalBackend {
	return &LocalBackend{}
}

// Returns the identifier name defined for this backend
func (*LocalBackend) Name() string {
	return "local"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (lb *LocalBackend) Open(ctx context.Context) error {
	// The underlying filesystem needs no initialization
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (lb *LocalBackend) Close(ctx context.Context) error {
	// The underlying filesystem persists independently
	return nil
}

// Stat resolves path on the host filesystem. Symbolic links are followed,
// so a root given as a link to a directory is walked like the directory.
func (lb *LocalBackend) Stat(ctx context.Context, path string) (*data.Entry, error) {
	fileInfo, err := os.Stat(path)
	if err != nil {
		return nil, toListingError(path, err)
	}

	return lb.toEntry(path, fileInfo), nil
}

// ListChildren reads the directory at path. Children are reported without
// following symbolic links, so a link to a directory is never descended.
func (lb *LocalBackend) ListChildren(ctx context.Context, path string) ([]*data.Entry, error) {
	dirEntries, err := os.ReadDir(path)
	if err != nil {
		return nil, backend.Diagnose(ctx, lb, path, err)
	}

	entries := make([]*data.Entry, 0, len(dirEntries))
	for _, dirEntry := range dirEntries {
		childPath := filepath.Join(path, dirEntry.Name())

		fileInfo, err := dirEntry.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				// Removed between the directory read and the lookup
				continue
			}

			entries = append(entries, data.NewEntry(childPath, data.FromFileMode(dirEntry.Type()), 0, time.Time{}))
			continue
		}

		entries = append(entries, lb.toEntry(childPath, fileInfo))
	}

	return entries, nil
}

// toEntry converts os.FileInfo to an entry.
func (lb *LocalBackend) toEntry(path string, fileInfo os.FileInfo) *data.Entry {
	entry := data.NewEntry(path, data.FromFileMode(fileInfo.Mode()), fileInfo.Size(), fileInfo.ModTime())
	entry.Name = filepath.Base(path)

	return entry
}

func toListingError(path string, err error) *data.ListingError {
	switch {
	case errors.Is(err, fs.ErrNotExist), errors.Is(err, syscall.ENOTDIR):
		return data.NewListingError(data.KindPathNotExist, path, err)
	case errors.Is(err, fs.ErrPermission):
		return data.NewListingError(data.KindNotReadable, path, err)
	default:
		return data.NewListingError(data.KindUnknown, path, err)
	}
}
