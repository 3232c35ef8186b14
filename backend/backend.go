package backend

import (
	"context"

	"github.com/mwantia/traverse/data"
)

// Backend is used as lifecycle entrypoint for other backend implementations.
type Backend interface {
	// Name returns the identifier name defined for this backend
	Name() string
	// Open is part of the lifecycle behaviour and gets called when opening this backend.
	Open(ctx context.Context) error
	// Close is part of the lifecycle behaviour and gets called when closing this backend.
	Close(ctx context.Context) error
}

// Lister reads the immediate children of a directory.
// It is the only primitive the traversal needs from a filesystem.
type Lister interface {
	Backend

	// Stat resolves a single path into an entry.
	// Failures are reported as *data.ListingError.
	Stat(ctx context.Context, path string) (*data.Entry, error)

	// ListChildren returns the immediate children of the directory at path in
	// the order the underlying storage provides them.
	// Failures are reported as *data.ListingError.
	ListChildren(ctx context.Context, path string) ([]*data.Entry, error)
}
