package backend

import (
	"context"
	"errors"
	"io/fs"

	"github.com/mwantia/traverse/data"
)

// List reads the immediate children of dir into a listing snapshot.
// Any failure is returned as *data.ListingError.
func List(ctx context.Context, lister Lister, dir string) (data.Listing, error) {
	if err := ctx.Err(); err != nil {
		return data.Listing{}, data.NewListingError(data.KindUnknown, dir, err)
	}

	children, err := lister.ListChildren(ctx, dir)
	if err != nil {
		var le *data.ListingError
		if errors.As(err, &le) {
			return data.Listing{}, le
		}

		return data.Listing{}, Diagnose(ctx, lister, dir, err)
	}

	return data.NewListing(dir, children), nil
}

// Diagnose classifies a failed directory read by inspecting the path after the failure.
// The result is best-effort since the path may change between the read and the inspection.
func Diagnose(ctx context.Context, lister Lister, path string, cause error) *data.ListingError {
	entry, err := lister.Stat(ctx, path)
	if err != nil {
		if errors.Is(err, data.ErrPathNotExist) || errors.Is(err, fs.ErrNotExist) {
			return data.NewListingError(data.KindPathNotExist, path, cause)
		}
		if errors.Is(err, data.ErrNotReadable) || errors.Is(err, fs.ErrPermission) {
			return data.NewListingError(data.KindNotReadable, path, cause)
		}

		return data.NewListingError(data.KindUnknown, path, cause)
	}

	if !entry.IsDir() {
		return data.NewListingError(data.KindNotDirectory, path, cause)
	}

	if errors.Is(cause, fs.ErrPermission) || errors.Is(cause, data.ErrNotReadable) || entry.Mode.Perm()&0444 == 0 {
		return data.NewListingError(data.KindNotReadable, path, cause)
	}

	return data.NewListingError(data.KindUnknown, path, cause)
}
