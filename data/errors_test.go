package data_test

import (
	"errors"
	"fmt"
	"io/fs"
	"testing"

	"github.com/mwantia/traverse/data"
)

func TestListingError_MatchesKindSentinel(t *testing.T) {
	tests := map[data.ListingErrorKind]error{
		data.KindPathNotExist: data.ErrPathNotExist,
		data.KindNotDirectory: data.ErrNotDirectory,
		data.KindNotReadable:  data.ErrNotReadable,
		data.KindUnknown:      data.ErrUnknown,
	}

	for kind, sentinel := range tests {
		t.Run(kind.String(), func(tst *testing.T) {
			err := fmt.Errorf("wrapped: %w", data.NewListingError(kind, "/x", fs.ErrInvalid))

			if !errors.Is(err, sentinel) {
				tst.Fatalf("expected %v to match %v", err, sentinel)
			}
			if !errors.Is(err, fs.ErrInvalid) {
				tst.Errorf("expected %v to keep its cause", err)
			}
			if got := data.KindOf(err); got != kind {
				tst.Errorf("KindOf() = %v, want %v", got, kind)
			}
		})
	}
}

func TestListingError_DoesNotMatchOtherKinds(t *testing.T) {
	err := data.NewListingError(data.KindPathNotExist, "/x", nil)

	if errors.Is(err, data.ErrNotDirectory) {
		t.Errorf("expected %v not to match %v", err, data.ErrNotDirectory)
	}
	if got := data.KindOf(errors.New("plain")); got != data.KindUnknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, data.KindUnknown)
	}
}

func TestErrors_Join(t *testing.T) {
	var errs data.Errors
	if errs.Errors() != nil {
		t.Fatalf("expected no error for an empty collection")
	}

	errs.Add(nil)
	errs.Add(data.ErrExist)
	errs.Add(data.ErrInvalidPath)

	if errs.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", errs.Len())
	}

	joined := errs.Errors()
	if !errors.Is(joined, data.ErrExist) || !errors.Is(joined, data.ErrInvalidPath) {
		t.Errorf("joined error %v lost a member", joined)
	}
}

func TestFileMode_String(t *testing.T) {
	tests := map[data.FileMode]string{
		data.ModeDir | 0755:     "drwxr-xr-x",
		0644:                    "-rw-r--r--",
		data.ModeSymlink | 0777: "Lrwxrwxrwx",
	}

	for mode, want := range tests {
		if got := mode.String(); got != want {
			t.Errorf("FileMode(%o).String() = %q, want %q", uint32(mode), got, want)
		}
	}
}

func TestFileMode_FromFileMode(t *testing.T) {
	if mode := data.FromFileMode(fs.ModeDir | 0700); !mode.IsDir() || mode.Perm() != 0700 {
		t.Errorf("unexpected directory mode %v", mode)
	}
	if mode := data.FromFileMode(0600); !mode.IsRegular() {
		t.Errorf("expected regular file mode, got %v", mode)
	}
	if mode := data.FromFileMode(fs.ModeSymlink | 0777); !mode.IsSymlink() || mode.IsDir() {
		t.Errorf("expected symlink mode, got %v", mode)
	}
}
