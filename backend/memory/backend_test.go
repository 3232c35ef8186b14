package memory

import (
	"errors"
	"testing"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/data"
)

func TestMemoryBackend_ListChildren(t *testing.T) {
	mb := NewMemoryBackend()
	if err := mb.MkdirAll("/a/b"); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	for _, file := range []string{"/a/z.txt", "/a/c.go"} {
		if err := mb.WriteFile(file, 10); err != nil {
			t.Fatalf("WriteFile failed: %v", err)
		}
	}

	listing, err := backend.List(t.Context(), mb, "/a")
	if err != nil {
		t.Fatalf("List failed: %v", err)
	}

	want := []string{"/a/b", "/a/z.txt", "/a/c.go"}
	got := listing.Paths()
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("expected %s at %d, got %s", want[i], i, got[i])
		}
	}

	if listing.At(2).ContentType != data.ContentTypeTextGo {
		t.Errorf("expected Go content type, got %s", listing.At(2).ContentType)
	}

	// Listings are snapshots
	listing.At(0).Name = "changed"
	entry, err := mb.Stat(t.Context(), "/a/b")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if entry.Name != "b" {
		t.Errorf("backend entry was modified through a listing")
	}
}

func TestMemoryBackend_Errors(t *testing.T) {
	mb := NewMemoryBackend()
	if err := mb.Mkdir("/dir"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := mb.WriteFile("/dir/file", 1); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mb.Mkdir("/locked"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	if err := mb.SetReadable("/locked", false); err != nil {
		t.Fatalf("SetReadable failed: %v", err)
	}

	tests := map[string]struct {
		path string
		kind data.ListingErrorKind
	}{
		"missing":       {path: "/missing", kind: data.KindPathNotExist},
		"not directory": {path: "/dir/file", kind: data.KindNotDirectory},
		"not readable":  {path: "/locked", kind: data.KindNotReadable},
	}

	for name, tt := range tests {
		t.Run(name, func(tst *testing.T) {
			_, err := backend.List(tst.Context(), mb, tt.path)
			if err == nil {
				tst.Fatalf("expected an error for %s", tt.path)
			}
			if kind := data.KindOf(err); kind != tt.kind {
				tst.Errorf("expected kind %s, got %s", tt.kind, kind)
			}
		})
	}

	if err := mb.SetReadable("/locked", true); err != nil {
		t.Fatalf("SetReadable failed: %v", err)
	}
	if _, err := backend.List(t.Context(), mb, "/locked"); err != nil {
		t.Errorf("expected a readable directory, got %v", err)
	}
}

func TestMemoryBackend_CreateAndRemove(t *testing.T) {
	mb := NewMemoryBackend()

	if err := mb.Mkdir("/a/b"); !errors.Is(err, data.ErrPathNotExist) {
		t.Errorf("expected ErrPathNotExist for a missing parent, got %v", err)
	}
	if err := mb.MkdirAll("/a/b/c"); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mb.Mkdir("/a"); !errors.Is(err, data.ErrExist) {
		t.Errorf("expected ErrExist, got %v", err)
	}
	if err := mb.WriteFile("/a/b/c/file", 3); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mb.WriteFile("/a/bb", 3); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}
	if err := mb.WriteFile("/a/b/c/file/nested", 1); !errors.Is(err, data.ErrNotDirectory) {
		t.Errorf("expected ErrNotDirectory, got %v", err)
	}

	if err := mb.Remove("/a/b"); err != nil {
		t.Fatalf("Remove failed: %v", err)
	}

	for _, p := range []string{"/a/b", "/a/b/c", "/a/b/c/file"} {
		if _, err := mb.Stat(t.Context(), p); !errors.Is(err, data.ErrPathNotExist) {
			t.Errorf("expected %s to be removed, got %v", p, err)
		}
	}
	if _, err := mb.Stat(t.Context(), "/a/bb"); err != nil {
		t.Errorf("expected sibling /a/bb to survive, got %v", err)
	}

	children, err := mb.ListChildren(t.Context(), "/a")
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 1 || children[0].Path != "/a/bb" {
		t.Errorf("unexpected children after removal: %v", children)
	}

	if err := mb.Remove("/"); !errors.Is(err, data.ErrInvalidPath) {
		t.Errorf("expected ErrInvalidPath when removing the root, got %v", err)
	}
}

func TestMemoryBackend_Close(t *testing.T) {
	mb := NewMemoryBackend()
	if err := mb.Mkdir("/dir"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}

	if err := mb.Close(t.Context()); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	if _, err := mb.Stat(t.Context(), "/dir"); !errors.Is(err, data.ErrPathNotExist) {
		t.Errorf("expected an empty backend after Close, got %v", err)
	}
	if _, err := mb.Stat(t.Context(), "/"); err != nil {
		t.Errorf("expected the root to exist after Close, got %v", err)
	}
}
