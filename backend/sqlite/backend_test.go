package sqlite

import (
	"context"
	"errors"
	"slices"
	"testing"

	"github.com/mwantia/traverse"
	"github.com/mwantia/traverse/backend/memory"
	"github.com/mwantia/traverse/data"
)

func newTestBackend(tst *testing.T) *SQLiteBackend {
	tst.Helper()

	sb, err := NewSQLiteBackend(":memory:")
	if err != nil {
		tst.Fatalf("Failed to create backend: %v", err)
	}
	if err := sb.Open(tst.Context()); err != nil {
		tst.Fatalf("Failed to open backend: %v", err)
	}

	tst.Cleanup(func() {
		sb.Close(context.Background())
	})

	return sb
}

func newSourceTree(tst *testing.T) *memory.MemoryBackend {
	tst.Helper()

	mb := memory.NewMemoryBackend()
	if err := mb.MkdirAll("/top/dir1/dir2"); err != nil {
		tst.Fatalf("MkdirAll failed: %v", err)
	}
	for _, file := range []string{"/top/file1", "/top/dir1/file3", "/top/dir1/dir2/file5.go"} {
		if err := mb.WriteFile(file, 42); err != nil {
			tst.Fatalf("WriteFile failed: %v", err)
		}
	}

	return mb
}

func collect(tst *testing.T, t *traverse.Traversal) []string {
	tst.Helper()

	entries, err := t.Collect(tst.Context())
	if err != nil {
		tst.Fatalf("Collect failed: %v", err)
	}

	var paths []string
	for _, entry := range entries {
		paths = append(paths, entry.Path)
	}

	return paths
}

func TestSQLiteBackend_ImportReplaysTraversal(t *testing.T) {
	sb := newTestBackend(t)
	source, err := traverse.New("/top", traverse.DescendLast, traverse.WithLister(newSourceTree(t)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	count, err := sb.Import(t.Context(), source)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if count != 6 || sb.Len() != 6 {
		t.Fatalf("expected 6 imported entries, got %d (stored %d)", count, sb.Len())
	}

	for _, depth := range []traverse.DepthPolicy{traverse.DescendFirst, traverse.DescendLast} {
		want := collect(t, mustDepth(t, source, depth))

		replay, err := traverse.New("/top", depth, traverse.WithLister(sb))
		if err != nil {
			t.Fatalf("New failed: %v", err)
		}

		if got := collect(t, replay); !slices.Equal(got, want) {
			t.Errorf("%s: replay yielded %v, want %v", depth, got, want)
		}
	}

	entry, err := sb.Stat(t.Context(), "/top/dir1/dir2/file5.go")
	if err != nil {
		t.Fatalf("Stat failed: %v", err)
	}
	if entry.Size != 42 || entry.ContentType != data.ContentTypeTextGo || entry.IsDir() {
		t.Errorf("unexpected stored entry %+v", entry)
	}
}

func mustDepth(tst *testing.T, t *traverse.Traversal, depth traverse.DepthPolicy) *traverse.Traversal {
	tst.Helper()

	t, err := t.WithDepthPolicy(depth)
	if err != nil {
		tst.Fatalf("WithDepthPolicy failed: %v", err)
	}

	return t
}

func TestSQLiteBackend_PutReplaces(t *testing.T) {
	sb := newTestBackend(t)

	entries := []*data.Entry{
		data.NewDirectoryEntry("/r", 0755),
		data.NewFileEntry("/r/b", 1, 0644),
		data.NewFileEntry("/r/a", 1, 0644),
	}
	for _, entry := range entries {
		if err := sb.Put(t.Context(), entry); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	if err := sb.Put(t.Context(), data.NewFileEntry("/r/b", 99, 0600)); err != nil {
		t.Fatalf("Put failed: %v", err)
	}

	children, err := sb.ListChildren(t.Context(), "/r/")
	if err != nil {
		t.Fatalf("ListChildren failed: %v", err)
	}
	if len(children) != 2 || children[0].Path != "/r/b" || children[1].Path != "/r/a" {
		t.Fatalf("unexpected children %v", children)
	}
	if children[0].Size != 99 || children[0].Mode.Perm() != 0600 {
		t.Errorf("replaced entry was not updated: %+v", children[0])
	}
	if sb.Len() != 3 {
		t.Errorf("expected 3 stored entries, got %d", sb.Len())
	}
}

func TestSQLiteBackend_Errors(t *testing.T) {
	sb := newTestBackend(t)

	for _, entry := range []*data.Entry{
		data.NewDirectoryEntry("/locked", 0),
		data.NewFileEntry("/file", 0, 0644),
	} {
		if err := sb.Put(t.Context(), entry); err != nil {
			t.Fatalf("Put failed: %v", err)
		}
	}

	tests := map[string]struct {
		path string
		want error
	}{
		"missing":       {path: "/missing", want: data.ErrPathNotExist},
		"not directory": {path: "/file", want: data.ErrNotDirectory},
		"not readable":  {path: "/locked", want: data.ErrNotReadable},
	}

	for name, tt := range tests {
		t.Run(name, func(tst *testing.T) {
			if _, err := sb.ListChildren(tst.Context(), tt.path); !errors.Is(err, tt.want) {
				tst.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestSQLiteBackend_ImportReportsTraversalErrors(t *testing.T) {
	sb := newTestBackend(t)

	mb := newSourceTree(t)
	if err := mb.SetReadable("/top/dir1", false); err != nil {
		t.Fatalf("SetReadable failed: %v", err)
	}

	source, err := traverse.New("/top", traverse.DescendLast, traverse.WithLister(mb))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	count, err := sb.Import(t.Context(), source)
	if !errors.Is(err, data.ErrNotReadable) {
		t.Fatalf("expected ErrNotReadable, got %v", err)
	}
	if count != 3 {
		t.Errorf("expected the entries before the failure to be stored, got %d", count)
	}

	ignoring, err := source.WithErrorPolicy(traverse.ErrorPolicyIgnore)
	if err != nil {
		t.Fatalf("WithErrorPolicy failed: %v", err)
	}
	if _, err := sb.Import(t.Context(), ignoring); err != nil {
		t.Errorf("expected no error when ignoring failures, got %v", err)
	}
}
