package s3

import (
	"context"
	"errors"
	"os"
	"slices"
	"testing"

	"github.com/google/uuid"
	"github.com/mwantia/traverse"
	"github.com/mwantia/traverse/data"
)

func TestToObjectKey(t *testing.T) {
	tests := map[string]string{
		"/":         "",
		"":          "",
		"/a/b":      "a/b",
		"a/b/":      "a/b",
		"/a//b/../": "a",
	}

	for input, want := range tests {
		if got := toObjectKey(input); got != want {
			t.Errorf("toObjectKey(%q) = %q, want %q", input, got, want)
		}
	}
}

func getenv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

// newTestBackend connects to the endpoint named by TRAVERSE_TEST_S3 and
// returns a unique root path that is removed after the test.
func newTestBackend(tst *testing.T) (*S3Backend, string) {
	tst.Helper()

	endpoint := os.Getenv("TRAVERSE_TEST_S3")
	if endpoint == "" {
		tst.Skip("TRAVERSE_TEST_S3 is not set")
	}

	sb, err := NewS3Backend(endpoint,
		getenv("TRAVERSE_TEST_S3_BUCKET", "traverse-test"),
		getenv("TRAVERSE_TEST_S3_ACCESS_KEY", "minioadmin"),
		getenv("TRAVERSE_TEST_S3_SECRET_KEY", "minioadmin"),
		false)
	if err != nil {
		tst.Fatalf("Failed to create backend: %v", err)
	}
	if err := sb.Open(tst.Context()); err != nil {
		tst.Fatalf("Failed to open backend: %v", err)
	}

	root := "/" + uuid.NewString()
	tst.Cleanup(func() {
		if err := sb.Remove(context.Background(), root); err != nil {
			tst.Errorf("Failed to clean up '%s': %v", root, err)
		}
	})

	return sb, root
}

func TestS3Backend_Traversal(t *testing.T) {
	sb, root := newTestBackend(t)

	if err := sb.Mkdir(t.Context(), root+"/empty"); err != nil {
		t.Fatalf("Mkdir failed: %v", err)
	}
	for _, p := range []string{"/docs/readme.md", "/docs/guide/intro.md", "/logo.png"} {
		if err := sb.WriteObject(t.Context(), root+p, []byte(p)); err != nil {
			t.Fatalf("WriteObject failed: %v", err)
		}
	}

	tr, err := traverse.New(root, traverse.DescendFirst, traverse.WithLister(sb))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	entries, err := tr.Collect(t.Context())
	if err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	var got []string
	for _, entry := range entries {
		got = append(got, entry.Path)
	}

	want := []string{
		root + "/docs/guide/intro.md",
		root + "/docs/guide",
		root + "/docs/readme.md",
		root + "/docs",
		root + "/empty",
		root + "/logo.png",
		root,
	}
	if !slices.Equal(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}

	if _, err := sb.ListChildren(t.Context(), root+"/logo.png"); !errors.Is(err, data.ErrNotDirectory) {
		t.Errorf("expected ErrNotDirectory, got %v", err)
	}
	if _, err := sb.Stat(t.Context(), root+"/missing"); !errors.Is(err, data.ErrPathNotExist) {
		t.Errorf("expected ErrPathNotExist, got %v", err)
	}
}
