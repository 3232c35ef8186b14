package traverse

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/mwantia/traverse/backend/memory"
	"github.com/mwantia/traverse/log"
)

func TestWalker_LogsDepthOfOpenedLevel(t *testing.T) {
	mb := memory.NewMemoryBackend()
	if err := mb.MkdirAll("/top/dir1/dir2"); err != nil {
		t.Fatalf("MkdirAll failed: %v", err)
	}
	if err := mb.WriteFile("/top/file1", 1); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	var buf bytes.Buffer
	tr, err := New("/top", DescendLast, WithLister(mb), WithLogger(log.NewWriterLogger(&buf, "test", log.Debug)))
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}

	if _, err := tr.Collect(t.Context()); err != nil {
		t.Fatalf("Collect failed: %v", err)
	}

	for _, want := range []string{
		"opened '/top' at depth 1 with 2 entries",
		"opened '/top/dir1' at depth 2 with 1 entries",
		"opened '/top/dir1/dir2' at depth 3 with 0 entries",
	} {
		if !strings.Contains(buf.String(), want) {
			t.Errorf("expected log line %q in:\n%s", want, buf.String())
		}
	}
}

func TestNewIteratorID(t *testing.T) {
	first, second := newIteratorID(), newIteratorID()
	if first == second {
		t.Fatalf("expected unique ids, got %s twice", first)
	}

	id, err := uuid.Parse(first)
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	if id.Version() != 7 {
		t.Errorf("expected a version 7 uuid, got version %d", id.Version())
	}
}
