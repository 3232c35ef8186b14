package backend

import (
	"context"
	"iter"

	"github.com/mwantia/traverse/data"
)

// Writer stores entries produced by a traversal.
type Writer interface {
	// Put inserts or replaces the entry stored for entry.Path.
	Put(ctx context.Context, entry *data.Entry) error
}

// Import stores every entry of seq in w and returns the number of stored entries.
// Failed writes are collected and returned together once seq is exhausted;
// an error yielded by seq stops the import.
func Import(ctx context.Context, seq iter.Seq2[*data.Entry, error], w Writer) (int, error) {
	var (
		errs  data.Errors
		count int
	)

	for entry, err := range seq {
		if err != nil {
			errs.Add(err)
			break
		}

		if err := w.Put(ctx, entry); err != nil {
			errs.Add(err)
			continue
		}
		count++
	}

	return count, errs.Errors()
}
