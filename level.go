package traverse

import (
	"context"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/data"
)

// level is the traversal state of one open directory.
// It owns the listing read when the directory was opened and derives two
// views from it on first use: the subdirectories to descend into and the
// entries to yield. Each view is computed at most once.
type level struct {
	dir     *data.Entry
	depth   int
	listing data.Listing

	descendFilter     Filter
	descendComparator Comparator
	iterateFilter     Filter
	iterateComparator Comparator

	descend lazyView
	iterate lazyView
}

// lazyView is a view that has not been computed until computed is set.
type lazyView struct {
	computed bool
	listing  data.Listing
	cursor   int
}

// openLevel reads the children of dir exactly once. depth is the depth of
// those children, so the level of the root has depth 1.
func openLevel(ctx context.Context, lister backend.Lister, dir *data.Entry, depth int, settings Settings) (*level, error) {
	listing, err := backend.List(ctx, lister, dir.Path)
	if err != nil {
		return nil, err
	}

	return newLevel(dir, depth, listing,
		settings.DescendFilter(), settings.DescendComparator(),
		settings.IterateFilter(), settings.IterateComparator()), nil
}

func newLevel(dir *data.Entry, depth int, listing data.Listing,
	descendFilter Filter, descendComparator Comparator,
	iterateFilter Filter, iterateComparator Comparator) *level {
	return &level{
		dir:               dir,
		depth:             depth,
		listing:           listing,
		descendFilter:     descendFilter,
		descendComparator: descendComparator,
		iterateFilter:     iterateFilter,
		iterateComparator: iterateComparator,
	}
}

// descendView returns the subdirectories accepted by the descend filter in
// descend order. Entries that are not directories are never part of it.
func (l *level) descendView() data.Listing {
	if !l.descend.computed {
		l.descend.listing = l.listing.Filter(func(entry *data.Entry) bool {
			return entry.IsDir() && accepts(l.descendFilter, entry, l.depth)
		}).Sort(l.descendComparator)
		l.descend.computed = true
	}

	return l.descend.listing
}

// iterateView returns the entries accepted by the iterate filter in iterate order.
func (l *level) iterateView() data.Listing {
	if !l.iterate.computed {
		l.iterate.listing = l.listing.Filter(func(entry *data.Entry) bool {
			return accepts(l.iterateFilter, entry, l.depth)
		}).Sort(l.iterateComparator)
		l.iterate.computed = true
	}

	return l.iterate.listing
}

func (l *level) descendHasNext() bool {
	return l.descend.cursor < l.descendView().Len()
}

func (l *level) descendNext() *data.Entry {
	entry := l.descendView().At(l.descend.cursor)
	l.descend.cursor++

	return entry
}

func (l *level) iterateHasNext() bool {
	return l.iterate.cursor < l.iterateView().Len()
}

func (l *level) iterateNext() *data.Entry {
	entry := l.iterateView().At(l.iterate.cursor)
	l.iterate.cursor++

	return entry
}

func accepts(filter Filter, entry *data.Entry, depth int) bool {
	return filter == nil || filter(entry, depth)
}
