package data

import (
	"iter"
	"slices"
)

// Listing is an immutable snapshot of the immediate children of one directory,
// as returned by a single directory read.
// Filter and Sort never modify the receiver; they return a new Listing.
type Listing struct {
	parent   string
	children []*Entry
}

// NewListing creates a listing for parent. The children slice is copied.
func NewListing(parent string, children []*Entry) Listing {
	return Listing{
		parent:   parent,
		children: slices.Clone(children),
	}
}

// Parent returns the path of the listed directory.
func (l Listing) Parent() string {
	return l.parent
}

// Len returns the number of children.
func (l Listing) Len() int {
	return len(l.children)
}

// At returns the child at index i.
func (l Listing) At(i int) *Entry {
	return l.children[i]
}

// Children returns a copy of the child sequence.
func (l Listing) Children() []*Entry {
	return slices.Clone(l.children)
}

// Paths returns the child paths in listing order.
func (l Listing) Paths() []string {
	paths := make([]string, 0, len(l.children))
	for _, child := range l.children {
		paths = append(paths, child.Path)
	}

	return paths
}

// All iterates the children in listing order.
func (l Listing) All() iter.Seq[*Entry] {
	return slices.Values(l.children)
}

// Filter returns a listing containing only the children accepted by pred.
// The relative order of the children is preserved.
func (l Listing) Filter(pred func(*Entry) bool) Listing {
	filtered := make([]*Entry, 0, len(l.children))
	for _, child := range l.children {
		if pred(child) {
			filtered = append(filtered, child)
		}
	}

	return Listing{
		parent:   l.parent,
		children: filtered,
	}
}

// Sort returns a listing with the children reordered by cmp using a stable sort.
// A nil cmp keeps the listing order.
func (l Listing) Sort(cmp func(a, b *Entry) int) Listing {
	if cmp == nil {
		return l
	}

	sorted := slices.Clone(l.children)
	slices.SortStableFunc(sorted, cmp)

	return Listing{
		parent:   l.parent,
		children: sorted,
	}
}

// Equal reports whether both listings have the same parent and the same child
// paths in the same order.
func (l Listing) Equal(other Listing) bool {
	if l.parent != other.parent || len(l.children) != len(other.children) {
		return false
	}

	for i := range l.children {
		if l.children[i].Path != other.children[i].Path {
			return false
		}
	}

	return true
}
