// Package filter provides ready-made filters and comparators for traversals.
package filter

import (
	"path"
	"strings"

	"github.com/mwantia/traverse"
	"github.com/mwantia/traverse/data"
)

// Directories accepts directories only.
func Directories() traverse.Filter {
	return func(entry *data.Entry, _ int) bool {
		return entry.IsDir()
	}
}

// Files accepts everything that is not a directory.
func Files() traverse.Filter {
	return Not(Directories())
}

// Regular accepts regular files only.
func Regular() traverse.Filter {
	return func(entry *data.Entry, _ int) bool {
		return entry.Mode.IsRegular()
	}
}

func Not(f traverse.Filter) traverse.Filter {
	return func(entry *data.Entry, depth int) bool {
		return !f(entry, depth)
	}
}

// And accepts entries accepted by every filter. Without filters it accepts everything.
func And(filters ...traverse.Filter) traverse.Filter {
	return func(entry *data.Entry, depth int) bool {
		for _, f := range filters {
			if !f(entry, depth) {
				return false
			}
		}
		return true
	}
}

// Or accepts entries accepted by any filter. Without filters it accepts nothing.
func Or(filters ...traverse.Filter) traverse.Filter {
	return func(entry *data.Entry, depth int) bool {
		for _, f := range filters {
			if f(entry, depth) {
				return true
			}
		}
		return false
	}
}

// MaxDepth accepts entries no deeper than n.
// Used as descend filter, MaxDepth(n-1) stops reading below depth n.
func MaxDepth(n int) traverse.Filter {
	return func(_ *data.Entry, depth int) bool {
		return depth <= n
	}
}

// MinDepth accepts entries at depth n or deeper.
func MinDepth(n int) traverse.Filter {
	return func(_ *data.Entry, depth int) bool {
		return depth >= n
	}
}

// Name matches the base name of an entry against a shell pattern, see path.Match.
// A malformed pattern matches nothing.
func Name(pattern string) traverse.Filter {
	return func(entry *data.Entry, _ int) bool {
		matched, err := path.Match(pattern, entry.Name)
		return err == nil && matched
	}
}

// Hidden accepts entries whose name starts with a dot.
func Hidden() traverse.Filter {
	return func(entry *data.Entry, _ int) bool {
		return strings.HasPrefix(entry.Name, ".") && entry.Name != "." && entry.Name != ".."
	}
}

// Size accepts non-directories within [minSize, maxSize] bytes. A negative maxSize means unbounded.
func Size(minSize, maxSize int64) traverse.Filter {
	return func(entry *data.Entry, _ int) bool {
		if entry.IsDir() || entry.Size < minSize {
			return false
		}
		return maxSize < 0 || entry.Size <= maxSize
	}
}

// ContentType matches the content type of an entry with wildcard support.
// Supports patterns like "image/*", "*/json", "*/*" or "*".
func ContentType(pattern string) traverse.Filter {
	return func(entry *data.Entry, _ int) bool {
		return matchContentType(string(entry.ContentType), pattern)
	}
}

func matchContentType(contentType string, pattern string) bool {
	// Full wildcard
	if pattern == "*" || pattern == "*/*" {
		return true
	}

	// Exact match
	if contentType == pattern {
		return true
	}

	// Parse content type and pattern (format: type/subtype)
	contentParts := strings.Split(contentType, "/")
	patternParts := strings.Split(pattern, "/")

	if len(contentParts) != len(patternParts) {
		return false
	}

	for i := range patternParts {
		if patternParts[i] != "*" && patternParts[i] != contentParts[i] {
			return false
		}
	}

	return true
}
