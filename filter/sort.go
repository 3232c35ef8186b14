package filter

import (
	"cmp"
	"fmt"
	"strings"

	"github.com/mwantia/traverse"
	"github.com/mwantia/traverse/data"
)

type SortField string

const (
	SortByPath       SortField = "path"
	SortByName       SortField = "name"
	SortBySize       SortField = "size"
	SortByModifyTime SortField = "mtime"
)

func ByPath(a, b *data.Entry) int {
	return strings.Compare(a.Path, b.Path)
}

func ByName(a, b *data.Entry) int {
	return strings.Compare(a.Name, b.Name)
}

func BySize(a, b *data.Entry) int {
	return cmp.Compare(a.Size, b.Size)
}

func ByModifyTime(a, b *data.Entry) int {
	return a.ModifyTime.Compare(b.ModifyTime)
}

// DirectoriesFirst orders directories before all other entries.
func DirectoriesFirst(a, b *data.Entry) int {
	switch {
	case a.IsDir() == b.IsDir():
		return 0
	case a.IsDir():
		return -1
	default:
		return 1
	}
}

func Reverse(c traverse.Comparator) traverse.Comparator {
	return func(a, b *data.Entry) int {
		return c(b, a)
	}
}

// Then uses next to break ties of first.
func Then(first, next traverse.Comparator) traverse.Comparator {
	return func(a, b *data.Entry) int {
		if result := first(a, b); result != 0 {
			return result
		}
		return next(a, b)
	}
}

// ParseComparator maps a sort field name to a comparator.
// A leading '-' reverses the order, e.g. "-size" sorts the largest entries first.
// Ties are broken by name.
func ParseComparator(s string) (traverse.Comparator, error) {
	s = strings.TrimSpace(s)
	descending := strings.HasPrefix(s, "-")
	field := SortField(strings.ToLower(strings.TrimPrefix(s, "-")))

	var c traverse.Comparator
	switch field {
	case SortByPath:
		c = ByPath
	case SortByName:
		c = ByName
	case SortBySize:
		c = Then(BySize, ByName)
	case SortByModifyTime, "modify_time":
		c = Then(ByModifyTime, ByName)
	default:
		return nil, fmt.Errorf("%w: unknown sort field '%s'", traverse.ErrInvalidArgument, s)
	}

	if descending {
		return Reverse(c), nil
	}

	return c, nil
}
