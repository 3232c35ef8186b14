package data

import (
	"path"
	"strings"
)

// ToAbsolutePath ensures the path always starts with a leading slash
// and is cleaned of duplicate separators and dot elements.
func ToAbsolutePath(p string) (string, error) {
	if len(p) == 0 {
		return "", ErrInvalidPath
	}

	if !strings.HasPrefix(p, "/") {
		p = "/" + p
	}

	return path.Clean(p), nil
}

// ToRelativePath removes the prefix from path.
// Returns the relative path after the prefix.
// It additionally removes any leading slashes.
func ToRelativePath(p, prefix string) string {
	if prefix == "" {
		return strings.TrimPrefix(p, "/")
	}

	if p == prefix {
		return ""
	}

	relPath := strings.TrimPrefix(p, prefix)
	return strings.TrimPrefix(relPath, "/")
}

// HasPrefix checks if path lies below prefix or is equal to it.
// Both paths should be cleaned before calling.
func HasPrefix(p, prefix string) bool {
	// Root matches everything
	if prefix == "" || prefix == "/" {
		return true
	}

	if p == prefix {
		return true
	}

	return strings.HasPrefix(p, prefix+"/")
}

// ParentPath returns the parent of a cleaned absolute path.
// The root has no parent and returns an empty string.
func ParentPath(p string) string {
	if p == "/" || p == "" {
		return ""
	}

	return path.Dir(p)
}
