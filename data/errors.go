package data

import (
	"errors"
	"fmt"
	"sync"
)

// Standard errors that listing backends should use.
var (
	ErrInvalidPath = errors.New("data: invalid path detected")
	ErrExist       = errors.New("data: path already exists")

	// Listing failure kinds, matched by *ListingError through errors.Is
	ErrPathNotExist = errors.New("data: path does not exist")
	ErrNotDirectory = errors.New("data: path is not a directory")
	ErrNotReadable  = errors.New("data: directory not readable")
	ErrUnknown      = errors.New("data: unknown listing failure")
)

// ListingErrorKind classifies why a path could not be listed or resolved.
type ListingErrorKind int

const (
	KindUnknown ListingErrorKind = iota
	KindPathNotExist
	KindNotDirectory
	KindNotReadable
)

func (k ListingErrorKind) String() string {
	switch k {
	case KindPathNotExist:
		return "path does not exist"
	case KindNotDirectory:
		return "path is not a directory"
	case KindNotReadable:
		return "directory not readable"
	default:
		return "unknown"
	}
}

func (k ListingErrorKind) sentinel() error {
	switch k {
	case KindPathNotExist:
		return ErrPathNotExist
	case KindNotDirectory:
		return ErrNotDirectory
	case KindNotReadable:
		return ErrNotReadable
	default:
		return ErrUnknown
	}
}

// ListingError reports a failed directory read or path lookup.
type ListingError struct {
	Kind ListingErrorKind
	Path string
	Err  error
}

func NewListingError(kind ListingErrorKind, path string, err error) *ListingError {
	return &ListingError{
		Kind: kind,
		Path: path,
		Err:  err,
	}
}

func (le *ListingError) Error() string {
	if le.Err != nil {
		return fmt.Sprintf("data: cannot list '%s': %s: %v", le.Path, le.Kind, le.Err)
	}

	return fmt.Sprintf("data: cannot list '%s': %s", le.Path, le.Kind)
}

func (le *ListingError) Unwrap() error {
	return le.Err
}

// Is matches the sentinel error of the failure kind.
func (le *ListingError) Is(target error) bool {
	return target == le.Kind.sentinel()
}

// KindOf returns the listing failure kind carried by err.
// Errors that are not listing errors are reported as KindUnknown.
func KindOf(err error) ListingErrorKind {
	var le *ListingError
	if errors.As(err, &le) {
		return le.Kind
	}

	return KindUnknown
}

// Errors collects multiple errors and is safe for concurrent use.
type Errors struct {
	mu     sync.RWMutex
	errors []error
}

func (e *Errors) Add(err error) {
	if err == nil {
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = append(e.errors, err)
}

func (e *Errors) Len() int {
	e.mu.RLock()
	defer e.mu.RUnlock()

	return len(e.errors)
}

func (e *Errors) Clear() {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.errors = make([]error, 0)
}

func (e *Errors) Errors() error {
	e.mu.RLock()
	defer e.mu.RUnlock()

	if len(e.errors) == 0 {
		return nil
	}

	return errors.Join(e.errors...)
}
