package traverse

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidArgument is wrapped by every configuration error.
	ErrInvalidArgument = errors.New("traverse: invalid argument")
	// ErrIterationExhausted is returned by Next once HasNext reports false.
	ErrIterationExhausted = errors.New("traverse: iteration exhausted")
	// ErrRemoveUnsupported is returned by Remove; traversals never modify the filesystem.
	ErrRemoveUnsupported = errors.New("traverse: remove is not supported")
)

// TraversalError reports a directory that could not be read under ErrorPolicyThrow.
// The underlying *data.ListingError is available through errors.As and its
// failure kind through errors.Is with the data sentinel errors.
type TraversalError struct {
	Path  string
	Depth int
	Err   error
}

func (te *TraversalError) Error() string {
	return fmt.Sprintf("traverse: failed to read '%s' at depth %d: %v", te.Path, te.Depth, te.Err)
}

func (te *TraversalError) Unwrap() error {
	return te.Err
}

func invalidArgument(name, reason string) error {
	return fmt.Errorf("%w: %s %s", ErrInvalidArgument, name, reason)
}
