package traverse

import (
	"fmt"
	"strings"
)

// DepthPolicy selects when a directory is surfaced relative to its descendants.
type DepthPolicy int8

// ErrorPolicy selects what happens when a directory cannot be read.
type ErrorPolicy int8

const (
	// DescendFirst yields all descendants of the root before the root itself,
	// starting with the deepest directory along the descend order.
	DescendFirst DepthPolicy = iota + 1
	// DescendLast yields the root first and the entries of every directory
	// before the contents of its subdirectories, like find(1) without -depth.
	DescendLast
)

const (
	// ErrorPolicyThrow stops the traversal with a *TraversalError.
	ErrorPolicyThrow ErrorPolicy = iota + 1
	// ErrorPolicyIgnore treats an unreadable directory as having no children.
	ErrorPolicyIgnore
)

var depthPolicyStrings = [...]string{
	"Unknown",
	"DescendFirst",
	"DescendLast",
}

var errorPolicyStrings = [...]string{
	"Unknown",
	"Throw",
	"Ignore",
}

// ParseDepthPolicy parses a depth policy name case-insensitively.
// Dashes and underscores are ignored, so "descend-first" is accepted.
func ParseDepthPolicy(s string) (DepthPolicy, error) {
	normalized := normalizeEnum(s)
	for i := 1; i < len(depthPolicyStrings); i++ {
		if strings.EqualFold(normalized, depthPolicyStrings[i]) {
			return DepthPolicy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown depth policy '%s'", ErrInvalidArgument, s)
}

func (dp DepthPolicy) IsValid() bool {
	return dp == DescendFirst || dp == DescendLast
}

func (dp DepthPolicy) String() string {
	if !dp.IsValid() {
		return depthPolicyStrings[0]
	}
	return depthPolicyStrings[dp]
}

func (dp DepthPolicy) MarshalText() ([]byte, error) {
	return []byte(dp.String()), nil
}

func (dp *DepthPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseDepthPolicy(string(text))
	if err != nil {
		return err
	}

	*dp = policy
	return nil
}

// newIterator returns the state machine matching the policy.
func (dp DepthPolicy) newIterator(w *walker) Iterator {
	switch dp {
	case DescendFirst:
		return &descendFirstIterator{walker: w}
	default:
		return &descendLastIterator{walker: w}
	}
}

// ParseErrorPolicy parses an error policy name case-insensitively.
func ParseErrorPolicy(s string) (ErrorPolicy, error) {
	normalized := normalizeEnum(s)
	for i := 1; i < len(errorPolicyStrings); i++ {
		if strings.EqualFold(normalized, errorPolicyStrings[i]) {
			return ErrorPolicy(i), nil
		}
	}

	return 0, fmt.Errorf("%w: unknown error policy '%s'", ErrInvalidArgument, s)
}

func (ep ErrorPolicy) IsValid() bool {
	return ep == ErrorPolicyThrow || ep == ErrorPolicyIgnore
}

func (ep ErrorPolicy) String() string {
	if !ep.IsValid() {
		return errorPolicyStrings[0]
	}
	return errorPolicyStrings[ep]
}

func (ep ErrorPolicy) MarshalText() ([]byte, error) {
	return []byte(ep.String()), nil
}

func (ep *ErrorPolicy) UnmarshalText(text []byte) error {
	policy, err := ParseErrorPolicy(string(text))
	if err != nil {
		return err
	}

	*ep = policy
	return nil
}

func normalizeEnum(s string) string {
	return strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.TrimSpace(s))
}
