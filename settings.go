package traverse

import (
	"fmt"

	"github.com/mwantia/traverse/data"
)

// Filter decides whether an entry at the given depth is accepted.
// The root has depth 0 and its immediate children have depth 1.
type Filter func(entry *data.Entry, depth int) bool

// Comparator orders two entries following the cmp.Compare convention.
type Comparator func(a, b *data.Entry) int

// Callbacks are kept behind pointers allocated once per configuration call,
// which keeps Settings comparable and usable as a map key.
type filterFunc struct {
	fn Filter
}

type comparatorFunc struct {
	fn Comparator
}

// Settings is the immutable configuration of a traversal.
// Every With method returns a modified copy; the receiver is never changed.
// Two settings are equal (==) when all seven fields match, where callbacks
// match only if they stem from the same With call.
type Settings struct {
	rootPath          string
	depthPolicy       DepthPolicy
	errorPolicy       ErrorPolicy
	descendFilter     *filterFunc
	descendComparator *comparatorFunc
	iterateFilter     *filterFunc
	iterateComparator *comparatorFunc
}

// NewSettings creates settings for rootPath with the default error policy
// (ErrorPolicyThrow), no filters and no ordering. The root does not need to
// exist at configuration time.
func NewSettings(rootPath string, depthPolicy DepthPolicy) (Settings, error) {
	s := Settings{
		errorPolicy: ErrorPolicyThrow,
	}

	s, err := s.WithRootPath(rootPath)
	if err != nil {
		return Settings{}, err
	}

	return s.WithDepthPolicy(depthPolicy)
}

func (s Settings) RootPath() string {
	return s.rootPath
}

func (s Settings) DepthPolicy() DepthPolicy {
	return s.depthPolicy
}

func (s Settings) ErrorPolicy() ErrorPolicy {
	return s.errorPolicy
}

// DescendFilter returns the configured descend filter or nil.
func (s Settings) DescendFilter() Filter {
	if s.descendFilter == nil {
		return nil
	}
	return s.descendFilter.fn
}

// DescendComparator returns the configured descend comparator or nil.
func (s Settings) DescendComparator() Comparator {
	if s.descendComparator == nil {
		return nil
	}
	return s.descendComparator.fn
}

// IterateFilter returns the configured iterate filter or nil.
func (s Settings) IterateFilter() Filter {
	if s.iterateFilter == nil {
		return nil
	}
	return s.iterateFilter.fn
}

// IterateComparator returns the configured iterate comparator or nil.
func (s Settings) IterateComparator() Comparator {
	if s.iterateComparator == nil {
		return nil
	}
	return s.iterateComparator.fn
}

func (s Settings) WithRootPath(rootPath string) (Settings, error) {
	if rootPath == "" {
		return s, invalidArgument("root path", "must not be empty")
	}

	s.rootPath = rootPath
	return s, nil
}

func (s Settings) WithDepthPolicy(depthPolicy DepthPolicy) (Settings, error) {
	if !depthPolicy.IsValid() {
		return s, invalidArgument("depth policy", fmt.Sprintf("'%d' is unknown", depthPolicy))
	}

	s.depthPolicy = depthPolicy
	return s, nil
}

func (s Settings) WithErrorPolicy(errorPolicy ErrorPolicy) (Settings, error) {
	if !errorPolicy.IsValid() {
		return s, invalidArgument("error policy", fmt.Sprintf("'%d' is unknown", errorPolicy))
	}

	s.errorPolicy = errorPolicy
	return s, nil
}

// WithDescendFilter sets the filter deciding which directories are expanded.
// It is only ever called with directories.
func (s Settings) WithDescendFilter(filter Filter) (Settings, error) {
	if filter == nil {
		return s, invalidArgument("descend filter", "must not be nil")
	}

	s.descendFilter = &filterFunc{fn: filter}
	return s, nil
}

// WithDescendComparator sets the order in which the subdirectories of a directory are expanded.
func (s Settings) WithDescendComparator(comparator Comparator) (Settings, error) {
	if comparator == nil {
		return s, invalidArgument("descend comparator", "must not be nil")
	}

	s.descendComparator = &comparatorFunc{fn: comparator}
	return s, nil
}

// WithIterateFilter sets the filter deciding which entries are yielded.
func (s Settings) WithIterateFilter(filter Filter) (Settings, error) {
	if filter == nil {
		return s, invalidArgument("iterate filter", "must not be nil")
	}

	s.iterateFilter = &filterFunc{fn: filter}
	return s, nil
}

// WithIterateComparator sets the order in which the entries of a directory are yielded.
func (s Settings) WithIterateComparator(comparator Comparator) (Settings, error) {
	if comparator == nil {
		return s, invalidArgument("iterate comparator", "must not be nil")
	}

	s.iterateComparator = &comparatorFunc{fn: comparator}
	return s, nil
}

func (s Settings) String() string {
	return fmt.Sprintf("root=%s depth=%s errors=%s descendFilter=%t descendComparator=%t iterateFilter=%t iterateComparator=%t",
		s.rootPath, s.depthPolicy, s.errorPolicy,
		s.descendFilter != nil, s.descendComparator != nil,
		s.iterateFilter != nil, s.iterateComparator != nil)
}
