// Package traverse walks directory trees lazily, similar to find(1).
//
// A Traversal bundles immutable Settings with the backend.Lister used to read
// directories. Every call to Iterate returns a fresh Iterator that reads each
// directory at most once, when the walk first needs it. Which directories are
// expanded and which entries are yielded are configured independently through
// descend and iterate filters and comparators.
package traverse

import (
	"context"
	"iter"

	"github.com/google/uuid"
	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/backend/local"
	"github.com/mwantia/traverse/data"
	"github.com/mwantia/traverse/log"
)

// Traversal is the reusable factory for iterators over one configuration.
// Its With methods return new traversals and never modify the receiver.
type Traversal struct {
	settings Settings
	lister   backend.Lister
	logger   *log.Logger
}

// Option configures the collaborators of a Traversal.
type Option func(*Traversal) error

// WithLister sets the backend used to read directories.
// The default reads the host filesystem.
func WithLister(lister backend.Lister) Option {
	return func(t *Traversal) error {
		if lister == nil {
			return invalidArgument("lister", "must not be nil")
		}

		t.lister = lister
		return nil
	}
}

// WithLogger sets the logger used for traversal diagnostics.
func WithLogger(logger *log.Logger) Option {
	return func(t *Traversal) error {
		if logger == nil {
			return invalidArgument("logger", "must not be nil")
		}

		t.logger = logger
		return nil
	}
}

// New creates a traversal of rootPath. All optional settings start at their
// defaults: ErrorPolicyThrow, accept-all filters and listing order.
func New(rootPath string, depthPolicy DepthPolicy, opts ...Option) (*Traversal, error) {
	settings, err := NewSettings(rootPath, depthPolicy)
	if err != nil {
		return nil, err
	}

	t := &Traversal{
		settings: settings,
		lister:   local.NewLocalBackend(),
		logger:   log.NewNop(),
	}

	for _, opt := range opts {
		if err := opt(t); err != nil {
			return nil, err
		}
	}

	return t, nil
}

// Settings returns the configuration of t.
func (t *Traversal) Settings() Settings {
	return t.settings
}

// Lister returns the backend used to read directories.
func (t *Traversal) Lister() backend.Lister {
	return t.lister
}

// WithSettings returns a traversal using settings with the collaborators of t.
func (t *Traversal) WithSettings(settings Settings) (*Traversal, error) {
	if !settings.DepthPolicy().IsValid() || !settings.ErrorPolicy().IsValid() || settings.RootPath() == "" {
		return nil, invalidArgument("settings", "must be created through NewSettings")
	}

	return t.with(settings), nil
}

func (t *Traversal) WithRootPath(rootPath string) (*Traversal, error) {
	return t.derive(t.settings.WithRootPath(rootPath))
}

func (t *Traversal) WithDepthPolicy(depthPolicy DepthPolicy) (*Traversal, error) {
	return t.derive(t.settings.WithDepthPolicy(depthPolicy))
}

func (t *Traversal) WithErrorPolicy(errorPolicy ErrorPolicy) (*Traversal, error) {
	return t.derive(t.settings.WithErrorPolicy(errorPolicy))
}

func (t *Traversal) WithDescendFilter(filter Filter) (*Traversal, error) {
	return t.derive(t.settings.WithDescendFilter(filter))
}

func (t *Traversal) WithDescendComparator(comparator Comparator) (*Traversal, error) {
	return t.derive(t.settings.WithDescendComparator(comparator))
}

func (t *Traversal) WithIterateFilter(filter Filter) (*Traversal, error) {
	return t.derive(t.settings.WithIterateFilter(filter))
}

func (t *Traversal) WithIterateComparator(comparator Comparator) (*Traversal, error) {
	return t.derive(t.settings.WithIterateComparator(comparator))
}

func (t *Traversal) derive(settings Settings, err error) (*Traversal, error) {
	if err != nil {
		return nil, err
	}

	return t.with(settings), nil
}

func (t *Traversal) with(settings Settings) *Traversal {
	return &Traversal{
		settings: settings,
		lister:   t.lister,
		logger:   t.logger,
	}
}

// Iterate returns a new iterator bound to the current settings. Iterators are
// independent of each other and each one sees the filesystem as it is when it
// reads a directory. ctx is passed to every directory read.
func (t *Traversal) Iterate(ctx context.Context) Iterator {
	if ctx == nil {
		ctx = context.Background()
	}

	id := newIteratorID()
	name := "iterator"
	if id != "" {
		name += "/" + id
	}

	w := newWalker(ctx, id, t.settings, t.lister, t.logger.Named(name))

	return t.settings.DepthPolicy().newIterator(w)
}

// All iterates a fresh iterator with a range-over-func loop.
func (t *Traversal) All(ctx context.Context) iter.Seq2[*data.Entry, error] {
	return t.Iterate(ctx).All()
}

// Collect drains a fresh iterator into a slice.
func (t *Traversal) Collect(ctx context.Context) ([]*data.Entry, error) {
	var entries []*data.Entry
	for entry, err := range t.All(ctx) {
		if err != nil {
			return entries, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// newIteratorID returns a time-ordered id for log lines, or "" when no
// random source is available.
func newIteratorID() string {
	id, err := uuid.NewV7()
	if err != nil {
		return ""
	}

	return id.String()
}
