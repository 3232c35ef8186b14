package traverse

import (
	"context"
	"iter"

	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/data"
	"github.com/mwantia/traverse/log"
)

// Iterator lazily walks a directory tree.
//
// No directory is read before the first call to HasNext or Next. An iterator
// is single-use and must not be shared between goroutines; call
// Traversal.Iterate again for another pass.
type Iterator interface {
	// HasNext reports whether another entry is available. Directories are read
	// as needed, so a listing failure under ErrorPolicyThrow is returned here.
	HasNext() (bool, error)

	// Next returns the next entry or ErrIterationExhausted.
	Next() (*data.Entry, error)

	// Remove always fails with ErrRemoveUnsupported.
	Remove() error

	// All adapts the iterator for range-over-func loops.
	// Iteration stops after the first error is yielded.
	All() iter.Seq2[*data.Entry, error]
}

// walker holds the state shared by both iterator variants.
type walker struct {
	id       string
	ctx      context.Context
	settings Settings
	lister   backend.Lister
	logger   *log.Logger

	initialized bool
	stack       []*level

	root        *data.Entry
	rootPending bool

	err error
}

func newWalker(ctx context.Context, id string, settings Settings, lister backend.Lister, logger *log.Logger) *walker {
	return &walker{
		id:       id,
		ctx:      ctx,
		settings: settings,
		lister:   lister,
		logger:   logger,
	}
}

// initialize runs init once. A failure is kept and returned on every later call.
func (w *walker) initialize(init func() error) error {
	if w.err != nil {
		return w.err
	}
	if w.initialized {
		return nil
	}

	w.initialized = true
	w.logger.Debug("starting traversal: %s", w.settings)

	return w.fail(init())
}

func (w *walker) fail(err error) error {
	if err != nil {
		w.err = err
		w.stack = nil
		w.rootPending = false
	}

	return err
}

// resolveRoot looks up the root path. It returns a nil entry without error
// when the lookup failed and the failure is ignored.
func (w *walker) resolveRoot() (*data.Entry, error) {
	if err := w.ctx.Err(); err != nil {
		return nil, w.handle(w.settings.RootPath(), 0, data.NewListingError(data.KindUnknown, w.settings.RootPath(), err))
	}

	root, err := w.lister.Stat(w.ctx, w.settings.RootPath())
	if err != nil {
		return nil, w.handle(w.settings.RootPath(), 0, err)
	}

	w.root = root
	return root, nil
}

// openRoot resolves the root and opens its level. A directory root rejected by
// the descend filter stays closed; any other root is opened, so a file root
// fails with a not-a-directory listing error. The root is only pending when
// its level opened or was never requested.
func (w *walker) openRoot() error {
	root, err := w.resolveRoot()
	if err != nil || root == nil {
		return err
	}

	if root.IsDir() && !accepts(w.settings.DescendFilter(), root, 0) {
		w.rootPending = w.iterable(root, 0)
		return nil
	}

	if err := w.descendInto(root, 0); err != nil {
		return err
	}

	w.rootPending = len(w.stack) > 0 && w.iterable(root, 0)
	return nil
}

// iterable reports whether entry at depth gets yielded.
func (w *walker) iterable(entry *data.Entry, depth int) bool {
	return accepts(w.settings.IterateFilter(), entry, depth)
}

// descendInto opens the directory dir found at depth and pushes its level.
// Under ErrorPolicyIgnore a failing directory is skipped without error.
func (w *walker) descendInto(dir *data.Entry, depth int) error {
	lvl, err := openLevel(w.ctx, w.lister, dir, depth+1, w.settings)
	if err != nil {
		return w.handle(dir.Path, depth, err)
	}

	w.logger.Debug("opened '%s' at depth %d with %d entries", dir.Path, lvl.depth, lvl.listing.Len())
	w.stack = append(w.stack, lvl)

	return nil
}

func (w *walker) handle(path string, depth int, err error) error {
	if w.settings.ErrorPolicy() == ErrorPolicyIgnore {
		w.logger.Warn("ignoring '%s' at depth %d: %v", path, depth, err)
		return nil
	}

	return &TraversalError{
		Path:  path,
		Depth: depth,
		Err:   err,
	}
}

func (w *walker) top() *level {
	return w.stack[len(w.stack)-1]
}

func (w *walker) pop() {
	popped := w.top()
	w.stack[len(w.stack)-1] = nil
	w.stack = w.stack[:len(w.stack)-1]

	w.logger.Debug("leaving '%s'", popped.dir.Path)
}

func (w *walker) Remove() error {
	return ErrRemoveUnsupported
}

// all drives it through HasNext and Next.
func all(it Iterator) iter.Seq2[*data.Entry, error] {
	return func(yield func(*data.Entry, error) bool) {
		for {
			ok, err := it.HasNext()
			if err != nil {
				yield(nil, err)
				return
			}
			if !ok {
				return
			}

			entry, err := it.Next()
			if !yield(entry, err) || err != nil {
				return
			}
		}
	}
}
