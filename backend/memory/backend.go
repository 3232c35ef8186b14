package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/mwantia/traverse/data"
	"github.com/tidwall/btree"
)

// MemoryBackend keeps a directory tree in memory.
//
// Paths are slash-separated and absolute. Entries are indexed in a B-tree for
// ordered prefix scans, while each directory remembers its children in
// insertion order, which is the order ListChildren reports them in.
type MemoryBackend struct {
	mu sync.RWMutex

	keys        *btree.Map[string, *data.Entry]
	directories map[string][]string
	unreadable  map[string]bool
}

func NewMemoryBackend() *MemoryBackend {
	mb := &MemoryBackend{
		keys:        btree.NewMap[string, *data.Entry](0),
		directories: make(map[string][]string),
		unreadable:  make(map[string]bool),
	}
	mb.reset()

	return mb
}

func (mb *MemoryBackend) reset() {
	mb.keys.Clear()
	clear(mb.directories)
	clear(mb.unreadable)

	mb.keys.Set("/", data.NewDirectoryEntry("/", 0755))
}

// Returns the identifier name defined for this backend
func (*MemoryBackend) Name() string {
	return "memory"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (mb *MemoryBackend) Open(ctx context.Context) error {
	// No initialization needed - backend is ready to use
	return nil
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (mb *MemoryBackend) Close(ctx context.Context) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	mb.reset()
	return nil
}

// Stat returns a copy of the entry stored for path.
func (mb *MemoryBackend) Stat(ctx context.Context, path string) (*data.Entry, error) {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, path, err)
	}

	mb.mu.RLock()
	defer mb.mu.RUnlock()

	entry, exists := mb.keys.Get(key)
	if !exists {
		return nil, data.NewListingError(data.KindPathNotExist, path, nil)
	}

	cloned := *entry
	return &cloned, nil
}

// ListChildren returns copies of the children of path in insertion order.
func (mb *MemoryBackend) ListChildren(ctx context.Context, path string) ([]*data.Entry, error) {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, path, err)
	}

	mb.mu.RLock()
	defer mb.mu.RUnlock()

	entry, exists := mb.keys.Get(key)
	if !exists {
		return nil, data.NewListingError(data.KindPathNotExist, path, nil)
	}
	if !entry.IsDir() {
		return nil, data.NewListingError(data.KindNotDirectory, path, nil)
	}
	if mb.unreadable[key] {
		return nil, data.NewListingError(data.KindNotReadable, path, nil)
	}

	children := mb.directories[key]
	entries := make([]*data.Entry, 0, len(children))
	for _, child := range children {
		if childEntry, ok := mb.keys.Get(child); ok {
			cloned := *childEntry
			entries = append(entries, &cloned)
		}
	}

	return entries, nil
}

// Mkdir creates a single directory. The parent must exist and be a directory.
func (mb *MemoryBackend) Mkdir(path string) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return mb.create(path, func(key string) *data.Entry {
		return data.NewDirectoryEntry(key, 0755)
	})
}

// MkdirAll creates a directory together with all missing parents.
func (mb *MemoryBackend) MkdirAll(path string) error {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return err
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	var missing []string
	for current := key; current != ""; current = data.ParentPath(current) {
		entry, exists := mb.keys.Get(current)
		if exists {
			if !entry.IsDir() {
				return data.NewListingError(data.KindNotDirectory, current, nil)
			}
			break
		}
		missing = append(missing, current)
	}

	slices.Reverse(missing)
	for _, dir := range missing {
		if err := mb.create(dir, func(key string) *data.Entry {
			return data.NewDirectoryEntry(key, 0755)
		}); err != nil {
			return err
		}
	}

	return nil
}

// WriteFile creates a regular file entry of the given size.
func (mb *MemoryBackend) WriteFile(path string, size int64) error {
	mb.mu.Lock()
	defer mb.mu.Unlock()

	return mb.create(path, func(key string) *data.Entry {
		entry := data.NewFileEntry(key, size, 0644)
		entry.ModifyTime = time.Now()
		return entry
	})
}

// Remove deletes path and everything below it.
func (mb *MemoryBackend) Remove(path string) error {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return err
	}
	if key == "/" {
		return data.ErrInvalidPath
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	if _, exists := mb.keys.Get(key); !exists {
		return data.NewListingError(data.KindPathNotExist, path, nil)
	}

	removed := []string{key}
	mb.keys.Ascend(key+"/", func(child string, _ *data.Entry) bool {
		if !data.HasPrefix(child, key) {
			return false
		}

		removed = append(removed, child)
		return true
	})

	for _, k := range removed {
		mb.keys.Delete(k)
		delete(mb.directories, k)
		delete(mb.unreadable, k)
	}

	parent := data.ParentPath(key)
	mb.directories[parent] = slices.DeleteFunc(mb.directories[parent], func(child string) bool {
		return child == key
	})

	return nil
}

// SetReadable toggles whether listing the directory at path fails with a permission error.
func (mb *MemoryBackend) SetReadable(path string, readable bool) error {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return err
	}

	mb.mu.Lock()
	defer mb.mu.Unlock()

	entry, exists := mb.keys.Get(key)
	if !exists {
		return data.NewListingError(data.KindPathNotExist, path, nil)
	}

	if readable {
		delete(mb.unreadable, key)
		entry.Mode = entry.Mode&^data.ModePerm | 0755
	} else {
		mb.unreadable[key] = true
		entry.Mode = entry.Mode &^ data.ModePerm
	}

	return nil
}

// create must be called with the lock held.
func (mb *MemoryBackend) create(path string, newEntry func(key string) *data.Entry) error {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return err
	}

	if _, exists := mb.keys.Get(key); exists {
		return data.ErrExist
	}

	parent := data.ParentPath(key)
	parentEntry, exists := mb.keys.Get(parent)
	if !exists {
		return data.NewListingError(data.KindPathNotExist, parent, nil)
	}
	if !parentEntry.IsDir() {
		return data.NewListingError(data.KindNotDirectory, parent, nil)
	}

	mb.keys.Set(key, newEntry(key))
	mb.directories[parent] = append(mb.directories[parent], key)

	return nil
}
