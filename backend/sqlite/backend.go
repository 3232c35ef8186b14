package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/mwantia/traverse"
	"github.com/mwantia/traverse/backend"
	"github.com/mwantia/traverse/data"
	"github.com/tidwall/btree"
	_ "modernc.org/sqlite" // Pure Go SQLite driver
)

// SQLiteBackend keeps a snapshot of a directory tree in SQLite:
//
// Layer 1: In-memory B-tree for fast path → ID lookups (keys map)
// Layer 2: SQLite entry table (traverse_entries) holding one row per path
//
// Children are listed by their parent column in insertion order, so a tree
// imported from a traversal is replayed in the order it was walked.
type SQLiteBackend struct {
	mu sync.RWMutex
	db *sql.DB

	// In-memory B-tree for fast key lookups
	keys *btree.Map[string, string]
}

// NewSQLiteBackend creates a new SQLite-backed listing backend.
// The dbPath can be ":memory:" for an in-memory database or a file path.
func NewSQLiteBackend(dbPath string) (*SQLiteBackend, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, err
	}

	// Every connection to ":memory:" opens its own database
	db.SetMaxOpenConns(1)

	// Enable WAL mode for better concurrency
	if _, err := db.Exec("PRAGMA journal_mode = WAL"); err != nil {
		db.Close()
		return nil, err
	}

	sb := &SQLiteBackend{
		db:   db,
		keys: btree.NewMap[string, string](0),
	}

	if err := sb.initSchema(); err != nil {
		db.Close()
		return nil, err
	}

	return sb, nil
}

// initSchema creates the database schema.
func (sb *SQLiteBackend) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS traverse_entries (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL UNIQUE,
		path TEXT NOT NULL UNIQUE,
		parent TEXT NOT NULL,
		name TEXT NOT NULL,
		mode INTEGER NOT NULL,
		size INTEGER NOT NULL DEFAULT 0,
		modify_time INTEGER NOT NULL,
		content_type TEXT
	);
	CREATE INDEX IF NOT EXISTS idx_traverse_entries_parent ON traverse_entries(parent);
	`

	_, err := sb.db.Exec(schema)
	return err
}

// Returns the identifier name defined for this backend
func (*SQLiteBackend) Name() string {
	return "sqlite"
}

// Open is part of the lifecycle behaviour and gets called when opening this backend.
func (sb *SQLiteBackend) Open(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	// Verify database connection
	if err := sb.db.PingContext(ctx); err != nil {
		return err
	}

	// Load all keys into memory B-tree
	rows, err := sb.db.QueryContext(ctx, "SELECT path, id FROM traverse_entries")
	if err != nil {
		return err
	}
	defer rows.Close()

	for rows.Next() {
		var key, id string
		if err := rows.Scan(&key, &id); err != nil {
			return err
		}
		sb.keys.Set(key, id)
	}

	return rows.Err()
}

// Close is part of the lifecycle behaviour and gets called when closing this backend.
func (sb *SQLiteBackend) Close(ctx context.Context) error {
	sb.mu.Lock()
	defer sb.mu.Unlock()

	sb.keys.Clear()
	return sb.db.Close()
}

// Len returns the number of stored entries.
func (sb *SQLiteBackend) Len() int {
	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.keys.Len()
}

// Put inserts entry or replaces the row stored for its path.
// A replaced row keeps its position among its siblings.
func (sb *SQLiteBackend) Put(ctx context.Context, entry *data.Entry) error {
	key, err := data.ToAbsolutePath(entry.Path)
	if err != nil {
		return err
	}

	sb.mu.Lock()
	defer sb.mu.Unlock()

	id, exists := sb.keys.Get(key)
	if !exists {
		id = backend.NewID()
	}

	_, err = sb.db.ExecContext(ctx, `
		INSERT INTO traverse_entries (id, path, parent, name, mode, size, modify_time, content_type)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(path) DO UPDATE SET
			mode = excluded.mode,
			size = excluded.size,
			modify_time = excluded.modify_time,
			content_type = excluded.content_type
	`, id, key, data.ParentPath(key), entry.Name, int64(entry.Mode), entry.Size,
		unixNano(entry.ModifyTime), nullString(string(entry.ContentType)))
	if err != nil {
		return fmt.Errorf("failed to store '%s': %w", key, err)
	}

	// Update B-tree
	sb.keys.Set(key, id)
	return nil
}

// Import stores every entry yielded by t and returns the number of stored entries.
func (sb *SQLiteBackend) Import(ctx context.Context, t *traverse.Traversal) (int, error) {
	return backend.Import(ctx, t.All(ctx), sb)
}

// Stat returns the entry stored for path.
func (sb *SQLiteBackend) Stat(ctx context.Context, path string) (*data.Entry, error) {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, path, err)
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	return sb.stat(ctx, key)
}

func (sb *SQLiteBackend) stat(ctx context.Context, key string) (*data.Entry, error) {
	// Check B-tree first
	id, exists := sb.keys.Get(key)
	if !exists {
		return nil, data.NewListingError(data.KindPathNotExist, key, nil)
	}

	row := sb.db.QueryRowContext(ctx, `
		SELECT path, name, mode, size, modify_time, content_type
		FROM traverse_entries WHERE id = ?
	`, id)

	entry, err := scanEntry(row)
	if err == sql.ErrNoRows {
		return nil, data.NewListingError(data.KindPathNotExist, key, nil)
	}
	if err != nil {
		return nil, data.NewListingError(data.KindUnknown, key, err)
	}

	return entry, nil
}

// ListChildren returns the children of path in the order they were stored.
// A directory stored without read permission fails as not readable.
func (sb *SQLiteBackend) ListChildren(ctx context.Context, path string) ([]*data.Entry, error) {
	key, err := data.ToAbsolutePath(path)
	if err != nil {
		return nil, data.NewListingError(data.KindPathNotExist, path, err)
	}

	sb.mu.RLock()
	defer sb.mu.RUnlock()

	dir, err := sb.stat(ctx, key)
	if err != nil {
		return nil, err
	}
	if !dir.IsDir() {
		return nil, data.NewListingError(data.KindNotDirectory, key, nil)
	}
	if dir.Mode.Perm()&0444 == 0 {
		return nil, data.NewListingError(data.KindNotReadable, key, nil)
	}

	rows, err := sb.db.QueryContext(ctx, `
		SELECT path, name, mode, size, modify_time, content_type
		FROM traverse_entries WHERE parent = ? ORDER BY seq
	`, key)
	if err != nil {
		return nil, data.NewListingError(data.KindUnknown, key, err)
	}
	defer rows.Close()

	var entries []*data.Entry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			return nil, data.NewListingError(data.KindUnknown, key, err)
		}
		entries = append(entries, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, data.NewListingError(data.KindUnknown, key, err)
	}

	return entries, nil
}
