package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/beacon-hill-archive/bhexport/internal/adapters/driven/storage/sqlite/schema"
	"github.com/beacon-hill-archive/bhexport/internal/core/domain"
	"github.com/beacon-hill-archive/bhexport/internal/core/ports/driven"
)

// Ensure Archive and ArchiveFactory implement the interfaces.
var (
	_ driven.ArchiveWriter  = (*Archive)(nil)
	_ driven.ArchiveFactory = (*ArchiveFactory)(nil)
)

// Archive writes a fresh archive database.
type Archive struct {
	db   *sql.DB
	path string

	mu     sync.Mutex
	closed bool
}

// NewArchive creates an empty archive at path. Any existing file at path,
// together with its WAL and shared-memory siblings, is removed first.
func NewArchive(ctx context.Context, path string) (*Archive, error) {
	if path == "" {
		return nil, fmt.Errorf("%w: archive path is empty", domain.ErrInvalidInput)
	}
	if abs, err := filepath.Abs(path); err == nil {
		path = abs
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating archive directory: %w", err)
		}
	}

	for _, p := range []string{path, path + "-wal", path + "-shm"} {
		if err := os.Remove(p); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("removing previous archive: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)")
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}
	// One writer; pragmas then hold for every statement.
	db.SetMaxOpenConns(1)

	a := &Archive{db: db, path: path}

	if err := a.applySchema(ctx, schema.FS); err != nil {
		db.Close()
		return nil, fmt.Errorf("applying schema: %w", err)
	}

	return a, nil
}

// applySchema runs every <version>_<name>.up.sql file in ascending version
// order and records the last version applied in PRAGMA user_version.
func (a *Archive) applySchema(ctx context.Context, fsys fs.FS) error {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return fmt.Errorf("reading schema directory: %w", err)
	}

	versions := make(map[int]string)
	for _, entry := range entries {
		name := entry.Name()
		if !strings.HasSuffix(name, ".up.sql") {
			continue
		}
		prefix, _, ok := strings.Cut(name, "_")
		version, err := strconv.Atoi(prefix)
		if !ok || err != nil {
			return fmt.Errorf("schema file %s: name must start with <version>_", name)
		}
		if prev, dup := versions[version]; dup {
			return fmt.Errorf("schema files %s and %s share version %d", prev, name, version)
		}
		versions[version] = name
	}

	ordered := make([]int, 0, len(versions))
	for v := range versions {
		ordered = append(ordered, v)
	}
	sort.Ints(ordered)

	for _, version := range ordered {
		name := versions[version]
		content, err := fs.ReadFile(fsys, name)
		if err != nil {
			return fmt.Errorf("reading schema %s: %w", name, err)
		}
		if _, err := a.db.ExecContext(ctx, string(content)); err != nil {
			return fmt.Errorf("executing schema %s: %w", name, err)
		}
		if _, err := a.db.ExecContext(ctx, fmt.Sprintf("PRAGMA user_version = %d", version)); err != nil {
			return fmt.Errorf("recording schema version %d: %w", version, err)
		}
	}
	return nil
}

// CreateIndexes builds the lookup indexes.
func (a *Archive) CreateIndexes(ctx context.Context) error {
	if err := a.checkOpen(); err != nil {
		return err
	}
	if _, err := a.db.ExecContext(ctx, schema.Indexes); err != nil {
		return fmt.Errorf("creating indexes: %w", err)
	}
	return nil
}

// WriteRunMetadata stores run details in archive_meta.
func (a *Archive) WriteRunMetadata(ctx context.Context, meta map[string]string) error {
	keys := make([]string, 0, len(meta))
	for k := range meta {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	return a.insertAll(ctx, "archive_meta",
		`INSERT OR REPLACE INTO archive_meta (key, value) VALUES (?, ?)`,
		len(keys), func(stmt *sql.Stmt, i int) error {
			_, err := stmt.ExecContext(ctx, keys[i], meta[keys[i]])
			return err
		})
}

// Path returns the absolute archive file path.
func (a *Archive) Path() string {
	return a.path
}

// Close closes the database connection. Calling Close more than once is safe.
func (a *Archive) Close() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return nil
	}
	a.closed = true
	return a.db.Close()
}

func (a *Archive) checkOpen() error {
	a.mu.Lock()
	defer a.mu.Unlock()
	if a.closed {
		return domain.ErrArchiveClosed
	}
	return nil
}

// insertAll runs exec for rows 0..n-1 against one prepared statement inside
// a single transaction.
func (a *Archive) insertAll(
	ctx context.Context,
	table, query string,
	n int,
	exec func(stmt *sql.Stmt, i int) error,
) error {
	if err := a.checkOpen(); err != nil {
		return err
	}

	tx, err := a.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return fmt.Errorf("preparing %s insert: %w", table, err)
	}
	defer stmt.Close()

	for i := 0; i < n; i++ {
		if err := exec(stmt, i); err != nil {
			return fmt.Errorf("inserting into %s: %w", table, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing %s: %w", table, err)
	}
	return nil
}

// ArchiveFactory creates SQLite archives.
type ArchiveFactory struct{}

// NewArchiveFactory returns an ArchiveFactory.
func NewArchiveFactory() *ArchiveFactory {
	return &ArchiveFactory{}
}

// Create builds a fresh archive at path.
func (f *ArchiveFactory) Create(ctx context.Context, path string) (driven.ArchiveWriter, error) {
	return NewArchive(ctx, path)
}
