// Package store owns the persisted metadata cache and the synchronization
// and query logic against the on-disk content corpus.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"

	_ "modernc.org/sqlite"

	"github.com/dmdesousa/lapis/internal/model"
)

// SchemaVersion is the schema version stamped into the site row. Any
// mismatch triggers a full delete-and-rebuild; there is no migration.
const SchemaVersion = "1"

// Store is the handle to the metadata cache. It holds a single database
// connection pool for its entire lifetime; callers Close it on teardown.
type Store struct {
	db            *sql.DB
	path          string
	created       bool
	schemaChanged bool
}

// Open attaches to the cache at path, creating an empty one with the
// current schema version if none exists.
//
// Created reports whether this call initialized a fresh cache.
// SchemaChanged reports whether the persisted version differs from the
// running version; callers are expected to discard the cache and reopen
// (see OpenWithRebuild) rather than migrate in place.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open cache database: %w", err)
	}

	s := &Store{db: db, path: path}
	if err := s.initialize(); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

// OpenWithRebuild opens the cache, deleting and recreating it when the
// persisted schema version is incompatible. Returns (store, rebuilt, error).
func OpenWithRebuild(path string) (*Store, bool, error) {
	s, err := Open(path)
	if err != nil {
		return nil, false, err
	}
	if !s.schemaChanged {
		return s, false, nil
	}

	s.Close()
	if err := removeDatabaseFiles(path); err != nil {
		return nil, false, err
	}
	fresh, err := Open(path)
	return fresh, true, err
}

// Close closes the underlying database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Created reports whether the cache was just initialized by this open.
func (s *Store) Created() bool {
	return s.created
}

// SchemaChanged reports whether the persisted schema version differs from
// the running version.
func (s *Store) SchemaChanged() bool {
	return s.schemaChanged
}

// Path returns the cache database file path.
func (s *Store) Path() string {
	return s.path
}

func removeDatabaseFiles(path string) error {
	paths := []string{path, path + "-wal", path + "-shm"}
	for _, p := range paths {
		if err := os.Remove(p); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to remove %s: %w", p, err)
		}
	}
	return nil
}

func (s *Store) initialize() error {
	schema := `
		PRAGMA journal_mode = WAL;
		PRAGMA synchronous = NORMAL;
		PRAGMA busy_timeout = 5000;
		PRAGMA foreign_keys = ON;

		-- Singleton row stamped with the schema version the cache was built with
		CREATE TABLE IF NOT EXISTS site (
			id INTEGER PRIMARY KEY CHECK (id = 1),
			version TEXT NOT NULL
		);

		CREATE TABLE IF NOT EXISTS author (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS category (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		CREATE TABLE IF NOT EXISTS tag (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL UNIQUE
		);

		-- One row per on-disk content file; source_path joins filesystem and cache
		CREATE TABLE IF NOT EXISTS content (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			source_path TEXT NOT NULL UNIQUE,
			title TEXT NOT NULL DEFAULT '',
			type TEXT NOT NULL CHECK (type IN ('article', 'page')),
			status TEXT,
			date_created TEXT,
			author_id INTEGER REFERENCES author(id),
			category_id INTEGER REFERENCES category(id)
		);

		CREATE TABLE IF NOT EXISTS content_tag (
			content_id INTEGER NOT NULL REFERENCES content(id) ON DELETE CASCADE,
			tag_id INTEGER NOT NULL REFERENCES tag(id),
			PRIMARY KEY (content_id, tag_id)
		);

		CREATE INDEX IF NOT EXISTS idx_content_type ON content(type);
		CREATE INDEX IF NOT EXISTS idx_content_status ON content(status);
		CREATE INDEX IF NOT EXISTS idx_content_date ON content(date_created);
		CREATE INDEX IF NOT EXISTS idx_content_author ON content(author_id);
		CREATE INDEX IF NOT EXISTS idx_content_category ON content(category_id);
		CREATE INDEX IF NOT EXISTS idx_content_tag_tag ON content_tag(tag_id);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to initialize cache schema: %w", err)
	}

	var version string
	err := s.db.QueryRow(`SELECT version FROM site WHERE id = 1`).Scan(&version)
	switch {
	case err == sql.ErrNoRows:
		if _, err := s.db.Exec(`INSERT INTO site (id, version) VALUES (1, ?)`, SchemaVersion); err != nil {
			return fmt.Errorf("failed to stamp schema version: %w", err)
		}
		s.created = true
	case err != nil:
		return fmt.Errorf("failed to read schema version: %w", err)
	default:
		s.schemaChanged = version != SchemaVersion
	}

	return nil
}

// Site returns the singleton site record.
func (s *Store) Site() (*model.Site, error) {
	var site model.Site
	err := s.db.QueryRow(`SELECT id, version FROM site WHERE id = 1`).Scan(&site.ID, &site.Version)
	if err != nil {
		return nil, fmt.Errorf("failed to read site record: %w", err)
	}
	return &site, nil
}

func tableForKind(kind model.Kind) (string, error) {
	switch kind {
	case model.KindTag:
		return "tag", nil
	case model.KindAuthor:
		return "author", nil
	case model.KindCategory:
		return "category", nil
	}
	return "", fmt.Errorf("unknown entity kind: %q", kind)
}

// GetOrCreate returns the tag/author/category row named name, inserting it
// first if absent. The second return reports whether the row was created.
//
// Lookup-then-insert is not atomic; that is acceptable under the
// single-process, single-writer model this tool assumes.
func (s *Store) GetOrCreate(kind model.Kind, name string) (model.Term, bool, error) {
	table, err := tableForKind(kind)
	if err != nil {
		return model.Term{}, false, err
	}

	var term model.Term
	err = s.db.QueryRow(`SELECT id, name FROM `+table+` WHERE name = ?`, name).Scan(&term.ID, &term.Name)
	if err == nil {
		return term, false, nil
	}
	if err != sql.ErrNoRows {
		return model.Term{}, false, fmt.Errorf("failed to look up %s %q: %w", kind, name, err)
	}

	res, err := s.db.Exec(`INSERT INTO `+table+` (name) VALUES (?)`, name)
	if err != nil {
		return model.Term{}, false, fmt.Errorf("failed to insert %s %q: %w", kind, name, err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return model.Term{}, false, err
	}
	return model.Term{ID: id, Name: name}, true, nil
}

// Stats summarizes the cache contents.
type Stats struct {
	Articles   int
	Pages      int
	Tags       int
	Authors    int
	Categories int
}

// Stats returns row counts for the cache.
func (s *Store) Stats() (Stats, error) {
	var st Stats
	row := s.db.QueryRow(`
		SELECT
			(SELECT COUNT(*) FROM content WHERE type = 'article'),
			(SELECT COUNT(*) FROM content WHERE type = 'page'),
			(SELECT COUNT(*) FROM tag),
			(SELECT COUNT(*) FROM author),
			(SELECT COUNT(*) FROM category)
	`)
	if err := row.Scan(&st.Articles, &st.Pages, &st.Tags, &st.Authors, &st.Categories); err != nil {
		return Stats{}, fmt.Errorf("failed to read cache stats: %w", err)
	}
	return st, nil
}
