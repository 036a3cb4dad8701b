package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/dmdesousa/lapis/internal/content"
	"github.com/dmdesousa/lapis/internal/model"
	"github.com/dmdesousa/lapis/internal/sqlutil"
)

// Corpus enumerates and reads the site's content files. The store treats
// parsing as external; it only reconciles the records a Corpus produces.
type Corpus interface {
	// Scan walks the configured content directories and returns one result
	// per file. Parse failures are carried in ScanResult.Err so a bad file
	// never aborts the walk.
	Scan() ([]ScanResult, error)

	// ReadFile parses a single file as the declared content type.
	ReadFile(path string, typ model.Type) (*content.Parsed, error)
}

// ScanResult is one file from a corpus scan: either a parsed record or a
// per-file error.
type ScanResult struct {
	Path   string
	Parsed *content.Parsed
	Err    error
}

// FileError records a file skipped during sync and why.
type FileError struct {
	Path string
	Err  error
}

func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.Path, e.Err)
}

// dateLayout is the canonical stored form of date_created. Lexicographic
// order on this layout matches chronological order.
const dateLayout = "2006-01-02 15:04:05"

// Sync reconciles the cache against the corpus: new files are inserted,
// changed files overwritten, and rows whose backing file is gone purged.
// If the persisted schema version differs from the running version it is
// stamped to match as part of the same pass.
//
// Files that fail to parse are skipped for this pass and returned; they do
// not abort the sync. Database failures do.
func (s *Store) Sync(corpus Corpus) (bool, []FileError, error) {
	results, err := corpus.Scan()
	if err != nil {
		return false, nil, fmt.Errorf("corpus scan failed: %w", err)
	}

	seen := make(map[string]struct{}, len(results))
	var skipped []FileError
	updated := false

	for _, r := range results {
		if r.Err != nil {
			skipped = append(skipped, FileError{Path: r.Path, Err: r.Err})
			continue
		}
		seen[r.Parsed.SourcePath] = struct{}{}
		changed, err := s.syncParsed(r.Parsed)
		if err != nil {
			return false, skipped, err
		}
		updated = updated || changed
	}

	// Purge rows that are neither in this corpus listing nor on disk.
	removed, err := s.purgeMissing(seen, nil)
	if err != nil {
		return false, skipped, err
	}
	updated = updated || removed > 0

	if s.schemaChanged {
		if _, err := s.db.Exec(`UPDATE site SET version = ? WHERE id = 1`, SchemaVersion); err != nil {
			return false, skipped, fmt.Errorf("failed to stamp schema version: %w", err)
		}
		s.schemaChanged = false
	}

	return updated, skipped, nil
}

// SyncFile reconciles a single path without a full directory walk, using
// the same insert-or-update logic as Sync. A parse failure aborts the
// operation.
func (s *Store) SyncFile(corpus Corpus, path string, typ model.Type) error {
	parsed, err := corpus.ReadFile(path, typ)
	if err != nil {
		return err
	}
	_, err = s.syncParsed(parsed)
	return err
}

// Remove deletes the cached row for path, if any.
func (s *Store) Remove(path string) error {
	if _, err := s.db.Exec(`DELETE FROM content WHERE source_path = ?`, path); err != nil {
		return fmt.Errorf("failed to remove %s from cache: %w", path, err)
	}
	return nil
}

// Purge removes content rows whose backing file no longer exists on disk,
// skipping any path listed in exclude.
func (s *Store) Purge(exclude ...string) error {
	skip := make(map[string]struct{}, len(exclude))
	for _, p := range exclude {
		skip[p] = struct{}{}
	}
	_, err := s.purgeMissing(nil, skip)
	return err
}

// purgeMissing deletes rows whose source_path is not in keep and whose
// file is absent from disk. Paths in skip are left alone without a stat.
func (s *Store) purgeMissing(keep map[string]struct{}, skip map[string]struct{}) (int, error) {
	type cached struct {
		id   int64
		path string
	}
	rows, err := s.db.Query(`SELECT id, source_path FROM content`)
	if err != nil {
		return 0, fmt.Errorf("failed to list cached paths: %w", err)
	}
	all, err := sqlutil.ScanRows(rows, func(rows *sql.Rows) (cached, error) {
		var c cached
		err := rows.Scan(&c.id, &c.path)
		return c, err
	})
	if err != nil {
		return 0, err
	}

	var stale []cached
	for _, c := range all {
		if _, ok := keep[c.path]; ok {
			continue
		}
		if _, ok := skip[c.path]; ok {
			continue
		}
		if _, err := os.Stat(c.path); err == nil {
			continue
		} else if !errors.Is(err, os.ErrNotExist) {
			return 0, fmt.Errorf("failed to stat %s: %w", c.path, err)
		}
		stale = append(stale, c)
	}

	for _, c := range stale {
		if _, err := s.db.Exec(`DELETE FROM content WHERE id = ?`, c.id); err != nil {
			return 0, fmt.Errorf("failed to purge %s: %w", c.path, err)
		}
	}
	return len(stale), nil
}

// syncParsed inserts or updates the row for one parsed record. Commits are
// per record: a crash mid-sync leaves earlier records durably cached.
func (s *Store) syncParsed(p *content.Parsed) (bool, error) {
	existing, err := s.contentByPath(p.SourcePath)
	if err != nil {
		return false, err
	}
	if existing != nil && !recordDiffers(existing, p) {
		return false, nil
	}

	authorID, err := s.resolveTerm(model.KindAuthor, p.Author)
	if err != nil {
		return false, err
	}
	categoryID, err := s.resolveTerm(model.KindCategory, p.Category)
	if err != nil {
		return false, err
	}
	tagIDs := make([]int64, 0, len(p.Tags))
	for _, name := range p.Tags {
		term, _, err := s.GetOrCreate(model.KindTag, name)
		if err != nil {
			return false, err
		}
		tagIDs = append(tagIDs, term.ID)
	}

	tx, err := s.db.Begin()
	if err != nil {
		return false, err
	}
	defer tx.Rollback()

	var contentID int64
	if existing == nil {
		res, err := tx.Exec(`
			INSERT INTO content (source_path, title, type, status, date_created, author_id, category_id)
			VALUES (?, ?, ?, ?, ?, ?, ?)`,
			p.SourcePath, p.Title, string(p.Type), statusValue(p.Status), dateValue(p.Date), authorID, categoryID)
		if err != nil {
			return false, fmt.Errorf("failed to insert %s: %w", p.SourcePath, err)
		}
		contentID, err = res.LastInsertId()
		if err != nil {
			return false, err
		}
	} else {
		contentID = existing.ID
		_, err := tx.Exec(`
			UPDATE content
			SET title = ?, type = ?, status = ?, date_created = ?, author_id = ?, category_id = ?
			WHERE id = ?`,
			p.Title, string(p.Type), statusValue(p.Status), dateValue(p.Date), authorID, categoryID, contentID)
		if err != nil {
			return false, fmt.Errorf("failed to update %s: %w", p.SourcePath, err)
		}
		if _, err := tx.Exec(`DELETE FROM content_tag WHERE content_id = ?`, contentID); err != nil {
			return false, err
		}
	}

	for _, tagID := range tagIDs {
		if _, err := tx.Exec(`INSERT OR IGNORE INTO content_tag (content_id, tag_id) VALUES (?, ?)`, contentID, tagID); err != nil {
			return false, err
		}
	}

	if err := tx.Commit(); err != nil {
		return false, fmt.Errorf("failed to commit %s: %w", p.SourcePath, err)
	}
	return true, nil
}

// resolveTerm maps an optional name to a lookup row id, nil when unset.
func (s *Store) resolveTerm(kind model.Kind, name string) (interface{}, error) {
	if name == "" {
		return nil, nil
	}
	term, _, err := s.GetOrCreate(kind, name)
	if err != nil {
		return nil, err
	}
	return term.ID, nil
}

func statusValue(status model.Status) interface{} {
	if status == model.StatusNone {
		return nil
	}
	return string(status)
}

func dateValue(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return t.Format(dateLayout)
}

// recordDiffers compares a cached row against a freshly parsed record on
// every synced field.
func recordDiffers(c *model.Content, p *content.Parsed) bool {
	if c.Title != p.Title || c.Type != p.Type || c.Status != p.Status {
		return true
	}
	if c.Author != p.Author || c.Category != p.Category {
		return true
	}
	if !sameDate(c.DateCreated, p.Date) {
		return true
	}
	return !sameTags(c.Tags, p.Tags)
}

func sameDate(a, b *time.Time) bool {
	if (a == nil) != (b == nil) {
		return false
	}
	if a == nil {
		return true
	}
	return a.Format(dateLayout) == b.Format(dateLayout)
}

func sameTags(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	as := append([]string(nil), a...)
	bs := append([]string(nil), b...)
	sort.Strings(as)
	sort.Strings(bs)
	return strings.Join(as, "\x00") == strings.Join(bs, "\x00")
}

// contentByPath loads a cached row with its author, category and tags.
// Returns nil when the path is not cached.
func (s *Store) contentByPath(path string) (*model.Content, error) {
	row := s.db.QueryRow(`
		SELECT c.id, c.source_path, c.title, c.type, c.status, c.date_created,
		       COALESCE(a.name, ''), COALESCE(cat.name, '')
		FROM content c
		LEFT JOIN author a ON a.id = c.author_id
		LEFT JOIN category cat ON cat.id = c.category_id
		WHERE c.source_path = ?`, path)

	c, err := scanContent(row.Scan)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}

	c.Tags, err = s.tagsFor(c.ID)
	if err != nil {
		return nil, err
	}
	return c, nil
}

func (s *Store) tagsFor(contentID int64) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT t.name FROM tag t
		JOIN content_tag ct ON ct.tag_id = t.id
		WHERE ct.content_id = ?
		ORDER BY t.name`, contentID)
	if err != nil {
		return nil, err
	}
	return sqlutil.ScanRows(rows, func(rows *sql.Rows) (string, error) {
		var name string
		err := rows.Scan(&name)
		return name, err
	})
}

// scanContent scans the eight content columns shared by all row queries.
func scanContent(scan func(dest ...interface{}) error) (*model.Content, error) {
	var (
		c      model.Content
		typ    string
		status sql.NullString
		date   sql.NullString
	)
	if err := scan(&c.ID, &c.SourcePath, &c.Title, &typ, &status, &date, &c.Author, &c.Category); err != nil {
		return nil, err
	}
	c.Type = model.Type(typ)
	if status.Valid {
		c.Status = model.Status(status.String)
	}
	if date.Valid {
		t, err := time.Parse(dateLayout, date.String)
		if err != nil {
			return nil, fmt.Errorf("corrupt date_created %q: %w", date.String, err)
		}
		c.DateCreated = &t
	}
	return &c, nil
}
