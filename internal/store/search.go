package store

import (
	"database/sql"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/dmdesousa/lapis/internal/model"
)

// Filters are the optional search criteria, combined with logical AND.
// Zero values impose no restriction.
type Filters struct {
	Author   string
	Category string
	Status   model.Status
	Type     model.Type
	Title    string   // case-insensitive substring
	Tags     []string // content must carry every listed tag

	// On restricts date_created to the day of On: [On, On+1d).
	// After/Before restrict to [After, Before) after normalizing both to
	// midnight; either bound may be nil to leave it open. On is exclusive
	// with After/Before.
	On     *time.Time
	After  *time.Time
	Before *time.Time
}

// Search returns a lazy, forward-only cursor over the content rows
// matching every provided filter. An empty filter set matches everything.
// The cursor is restartable only by re-invoking Search.
func (s *Store) Search(f Filters) (*ContentCursor, error) {
	query := `
		SELECT c.id, c.source_path, c.title, c.type, c.status, c.date_created,
		       COALESCE(a.name, ''), COALESCE(cat.name, '')
		FROM content c
		LEFT JOIN author a ON a.id = c.author_id
		LEFT JOIN category cat ON cat.id = c.category_id
	`
	var (
		where []string
		args  []interface{}
	)

	if f.Author != "" {
		where = append(where, "a.name = ?")
		args = append(args, f.Author)
	}
	if f.Category != "" {
		where = append(where, "cat.name = ?")
		args = append(args, f.Category)
	}
	if f.Status != model.StatusNone {
		where = append(where, "c.status = ?")
		args = append(args, string(f.Status))
	}
	if f.Type != "" {
		where = append(where, "c.type = ?")
		args = append(args, string(f.Type))
	}
	if f.Title != "" {
		where = append(where, "LOWER(c.title) LIKE ?")
		args = append(args, "%"+strings.ToLower(f.Title)+"%")
	}
	for _, tag := range f.Tags {
		where = append(where, `EXISTS (
			SELECT 1 FROM content_tag ct
			JOIN tag t ON t.id = ct.tag_id
			WHERE ct.content_id = c.id AND t.name = ?)`)
		args = append(args, tag)
	}

	dateWhere, dateArgs := dateConditions(f)
	where = append(where, dateWhere...)
	args = append(args, dateArgs...)

	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}
	query += " ORDER BY c.id"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search failed: %w", err)
	}
	return &ContentCursor{store: s, rows: rows}, nil
}

// dateConditions translates the date filters into SQL against the stored
// text form of date_created. A single day d matches [d, d+1d); an
// after/before pair matches [after, before) with either bound open.
func dateConditions(f Filters) ([]string, []interface{}) {
	var (
		where []string
		args  []interface{}
	)
	if f.On != nil {
		day := midnight(*f.On)
		where = append(where, "c.date_created >= ? AND c.date_created < ?")
		args = append(args, day.Format(dateLayout), day.AddDate(0, 0, 1).Format(dateLayout))
		return where, args
	}
	if f.After != nil {
		where = append(where, "c.date_created >= ?")
		args = append(args, midnight(*f.After).Format(dateLayout))
	}
	if f.Before != nil {
		where = append(where, "c.date_created < ?")
		args = append(args, midnight(*f.Before).Format(dateLayout))
	}
	return where, args
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// ContentCursor is a single-pass cursor over search results. Tags for each
// row are resolved as the cursor advances.
type ContentCursor struct {
	store *Store
	rows  *sql.Rows
	cur   *model.Content
	err   error
}

// Next advances the cursor. It returns false at the end of the result set
// or on error; check Err after the loop.
func (it *ContentCursor) Next() bool {
	if it.err != nil || !it.rows.Next() {
		return false
	}
	c, err := scanContent(it.rows.Scan)
	if err != nil {
		it.err = err
		return false
	}
	c.Tags, err = it.store.tagsFor(c.ID)
	if err != nil {
		it.err = err
		return false
	}
	it.cur = c
	return true
}

// Content returns the row the cursor is positioned on.
func (it *ContentCursor) Content() *model.Content {
	return it.cur
}

// Err returns the first error encountered while iterating.
func (it *ContentCursor) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

// Close releases the cursor. Safe to call after exhaustion.
func (it *ContentCursor) Close() error {
	return it.rows.Close()
}

// Collect drains and closes the cursor.
func (it *ContentCursor) Collect() ([]*model.Content, error) {
	defer it.Close()
	var out []*model.Content
	for it.Next() {
		out = append(out, it.Content())
	}
	return out, it.Err()
}

// Orderings accepted by List.
const (
	OrderByName    = "name"    // ascending by name
	OrderByContent = "content" // descending by referencing content count
)

// List returns a cursor over tag/author/category rows whose name matches
// the regular expression pattern (substring search, not a full match).
// Ties under OrderByContent fall back to insertion order, which keeps the
// result deterministic.
func (s *Store) List(pattern, orderBy string, kind model.Kind) (*TermCursor, error) {
	re, err := regexp.Compile(pattern)
	if err != nil {
		return nil, fmt.Errorf("invalid pattern %q: %w", pattern, err)
	}

	table, err := tableForKind(kind)
	if err != nil {
		return nil, err
	}

	var query string
	switch kind {
	case model.KindTag:
		query = `
			SELECT t.id, t.name, COUNT(ct.content_id) AS cnt
			FROM tag t
			LEFT JOIN content_tag ct ON ct.tag_id = t.id
			GROUP BY t.id`
	default:
		query = fmt.Sprintf(`
			SELECT t.id, t.name, COUNT(c.id) AS cnt
			FROM %s t
			LEFT JOIN content c ON c.%s_id = t.id
			GROUP BY t.id`, table, table)
	}

	switch orderBy {
	case OrderByContent:
		query += " ORDER BY cnt DESC, t.id"
	case OrderByName, "":
		query += " ORDER BY t.name"
	default:
		return nil, fmt.Errorf("unknown ordering %q (expected %s or %s)", orderBy, OrderByName, OrderByContent)
	}

	rows, err := s.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("list failed: %w", err)
	}
	return &TermCursor{rows: rows, match: re}, nil
}

// TermCursor is a single-pass cursor over listed tag/author/category rows.
type TermCursor struct {
	rows  *sql.Rows
	match *regexp.Regexp
	cur   model.Term
	err   error
}

// Next advances to the next row whose name matches the pattern.
func (it *TermCursor) Next() bool {
	for it.err == nil && it.rows.Next() {
		var term model.Term
		if err := it.rows.Scan(&term.ID, &term.Name, &term.Count); err != nil {
			it.err = err
			return false
		}
		if it.match.FindStringIndex(term.Name) == nil {
			continue
		}
		it.cur = term
		return true
	}
	return false
}

// Term returns the row the cursor is positioned on.
func (it *TermCursor) Term() model.Term {
	return it.cur
}

// Err returns the first error encountered while iterating.
func (it *TermCursor) Err() error {
	if it.err != nil {
		return it.err
	}
	return it.rows.Err()
}

// Close releases the cursor.
func (it *TermCursor) Close() error {
	return it.rows.Close()
}

// Collect drains and closes the cursor.
func (it *TermCursor) Collect() ([]model.Term, error) {
	defer it.Close()
	var out []model.Term
	for it.Next() {
		out = append(out, it.Term())
	}
	return out, it.Err()
}
