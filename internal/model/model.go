// Package model defines the entities persisted in the metadata cache.
package model

import (
	"fmt"
	"strings"
	"time"
)

// Type is the kind of content file tracked by the cache.
type Type string

const (
	TypeArticle Type = "article"
	TypePage    Type = "page"
)

// ParseType converts a user-supplied string to a Type.
func ParseType(s string) (Type, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "article", "post":
		return TypeArticle, nil
	case "page":
		return TypePage, nil
	}
	return "", fmt.Errorf("unknown content type: %q (expected article or page)", s)
}

// Status is the publication status declared in a content file's metadata.
// The empty string means the file declared no status.
type Status string

const (
	StatusPublished Status = "published"
	StatusHidden    Status = "hidden"
	StatusDraft     Status = "draft"
	StatusNone      Status = ""
)

// ParseStatus converts a user-supplied string to a Status.
func ParseStatus(s string) (Status, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "published":
		return StatusPublished, nil
	case "hidden":
		return StatusHidden, nil
	case "draft":
		return StatusDraft, nil
	case "":
		return StatusNone, nil
	}
	return "", fmt.Errorf("unknown status: %q (expected published, hidden or draft)", s)
}

// Kind names a deduplicated lookup entity used by get-or-create and list.
type Kind string

const (
	KindTag      Kind = "tag"
	KindAuthor   Kind = "author"
	KindCategory Kind = "category"
)

// Site is the singleton record holding the schema version the cache was
// built with.
type Site struct {
	ID      int64
	Version string
}

// Term is a deduplicated Tag, Author or Category row. Count is the number
// of content rows referencing it, populated by list queries.
type Term struct {
	ID    int64
	Name  string
	Count int
}

// Content is one row per on-disk content file. SourcePath is the stable
// identity joining the filesystem and the cache.
type Content struct {
	ID          int64
	SourcePath  string
	Title       string
	Type        Type
	Status      Status
	DateCreated *time.Time
	Author      string
	Category    string
	Tags        []string
}

func (c *Content) String() string {
	tags := strings.Join(c.Tags, ", ")
	return fmt.Sprintf("%s (%s) by %s, tags=[%s]", c.Type, c.Title, c.Author, tags)
}
