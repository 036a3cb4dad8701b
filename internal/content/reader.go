// Package content reads a content file's metadata into a structured record.
//
// Two metadata styles are recognized: YAML frontmatter delimited by ---
// lines, and Pelican-style "Key: value" header lines at the top of the
// file. The store never parses files itself; it consumes these records.
package content

import (
	"fmt"
	"os"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/dmdesousa/lapis/internal/model"
)

// Parsed is the structured record produced from one content file.
type Parsed struct {
	SourcePath string
	Title      string
	Type       model.Type
	Status     model.Status
	Date       *time.Time
	Author     string
	Category   string
	Tags       []string
}

// ReadFile parses the file at path as the declared content type.
func ReadFile(path string, typ model.Type) (*Parsed, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return Parse(string(raw), path, typ)
}

// Parse parses file content already in memory. sourcePath is recorded as
// the record's identity; it is not read.
func Parse(text, sourcePath string, typ model.Type) (*Parsed, error) {
	meta, body, err := splitMetadata(text)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", sourcePath, err)
	}

	p := &Parsed{
		SourcePath: sourcePath,
		Type:       typ,
	}

	for key, value := range meta {
		switch strings.ToLower(key) {
		case "title":
			p.Title = stringValue(value)
		case "date", "created":
			raw := stringValue(value)
			if raw == "" {
				continue
			}
			t, err := parseDate(raw)
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sourcePath, err)
			}
			p.Date = &t
		case "status":
			status, err := model.ParseStatus(stringValue(value))
			if err != nil {
				return nil, fmt.Errorf("%s: %w", sourcePath, err)
			}
			p.Status = status
		case "tags":
			p.Tags = listValue(value)
		case "author":
			p.Author = stringValue(value)
		case "category":
			p.Category = stringValue(value)
		}
	}

	if p.Title == "" {
		p.Title = firstHeading(body)
	}

	return p, nil
}

// splitMetadata separates the metadata block from the body. YAML
// frontmatter takes priority; otherwise leading "Key: value" lines up to
// the first blank line are treated as metadata.
func splitMetadata(text string) (map[string]interface{}, string, error) {
	lines := strings.Split(text, "\n")

	if len(lines) > 0 && strings.TrimSpace(lines[0]) == "---" {
		for i := 1; i < len(lines); i++ {
			if strings.TrimSpace(lines[i]) == "---" {
				var meta map[string]interface{}
				raw := strings.Join(lines[1:i], "\n")
				if err := yaml.Unmarshal([]byte(raw), &meta); err != nil {
					return nil, "", fmt.Errorf("invalid frontmatter: %w", err)
				}
				if meta == nil {
					meta = map[string]interface{}{}
				}
				return meta, strings.Join(lines[i+1:], "\n"), nil
			}
		}
		return nil, "", fmt.Errorf("unclosed frontmatter block")
	}

	// Pelican-style header lines
	meta := map[string]interface{}{}
	body := 0
	for i, line := range lines {
		if strings.TrimSpace(line) == "" {
			body = i + 1
			break
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			body = i
			break
		}
		meta[strings.TrimSpace(key)] = strings.TrimSpace(value)
		body = i + 1
	}
	return meta, strings.Join(lines[body:], "\n"), nil
}

func stringValue(v interface{}) string {
	switch t := v.(type) {
	case string:
		return strings.TrimSpace(t)
	case time.Time:
		return t.Format("2006-01-02 15:04:05")
	case nil:
		return ""
	default:
		return strings.TrimSpace(fmt.Sprintf("%v", t))
	}
}

// listValue accepts either a YAML sequence or a comma-separated string.
func listValue(v interface{}) []string {
	var items []string
	switch t := v.(type) {
	case []interface{}:
		for _, item := range t {
			items = append(items, stringValue(item))
		}
	case string:
		for _, item := range strings.Split(t, ",") {
			items = append(items, strings.TrimSpace(item))
		}
	}
	out := items[:0]
	for _, item := range items {
		if item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

var dateLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02T15:04:05",
	"2006-01-02T15:04",
	"2006-01-02",
	time.RFC3339,
}

func parseDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("invalid date: %q", s)
}
