// Package scaffold writes boilerplate for new content files.
package scaffold

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/template"
	"time"

	"github.com/dmdesousa/lapis/internal/model"
	"github.com/dmdesousa/lapis/internal/slugs"
)

// Extension is the file extension for scaffolded content.
const Extension = "md"

// Options are the metadata fields written into a new content file.
type Options struct {
	Title    string
	Author   string
	Category string
	Status   model.Status
	Tags     []string
	Date     time.Time
}

const contentTemplate = `---
title: {{.Title}}
date: {{.Date.Format "2006-01-02 15:04"}}
{{- if .Status}}
status: {{.Status}}
{{- end}}
{{- if .Tags}}
tags: [{{join .Tags ", "}}]
{{- end}}
{{- if .Category}}
category: {{.Category}}
{{- end}}
{{- if .Author}}
author: {{.Author}}
{{- end}}
slug: {{.Slug}}
---

`

var tmpl = template.Must(template.New("content").
	Funcs(template.FuncMap{"join": strings.Join}).
	Parse(contentTemplate))

// Create writes a new content file under dir named after the title,
// avoiding collisions with existing files. Returns the created path.
func Create(dir string, opts Options) (string, error) {
	if opts.Title == "" {
		return "", fmt.Errorf("title is required")
	}
	if opts.Date.IsZero() {
		opts.Date = time.Now()
	}
	if opts.Status == model.StatusNone {
		opts.Status = model.StatusPublished
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", dir, err)
	}

	path, slug := slugs.UniquePath(opts.Title, dir, Extension)

	data := struct {
		Options
		Slug string
	}{Options: opts, Slug: slug}

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return "", fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer f.Close()

	if err := tmpl.Execute(f, data); err != nil {
		os.Remove(path)
		return "", fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	return path, nil
}
