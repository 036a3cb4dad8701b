// Package corpus enumerates the site's content files and hands each one to
// the content reader. It implements the store's Corpus interface.
package corpus

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/dmdesousa/lapis/internal/content"
	"github.com/dmdesousa/lapis/internal/model"
	"github.com/dmdesousa/lapis/internal/store"
)

// Extensions recognized as content files.
var extensions = map[string]bool{
	".md":       true,
	".markdown": true,
	".mkd":      true,
	".rst":      true,
}

// Walker walks the configured article and page directories under Root.
type Walker struct {
	Root        string   // content root, usually <site>/content
	ArticleDirs []string // relative to Root
	PageDirs    []string // relative to Root
}

// Scan enumerates all content files, yielding one result per file. Read
// and parse failures are isolated per file in ScanResult.Err; only a
// failure to walk a configured directory aborts the scan.
func (w *Walker) Scan() ([]store.ScanResult, error) {
	var results []store.ScanResult

	walk := func(dirs []string, typ model.Type) error {
		for _, dir := range dirs {
			root := filepath.Join(w.Root, dir)
			if _, err := os.Stat(root); os.IsNotExist(err) {
				continue
			}
			err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
				if err != nil {
					return err
				}
				if d.IsDir() {
					if strings.HasPrefix(d.Name(), ".") && path != root {
						return filepath.SkipDir
					}
					return nil
				}
				if !IsContentFile(path) {
					return nil
				}
				parsed, err := content.ReadFile(path, typ)
				results = append(results, store.ScanResult{Path: path, Parsed: parsed, Err: err})
				return nil
			})
			if err != nil {
				return fmt.Errorf("failed to walk %s: %w", root, err)
			}
		}
		return nil
	}

	if err := walk(w.ArticleDirs, model.TypeArticle); err != nil {
		return nil, err
	}
	if err := walk(w.PageDirs, model.TypePage); err != nil {
		return nil, err
	}
	return results, nil
}

// ReadFile parses a single file as the declared content type.
func (w *Walker) ReadFile(path string, typ model.Type) (*content.Parsed, error) {
	return content.ReadFile(path, typ)
}

// IsContentFile reports whether the path has a recognized content
// extension and is not a hidden file.
func IsContentFile(path string) bool {
	name := filepath.Base(path)
	if strings.HasPrefix(name, ".") {
		return false
	}
	return extensions[strings.ToLower(filepath.Ext(name))]
}
