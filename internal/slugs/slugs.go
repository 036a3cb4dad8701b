// Package slugs generates file-name slugs for new content.
package slugs

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	goslug "github.com/gosimple/slug"
)

// Make converts a title to a URL-safe slug.
func Make(title string) string {
	slugged := goslug.Make(title)
	if slugged == "" {
		slugged = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "-"))
	}
	return slugged
}

// UniquePath returns a path under dir for a new file named after title
// that does not collide with an existing file, appending -1, -2, ... to
// the slug until one is free. Returns the path and the slug used.
func UniquePath(title, dir, ext string) (string, string) {
	base := Make(title)
	for n := 0; ; n++ {
		slug := base
		if n > 0 {
			slug = fmt.Sprintf("%s-%d", base, n)
		}
		path := filepath.Join(dir, slug+"."+ext)
		if _, err := os.Stat(path); os.IsNotExist(err) {
			return path, slug
		}
	}
}
