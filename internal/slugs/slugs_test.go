package slugs

import (
	"os"
	"path/filepath"
	"testing"
)

func TestMake(t *testing.T) {
	cases := []struct {
		title string
		want  string
	}{
		{"Gulls Over the Harbor", "gulls-over-the-harbor"},
		{"Hello, World!", "hello-world"},
		{"  spaced  out  ", "spaced-out"},
		{"Déjà Vu", "deja-vu"},
		{"already-slugged", "already-slugged"},
	}
	for _, tc := range cases {
		if got := Make(tc.title); got != tc.want {
			t.Errorf("Make(%q) = %q, want %q", tc.title, got, tc.want)
		}
	}
}

func TestUniquePath(t *testing.T) {
	dir := t.TempDir()

	path, slug := UniquePath("My Post", dir, "md")
	if slug != "my-post" {
		t.Errorf("slug = %q", slug)
	}
	if path != filepath.Join(dir, "my-post.md") {
		t.Errorf("path = %q", path)
	}

	if err := os.WriteFile(path, nil, 0644); err != nil {
		t.Fatal(err)
	}
	path2, slug2 := UniquePath("My Post", dir, "md")
	if slug2 != "my-post-1" || path2 != filepath.Join(dir, "my-post-1.md") {
		t.Errorf("got %q / %q", path2, slug2)
	}

	if err := os.WriteFile(path2, nil, 0644); err != nil {
		t.Fatal(err)
	}
	_, slug3 := UniquePath("My Post", dir, "md")
	if slug3 != "my-post-2" {
		t.Errorf("slug = %q", slug3)
	}
}
