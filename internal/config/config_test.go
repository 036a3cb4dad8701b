package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, dir, text string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, ConfigFileName), []byte(text), 0644); err != nil {
		t.Fatal(err)
	}
}

func TestLoadAppliesDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := Load(dir, dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.SitePath != dir {
		t.Errorf("site path = %q, want %q", cfg.SitePath, dir)
	}
	if cfg.Content != "content" {
		t.Errorf("content = %q", cfg.Content)
	}
	if len(cfg.Articles) != 1 || cfg.Articles[0] != "posts" {
		t.Errorf("articles = %v", cfg.Articles)
	}
	if len(cfg.Pages) != 1 || cfg.Pages[0] != "pages" {
		t.Errorf("pages = %v", cfg.Pages)
	}
	if cfg.DBName != ".lapisdb" {
		t.Errorf("db name = %q", cfg.DBName)
	}
}

func TestLoadReadsValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
content = "src"
articles = ["blog", "photos"]
pages = ["static"]
author = "Daniel"
editor = "nano"
db = "cache.db"

[ui]
accent = "#89B4FA"
`)

	cfg, err := Load(dir, dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Content != "src" || cfg.Author != "Daniel" || cfg.Editor != "nano" {
		t.Errorf("unexpected config: %+v", cfg)
	}
	if len(cfg.Articles) != 2 || cfg.Articles[0] != "blog" {
		t.Errorf("articles = %v", cfg.Articles)
	}
	if cfg.UI.Accent != "#89B4FA" {
		t.Errorf("accent = %q", cfg.UI.Accent)
	}

	if got, want := cfg.ContentPath(), filepath.Join(dir, "src"); got != want {
		t.Errorf("content path = %q, want %q", got, want)
	}
	if got, want := cfg.ArticlePath(), filepath.Join(dir, "src", "blog"); got != want {
		t.Errorf("article path = %q, want %q", got, want)
	}
	if got, want := cfg.PagePath(), filepath.Join(dir, "src", "static"); got != want {
		t.Errorf("page path = %q, want %q", got, want)
	}
	if got, want := cfg.DBPath(), filepath.Join(dir, "src", "cache.db"); got != want {
		t.Errorf("db path = %q, want %q", got, want)
	}
}

func TestLoadSearchesUpward(t *testing.T) {
	root := t.TempDir()
	writeConfig(t, root, `author = "Daniel"`)
	nested := filepath.Join(root, "content", "posts")
	if err := os.MkdirAll(nested, 0755); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load("", nested)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Author != "Daniel" {
		t.Errorf("author = %q", cfg.Author)
	}
	// Symlinked temp dirs make exact path equality flaky; the loaded
	// config proves the right root was found.
	if cfg.SitePath == "" {
		t.Error("site path not recorded")
	}
}

func TestLoadFailsWithoutConfig(t *testing.T) {
	dir := t.TempDir()
	if _, err := Load("", dir); err == nil {
		t.Error("expected an error when no config exists anywhere above dir")
	}
}

func TestLoadRejectsMalformedToml(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `content = [broken`)
	if _, err := Load(dir, dir); err == nil {
		t.Error("expected a toml parse error")
	}
}

func TestGetEditorFallsBackToEnv(t *testing.T) {
	t.Setenv("EDITOR", "emacs")
	cfg := &Config{}
	if got := cfg.GetEditor(); got != "emacs" {
		t.Errorf("editor = %q, want emacs", got)
	}
	cfg.Editor = "nano"
	if got := cfg.GetEditor(); got != "nano" {
		t.Errorf("editor = %q, want nano", got)
	}
}

func TestCreateDefault(t *testing.T) {
	dir := t.TempDir()
	path, err := CreateDefault(dir)
	if err != nil {
		t.Fatal(err)
	}
	if filepath.Base(path) != ConfigFileName {
		t.Errorf("path = %q", path)
	}

	// The generated file is valid and loads with pure defaults.
	cfg, err := Load(dir, dir)
	if err != nil {
		t.Fatalf("generated config failed to load: %v", err)
	}
	if cfg.Content != "content" {
		t.Errorf("content = %q", cfg.Content)
	}

	// A second call leaves an existing file alone.
	writeConfig(t, dir, `author = "Keep Me"`)
	if _, err := CreateDefault(dir); err != nil {
		t.Fatal(err)
	}
	cfg, err = Load(dir, dir)
	if err != nil {
		t.Fatal(err)
	}
	if cfg.Author != "Keep Me" {
		t.Error("existing config was overwritten")
	}
}

func TestLoadFailsWithoutConfigDoesNotEscapeRoot(t *testing.T) {
	// Guards against an infinite upward walk.
	if _, err := Load("", string(os.PathSeparator)+"nonexistent-lapis-test-dir"); err == nil {
		t.Error("expected an error")
	}
}
