// Package config loads the site configuration from lapis.toml.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// ConfigFileName is the site configuration file looked up from the working
// directory upward.
const ConfigFileName = "lapis.toml"

// Config describes a site: where its content lives and how new content is
// scaffolded.
type Config struct {
	// SitePath is the directory holding lapis.toml. Not serialized.
	SitePath string `toml:"-"`

	// Content is the content directory, relative to the site root.
	Content string `toml:"content"`

	// Articles and Pages are content subdirectories scanned during sync.
	Articles []string `toml:"articles"`
	Pages    []string `toml:"pages"`

	// Author is the default author for new content.
	Author string `toml:"author"`

	// Editor opens files for editing (defaults to $EDITOR).
	Editor string `toml:"editor"`

	// DBName is the cache database file name inside the content directory.
	DBName string `toml:"db"`

	// UI holds optional terminal output preferences.
	UI UIConfig `toml:"ui"`
}

// UIConfig holds optional CLI theming preferences.
type UIConfig struct {
	// Accent is an ANSI color code ("0"-"255") or hex color ("#RRGGBB")
	// applied to highlighted output.
	Accent string `toml:"accent"`
}

// Load finds and loads the site config, searching from dir upward when
// sitePath is empty.
func Load(sitePath, dir string) (*Config, error) {
	if sitePath == "" {
		found, err := findSiteRoot(dir)
		if err != nil {
			return nil, err
		}
		sitePath = found
	}

	path := filepath.Join(sitePath, ConfigFileName)
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	cfg.SitePath = sitePath
	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Content == "" {
		c.Content = "content"
	}
	if len(c.Articles) == 0 {
		c.Articles = []string{"posts"}
	}
	if len(c.Pages) == 0 {
		c.Pages = []string{"pages"}
	}
	if c.DBName == "" {
		c.DBName = ".lapisdb"
	}
}

// findSiteRoot walks from dir upward looking for lapis.toml.
func findSiteRoot(dir string) (string, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", err
	}
	for {
		if _, err := os.Stat(filepath.Join(abs, ConfigFileName)); err == nil {
			return abs, nil
		}
		parent := filepath.Dir(abs)
		if parent == abs {
			return "", fmt.Errorf("no %s found in %s or any parent directory\n\nRun 'lapis init' in your site root to create one", ConfigFileName, dir)
		}
		abs = parent
	}
}

// ContentPath returns the absolute content directory.
func (c *Config) ContentPath() string {
	return filepath.Join(c.SitePath, c.Content)
}

// ArticlePath returns the directory new articles are created in.
func (c *Config) ArticlePath() string {
	return filepath.Join(c.ContentPath(), c.Articles[0])
}

// PagePath returns the directory new pages are created in.
func (c *Config) PagePath() string {
	return filepath.Join(c.ContentPath(), c.Pages[0])
}

// DBPath returns the cache database file path.
func (c *Config) DBPath() string {
	return filepath.Join(c.ContentPath(), c.DBName)
}

// GetEditor returns the configured editor, falling back to $EDITOR.
func (c *Config) GetEditor() string {
	if c.Editor != "" {
		return c.Editor
	}
	return os.Getenv("EDITOR")
}

// CreateDefault writes a commented default config into dir if none exists.
// Returns the config file path.
func CreateDefault(dir string) (string, error) {
	path := filepath.Join(dir, ConfigFileName)
	if _, err := os.Stat(path); err == nil {
		return path, nil
	}

	defaultConfig := `# Lapis site configuration

# Content directory, relative to this file.
# content = "content"

# Subdirectories of the content directory scanned for articles and pages.
# articles = ["posts"]
# pages = ["pages"]

# Default author for new content.
# author = "Your Name"

# Editor for opening files (defaults to $EDITOR).
# editor = "vim"

# Optional accent color for terminal output: ANSI code (0-255) or #RRGGBB.
# [ui]
# accent = "39"
`
	if err := os.WriteFile(path, []byte(defaultConfig), 0644); err != nil {
		return "", fmt.Errorf("failed to write config file: %w", err)
	}
	return path, nil
}
