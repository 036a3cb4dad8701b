// Package cli implements the command-line interface.
package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/config"
	"github.com/dmdesousa/lapis/internal/corpus"
	"github.com/dmdesousa/lapis/internal/store"
	"github.com/dmdesousa/lapis/internal/ui"
)

var (
	sitePathFlag string

	cfg *config.Config
)

var rootCmd = &cobra.Command{
	Use:   "lapis",
	Short: "Lapis - a companion tool for static site content",
	Long: `Lapis keeps a local cache of your site's content metadata (titles,
tags, authors, categories, dates, status) so you can search, list, create
and edit content without re-parsing the whole site on every invocation.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// init/version/completion run without a site
		switch cmd.Name() {
		case "init", "version", "completion", "help":
			return nil
		}
		if cmd.Parent() != nil && cmd.Parent().Name() == "completion" {
			return nil
		}

		var err error
		cfg, err = config.Load(sitePathFlag, ".")
		if err != nil {
			return err
		}
		ui.ConfigureTheme(cfg.UI.Accent)
		return nil
	},
}

// Execute runs the CLI.
func Execute() error {
	err := rootCmd.Execute()
	if err != nil {
		fmt.Println(ui.Errorf("%v", err))
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&sitePathFlag, "site", "s", "", "Path to the site root (default: search upward for lapis.toml)")
}

// getConfig returns the loaded site config.
func getConfig() *config.Config {
	return cfg
}

// openStore opens the site's metadata cache, rebuilding it when the
// persisted schema version is incompatible with this binary.
func openStore() (*store.Store, bool, error) {
	s, rebuilt, err := store.OpenWithRebuild(cfg.DBPath())
	if err != nil {
		return nil, false, fmt.Errorf("failed to open cache: %w", err)
	}
	return s, rebuilt, nil
}

// siteCorpus returns the corpus walker for the configured site.
func siteCorpus() *corpus.Walker {
	return &corpus.Walker{
		Root:        cfg.ContentPath(),
		ArticleDirs: cfg.Articles,
		PageDirs:    cfg.Pages,
	}
}
