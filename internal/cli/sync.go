package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/ui"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Sync the metadata cache with the content on disk",
	Long: `Walks the configured article and page directories, parses each content
file, and reconciles the metadata cache: new files are added, changed
files updated, and rows for deleted files removed.

Files that fail to parse are reported and skipped; they do not abort the
sync.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		s, rebuilt, err := openStore()
		if err != nil {
			return err
		}
		defer s.Close()

		if rebuilt {
			fmt.Println(ui.Hint("cache schema was outdated - rebuilt"))
		}

		updated, skipped, err := s.Sync(siteCorpus())
		if err != nil {
			return err
		}
		printSkipped(skipped)

		stats, err := s.Stats()
		if err != nil {
			return err
		}

		switch {
		case updated:
			fmt.Println(ui.Successf("Cache updated: %d articles, %d pages", stats.Articles, stats.Pages))
		default:
			fmt.Println(ui.Successf("Cache already up to date: %d articles, %d pages", stats.Articles, stats.Pages))
		}
		fmt.Printf("  %d tags, %d authors, %d categories\n", stats.Tags, stats.Authors, stats.Categories)
		if len(skipped) > 0 {
			fmt.Println(ui.Warningf("%d file(s) skipped", len(skipped)))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(syncCmd)
}
