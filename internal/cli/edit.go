package cli

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/editor"
	"github.com/dmdesousa/lapis/internal/ui"
)

var editFilters filterFlags

var editCmd = &cobra.Command{
	Use:   "edit <n>",
	Short: "Edit the nth search result",
	Long: `Runs a search with the given filters and opens the nth result (1-based)
in your editor. The edited file is re-synced into the cache afterward.

Examples:
  lapis edit 1 --type page
  lapis edit 3 --tag ocean`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		filters, err := editFilters.toFilters()
		if err != nil {
			return err
		}

		s, err := openStoreSynced()
		if err != nil {
			return err
		}
		defer s.Close()

		c, err := nthResult(s, filters, n)
		if err != nil {
			return err
		}
		if err := requireOnDisk(c); err != nil {
			return err
		}

		if err := editor.Open(getConfig().GetEditor(), c.SourcePath); err != nil {
			return err
		}

		if err := s.SyncFile(siteCorpus(), c.SourcePath, c.Type); err != nil {
			return err
		}
		fmt.Println(ui.Successf("Synced %s", filepath.Base(c.SourcePath)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(editCmd)
	editFilters.register(editCmd)
}
