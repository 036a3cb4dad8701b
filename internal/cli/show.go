package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/content"
	"github.com/dmdesousa/lapis/internal/ui"
)

var showFilters filterFlags

var showCmd = &cobra.Command{
	Use:   "show <n>",
	Short: "Render the nth search result in the terminal",
	Long: `Runs a search with the given filters and renders the nth result's body
as styled markdown in the terminal.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		filters, err := showFilters.toFilters()
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

		raw, err := os.ReadFile(c.SourcePath)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", c.SourcePath, err)
		}

		fmt.Println(ui.FilePath(c.SourcePath))
		rendered, err := ui.RenderMarkdown(content.Body(string(raw)), ui.TermWidth())
		if err != nil {
			return err
		}
		fmt.Print(rendered)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
	showFilters.register(showCmd)
}
