package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

var pathFilters filterFlags

var pathCmd = &cobra.Command{
	Use:   "path <n>",
	Short: "Print the source path of the nth search result",
	Long: `Runs a search with the given filters and prints the nth result's source
path, for use with other tools:

  $EDITOR "$(lapis path 1 --type page)"`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		filters, err := pathFilters.toFilters()
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

		fmt.Println(c.SourcePath)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(pathCmd)
	pathFilters.register(pathCmd)
}
