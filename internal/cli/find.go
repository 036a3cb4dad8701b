package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/ui"
)

var findFilters filterFlags

var findCmd = &cobra.Command{
	Use:   "find",
	Short: "Search cached content",
	Long: `Searches the metadata cache and lists matching content, numbered.
All given filters must match. Use the result number with 'lapis edit',
'lapis path', 'lapis show' or 'lapis rm'.

Examples:
  lapis find --type article --status draft
  lapis find --tag ocean --tag bird
  lapis find --after 2014-01-01 --before 2015-01-01
  lapis find --title photo`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		filters, err := findFilters.toFilters()
		if err != nil {
			return err
		}

		s, err := openStoreSynced()
		if err != nil {
			return err
		}
		defer s.Close()

		cur, err := s.Search(filters)
		if err != nil {
			return err
		}
		defer cur.Close()

		n := 0
		for cur.Next() {
			n++
			fmt.Println(ui.ContentRow(n, cur.Content()))
		}
		if err := cur.Err(); err != nil {
			return err
		}
		if n == 0 {
			fmt.Println(ui.Hint("no content matched"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(findCmd)
	findFilters.register(findCmd)
}
