package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/model"
	"github.com/dmdesousa/lapis/internal/store"
	"github.com/dmdesousa/lapis/internal/ui"
)

var (
	listPattern string
	listOrder   string
)

var tagsCmd = &cobra.Command{
	Use:   "tags",
	Short: "List tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(model.KindTag)
	},
}

var authorsCmd = &cobra.Command{
	Use:   "authors",
	Short: "List authors",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(model.KindAuthor)
	},
}

var categoriesCmd = &cobra.Command{
	Use:   "categories",
	Short: "List categories",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runList(model.KindCategory)
	},
}

// runList lists the rows of one lookup entity with content counts:
//
//	[2] photography
//	[1] drafts
func runList(kind model.Kind) error {
	s, err := openStoreSynced()
	if err != nil {
		return err
	}
	defer s.Close()

	cur, err := s.List(listPattern, listOrder, kind)
	if err != nil {
		return err
	}
	defer cur.Close()

	found := false
	for cur.Next() {
		found = true
		fmt.Println(ui.TermRow(cur.Term()))
	}
	if err := cur.Err(); err != nil {
		return err
	}
	if !found {
		fmt.Println(ui.Hint(fmt.Sprintf("no %s found", kind)))
	}
	return nil
}

func init() {
	for _, cmd := range []*cobra.Command{tagsCmd, authorsCmd, categoriesCmd} {
		cmd.Flags().StringVarP(&listPattern, "pattern", "p", "", "Only list names matching this regular expression")
		cmd.Flags().StringVarP(&listOrder, "order", "o", store.OrderByName, "Ordering: 'name' (ascending) or 'content' (by content count, descending)")
		rootCmd.AddCommand(cmd)
	}
}
