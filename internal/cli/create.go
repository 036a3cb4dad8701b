package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/dates"
	"github.com/dmdesousa/lapis/internal/editor"
	"github.com/dmdesousa/lapis/internal/model"
	"github.com/dmdesousa/lapis/internal/scaffold"
	"github.com/dmdesousa/lapis/internal/ui"
)

var (
	createTitle    string
	createAuthor   string
	createCategory string
	createStatus   string
	createTags     []string
	createDate     string
	createEdit     bool
)

var createCmd = &cobra.Command{
	Use:   "create",
	Short: "Create new content",
}

var createPostCmd = &cobra.Command{
	Use:     "post",
	Aliases: []string{"article"},
	Short:   "Create a new post",
	Args:    cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(model.TypeArticle, getConfig().ArticlePath())
	},
}

var createPageCmd = &cobra.Command{
	Use:   "page",
	Short: "Create a new page",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCreate(model.TypePage, getConfig().PagePath())
	},
}

func runCreate(typ model.Type, dir string) error {
	status, err := model.ParseStatus(createStatus)
	if err != nil {
		return err
	}

	date := time.Now()
	if createDate != "" {
		parsed, err := dates.Parse(createDate)
		if err != nil {
			return err
		}
		date = parsed
	}

	author := createAuthor
	if author == "" {
		author = getConfig().Author
	}

	path, err := scaffold.Create(dir, scaffold.Options{
		Title:    createTitle,
		Author:   author,
		Category: createCategory,
		Status:   status,
		Tags:     createTags,
		Date:     date,
	})
	if err != nil {
		return err
	}
	fmt.Println(ui.Successf("Created %s", ui.FilePath(path)))

	s, _, err := openStore()
	if err != nil {
		return err
	}
	defer s.Close()

	if err := s.SyncFile(siteCorpus(), path, typ); err != nil {
		return err
	}

	if createEdit {
		if err := editor.Open(getConfig().GetEditor(), path); err != nil {
			return err
		}
		return s.SyncFile(siteCorpus(), path, typ)
	}
	return nil
}

func init() {
	rootCmd.AddCommand(createCmd)
	createCmd.AddCommand(createPostCmd, createPageCmd)

	for _, cmd := range []*cobra.Command{createPostCmd, createPageCmd} {
		cmd.Flags().StringVar(&createTitle, "title", "", "Title of the new content (required)")
		cmd.Flags().StringVar(&createAuthor, "author", "", "Author (defaults to the configured author)")
		cmd.Flags().StringVar(&createCategory, "category", "", "Category")
		cmd.Flags().StringVar(&createStatus, "status", "", "Status (published, hidden, draft; default published)")
		cmd.Flags().StringSliceVar(&createTags, "tag", nil, "Tag (repeatable)")
		cmd.Flags().StringVar(&createDate, "date", "", "Creation date (YYYY-MM-DD; default today)")
		cmd.Flags().BoolVarP(&createEdit, "edit", "e", false, "Open the new file in your editor")
		_ = cmd.MarkFlagRequired("title")
	}
}
