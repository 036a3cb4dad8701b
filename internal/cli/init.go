package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/config"
	"github.com/dmdesousa/lapis/internal/ui"
)

var initCmd = &cobra.Command{
	Use:   "init [dir]",
	Short: "Create a lapis.toml in the site root",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dir := "."
		if len(args) == 1 {
			dir = args[0]
		}
		path, err := config.CreateDefault(dir)
		if err != nil {
			return err
		}
		fmt.Println(ui.Successf("Wrote %s", ui.FilePath(path)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(initCmd)
}
