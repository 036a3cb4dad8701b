package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/ui"
)

var (
	rmFilters filterFlags
	rmForce   bool
)

var rmCmd = &cobra.Command{
	Use:   "rm <n>",
	Short: "Delete the nth search result's file",
	Long: `Runs a search with the given filters, asks for confirmation, deletes the
nth result's file from disk and removes it from the cache.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := parseIndex(args[0])
		if err != nil {
			return err
		}
		filters, err := rmFilters.toFilters()
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

		if !rmForce && !confirm(fmt.Sprintf("Delete %s at %s?", c.Title, c.SourcePath)) {
			fmt.Println(ui.Hint("aborted"))
			return nil
		}

		if err := os.Remove(c.SourcePath); err != nil {
			return fmt.Errorf("failed to delete %s: %w", c.SourcePath, err)
		}
		if err := s.Remove(c.SourcePath); err != nil {
			return err
		}
		// Sweep any other stale rows; the just-handled path needs no stat.
		if err := s.Purge(c.SourcePath); err != nil {
			return err
		}

		fmt.Println(ui.Successf("Deleted content at %s", c.SourcePath))
		return nil
	},
}

// confirm prompts on stdin for a y/n answer.
func confirm(prompt string) bool {
	fmt.Printf("%s [y/N]: ", prompt)
	line, err := bufio.NewReader(os.Stdin).ReadString('\n')
	if err != nil {
		return false
	}
	answer := strings.ToLower(strings.TrimSpace(line))
	return answer == "y" || answer == "yes"
}

func init() {
	rootCmd.AddCommand(rmCmd)
	rmFilters.register(rmCmd)
	rmCmd.Flags().BoolVarP(&rmForce, "force", "f", false, "Delete without confirmation")
}
