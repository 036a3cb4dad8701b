package cli

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/dmdesousa/lapis/internal/dates"
	"github.com/dmdesousa/lapis/internal/model"
	"github.com/dmdesousa/lapis/internal/store"
	"github.com/dmdesousa/lapis/internal/ui"
)

// filterFlags is the shared search criteria flag set used by find, edit,
// path, show and rm.
type filterFlags struct {
	author   string
	category string
	status   string
	typ      string
	title    string
	tags     []string
	on       string
	after    string
	before   string
}

func (f *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&f.author, "author", "", "Match content by author name")
	cmd.Flags().StringVar(&f.category, "category", "", "Match content by category name")
	cmd.Flags().StringVar(&f.status, "status", "", "Match content by status (published, hidden, draft)")
	cmd.Flags().StringVarP(&f.typ, "type", "t", "", "Match content by type (article, page)")
	cmd.Flags().StringVar(&f.title, "title", "", "Match content whose title contains this text (case-insensitive)")
	cmd.Flags().StringSliceVar(&f.tags, "tag", nil, "Match content carrying this tag (repeatable, all must match)")
	cmd.Flags().StringVar(&f.on, "on", "", "Match content created on this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.after, "after", "", "Match content created on or after this date (YYYY-MM-DD)")
	cmd.Flags().StringVar(&f.before, "before", "", "Match content created before this date (YYYY-MM-DD)")
}

// toFilters validates the flag values and converts them to store filters.
func (f *filterFlags) toFilters() (store.Filters, error) {
	var out store.Filters
	out.Author = f.author
	out.Category = f.category
	out.Title = f.title
	out.Tags = f.tags

	if f.status != "" {
		status, err := model.ParseStatus(f.status)
		if err != nil {
			return out, err
		}
		out.Status = status
	}
	if f.typ != "" {
		typ, err := model.ParseType(f.typ)
		if err != nil {
			return out, err
		}
		out.Type = typ
	}

	if f.on != "" && (f.after != "" || f.before != "") {
		return out, fmt.Errorf("--on cannot be combined with --after/--before")
	}
	var err error
	if out.On, err = dates.ParseOptional(f.on); err != nil {
		return out, err
	}
	if out.After, err = dates.ParseOptional(f.after); err != nil {
		return out, err
	}
	if out.Before, err = dates.ParseOptional(f.before); err != nil {
		return out, err
	}
	if out.After != nil && out.Before != nil && out.Before.Before(*out.After) {
		return out, fmt.Errorf("--before (%s) is earlier than --after (%s)", f.before, f.after)
	}

	return out, nil
}

// parseIndex parses the 1-based result selection argument.
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid result number %q (expected a positive integer)", arg)
	}
	return n, nil
}

// nthResult runs a search and returns the nth (1-based) match. The whole
// result set is drained so out-of-range errors can report the match count.
func nthResult(s *store.Store, filters store.Filters, n int) (*model.Content, error) {
	cur, err := s.Search(filters)
	if err != nil {
		return nil, err
	}
	results, err := cur.Collect()
	if err != nil {
		return nil, err
	}
	if n > len(results) {
		return nil, fmt.Errorf("result %d is out of range: the search matched %d item(s)", n, len(results))
	}
	return results[n-1], nil
}

// requireOnDisk fails with a re-sync hint when the cached row's backing
// file has disappeared since the last sync.
func requireOnDisk(c *model.Content) error {
	if _, err := os.Stat(c.SourcePath); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("source file %s no longer exists on disk; run 'lapis sync' to refresh the cache", c.SourcePath)
	} else if err != nil {
		return fmt.Errorf("failed to stat %s: %w", c.SourcePath, err)
	}
	return nil
}

// openStoreSynced opens the cache and, when it was just created or
// rebuilt, runs a full sync so queries don't silently see an empty cache.
func openStoreSynced() (*store.Store, error) {
	s, rebuilt, err := openStore()
	if err != nil {
		return nil, err
	}
	if s.Created() || rebuilt {
		if rebuilt {
			fmt.Println(ui.Hint("cache schema was outdated - rebuilding"))
		}
		if _, skipped, err := s.Sync(siteCorpus()); err != nil {
			s.Close()
			return nil, err
		} else {
			printSkipped(skipped)
		}
	}
	return s, nil
}

func printSkipped(skipped []store.FileError) {
	for _, fe := range skipped {
		fmt.Fprintln(os.Stderr, ui.Warningf("skipped %s: %v", fe.Path, fe.Err))
	}
}
