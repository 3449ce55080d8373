package cmd

import (
	"strings"

	"github.com/spf13/cobra"
)

var searchCmd = &cobra.Command{
	Use:   "search-artists <artist_name>",
	Short: "Search for artists by name",
	Long: `Search the Discogs database for artists matching a name.

All remaining arguments are joined with single spaces, so quoting is
optional:

  dimms search-artists The Black Keys`,
	Args: cobra.MinimumNArgs(1),
	RunE: runSearch,
}

func init() {
	rootCmd.AddCommand(searchCmd)
}

func runSearch(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.handlers.SearchArtists(cmd.Context(), strings.Join(args, " "))
	if err != nil {
		return a.report(err)
	}

	a.console.Present(res)
	return nil
}
