package cmd

import (
	"github.com/jfmyers9/dimms/internal/dispatch"
	"github.com/spf13/cobra"
)

var albumsCmd = &cobra.Command{
	Use:   "list-albums <artist_id>",
	Short: "List releases for a Discogs artist ID",
	Args:  cobra.ExactArgs(1),
	RunE:  runAlbums,
}

func init() {
	rootCmd.AddCommand(albumsCmd)
}

func runAlbums(cmd *cobra.Command, args []string) error {
	// Reject a bad ID before touching config or the network
	artistID, err := dispatch.ParseArtistID(args[0])
	if err != nil {
		return err
	}

	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.handlers.ListAlbums(cmd.Context(), artistID)
	if err != nil {
		return a.report(err)
	}

	a.console.Present(res)
	return nil
}
