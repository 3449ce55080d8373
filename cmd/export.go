package cmd

import (
	"github.com/jfmyers9/dimms/internal/dispatch"
	"github.com/spf13/cobra"
)

var dumpOpts dispatch.DumpOptions

var writeLastCmd = &cobra.Command{
	Use:   "write-last-search-to-file",
	Short: "Write the last search results to a CSV file",
	Long: `Write the most recent search or listing to CSV.

Outside an interactive session nothing has been searched yet, so this
reports that there is no recent search. Use it inside 'dimms -i'.`,
	Args: cobra.NoArgs,
	RunE: runWriteLast,
}

var dumpCmd = &cobra.Command{
	Use:   "dump-all-data",
	Short: "Write everything collected so far to CSV",
	Long: `Write all artists and albums collected during the session to CSV.

By default one file tagged by data_type is written. With --separate,
artists_<file> and albums_<file> are written instead.`,
	Args: cobra.NoArgs,
	RunE: runDump,
}

func init() {
	rootCmd.AddCommand(writeLastCmd)
	rootCmd.AddCommand(dumpCmd)

	dispatch.BindDumpFlags(dumpCmd.Flags(), &dumpOpts)
}

func runWriteLast(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.handlers.WriteLastSearch()
	if err != nil {
		return a.report(err)
	}

	a.console.Present(res)
	return nil
}

func runDump(cmd *cobra.Command, args []string) error {
	a, err := newApp(cmd.Context(), false)
	if err != nil {
		return err
	}
	defer a.Close()

	res, err := a.handlers.DumpAll(dumpOpts)
	if err != nil {
		return a.report(err)
	}

	a.console.Present(res)
	return nil
}
