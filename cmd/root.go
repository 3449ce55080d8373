/*
Copyright © 2026 NAME HERE <EMAIL ADDRESS>

*/
package cmd

import (
	"errors"
	"fmt"
	"os"

	"github.com/jfmyers9/dimms/internal/shell"
	"github.com/spf13/cobra"
)

// Version information (set via ldflags during build)
var (
	version   = "dev"
	commit    = "unknown"
	buildDate = "unknown"
)

var (
	interactive bool
	logLevel    string
	logFile     string
	noVerify    bool
)

// errReported marks errors already shown to the user
var errReported = errors.New("reported")

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "dimms",
	Short: "Discogs music metadata search",
	Long: `dimms searches the Discogs database for artists and their releases
and exports what it finds to CSV.

Run a single command directly, or start an interactive session with -i
where results accumulate and can be dumped together:

  dimms search-artists Muse
  dimms list-albums 1003
  dimms -i

A Discogs personal access token is required. Set DISCOGS_TOKEN or run
'dimms auth'.`,
	Version:       fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, buildDate),
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runRoot,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		if !errors.Is(err, errReported) {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Start an interactive session")

	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error; default from config)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "Log file path (default: stderr)")
	rootCmd.PersistentFlags().BoolVar(&noVerify, "no-verify", false, "Skip the startup token check")
}

func runRoot(cmd *cobra.Command, args []string) error {
	if !interactive {
		return cmd.Help()
	}

	a, err := newApp(cmd.Context(), true)
	if err != nil {
		return err
	}
	defer a.Close()

	rl, err := shell.NewReadline(a.dispatcher.Names())
	if err != nil {
		return err
	}

	return shell.New(rl, a.dispatcher, a.console, a.logger).Run(cmd.Context())
}
