package cmd

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/jfmyers9/dimms/internal/config"
	"github.com/jfmyers9/dimms/internal/gateway"
	"github.com/spf13/cobra"
)

var authCmd = &cobra.Command{
	Use:   "auth",
	Short: "Save a Discogs personal access token",
	Long: `Save a Discogs personal access token to the config file.

1. Generate a token at https://www.discogs.com/settings/developers
2. Paste it when prompted
3. The token is checked against Discogs and saved to your config file

DISCOGS_TOKEN in the environment still takes precedence over the saved token.`,
	Args: cobra.NoArgs,
	RunE: runAuth,
}

func init() {
	rootCmd.AddCommand(authCmd)
}

func runAuth(cmd *cobra.Command, args []string) error {
	reader := bufio.NewReader(os.Stdin)

	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	fmt.Println("Discogs Authentication")
	fmt.Println("======================")
	fmt.Println()
	fmt.Println("You can generate a token at: https://www.discogs.com/settings/developers")
	fmt.Println()

	if cfg.Discogs.Token != "" {
		fmt.Println("Found an existing token.")
		fmt.Print("Replace it? [y/N]: ")
		response, err := reader.ReadString('\n')
		if err != nil {
			response = "n"
		}
		response = strings.TrimSpace(strings.ToLower(response))
		if response != "y" && response != "yes" {
			fmt.Println("Keeping existing token.")
			return nil
		}
	}

	fmt.Print("Enter your Discogs personal access token: ")
	token, err := reader.ReadString('\n')
	if err != nil {
		return fmt.Errorf("failed to read token: %w", err)
	}
	token = strings.TrimSpace(token)
	if token == "" {
		return fmt.Errorf("token is required")
	}

	client, err := newClient(cfg, token, nil, logger)
	if err != nil {
		return fmt.Errorf("failed to create Discogs client: %w", err)
	}

	fmt.Println("\nVerifying token...")
	gw := gateway.New(client, gateway.Options{}, logger)
	id, err := gw.Identity(cmd.Context())
	if err != nil {
		return err
	}

	cfg.Discogs.Token = token
	if err := cfg.Save(); err != nil {
		return fmt.Errorf("failed to save config: %w", err)
	}

	fmt.Printf("\n✓ Authenticated as %s\n", id.Username)
	fmt.Printf("✓ Token saved to %s/config.yaml\n", config.GetConfigDir())
	fmt.Println("\nYou can now run 'dimms -i' to start searching.")

	return nil
}
