package cmd

import (
	"fmt"

	"github.com/jfmyers9/dimms/internal/httpcache"
	"github.com/spf13/cobra"
)

var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage the API response cache",
	Long: `Manage the on-disk cache of Discogs API responses.

Successful GET responses are cached for cache.ttl (default 30m) in
cache.path (default ~/.config/dimms/http_cache.db).`,
}

var cachePruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove expired cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *httpcache.Transport) error {
			n, err := c.Prune(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d expired entries\n", n)
			return nil
		})
	},
}

var cacheClearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Remove all cache entries",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *httpcache.Transport) error {
			n, err := c.Clear(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("Removed %d entries\n", n)
			return nil
		})
	},
}

var cacheStatsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show cache entry counts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return withCache(func(c *httpcache.Transport) error {
			total, err := c.Count(cmd.Context(), true)
			if err != nil {
				return err
			}
			fresh, err := c.Count(cmd.Context(), false)
			if err != nil {
				return err
			}
			fmt.Printf("Entries: %d (%d fresh, %d expired)\n", total, fresh, total-fresh)
			return nil
		})
	},
}

func init() {
	rootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cachePruneCmd)
	cacheCmd.AddCommand(cacheClearCmd)
	cacheCmd.AddCommand(cacheStatsCmd)
}

// withCache opens the configured cache, runs fn and closes it. No token
// is needed.
func withCache(fn func(c *httpcache.Transport) error) error {
	cfg, logger, err := loadConfig()
	if err != nil {
		return err
	}

	cache, err := openCache(cfg, logger)
	if err != nil {
		return err
	}
	if cache == nil {
		return fmt.Errorf("response cache is disabled (cache.enabled=false)")
	}
	defer closeCache(cache, logger)

	return fn(cache)
}
