package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// cacheCmd represents the cache command
var cacheCmd = &cobra.Command{
	Use:   "cache",
	Short: "Manage cached entries",
}

// cacheClearCmd represents the cache clear command
var cacheClearCmd = &cobra.Command{
	Use:   "clear <prefix>",
	Short: "Delete every cache entry whose key starts with prefix",
	Long:  `Deletes cache entries by key prefix, for example "igdb_" or "igdb_game_zelda".`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		prefix := args[0]
		if prefix == "" {
			return fmt.Errorf("prefix must not be empty")
		}
		if !rt.store.Clear(cmd.Context(), prefix) {
			return fmt.Errorf("failed to clear cache prefix %q", prefix)
		}
		rt.logger.Info("Cache cleared", zap.String("prefix", prefix), zap.String("backend", rt.cfg.Cache.Backend))
		return nil
	},
}

func init() {
	RootCmd.AddCommand(cacheCmd)
	cacheCmd.AddCommand(cacheClearCmd)
}
