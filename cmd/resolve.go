package cmd

import (
	"fmt"

	"uloggd/feature/games"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// resolveCmd represents the resolve command
var resolveCmd = &cobra.Command{
	Use:   "resolve <slug...>",
	Short: "Resolve game slugs through the cache",
	Long: `Looks every slug up in the cache, fetches the misses from IGDB in concurrent chunks
and prints the merged result. Fetched records are written back before the command exits.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		var partial *bool
		if cmd.Flags().Changed("partial") {
			v, _ := cmd.Flags().GetBool("partial")
			partial = &v
		}

		svc := games.NewService(rt.cfg.Catalog, rt.catalog, rt.store, rt.backfill, rt.logger)
		result, err := svc.Resolve(cmd.Context(), args, partial)
		if err != nil {
			return fmt.Errorf("resolve failed: %w", err)
		}

		rt.logger.Info("Resolved games",
			zap.Int("requested", len(args)),
			zap.Int("found", len(result.Games)),
			zap.Int("failed_chunks", len(result.Failures)))

		return printJSON(cmd.OutOrStdout(), result)
	},
}

func init() {
	RootCmd.AddCommand(resolveCmd)
	resolveCmd.Flags().Bool("partial", false, "Return successful chunks when some chunks fail")
}
