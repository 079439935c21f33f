package cmd

import (
	"fmt"

	"uloggd/core/shortid"
	"uloggd/feature/library"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
)

// libraryCmd represents the library command
var libraryCmd = &cobra.Command{
	Use:   "library <user>",
	Short: "Print a user's reconciled library",
	Long:  `Merges the user's game states and log entries. The user may be given as a UUID or a short id.`,
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := newRuntime(cmd.Context())
		if err != nil {
			return err
		}
		defer rt.Close()

		userID, err := rt.codec.Decode(args[0])
		if err != nil {
			return fmt.Errorf("invalid user id %q: %w", args[0], err)
		}

		shelf, _ := cmd.Flags().GetString("shelf")
		page, _ := cmd.Flags().GetInt("page")
		limit, _ := cmd.Flags().GetInt("limit")

		svc := library.NewService(library.NewRepository(rt.db), rt.logger)
		lib, err := svc.Library(cmd.Context(), userID, library.Query{Shelf: shelf, Page: page, Limit: limit})
		if err != nil {
			return fmt.Errorf("failed to load library: %w", err)
		}
		if id, err := uuid.Parse(userID); err == nil {
			lib.ShortID = shortid.Encode(id)
		}

		return printJSON(cmd.OutOrStdout(), lib)
	},
}

func init() {
	RootCmd.AddCommand(libraryCmd)
	libraryCmd.Flags().String("shelf", "all", "Shelf to list")
	libraryCmd.Flags().Int("page", 1, "Page number")
	libraryCmd.Flags().Int("limit", 24, "Page size")
}
