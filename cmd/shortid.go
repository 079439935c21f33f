package cmd

import (
	"fmt"

	"uloggd/core/shortid"

	"github.com/spf13/cobra"
)

// shortidCmd represents the shortid command
var shortidCmd = &cobra.Command{
	Use:   "shortid",
	Short: "Convert between UUIDs and short ids",
}

var shortidEncodeCmd = &cobra.Command{
	Use:   "encode <uuid>",
	Short: "Encode a UUID as a base-62 short id",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := shortid.EncodeString(args[0])
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

var shortidDecodeCmd = &cobra.Command{
	Use:   "decode <short-id>",
	Short: "Decode a base-62 short id into a UUID",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		mode := shortid.Lenient
		if strict, _ := cmd.Flags().GetBool("strict"); strict {
			mode = shortid.Strict
		}
		out, err := shortid.New(mode).Decode(args[0])
		if err != nil {
			return fmt.Errorf("cannot decode %q: %w", args[0], err)
		}
		fmt.Fprintln(cmd.OutOrStdout(), out)
		return nil
	},
}

func init() {
	RootCmd.AddCommand(shortidCmd)
	shortidCmd.AddCommand(shortidEncodeCmd, shortidDecodeCmd)
	shortidDecodeCmd.Flags().Bool("strict", false, "Reject input that is not a valid short id")
}
