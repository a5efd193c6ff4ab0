package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextbridge/bridge/internal/platform"
)

var detectCmd = &cobra.Command{
	Use:   "detect <origin>",
	Short: "Report which platform a page origin belongs to",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		p := platform.Detect(args[0])
		fmt.Fprintln(cmd.OutOrStdout(), p)
		if !platform.Known(p) {
			return fmt.Errorf("origin %q is not a supported platform", args[0])
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(detectCmd)
}
