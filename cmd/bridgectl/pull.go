package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var pullFlags struct {
	asJSON bool
}

var pullCmd = &cobra.Command{
	Use:   "pull <context-id>",
	Short: "Fetch a stored context, ready to paste or inject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		fc, err := newService().Pull(cmd.Context(), args[0], nil)
		if err != nil {
			return err
		}

		if pullFlags.asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(fc)
		}
		fmt.Fprintln(cmd.OutOrStdout(), fc.Formatted)
		return nil
	},
}

func init() {
	pullCmd.Flags().BoolVar(&pullFlags.asJSON, "json", false, "emit the context as JSON")
	rootCmd.AddCommand(pullCmd)
}
