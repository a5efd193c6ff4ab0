package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextbridge/bridge/internal/format"
)

var extractFlags struct {
	origin   string
	platform string
	compress bool
	recent   int
	asJSON   bool
}

var extractCmd = &cobra.Command{
	Use:   "extract <page.html>",
	Short: "Extract and format the conversation from a saved chat page",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := resolveOrigin(extractFlags.origin, extractFlags.platform)
		if err != nil {
			return err
		}
		doc, err := loadDoc(args[0])
		if err != nil {
			return err
		}

		res, err := newService().Extract(doc, origin, format.Options{
			CompressOlder: extractFlags.compress,
			RecentCount:   extractFlags.recent,
		}, nil)
		if err != nil {
			return err
		}

		if extractFlags.asJSON {
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(map[string]any{
				"platform":      res.Platform,
				"message_count": res.Context.Count,
				"summary":       res.Context.Summary,
				"formatted":     res.Context.Formatted,
				"messages":      res.Messages,
			})
		}

		if res.Context.Formatted == "" {
			fmt.Fprintln(cmd.OutOrStdout(), res.Context.Summary)
			return nil
		}
		fmt.Fprintln(cmd.OutOrStdout(), res.Context.Formatted)
		return nil
	},
}

func init() {
	extractCmd.Flags().StringVar(&extractFlags.origin, "origin", "", "page origin URL, used to detect the platform")
	extractCmd.Flags().StringVar(&extractFlags.platform, "platform", "", "platform name, alternative to --origin")
	extractCmd.Flags().BoolVar(&extractFlags.compress, "compress", false, "compact older turns into a summary")
	extractCmd.Flags().IntVar(&extractFlags.recent, "recent", 10, "turns to keep verbatim when compacting")
	extractCmd.Flags().BoolVar(&extractFlags.asJSON, "json", false, "emit the full result as JSON")
	rootCmd.AddCommand(extractCmd)
}
