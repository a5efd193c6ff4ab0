package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextbridge/bridge/internal/format"
)

var pushFlags struct {
	origin    string
	platform  string
	compress  bool
	recent    int
	aiSummary bool
}

var pushCmd = &cobra.Command{
	Use:   "push <page.html>",
	Short: "Extract a conversation and save it to the context store",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := resolveOrigin(pushFlags.origin, pushFlags.platform)
		if err != nil {
			return err
		}
		doc, err := loadDoc(args[0])
		if err != nil {
			return err
		}

		saved, err := newService().Push(cmd.Context(), doc, origin, format.Options{
			CompressOlder: pushFlags.compress,
			RecentCount:   pushFlags.recent,
		}, pushFlags.aiSummary, nil)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "stored %d messages as %s\n", saved.MessageCount, saved.ContextID)
		if saved.AISummary != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "summary: %s\n", saved.AISummary)
		}
		return nil
	},
}

func init() {
	pushCmd.Flags().StringVar(&pushFlags.origin, "origin", "", "page origin URL, used to detect the platform")
	pushCmd.Flags().StringVar(&pushFlags.platform, "platform", "", "platform name, alternative to --origin")
	pushCmd.Flags().BoolVar(&pushFlags.compress, "compress", false, "compact older turns into a summary")
	pushCmd.Flags().IntVar(&pushFlags.recent, "recent", 10, "turns to keep verbatim when compacting")
	pushCmd.Flags().BoolVar(&pushFlags.aiSummary, "ai-summary", false, "ask the store for a model-generated summary")
	rootCmd.AddCommand(pushCmd)
}
