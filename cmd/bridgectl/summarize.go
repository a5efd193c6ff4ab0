package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/contextbridge/bridge/internal/cloud"
	"github.com/contextbridge/bridge/internal/format"
)

var summarizeFlags struct {
	origin    string
	platform  string
	maxTokens int
}

var summarizeCmd = &cobra.Command{
	Use:   "summarize <page.html>",
	Short: "Summarize a saved chat page through the context store's model",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		origin, err := resolveOrigin(summarizeFlags.origin, summarizeFlags.platform)
		if err != nil {
			return err
		}
		doc, err := loadDoc(args[0])
		if err != nil {
			return err
		}

		res, err := newService().Extract(doc, origin, format.Options{}, nil)
		if err != nil {
			return err
		}
		if len(res.Messages) == 0 {
			return fmt.Errorf("no messages extracted from %s", args[0])
		}

		msgs := make([]cloud.Message, len(res.Messages))
		for i, m := range res.Messages {
			msgs[i] = cloud.Message{Role: string(m.Role), Content: m.Content, Timestamp: m.Timestamp}
		}
		sum, err := newCloudClient().Summarize(cmd.Context(), msgs, summarizeFlags.maxTokens)
		if err != nil {
			return err
		}

		fmt.Fprintln(cmd.OutOrStdout(), sum.Summary)
		fmt.Fprintf(cmd.OutOrStdout(), "(%d tokens, %s)\n", sum.TokensUsed, sum.Model)
		return nil
	},
}

func init() {
	summarizeCmd.Flags().StringVar(&summarizeFlags.origin, "origin", "", "page origin URL, used to detect the platform")
	summarizeCmd.Flags().StringVar(&summarizeFlags.platform, "platform", "", "platform name, alternative to --origin")
	summarizeCmd.Flags().IntVar(&summarizeFlags.maxTokens, "max-tokens", 150, "summary token budget")
	rootCmd.AddCommand(summarizeCmd)
}
