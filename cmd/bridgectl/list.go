package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var listFlags struct {
	platform string
	limit    int
	offset   int
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored contexts",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		res, err := newCloudClient().ListContexts(cmd.Context(), listFlags.platform, listFlags.limit, listFlags.offset)
		if err != nil {
			return err
		}

		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tPLATFORM\tMESSAGES\tCREATED\tSUMMARY")
		for _, c := range res.Contexts {
			fmt.Fprintf(tw, "%s\t%s\t%d\t%s\t%s\n",
				c.ID, c.Platform, c.MessageCount, c.CreatedAt.Format("2006-01-02 15:04"), c.Summary)
		}
		tw.Flush()
		fmt.Fprintf(cmd.OutOrStdout(), "%d of %d contexts\n", len(res.Contexts), res.Total)
		return nil
	},
}

func init() {
	listCmd.Flags().StringVar(&listFlags.platform, "platform", "", "filter by platform")
	listCmd.Flags().IntVar(&listFlags.limit, "limit", 20, "page size")
	listCmd.Flags().IntVar(&listFlags.offset, "offset", 0, "page offset")
	rootCmd.AddCommand(listCmd)
}
