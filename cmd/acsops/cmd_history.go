package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

// newCmdHistory lists recorded deploy attempts from the history store.
func newCmdHistory() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "history",
		Short: "List recorded deployments",
		RunE: func(cmd *cobra.Command, args []string) error {
			repos, err := buildRepos(cmd)
			if err != nil {
				return err
			}
			items, err := repos.Deployment.List(cmd.Context())
			if err != nil {
				return err
			}
			if limit > 0 && len(items) > limit {
				items = items[len(items)-limit:]
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 8, 2, ' ', 0)
			fmt.Fprintln(w, "STARTED\tCLUSTER\tAPP\tIMAGE\tOUTCOME\tERROR")
			for _, d := range items {
				outcome := string(d.Outcome)
				if outcome == "" {
					outcome = "error"
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n",
					d.StartedAt.Format("2006-01-02 15:04:05"),
					d.ClusterName, d.AppID, d.Image, outcome, d.Error)
			}
			return w.Flush()
		},
	}

	cmd.Flags().IntVarP(&limit, "limit", "n", 0, "Show only the last N records")
	return cmd
}
