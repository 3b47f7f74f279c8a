package cli

import (
	"fmt"
	"net/url"

	"github.com/spf13/cobra"
)

func newLeaderboardCmd() *cobra.Command {
	var (
		scope  string
		limit  int
		cursor string
	)

	cmd := &cobra.Command{
		Use:   "leaderboard",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			query := url.Values{}
			query.Set("scope", scope)
			if limit > 0 {
				query.Set("limit", fmt.Sprintf("%d", limit))
			}
			if cursor != "" {
				query.Set("cursor", cursor)
			}

			var result Leaderboard

			if err := client.Get("/api/leaderboard?"+query.Encode(), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&scope, "scope", "daily", "Leaderboard scope: daily, weekly")
	cmd.Flags().IntVar(&limit, "limit", 0, "Page size")
	cmd.Flags().StringVar(&cursor, "cursor", "", "Pagination cursor from a previous page")

	return cmd
}
