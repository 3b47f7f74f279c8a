package cli

import (
	"github.com/spf13/cobra"
)

func newDailyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "daily",
		Short: "Daily puzzle commands",
	}

	cmd.AddCommand(newDailyShowCmd())
	cmd.AddCommand(newDailyPlayCmd())

	return cmd
}

func newDailyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Show today's puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Daily

			if err := client.Get("/api/daily", &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newDailyPlayCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "play",
		Short: "Start or resume today's puzzle",
		RunE: func(cmd *cobra.Command, args []string) error {
			var result DailyGame

			if err := client.Post("/api/daily/game", nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
