package cli

import (
	"net/url"

	"github.com/spf13/cobra"
)

func newHandleCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "handle",
		Short: "Handle commands",
	}

	cmd.AddCommand(newHandleCheckCmd())
	cmd.AddCommand(newHandleClaimCmd())

	return cmd
}

func newHandleCheckCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "check <name>",
		Short: "Check whether a handle is available",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result HandleAvailability

			if err := client.Get("/api/handle?handle="+url.QueryEscape(args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newHandleClaimCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "claim <name>",
		Short: "Claim a handle (permanent once set)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"handle": args[0]}
			var result Handle

			if err := client.Post("/api/handle", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
