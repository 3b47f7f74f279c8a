package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newGameCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "game",
		Short: "Game commands",
	}

	cmd.AddCommand(newGameStartCmd())
	cmd.AddCommand(newGameGetCmd())
	cmd.AddCommand(newGameGuessCmd())
	cmd.AddCommand(newGameGiveUpCmd())

	return cmd
}

func newGameStartCmd() *cobra.Command {
	var word string

	cmd := &cobra.Command{
		Use:   "start <domain>",
		Short: "Start a new game in a domain",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"domain": args[0]}
			if word != "" {
				req["word"] = word
			}

			var result Game

			if err := client.Post("/api/games", req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}

	cmd.Flags().StringVar(&word, "word", "", "Pin the answer (ignored unless it is in the domain's pool)")

	return cmd
}

func newGameGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Get current game state",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result Game

			if err := client.Get(fmt.Sprintf("/api/games/%s", args[0]), &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGuessCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "guess <id> <letter>",
		Short: "Guess a letter",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			req := map[string]string{"letter": args[1]}
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/games/%s/guess", args[0]), req, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}

func newGameGiveUpCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "give-up <id>",
		Short: "Give up the game, counting it as a loss",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var result GuessResult

			if err := client.Post(fmt.Sprintf("/api/games/%s/give-up", args[0]), nil, &result); err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(result)
			return nil
		},
	}
}
