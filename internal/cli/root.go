package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfg    *Config
	client *Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "majnu",
		Short: "CLI tool for the Majnu word game API",
		Long: `majnu is a CLI tool for playing the Majnu word game from the terminal.

It supports starting and playing games, the daily puzzle, leaderboards,
handle claiming, and share links. Identity is cookie-based: the server
mints an ID on first contact and the CLI persists it locally.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load persisted identity if not provided via flag/env
			if err := cfg.LoadUserID(); err != nil {
				return err
			}

			client = NewClient(cfg.ServerURL, cfg.UserID, func(userID string) {
				if err := cfg.SaveUserID(userID); err != nil {
					fmt.Fprintf(os.Stderr, "warning: failed to save identity: %v\n", err)
				}
			})
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: MAJNU_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.UserID, "user-id", cfg.UserID, "User ID (env: MAJNU_USER_ID)")
	rootCmd.PersistentFlags().StringVar(&cfg.UserIDFile, "user-id-file", cfg.UserIDFile, "Identity file path (env: MAJNU_USER_ID_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")
	rootCmd.PersistentFlags().BoolVarP(&cfg.Verbose, "verbose", "v", cfg.Verbose, "Verbose output")

	// Add subcommands
	rootCmd.AddCommand(newGameCmd())
	rootCmd.AddCommand(newDailyCmd())
	rootCmd.AddCommand(newLeaderboardCmd())
	rootCmd.AddCommand(newMeCmd())
	rootCmd.AddCommand(newHandleCmd())
	rootCmd.AddCommand(newShareCmd())
	rootCmd.AddCommand(newStatusCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
