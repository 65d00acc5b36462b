// Package cli implements the scorectl command line tool.
package cli

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/jcruden/live-leaderboard/internal/client"
)

var (
	cfg *Config
	api *client.Client
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	cfg = DefaultConfig()

	rootCmd := &cobra.Command{
		Use:   "scorectl",
		Short: "CLI tool for the live leaderboard API",
		Long: `scorectl is a CLI tool for interacting with the leaderboard JSON API.

It supports the public leaderboard views, passcode login, score
adjustments, the dictator's scoring lock, and a live watch mode driven
by the server's event stream.`,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Load token from file if not provided via flag/env
			if err := cfg.LoadToken(); err != nil {
				return err
			}

			// Create HTTP client
			api = client.New(cfg.ServerURL, cfg.Token)
			return nil
		},
		SilenceUsage: true,
	}

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfg.ServerURL, "server", cfg.ServerURL, "Server URL (env: SCOREBOARD_SERVER)")
	rootCmd.PersistentFlags().StringVar(&cfg.Token, "token", cfg.Token, "Session token (env: SCOREBOARD_TOKEN)")
	rootCmd.PersistentFlags().StringVar(&cfg.TokenFile, "token-file", cfg.TokenFile, "Token file path (env: SCOREBOARD_TOKEN_FILE)")
	rootCmd.PersistentFlags().StringVarP(&cfg.Output, "output", "o", cfg.Output, "Output format: text, json")

	// Add subcommands
	rootCmd.AddCommand(newLoginCmd())
	rootCmd.AddCommand(newLogoutCmd())
	rootCmd.AddCommand(newPlayersCmd())
	rootCmd.AddCommand(newScoreCmd())
	rootCmd.AddCommand(newLockCmd())
	rootCmd.AddCommand(newUnlockCmd())
	rootCmd.AddCommand(newStateCmd())
	rootCmd.AddCommand(newWatchCmd())
	rootCmd.AddCommand(newHealthCmd())
	rootCmd.AddCommand(newHashPasscodeCmd())

	return rootCmd
}

// Execute runs the root command
func Execute() {
	if err := NewRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
