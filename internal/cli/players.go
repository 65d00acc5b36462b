package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newPlayersCmd() *cobra.Command {
	var limit int
	var addName string

	cmd := &cobra.Command{
		Use:   "players",
		Short: "Show the leaderboard",
		RunE: func(cmd *cobra.Command, args []string) error {
			players, err := api.Players(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(players)
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "Maximum players to fetch (0 for server default)")

	addCmd := &cobra.Command{
		Use:   "add",
		Short: "Register a new player (requires login)",
		RunE: func(cmd *cobra.Command, args []string) error {
			if addName == "" {
				return fmt.Errorf("--name is required")
			}

			player, err := api.CreatePlayer(cmd.Context(), addName)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*player)
			return nil
		},
	}
	addCmd.Flags().StringVar(&addName, "name", "", "Display name (required)")
	_ = addCmd.MarkFlagRequired("name")
	cmd.AddCommand(addCmd)

	return cmd
}

func newScoreCmd() *cobra.Command {
	var delta int

	cmd := &cobra.Command{
		Use:   "score <player-id>",
		Short: "Apply a score delta to a player (requires login)",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			player, err := api.Score(cmd.Context(), args[0], delta)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*player)
			return nil
		},
	}

	cmd.Flags().IntVar(&delta, "delta", 1, "Score delta: -1, 1 or 10")

	return cmd
}
