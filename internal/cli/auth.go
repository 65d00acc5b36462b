package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jcruden/live-leaderboard/internal/services/passcode"
)

func newLoginCmd() *cobra.Command {
	var pass string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with an admin or dictator passcode",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pass == "" {
				return fmt.Errorf("--passcode is required")
			}

			role, err := api.Login(cmd.Context(), pass)
			if err != nil {
				return err
			}

			// Save token
			if err := cfg.SaveToken(api.Token()); err != nil {
				return fmt.Errorf("failed to save token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage(fmt.Sprintf("Logged in as %s", role))
			return nil
		},
	}

	cmd.Flags().StringVar(&pass, "passcode", "", "Passcode (required)")
	_ = cmd.MarkFlagRequired("passcode")

	return cmd
}

func newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "End the current session",
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := api.Logout(cmd.Context()); err != nil {
				return err
			}

			if err := cfg.ClearToken(); err != nil {
				return fmt.Errorf("failed to clear token: %w", err)
			}

			out := NewOutput(cfg.Output)
			out.PrintMessage("Logged out")
			return nil
		},
	}
}

func newHashPasscodeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "hash-passcode <passcode>",
		Short: "Derive a stored passcode record for server configuration",
		Long: `Derive the scrypt record for a passcode, suitable for the server's
ADMIN_PASSCODE_HASH and DICTATOR_PASSCODE_HASH environment variables.

Runs entirely locally; the passcode is never sent anywhere.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			record, err := passcode.Hash(args[0])
			if err != nil {
				return err
			}

			fmt.Println(record)
			return nil
		},
	}
}
