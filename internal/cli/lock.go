package cli

import (
	"github.com/spf13/cobra"
)

func newLockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "lock",
		Short: "Lock scoring (dictator only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := api.SetLock(cmd.Context(), true)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*state)
			return nil
		},
	}
}

func newUnlockCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unlock",
		Short: "Unlock scoring (dictator only)",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := api.SetLock(cmd.Context(), false)
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*state)
			return nil
		},
	}
}

func newStateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "state",
		Short: "Show the scoring lock state",
		RunE: func(cmd *cobra.Command, args []string) error {
			state, err := api.State(cmd.Context())
			if err != nil {
				return err
			}

			out := NewOutput(cfg.Output)
			out.Print(*state)
			return nil
		},
	}
}
