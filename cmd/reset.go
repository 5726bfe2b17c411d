package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset learner progress",
	Long: `Delete every mastery record for the current user. Imported vocabulary
and the event history are kept.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		yes, _ := cmd.Flags().GetBool("yes")
		if !yes {
			return fmt.Errorf("this deletes all progress for user %q; rerun with --yes to confirm", cfg.UserID)
		}

		st, err := openStore()
		if err != nil {
			return err
		}
		defer st.Close()

		n, err := st.ProgressRepo().Reset(cmd.Context(), cfg.UserID)
		if err != nil {
			return fmt.Errorf("reset progress: %w", err)
		}
		logger.Info("progress reset", "user", cfg.UserID, "records", n)
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %d mastery records for %s.\n", n, cfg.UserID)
		return nil
	},
}

func init() {
	resetCmd.Flags().Bool("yes", false, "Confirm the reset")
}
