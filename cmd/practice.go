package cmd

import (
	"github.com/spf13/cobra"
)

var practiceCmd = &cobra.Command{
	Use:   "practice",
	Short: "Start a practice session",
	RunE: func(cmd *cobra.Command, args []string) error {
		lesson, _ := cmd.Flags().GetString("lesson")
		return runApp(cmd, lesson)
	},
}

func init() {
	practiceCmd.Flags().String("lesson", "", "Practice a single lesson by ID")
}
