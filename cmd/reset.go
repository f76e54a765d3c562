package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var resetCmd = &cobra.Command{
	Use:   "reset <student-id>",
	Short: "Reset learner data",
	Long:  "Delete a student's profile, assessments, learning history and progress records.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		if yes, _ := cmd.Flags().GetBool("yes"); !yes {
			return fmt.Errorf("refusing to delete data for %q without --yes", args[0])
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		if err := e.svc.ResetStudent(cmd.Context(), args[0]); err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), theme.OK.Render("Removed all data for "+args[0]))
		return nil
	},
}

func init() {
	resetCmd.Flags().BoolP("yes", "y", false, "Confirm the deletion")
}
