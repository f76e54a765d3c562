package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Inspect learning history",
}

var historyShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show per-skill learning history and recent completions",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := subjectFlag(cmd)
		limit, _ := cmd.Flags().GetInt("limit")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.student(cmd)
		if err != nil {
			return err
		}
		ctx := cmd.Context()
		out := cmd.OutOrStdout()

		entries, err := e.svc.History(ctx, st.ID, subject)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Learning history · %s · %s", st.Name, subject)))
		if len(entries) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("No attempts recorded."))
		} else {
			fmt.Fprintf(out, "%-32s  %8s  %-26s  %s\n", "Skill", "Attempts", "Average", "Last attempt")
			fmt.Fprintln(out, strings.Repeat("\u2500", 90))
			for _, h := range entries {
				fmt.Fprintf(out, "%-32s  %8d  %s  %s\n",
					truncate(h.SkillID, 32), h.Attempts, theme.Bar(h.AverageCompletion, 20),
					h.LastAttempt.Local().Format("2006-01-02 15:04"))
				for _, f := range h.Feedback {
					fmt.Fprintf(out, "    %s %s\n",
						theme.Label.Render(f.Timestamp.Local().Format("2006-01-02")), f.Content)
				}
			}
		}

		records, err := e.svc.ProgressRecords(ctx, st.ID, limit)
		if err != nil {
			return err
		}
		if len(records) == 0 {
			return nil
		}
		fmt.Fprintln(out)
		fmt.Fprintln(out, theme.Heading.Render("Completed exercises"))
		for _, r := range records {
			if subject != "" && !strings.EqualFold(r.Subject, subject) {
				continue
			}
			fmt.Fprintf(out, "  %-19s  %-40s  %3.0f%%  %s\n",
				r.Timestamp.Local().Format("2006-01-02 15:04:05"),
				truncate(r.ExerciseID, 40), r.Completion*100, r.Feedback)
		}
		return nil
	},
}

func init() {
	addStudentFlag(historyShowCmd)
	historyShowCmd.Flags().String("subject", "", "Subject, e.g. math")
	historyShowCmd.Flags().IntP("limit", "n", 20, "Number of completed exercises to show")
	_ = historyShowCmd.MarkFlagRequired("subject")

	historyCmd.AddCommand(historyShowCmd)
}
