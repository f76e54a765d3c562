package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Build a skill development plan",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := subjectFlag(cmd)

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.student(cmd)
		if err != nil {
			return err
		}
		p, err := e.svc.GeneratePlan(cmd.Context(), st, subject)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("Development plan · %s · %s", st.Name, subject)))
		fmt.Fprintln(out, theme.KV("Created", p.CreatedAt.Local().Format("2006-01-02 15:04")))
		fmt.Fprintln(out, theme.KV("Current level", theme.Bar(p.CurrentLevel, 20)))
		fmt.Fprintln(out, theme.KV("Target level", theme.Bar(p.TargetLevel, 20)+" "+p.TargetTier().DisplayName()))
		fmt.Fprintln(out, theme.KV("Duration", fmt.Sprintf("%d weeks", p.DurationWeeks)))

		if len(p.Timeline) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("\nNo skills to work on."))
			return nil
		}

		fmt.Fprintln(out)
		fmt.Fprintf(out, "%-6s  %-32s  %-24s  %s\n", "Week", "Skill ID", "Skill", "Target")
		fmt.Fprintln(out, strings.Repeat("\u2500", 80))
		for _, w := range p.Timeline {
			fmt.Fprintf(out, "%-6d  %-32s  %-24s  -%.1f gap\n",
				w.Week, truncate(w.SkillID, 32), truncate(w.SkillName, 24), w.TargetImprovement)
		}
		return nil
	},
}

func init() {
	addStudentFlag(planCmd)
	planCmd.Flags().String("subject", "", "Subject, e.g. math")
	_ = planCmd.MarkFlagRequired("subject")
}
