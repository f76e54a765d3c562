package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skilldev"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skillmap"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var skillsCmd = &cobra.Command{
	Use:   "skills",
	Short: "Identify skills and record skill practice",
}

var skillsIdentifyCmd = &cobra.Command{
	Use:   "identify",
	Short: "Identify a student's skills and gaps in a subject",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := subjectFlag(cmd)
		content, err := readContent(cmd)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.student(cmd)
		if err != nil {
			return err
		}
		skills, err := e.svc.IdentifySkills(cmd.Context(), st, subject, content)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render(fmt.Sprintf("%s · %s", st.Name, subject)))
		fmt.Fprintln(out, theme.KV("Level", st.TierIn(subject).DisplayName()))
		fmt.Fprintln(out)
		printSkills(out, skills)
		return nil
	},
}

var skillsProgressCmd = &cobra.Command{
	Use:     "progress <skill-id>",
	Short:   "Record scored exercises for a skill",
	Example: "  educoach skills progress math_algebra -s alice --result ex1:80 --result ex2:90",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		raw, _ := cmd.Flags().GetStringArray("result")
		results, err := parseResults(raw)
		if err != nil {
			return err
		}

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.student(cmd)
		if err != nil {
			return err
		}
		rec, err := e.svc.TrackSkillProgress(cmd.Context(), st, args[0], results)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.OK.Render("Recorded "+rec.ID))
		fmt.Fprintln(out, theme.KV("Exercises", rec.ExerciseCount))
		fmt.Fprintln(out, theme.KV("Average score", fmt.Sprintf("%.1f%%", rec.AverageScore)))
		fmt.Fprintln(out, theme.KV("Progress level", theme.Bar(rec.ProgressLevel, 20)))
		return nil
	},
}

// parseResults reads "id:score" pairs. Scores are percentages.
func parseResults(raw []string) ([]skilldev.ExerciseResult, error) {
	out := make([]skilldev.ExerciseResult, 0, len(raw))
	for _, r := range raw {
		id, score, ok := strings.Cut(r, ":")
		if !ok || id == "" {
			return nil, fmt.Errorf("invalid result %q: want id:score", r)
		}
		v, err := strconv.ParseFloat(score, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid score in %q: %w", r, err)
		}
		out = append(out, skilldev.ExerciseResult{ID: id, Score: v})
	}
	return out, nil
}

func printSkills(out io.Writer, skills []skillmap.Skill) {
	if len(skills) == 0 {
		fmt.Fprintln(out, theme.Hint.Render("No skills identified."))
		return
	}

	fmt.Fprintf(out, "%-32s  %-24s  %-16s  %-12s  %s\n", "ID", "Name", "Category", "Level", "Gap")
	fmt.Fprintln(out, strings.Repeat("\u2500", 100))
	for _, sk := range skills {
		fmt.Fprintf(out, "%-32s  %-24s  %-16s  %-12s  %s\n",
			truncate(sk.ID, 32),
			truncate(sk.Name, 24),
			truncate(sk.Category, 16),
			sk.Level.DisplayName(),
			theme.GapStyle(sk.GapLevel).Render(fmt.Sprintf("%.2f", sk.GapLevel)))
	}
	fmt.Fprintf(out, "\n%d skills\n", len(skills))
}

func init() {
	for _, c := range []*cobra.Command{skillsIdentifyCmd, skillsProgressCmd} {
		addStudentFlag(c)
	}
	skillsIdentifyCmd.Flags().String("subject", "", "Subject, e.g. math")
	addContentFlags(skillsIdentifyCmd)
	_ = skillsIdentifyCmd.MarkFlagRequired("subject")

	skillsProgressCmd.Flags().StringArrayP("result", "r", nil, "Scored exercise as id:score (repeatable)")

	skillsCmd.AddCommand(skillsIdentifyCmd)
	skillsCmd.AddCommand(skillsProgressCmd)
}
