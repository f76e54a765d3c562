package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/exercise"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skilldev"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var exercisesCmd = &cobra.Command{
	Use:   "exercises",
	Short: "Recommend and complete practice exercises",
}

var exercisesRecommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend exercises for a student's largest skill gaps",
	RunE: func(cmd *cobra.Command, args []string) error {
		subject := subjectFlag(cmd)
		count, _ := cmd.Flags().GetInt("count")
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
		exercises, err := e.svc.RecommendExercises(cmd.Context(), st, subject, content, count)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		if len(exercises) == 0 {
			fmt.Fprintln(out, "No exercises to recommend.")
			return nil
		}
		for i, ex := range exercises {
			if i > 0 {
				fmt.Fprintln(out)
			}
			printExercise(cmd, i+1, ex)
		}
		return nil
	},
}

var exercisesCompleteCmd = &cobra.Command{
	Use:   "complete <exercise-id>",
	Short: "Record a completed exercise",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ref, err := exercise.ParseRef(args[0])
		if err != nil {
			return err
		}
		completion, _ := cmd.Flags().GetFloat64("completion")
		feedback, _ := cmd.Flags().GetString("feedback")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.student(cmd)
		if err != nil {
			return err
		}
		res, err := e.svc.TrackProgress(cmd.Context(), st, ref, completion, feedback)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.OK.Render(fmt.Sprintf("Completed %s (%s)", res.SkillName, res.Subject)))
		fmt.Fprintln(out, theme.KV("Completion", theme.Bar(res.Completion, 20)))
		fmt.Fprintf(out, "%s %.2f → %.2f\n", theme.Label.Render("Progress:"), res.PreviousProgress, res.NewProgress)
		fmt.Fprintln(out, theme.KV("Record", res.ProgressID))
		return nil
	},
}

func printExercise(cmd *cobra.Command, n int, ex exercise.Exercise) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Heading.Render(fmt.Sprintf("%d. %s", n, ex.SkillName)))
	fmt.Fprintln(out, theme.KV("ID", ex.ID()))
	fmt.Fprintln(out, theme.KV("Type", strings.ReplaceAll(string(ex.Type), "_", " ")))
	fmt.Fprintln(out, theme.KV("Difficulty", fmt.Sprintf("%.2f", ex.Difficulty)))
	fmt.Fprintln(out, theme.KV("Estimated", fmt.Sprintf("%d min", ex.EstimatedMinutes)))
	fmt.Fprintln(out, theme.Card.Render(ex.Description))
	for _, r := range ex.Resources {
		fmt.Fprintf(out, "  %s %s %s\n", theme.Label.Render("["+string(r.Kind)+"]"), r.Title, theme.Hint.Render(r.URL))
	}
}

func init() {
	for _, c := range []*cobra.Command{exercisesRecommendCmd, exercisesCompleteCmd} {
		addStudentFlag(c)
	}

	exercisesRecommendCmd.Flags().String("subject", "", "Subject, e.g. math")
	exercisesRecommendCmd.Flags().IntP("count", "n", skilldev.DefaultExerciseCount, "Number of exercises")
	addContentFlags(exercisesRecommendCmd)
	_ = exercisesRecommendCmd.MarkFlagRequired("subject")

	exercisesCompleteCmd.Flags().Float64("completion", 1, "Completion rate between 0 and 1")
	exercisesCompleteCmd.Flags().String("feedback", "", "Optional feedback note")

	exercisesCmd.AddCommand(exercisesRecommendCmd)
	exercisesCmd.AddCommand(exercisesCompleteCmd)
}
