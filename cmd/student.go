package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skilldev"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var studentCmd = &cobra.Command{
	Use:   "student",
	Short: "Create and inspect student profiles",
}

var studentSetCmd = &cobra.Command{
	Use:   "set <id>",
	Short: "Create or update a student profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		ctx := cmd.Context()
		st, err := e.svc.LoadStudent(ctx, args[0])
		switch {
		case errors.Is(err, skilldev.ErrNotFound):
			st = learner.NewStudent(args[0], args[0])
		case err != nil:
			return err
		}

		if cmd.Flags().Changed("name") {
			st.Name, _ = cmd.Flags().GetString("name")
		}
		if cmd.Flags().Changed("exercise-type") {
			st.Preferences.ExerciseType, _ = cmd.Flags().GetString("exercise-type")
		}
		progress, _ := cmd.Flags().GetStringToString("progress")
		for subject, raw := range progress {
			v, err := strconv.ParseFloat(raw, 64)
			if err != nil {
				return fmt.Errorf("invalid progress for %s: %w", subject, err)
			}
			st.SetProgress(subject, v)
		}

		if err := e.svc.SaveStudent(ctx, st); err != nil {
			return err
		}
		printStudent(cmd, st)
		return nil
	},
}

var studentShowCmd = &cobra.Command{
	Use:   "show <id>",
	Short: "Show a student profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		st, err := e.svc.LoadStudent(cmd.Context(), args[0])
		if err != nil {
			return err
		}
		printStudent(cmd, st)
		return nil
	},
}

var studentListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored students",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		students, err := e.svc.ListStudents(cmd.Context())
		if err != nil {
			return err
		}
		if len(students) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "No students yet.")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-20s  %-24s  %s\n", "ID", "Name", "Subjects")
		fmt.Fprintln(out, strings.Repeat("\u2500", 72))
		for _, st := range students {
			fmt.Fprintf(out, "%-20s  %-24s  %s\n",
				truncate(st.ID, 20), truncate(st.Name, 24), strings.Join(st.Subjects, ", "))
		}
		return nil
	},
}

func printStudent(cmd *cobra.Command, st *learner.Student) {
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, theme.Title.Render(st.Name))
	fmt.Fprintln(out, theme.KV("ID", st.ID))
	if st.Preferences.ExerciseType != "" {
		fmt.Fprintln(out, theme.KV("Preferred exercise", st.Preferences.ExerciseType))
	}

	subjects := append([]string(nil), st.Subjects...)
	for subject := range st.Progress {
		if !containsFold(subjects, subject) {
			subjects = append(subjects, subject)
		}
	}
	if len(subjects) == 0 {
		fmt.Fprintln(out, theme.Hint.Render("No subject progress recorded."))
		return
	}
	sort.Strings(subjects)

	fmt.Fprintln(out)
	fmt.Fprintln(out, theme.Heading.Render("Progress"))
	for _, subject := range subjects {
		p := st.ProgressIn(subject)
		fmt.Fprintf(out, "  %-12s %s  %s\n",
			subject, theme.Bar(p, 20), theme.Label.Render(learner.TierFor(p).DisplayName()))
	}
}

func containsFold(list []string, s string) bool {
	for _, v := range list {
		if strings.EqualFold(v, s) {
			return true
		}
	}
	return false
}

func init() {
	studentSetCmd.Flags().String("name", "", "Display name")
	studentSetCmd.Flags().String("exercise-type", "", "Preferred exercise type (e.g. matching, essay)")
	studentSetCmd.Flags().StringToString("progress", nil, "Subject progress, e.g. --progress math=0.4,science=0.75")

	studentCmd.AddCommand(studentSetCmd)
	studentCmd.AddCommand(studentShowCmd)
	studentCmd.AddCommand(studentListCmd)
}
