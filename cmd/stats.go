package cmd

import (
	"fmt"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show learning statistics",
	RunE: func(cmd *cobra.Command, args []string) error {
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

		assessments, err := e.svc.Assessments(ctx, st.ID, "")
		if err != nil {
			return err
		}
		records, err := e.svc.ProgressRecords(ctx, st.ID, 0)
		if err != nil {
			return err
		}
		stats := summarize(assessments, records)

		out := cmd.OutOrStdout()
		fmt.Fprintln(out, theme.Title.Render("Learning statistics · "+st.Name))
		if len(stats) == 0 {
			fmt.Fprintln(out, theme.Hint.Render("Nothing recorded yet."))
			return nil
		}

		fmt.Fprintf(out, "%-12s  %11s  %9s  %-26s  %s\n",
			"Subject", "Assessments", "Exercises", "Avg completion", "Progress")
		fmt.Fprintln(out, strings.Repeat("\u2500", 90))
		for _, s := range stats {
			fmt.Fprintf(out, "%-12s  %11d  %9d  %s  %s\n",
				s.subject, s.assessments, s.exercises,
				theme.Bar(s.avgCompletion(), 20), theme.Bar(st.ProgressIn(s.subject), 20))
		}
		return nil
	},
}

type subjectStats struct {
	subject     string
	assessments int
	exercises   int
	completion  float64
}

func (s subjectStats) avgCompletion() float64 {
	if s.exercises == 0 {
		return 0
	}
	return s.completion / float64(s.exercises)
}

// summarize groups assessments and completed exercises by subject.
func summarize(assessments []store.AssessmentRecord, records []store.ProgressRecord) []subjectStats {
	bySubject := make(map[string]*subjectStats)
	get := func(subject string) *subjectStats {
		s, ok := bySubject[subject]
		if !ok {
			s = &subjectStats{subject: subject}
			bySubject[subject] = s
		}
		return s
	}

	for _, a := range assessments {
		get(a.Subject).assessments++
	}
	for _, r := range records {
		s := get(r.Subject)
		s.exercises++
		s.completion += r.Completion
	}

	out := make([]subjectStats, 0, len(bySubject))
	for _, s := range bySubject {
		out = append(out, *s)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].subject < out[j].subject })
	return out
}

func init() {
	addStudentFlag(statsCmd)
}
