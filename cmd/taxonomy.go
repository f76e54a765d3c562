package cmd

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var taxonomyCmd = &cobra.Command{
	Use:   "taxonomy",
	Short: "Browse the skill taxonomies",
}

var taxonomyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List loaded subjects",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		subjects := e.tax.Subjects()
		if len(subjects) == 0 {
			fmt.Fprintln(out, "No taxonomies loaded.")
			return nil
		}

		fmt.Fprintf(out, "%-16s  %10s  %6s\n", "Subject", "Categories", "Skills")
		fmt.Fprintln(out, strings.Repeat("\u2500", 36))
		for _, name := range subjects {
			subj := e.tax.Get(name)
			fmt.Fprintf(out, "%-16s  %10d  %6d\n", name, len(subj.Categories), subj.SkillCount())
		}
		fmt.Fprintf(out, "\n%s %s\n", theme.Label.Render("Directory:"), e.tax.Dir())
		return nil
	},
}

var taxonomyShowCmd = &cobra.Command{
	Use:   "show <subject>",
	Short: "Show the skills of a subject",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		asJSON, _ := cmd.Flags().GetBool("json")

		e, err := openEnv(cmd)
		if err != nil {
			return err
		}
		defer e.Close()

		out := cmd.OutOrStdout()
		subj := e.tax.Get(args[0])
		if subj.IsEmpty() {
			return fmt.Errorf("no taxonomy for subject %q", args[0])
		}

		if asJSON {
			data, err := json.MarshalIndent(subj, "", "  ")
			if err != nil {
				return fmt.Errorf("encode taxonomy: %w", err)
			}
			fmt.Fprintln(out, string(data))
			return nil
		}

		fmt.Fprintln(out, theme.Title.Render(subj.Name))
		for _, cat := range subj.Categories {
			fmt.Fprintln(out)
			fmt.Fprintln(out, theme.Heading.Render(cat.Name))
			for _, sk := range cat.Skills {
				level := "any"
				if sk.Level != "" {
					level = sk.Level.DisplayName()
				}
				fmt.Fprintf(out, "  %-24s  %-12s  %s\n", truncate(sk.Name, 24), level, sk.Description)
				if len(sk.Keywords) > 0 {
					fmt.Fprintf(out, "  %-24s  %s\n", "", theme.Hint.Render("keywords: "+strings.Join(sk.Keywords, ", ")))
				}
			}
		}
		return nil
	},
}

func init() {
	taxonomyShowCmd.Flags().Bool("json", false, "Print the taxonomy document as JSON")

	taxonomyCmd.AddCommand(taxonomyListCmd)
	taxonomyCmd.AddCommand(taxonomyShowCmd)
}
