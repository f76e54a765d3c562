package cmd

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/exercise"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/llm"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/logging"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skillmap"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/taxonomy"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/ui/theme"
)

var previewCmd = &cobra.Command{
	Use:   "preview",
	Short: "Preview exercise descriptions for a taxonomy skill (no database)",
	Long: `Write several exercise descriptions for one taxonomy skill.

This is a stateless developer tool: no database, no assessments, no events.
Useful for evaluating taxonomy templates and LLM description quality.`,
	RunE: runPreview,
}

func init() {
	previewCmd.Flags().String("subject", "", "Subject, e.g. math (required)")
	previewCmd.Flags().String("skill", "", "Skill name or ID (required)")
	previewCmd.Flags().String("level", "", "Level: beginner, intermediate or advanced (default: the skill's level)")
	previewCmd.Flags().IntP("count", "n", 3, "Number of descriptions to write")
	previewCmd.Flags().Bool("templates-only", false, "Skip the LLM provider even when one is configured")
	_ = previewCmd.MarkFlagRequired("subject")
	_ = previewCmd.MarkFlagRequired("skill")
}

func runPreview(cmd *cobra.Command, args []string) error {
	subject := subjectFlag(cmd)
	skillVal, _ := cmd.Flags().GetString("skill")
	levelVal, _ := cmd.Flags().GetString("level")
	count, _ := cmd.Flags().GetInt("count")
	templatesOnly, _ := cmd.Flags().GetBool("templates-only")
	ctx := cmd.Context()

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := logging.New(cfg.Log)
	if err != nil {
		return fmt.Errorf("init logging: %w", err)
	}
	defer closeLog()

	tax := taxonomy.NewStore(cfg.TaxonomyDir, logger)
	if err := tax.Load(ctx); err != nil {
		return fmt.Errorf("load taxonomy: %w", err)
	}
	entry, err := resolveSkill(tax.Get(subject), skillVal)
	if err != nil {
		return err
	}

	level := entry.Level
	if levelVal != "" {
		var ok bool
		if level, ok = learner.ParseTier(strings.ToLower(levelVal)); !ok {
			return fmt.Errorf("invalid level %q: must be beginner, intermediate or advanced", levelVal)
		}
	}
	if level == "" {
		level = learner.TierBeginner
	}

	var describer exercise.Describer = exercise.NewTemplateDescriber(nil)
	source := "templates"
	if !templatesOnly {
		// No event repo: nothing is persisted.
		provider, err := llm.NewProvider(ctx, cfg.LLM, nil, logger)
		switch {
		case err == nil:
			describer = exercise.NewLLMDescriber(provider, describer, exercise.DefaultLLMDescriberConfig(), logger)
			source = provider.ModelID()
		case !errors.Is(err, llm.ErrDisabled):
			return fmt.Errorf("LLM provider: %w", err)
		}
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Skill: %s · %s (%s, %s)\n",
		skillmap.SkillID(subject, entry.Name), entry.Name, entry.Category, level.DisplayName())
	fmt.Fprintf(out, "Writing %d descriptions with %s...\n\n", count, source)

	for i := 1; i <= count; i++ {
		desc, err := describer.Describe(ctx, exercise.DescribeInput{
			Subject:   subject,
			SkillName: entry.Name,
			Level:     level,
			Templates: entry.ExerciseTemplates,
		})
		if err != nil {
			fmt.Fprintf(out, "Description %d: failed: %v\n\n", i, err)
			continue
		}
		fmt.Fprintln(out, theme.Heading.Render(fmt.Sprintf("── Description %d/%d ──", i, count)))
		fmt.Fprintln(out, desc)
		fmt.Fprintln(out)
	}
	return nil
}

// resolveSkill finds a skill by name first, then by derived skill ID.
func resolveSkill(subj *taxonomy.Subject, val string) (*taxonomy.Entry, error) {
	if e, ok := subj.Find(val); ok {
		return e, nil
	}

	var matches []taxonomy.Entry
	for _, e := range subj.Entries() {
		if skillmap.SkillID(subj.Name, e.Name) == val || strings.EqualFold(e.Name, val) {
			matches = append(matches, e)
		}
	}

	switch len(matches) {
	case 0:
		return nil, fmt.Errorf("no skill found for %q in %s", val, subj.Name)
	case 1:
		return &matches[0], nil
	default:
		var cats []string
		for _, e := range matches {
			cats = append(cats, e.Category)
		}
		return nil, fmt.Errorf("multiple skills match %q in categories %s",
			val, strings.Join(cats, ", "))
	}
}
