package exercise

import (
	"context"
	"fmt"
	"math/rand/v2"
	"strings"
	"sync"
	"time"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// SnippetLimit is the number of content characters quoted in a description.
const SnippetLimit = 100

// DescribeInput is what a Describer knows about the exercise.
type DescribeInput struct {
	Subject   string
	SkillName string
	Level     learner.Tier
	Templates []string // taxonomy exercise templates, may be empty
	Attempts  int      // prior attempts on the skill
	Content   string   // optional free text the learner is working with
}

// Describer writes the learner-facing description of an exercise.
type Describer interface {
	Describe(ctx context.Context, in DescribeInput) (string, error)
}

// TemplateDescriber builds descriptions from tier sentences and taxonomy
// templates. It is safe for concurrent use.
type TemplateDescriber struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewTemplateDescriber creates a describer that picks templates with rng.
// A nil rng is seeded from the clock.
func NewTemplateDescriber(rng *rand.Rand) *TemplateDescriber {
	if rng == nil {
		seed := uint64(time.Now().UnixNano())
		rng = rand.New(rand.NewPCG(seed, seed>>1))
	}
	return &TemplateDescriber{rng: rng}
}

// NewSeededDescriber creates a describer with a deterministic template choice.
func NewSeededDescriber(seed uint64) *TemplateDescriber {
	return NewTemplateDescriber(rand.New(rand.NewPCG(seed, seed)))
}

// Describe implements Describer.
func (d *TemplateDescriber) Describe(_ context.Context, in DescribeInput) (string, error) {
	base := tierSentence(in.Level, in.SkillName)
	if len(in.Templates) > 0 {
		d.mu.Lock()
		tmpl := in.Templates[d.rng.IntN(len(in.Templates))]
		d.mu.Unlock()
		base = fillTemplate(tmpl, in.SkillName, in.Subject)
	}
	return decorate(base, in), nil
}

func tierSentence(level learner.Tier, skill string) string {
	switch level {
	case learner.TierBeginner:
		return fmt.Sprintf("Practice basic %s concepts with these introductory exercises.", skill)
	case learner.TierIntermediate:
		return fmt.Sprintf("Strengthen your %s skills with these practice problems.", skill)
	default:
		return fmt.Sprintf("Challenge yourself with these advanced %s problems to master the skill.", skill)
	}
}

func fillTemplate(tmpl, skill, subject string) string {
	return strings.NewReplacer("{skill_name}", skill, "{subject}", subject).Replace(tmpl)
}

// decorate appends the attempt history and content quotation to base.
func decorate(base string, in DescribeInput) string {
	var b strings.Builder
	b.WriteString(base)
	if in.Attempts > 0 {
		fmt.Fprintf(&b, " You've worked on this skill %d times before.", in.Attempts)
		if in.Attempts > 2 {
			b.WriteString(" This exercise will challenge you with more advanced concepts.")
		}
	}
	if in.Content != "" {
		fmt.Fprintf(&b, " This exercise relates to the content: '%s'", Snippet(in.Content))
	}
	return b.String()
}

// Snippet returns the first SnippetLimit characters of content, followed by
// "..." when content was longer.
func Snippet(content string) string {
	runes := []rune(content)
	if len(runes) <= SnippetLimit {
		return content
	}
	return string(runes[:SnippetLimit]) + "..."
}
