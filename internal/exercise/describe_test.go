package exercise

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/llm"
)

func TestTemplateDescriber_TierSentences(t *testing.T) {
	d := NewSeededDescriber(1)
	ctx := context.Background()

	tests := []struct {
		level learner.Tier
		want  string
	}{
		{learner.TierBeginner, "Practice basic Fractions concepts with these introductory exercises."},
		{learner.TierIntermediate, "Strengthen your Fractions skills with these practice problems."},
		{learner.TierAdvanced, "Challenge yourself with these advanced Fractions problems to master the skill."},
	}
	for _, tt := range tests {
		got, err := d.Describe(ctx, DescribeInput{Subject: "math", SkillName: "Fractions", Level: tt.level})
		require.NoError(t, err)
		assert.Equal(t, tt.want, got)
	}
}

func TestTemplateDescriber_UsesTemplates(t *testing.T) {
	d := NewSeededDescriber(7)
	templates := []string{
		"Work through {skill_name} problems in {subject}.",
		"Build {skill_name} sentences for {subject} class.",
	}
	allowed := map[string]bool{
		"Work through addition problems in math.":  true,
		"Build addition sentences for math class.": true,
	}

	for i := 0; i < 20; i++ {
		got, err := d.Describe(context.Background(), DescribeInput{
			Subject:   "math",
			SkillName: "addition",
			Level:     learner.TierBeginner,
			Templates: templates,
		})
		require.NoError(t, err)
		if !allowed[got] {
			t.Fatalf("description %q is not a filled template", got)
		}
	}
}

func TestTemplateDescriber_SeedIsDeterministic(t *testing.T) {
	in := DescribeInput{
		SkillName: "x",
		Templates: []string{"a", "b", "c", "d", "e"},
	}
	a, b := NewSeededDescriber(42), NewSeededDescriber(42)
	for i := 0; i < 10; i++ {
		ga, _ := a.Describe(context.Background(), in)
		gb, _ := b.Describe(context.Background(), in)
		if ga != gb {
			t.Fatalf("same seed diverged at %d: %q vs %q", i, ga, gb)
		}
	}
}

func TestTemplateDescriber_AttemptsAndContent(t *testing.T) {
	d := NewSeededDescriber(1)
	ctx := context.Background()
	in := DescribeInput{Subject: "math", SkillName: "Decimals", Level: learner.TierBeginner}

	in.Attempts = 1
	got, _ := d.Describe(ctx, in)
	assert.Contains(t, got, " You've worked on this skill 1 times before.")
	assert.NotContains(t, got, "challenge you")

	in.Attempts = 3
	got, _ = d.Describe(ctx, in)
	assert.Contains(t, got, " This exercise will challenge you with more advanced concepts.")

	in.Attempts = 0
	in.Content = "short text"
	got, _ = d.Describe(ctx, in)
	assert.True(t, strings.HasSuffix(got, " This exercise relates to the content: 'short text'"), got)
}

func TestSnippet(t *testing.T) {
	exact := strings.Repeat("a", SnippetLimit)
	if got := Snippet(exact); got != exact {
		t.Errorf("Snippet(100 chars) truncated")
	}
	long := strings.Repeat("é", SnippetLimit+5)
	got := Snippet(long)
	if want := strings.Repeat("é", SnippetLimit) + "..."; got != want {
		t.Errorf("Snippet(long) = %q", got)
	}
}

func TestLLMDescriber_UsesProviderText(t *testing.T) {
	mock := llm.NewMockProvider(llm.MockResponse{
		Content: []byte(`{"description": "Add pairs of numbers using a number line."}`),
	})
	d := NewLLMDescriber(mock, NewSeededDescriber(1), DefaultLLMDescriberConfig(), nil)

	got, err := d.Describe(context.Background(), DescribeInput{
		Subject:   "math",
		SkillName: "addition",
		Level:     learner.TierBeginner,
		Templates: []string{"Practice {skill_name} in {subject}."},
		Attempts:  1,
	})
	require.NoError(t, err)
	assert.Equal(t, "Add pairs of numbers using a number line. You've worked on this skill 1 times before.", got)

	require.Equal(t, 1, mock.CallCount())
	req := mock.Calls[0]
	assert.Equal(t, DescriptionSchema, req.Schema)
	assert.Contains(t, req.Messages[0].Content, "Skill: addition")
	assert.Contains(t, req.Messages[0].Content, "Practice addition in math.")
}

func TestLLMDescriber_FallsBack(t *testing.T) {
	tests := []struct {
		name string
		resp llm.MockResponse
	}{
		{"provider error", llm.MockResponse{Err: &llm.ErrRateLimit{Err: errors.New("slow down")}}},
		{"bad json", llm.MockResponse{Content: []byte(`not json`)}},
		{"empty description", llm.MockResponse{Content: []byte(`{"description": "  "}`)}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock := llm.NewMockProvider(tt.resp)
			d := NewLLMDescriber(mock, NewSeededDescriber(1), DefaultLLMDescriberConfig(), nil)

			got, err := d.Describe(context.Background(), DescribeInput{
				Subject:   "math",
				SkillName: "Fractions",
				Level:     learner.TierIntermediate,
			})
			require.NoError(t, err)
			assert.Equal(t, "Strengthen your Fractions skills with these practice problems.", got)
		})
	}
}
