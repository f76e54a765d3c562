package exercise

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/llm"
)

// PurposeDescription labels exercise description requests in LLM events.
const PurposeDescription = "exercise-description"

// DescriptionSchema defines the JSON schema for LLM description responses.
var DescriptionSchema = &llm.Schema{
	Name:        "exercise-description",
	Description: "A short learner-facing description of a practice exercise",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"description": map[string]any{
				"type":        "string",
				"minLength":   1,
				"description": "One or two sentences telling the learner what to practice",
			},
		},
		"required":             []any{"description"},
		"additionalProperties": false,
	},
}

const describerSystemPrompt = `You are a tutor writing short practice exercise descriptions.

Rules:
- Write one or two encouraging sentences that tell the learner what they will practice.
- Pitch the wording to the learner's level: beginner, intermediate or advanced.
- Plain text only. No markdown, no lists, no quotation of the instructions.
- Do not mention scores, attempts or the source content; those are added separately.`

// LLMDescriberConfig tunes LLM description requests.
type LLMDescriberConfig struct {
	MaxTokens   int
	Temperature float64
}

// DefaultLLMDescriberConfig returns the default request settings.
func DefaultLLMDescriberConfig() LLMDescriberConfig {
	return LLMDescriberConfig{MaxTokens: 256, Temperature: 0.7}
}

// LLMDescriber asks an LLM for the base sentence and falls back to another
// Describer whenever the provider fails or returns nothing usable.
type LLMDescriber struct {
	provider llm.Provider
	fallback Describer
	config   LLMDescriberConfig
	logger   *zap.Logger
}

// NewLLMDescriber creates an LLM-backed describer.
func NewLLMDescriber(provider llm.Provider, fallback Describer, cfg LLMDescriberConfig, logger *zap.Logger) *LLMDescriber {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &LLMDescriber{provider: provider, fallback: fallback, config: cfg, logger: logger}
}

type descriptionOutput struct {
	Description string `json:"description"`
}

// Describe implements Describer.
func (d *LLMDescriber) Describe(ctx context.Context, in DescribeInput) (string, error) {
	base, err := d.generate(ctx, in)
	if err != nil {
		d.logger.Warn("LLM description failed, using template",
			zap.String("skill", in.SkillName), zap.Error(err))
		return d.fallback.Describe(ctx, in)
	}
	return decorate(base, in), nil
}

func (d *LLMDescriber) generate(ctx context.Context, in DescribeInput) (string, error) {
	ctx = llm.WithPurpose(ctx, PurposeDescription)

	req := llm.Request{
		System: describerSystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildDescribePrompt(in)},
		},
		Schema:      DescriptionSchema,
		MaxTokens:   d.config.MaxTokens,
		Temperature: d.config.Temperature,
	}

	resp, err := d.provider.Generate(ctx, req)
	if err != nil {
		return "", fmt.Errorf("LLM generation failed: %w", err)
	}

	var out descriptionOutput
	if err := json.Unmarshal(resp.Content, &out); err != nil {
		return "", fmt.Errorf("failed to parse LLM response: %w", err)
	}
	text := strings.TrimSpace(out.Description)
	if text == "" {
		return "", fmt.Errorf("empty description")
	}
	return text, nil
}

func buildDescribePrompt(in DescribeInput) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Subject: %s\n", in.Subject)
	fmt.Fprintf(&b, "Skill: %s\n", in.SkillName)
	fmt.Fprintf(&b, "Level: %s\n", in.Level)
	if len(in.Templates) > 0 {
		b.WriteString("\nExample descriptions:\n")
		for _, t := range in.Templates {
			fmt.Fprintf(&b, "- %s\n", fillTemplate(t, in.SkillName, in.Subject))
		}
	}
	return b.String()
}
