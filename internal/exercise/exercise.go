// Package exercise models recommended practice exercises: their difficulty,
// format, time estimate, learning resources and description.
package exercise

import (
	"strings"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// Exercise is one recommended practice activity for a skill.
type Exercise struct {
	Ref              Ref
	SkillID          string
	SkillName        string
	Description      string
	Difficulty       float64
	Subject          string
	Category         string
	Type             Type
	EstimatedMinutes int
	Resources        []Resource
}

// ID returns the string form of the exercise ref.
func (e *Exercise) ID() string {
	return e.Ref.String()
}

// ResourceKind classifies a learning resource.
type ResourceKind string

const (
	ResourceArticle  ResourceKind = "article"
	ResourceVideo    ResourceKind = "video"
	ResourcePractice ResourceKind = "practice"
)

// Resource is a learning resource stub attached to an exercise.
type Resource struct {
	Title      string
	Kind       ResourceKind
	Difficulty learner.Tier
	URL        string
}

const resourceHost = "https://example.com"

// Resources returns the resource stubs for a skill: a tutorial, a video
// lesson for intermediate and advanced tiers, and practice problems.
func Resources(subject, skillName string, tier learner.Tier) []Resource {
	slug := strings.ReplaceAll(strings.ToLower(skillName), " ", "-")
	out := []Resource{{
		Title:      skillName + " Tutorial",
		Kind:       ResourceArticle,
		Difficulty: tier,
		URL:        resourceHost + "/" + subject + "/" + slug,
	}}
	if tier == learner.TierIntermediate || tier == learner.TierAdvanced {
		out = append(out, Resource{
			Title:      skillName + " Video Lesson",
			Kind:       ResourceVideo,
			Difficulty: tier,
			URL:        resourceHost + "/videos/" + subject + "/" + slug,
		})
	}
	out = append(out, Resource{
		Title:      skillName + " Practice Problems",
		Kind:       ResourcePractice,
		Difficulty: tier,
		URL:        resourceHost + "/practice/" + subject + "/" + slug,
	})
	return out
}
