package skillmap

import (
	"sort"
	"strings"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// DefaultCategory is assigned to skills from the canned tier table.
const DefaultCategory = "general"

// Gap levels applied by content analysis.
const (
	// ObservedGapCeiling caps the gap of a base skill seen in the content.
	ObservedGapCeiling = 0.2
	// DiscoveredGap is the gap of a skill found only through the taxonomy.
	DiscoveredGap = 0.3
)

// Skill is a runtime skill estimate for one learner.
type Skill struct {
	ID       string
	Name     string
	Category string
	GapLevel float64 // 0.0 = mastered, 1.0 = large gap
	Level    learner.Tier
}

// SkillID derives the identifier for a named skill within a subject,
// e.g. ("math", "Linear Algebra") → "math_linear_algebra".
func SkillID(subject, name string) string {
	return subject + "_" + strings.ReplaceAll(strings.ToLower(name), " ", "_")
}

// SortByGap orders skills by descending gap level. Ties keep their
// relative order.
func SortByGap(skills []Skill) {
	sort.SliceStable(skills, func(i, j int) bool {
		return skills[i].GapLevel > skills[j].GapLevel
	})
}
