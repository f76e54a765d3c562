package skillmap

import (
	"math"
	"strings"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/taxonomy"
)

// Mapper estimates a learner's skills from the canned tier table and,
// when content is supplied, the subject taxonomy.
type Mapper struct {
	tax *taxonomy.Store
}

// NewMapper creates a mapper reading from the given taxonomy store.
func NewMapper(tax *taxonomy.Store) *Mapper {
	return &Mapper{tax: tax}
}

// Identify returns the skills for subject at the given tier. Each taxonomy
// skill that matches content either lowers the gap of a base skill with the
// same name (case-insensitive) or is appended as a newly discovered skill.
func (m *Mapper) Identify(subject string, tier learner.Tier, content string) []Skill {
	skills := BaseSkills(subject, tier)
	if content == "" || m.tax == nil {
		return skills
	}

	for _, e := range m.tax.Get(subject).Entries() {
		if !e.Matches(content) {
			continue
		}
		if i := indexByName(skills, e.Name); i >= 0 {
			skills[i].GapLevel = math.Min(skills[i].GapLevel, ObservedGapCeiling)
			continue
		}
		level := e.Level
		if level == "" {
			level = tier
		}
		skills = append(skills, Skill{
			ID:       SkillID(subject, e.Name),
			Name:     e.Name,
			Category: e.Category,
			GapLevel: DiscoveredGap,
			Level:    level,
		})
	}
	return skills
}

func indexByName(skills []Skill, name string) int {
	for i, s := range skills {
		if strings.EqualFold(s.Name, name) {
			return i
		}
	}
	return -1
}

// Contains reports whether skills holds a skill with the given ID.
func Contains(skills []Skill, id string) bool {
	return IndexByID(skills, id) >= 0
}

// IndexByID returns the position of the skill with the given ID, or -1.
func IndexByID(skills []Skill, id string) int {
	for i, s := range skills {
		if s.ID == id {
			return i
		}
	}
	return -1
}
