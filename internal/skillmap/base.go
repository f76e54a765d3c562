package skillmap

import "github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"

type baseSkill struct {
	name string
	gap  float64
}

// baseTable holds the hand-authored starting skills per subject and tier.
var baseTable = map[string]map[learner.Tier][]baseSkill{
	"math": {
		learner.TierBeginner: {
			{"Basic Arithmetic", 0.2},
			{"Fractions", 0.5},
			{"Decimals", 0.4},
		},
		learner.TierIntermediate: {
			{"Algebra", 0.3},
			{"Geometry", 0.4},
			{"Statistics", 0.6},
		},
		learner.TierAdvanced: {
			{"Calculus", 0.5},
			{"Linear Algebra", 0.7},
			{"Probability Theory", 0.4},
		},
	},
	"science": {
		learner.TierBeginner: {
			{"Basic Science Concepts", 0.3},
			{"Scientific Observation", 0.4},
			{"Classification Skills", 0.5},
		},
		learner.TierIntermediate: {
			{"Hypothesis Formation", 0.4},
			{"Experimentation", 0.5},
			{"Data Analysis", 0.6},
		},
		learner.TierAdvanced: {
			{"Research Methods", 0.5},
			{"Critical Analysis", 0.6},
			{"Scientific Writing", 0.7},
		},
	},
}

// baseIDs pins identifiers that do not follow SkillID's naming rule.
var baseIDs = map[string]string{
	"math/Probability Theory":        "math_probability",
	"science/Basic Science Concepts": "science_basic_concepts",
	"science/Scientific Observation": "science_observation",
	"science/Classification Skills":  "science_classification",
	"science/Hypothesis Formation":   "science_hypothesis",
	"science/Research Methods":       "science_research",
}

// BaseSkills returns a fresh copy of the canned skills for a subject and
// tier. Unknown combinations yield an empty slice.
func BaseSkills(subject string, tier learner.Tier) []Skill {
	rows := baseTable[subject][tier]
	out := make([]Skill, 0, len(rows))
	for _, r := range rows {
		id, ok := baseIDs[subject+"/"+r.name]
		if !ok {
			id = SkillID(subject, r.name)
		}
		out = append(out, Skill{
			ID:       id,
			Name:     r.name,
			Category: DefaultCategory,
			GapLevel: r.gap,
			Level:    tier,
		})
	}
	return out
}

// Subjects returns the subjects covered by the canned table.
func Subjects() []string {
	return []string{"math", "science"}
}
