package exercise

import (
	"math"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// Type is an exercise format.
type Type string

const (
	TypeMultipleChoice Type = "multiple_choice"
	TypeMatching       Type = "matching"
	TypeFillInBlank    Type = "fill_in_blank"
	TypeShortAnswer    Type = "short_answer"
	TypeProblemSolving Type = "problem_solving"
	TypeEssay          Type = "essay"
	TypeProject        Type = "project"
	TypeResearch       Type = "research"
)

// DefaultBaseMinutes is used for exercise types without a base time.
const DefaultBaseMinutes = 10

var baseMinutes = map[Type]int{
	TypeMultipleChoice: 5,
	TypeMatching:       7,
	TypeFillInBlank:    8,
	TypeShortAnswer:    10,
	TypeProblemSolving: 15,
	TypeEssay:          25,
	TypeProject:        45,
	TypeResearch:       30,
}

var tierTypes = map[learner.Tier][]Type{
	learner.TierBeginner:     {TypeMultipleChoice, TypeMatching, TypeFillInBlank},
	learner.TierIntermediate: {TypeShortAnswer, TypeMultipleChoice, TypeProblemSolving},
	learner.TierAdvanced:     {TypeProject, TypeEssay, TypeProblemSolving, TypeResearch},
}

// TypesFor returns the exercise types suited to a tier. The first entry is
// the tier default. Unknown tiers use the beginner set.
func TypesFor(tier learner.Tier) []Type {
	if types, ok := tierTypes[tier]; ok {
		return types
	}
	return tierTypes[learner.TierBeginner]
}

// TypeFor picks the preferred type when it suits the tier, and the tier
// default otherwise.
func TypeFor(tier learner.Tier, preferred string) Type {
	types := TypesFor(tier)
	for _, t := range types {
		if preferred != "" && string(t) == preferred {
			return t
		}
	}
	return types[0]
}

// EstimatedMinutes scales the base time of t by (1 + difficulty).
func EstimatedMinutes(t Type, difficulty float64) int {
	base, ok := baseMinutes[t]
	if !ok {
		base = DefaultBaseMinutes
	}
	return int(math.Floor(float64(base) * (1 + difficulty)))
}
