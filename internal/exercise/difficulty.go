package exercise

import (
	"math"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
)

// Difficulty bounds.
const (
	MinDifficulty = 0.1
	MaxDifficulty = 1.0
)

const (
	progressWeight    = 0.5
	attemptStep       = 0.05
	attemptBonusLimit = 0.2
)

// Difficulty combines the skill gap, overall subject progress, skill level
// and prior attempts into a value in [0.1, 1.0], rounded to 2 decimals.
func Difficulty(gap, progress float64, level learner.Tier, attempts int) float64 {
	d := gap +
		progressWeight*progress +
		levelFactor(level) +
		math.Min(float64(attempts)*attemptStep, attemptBonusLimit)
	d = math.Min(math.Max(d, MinDifficulty), MaxDifficulty)
	return learner.Round2(d)
}

func levelFactor(level learner.Tier) float64 {
	switch level {
	case learner.TierBeginner:
		return -0.1
	case learner.TierAdvanced:
		return 0.1
	default:
		return 0
	}
}
