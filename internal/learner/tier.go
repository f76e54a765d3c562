package learner

// Tier is a coarse proficiency bucket derived from subject progress.
type Tier string

const (
	TierBeginner     Tier = "beginner"
	TierIntermediate Tier = "intermediate"
	TierAdvanced     Tier = "advanced"
)

// Progress thresholds separating the tiers.
const (
	IntermediateThreshold = 0.3
	AdvancedThreshold     = 0.7
)

// AllTiers returns the tiers in ascending order.
func AllTiers() []Tier {
	return []Tier{TierBeginner, TierIntermediate, TierAdvanced}
}

// TierFor maps an overall progress value to its tier.
func TierFor(progress float64) Tier {
	switch {
	case progress < IntermediateThreshold:
		return TierBeginner
	case progress < AdvancedThreshold:
		return TierIntermediate
	default:
		return TierAdvanced
	}
}

// ParseTier returns the tier for a level string and whether it is known.
func ParseTier(s string) (Tier, bool) {
	switch Tier(s) {
	case TierBeginner, TierIntermediate, TierAdvanced:
		return Tier(s), true
	}
	return "", false
}

// DisplayName returns a human-readable name for a tier.
func (t Tier) DisplayName() string {
	switch t {
	case TierBeginner:
		return "Beginner"
	case TierIntermediate:
		return "Intermediate"
	case TierAdvanced:
		return "Advanced"
	default:
		return string(t)
	}
}
