package plan

import (
	"math"
	"time"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skillmap"
)

const (
	// MaxPrioritySkills caps how many skills a plan focuses on.
	MaxPrioritySkills = 5

	// WeeklyImprovement is the gap reduction targeted per timeline week.
	WeeklyImprovement = 0.2

	// LevelUplift is added to the current level to derive the target.
	LevelUplift = 0.3
)

// Week is one timeline entry: a single skill worked on for a week.
type Week struct {
	Week              int
	SkillID           string
	SkillName         string
	FocusAreas        []string
	TargetImprovement float64
}

// Plan is a development plan for one student and subject.
type Plan struct {
	StudentID      string
	Subject        string
	CreatedAt      time.Time
	CurrentLevel   float64
	TargetLevel    float64
	DurationWeeks  int
	PrioritySkills []skillmap.Skill
	Timeline       []Week
}

// Build creates a plan from identified skills. The largest gaps come
// first; ties keep their identification order. The input slice is not
// modified.
func Build(studentID, subject string, currentLevel float64, skills []skillmap.Skill, now time.Time) *Plan {
	ranked := make([]skillmap.Skill, len(skills))
	copy(ranked, skills)
	skillmap.SortByGap(ranked)
	if len(ranked) > MaxPrioritySkills {
		ranked = ranked[:MaxPrioritySkills]
	}

	timeline := make([]Week, len(ranked))
	for i, s := range ranked {
		timeline[i] = Week{
			Week:              i + 1,
			SkillID:           s.ID,
			SkillName:         s.Name,
			FocusAreas:        []string{},
			TargetImprovement: WeeklyImprovement,
		}
	}

	return &Plan{
		StudentID:      studentID,
		Subject:        subject,
		CreatedAt:      now,
		CurrentLevel:   currentLevel,
		TargetLevel:    math.Min(1, currentLevel+LevelUplift),
		DurationWeeks:  len(timeline),
		PrioritySkills: ranked,
		Timeline:       timeline,
	}
}

// TargetTier is the tier the plan aims for.
func (p *Plan) TargetTier() learner.Tier {
	return learner.TierFor(p.TargetLevel)
}
