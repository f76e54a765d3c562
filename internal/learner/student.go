package learner

import (
	"maps"
	"math"
	"slices"
	"strings"
)

// Student is the learner profile shared with the other coaching agents.
// Only Progress is written by the skill development service.
type Student struct {
	ID          string
	Name        string
	Subjects    []string
	Progress    map[string]float64 // subject → overall progress (0.0–1.0)
	Preferences Preferences
}

// Preferences holds the typed, optional learner preferences.
type Preferences struct {
	// ExerciseType is the preferred exercise format (e.g. "matching").
	// Empty means no preference.
	ExerciseType string
}

// NewStudent creates a student with an empty progress map.
func NewStudent(id, name string) *Student {
	return &Student{
		ID:       id,
		Name:     name,
		Progress: make(map[string]float64),
	}
}

// Clone returns a deep copy of the student.
func (s *Student) Clone() *Student {
	c := *s
	c.Subjects = slices.Clone(s.Subjects)
	c.Progress = maps.Clone(s.Progress)
	if c.Progress == nil {
		c.Progress = make(map[string]float64)
	}
	return &c
}

// NormalizeSubject returns the canonical subject key: trimmed and
// lower-cased, matching taxonomy subject names.
func NormalizeSubject(subject string) string {
	return strings.ToLower(strings.TrimSpace(subject))
}

// ProgressIn returns the overall progress for a subject, or 0 if unknown.
func (s *Student) ProgressIn(subject string) float64 {
	if s.Progress == nil {
		return 0
	}
	return s.Progress[NormalizeSubject(subject)]
}

// SetProgress records progress for a subject, clamped to [0, 1].
func (s *Student) SetProgress(subject string, v float64) {
	if s.Progress == nil {
		s.Progress = make(map[string]float64)
	}
	subject = NormalizeSubject(subject)
	s.Progress[subject] = Clamp01(v)
	s.addSubject(subject)
}

// TierIn returns the proficiency tier for a subject.
func (s *Student) TierIn(subject string) Tier {
	return TierFor(s.ProgressIn(subject))
}

func (s *Student) addSubject(subject string) {
	for _, existing := range s.Subjects {
		if strings.EqualFold(existing, subject) {
			return
		}
	}
	s.Subjects = append(s.Subjects, subject)
}

// Clamp01 bounds v to the closed unit interval.
func Clamp01(v float64) float64 {
	switch {
	case v < 0:
		return 0
	case v > 1:
		return 1
	default:
		return v
	}
}

// Round2 rounds v to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
