package learner

import "testing"

func TestTierFor_Thresholds(t *testing.T) {
	tests := []struct {
		progress float64
		want     Tier
	}{
		{0.0, TierBeginner},
		{0.29, TierBeginner},
		{0.3, TierIntermediate},
		{0.69, TierIntermediate},
		{0.7, TierAdvanced},
		{1.0, TierAdvanced},
	}

	for _, tt := range tests {
		if got := TierFor(tt.progress); got != tt.want {
			t.Errorf("TierFor(%v) = %s, want %s", tt.progress, got, tt.want)
		}
	}
}

func TestParseTier(t *testing.T) {
	for _, tier := range AllTiers() {
		got, ok := ParseTier(string(tier))
		if !ok || got != tier {
			t.Errorf("ParseTier(%q) = (%q, %v)", tier, got, ok)
		}
	}
	if _, ok := ParseTier("expert"); ok {
		t.Error("ParseTier(expert) should not be known")
	}
}

func TestStudent_SetProgressClamps(t *testing.T) {
	s := NewStudent("s1", "Ada")
	s.SetProgress("math", 1.4)
	if got := s.ProgressIn("math"); got != 1.0 {
		t.Errorf("progress = %v, want 1.0", got)
	}
	s.SetProgress("math", -0.2)
	if got := s.ProgressIn("math"); got != 0 {
		t.Errorf("progress = %v, want 0", got)
	}
	if len(s.Subjects) != 1 || s.Subjects[0] != "math" {
		t.Errorf("subjects = %v, want [math]", s.Subjects)
	}
}

func TestStudent_ProgressInUnknownSubject(t *testing.T) {
	var s Student
	if got := s.ProgressIn("science"); got != 0 {
		t.Errorf("progress = %v, want 0", got)
	}
	if got := s.TierIn("science"); got != TierBeginner {
		t.Errorf("tier = %s, want beginner", got)
	}
}

func TestStudent_SubjectKeysAreCaseInsensitive(t *testing.T) {
	s := NewStudent("s1", "Ada")
	s.SetProgress(" Math ", 0.5)

	if got := s.ProgressIn("math"); got != 0.5 {
		t.Errorf("ProgressIn(math) = %v, want 0.5", got)
	}
	if got := s.ProgressIn("MATH"); got != 0.5 {
		t.Errorf("ProgressIn(MATH) = %v, want 0.5", got)
	}
	if got := s.TierIn("Math"); got != TierIntermediate {
		t.Errorf("TierIn(Math) = %s, want %s", got, TierIntermediate)
	}
	if _, ok := s.Progress["math"]; !ok || len(s.Progress) != 1 {
		t.Errorf("Progress = %v, want a single math key", s.Progress)
	}
}
