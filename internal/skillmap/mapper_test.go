package skillmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/taxonomy"
)

func defaultMapper(t *testing.T) *Mapper {
	t.Helper()
	tax, err := taxonomy.NewStoreFromSubjects(taxonomy.DefaultSubjects()...)
	require.NoError(t, err)
	return NewMapper(tax)
}

func TestBaseSkills(t *testing.T) {
	tests := []struct {
		subject string
		tier    learner.Tier
		wantIDs []string
	}{
		{"math", learner.TierBeginner, []string{"math_basic_arithmetic", "math_fractions", "math_decimals"}},
		{"math", learner.TierAdvanced, []string{"math_calculus", "math_linear_algebra", "math_probability"}},
		{"science", learner.TierBeginner, []string{"science_basic_concepts", "science_observation", "science_classification"}},
		{"science", learner.TierIntermediate, []string{"science_hypothesis", "science_experimentation", "science_data_analysis"}},
		{"language", learner.TierBeginner, nil},
		{"math", learner.Tier("expert"), nil},
	}

	for _, tt := range tests {
		got := BaseSkills(tt.subject, tt.tier)
		if len(got) != len(tt.wantIDs) {
			t.Errorf("BaseSkills(%s, %s) = %d skills, want %d", tt.subject, tt.tier, len(got), len(tt.wantIDs))
			continue
		}
		for i, id := range tt.wantIDs {
			if got[i].ID != id {
				t.Errorf("BaseSkills(%s, %s)[%d].ID = %q, want %q", tt.subject, tt.tier, i, got[i].ID, id)
			}
			if got[i].Category != DefaultCategory {
				t.Errorf("%s category = %q, want %q", got[i].ID, got[i].Category, DefaultCategory)
			}
			if got[i].Level != tt.tier {
				t.Errorf("%s level = %q, want %q", got[i].ID, got[i].Level, tt.tier)
			}
		}
	}
}

func TestBaseSkills_ReturnsFreshCopies(t *testing.T) {
	first := BaseSkills("math", learner.TierBeginner)
	first[0].GapLevel = 0.99
	second := BaseSkills("math", learner.TierBeginner)
	if second[0].GapLevel != 0.2 {
		t.Errorf("base table mutated: gap = %v, want 0.2", second[0].GapLevel)
	}
}

func TestIdentify_NoContentReturnsBase(t *testing.T) {
	m := defaultMapper(t)
	got := m.Identify("math", learner.TierIntermediate, "")
	assert.Equal(t, BaseSkills("math", learner.TierIntermediate), got)
}

func TestIdentify_BeginnerMathWithAdditionContent(t *testing.T) {
	m := defaultMapper(t)
	got := m.Identify("math", learner.TierBeginner, "Let's practice addition: 2 + 3 = 5")

	require.Len(t, got, 4)
	for i, name := range []string{"Basic Arithmetic", "Fractions", "Decimals"} {
		assert.Equal(t, name, got[i].Name)
	}

	add := got[3]
	assert.Equal(t, "math_addition", add.ID)
	assert.Equal(t, "addition", add.Name)
	assert.Equal(t, "arithmetic", add.Category)
	assert.Equal(t, DiscoveredGap, add.GapLevel)
	assert.Equal(t, learner.TierBeginner, add.Level)
}

func TestIdentify_MatchedBaseSkillGapCapped(t *testing.T) {
	tax, err := taxonomy.NewStoreFromSubjects(&taxonomy.Subject{
		Name: "math",
		Categories: []taxonomy.Category{
			{Name: "numbers", Skills: []taxonomy.Entry{
				{Name: "fractions", SkillDefinition: taxonomy.SkillDefinition{
					Keywords: []string{"fraction", "numerator"},
					Patterns: []string{`\d+/\d+`},
				}},
				{Name: "ratios", SkillDefinition: taxonomy.SkillDefinition{
					Level:    learner.TierAdvanced,
					Keywords: []string{"ratio"},
				}},
			}},
		},
	})
	require.NoError(t, err)
	m := NewMapper(tax)

	got := m.Identify("math", learner.TierBeginner, "Simplify 3/4 and compare the ratio")
	require.Len(t, got, 4)

	i := IndexByID(got, "math_fractions")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, ObservedGapCeiling, got[i].GapLevel)
	assert.Equal(t, DefaultCategory, got[i].Category)

	// Basic Arithmetic already sits at 0.2 and must not rise.
	assert.Equal(t, 0.2, got[0].GapLevel)

	ratios := got[3]
	assert.Equal(t, "math_ratios", ratios.ID)
	assert.Equal(t, learner.TierAdvanced, ratios.Level)
	assert.Equal(t, "numbers", ratios.Category)
}

func TestIdentify_UnknownSubject(t *testing.T) {
	m := defaultMapper(t)
	if got := m.Identify("astrology", learner.TierBeginner, "stars and planets"); len(got) != 0 {
		t.Errorf("Identify(astrology) = %v, want empty", got)
	}
}

func TestIdentify_TaxonomyOnlySubjectUsesTierWhenLevelMissing(t *testing.T) {
	tax, err := taxonomy.NewStoreFromSubjects(&taxonomy.Subject{
		Name: "history",
		Categories: []taxonomy.Category{
			{Name: "events", Skills: []taxonomy.Entry{
				{Name: "revolutions", SkillDefinition: taxonomy.SkillDefinition{
					Keywords: []string{"revolution"},
				}},
			}},
		},
	})
	require.NoError(t, err)

	got := NewMapper(tax).Identify("history", learner.TierIntermediate, "The French Revolution")
	require.Len(t, got, 1)
	assert.Equal(t, learner.TierIntermediate, got[0].Level)
	assert.Equal(t, "history_revolutions", got[0].ID)
}

func TestSortByGap_StableDescending(t *testing.T) {
	skills := []Skill{
		{ID: "a", GapLevel: 0.3},
		{ID: "b", GapLevel: 0.6},
		{ID: "c", GapLevel: 0.3},
		{ID: "d", GapLevel: 0.9},
	}
	SortByGap(skills)

	want := []string{"d", "b", "a", "c"}
	for i, id := range want {
		if skills[i].ID != id {
			t.Errorf("skills[%d] = %s, want %s", i, skills[i].ID, id)
		}
	}
}

func TestSkillID(t *testing.T) {
	if got := SkillID("math", "Linear Algebra"); got != "math_linear_algebra" {
		t.Errorf("SkillID = %q", got)
	}
}
