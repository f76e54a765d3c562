package store

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open test store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpenInMemory(t *testing.T) {
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer s.Close()

	ctx := context.Background()
	if err := s.StudentRepo().Save(ctx, &StudentData{ID: "s1"}); err != nil {
		t.Fatalf("save: %v", err)
	}
	got, err := s.StudentRepo().Get(ctx, "s1")
	if err != nil || got == nil {
		t.Fatalf("get = %v, %v", got, err)
	}
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestMigrationCreatesTables(t *testing.T) {
	s := openTestStore(t)
	for _, table := range []string{
		"students", "assessment_records", "assessment_skills", "learning_history",
		"progress_records", "skill_progress_records", "llm_request_events", "global_sequence",
	} {
		var name string
		err := s.DB().QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?", table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %s: %v", table, err)
		}
	}
}

func TestSequenceCounter(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var seqs []int64
	for i := 0; i < 5; i++ {
		seq, err := s.seq.Next(ctx, s.db)
		if err != nil {
			t.Fatalf("next %d: %v", i, err)
		}
		seqs = append(seqs, seq)
	}

	// Should be monotonically increasing starting from 1.
	for i, seq := range seqs {
		expected := int64(i + 1)
		if seq != expected {
			t.Errorf("seq[%d] = %d, want %d", i, seq, expected)
		}
	}
}

func TestInTxRollsBackEveryWrite(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	errBoom := errors.New("boom")

	err := s.InTx(ctx, func(tx *Store) error {
		if err := tx.StudentRepo().Save(ctx, &StudentData{ID: "s1", Name: "Ada"}); err != nil {
			return err
		}
		err := tx.ProgressRepo().AppendProgress(ctx, &ProgressRecord{
			ID: "p1", StudentID: "s1", Subject: "math", Timestamp: time.Now(),
		})
		if err != nil {
			return err
		}
		return errBoom
	})
	if !errors.Is(err, errBoom) {
		t.Fatalf("InTx error = %v, want %v", err, errBoom)
	}

	got, err := s.StudentRepo().Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got != nil {
		t.Errorf("student saved inside a rolled back tx: %+v", got)
	}
	recs, err := s.ProgressRepo().ListProgress(ctx, "s1", QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 0 {
		t.Errorf("progress records = %d, want 0", len(recs))
	}

	// The sequence number drawn inside the tx is released with it.
	seq, err := s.seq.Next(ctx, s.db)
	if err != nil {
		t.Fatalf("next: %v", err)
	}
	if seq != 1 {
		t.Errorf("next sequence = %d, want 1", seq)
	}
}

func TestInTxCommitsAndNests(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	err := s.InTx(ctx, func(tx *Store) error {
		rec := &AssessmentRecord{
			ID: "a1", StudentID: "s1", Subject: "math", Timestamp: time.Now(),
			Skills: []AssessedSkill{{SkillID: "math_fractions", Name: "Fractions", GapLevel: 0.5}},
		}
		if err := tx.AssessmentRepo().Append(ctx, rec); err != nil {
			return err
		}
		return tx.InTx(ctx, func(inner *Store) error {
			return inner.StudentRepo().Save(ctx, &StudentData{ID: "s1", Name: "Ada"})
		})
	})
	if err != nil {
		t.Fatalf("InTx: %v", err)
	}

	recs, err := s.AssessmentRepo().ListByStudent(ctx, "s1", "math")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(recs) != 1 || len(recs[0].Skills) != 1 {
		t.Fatalf("records = %+v", recs)
	}
	got, err := s.StudentRepo().Get(ctx, "s1")
	if err != nil || got == nil {
		t.Fatalf("get = %v, %v", got, err)
	}
}

func TestStudentSaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.StudentRepo()
	ctx := context.Background()

	got, err := repo.Get(ctx, "missing")
	if err != nil {
		t.Fatalf("get missing: %v", err)
	}
	if got != nil {
		t.Fatal("expected nil for unknown student")
	}

	in := &StudentData{
		ID:                    "s1",
		Name:                  "Ada",
		Subjects:              []string{"math"},
		Progress:              map[string]float64{"math": 0.45},
		PreferredExerciseType: "matching",
	}
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save: %v", err)
	}
	in.Progress["math"] = 0.5
	if err := repo.Save(ctx, in); err != nil {
		t.Fatalf("save again: %v", err)
	}

	got, err = repo.Get(ctx, "s1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Name != "Ada" || got.PreferredExerciseType != "matching" {
		t.Errorf("student = %+v", got)
	}
	if got.Progress["math"] != 0.5 {
		t.Errorf("progress = %v, want 0.5", got.Progress["math"])
	}

	all, err := repo.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 1 {
		t.Errorf("students = %d, want 1", len(all))
	}
}

func appendRecord(t *testing.T, repo AssessmentRepo, id, subject string, skills ...AssessedSkill) *AssessmentRecord {
	t.Helper()
	rec := &AssessmentRecord{
		ID:        id,
		StudentID: "s1",
		Subject:   subject,
		Timestamp: time.Now(),
		Tier:      "beginner",
		Skills:    skills,
	}
	if err := repo.Append(context.Background(), rec); err != nil {
		t.Fatalf("append %s: %v", id, err)
	}
	return rec
}

func TestAssessmentAppendAndList(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	first := appendRecord(t, repo, "r1", "math",
		AssessedSkill{SkillID: "math_fractions", Name: "Fractions", Category: "general", GapLevel: 0.5, Level: "beginner"},
		AssessedSkill{SkillID: "math_decimals", Name: "Decimals", Category: "general", GapLevel: 0.4, Level: "beginner"},
	)
	second := appendRecord(t, repo, "r2", "science",
		AssessedSkill{SkillID: "science_observation", Name: "Scientific Observation", GapLevel: 0.4},
	)
	if second.Sequence <= first.Sequence {
		t.Errorf("sequence not increasing: %d then %d", first.Sequence, second.Sequence)
	}

	all, err := repo.ListByStudent(ctx, "s1", "")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 2 || all[0].ID != "r1" || all[1].ID != "r2" {
		t.Fatalf("records = %+v", all)
	}
	if len(all[0].Skills) != 2 || all[0].Skills[1].SkillID != "math_decimals" {
		t.Errorf("r1 skills = %+v", all[0].Skills)
	}

	math, err := repo.ListByStudent(ctx, "s1", "math")
	if err != nil {
		t.Fatalf("list math: %v", err)
	}
	if len(math) != 1 {
		t.Errorf("math records = %d, want 1", len(math))
	}

	none, err := repo.ListByStudent(ctx, "nobody", "")
	if err != nil {
		t.Fatalf("list nobody: %v", err)
	}
	if len(none) != 0 {
		t.Errorf("records for unknown student = %d", len(none))
	}
}

func TestAssessmentFirstSkillMatchAndUpdate(t *testing.T) {
	s := openTestStore(t)
	repo := s.AssessmentRepo()
	ctx := context.Background()

	appendRecord(t, repo, "r1", "math",
		AssessedSkill{SkillID: "math_fractions", Name: "Fractions", GapLevel: 0.5})
	appendRecord(t, repo, "r2", "math",
		AssessedSkill{SkillID: "math_fractions", Name: "Fractions", GapLevel: 0.5})

	m, err := repo.FirstSkillMatch(ctx, "s1", "", "math_fractions")
	if err != nil {
		t.Fatalf("first match: %v", err)
	}
	if m == nil || m.RecordID != "r1" || m.Subject != "math" {
		t.Fatalf("match = %+v, want r1", m)
	}

	if err := repo.UpdateSkillGap(ctx, m.RecordID, m.Skill.Position, 0.3); err != nil {
		t.Fatalf("update: %v", err)
	}

	records, _ := repo.ListByStudent(ctx, "s1", "math")
	if got := records[0].Skills[0].GapLevel; got != 0.3 {
		t.Errorf("r1 gap = %v, want 0.3", got)
	}
	if got := records[1].Skills[0].GapLevel; got != 0.5 {
		t.Errorf("r2 gap = %v, want unchanged 0.5", got)
	}

	if m, _ := repo.FirstSkillMatch(ctx, "s1", "science", "math_fractions"); m != nil {
		t.Errorf("match in wrong subject = %+v", m)
	}
	if err := repo.UpdateSkillGap(ctx, "r1", 9, 0.1); err == nil {
		t.Error("expected error for missing position")
	}
}

func TestHistorySaveAndGet(t *testing.T) {
	s := openTestStore(t)
	repo := s.HistoryRepo()
	ctx := context.Background()

	if h, err := repo.Get(ctx, "s1", "math", "math_fractions"); err != nil || h != nil {
		t.Fatalf("get empty = %v, %v", h, err)
	}

	now := time.Now().UTC()
	h := &HistoryData{
		StudentID:         "s1",
		Subject:           "math",
		SkillID:           "math_fractions",
		Attempts:          2,
		Completions:       []float64{0.5, 1.0},
		AverageCompletion: 0.75,
		LastAttempt:       now,
		Feedback:          []FeedbackData{{Timestamp: now, Content: "tricky"}},
	}
	if err := repo.Save(ctx, h); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Get(ctx, "s1", "math", "math_fractions")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Attempts != 2 || len(got.Completions) != 2 || got.AverageCompletion != 0.75 {
		t.Errorf("history = %+v", got)
	}
	if len(got.Feedback) != 1 || got.Feedback[0].Content != "tricky" {
		t.Errorf("feedback = %+v", got.Feedback)
	}
	if !got.LastAttempt.Equal(now) {
		t.Errorf("last attempt = %v, want %v", got.LastAttempt, now)
	}

	list, err := repo.ListBySubject(ctx, "s1", "math")
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(list) != 1 {
		t.Errorf("list = %d, want 1", len(list))
	}
}

func TestProgressRecords(t *testing.T) {
	s := openTestStore(t)
	repo := s.ProgressRepo()
	ctx := context.Background()

	for i, id := range []string{"p1", "p2", "p3"} {
		err := repo.AppendProgress(ctx, &ProgressRecord{
			ID:         id,
			StudentID:  "s1",
			ExerciseID: "exercise_math_fractions_0",
			SkillID:    "math_fractions",
			Subject:    "math",
			Timestamp:  time.Now(),
			Completion: float64(i+1) / 4,
		})
		if err != nil {
			t.Fatalf("append %s: %v", id, err)
		}
	}

	all, err := repo.ListProgress(ctx, "s1", QueryOpts{})
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(all) != 3 || all[0].ID != "p1" {
		t.Fatalf("records = %+v", all)
	}

	limited, err := repo.ListProgress(ctx, "s1", QueryOpts{After: all[0].Sequence, Limit: 1})
	if err != nil {
		t.Fatalf("list limited: %v", err)
	}
	if len(limited) != 1 || limited[0].ID != "p2" {
		t.Errorf("limited = %+v, want p2", limited)
	}

	sp := &SkillProgressRecord{
		ID:            "sp1",
		StudentID:     "s1",
		SkillID:       "math_fractions",
		Timestamp:     time.Now(),
		ExerciseCount: 2,
		AverageScore:  85,
		ProgressLevel: 0.85,
		ExerciseIDs:   []string{"a", "b"},
	}
	if err := repo.AppendSkillProgress(ctx, sp); err != nil {
		t.Fatalf("append skill progress: %v", err)
	}
	got, err := repo.ListSkillProgress(ctx, "s1", "math_fractions")
	if err != nil {
		t.Fatalf("list skill progress: %v", err)
	}
	if len(got) != 1 || got[0].ProgressLevel != 0.85 || len(got[0].ExerciseIDs) != 2 {
		t.Errorf("skill progress = %+v", got)
	}
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	for _, purpose := range []string{"exercise-description", "exercise-description", "plan-summary"} {
		err := repo.AppendLLMRequest(ctx, LLMRequestEventData{
			Provider:     "mock",
			Model:        "mock-model",
			Purpose:      purpose,
			InputTokens:  10,
			OutputTokens: 5,
			LatencyMs:    20,
			Success:      true,
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 2})
	if err != nil {
		t.Fatalf("query: %v", err)
	}
	if len(events) != 2 || events[0].Purpose != "plan-summary" {
		t.Errorf("events = %+v, want newest first", events)
	}
	if !events[0].Success {
		t.Error("success flag lost")
	}

	e, err := repo.GetLLMEvent(ctx, events[0].ID)
	if err != nil || e == nil {
		t.Fatalf("get = %v, %v", e, err)
	}
	if missing, err := repo.GetLLMEvent(ctx, 999); err != nil || missing != nil {
		t.Errorf("get missing = %v, %v", missing, err)
	}

	usage, err := repo.LLMUsageByPurpose(ctx)
	if err != nil {
		t.Fatalf("usage: %v", err)
	}
	if len(usage) != 2 || usage[0].Purpose != "exercise-description" || usage[0].Calls != 2 || usage[0].InputTokens != 20 {
		t.Errorf("usage = %+v", usage)
	}
}

func TestDeleteStudent(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	if err := s.StudentRepo().Save(ctx, &StudentData{ID: "s1", Name: "Ada"}); err != nil {
		t.Fatalf("save s1: %v", err)
	}
	if err := s.StudentRepo().Save(ctx, &StudentData{ID: "s2", Name: "Bo"}); err != nil {
		t.Fatalf("save s2: %v", err)
	}
	appendRecord(t, s.AssessmentRepo(), "r1", "math",
		AssessedSkill{SkillID: "math_fractions", Name: "Fractions", GapLevel: 0.5})
	err := s.HistoryRepo().Save(ctx, &HistoryData{
		StudentID: "s1", Subject: "math", SkillID: "math_fractions", LastAttempt: time.Now(),
	})
	if err != nil {
		t.Fatalf("save history: %v", err)
	}
	err = s.ProgressRepo().AppendProgress(ctx, &ProgressRecord{
		ID: "p1", StudentID: "s1", ExerciseID: "exercise_math_fractions_0", Timestamp: time.Now(),
	})
	if err != nil {
		t.Fatalf("append progress: %v", err)
	}

	existed, err := s.DeleteStudent(ctx, "s1")
	if err != nil || !existed {
		t.Fatalf("DeleteStudent = %v, %v", existed, err)
	}

	if got, _ := s.StudentRepo().Get(ctx, "s1"); got != nil {
		t.Errorf("student still stored: %+v", got)
	}
	if recs, _ := s.AssessmentRepo().ListByStudent(ctx, "s1", ""); len(recs) != 0 {
		t.Errorf("assessments left = %d", len(recs))
	}
	var skills int
	if err := s.DB().QueryRow("SELECT COUNT(*) FROM assessment_skills").Scan(&skills); err != nil || skills != 0 {
		t.Errorf("assessment skills left = %d (%v)", skills, err)
	}
	if h, _ := s.HistoryRepo().Get(ctx, "s1", "math", "math_fractions"); h != nil {
		t.Errorf("history left: %+v", h)
	}
	if p, _ := s.ProgressRepo().ListProgress(ctx, "s1", QueryOpts{}); len(p) != 0 {
		t.Errorf("progress left = %d", len(p))
	}
	if got, _ := s.StudentRepo().Get(ctx, "s2"); got == nil {
		t.Error("other student was deleted")
	}

	existed, err = s.DeleteStudent(ctx, "s1")
	if err != nil || existed {
		t.Errorf("second DeleteStudent = %v, %v", existed, err)
	}
}
