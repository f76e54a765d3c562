// Package skilldev identifies skill gaps, recommends exercises and folds
// completion signals back into skill estimates and learning histories.
package skilldev

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/exercise"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/history"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/metrics"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/plan"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/skillmap"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/taxonomy"
)

const (
	// CandidateGapThreshold is the gap above which a skill is preferred
	// for exercise recommendations.
	CandidateGapThreshold = 0.4

	// ProgressPerCompletion scales a completion into subject progress.
	ProgressPerCompletion = 0.05

	// GapReductionPerCompletion scales a completion into gap reduction.
	GapReductionPerCompletion = 0.2

	// DefaultExerciseCount is used by callers that do not pick a count.
	DefaultExerciseCount = 3
)

// Operation names used for metrics and logs.
const (
	opIdentify     = "identify_skills"
	opRecommend    = "recommend_exercises"
	opTrack        = "track_progress"
	opTrackSkill   = "track_skill_progress"
	opAdjustGap    = "adjust_gap"
	opGeneratePlan = "generate_plan"
)

// Options configures optional collaborators of the Service.
type Options struct {
	Describer exercise.Describer // defaults to a clock-seeded TemplateDescriber
	Metrics   *metrics.Metrics   // defaults to a fresh registry
	Logger    *zap.Logger
	Now       func() time.Time
}

// Service runs the skill development operations. Every exported operation
// holds the service lock for its whole read-compute-write step.
type Service struct {
	mu sync.Mutex

	store *store.Store
	repos

	taxonomy  *taxonomy.Store
	mapper    *skillmap.Mapper
	describer exercise.Describer
	metrics   *metrics.Metrics
	log       *zap.Logger
	now       func() time.Time
}

// repos are the repositories an operation reads and writes through.
type repos struct {
	students    store.StudentRepo
	assessments store.AssessmentRepo
	progress    store.ProgressRepo
	tracker     *history.Tracker
}

func reposFor(st *store.Store) repos {
	return repos{
		students:    st.StudentRepo(),
		assessments: st.AssessmentRepo(),
		progress:    st.ProgressRepo(),
		tracker:     history.NewTracker(st.HistoryRepo()),
	}
}

// NewService wires a Service to an open store and a loaded taxonomy.
func NewService(st *store.Store, tax *taxonomy.Store, opts Options) *Service {
	if opts.Describer == nil {
		opts.Describer = exercise.NewTemplateDescriber(nil)
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.New()
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Service{
		store:     st,
		repos:     reposFor(st),
		taxonomy:  tax,
		mapper:    skillmap.NewMapper(tax),
		describer: opts.Describer,
		metrics:   opts.Metrics,
		log:       opts.Logger.Named("skilldev"),
		now:       opts.Now,
	}
}

// inTx runs fn with repositories bound to a single store transaction.
func (s *Service) inTx(ctx context.Context, fn func(r repos) error) error {
	return s.store.InTx(ctx, func(tx *store.Store) error {
		return fn(reposFor(tx))
	})
}

// Metrics returns the collectors the service reports to.
func (s *Service) Metrics() *metrics.Metrics {
	return s.metrics
}

// IdentifySkills estimates the student's skills in subject and appends a
// new assessment record. Identical calls produce distinct records.
func (s *Service) IdentifySkills(ctx context.Context, st *learner.Student, subject, content string) (skills []skillmap.Skill, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opIdentify, s.now(), &err)

	skills, _, err = s.identify(ctx, st, learner.NormalizeSubject(subject), content)
	return skills, err
}

// identify expects a normalized subject.
func (s *Service) identify(ctx context.Context, st *learner.Student, subject, content string) ([]skillmap.Skill, *store.AssessmentRecord, error) {
	progress := st.ProgressIn(subject)
	tier := learner.TierFor(progress)
	skills := s.mapper.Identify(subject, tier, content)

	now := s.now().UTC()
	rec := &store.AssessmentRecord{
		ID:           fmt.Sprintf("skill_assessment_%s_%s_%d_%s", st.ID, subject, now.UnixNano(), shortUUID()),
		StudentID:    st.ID,
		Subject:      subject,
		Timestamp:    now,
		CurrentLevel: progress,
		Tier:         string(tier),
		Skills:       make([]store.AssessedSkill, len(skills)),
	}
	for i, sk := range skills {
		rec.Skills[i] = store.AssessedSkill{
			SkillID:  sk.ID,
			Name:     sk.Name,
			Category: sk.Category,
			GapLevel: sk.GapLevel,
			Level:    string(sk.Level),
		}
	}
	if err := s.assessments.Append(ctx, rec); err != nil {
		return nil, nil, fmt.Errorf("record skill assessment: %w", err)
	}
	s.metrics.AssessmentsRecorded.WithLabelValues(subject).Inc()

	s.log.Debug("skills identified",
		zap.String("student", st.ID),
		zap.String("subject", subject),
		zap.String("tier", string(tier)),
		zap.Int("skills", len(skills)),
		zap.String("record", rec.ID))
	return skills, rec, nil
}

// RecommendExercises proposes up to count exercises for the student's
// largest skill gaps. A non-positive count yields no exercises, though the
// skill assessment is still recorded.
func (s *Service) RecommendExercises(ctx context.Context, st *learner.Student, subject, content string, count int) (out []exercise.Exercise, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opRecommend, s.now(), &err)

	subject = learner.NormalizeSubject(subject)
	skills, _, err := s.identify(ctx, st, subject, content)
	if err != nil {
		return nil, err
	}
	if count <= 0 {
		return []exercise.Exercise{}, nil
	}

	var candidates []skillmap.Skill
	for _, sk := range skills {
		if sk.GapLevel > CandidateGapThreshold {
			candidates = append(candidates, sk)
		}
	}
	if len(candidates) == 0 {
		candidates = append(candidates, skills...)
	}
	skillmap.SortByGap(candidates)
	if len(candidates) > count {
		candidates = candidates[:count]
	}

	progress := st.ProgressIn(subject)
	out = make([]exercise.Exercise, 0, len(candidates))
	for i, sk := range candidates {
		entry, err := s.tracker.Get(ctx, st.ID, subject, sk.ID)
		if err != nil {
			return nil, err
		}

		difficulty := exercise.Difficulty(sk.GapLevel, progress, sk.Level, entry.Attempts)
		typ := exercise.TypeFor(sk.Level, st.Preferences.ExerciseType)

		desc, err := s.describer.Describe(ctx, exercise.DescribeInput{
			Subject:   subject,
			SkillName: sk.Name,
			Level:     sk.Level,
			Templates: s.templates(subject, sk),
			Attempts:  entry.Attempts,
			Content:   content,
		})
		if err != nil {
			return nil, fmt.Errorf("describe exercise: %w", err)
		}

		out = append(out, exercise.Exercise{
			Ref:              exercise.Ref{SkillID: sk.ID, Seq: i},
			SkillID:          sk.ID,
			SkillName:        sk.Name,
			Description:      desc,
			Difficulty:       difficulty,
			Subject:          subject,
			Category:         sk.Category,
			Type:             typ,
			EstimatedMinutes: exercise.EstimatedMinutes(typ, difficulty),
			Resources:        exercise.Resources(subject, sk.Name, sk.Level),
		})
	}
	s.metrics.ExercisesRecommended.WithLabelValues(subject).Add(float64(len(out)))
	return out, nil
}

// templates returns the taxonomy exercise templates for a skill, looked up
// by category first and by name alone for skills from the canned table.
func (s *Service) templates(subject string, sk skillmap.Skill) []string {
	if s.taxonomy == nil {
		return nil
	}
	subj := s.taxonomy.Get(subject)
	if e, ok := subj.Lookup(sk.Category, sk.Name); ok {
		return e.ExerciseTemplates
	}
	if e, ok := subj.Find(sk.Name); ok {
		return e.ExerciseTemplates
	}
	return nil
}

// ProgressResult reports the effect of one completed exercise.
type ProgressResult struct {
	ProgressID       string
	StudentID        string
	Subject          string
	PreviousProgress float64
	NewProgress      float64
	SkillName        string
	Completion       float64
	Timestamp        time.Time
}

// TrackProgress applies a completed exercise: it stores a progress record,
// raises subject progress, persists the student, updates the learning
// history and narrows the skill gap. The exercise's skill is resolved
// against the student's earliest assessment record containing it.
func (s *Service) TrackProgress(ctx context.Context, st *learner.Student, ref exercise.Ref, completion float64, feedback string) (res *ProgressResult, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opTrack, s.now(), &err)

	completion = learner.Clamp01(completion)

	match, err := s.assessments.FirstSkillMatch(ctx, st.ID, "", ref.SkillID)
	if err != nil {
		return nil, fmt.Errorf("resolve exercise: %w", err)
	}
	if match == nil {
		return nil, &NotFoundError{StudentID: st.ID, ExerciseID: ref.String()}
	}
	subject := match.Subject

	now := s.now().UTC()
	rec := &store.ProgressRecord{
		ID:         fmt.Sprintf("progress_%s_%d_%s", ref, now.UnixNano(), shortUUID()),
		StudentID:  st.ID,
		ExerciseID: ref.String(),
		SkillID:    match.Skill.SkillID,
		SkillName:  match.Skill.Name,
		Subject:    subject,
		Timestamp:  now,
		Completion: completion,
		Feedback:   feedback,
	}

	previous := st.ProgressIn(subject)
	next := st.Clone()
	next.SetProgress(subject, math.Min(previous+completion*ProgressPerCompletion, 1))

	// The record, profile, history and gap change together or not at all.
	var adj *GapAdjustment
	err = s.inTx(ctx, func(r repos) error {
		if err := r.progress.AppendProgress(ctx, rec); err != nil {
			return fmt.Errorf("record progress: %w", err)
		}
		if err := s.saveStudent(ctx, r.students, next); err != nil {
			return err
		}
		if _, err := r.tracker.Update(ctx, st.ID, subject, match.Skill.SkillID, completion, feedback); err != nil {
			return err
		}
		var err error
		adj, err = s.adjustGap(ctx, r.assessments, st.ID, subject, match.Skill.SkillID, completion)
		return err
	})
	if err != nil {
		return nil, err
	}
	*st = *next
	s.countGap(subject, adj)

	s.log.Info("exercise completed",
		zap.String("student", st.ID),
		zap.String("exercise", ref.String()),
		zap.Float64("completion", completion),
		zap.Float64("progress", st.ProgressIn(subject)))

	return &ProgressResult{
		ProgressID:       rec.ID,
		StudentID:        st.ID,
		Subject:          subject,
		PreviousProgress: previous,
		NewProgress:      st.ProgressIn(subject),
		SkillName:        match.Skill.Name,
		Completion:       completion,
		Timestamp:        now,
	}, nil
}

// ExerciseResult is a scored exercise submitted for a skill.
type ExerciseResult struct {
	ID    string
	Score float64 // percentage, 0–100
}

// TrackSkillProgress records a batch of scored exercises for one skill.
// When the skill appears in any of the student's assessments, its learning
// history and gap are updated as well. The record is returned either way.
func (s *Service) TrackSkillProgress(ctx context.Context, st *learner.Student, skillID string, results []ExerciseResult) (rec *store.SkillProgressRecord, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opTrackSkill, s.now(), &err)

	var sum float64
	ids := make([]string, 0, len(results))
	for _, r := range results {
		sum += r.Score
		ids = append(ids, r.ID)
	}
	var avg float64
	if len(results) > 0 {
		avg = sum / float64(len(results))
	}
	level := learner.Clamp01(avg / 100)

	now := s.now().UTC()
	rec = &store.SkillProgressRecord{
		ID:            fmt.Sprintf("skill_progress_%s_%s_%d_%s", st.ID, skillID, now.UnixNano(), shortUUID()),
		StudentID:     st.ID,
		SkillID:       skillID,
		Timestamp:     now,
		ExerciseCount: len(results),
		AverageScore:  avg,
		ProgressLevel: level,
		ExerciseIDs:   ids,
	}
	var (
		subject string
		adj     *GapAdjustment
	)
	err = s.inTx(ctx, func(r repos) error {
		if err := r.progress.AppendSkillProgress(ctx, rec); err != nil {
			return fmt.Errorf("record skill progress: %w", err)
		}

		match, err := r.assessments.FirstSkillMatch(ctx, st.ID, "", skillID)
		if err != nil {
			return fmt.Errorf("resolve skill: %w", err)
		}
		if match == nil {
			s.log.Debug("skill not in any assessment", zap.String("student", st.ID), zap.String("skill", skillID))
			return nil
		}
		subject = match.Subject

		feedback := fmt.Sprintf("Completed %d exercises with average score %.1f%%", len(results), avg)
		if _, err := r.tracker.Update(ctx, st.ID, subject, skillID, level, feedback); err != nil {
			return err
		}
		adj, err = s.adjustGap(ctx, r.assessments, st.ID, subject, skillID, level)
		return err
	})
	if err != nil {
		return nil, err
	}
	s.countGap(subject, adj)
	return rec, nil
}

// GapAdjustment reports the outcome of a gap update.
type GapAdjustment struct {
	Adjusted bool
	RecordID string
	SkillID  string
	Before   float64
	After    float64
}

// AdjustGap narrows the gap of skillID in the student's earliest
// assessment record for subject that contains it. Later records are left
// untouched.
func (s *Service) AdjustGap(ctx context.Context, studentID, subject, skillID string, completion float64) (adj *GapAdjustment, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opAdjustGap, s.now(), &err)

	subject = learner.NormalizeSubject(subject)
	adj, err = s.adjustGap(ctx, s.assessments, studentID, subject, skillID, completion)
	if err != nil {
		return nil, err
	}
	s.countGap(subject, adj)
	return adj, nil
}

func (s *Service) adjustGap(ctx context.Context, assessments store.AssessmentRepo, studentID, subject, skillID string, completion float64) (*GapAdjustment, error) {
	match, err := assessments.FirstSkillMatch(ctx, studentID, subject, skillID)
	if err != nil {
		return nil, fmt.Errorf("find skill gap: %w", err)
	}
	if match == nil {
		return &GapAdjustment{SkillID: skillID}, nil
	}

	before := match.Skill.GapLevel
	after := NarrowGap(before, completion)
	if err := assessments.UpdateSkillGap(ctx, match.RecordID, match.Skill.Position, after); err != nil {
		return nil, fmt.Errorf("update skill gap: %w", err)
	}

	return &GapAdjustment{
		Adjusted: true,
		RecordID: match.RecordID,
		SkillID:  skillID,
		Before:   before,
		After:    after,
	}, nil
}

// countGap reports a committed gap adjustment.
func (s *Service) countGap(subject string, adj *GapAdjustment) {
	if adj != nil && adj.Adjusted {
		s.metrics.GapAdjustments.WithLabelValues(subject).Inc()
	}
}

// NarrowGap returns the gap after a completion, rounded to two decimals
// and never below zero.
func NarrowGap(gap, completion float64) float64 {
	completion = learner.Clamp01(completion)
	return learner.Round2(learner.Clamp01(gap - completion*GapReductionPerCompletion))
}

// GeneratePlan builds a development plan from a fresh skill assessment.
func (s *Service) GeneratePlan(ctx context.Context, st *learner.Student, subject string) (p *plan.Plan, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	defer s.observe(opGeneratePlan, s.now(), &err)

	subject = learner.NormalizeSubject(subject)
	skills, rec, err := s.identify(ctx, st, subject, "")
	if err != nil {
		return nil, err
	}
	return plan.Build(st.ID, subject, rec.CurrentLevel, skills, rec.Timestamp), nil
}

// History lists the student's learning history entries for subject.
func (s *Service) History(ctx context.Context, studentID, subject string) ([]history.Entry, error) {
	return s.tracker.ForSubject(ctx, studentID, learner.NormalizeSubject(subject))
}

// Assessments lists the student's assessment records. An empty subject
// lists every subject.
func (s *Service) Assessments(ctx context.Context, studentID, subject string) ([]store.AssessmentRecord, error) {
	recs, err := s.assessments.ListByStudent(ctx, studentID, learner.NormalizeSubject(subject))
	if err != nil {
		return nil, fmt.Errorf("list assessments: %w", err)
	}
	return recs, nil
}

// ProgressRecords lists the student's completed exercises, oldest first.
func (s *Service) ProgressRecords(ctx context.Context, studentID string, limit int) ([]store.ProgressRecord, error) {
	recs, err := s.progress.ListProgress(ctx, studentID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("list progress: %w", err)
	}
	return recs, nil
}

func (s *Service) observe(op string, start time.Time, errp *error) {
	outcome := metrics.OutcomeOK
	switch err := *errp; {
	case errors.Is(err, ErrNotFound):
		outcome = metrics.OutcomeNotFound
	case err != nil:
		outcome = metrics.OutcomeError
		s.log.Warn("operation failed", zap.String("op", op), zap.Error(err))
	}
	s.metrics.ObserveOperation(op, outcome, start)
}

func shortUUID() string {
	return uuid.NewString()[:8]
}
