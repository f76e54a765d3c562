// Package history tracks per-skill learning attempts for each learner.
package history

import (
	"context"
	"fmt"
	"time"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
)

// Feedback is a learner note attached to an attempt.
type Feedback struct {
	Timestamp time.Time
	Content   string
}

// Entry is the attempt history for one (student, subject, skill).
type Entry struct {
	StudentID         string
	Subject           string
	SkillID           string
	Attempts          int
	Completions       []float64
	AverageCompletion float64
	LastAttempt       time.Time // zero until the first attempt
	Feedback          []Feedback
}

// Record applies one attempt to the entry.
func (e *Entry) Record(completion float64, feedback string, now time.Time) {
	e.Attempts++
	e.Completions = append(e.Completions, completion)
	var sum float64
	for _, c := range e.Completions {
		sum += c
	}
	e.AverageCompletion = sum / float64(len(e.Completions))
	e.LastAttempt = now
	if feedback != "" {
		e.Feedback = append(e.Feedback, Feedback{Timestamp: now, Content: feedback})
	}
}

// Tracker reads and updates learning histories.
type Tracker struct {
	repo store.HistoryRepo
	now  func() time.Time
}

// NewTracker creates a tracker backed by repo.
func NewTracker(repo store.HistoryRepo) *Tracker {
	return &Tracker{repo: repo, now: time.Now}
}

// Update records an attempt, creating the entry on first use.
func (t *Tracker) Update(ctx context.Context, studentID, subject, skillID string, completion float64, feedback string) (*Entry, error) {
	e, err := t.Get(ctx, studentID, subject, skillID)
	if err != nil {
		return nil, err
	}
	e.Record(completion, feedback, t.now().UTC())
	if err := t.repo.Save(ctx, toData(e)); err != nil {
		return nil, fmt.Errorf("update learning history: %w", err)
	}
	return e, nil
}

// Get returns the entry, or an empty entry with zero attempts.
func (t *Tracker) Get(ctx context.Context, studentID, subject, skillID string) (*Entry, error) {
	d, err := t.repo.Get(ctx, studentID, subject, skillID)
	if err != nil {
		return nil, fmt.Errorf("get learning history: %w", err)
	}
	if d == nil {
		return &Entry{StudentID: studentID, Subject: subject, SkillID: skillID}, nil
	}
	return fromData(d), nil
}

// ForSubject lists every entry the student has in subject.
func (t *Tracker) ForSubject(ctx context.Context, studentID, subject string) ([]Entry, error) {
	rows, err := t.repo.ListBySubject(ctx, studentID, subject)
	if err != nil {
		return nil, fmt.Errorf("list learning history: %w", err)
	}
	out := make([]Entry, 0, len(rows))
	for i := range rows {
		out = append(out, *fromData(&rows[i]))
	}
	return out, nil
}

func toData(e *Entry) *store.HistoryData {
	fb := make([]store.FeedbackData, 0, len(e.Feedback))
	for _, f := range e.Feedback {
		fb = append(fb, store.FeedbackData{Timestamp: f.Timestamp, Content: f.Content})
	}
	return &store.HistoryData{
		StudentID:         e.StudentID,
		Subject:           e.Subject,
		SkillID:           e.SkillID,
		Attempts:          e.Attempts,
		Completions:       e.Completions,
		AverageCompletion: e.AverageCompletion,
		LastAttempt:       e.LastAttempt,
		Feedback:          fb,
	}
}

func fromData(d *store.HistoryData) *Entry {
	e := &Entry{
		StudentID:         d.StudentID,
		Subject:           d.Subject,
		SkillID:           d.SkillID,
		Attempts:          d.Attempts,
		Completions:       d.Completions,
		AverageCompletion: d.AverageCompletion,
		LastAttempt:       d.LastAttempt,
	}
	for _, f := range d.Feedback {
		e.Feedback = append(e.Feedback, Feedback{Timestamp: f.Timestamp, Content: f.Content})
	}
	return e
}
