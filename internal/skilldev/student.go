package skilldev

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/learner"
	"github.com/abdulwahidchohan/ai-edu-coach-project/internal/store"
)

// LoadStudent reads a stored profile. A missing student yields a
// *NotFoundError.
func (s *Service) LoadStudent(ctx context.Context, id string) (*learner.Student, error) {
	d, err := s.students.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load student: %w", err)
	}
	if d == nil {
		return nil, &NotFoundError{StudentID: id}
	}
	return studentFromData(d), nil
}

// SaveStudent stores the profile, replacing any previous version.
func (s *Service) SaveStudent(ctx context.Context, st *learner.Student) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.saveStudent(ctx, s.students, st)
}

// ListStudents returns every stored profile ordered by id.
func (s *Service) ListStudents(ctx context.Context) ([]*learner.Student, error) {
	rows, err := s.students.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list students: %w", err)
	}
	out := make([]*learner.Student, 0, len(rows))
	for i := range rows {
		out = append(out, studentFromData(&rows[i]))
	}
	return out, nil
}

func (s *Service) saveStudent(ctx context.Context, students store.StudentRepo, st *learner.Student) error {
	d := &store.StudentData{
		ID:                    st.ID,
		Name:                  st.Name,
		Subjects:              st.Subjects,
		Progress:              st.Progress,
		PreferredExerciseType: st.Preferences.ExerciseType,
		UpdatedAt:             s.now().UTC(),
	}
	if err := students.Save(ctx, d); err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return nil
}

func studentFromData(d *store.StudentData) *learner.Student {
	st := learner.NewStudent(d.ID, d.Name)
	st.Subjects = append(st.Subjects, d.Subjects...)
	for subject, v := range d.Progress {
		st.Progress[learner.NormalizeSubject(subject)] = learner.Clamp01(v)
	}
	st.Preferences.ExerciseType = d.PreferredExerciseType
	return st
}

// ResetStudent deletes the profile together with its assessments, learning
// history and progress records. A missing student yields a *NotFoundError.
func (s *Service) ResetStudent(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	existed, err := s.store.DeleteStudent(ctx, id)
	if err != nil {
		return fmt.Errorf("reset student: %w", err)
	}
	if !existed {
		return &NotFoundError{StudentID: id}
	}
	s.log.Info("student reset", zap.String("student", id))
	return nil
}
