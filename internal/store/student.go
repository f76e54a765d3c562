package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

type studentRepo struct {
	db dbtx
}

func (r *studentRepo) Get(ctx context.Context, id string) (*StudentData, error) {
	row := r.db.QueryRowContext(ctx, `SELECT id, name, subjects, progress,
		preferred_exercise_type, updated_at FROM students WHERE id = ?`, id)
	s, err := scanStudent(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

func (r *studentRepo) Save(ctx context.Context, s *StudentData) error {
	subjects, err := json.Marshal(nonNilStrings(s.Subjects))
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	progress := s.Progress
	if progress == nil {
		progress = map[string]float64{}
	}
	progressJSON, err := json.Marshal(progress)
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}

	s.UpdatedAt = time.Now().UTC()
	_, err = r.db.ExecContext(ctx, `INSERT INTO students
		(id, name, subjects, progress, preferred_exercise_type, updated_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			subjects = excluded.subjects,
			progress = excluded.progress,
			preferred_exercise_type = excluded.preferred_exercise_type,
			updated_at = excluded.updated_at`,
		s.ID, s.Name, string(subjects), string(progressJSON),
		s.PreferredExerciseType, toNanos(s.UpdatedAt),
	)
	if err != nil {
		return fmt.Errorf("save student: %w", err)
	}
	return nil
}

func (r *studentRepo) List(ctx context.Context) ([]StudentData, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, name, subjects, progress,
		preferred_exercise_type, updated_at FROM students ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query students: %w", err)
	}
	defer rows.Close()

	var out []StudentData
	for rows.Next() {
		s, err := scanStudent(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *s)
	}
	return out, rows.Err()
}

func scanStudent(row rowScanner) (*StudentData, error) {
	var (
		s                  StudentData
		subjects, progress string
		updated            int64
	)
	err := row.Scan(&s.ID, &s.Name, &subjects, &progress, &s.PreferredExerciseType, &updated)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan student: %w", err)
	}
	if err := json.Unmarshal([]byte(subjects), &s.Subjects); err != nil {
		return nil, fmt.Errorf("unmarshal subjects: %w", err)
	}
	if err := json.Unmarshal([]byte(progress), &s.Progress); err != nil {
		return nil, fmt.Errorf("unmarshal progress: %w", err)
	}
	s.UpdatedAt = fromNanos(updated)
	return &s, nil
}

func nonNilStrings(v []string) []string {
	if v == nil {
		return []string{}
	}
	return v
}
