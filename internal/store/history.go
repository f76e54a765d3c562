package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
)

type historyRepo struct {
	db dbtx
}

const historyColumns = `student_id, subject, skill_id, attempts, completions,
	average_completion, last_attempt, feedback`

func (r *historyRepo) Get(ctx context.Context, studentID, subject, skillID string) (*HistoryData, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+historyColumns+` FROM learning_history
		WHERE student_id = ? AND subject = ? AND skill_id = ?`, studentID, subject, skillID)
	h, err := scanHistory(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return h, err
}

func (r *historyRepo) Save(ctx context.Context, h *HistoryData) error {
	completions := h.Completions
	if completions == nil {
		completions = []float64{}
	}
	compJSON, err := json.Marshal(completions)
	if err != nil {
		return fmt.Errorf("marshal completions: %w", err)
	}
	feedback := h.Feedback
	if feedback == nil {
		feedback = []FeedbackData{}
	}
	fbJSON, err := json.Marshal(feedback)
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO learning_history (`+historyColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(student_id, subject, skill_id) DO UPDATE SET
			attempts = excluded.attempts,
			completions = excluded.completions,
			average_completion = excluded.average_completion,
			last_attempt = excluded.last_attempt,
			feedback = excluded.feedback`,
		h.StudentID, h.Subject, h.SkillID, h.Attempts, string(compJSON),
		h.AverageCompletion, toNanos(h.LastAttempt), string(fbJSON),
	)
	if err != nil {
		return fmt.Errorf("save learning history: %w", err)
	}
	return nil
}

func (r *historyRepo) ListBySubject(ctx context.Context, studentID, subject string) ([]HistoryData, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+historyColumns+` FROM learning_history
		WHERE student_id = ? AND subject = ? ORDER BY skill_id`, studentID, subject)
	if err != nil {
		return nil, fmt.Errorf("query learning history: %w", err)
	}
	defer rows.Close()

	var out []HistoryData
	for rows.Next() {
		h, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *h)
	}
	return out, rows.Err()
}

func scanHistory(row rowScanner) (*HistoryData, error) {
	var (
		h                     HistoryData
		completions, feedback string
		last                  int64
	)
	err := row.Scan(&h.StudentID, &h.Subject, &h.SkillID, &h.Attempts, &completions,
		&h.AverageCompletion, &last, &feedback)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan learning history: %w", err)
	}
	if err := json.Unmarshal([]byte(completions), &h.Completions); err != nil {
		return nil, fmt.Errorf("unmarshal completions: %w", err)
	}
	if err := json.Unmarshal([]byte(feedback), &h.Feedback); err != nil {
		return nil, fmt.Errorf("unmarshal feedback: %w", err)
	}
	h.LastAttempt = fromNanos(last)
	return &h, nil
}
