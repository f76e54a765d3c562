package store

import (
	"context"
	"encoding/json"
	"fmt"
)

type progressRepo struct {
	db  dbtx
	seq *sequenceCounter
}

func (r *progressRepo) AppendProgress(ctx context.Context, rec *ProgressRecord) error {
	seqNum, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO progress_records
		(id, sequence, student_id, exercise_id, skill_id, skill_name, subject,
		 timestamp, completion, feedback)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, seqNum, rec.StudentID, rec.ExerciseID, rec.SkillID, rec.SkillName,
		rec.Subject, toNanos(rec.Timestamp), rec.Completion, rec.Feedback,
	)
	if err != nil {
		return fmt.Errorf("save progress record: %w", err)
	}
	rec.Sequence = seqNum
	return nil
}

func (r *progressRepo) ListProgress(ctx context.Context, studentID string, opts QueryOpts) ([]ProgressRecord, error) {
	var w whereBuilder
	w.add("student_id = ?", studentID)
	w.applyOpts(opts)
	q := `SELECT id, sequence, student_id, exercise_id, skill_id, skill_name, subject,
		timestamp, completion, feedback FROM progress_records` + w.String() +
		` ORDER BY sequence` + limitClause(&w, opts.Limit)

	rows, err := r.db.QueryContext(ctx, q, w.args...)
	if err != nil {
		return nil, fmt.Errorf("query progress records: %w", err)
	}
	defer rows.Close()

	var out []ProgressRecord
	for rows.Next() {
		var (
			p  ProgressRecord
			ts int64
		)
		if err := rows.Scan(&p.ID, &p.Sequence, &p.StudentID, &p.ExerciseID, &p.SkillID,
			&p.SkillName, &p.Subject, &ts, &p.Completion, &p.Feedback); err != nil {
			return nil, fmt.Errorf("scan progress record: %w", err)
		}
		p.Timestamp = fromNanos(ts)
		out = append(out, p)
	}
	return out, rows.Err()
}

func (r *progressRepo) AppendSkillProgress(ctx context.Context, rec *SkillProgressRecord) error {
	ids, err := json.Marshal(nonNilStrings(rec.ExerciseIDs))
	if err != nil {
		return fmt.Errorf("marshal exercise ids: %w", err)
	}

	seqNum, err := r.seq.Next(ctx, r.db)
	if err != nil {
		return fmt.Errorf("next sequence: %w", err)
	}

	_, err = r.db.ExecContext(ctx, `INSERT INTO skill_progress_records
		(id, sequence, student_id, skill_id, timestamp, exercise_count,
		 average_score, progress_level, exercise_ids)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, seqNum, rec.StudentID, rec.SkillID, toNanos(rec.Timestamp),
		rec.ExerciseCount, rec.AverageScore, rec.ProgressLevel, string(ids),
	)
	if err != nil {
		return fmt.Errorf("save skill progress record: %w", err)
	}
	rec.Sequence = seqNum
	return nil
}

func (r *progressRepo) ListSkillProgress(ctx context.Context, studentID, skillID string) ([]SkillProgressRecord, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT id, sequence, student_id, skill_id,
		timestamp, exercise_count, average_score, progress_level, exercise_ids
		FROM skill_progress_records WHERE student_id = ? AND skill_id = ?
		ORDER BY sequence`, studentID, skillID)
	if err != nil {
		return nil, fmt.Errorf("query skill progress records: %w", err)
	}
	defer rows.Close()

	var out []SkillProgressRecord
	for rows.Next() {
		var (
			p   SkillProgressRecord
			ts  int64
			ids string
		)
		if err := rows.Scan(&p.ID, &p.Sequence, &p.StudentID, &p.SkillID, &ts,
			&p.ExerciseCount, &p.AverageScore, &p.ProgressLevel, &ids); err != nil {
			return nil, fmt.Errorf("scan skill progress record: %w", err)
		}
		if err := json.Unmarshal([]byte(ids), &p.ExerciseIDs); err != nil {
			return nil, fmt.Errorf("unmarshal exercise ids: %w", err)
		}
		p.Timestamp = fromNanos(ts)
		out = append(out, p)
	}
	return out, rows.Err()
}
